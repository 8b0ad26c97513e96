package scoring

import "testing"

func TestPointsFor(t *testing.T) {
	tests := []struct {
		name   string
		best   string
		answer string
		want   int
	}{
		{"best answer", "A", "A", 10},
		{"close match of A", "A", "B", 7},
		{"close match of B", "B", "A", 7},
		{"close match of D", "D", "E", 7},
		{"close match of E", "E", "D", 7},
		{"C has no close match", "C", "B", 0},
		{"C has no close match either side", "C", "D", 0},
		{"wrong answer", "A", "E", 0},
		{"unanswered", "A", "", 0},
		{"unknown label", "A", "Z", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{Number: 1, Teras: TerasKerjasama, BestAnswer: tt.best}
			if got := PointsFor(q, tt.answer); got != tt.want {
				t.Errorf("PointsFor(best=%s, answer=%s) = %d, want %d", tt.best, tt.answer, got, tt.want)
			}
		})
	}
}

func TestScoreCloseMatchSingleQuestion(t *testing.T) {
	questions := []Question{{Number: 1, Teras: TerasKerjasama, BestAnswer: "A"}}
	answers := map[int]string{1: "B"}

	result := Score(questions, answers)

	if result.TotalScore != 7 {
		t.Errorf("TotalScore = %d, want 7", result.TotalScore)
	}
	if result.MaxScore != 10 {
		t.Errorf("MaxScore = %d, want 10", result.MaxScore)
	}
	kerjasama := result.TerasScores[TerasKerjasama]
	if kerjasama.Score != 7 || kerjasama.Max != 10 || kerjasama.Percentage != 70 {
		t.Errorf("Kerjasama = %+v, want {7 10 70}", kerjasama)
	}
}

func TestScoreEmptyAnswers(t *testing.T) {
	questions := []Question{
		{Number: 1, Teras: TerasKerjasama, BestAnswer: "A"},
		{Number: 2, Teras: TerasKerjasama, BestAnswer: "B"},
		{Number: 3, Teras: TerasEmosi, BestAnswer: "C"},
		{Number: 4, Teras: TerasKomunikasi, BestAnswer: "D"},
		{Number: 5, Teras: TerasKomunikasi, BestAnswer: "E"},
	}

	result := Score(questions, map[int]string{})

	if result.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", result.TotalScore)
	}
	if result.MaxScore != 50 {
		t.Errorf("MaxScore = %d, want 50", result.MaxScore)
	}
	for bucket, ts := range result.TerasScores {
		if ts.Percentage != 0 {
			t.Errorf("%s percentage = %d, want 0", bucket, ts.Percentage)
		}
	}
}

func TestScoreCanonicalBucketsAlwaysPresent(t *testing.T) {
	result := Score([]Question{{Number: 1, Teras: TerasEmosi, BestAnswer: "A"}}, nil)

	for _, bucket := range []string{TerasKerjasama, TerasEmosi, TerasKomunikasi} {
		if _, ok := result.TerasScores[bucket]; !ok {
			t.Errorf("bucket %s missing from result", bucket)
		}
	}
	if result.TerasScores[TerasKerjasama].Max != 0 {
		t.Errorf("empty bucket Max = %d, want 0", result.TerasScores[TerasKerjasama].Max)
	}
}

func TestScoreBucketsPartitionTotal(t *testing.T) {
	questions := []Question{
		{Number: 1, Teras: TerasKerjasama, BestAnswer: "A"},
		{Number: 2, Teras: TerasEmosi, BestAnswer: "B"},
		{Number: 3, Teras: TerasKomunikasi, BestAnswer: "C"},
		{Number: 4, Teras: "Integriti", BestAnswer: "D"},
	}
	answers := map[int]string{1: "A", 2: "A", 3: "C", 4: "E"}

	result := Score(questions, answers)

	var sumScore, sumMax int
	for _, ts := range result.TerasScores {
		sumScore += ts.Score
		sumMax += ts.Max
	}
	if sumScore != result.TotalScore {
		t.Errorf("bucket scores sum to %d, total is %d", sumScore, result.TotalScore)
	}
	if sumMax != result.MaxScore {
		t.Errorf("bucket maxes sum to %d, max is %d", sumMax, result.MaxScore)
	}
	// Unrecognized labels form their own ad-hoc bucket.
	if adhoc, ok := result.TerasScores["Integriti"]; !ok || adhoc.Score != 7 {
		t.Errorf("ad-hoc bucket = %+v, ok=%v; want score 7", adhoc, ok)
	}
}

func TestNormalizeTeras(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Kerjasama", TerasKerjasama},
		{"Teras Kerjasama Berpasukan", TerasKerjasama},
		{"Sikap Kerja", TerasKerjasama},
		{"Semangat pasukan", TerasKerjasama},
		{"Emosi", TerasEmosi},
		{"Kestabilan Emosi", TerasEmosi},
		{"Pengurusan Tekanan", TerasEmosi},
		{"Komunikasi", TerasKomunikasi},
		{"Kemahiran Interaksi", TerasKomunikasi},
		{"Integriti", "Integriti"}, // unmatched labels stay verbatim
		{"", "General"},
	}

	for _, tt := range tests {
		if got := NormalizeTeras(tt.raw); got != tt.want {
			t.Errorf("NormalizeTeras(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestResultPercentageRounding(t *testing.T) {
	tests := []struct {
		score, max, want int
	}{
		{7, 10, 70},
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 40, 3},  // 2.5 rounds half up
		{7, 40, 18}, // 17.5 rounds half up
		{50, 50, 100},
	}

	for _, tt := range tests {
		r := Result{TotalScore: tt.score, MaxScore: tt.max}
		if got := r.Percentage(); got != tt.want {
			t.Errorf("Percentage(%d/%d) = %d, want %d", tt.score, tt.max, got, tt.want)
		}
	}
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		percentage int
		want       string
	}{
		{100, GradeCemerlang},
		{85, GradeCemerlang},
		{84, GradeBaik},
		{70, GradeBaik},
		{69, GradeSederhana},
		{50, GradeSederhana},
		{49, GradeLemah},
		{0, GradeLemah},
	}

	for _, tt := range tests {
		if got := GradeFor(tt.percentage); got != tt.want {
			t.Errorf("GradeFor(%d) = %q, want %q", tt.percentage, got, tt.want)
		}
	}
}
