package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseSingleNumberedQuestion(t *testing.T) {
	input := "1. Is the sky blue?\nA. Yes\nB. No\nJawapan: A"

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	q := questions[0]
	if q.ID != 1 {
		t.Errorf("ID = %d, want 1", q.ID)
	}
	if q.Question != "Is the sky blue?" {
		t.Errorf("Question = %q, want %q", q.Question, "Is the sky blue?")
	}
	wantOptions := []Option{{Label: "A", Text: "Yes"}, {Label: "B", Text: "No"}}
	if !reflect.DeepEqual(q.Options, wantOptions) {
		t.Errorf("Options = %v, want %v", q.Options, wantOptions)
	}
	if q.CorrectAnswer != "A" {
		t.Errorf("CorrectAnswer = %q, want %q", q.CorrectAnswer, "A")
	}
	wantPoints := map[string]int{"A": 10, "B": 0}
	if !reflect.DeepEqual(q.AnswerPoints, wantPoints) {
		t.Errorf("AnswerPoints = %v, want %v", q.AnswerPoints, wantPoints)
	}
	if q.Teras != DefaultTeras {
		t.Errorf("Teras = %q, want default %q", q.Teras, DefaultTeras)
	}
}

func TestParseQuestionMarkerVariants(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		wantID int
	}{
		{"soalan with colon", "Soalan 1: Apakah tindakan anda?", 1},
		{"soalan no punctuation", "Soalan 2 Apakah tindakan anda?", 2},
		{"english question word", "Question 7) What would you do?", 7},
		{"bare number dot", "4. Apakah tindakan anda?", 4},
		{"bare number paren", "5) Apakah tindakan anda?", 5},
		{"bare number dash", "6- Apakah tindakan anda?", 6},
		{"bare number colon", "9: Apakah tindakan anda?", 9},
		{"lowercase soalan", "soalan 12. Apakah tindakan anda?", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if len(questions) != 1 {
				t.Fatalf("expected 1 question, got %d", len(questions))
			}
			if questions[0].ID != tt.wantID {
				t.Errorf("ID = %d, want %d", questions[0].ID, tt.wantID)
			}
			if questions[0].Question != "Apakah tindakan anda?" && !strings.Contains(questions[0].Question, "What would you do?") {
				t.Errorf("unexpected prompt %q", questions[0].Question)
			}
		})
	}
}

func TestParseDecimalNotMistakenForMarker(t *testing.T) {
	input := "1. Nisbah pi ialah\n3.14 kali diameter\nA. Benar\nB. Salah\nJawapan: A"

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if !strings.Contains(questions[0].Question, "3.14 kali diameter") {
		t.Errorf("decimal line should stay in the prompt, got %q", questions[0].Question)
	}
}

func TestParseTerasLabel(t *testing.T) {
	input := "Soalan 1\nTeras: Kerjasama\nApakah tindakan anda?\nA. Bantu\nB. Diam\nJawapan: A"

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if questions[0].Teras != "Kerjasama" {
		t.Errorf("Teras = %q, want %q", questions[0].Teras, "Kerjasama")
	}
	if questions[0].Question != "Apakah tindakan anda?" {
		t.Errorf("Question = %q, want %q", questions[0].Question, "Apakah tindakan anda?")
	}
}

func TestParseMarkerWithInlineTeras(t *testing.T) {
	// "Soalan 3 Teras: X" is a marker whose remainder is the category, not the prompt.
	input := "Soalan 3 Teras: Komunikasi\nSoalan: Bagaimana anda berbincang?\nA. Terbuka\nB. Tertutup\nJawapan: A"

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	q := questions[0]
	if q.ID != 3 {
		t.Errorf("ID = %d, want 3", q.ID)
	}
	if q.Teras != "Komunikasi" {
		t.Errorf("Teras = %q, want %q", q.Teras, "Komunikasi")
	}
	if q.Question != "Bagaimana anda berbincang?" {
		t.Errorf("Question = %q, want %q", q.Question, "Bagaimana anda berbincang?")
	}
}

func TestParsePromptLabelOverwrites(t *testing.T) {
	input := "1. stale text\nSoalan: Apakah tindakan anda?\nA. Bantu\nB. Diam"

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if questions[0].Question != "Apakah tindakan anda?" {
		t.Errorf("Soalan: label should overwrite the prompt, got %q", questions[0].Question)
	}
}

func TestParseStatementAppends(t *testing.T) {
	input := "1. Rakan anda lewat siap kerja.\nPernyataan: Anda perlu pilih tindakan terbaik.\nA. Bantu\nB. Diam"

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := "Rakan anda lewat siap kerja.\n\nAnda perlu pilih tindakan terbaik."
	if questions[0].Question != want {
		t.Errorf("Question = %q, want %q", questions[0].Question, want)
	}
}

func TestParseOptionsHeaderAndBullets(t *testing.T) {
	input := strings.Join([]string{
		"Soalan 1: Apakah tindakan anda?",
		"Pilihan Jawapan:",
		"A) Bantu rakan",
		"- B. Laporkan kepada ketua",
		"• C - Diamkan diri",
		"d. Tunggu arahan",
		"Jawapan: B",
	}, "\n")

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []Option{
		{Label: "A", Text: "Bantu rakan"},
		{Label: "B", Text: "Laporkan kepada ketua"},
		{Label: "C", Text: "Diamkan diri"},
		{Label: "D", Text: "Tunggu arahan"},
	}
	if !reflect.DeepEqual(questions[0].Options, want) {
		t.Errorf("Options = %v, want %v", questions[0].Options, want)
	}
}

func TestParseOptionListWithoutHeaderCapturesFirstLine(t *testing.T) {
	// The option line that triggers the switch into option collection must
	// itself be captured, not dropped.
	input := "1. Apakah tindakan anda?\nA. Bantu\nB. Diam\nJawapan: A"

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(questions[0].Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(questions[0].Options))
	}
	if questions[0].Options[0].Label != "A" {
		t.Errorf("first option label = %q, want A", questions[0].Options[0].Label)
	}
}

func TestParseAnswerLineVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"jawapan", "Jawapan: A", "A"},
		{"answer", "Answer: C", "C"},
		{"cadangan jawapan terbaik", "Cadangan Jawapan (Terbaik): D", "D"},
		{"prose before the letter", "Jawapan terbaik: Pilihan B kerana lebih sesuai", "B"},
		{"lowercase letter", "Jawapan: e", "E"},
		{"no letter at all", "Jawapan: tiada pilihan jelas", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "1. Apakah tindakan anda?\nA. Bantu\nB. Diam\n" + tt.line
			questions, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if questions[0].CorrectAnswer != tt.want {
				t.Errorf("CorrectAnswer = %q, want %q", questions[0].CorrectAnswer, tt.want)
			}
		})
	}
}

func TestParseExplanation(t *testing.T) {
	input := strings.Join([]string{
		"1. Apakah tindakan anda?",
		"A. Bantu",
		"B. Diam",
		"Jawapan: A",
		"Penerangan: Membantu menunjukkan semangat berpasukan.",
		"Ia juga mengeratkan hubungan kerja.",
	}, "\n")

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := "Membantu menunjukkan semangat berpasukan.\nIa juga mengeratkan hubungan kerja."
	if questions[0].Explanation != want {
		t.Errorf("Explanation = %q, want %q", questions[0].Explanation, want)
	}
	if strings.Contains(questions[0].Explanation, "Penerangan") {
		t.Error("explanation header line must not leak into the explanation body")
	}
}

func TestParseExplanationHeaderOnOwnLine(t *testing.T) {
	input := "1. Apakah tindakan anda?\nA. Bantu\nB. Diam\nKenapa A terbaik:\nKerana ia membantu pasukan."

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if questions[0].Explanation != "Kerana ia membantu pasukan." {
		t.Errorf("Explanation = %q", questions[0].Explanation)
	}
}

func TestParseCommentaryAfterAnswerDropped(t *testing.T) {
	input := "1. Apakah tindakan anda?\nA. Bantu\nB. Diam\nJawapan: A\nNota dalaman untuk semakan."

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if questions[0].Explanation != "" {
		t.Errorf("commentary after the answer line should be dropped, got explanation %q", questions[0].Explanation)
	}
	if strings.Contains(questions[0].Question, "Nota") {
		t.Errorf("commentary leaked into the prompt: %q", questions[0].Question)
	}
}

func TestParseMultipleQuestionsAndPreamble(t *testing.T) {
	input := strings.Join([]string{
		"Bank soalan psikometrik SPA",
		"Sila jawab semua soalan.",
		"",
		"Soalan 1: Pertama?",
		"A. Ya",
		"B. Tidak",
		"Jawapan: A",
		"",
		"Soalan 2: Kedua?",
		"A. Ya",
		"B. Tidak",
		"Jawapan: B",
	}, "\n")

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].ID != 1 || questions[1].ID != 2 {
		t.Errorf("IDs = %d, %d; want 1, 2", questions[0].ID, questions[1].ID)
	}
	if questions[1].CorrectAnswer != "B" {
		t.Errorf("second CorrectAnswer = %q, want B", questions[1].CorrectAnswer)
	}
}

func TestParseDuplicateNumbersKeptVerbatim(t *testing.T) {
	input := "1. Pertama?\nA. Ya\nB. Tidak\n1. Kedua?\nA. Ya\nB. Tidak"

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].ID != 1 || questions[1].ID != 1 {
		t.Errorf("document numbering must be kept verbatim, got IDs %d, %d", questions[0].ID, questions[1].ID)
	}
}

func TestParseCRLFInput(t *testing.T) {
	input := "1. Apakah tindakan anda?\r\nA. Bantu\r\nB. Diam\r\nJawapan: A\r\n"

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(questions[0].Options) != 2 || questions[0].CorrectAnswer != "A" {
		t.Errorf("CRLF input parsed incorrectly: %+v", questions[0])
	}
}

func TestParseAnswerPointsWithoutAnswerLine(t *testing.T) {
	input := "1. Apakah tindakan anda?\nA. Bantu\nB. Diam\nC. Tunggu"

	questions, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	q := questions[0]
	if q.CorrectAnswer != "" {
		t.Errorf("CorrectAnswer = %q, want empty", q.CorrectAnswer)
	}
	want := map[string]int{"A": 0, "B": 0, "C": 0}
	if !reflect.DeepEqual(q.AnswerPoints, want) {
		t.Errorf("AnswerPoints = %v, want %v", q.AnswerPoints, want)
	}
}

func TestParseNoQuestionsDetected(t *testing.T) {
	input := "Nota mesyuarat pagi tadi.\nTiada apa-apa soalan di sini."

	questions, err := Parse(input)
	if questions != nil {
		t.Errorf("expected no questions, got %v", questions)
	}
	var noQuestions *NoQuestionsError
	if !errors.As(err, &noQuestions) {
		t.Fatalf("expected *NoQuestionsError, got %v", err)
	}
	if !strings.HasPrefix(noQuestions.Excerpt, "Nota mesyuarat") {
		t.Errorf("Excerpt = %q, want document prefix", noQuestions.Excerpt)
	}
}

func TestParseNoQuestionsExcerptTruncated(t *testing.T) {
	input := strings.Repeat("x", 500)

	_, err := Parse(input)
	var noQuestions *NoQuestionsError
	if !errors.As(err, &noQuestions) {
		t.Fatalf("expected *NoQuestionsError, got %v", err)
	}
	if len(noQuestions.Excerpt) != 120 {
		t.Errorf("Excerpt length = %d, want 120", len(noQuestions.Excerpt))
	}
}

func TestParseIsDeterministic(t *testing.T) {
	input := "Soalan 1: Pertama?\nTeras: Emosi\nA. Ya\nB. Tidak\nJawapan: A\nPenerangan: Sebab."

	first, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	second, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse is not deterministic:\n%v\n%v", first, second)
	}
}
