// Package scoring maps a candidate's answer map onto a total score and a
// per-Teras (competency category) breakdown.
package scoring

import (
	"math"
	"strings"
)

// Canonical Teras buckets. Free-text category labels from uploaded documents
// are folded into these three; anything unrecognized keeps its raw label as an
// ad-hoc bucket.
const (
	TerasKerjasama  = "Kerjasama"
	TerasEmosi      = "Emosi"
	TerasKomunikasi = "Komunikasi"
)

const (
	// PointsPerQuestion is every question's contribution to the max score.
	PointsPerQuestion = 10
	// CloseMatchPoints is the partial credit for the paired adjacent answer.
	CloseMatchPoints = 7
)

// closeMatch pairs each best-answer label with the alternative that earns
// partial credit. C is the Likert midpoint and deliberately has no pair.
var closeMatch = map[string]string{
	"A": "B",
	"B": "A",
	"D": "E",
	"E": "D",
}

// terasSynonyms maps each canonical bucket to the substring fragments that
// classify a raw category label into it. Matching is case-sensitive and
// checked in bucket order.
var terasSynonyms = []struct {
	bucket    string
	fragments []string
}{
	{TerasKerjasama, []string{"Kerjasama", "kerjasama", "Sikap", "pasukan", "Pasukan"}},
	{TerasEmosi, []string{"Emosi", "emosi", "Tekanan", "Kestabilan"}},
	{TerasKomunikasi, []string{"Komunikasi", "komunikasi", "Interaksi"}},
}

// Question is the slice of the question bank the engine needs.
type Question struct {
	Number     int
	Teras      string
	BestAnswer string
}

// TerasScore is one category's slice of the result.
type TerasScore struct {
	Score      int `json:"score"`
	Max        int `json:"max"`
	Percentage int `json:"percentage"`
}

// Result is the scored outcome of one submission. It is derived purely from
// the question bank and the answer map and never mutated afterwards.
type Result struct {
	TotalScore  int                   `json:"totalScore"`
	MaxScore    int                   `json:"maxScore"`
	TerasScores map[string]TerasScore `json:"terasScores"`
}

// NormalizeTeras folds a raw category label into a canonical bucket. Labels
// matching no synonym fragment are returned verbatim as their own bucket; an
// empty label falls back to the parser default.
func NormalizeTeras(raw string) string {
	for _, ts := range terasSynonyms {
		for _, frag := range ts.fragments {
			if strings.Contains(raw, frag) {
				return ts.bucket
			}
		}
	}
	if raw == "" {
		return "General"
	}
	return raw
}

// PointsFor returns the credit a single answer earns against a question.
// Unanswered (empty) and unknown labels earn nothing.
func PointsFor(q Question, answer string) int {
	if answer == "" {
		return 0
	}
	if answer == q.BestAnswer {
		return PointsPerQuestion
	}
	if close, ok := closeMatch[q.BestAnswer]; ok && answer == close {
		return CloseMatchPoints
	}
	return 0
}

// Score computes the overall and per-category result for an answer map keyed
// by question number. Every question contributes PointsPerQuestion to the max
// regardless of whether it was answered.
func Score(questions []Question, answers map[int]string) Result {
	result := Result{
		TerasScores: map[string]TerasScore{
			TerasKerjasama:  {},
			TerasEmosi:      {},
			TerasKomunikasi: {},
		},
	}

	for _, q := range questions {
		bucket := NormalizeTeras(q.Teras)
		points := PointsFor(q, answers[q.Number])

		result.TotalScore += points
		result.MaxScore += PointsPerQuestion

		ts := result.TerasScores[bucket]
		ts.Score += points
		ts.Max += PointsPerQuestion
		result.TerasScores[bucket] = ts
	}

	for bucket, ts := range result.TerasScores {
		ts.Percentage = percentage(ts.Score, ts.Max)
		result.TerasScores[bucket] = ts
	}
	return result
}

// Percentage returns the attempt-level percentage for a result.
func (r Result) Percentage() int {
	return percentage(r.TotalScore, r.MaxScore)
}

func percentage(score, max int) int {
	if max == 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(max)))
}
