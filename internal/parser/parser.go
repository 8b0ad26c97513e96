// Package parser converts loosely structured quiz documents into question
// records. Admins paste or upload question banks written with Malay labels
// ("Soalan 1", "Teras:", "Pilihan Jawapan:", "Jawapan: A", "Penerangan:") and
// inconsistent numbering; the parser is a line-oriented state machine that
// tolerates reordered and missing labels rather than enforcing a grammar.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Option is one labeled answer choice, in document order.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question is the normalized record emitted for every question detected in
// the source document.
type Question struct {
	ID            int            `json:"id"`
	Question      string         `json:"question"`
	Teras         string         `json:"teras"`
	Options       []Option       `json:"options"`
	CorrectAnswer string         `json:"correctAnswer"` // empty when no answer line was detected
	AnswerPoints  map[string]int `json:"answerPoints"`
	Explanation   string         `json:"explanation"`
}

// DefaultTeras is assigned when a question carries no "Teras:" label.
const DefaultTeras = "General"

// BestAnswerPoints is awarded for the designated best answer in the
// post-processed points table; every other present label gets zero.
const BestAnswerPoints = 10

const excerptLen = 120

// NoQuestionsError reports that no question markers were recognized. It is a
// recoverable condition: callers surface the excerpt so the admin can fix the
// document formatting.
type NoQuestionsError struct {
	Excerpt string
}

func (e *NoQuestionsError) Error() string {
	return fmt.Sprintf("no questions detected in document (begins %q)", e.Excerpt)
}

type state int

const (
	stateIdle state = iota // before the first question marker; lines are dropped
	stateQuestionText
	stateOptions
	stateMeta
	stateExplanation
)

var (
	reQuestionWord = regexp.MustCompile(`(?i)^(?:soalan|question)\s*(\d+)\s*[.:)]?\s*(.*)$`)
	reNumbered     = regexp.MustCompile(`^(\d+)\s*[.)\-:]\s*(.*)$`)
	reTeras        = regexp.MustCompile(`(?i)^teras\s*[:\-]\s*(.*)$`)
	rePromptLabel  = regexp.MustCompile(`(?i)^soalan\s*[:\-]\s*(.*)$`)
	reStatement    = regexp.MustCompile(`(?i)^pernyataan\s*[:\-]\s*(.*)$`)
	reOptionsHead  = regexp.MustCompile(`(?i)^pilihan\s+jawapan\s*[:\-]?\s*$`)
	reAnswerHead   = regexp.MustCompile(`(?i)^(?:cadangan\s+jawapan(?:\s*\(\s*terbaik\s*\))?|jawapan|answer)[^:\-]*[:\-]`)
	reExplainHead  = regexp.MustCompile(`(?i)^(?:kenapa|penerangan|explanation)[^:\-]*[:\-]\s*(.*)$`)
	reOptionLine   = regexp.MustCompile(`^[•\-*]?\s*([A-Ea-e])\s*[.)\-–•]\s+(.+)$`)
	reLetter       = regexp.MustCompile(`(?i)\b([A-E])\b`)
)

// Parse scans a raw text blob and returns the ordered question records it
// detects. The only error returned is *NoQuestionsError; every other anomaly
// degrades to an empty field on the affected question.
func Parse(text string) ([]Question, error) {
	m := &machine{st: stateIdle}
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		m.feed(line)
	}
	m.flush()

	if len(m.out) == 0 {
		excerpt := strings.TrimSpace(text)
		if len(excerpt) > excerptLen {
			excerpt = excerpt[:excerptLen]
		}
		return nil, &NoQuestionsError{Excerpt: excerpt}
	}

	for i := range m.out {
		m.out[i].AnswerPoints = buildPoints(&m.out[i])
	}
	return m.out, nil
}

type machine struct {
	out []Question
	cur *Question
	st  state
}

// feed dispatches one line through the prioritized rule table, falling back to
// state-specific handling when no labeled rule fires.
func (m *machine) feed(line string) {
	// 1. New-question marker.
	if id, rest, ok := questionMarker(line, len(m.out)); ok {
		m.flush()
		q := Question{ID: id, Teras: DefaultTeras}
		if t := reTeras.FindStringSubmatch(rest); t != nil {
			// Degenerate "Soalan 3 Teras: ..." line; the sub-label is the category.
			q.Teras = strings.TrimSpace(t[1])
		} else if rest != "" {
			q.Question = rest
		}
		m.cur = &q
		m.st = stateQuestionText
		return
	}
	if m.cur == nil {
		// Anything before the first marker is discarded.
		return
	}

	// 2. Category label.
	if t := reTeras.FindStringSubmatch(line); t != nil {
		m.cur.Teras = strings.TrimSpace(t[1])
		return
	}

	// 3. Explicit prompt label overwrites the prompt.
	if p := rePromptLabel.FindStringSubmatch(line); p != nil {
		m.cur.Question = strings.TrimSpace(p[1])
		m.st = stateQuestionText
		return
	}

	// 4. Statement label appends to the prompt.
	if s := reStatement.FindStringSubmatch(line); s != nil {
		part := strings.TrimSpace(s[1])
		if m.cur.Question != "" {
			m.cur.Question += "\n\n" + part
		} else {
			m.cur.Question = part
		}
		m.st = stateQuestionText
		return
	}

	// 5. Options header.
	if reOptionsHead.MatchString(line) {
		m.st = stateOptions
		return
	}

	// 6. Answer label: first standalone A-E after the colon/dash wins.
	if loc := reAnswerHead.FindStringIndex(line); loc != nil {
		if l := reLetter.FindStringSubmatch(line[loc[1]:]); l != nil {
			m.cur.CorrectAnswer = strings.ToUpper(l[1])
		}
		m.st = stateMeta
		return
	}

	// 7. Explanation header; any remainder after the colon seeds the body.
	if e := reExplainHead.FindStringSubmatch(line); e != nil {
		if seed := strings.TrimSpace(e[1]); seed != "" {
			m.appendExplanation(seed)
		}
		m.st = stateExplanation
		return
	}

	m.fallthru(line)
}

// fallthru handles lines that carry data for the current state rather than a
// label.
func (m *machine) fallthru(line string) {
	switch m.st {
	case stateQuestionText:
		if o := reOptionLine.FindStringSubmatch(line); o != nil {
			// An option list started without its header line.
			m.appendOption(o)
			m.st = stateOptions
			return
		}
		if m.cur.Question != "" {
			m.cur.Question += "\n" + line
		} else {
			m.cur.Question = line
		}
	case stateOptions:
		if o := reOptionLine.FindStringSubmatch(line); o != nil {
			m.appendOption(o)
		}
	case stateExplanation:
		m.appendExplanation(line)
	case stateMeta:
		// Trailing commentary after the answer line carries no data.
	}
}

func (m *machine) appendOption(match []string) {
	m.cur.Options = append(m.cur.Options, Option{
		Label: strings.ToUpper(match[1]),
		Text:  strings.TrimSpace(match[2]),
	})
}

func (m *machine) appendExplanation(line string) {
	if m.cur.Explanation != "" {
		m.cur.Explanation += "\n" + line
	} else {
		m.cur.Explanation = line
	}
}

func (m *machine) flush() {
	if m.cur != nil {
		m.out = append(m.out, *m.cur)
		m.cur = nil
	}
}

// questionMarker recognizes "Soalan N" / "Question N" prefixes and bare
// "N." / "N)" / "N-" / "N:" lines. A bare marker whose remainder starts with
// another digit is left alone so decimal figures ("3.14 ...") are not
// mistaken for questions.
func questionMarker(line string, parsed int) (int, string, bool) {
	if w := reQuestionWord.FindStringSubmatch(line); w != nil {
		return parseID(w[1], parsed), strings.TrimSpace(w[2]), true
	}
	if n := reNumbered.FindStringSubmatch(line); n != nil {
		rest := strings.TrimSpace(n[2])
		if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
			return 0, "", false
		}
		return parseID(n[1], parsed), rest, true
	}
	return 0, "", false
}

func parseID(digits string, parsed int) int {
	id, err := strconv.Atoi(digits)
	if err != nil {
		return parsed + 1
	}
	return id
}

// buildPoints derives the per-label points table: the best answer is worth
// BestAnswerPoints, every other label present in the options is worth zero.
func buildPoints(q *Question) map[string]int {
	points := make(map[string]int, len(q.Options)+1)
	for _, opt := range q.Options {
		points[opt.Label] = 0
	}
	if q.CorrectAnswer != "" {
		points[q.CorrectAnswer] = BestAnswerPoints
	}
	return points
}
