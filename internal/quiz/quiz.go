// Package quiz holds the financial-literacy question bank and scores answer
// sheets against it. Scoring is stateless; rewards are applied by the
// progression engine.
package quiz

import (
	_ "embed"
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var questionsYAML []byte

// PassPercentage is the minimum score, in percent, that counts as a pass.
const PassPercentage = 60

// ErrAnswerCount is returned when an answer sheet does not cover every question.
var ErrAnswerCount = errors.New("quiz: answer count does not match question count")

// Question is a multiple-choice question with its answer key.
type Question struct {
	ID          string   `yaml:"id" json:"id"`
	Question    string   `yaml:"question" json:"question"`
	Options     []string `yaml:"options" json:"options"`
	Answer      int      `yaml:"answer" json:"answer"`
	Explanation string   `yaml:"explanation" json:"explanation"`
}

// PublicQuestion is a Question without its answer or explanation.
type PublicQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Review tells the player how one question went.
type Review struct {
	QuestionID  string `json:"question_id"`
	Selected    int    `json:"selected"`
	Answer      int    `json:"answer"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

// Result is a scored answer sheet.
type Result struct {
	Correct    int      `json:"correct"`
	Total      int      `json:"total"`
	Percentage int      `json:"percentage"`
	Passed     bool     `json:"passed"`
	Perfect    bool     `json:"perfect"`
	Review     []Review `json:"review,omitempty"`
}

// Bank is an immutable set of questions.
type Bank struct {
	questions []Question
}

// Default returns the embedded question bank. It panics if the embedded
// YAML is malformed, which can only happen at build time.
func Default() *Bank {
	b, err := Parse(questionsYAML)
	if err != nil {
		panic(err)
	}
	return b
}

// Parse decodes and validates a YAML question list.
func Parse(data []byte) (*Bank, error) {
	var qs []Question
	if err := yaml.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("quiz: decoding questions: %w", err)
	}
	if len(qs) == 0 {
		return nil, errors.New("quiz: question bank is empty")
	}
	seen := make(map[string]bool, len(qs))
	for i, q := range qs {
		if q.ID == "" || seen[q.ID] {
			return nil, fmt.Errorf("quiz: question %d has a missing or duplicate id %q", i, q.ID)
		}
		seen[q.ID] = true
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("quiz: question %q needs at least two options", q.ID)
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, fmt.Errorf("quiz: question %q answer %d out of range", q.ID, q.Answer)
		}
	}
	return &Bank{questions: qs}, nil
}

// Len is the number of questions.
func (b *Bank) Len() int { return len(b.questions) }

// Questions returns a copy of the full questions, answers included.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Key returns the answer key in question order.
func (b *Bank) Key() []int {
	key := make([]int, len(b.questions))
	for i, q := range b.questions {
		key[i] = q.Answer
	}
	return key
}

// Public strips answers and explanations for clients.
func (b *Bank) Public() []PublicQuestion {
	out := make([]PublicQuestion, len(b.questions))
	for i, q := range b.questions {
		out[i] = PublicQuestion{ID: q.ID, Question: q.Question, Options: q.Options}
	}
	return out
}

// Grade scores selected against the bank and attaches a per-question review.
func (b *Bank) Grade(selected []int) (Result, error) {
	res, err := Score(b.Key(), selected)
	if err != nil {
		return Result{}, err
	}
	res.Review = make([]Review, len(b.questions))
	for i, q := range b.questions {
		res.Review[i] = Review{
			QuestionID:  q.ID,
			Selected:    selected[i],
			Answer:      q.Answer,
			Correct:     selected[i] == q.Answer,
			Explanation: q.Explanation,
		}
	}
	return res, nil
}

// Score counts selected[i] == key[i]. A sheet passes at PassPercentage and
// is perfect when every answer matches.
func Score(key, selected []int) (Result, error) {
	if len(key) == 0 || len(key) != len(selected) {
		return Result{}, ErrAnswerCount
	}
	correct := 0
	for i := range key {
		if selected[i] == key[i] {
			correct++
		}
	}
	total := len(key)
	return Result{
		Correct:    correct,
		Total:      total,
		Percentage: int(math.Round(float64(correct) * 100 / float64(total))),
		Passed:     correct*100 >= PassPercentage*total,
		Perfect:    correct == total,
	}, nil
}
