package service

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
)

// NoAIFeedbackMessage opens the feedback written when the model could not score an answer.
const NoAIFeedbackMessage = "No AI feedback was available"

// normalizeSelection decodes a multiple-choice payload: a single index, a
// list of indices or null. The result is sorted and de-duplicated.
func normalizeSelection(raw json.RawMessage) ([]int, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []int{}, nil
	}

	var list []int
	if err := json.Unmarshal(raw, &list); err != nil {
		var single int
		if errSingle := json.Unmarshal(raw, &single); errSingle != nil {
			return nil, fmt.Errorf("expected an option index or a list of option indices")
		}
		list = []int{single}
	}

	seen := make(map[int]struct{}, len(list))
	out := make([]int, 0, len(list))
	for _, idx := range list {
		if idx < 0 {
			return nil, fmt.Errorf("option index %d is negative", idx)
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	sort.Ints(out)
	return out, nil
}

// normalizeText decodes a coding or scenario payload. null is the empty answer.
func normalizeText(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("expected a text answer")
	}
	return s, nil
}

// keyMatch is set equality between the selection and the answer key.
func keyMatch(selected, key []int) bool {
	keySet := toSet(key)
	if len(keySet) != len(selected) {
		return false
	}
	for _, idx := range selected {
		if _, ok := keySet[idx]; !ok {
			return false
		}
	}
	return true
}

// partialCredit is (correctSelected - incorrectSelected) / max(1, |key|),
// clamped to [0, 1].
func partialCredit(selected, key []int) float64 {
	keySet := toSet(key)
	correct, incorrect := 0, 0
	for _, idx := range selected {
		if _, ok := keySet[idx]; ok {
			correct++
		} else {
			incorrect++
		}
	}
	denom := len(keySet)
	if denom < 1 {
		denom = 1
	}
	return clamp(float64(correct-incorrect)/float64(denom), 0, 1)
}

func toSet(xs []int) map[int]struct{} {
	out := make(map[int]struct{}, len(xs))
	for _, x := range xs {
		out[x] = struct{}{}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// fallbackFeedback is written when the rubric call fails or returns no usable score.
func fallbackFeedback(q *model.Question, response string) string {
	rubric := q.RubricData()

	var b strings.Builder
	b.WriteString(NoAIFeedbackMessage)
	b.WriteString(" for this answer; it was scored 0.")
	if len(rubric.Criteria) > 0 {
		b.WriteString(" Rubric criteria: ")
		b.WriteString(strings.Join(rubric.Criteria, "; "))
		b.WriteString(".")
	}
	if len(rubric.KeyPoints) > 0 {
		b.WriteString(" Key points: ")
		b.WriteString(strings.Join(rubric.KeyPoints, "; "))
		b.WriteString(".")
	}
	if len(rubric.Criteria) == 0 && len(rubric.KeyPoints) == 0 {
		b.WriteString(" No rubric was recorded for this question.")
	}
	b.WriteString(fmt.Sprintf(" Response length: %d characters.", utf8.RuneCountInString(response)))
	return b.String()
}

// ScoredItem is one graded question as seen by the reducer.
type ScoredItem struct {
	QuestionType string
	Score        float64
	MaxScore     float64
}

// Totals is the folded result. A subtotal is nil when the max scores of its
// kind sum to zero; a kind that was present but scored 0 keeps a non-nil 0.
type Totals struct {
	Overall      float64
	OverallMax   float64
	Technical    *float64
	TechnicalMax float64
	Soft         *float64
	SoftMax      float64
}

// Aggregate folds graded items into the overall sum and per-kind subtotals.
// Technical covers multiple_choice and coding, soft covers scenario.
func Aggregate(items []ScoredItem) Totals {
	var t Totals
	var techScore, softScore float64
	for _, it := range items {
		t.Overall += it.Score
		t.OverallMax += it.MaxScore
		if it.QuestionType == model.QuestionTypeScenario {
			softScore += it.Score
			t.SoftMax += it.MaxScore
		} else {
			techScore += it.Score
			t.TechnicalMax += it.MaxScore
		}
	}
	t.Overall = round2(t.Overall)
	if t.TechnicalMax > 0 {
		v := round2(techScore)
		t.Technical = &v
	}
	if t.SoftMax > 0 {
		v := round2(softScore)
		t.Soft = &v
	}
	return t
}
