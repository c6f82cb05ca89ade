package scoring

import (
	"math"

	"survey-engine/internal/config"
	"survey-engine/internal/models"
)

// Engine computes category scores from a canonical answer set. All methods
// are synchronous and recompute from scratch; nothing is cached across
// answer-set changes.
type Engine struct {
	questions []models.Question
	options   []models.AnswerOption
	cfg       *config.Normalized

	// All questions share the one configured option list, so the per
	// category maximum uses the global max option value. A per-question
	// option list would have to revisit this.
	maxOptionValue float64
}

func NewEngine(questions []models.Question, cfg *config.Normalized) *Engine {
	return &Engine{
		questions:      questions,
		options:        cfg.Answers,
		cfg:            cfg,
		maxOptionValue: models.MaxOptionValue(cfg.Answers),
	}
}

// Scores returns the summed option values per category. Every known
// category starts at 0; unknown question ids in the set are ignored so
// bookmarked URLs survive question-set changes in either direction.
func (e *Engine) Scores(set models.AnswerSet) map[string]float64 {
	scores := make(map[string]float64, len(e.cfg.Categories))
	for key := range e.cfg.Categories {
		scores[key] = 0
	}
	byID := make(map[string]models.Question, len(e.questions))
	for _, q := range e.questions {
		byID[q.ID] = q
	}
	for id, idx := range set {
		q, ok := byID[id]
		if !ok {
			continue
		}
		if idx < 0 || idx >= len(e.options) {
			continue
		}
		scores[q.Category] += e.options[idx].Value
	}
	return scores
}

// MaxScore is the highest attainable score for a category: question count
// times the maximum option value.
func (e *Engine) MaxScore(categoryKey string) float64 {
	count := 0
	for _, q := range e.questions {
		if q.Category == categoryKey {
			count++
		}
	}
	return float64(count) * e.maxOptionValue
}

// Percentage converts a score into a 0-100 percentage with two-decimal
// precision. A zero max yields 0, not NaN.
func Percentage(score, maxScore float64) float64 {
	if maxScore == 0 {
		return 0
	}
	return math.Round(score/maxScore*10000) / 100
}

// Results produces the full per-category result map handed to the results
// view (table, tiles, charts).
func (e *Engine) Results(set models.AnswerSet) map[string]models.CategoryScore {
	scores := e.Scores(set)
	out := make(map[string]models.CategoryScore, len(scores))
	for key, score := range scores {
		max := e.MaxScore(key)
		pct := Percentage(score, max)
		bucket, _ := Classify(pct, e.cfg.TrafficLights)
		out[key] = models.CategoryScore{
			CategoryKey:  key,
			CategoryName: e.cfg.Categories[key],
			Score:        score,
			MaxScore:     max,
			Percentage:   pct,
			Bucket:       bucket,
		}
	}
	return out
}
