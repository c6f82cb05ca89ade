package scoring

import (
	"testing"

	"survey-engine/internal/config"
	"survey-engine/internal/models"
)

func testQuestions() []models.Question {
	return []models.Question{
		{ID: "A1", Text: "q1", Category: "A"},
		{ID: "A2", Text: "q2", Category: "A"},
		{ID: "B1", Text: "q3", Category: "B"},
	}
}

func twoOptionConfig() *config.Normalized {
	return &config.Normalized{
		Answers: []models.AnswerOption{
			{Label: "no", Value: 0},
			{Label: "yes", Value: 5},
		},
		Categories:    map[string]string{"A": "Alignment", "B": "Balance"},
		CategoryOrder: []string{"A", "B"},
	}
}

func TestScoresEndToEnd(t *testing.T) {
	engine := NewEngine(testQuestions(), twoOptionConfig())
	set := models.AnswerSet{"A1": 1, "A2": 0, "B1": 1}

	scores := engine.Scores(set)
	if scores["A"] != 5 || scores["B"] != 5 {
		t.Errorf("Expected scores A=5 B=5, got %v", scores)
	}

	if max := engine.MaxScore("A"); max != 10 {
		t.Errorf("Expected max score A=10, got %v", max)
	}
	if max := engine.MaxScore("B"); max != 5 {
		t.Errorf("Expected max score B=5, got %v", max)
	}

	results := engine.Results(set)
	if results["A"].Percentage != 50 {
		t.Errorf("Expected A percentage 50, got %v", results["A"].Percentage)
	}
	if results["B"].Percentage != 100 {
		t.Errorf("Expected B percentage 100, got %v", results["B"].Percentage)
	}
	if results["A"].CategoryName != "Alignment" {
		t.Errorf("Expected category name Alignment, got %q", results["A"].CategoryName)
	}
}

func TestScoreAdditivity(t *testing.T) {
	engine := NewEngine(testQuestions(), twoOptionConfig())

	// Every question in A answered with the max-value option.
	set := models.AnswerSet{"A1": 1, "A2": 1}
	scores := engine.Scores(set)
	if scores["A"] != 10 {
		t.Errorf("Expected A score 2*5=10, got %v", scores["A"])
	}
	if pct := Percentage(scores["A"], engine.MaxScore("A")); pct != 100 {
		t.Errorf("Expected 100%% for all-max answers, got %v", pct)
	}
}

func TestScoresIgnoreUnknownQuestions(t *testing.T) {
	engine := NewEngine(testQuestions(), twoOptionConfig())
	set := models.AnswerSet{"A1": 1, "Z9": 1}

	scores := engine.Scores(set)
	if scores["A"] != 5 {
		t.Errorf("Expected unknown id ignored, A=5, got %v", scores["A"])
	}
}

func TestEmptyCategoryScoresZero(t *testing.T) {
	cfg := twoOptionConfig()
	cfg.Categories["C"] = "Chemistry"
	engine := NewEngine(testQuestions(), cfg)

	scores := engine.Scores(models.AnswerSet{"A1": 1})
	if got, ok := scores["C"]; !ok || got != 0 {
		t.Errorf("Expected empty category C present with score 0, got %v (present=%v)", got, ok)
	}
	if max := engine.MaxScore("C"); max != 0 {
		t.Errorf("Expected empty category max 0, got %v", max)
	}
}

func TestPercentage(t *testing.T) {
	testCases := []struct {
		name     string
		score    float64
		max      float64
		expected float64
	}{
		{"half", 5, 10, 50},
		{"full", 5, 5, 100},
		{"zero max", 3, 0, 0},
		{"two decimals", 1, 3, 33.33},
		{"rounds up", 2, 3, 66.67},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Percentage(tc.score, tc.max); got != tc.expected {
				t.Errorf("Percentage(%v, %v) = %v, expected %v", tc.score, tc.max, got, tc.expected)
			}
		})
	}
}
