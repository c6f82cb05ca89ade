package collector

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

func testConfig(display string) *config.Normalized {
	return &config.Normalized{
		Answers: []models.AnswerOption{
			{Label: "no", Value: 0},
			{Label: "yes", Value: 5},
		},
		Input: config.InputConfig{Display: display},
	}
}

func TestCollectFromForm(t *testing.T) {
	c := New(testQuestions(), testConfig(config.DisplayTable))
	form := NewFormState()
	form.SetSelected("A1", 1)
	form.SetSelected("B1", 0)
	form.SetSelected("unknown", 1) // not in the question list
	form.SetSelected("A2", 7)      // out of range
	form.ClearSelected("B1")

	set := c.CollectFromForm(form)
	want := models.AnswerSet{"A1": 1}
	if !set.Equal(want) {
		t.Errorf("Expected %v, got %v", want, set)
	}
}

func TestReconcileChoosesExactlyOneSource(t *testing.T) {
	form := NewFormState()
	form.SetSelected("A1", 0)

	stepper := NewStepperState()
	stepper.SetSelected("B1", 1)

	tableCollector := New(testQuestions(), testConfig(config.DisplayTable))
	set := tableCollector.Reconcile(form, stepper)
	if !set.Equal(models.AnswerSet{"A1": 0}) {
		t.Errorf("Table mode must read the form only, got %v", set)
	}

	stepperCollector := New(testQuestions(), testConfig(config.DisplayStepper))
	set = stepperCollector.Reconcile(form, stepper)
	if !set.Equal(models.AnswerSet{"B1": 1}) {
		t.Errorf("Stepper mode must read the stepper state only, got %v", set)
	}
}

func TestValidateCompleteness(t *testing.T) {
	c := New(testQuestions(), testConfig(config.DisplayTable))

	testCases := []struct {
		name       string
		set        models.AnswerSet
		complete   bool
		missingIDs []string
	}{
		{"complete", models.AnswerSet{"A1": 0, "A2": 1, "B1": 0}, true, nil},
		{"one missing", models.AnswerSet{"A1": 0, "B1": 0}, false, []string{"A2"}},
		{"empty", models.AnswerSet{}, false, []string{"A1", "A2", "B1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := c.ValidateCompleteness(tc.set)
			if result.Complete != tc.complete {
				t.Fatalf("Expected complete=%v, got %v", tc.complete, result.Complete)
			}
			if len(result.Missing) != len(tc.missingIDs) {
				t.Fatalf("Expected %d missing, got %d", len(tc.missingIDs), len(result.Missing))
			}
			for i, id := range tc.missingIDs {
				if result.Missing[i].ID != id {
					t.Errorf("Missing[%d]: expected %s, got %s", i, id, result.Missing[i].ID)
				}
			}
		})
	}
}

func TestRestoreAppliesOnlyValidEntries(t *testing.T) {
	c := New(testQuestions(), testConfig(config.DisplayTable))
	form := NewFormState()

	c.Restore(models.AnswerSet{"A1": 1, "A2": 9, "Z9": 0}, form)

	if idx, ok := form.Selected("A1"); !ok || idx != 1 {
		t.Errorf("Expected A1 restored to 1, got %d (present=%v)", idx, ok)
	}
	if _, ok := form.Selected("A2"); ok {
		t.Error("Expected out-of-range index not restored")
	}
	if _, ok := form.Selected("Z9"); ok {
		t.Error("Expected unknown question not restored")
	}
}

func TestStepperState(t *testing.T) {
	s := NewStepperState()
	if s.Current() != 0 {
		t.Fatalf("Expected stepper to start at 0, got %d", s.Current())
	}
	s.SetSelected("A1", 1)
	s.Advance()
	s.SetSelected("A2", 0)
	if s.Current() != 1 {
		t.Errorf("Expected current step 1, got %d", s.Current())
	}
	s.JumpTo(0)
	if s.Current() != 0 {
		t.Errorf("Expected jump back to 0, got %d", s.Current())
	}

	answers := s.Answers()
	answers["B1"] = 1 // must not leak back into the state
	if _, ok := s.answers["B1"]; ok {
		t.Error("Answers() must return a copy")
	}
}
