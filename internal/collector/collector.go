package collector

import (
	"survey-engine/internal/config"
	"survey-engine/internal/models"
)

// FormState is the in-memory model of the standard (table or cards) form:
// one selected option index per question. The rendering layer keeps it in
// sync with the actual inputs; this package never touches a DOM.
type FormState struct {
	selected map[string]int
}

func NewFormState() *FormState {
	return &FormState{selected: map[string]int{}}
}

func (f *FormState) SetSelected(questionID string, index int) {
	f.selected[questionID] = index
}

func (f *FormState) ClearSelected(questionID string) {
	delete(f.selected, questionID)
}

func (f *FormState) Selected(questionID string) (int, bool) {
	idx, ok := f.selected[questionID]
	return idx, ok
}

// StepperState is the wizard-mode answer map. Only one question is
// rendered at a time in stepper mode, so this map is authoritative while
// the mode is active.
type StepperState struct {
	answers models.AnswerSet
	current int
}

func NewStepperState() *StepperState {
	return &StepperState{answers: models.AnswerSet{}}
}

func (s *StepperState) SetSelected(questionID string, index int) {
	s.answers[questionID] = index
}

func (s *StepperState) Current() int    { return s.current }
func (s *StepperState) Advance()        { s.current++ }
func (s *StepperState) JumpTo(step int) { s.current = step }

func (s *StepperState) Answers() models.AnswerSet {
	return s.answers.Clone()
}

// Applier is the write capability the rendering layer exposes for
// restoring answers into the live UI.
type Applier interface {
	SetSelected(questionID string, index int)
}

// Completeness reports whether an answer set covers every question, and
// which ones are missing. A partial set is expected state during form
// filling, not an error.
type Completeness struct {
	Complete bool
	Missing  []models.Question
}

// Collector reconciles answers from the mutually exclusive sources into
// one canonical answer set.
type Collector struct {
	questions   []models.Question
	optionCount int
	display     string
}

func New(questions []models.Question, cfg *config.Normalized) *Collector {
	return &Collector{
		questions:   questions,
		optionCount: len(cfg.Answers),
		display:     cfg.Input.Display,
	}
}

// CollectFromForm reads the form model. Purely a read.
func (c *Collector) CollectFromForm(form *FormState) models.AnswerSet {
	set := models.AnswerSet{}
	for _, q := range c.questions {
		if idx, ok := form.Selected(q.ID); ok && c.validIndex(idx) {
			set[q.ID] = idx
		}
	}
	return set
}

// CollectFromStepper reads the wizard answer map.
func (c *Collector) CollectFromStepper(stepper *StepperState) models.AnswerSet {
	set := models.AnswerSet{}
	for id, idx := range stepper.Answers() {
		if c.knownQuestion(id) && c.validIndex(idx) {
			set[id] = idx
		}
	}
	return set
}

// Reconcile chooses exactly one source based on the active display mode.
// Stepper state and form state are never merged.
func (c *Collector) Reconcile(form *FormState, stepper *StepperState) models.AnswerSet {
	if c.display == config.DisplayStepper {
		return c.CollectFromStepper(stepper)
	}
	return c.CollectFromForm(form)
}

// ValidateCompleteness reports missing questions in question-list order.
func (c *Collector) ValidateCompleteness(set models.AnswerSet) Completeness {
	result := Completeness{Complete: true}
	for _, q := range c.questions {
		if _, ok := set[q.ID]; !ok {
			result.Complete = false
			result.Missing = append(result.Missing, q)
		}
	}
	return result
}

// Restore applies a canonical answer set back into the live UI through the
// given applier, skipping entries for unknown questions or out-of-range
// indices.
func (c *Collector) Restore(set models.AnswerSet, target Applier) {
	for _, q := range c.questions {
		if idx, ok := set[q.ID]; ok && c.validIndex(idx) {
			target.SetSelected(q.ID, idx)
		}
	}
}

func (c *Collector) knownQuestion(id string) bool {
	for _, q := range c.questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

func (c *Collector) validIndex(idx int) bool {
	return idx >= 0 && (c.optionCount == 0 || idx < c.optionCount)
}
