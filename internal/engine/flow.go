package engine

import (
	"context"

	"survey-engine/internal/codec"
	"survey-engine/internal/collector"
	"survey-engine/internal/config"
	"survey-engine/internal/models"
	"survey-engine/internal/persistence"
	"survey-engine/internal/scoring"
	"survey-engine/internal/session"
)

// Flow wires the questionnaire pipeline together for one session: URL
// state, live form or stepper state, persistence and scoring. The
// rendering layer drives it from its event callbacks.
type Flow struct {
	Codec     *codec.Codec
	Collector *collector.Collector
	Engine    *scoring.Engine
	Coord     *persistence.Coordinator

	sess      *session.Session
	questions []models.Question
}

func NewFlow(questions []models.Question, cfg *config.Normalized, sess *session.Session, coord *persistence.Coordinator) *Flow {
	return &Flow{
		Codec:     codec.New(questions, cfg, sess),
		Collector: collector.New(questions, cfg),
		Engine:    scoring.NewEngine(questions, cfg),
		Coord:     coord,
		sess:      sess,
		questions: questions,
	}
}

// RestoreOnLoad reconstructs the answer state for a fresh page load: the
// URL fragment is decoded, the persistence coordinator gets to override it
// per its policy, and the winning set is applied into the target while
// live encoding is suppressed. It returns the applied set and the load
// result (which carries a snapshot awaiting confirmation, if any).
func (f *Flow) RestoreOnLoad(ctx context.Context, fragment string, target collector.Applier) (models.AnswerSet, *persistence.LoadResult, error) {
	urlSet, _ := f.Codec.Decode(fragment)

	resolved, res, err := f.Coord.ResolveInitial(ctx, urlSet)
	if resolved == nil {
		resolved = models.AnswerSet{}
	}

	done := f.sess.BeginRestore()
	f.Collector.Restore(resolved, target)
	done()

	return resolved, res, err
}

// ApplySnapshot applies a snapshot the user confirmed restoring.
func (f *Flow) ApplySnapshot(snap *models.Snapshot, target collector.Applier) models.AnswerSet {
	if snap == nil {
		return models.AnswerSet{}
	}
	done := f.sess.BeginRestore()
	f.Collector.Restore(snap.Answers, target)
	done()
	return snap.Answers.Clone()
}

// OnAnswerChanged runs after every selection change: it reconciles the
// active source into the canonical set, persists it per policy and returns
// the fragment the page should write into the URL (ok=false while a
// restore is in progress). Persistence errors are returned after the
// fragment is computed so the caller can both update the URL and surface a
// transient notice.
func (f *Flow) OnAnswerChanged(ctx context.Context, form *collector.FormState, stepper *collector.StepperState) (string, bool, error) {
	set := f.Collector.Reconcile(form, stepper)
	fragment, ok := f.Codec.EncodeLive(set)
	err := f.Coord.SaveAnswers(ctx, set)
	return fragment, ok, err
}

// Submit validates completeness and computes the results handed to the
// results view. An incomplete set is not an error; the caller blocks
// submission and highlights the missing questions.
func (f *Flow) Submit(form *collector.FormState, stepper *collector.StepperState) (map[string]models.CategoryScore, collector.Completeness) {
	set := f.Collector.Reconcile(form, stepper)
	completeness := f.Collector.ValidateCompleteness(set)
	if !completeness.Complete {
		return nil, completeness
	}
	return f.Engine.Results(set), completeness
}

// ResultsFromFragment scores a bookmarked results URL without any live
// form state. A fragment that does not decode yields nil; the results
// page starts blank.
func (f *Flow) ResultsFromFragment(fragment string) map[string]models.CategoryScore {
	set, ok := f.Codec.Decode(fragment)
	if !ok {
		return nil
	}
	return f.Engine.Results(set)
}
