package service

import (
	"context"
	"fmt"

	"survey-engine/internal/models"
	"survey-engine/internal/scoring"
)

// ResultService turns a stored snapshot into the per-category result map
// handed to the results view.
type ResultService struct {
	Snapshots      *SnapshotService
	Questionnaires *QuestionnaireService
}

func NewResultService(snapshots *SnapshotService, questionnaires *QuestionnaireService) *ResultService {
	return &ResultService{Snapshots: snapshots, Questionnaires: questionnaires}
}

func (s *ResultService) ResultsFor(ctx context.Context, token, folder string) (map[string]models.CategoryScore, error) {
	snap, err := s.Snapshots.Load(ctx, token, folder)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, nil
	}

	q, err := s.Questionnaires.Get(folder)
	if err != nil {
		return nil, fmt.Errorf("load questionnaire: %w", err)
	}

	engine := scoring.NewEngine(q.Questions, q.Config)
	return engine.Results(snap.Answers), nil
}
