package service

import (
	"context"
	"errors"
	"time"

	"survey-engine/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SnapshotStore is what the service needs from the repository layer.
type SnapshotStore interface {
	Upsert(ctx context.Context, token, folder string, answers models.AnswerSet, ts time.Time) error
	Find(ctx context.Context, token, folder string) (*models.SnapshotDocument, error)
	Delete(ctx context.Context, token, folder string) (bool, error)
}

type SnapshotService struct {
	Store SnapshotStore
}

func NewSnapshotService(store SnapshotStore) *SnapshotService {
	return &SnapshotService{Store: store}
}

func (s *SnapshotService) Save(ctx context.Context, token, folder string, answers models.AnswerSet, ts time.Time) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return s.Store.Upsert(ctx, token, folder, answers, ts)
}

// Load returns (nil, nil) when no snapshot exists for the key.
func (s *SnapshotService) Load(ctx context.Context, token, folder string) (*models.Snapshot, error) {
	doc, err := s.Store.Find(ctx, token, folder)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.Snapshot{Answers: doc.Answers, Timestamp: doc.UpdatedAt}, nil
}

// Clear deletes the snapshot; reports whether one existed.
func (s *SnapshotService) Clear(ctx context.Context, token, folder string) (bool, error) {
	return s.Store.Delete(ctx, token, folder)
}
