package repository

import (
	"context"
	"time"

	"survey-engine/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SnapshotRepository struct {
	Col *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{Col: db.Collection("snapshots")}
}

// EnsureIndexes creates the unique (token, questionnaire) key and the TTL
// index that enforces the server-side retention window. The client never
// enforces expiry.
func (r *SnapshotRepository) EnsureIndexes(ctx context.Context, retention time.Duration) error {
	_, err := r.Col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_token", Value: 1}, {Key: "questionnaire", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(retention.Seconds())),
		},
	})
	return err
}

// Upsert keeps one document per (token, questionnaire) and bumps
// updated_at on every save.
func (r *SnapshotRepository) Upsert(ctx context.Context, token, folder string, answers models.AnswerSet, ts time.Time) error {
	filter := bson.M{"session_token": token, "questionnaire": folder}
	update := bson.M{"$set": bson.M{
		"answers":    answers,
		"updated_at": ts,
	}}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *SnapshotRepository) Find(ctx context.Context, token, folder string) (*models.SnapshotDocument, error) {
	var doc models.SnapshotDocument
	err := r.Col.FindOne(ctx, bson.M{"session_token": token, "questionnaire": folder}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes the snapshot and reports whether one existed.
func (r *SnapshotRepository) Delete(ctx context.Context, token, folder string) (bool, error) {
	res, err := r.Col.DeleteOne(ctx, bson.M{"session_token": token, "questionnaire": folder})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
