package models

import "time"

// Snapshot is a persisted answer set with the time it was last written.
// Snapshots are keyed externally by (session token, questionnaire folder).
type Snapshot struct {
	Answers   AnswerSet `json:"answers"`
	Timestamp time.Time `json:"timestamp"`
}

// SnapshotDocument is the Mongo representation used by the storage service.
type SnapshotDocument struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	SessionToken  string    `bson:"session_token" json:"session_token"`
	Questionnaire string    `bson:"questionnaire" json:"questionnaire"`
	Answers       AnswerSet `bson:"answers" json:"answers"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
