package models

import "time"

// CallRecord is an archived call: the final booking record plus the full
// transcript, persisted when a call ends.
type CallRecord struct {
	ID            string        `bson:"_id,omitempty" json:"id"`
	SessionID     string        `bson:"session_id" json:"sessionId"`
	Record        BookingRecord `bson:"record" json:"record"`
	Transcript    []Message     `bson:"transcript" json:"transcript"`
	Submitted     bool          `bson:"submitted" json:"submitted"`
	SubmitOutcome string        `bson:"submit_outcome,omitempty" json:"submitOutcome,omitempty"`
	AudioPath     string        `bson:"audio_path,omitempty" json:"audioPath,omitempty"`
	StartedAt     time.Time     `bson:"started_at" json:"startedAt"`
	EndedAt       time.Time     `bson:"ended_at" json:"endedAt"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
}

// CallContext is the lightweight per-call snapshot cached in Redis so that
// mid-call state can be inspected without touching the live session.
type CallContext struct {
	SessionID string        `json:"sessionId"`
	Record    BookingRecord `json:"record"`
	Turns     int           `json:"turns"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
