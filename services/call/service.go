// File: services/call/service.go
package call

import (
	"context"
	"fmt"
	"sync"
	"time"

	"droptruck/cron"
	callRecordRepo "droptruck/database/repository/callrecord"
	catalogRepo "droptruck/database/repository/catalog"
	"droptruck/models"
	"droptruck/services/agent"
	"droptruck/services/audio"
	"droptruck/services/dispatch"
	ai "droptruck/services/intelligence"
	"droptruck/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TurnResult is the outcome of one processed utterance.
type TurnResult struct {
	Reply         string               `json:"reply"`
	Record        models.BookingRecord `json:"record"`
	MissingFields []string             `json:"missingFields,omitempty"`
	CallFinished  bool                 `json:"callFinished"`
	Submitted     bool                 `json:"submitted"`
	SubmitOutcome string               `json:"submitOutcome,omitempty"`
}

// CallService runs voice-agent call sessions end to end.
type CallService interface {
	StartCall(ctx context.Context) (string, error)
	HandleUtterance(ctx context.Context, sessionID, text string) (*TurnResult, error)
	SaveAudioTurn(sessionID string, wav []byte) (string, error)
	GetBooking(sessionID string) (*models.BookingRecord, error)
	Transcript(sessionID string) ([]models.Message, error)
	EndCall(ctx context.Context, sessionID string) (*models.CallRecord, error)
}

// session serializes all access to one call: mu is held across a full turn
// so one utterance is completely processed before the next is accepted.
type session struct {
	mu            sync.Mutex
	conversation  *agent.Conversation
	recorder      *audio.ConversationRecorder
	startedAt     time.Time
	turns         int
	submitTried   bool
	submitted     bool
	submitOutcome string
}

// DefaultCallService implements CallService with in-memory sessions.
type DefaultCallService struct {
	Responder ai.Responder
	Catalog   catalogRepo.CatalogRepository
	Dispatch  *dispatch.Client
	CtxStore  *ai.RedisContextStore
	Records   callRecordRepo.CallRecordRepository

	// FollowUps, when set, schedules a sales follow-up for calls that end
	// with a contact number but no submitted booking.
	FollowUps *cron.Enqueuer

	// AudioDir, when set, enables per-session call recording under that
	// directory. Recording failures never fail a call.
	AudioDir string

	mu       sync.Mutex
	sessions map[string]*session
}

// NewDefaultCallService wires a call service from its collaborators. Catalog,
// CtxStore and Records may be nil; the service then runs with defaults only.
func NewDefaultCallService(responder ai.Responder, catalog catalogRepo.CatalogRepository,
	dispatchClient *dispatch.Client, ctxStore *ai.RedisContextStore,
	records callRecordRepo.CallRecordRepository) *DefaultCallService {
	return &DefaultCallService{
		Responder: responder,
		Catalog:   catalog,
		Dispatch:  dispatchClient,
		CtxStore:  ctxStore,
		Records:   records,
		sessions:  make(map[string]*session),
	}
}

// StartCall creates a new session around a keyword snapshot built once from
// defaults plus whatever the catalog currently holds.
func (s *DefaultCallService) StartCall(ctx context.Context) (string, error) {
	vehicles, bodies := agent.BuildKeywordTables(ctx, s.Catalog)

	sessionID := uuid.New().String()
	sess := &session{
		conversation: agent.NewConversation(vehicles, bodies),
		startedAt:    time.Now(),
	}

	if s.AudioDir != "" {
		recorder, err := audio.NewConversationRecorder(sessionID, s.AudioDir)
		if err != nil {
			utils.GetLogger().Warn("Call recording disabled for session",
				zap.String("sessionID", sessionID), zap.Error(err))
		} else {
			recorder.Start()
			sess.recorder = recorder
		}
	}

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	utils.GetLogger().Info("Call started", zap.String("sessionID", sessionID))
	return sessionID, nil
}

func (s *DefaultCallService) lookup(sessionID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("call session %s not found", sessionID)
	}
	return sess, nil
}

// HandleUtterance runs one full turn: extraction on the customer's text,
// response generation, extraction on the assistant's reply, then submission
// once the record is complete and confirmed.
func (s *DefaultCallService) HandleUtterance(ctx context.Context, sessionID, text string) (*TurnResult, error) {
	logger := utils.GetLogger()
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	conv := sess.conversation

	if !conv.ObserveUser(text) {
		return &TurnResult{Reply: agent.RePrompt, Record: *conv.Record()}, nil
	}
	sess.turns++

	reply, err := s.Responder.Respond(ctx, conv.Window())
	if err != nil {
		// Extraction already ran on the input; the call continues.
		logger.Warn("Response generation failed", zap.String("sessionID", sessionID), zap.Error(err))
		return &TurnResult{
			Reply:         agent.RetryPrompt,
			Record:        *conv.Record(),
			MissingFields: conv.Record().MissingFields(),
		}, nil
	}
	conv.ObserveAssistant(reply)

	s.snapshotContext(ctx, sessionID, sess)
	s.maybeSubmit(ctx, sessionID, sess)

	return &TurnResult{
		Reply:         reply,
		Record:        *conv.Record(),
		MissingFields: conv.Record().MissingFields(),
		CallFinished:  conv.IsCallFinished(),
		Submitted:     sess.submitted,
		SubmitOutcome: sess.submitOutcome,
	}, nil
}

// snapshotContext mirrors the current record into Redis, best-effort.
func (s *DefaultCallService) snapshotContext(ctx context.Context, sessionID string, sess *session) {
	if s.CtxStore == nil {
		return
	}
	snapshot := &models.CallContext{
		SessionID: sessionID,
		Record:    *sess.conversation.Record(),
		Turns:     sess.turns,
		UpdatedAt: time.Now(),
	}
	if err := s.CtxStore.Set(ctx, sessionID, snapshot); err != nil {
		utils.GetLogger().Warn("Failed to cache call context", zap.String("sessionID", sessionID), zap.Error(err))
	}
}

// maybeSubmit sends the booking once per call, when the record is complete
// and the customer has confirmed. Failed submissions are not retried here;
// the outcome is surfaced for the caller to decide.
func (s *DefaultCallService) maybeSubmit(ctx context.Context, sessionID string, sess *session) {
	if sess.submitTried || s.Dispatch == nil || !sess.conversation.ReadyToSubmit() {
		return
	}
	sess.submitTried = true

	result, err := s.Dispatch.SendBooking(ctx, sess.conversation.Record())
	sess.submitOutcome = string(result.Outcome)
	if err != nil {
		utils.GetLogger().Warn("Booking submission failed",
			zap.String("sessionID", sessionID),
			zap.String("outcome", string(result.Outcome)),
			zap.Error(err))
		return
	}
	sess.submitted = true
}

// SaveAudioTurn stores one WAV-encoded customer utterance as a segment of the
// session's recording and returns the segment path. It is a no-op when
// recording is disabled for the session.
func (s *DefaultCallService) SaveAudioTurn(sessionID string, wav []byte) (string, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.recorder == nil {
		return "", nil
	}

	pcm, err := audio.ExtractPCM(wav)
	if err != nil {
		return "", fmt.Errorf("invalid audio turn: %w", err)
	}
	sess.recorder.AddChunk(pcm)
	return sess.recorder.SaveUserSegment()
}

// GetBooking returns a snapshot of the booking record so callers never read
// the live record while a turn is in flight.
func (s *DefaultCallService) GetBooking(sessionID string) (*models.BookingRecord, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	record := *sess.conversation.Record()
	return &record, nil
}

func (s *DefaultCallService) Transcript(sessionID string) ([]models.Message, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.conversation.Messages(), nil
}

// EndCall removes the session, clears its cached context, and archives the
// call. Archiving is best-effort; a storage failure never loses the returned
// record.
func (s *DefaultCallService) EndCall(ctx context.Context, sessionID string) (*models.CallRecord, error) {
	logger := utils.GetLogger()

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("call session %s not found", sessionID)
	}

	// The session is already out of the map; taking its mutex waits for any
	// turn still in flight to finish before we read the conversation.
	sess.mu.Lock()
	defer sess.mu.Unlock()

	record := models.CallRecord{
		SessionID:     sessionID,
		Record:        *sess.conversation.Record(),
		Transcript:    sess.conversation.Messages(),
		Submitted:     sess.submitted,
		SubmitOutcome: sess.submitOutcome,
		StartedAt:     sess.startedAt,
		EndedAt:       time.Now(),
	}

	if sess.recorder != nil {
		if err := sess.recorder.Stop(); err != nil {
			logger.Warn("Failed to flush call recording", zap.String("sessionID", sessionID), zap.Error(err))
		}
		// A call with no audio turns has nothing to merge; that is normal.
		merged, err := sess.recorder.MergeConversation()
		if err != nil {
			logger.Warn("Call recording not merged", zap.String("sessionID", sessionID), zap.Error(err))
		} else {
			record.AudioPath = merged
		}
	}

	if s.CtxStore != nil {
		if err := s.CtxStore.Clear(ctx, sessionID); err != nil {
			logger.Warn("Failed to clear call context", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}

	if s.Records != nil {
		if _, err := s.Records.Create(ctx, record); err != nil {
			logger.Warn("Failed to archive call record", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}

	if s.FollowUps != nil && !sess.submitted && record.Record.Contact != "" {
		payload := cron.FollowUpPayload{
			SessionID:     sessionID,
			CustomerName:  record.Record.CustomerName,
			Contact:       record.Record.Contact,
			MissingFields: record.Record.MissingFields(),
			EndedAt:       record.EndedAt.Format(time.RFC3339),
		}
		if err := s.FollowUps.EnqueueFollowUp(payload); err != nil {
			logger.Warn("Failed to schedule follow-up", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}

	logger.Info("Call ended",
		zap.String("sessionID", sessionID),
		zap.Bool("submitted", sess.submitted),
		zap.String("status", string(record.Record.ConfirmationStatus)))
	return &record, nil
}
