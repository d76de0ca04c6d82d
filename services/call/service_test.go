package call

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"droptruck/models"
	"droptruck/services/agent"
	"droptruck/services/audio"
	"droptruck/services/dispatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedResponder returns canned replies in order.
type scriptedResponder struct {
	replies []string
	calls   int
}

func (r *scriptedResponder) Respond(ctx context.Context, window []models.Message) (string, error) {
	if r.calls >= len(r.replies) {
		return "", errors.New("no scripted reply left")
	}
	reply := r.replies[r.calls]
	r.calls++
	return reply, nil
}

// staticResponder always returns the same reply. Unlike scriptedResponder it
// holds no mutable state, so it is safe under concurrent turns.
type staticResponder struct {
	reply string
}

func (r staticResponder) Respond(ctx context.Context, window []models.Message) (string, error) {
	return r.reply, nil
}

type failingResponder struct{}

func (failingResponder) Respond(ctx context.Context, window []models.Message) (string, error) {
	return "", errors.New("model unavailable")
}

func TestHandleUtteranceUnknownSession(t *testing.T) {
	svc := NewDefaultCallService(&scriptedResponder{}, nil, nil, nil, nil)
	_, err := svc.HandleUtterance(context.Background(), "nope", "hello")
	assert.Error(t, err)
}

func TestHandleUtteranceWhitespaceReprompts(t *testing.T) {
	svc := NewDefaultCallService(&scriptedResponder{replies: []string{"unused"}}, nil, nil, nil, nil)
	id, err := svc.StartCall(context.Background())
	require.NoError(t, err)

	result, err := svc.HandleUtterance(context.Background(), id, "   ")
	require.NoError(t, err)
	assert.Equal(t, agent.RePrompt, result.Reply)

	// Nothing was appended to the transcript beyond the system turn.
	msgs, err := svc.Transcript(id)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestHandleUtteranceResponderFailure(t *testing.T) {
	svc := NewDefaultCallService(failingResponder{}, nil, nil, nil, nil)
	id, err := svc.StartCall(context.Background())
	require.NoError(t, err)

	result, err := svc.HandleUtterance(context.Background(), id, "from Chennai to Bangalore")
	require.NoError(t, err)
	assert.Equal(t, agent.RetryPrompt, result.Reply)

	// Extraction still ran on the customer's text.
	assert.Equal(t, "Chennai", result.Record.PickupLocation)
	assert.Equal(t, "Bangalore", result.Record.DropLocation)
}

func TestCallFlowSubmitsOnConfirmation(t *testing.T) {
	submissions := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		submissions++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	responder := &scriptedResponder{replies: []string{
		"Name Ravi Kumar, mobile 9066542031, pickup Chennai, drop Bangalore, truck tata ace, body Open, material Cement, date tomorrow. Correct?",
		"Your booking is confirmed. BOOKING_CONFIRMED Have a great day!",
	}}
	svc := NewDefaultCallService(responder, nil, dispatch.NewClient(srv.URL, nil), nil, nil)

	ctx := context.Background()
	id, err := svc.StartCall(ctx)
	require.NoError(t, err)

	result, err := svc.HandleUtterance(ctx, id, "from Chennai to Bangalore, tata ace, open body, carrying cement, tomorrow")
	require.NoError(t, err)
	assert.False(t, result.Submitted)
	assert.False(t, result.CallFinished)
	assert.Empty(t, result.MissingFields)

	result, err = svc.HandleUtterance(ctx, id, "yes, perfect")
	require.NoError(t, err)
	assert.True(t, result.Submitted)
	assert.Equal(t, string(dispatch.OutcomeSuccess), result.SubmitOutcome)
	assert.True(t, result.CallFinished)
	assert.Equal(t, 1, submissions)

	record, err := svc.EndCall(ctx, id)
	require.NoError(t, err)
	assert.True(t, record.Submitted)
	assert.Equal(t, models.StatusConfirmed, record.Record.ConfirmationStatus)
	assert.NotEmpty(t, record.Transcript)

	// The session is gone after EndCall.
	_, err = svc.Transcript(id)
	assert.Error(t, err)
	_, err = svc.EndCall(ctx, id)
	assert.Error(t, err)
}

func TestSubmitHappensOncePerCall(t *testing.T) {
	submissions := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		submissions++
		http.Error(w, "backend down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	responder := &scriptedResponder{replies: []string{"Noted.", "Noted again."}}
	svc := NewDefaultCallService(responder, nil, dispatch.NewClient(srv.URL, nil), nil, nil)

	ctx := context.Background()
	id, err := svc.StartCall(ctx)
	require.NoError(t, err)

	result, err := svc.HandleUtterance(ctx, id, "from Chennai to Bangalore, tata ace, open body, carrying cement, tomorrow. All correct, confirmed.")
	require.NoError(t, err)
	assert.False(t, result.Submitted)
	assert.Equal(t, string(dispatch.OutcomeAPIError), result.SubmitOutcome)
	assert.Equal(t, 1, submissions)

	// A failed submission is not retried on later turns.
	result, err = svc.HandleUtterance(ctx, id, "is it booked?")
	require.NoError(t, err)
	assert.False(t, result.Submitted)
	assert.Equal(t, 1, submissions)
}

// Turns on one session must be serialized: even when utterances for the same
// call arrive in parallel, each one is fully processed before the next, so no
// transcript entry is lost or interleaved.
func TestConcurrentTurnsOnOneSessionAreSerialized(t *testing.T) {
	svc := NewDefaultCallService(staticResponder{reply: "Noted."}, nil, nil, nil, nil)
	ctx := context.Background()
	id, err := svc.StartCall(ctx)
	require.NoError(t, err)

	const workers = 8
	const turnsPerWorker = 25

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < turnsPerWorker; j++ {
				_, err := svc.HandleUtterance(ctx, id, "we move cement every week")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	// System prompt plus one customer and one assistant message per turn.
	msgs, err := svc.Transcript(id)
	require.NoError(t, err)
	assert.Len(t, msgs, 1+2*workers*turnsPerWorker)
}

func TestCallRecordingMergedOnEnd(t *testing.T) {
	svc := NewDefaultCallService(staticResponder{reply: "Noted."}, nil, nil, nil, nil)
	svc.AudioDir = t.TempDir()

	ctx := context.Background()
	id, err := svc.StartCall(ctx)
	require.NoError(t, err)

	pcm := bytes.Repeat([]byte{0x01, 0x02}, 1600)
	segment, err := svc.SaveAudioTurn(id, audio.EncodeWAV(pcm))
	require.NoError(t, err)
	require.NotEmpty(t, segment)
	_, err = os.Stat(segment)
	assert.NoError(t, err)

	_, err = svc.HandleUtterance(ctx, id, "from Chennai to Bangalore")
	require.NoError(t, err)

	record, err := svc.EndCall(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, record.AudioPath)

	merged, err := os.ReadFile(record.AudioPath)
	require.NoError(t, err)
	got, err := audio.ExtractPCM(merged)
	require.NoError(t, err)
	assert.Equal(t, pcm, got)
}

func TestSaveAudioTurnWithoutRecording(t *testing.T) {
	svc := NewDefaultCallService(staticResponder{reply: "Noted."}, nil, nil, nil, nil)
	id, err := svc.StartCall(context.Background())
	require.NoError(t, err)

	path, err := svc.SaveAudioTurn(id, audio.EncodeWAV([]byte{0x01, 0x02}))
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestGetBooking(t *testing.T) {
	svc := NewDefaultCallService(&scriptedResponder{replies: []string{"Got it."}}, nil, nil, nil, nil)
	id, err := svc.StartCall(context.Background())
	require.NoError(t, err)

	_, err = svc.HandleUtterance(context.Background(), id, "my name is Ravi Kumar")
	require.NoError(t, err)

	rec, err := svc.GetBooking(id)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", rec.CustomerName)
}
