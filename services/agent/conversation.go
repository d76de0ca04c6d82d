// File: services/agent/conversation.go
package agent

import (
	"strings"
	"time"

	"droptruck/models"
)

// defaultMaxExchanges bounds the message window handed to the response
// generator: the system turn plus this many user/assistant pairs.
const defaultMaxExchanges = 10

// Conversation owns one call's message history and booking record. Every
// inbound and outbound turn is appended and run through the extractor chain
// and confirmation detection; assistant turns are scanned too, because the
// confirmation echo is itself a high-confidence data source.
type Conversation struct {
	messages     []models.Message
	record       *models.BookingRecord
	extractors   []FieldExtractor
	maxExchanges int
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithClock overrides the clock used for relative trip dates.
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) {
		for _, ex := range c.extractors {
			if dateEx, ok := ex.(*tripDateExtractor); ok {
				dateEx.now = now
			}
		}
	}
}

// WithMaxExchanges overrides the window size.
func WithMaxExchanges(n int) Option {
	return func(c *Conversation) { c.maxExchanges = n }
}

// NewConversation builds a session around an immutable keyword snapshot.
// The history starts with exactly one system turn.
func NewConversation(vehicles, bodies *KeywordTable, opts ...Option) *Conversation {
	c := &Conversation{
		messages:     []models.Message{{Role: models.RoleSystem, Content: SystemPrompt}},
		record:       models.NewBookingRecord(),
		extractors:   extractorChain(vehicles, bodies, time.Now),
		maxExchanges: defaultMaxExchanges,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ObserveUser appends a customer turn and runs extraction and confirmation
// detection on it. Empty or whitespace-only input is rejected: the caller
// should respond with RePrompt and no extraction runs.
func (c *Conversation) ObserveUser(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	c.messages = append(c.messages, models.Message{Role: models.RoleUser, Content: text})
	c.scan(NewUtterance(text, false))
	return true
}

// ObserveAssistant appends an assistant turn and scans it with echo
// semantics. The submission marker in generated text unconditionally
// confirms the booking.
func (c *Conversation) ObserveAssistant(text string) {
	c.messages = append(c.messages, models.Message{Role: models.RoleAssistant, Content: text})
	c.scan(NewUtterance(text, true))
	if HasConfirmedMarker(text) {
		c.record.ConfirmationStatus = models.StatusConfirmed
	}
}

func (c *Conversation) scan(u Utterance) {
	for _, ex := range c.extractors {
		ex.Extract(u, c.record)
	}
	// Only the customer confirms or rejects. An assistant echo asking
	// "is everything correct?" must not trip the keyword detector.
	if !u.Echo {
		detectConfirmation(u.Raw, c.record)
	}
}

// Window returns the bounded message slice for the response generator: the
// system turn plus the most recent user/assistant pairs.
func (c *Conversation) Window() []models.Message {
	var system, rest []models.Message
	for _, msg := range c.messages {
		if msg.Role == models.RoleSystem {
			system = append(system, msg)
		} else {
			rest = append(rest, msg)
		}
	}
	keep := c.maxExchanges * 2
	if len(rest) > keep {
		rest = rest[len(rest)-keep:]
	}
	return append(system, rest...)
}

// Messages returns a copy of the full history.
func (c *Conversation) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Record returns the live booking record.
func (c *Conversation) Record() *models.BookingRecord {
	return c.record
}

// IsComplete reports whether all required booking fields are filled.
func (c *Conversation) IsComplete() bool {
	return c.record.IsComplete()
}

// ReadyToSubmit reports whether the record is complete and the customer has
// confirmed it.
func (c *Conversation) ReadyToSubmit() bool {
	return c.record.IsComplete() && c.record.ConfirmationStatus == models.StatusConfirmed
}

// IsCallFinished reports whether the assistant's last turn ends the call:
// either the submission marker or one of the closing phrases.
func (c *Conversation) IsCallFinished() bool {
	var last string
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == models.RoleAssistant {
			last = strings.ToLower(c.messages[i].Content)
			break
		}
	}
	if last == "" {
		return false
	}
	if strings.Contains(last, strings.ToLower(BookingConfirmedMarker)) {
		return true
	}
	return containsAny(last, closingPhrases)
}
