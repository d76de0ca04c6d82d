// File: services/intelligence/echo.go
package ai

import (
	"context"
	"fmt"

	"droptruck/models"
)

// EchoResponder is the degraded mode used when no response generator is
// configured: it repeats the customer's input verbatim. Extraction and
// confirmation detection still run on the raw input upstream.
type EchoResponder struct{}

func (EchoResponder) Respond(_ context.Context, window []models.Message) (string, error) {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i].Role == models.RoleUser {
			return fmt.Sprintf("[Echo Mode] You said: %s", window[i].Content), nil
		}
	}
	return "[Echo Mode] I'm listening.", nil
}
