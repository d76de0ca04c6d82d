// File: services/intelligence/interface.go
package ai

import (
	"context"

	"droptruck/models"
)

// Responder generates the assistant's next reply from the bounded message
// window. Implementations must be safe to call once per turn, synchronously.
type Responder interface {
	Respond(ctx context.Context, window []models.Message) (string, error)
}
