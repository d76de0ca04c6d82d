// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Call session endpoints.
	StartCall     gin.HandlerFunc
	HandleTurn    gin.HandlerFunc
	GetBooking    gin.HandlerFunc
	GetTranscript gin.HandlerFunc
	EndCall       gin.HandlerFunc

	// Speech-to-text endpoint.
	Transcribe gin.HandlerFunc
}
