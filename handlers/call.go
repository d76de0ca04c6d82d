// File: handlers/call.go
package handlers

import (
	"net/http"

	"droptruck/services/call"
	"droptruck/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CallHandler exposes call-session endpoints.
type CallHandler struct {
	Service call.CallService
	Logger  *zap.Logger
}

func NewCallHandler(service call.CallService, logger *zap.Logger) *CallHandler {
	return &CallHandler{Service: service, Logger: logger}
}

// StartCall creates a new call session.
func (h *CallHandler) StartCall(c *gin.Context) {
	sessionID, err := h.Service.StartCall(c.Request.Context())
	if err != nil {
		h.Logger.Error("Failed to start call", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to start call", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID})
}

// HandleTurn processes one customer utterance and returns the assistant reply
// plus the current booking state.
func (h *CallHandler) HandleTurn(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.HandleUtterance(c.Request.Context(), sessionID, input.Text)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to process turn", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBooking returns the booking record as collected so far.
func (h *CallHandler) GetBooking(c *gin.Context) {
	record, err := h.Service.GetBooking(c.Param("sessionID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record":        record,
		"complete":      record.IsComplete(),
		"missingFields": record.MissingFields(),
	})
}

// GetTranscript returns the full conversation history.
func (h *CallHandler) GetTranscript(c *gin.Context) {
	transcript, err := h.Service.Transcript(c.Param("sessionID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcript": transcript})
}

// EndCall closes the session and returns the archived call record.
func (h *CallHandler) EndCall(c *gin.Context) {
	record, err := h.Service.EndCall(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, record)
}
