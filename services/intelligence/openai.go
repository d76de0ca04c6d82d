// File: services/intelligence/openai.go
package ai

import (
	"context"
	"fmt"
	"time"

	"droptruck/models"

	openai "github.com/sashabaranov/go-openai"
)

const responseTimeout = 30 * time.Second

// OpenAIResponder generates replies with the OpenAI Chat Completions API.
type OpenAIResponder struct {
	client *openai.Client
	model  string
}

// NewOpenAIResponder creates a responder for the given key and model.
func NewOpenAIResponder(apiKey, model string) *OpenAIResponder {
	return &OpenAIResponder{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (r *OpenAIResponder) Respond(ctx context.Context, window []models.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, responseTimeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(window))
	for _, msg := range window {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    messages,
		Temperature: 0.6,
		MaxTokens:   256,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
