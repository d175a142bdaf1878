package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

// GeminiLLM implements the TextGenerator interface using Vertex AI.
type GeminiLLM struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiLLM creates a Vertex AI Gemini client. Credentials come from the
// ambient environment (GOOGLE_APPLICATION_CREDENTIALS or workload identity);
// the server never embeds a key.
func NewGeminiLLM(ctx context.Context, projectID, location, modelName string, timeout time.Duration) (*GeminiLLM, error) {
	var opts []option.ClientOption
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := genai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	// The advice prompt asks for a bare JSON object; request that mode from
	// the service as well so fenced or prose-wrapped replies stay rare.
	model.GenerationConfig.ResponseMIMEType = "application/json"

	return &GeminiLLM{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// GenerateContent sends the prompt and returns the raw text of the first
// candidate. A single attempt, bounded by the configured timeout.
func (l *GeminiLLM) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	resp, err := l.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type")
	}
	return string(text), nil
}

// Close closes the Vertex AI client.
func (l *GeminiLLM) Close() error {
	return l.client.Close()
}
