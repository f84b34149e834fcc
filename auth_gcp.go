package main

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"
)

// ClueClient wraps the Google GenAI client for VertexAI, used only for
// the optional clue-generation helper (gemini.go). The synthesis core
// never imports this package: per spec.md §1 LLM clue generation is an
// external collaborator, not a core dependency.
type ClueClient struct {
	client    *genai.Client
	modelName string
}

// NewClueClient creates a client using Application Default Credentials.
// Set GOOGLE_APPLICATION_CREDENTIALS to the service account key file path.
func NewClueClient(ctx context.Context, projectID, region string) (*ClueClient, error) {
	if region == "" {
		region = defaultRegion
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &ClueClient{
		client:    client,
		modelName: defaultModel,
	}, nil
}

// Close does nothing and returns nil; the underlying genai client is not
// closed.
func (g *ClueClient) Close() error {
	return nil
}
