package main

import (
	"context"
	"os"
	"testing"
)

func TestGenerateCandidates(t *testing.T) {
	projectID := os.Getenv("GCP_PROJECT_ID")
	if projectID == "" {
		t.Skip("GCP_PROJECT_ID not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := NewClueClient(ctx, projectID, "")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()

	body, err := os.ReadFile("test_data/example_article.txt")
	if err != nil {
		t.Fatalf("read article: %v", err)
	}

	candidates, err := client.GenerateCandidates(ctx, "article-1", string(body))
	if err != nil {
		t.Fatalf("generate candidates: %v", err)
	}

	if len(candidates) == 0 {
		t.Fatal("expected at least one candidate")
	}
	for _, c := range candidates {
		if c.Answer == "" || c.Clue == "" {
			t.Fatalf("candidate missing answer or clue: %+v", c)
		}
		if c.ArticleRef != "article-1" {
			t.Fatalf("expected article ref to be stamped, got %q", c.ArticleRef)
		}
	}
}
