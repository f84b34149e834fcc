package main

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/bodul/crossword/internal/xword"
)

const clueGenPrompt = `Tu reçois le corps d'un article d'actualité en japonais.

Propose jusqu'à 12 mots-clés de l'article qui feraient de bonnes réponses de
mots croisés (katakana, 2 à 10 caractères), chacun avec une définition
courte en français. Réponds UNIQUEMENT avec le JSON suivant, sans
commentaire ni markdown :
{
  "candidates": [
    {"answer": "ウクライナ", "clue": "Pays d'Europe de l'Est en guerre depuis 2022"},
    ...
  ]
}`

// candidateBatch is the shape ClueClient.GenerateCandidates parses from
// the model's response.
type candidateBatch struct {
	Candidates []xword.Candidate `json:"candidates"`
}

// GenerateCandidates asks Gemini for a batch of {answer, clue} pairs
// drawn from an article's body. This is the "keyword/clue generation
// (LLM calls)" external collaborator of spec.md §1, made concrete: the
// core (internal/xword) never calls this itself, it only consumes the
// Candidate slice this produces.
func (g *ClueClient) GenerateCandidates(ctx context.Context, articleRef, body string) ([]xword.Candidate, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: clueGenPrompt},
				{Text: body},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.4)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}

	var batch candidateBatch
	if err := json.Unmarshal([]byte(text), &batch); err != nil {
		return nil, fmt.Errorf("parse candidate JSON: %w\nraw response: %s", err, text)
	}

	for i := range batch.Candidates {
		batch.Candidates[i].ArticleRef = articleRef
	}
	return batch.Candidates, nil
}
