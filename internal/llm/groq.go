package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

type GroqClient struct {
	apiKey   string
	model    string
	endpoint string
	http     *http.Client
}

func NewGroqClient() *GroqClient {
	return &GroqClient{
		apiKey:   os.Getenv("GROQ_API_KEY"),
		model:    os.Getenv("GROQ_MODEL"),
		endpoint: groqEndpoint,
		// Single attempt per call; callers carry deterministic fallbacks.
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Complete sends a single-turn prompt and returns the raw completion text.
func (g *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: missing GROQ_API_KEY", ErrUpstream)
	}
	if g.model == "" {
		return "", fmt.Errorf("%w: missing GROQ_MODEL", ErrUpstream)
	}

	payload := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.1,
		"max_tokens":  500,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(raw))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}

	return result.Choices[0].Message.Content, nil
}
