package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"prescription-ai-service/config"
)

// Fixed generation parameters, not caller-configurable.
const (
	temperature  = 0.7
	maxNewTokens = 200

	// Conversational models echo the transcript back; everything up to the
	// last role marker is discarded.
	rolePrefix = "Assistant:"

	maxBodySize = 1 << 20
)

// Client calls the HuggingFace Inference API: one synchronous request per
// prompt, no retries, no streaming.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewClient builds an inference client from startup configuration. A
// missing API key is a construction-time failure, not a per-request error.
func NewClient(cfg config.HFConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, config.ErrMissingAPIKey
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	Temperature  float64 `json:"temperature"`
	MaxNewTokens int     `json:"max_new_tokens"`
}

// Generate sends the prompt to the model endpoint and returns the cleaned
// generated text. Failures are classified as *TransportError, *ModelError
// or *UnexpectedResponseError.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("inference: prompt is empty")
	}

	body, err := json.Marshal(generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			Temperature:  temperature,
			MaxNewTokens: maxNewTokens,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &TransportError{Err: err}
	}

	// The endpoint reports errors in the body, so the payload shape is
	// decoded regardless of the HTTP status code.
	return normalize(raw)
}

// normalize decodes the remote payload into one of three cases: a sequence
// of generations (success), an error object (remote failure) or anything
// else (malformed).
func normalize(raw []byte) (string, error) {
	var generations []struct {
		GeneratedText *string `json:"generated_text"`
	}
	if err := json.Unmarshal(raw, &generations); err == nil {
		if len(generations) > 0 && generations[0].GeneratedText != nil {
			return cleanGeneratedText(*generations[0].GeneratedText), nil
		}
		return "", &UnexpectedResponseError{Raw: raw}
	}

	var remote struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(raw, &remote); err == nil && remote.Error != nil {
		return "", &ModelError{Message: *remote.Error}
	}

	return "", &UnexpectedResponseError{Raw: raw}
}

func cleanGeneratedText(text string) string {
	parts := strings.Split(text, rolePrefix)
	return strings.TrimSpace(parts[len(parts)-1])
}
