package concierge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const systemPersona = "You are the personal concierge of an ultra-luxury private villa estate. " +
	"You speak with warmth, discretion and impeccable manners. Keep replies short, " +
	"concrete and focused on the guest's stay: dining, wellness, excursions and " +
	"arrangements around the property. Never discuss topics unrelated to hospitality."

// ErrConciergeUnavailable is returned when the hosted model cannot answer,
// including while the circuit breaker is open.
var ErrConciergeUnavailable = errors.New("concierge: upstream unavailable")

// GeminiConfig carries what the client needs to reach the hosted model.
type GeminiConfig struct {
	Endpoint string
	Model    string
	APIKey   string
	Client   *http.Client
	Logger   *slog.Logger
}

// GeminiClient asks a hosted Gemini model for replies. Calls run through a
// circuit breaker so a struggling upstream degrades to stock replies instead
// of stalling every conversation.
type GeminiClient struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

// NewGeminiClient builds a client. A nil HTTP client defaults to a 15 second
// timeout.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 15 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "concierge-gemini",
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return &GeminiClient{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		client:   cfg.Client,
		breaker:  breaker,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Respond sends the conversation to the model and returns its reply.
func (c *GeminiClient) Respond(ctx context.Context, history []Turn) (string, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.call(ctx, history)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: circuit open", ErrConciergeUnavailable)
		}
		return "", err
	}
	return result.(string), nil
}

func (c *GeminiClient) call(ctx context.Context, history []Turn) (string, error) {
	contents := make([]geminiContent, 0, len(history))
	for _, turn := range history {
		if strings.TrimSpace(turn.Text) == "" {
			continue
		}
		contents = append(contents, geminiContent{
			Role:  string(turn.Role),
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}

	payload, err := json.Marshal(geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPersona}}},
		Contents:          contents,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConciergeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d", ErrConciergeUnavailable, resp.StatusCode)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrConciergeUnavailable, err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrConciergeUnavailable)
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
