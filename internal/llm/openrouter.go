package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/logoscenter/logos-bot/internal/config"
)

const (
	maxCompletionTokens = 4000
	minRequestGap       = 100 * time.Millisecond
)

// Message is one chat turn in OpenRouter's wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Choice struct {
	Index   int     `json:"index"`
	Message Message `json:"message"`
}

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Response struct {
	ID      string    `json:"id"`
	Model   string    `json:"model"`
	Choices []Choice  `json:"choices"`
	Error   *APIError `json:"error"`
}

// Client talks to the OpenRouter chat completions API. Requests are
// serialized with a minimum gap between them.
type Client struct {
	rc    *resty.Client
	model string

	mu          sync.Mutex
	lastRequest time.Time
}

func NewClient(cfg config.Config) *Client {
	rc := resty.New().
		SetBaseURL(cfg.OPENROUTER_BASE_URL).
		SetAuthToken(cfg.OPENROUTER_API_KEY).
		SetTimeout(2 * time.Minute).
		SetHeader("HTTP-Referer", "https://github.com/logoscenter/logos-bot").
		SetHeader("X-Title", "Logos Teacher Assistant").
		SetRetryCount(3).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(4 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return false
			}
			return r.StatusCode() == 429 || r.StatusCode() >= 500
		})

	return &Client{rc: rc, model: cfg.OPENROUTER_MODEL}
}

// Complete sends the conversation and returns the assistant's reply.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	c.mu.Lock()
	if gap := time.Since(c.lastRequest); gap < minRequestGap {
		time.Sleep(minRequestGap - gap)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	requestPayload := map[string]any{
		"model":      c.model,
		"messages":   messages,
		"max_tokens": maxCompletionTokens,
	}

	var response Response
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(requestPayload).
		SetResult(&response).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openrouter returned %s: %s", resp.Status(), resp.String())
	}
	if response.Error != nil {
		return "", fmt.Errorf("openrouter error %d: %s", response.Error.Code, response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

var (
	defaultClient *Client
	defaultOnce   sync.Once
)

// Complete runs a chat completion on the shared client.
func Complete(ctx context.Context, messages []Message) (string, error) {
	defaultOnce.Do(func() {
		defaultClient = NewClient(config.FromEnv())
	})
	return defaultClient.Complete(ctx, messages)
}
