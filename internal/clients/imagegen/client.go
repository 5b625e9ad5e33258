// Package imagegen is the HTTP image-generation backend for slide pictures.
// It implements media.Generator; wiring pairs it with the placeholder
// generator so a provider outage degrades decks instead of failing them.
package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/slideforge/slideforge-backend/internal/platform/envutil"
	"github.com/slideforge/slideforge-backend/internal/platform/logger"
)

type Client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
}

// NewClient reads its configuration from IMAGEGEN_API_KEY, IMAGEGEN_BASE_URL,
// IMAGEGEN_MODEL, IMAGEGEN_TIMEOUT_SECONDS, and IMAGEGEN_MAX_RETRIES.
func NewClient(log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(os.Getenv("IMAGEGEN_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing IMAGEGEN_API_KEY")
	}
	baseURL := strings.TrimRight(envutil.Str("IMAGEGEN_BASE_URL", "https://api.openai.com"), "/")
	model := envutil.Str("IMAGEGEN_MODEL", "gpt-image-1")
	timeoutSec := envutil.Int("IMAGEGEN_TIMEOUT_SECONDS", 180)
	maxRetries := envutil.Int("IMAGEGEN_MAX_RETRIES", 2)

	return &Client{
		log:        log.With("component", "ImageGenClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
	}, nil
}

type generationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type generationResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// Generate produces one raster image for the prompt. The provider only
// honors a few fixed sizes, so the requested dimensions are advisory; the
// crop stage resizes the result to the exact slide box.
func (c *Client) Generate(ctx context.Context, prompt string, width, height int) ([]byte, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("image prompt required")
	}

	req := generationRequest{
		Model:  c.model,
		Prompt: prompt,
		N:      1,
		Size:   providerSize(width, height),
	}

	var resp generationResponse
	backoff := 1 * time.Second
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		err := c.doOnce(ctx, req, &resp)
		if err == nil {
			break
		}
		var he *httpError
		retryable := errors.As(err, &he) && (he.StatusCode == http.StatusTooManyRequests || he.StatusCode >= 500)
		if !retryable || attempt == c.maxRetries {
			return nil, err
		}
		c.log.Warn("image generation retrying",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"error", err.Error(),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("no image returned")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(resp.Data[0].B64JSON))
	if err != nil || len(raw) == 0 {
		return nil, fmt.Errorf("decode image base64: %w", err)
	}
	return raw, nil
}

// providerSize picks the closest supported provider size for the requested
// aspect ratio.
func providerSize(width, height int) string {
	if width <= 0 || height <= 0 {
		return "1024x1024"
	}
	switch {
	case width > height*5/4:
		return "1536x1024"
	case height > width*5/4:
		return "1024x1536"
	default:
		return "1024x1024"
	}
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("imagegen http %d: %s", e.StatusCode, e.Body)
}

func (c *Client) doOnce(ctx context.Context, body generationRequest, out *generationResponse) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/images/generations", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	*out = generationResponse{}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("imagegen decode error: %w", err)
	}
	return nil
}
