// Package gemini talks to the Gemini generateContent REST endpoint.
package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chapterprep/chapterprep/pkg/config"
	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
)

const (
	apiKeyHeader = "x-goog-api-key"

	// Upper bounds on how much of a response body is read back.
	maxErrorBody    = 64 << 10
	maxResponseBody = 2 << 20
)

// Options configures a Client.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float64
}

// OptionsFromConfig picks the Gemini settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		APIKey:      cfg.GeminiAPIKey,
		BaseURL:     cfg.GeminiBaseURL,
		Model:       cfg.GeminiModel,
		Timeout:     cfg.GeminiTimeout,
		Temperature: cfg.GeminiTemperature,
	}
}

// Client makes single-attempt generateContent calls. It never retries.
type Client struct {
	opts       Options
	httpClient *http.Client
}

// New creates a Client. A missing API key is not an error here; every call
// reports it instead.
func New(opts Options) *Client {
	return &Client{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateText sends prompt and returns the text of the first candidate.
//
// Failures are UpstreamErrors told apart by message: "upstream timeout",
// "upstream unreachable", "upstream error (<status>): <message>" and
// "unexpected upstream format". A missing API key is a Misconfigured error
// and no request is made.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.opts.APIKey == "" {
		return "", errcodes.Misconfigured("upstream API key is not configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: c.opts.Temperature},
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.opts.APIKey)

	log := logger.FromContext(ctx)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", errcodes.UpstreamError("upstream timeout")
		}
		log.Warn("upstream request failed", logger.Data{"error": redact(err.Error(), c.opts.APIKey)})
		return "", errcodes.UpstreamError("upstream unreachable")
	}
	defer resp.Body.Close()

	log.Info("upstream responded", logger.Data{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
		"model":       c.opts.Model,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil && isTimeout(err) {
			return "", errcodes.UpstreamError("upstream timeout")
		}
		return "", errcodes.UpstreamError(fmt.Sprintf("upstream error (%d): %s", resp.StatusCode, upstreamMessage(raw)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&parsed); err != nil {
		if isTimeout(err) {
			return "", errcodes.UpstreamError("upstream timeout")
		}
		return "", errcodes.UpstreamError("unexpected upstream format")
	}
	if len(parsed.Candidates) == 0 ||
		len(parsed.Candidates[0].Content.Parts) == 0 ||
		parsed.Candidates[0].Content.Parts[0].Text == nil {
		return "", errcodes.UpstreamError("unexpected upstream format")
	}

	return *parsed.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) endpoint() string {
	return strings.TrimRight(c.opts.BaseURL, "/") + "/models/" + url.PathEscape(c.opts.Model) + ":generateContent"
}

// upstreamMessage prefers the structured error message and falls back to the
// raw body.
func upstreamMessage(raw []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(raw))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "[redacted]")
}
