// Package gemini is the client for the hosted text-generation model that
// drafts menu descriptions and classifies contact messages. Callers never see
// a failure from it: every error path ends in a fixed fallback value.
package gemini

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"brewbliss/models"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// FallbackDescription is returned whenever a description cannot be generated.
	FallbackDescription = "Freshly prepared with the finest ingredients."

	maxResponseBytes = 1 << 20
)

var (
	errNoAPIKey  = errors.New("gemini api key not set")
	errMalformed = errors.New("malformed gemini response")
	errEmptyText = errors.New("empty gemini response")
)

// Cache memoises generated descriptions. Implementations treat backend
// errors as misses.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

type Client struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
	cache   Cache
	logger  *log.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a client. An empty apiKey is allowed; every call then returns its fallback.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		model:   DefaultModel,
		baseURL: DefaultBaseURL,
		logger:  log.New(os.Stdout, "[gemini] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateDescription drafts a short promotional description for a menu item.
func (c *Client) GenerateDescription(ctx context.Context, itemName, ingredients string) string {
	key := DescriptionCacheKey(itemName, ingredients)
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, key); ok && strings.TrimSpace(cached) != "" {
			return cached
		}
	}

	prompt := fmt.Sprintf(
		"Write a sophisticated, mouth-watering description for a cafe menu item named %q containing these ingredients: %s. Keep it under 25 words. Tone: Artisanal, premium.",
		itemName, ingredients,
	)
	text, err := c.generate(ctx, prompt, nil)
	if err != nil {
		c.logger.Printf("Error generating description for %q: %v", itemName, err)
		return FallbackDescription
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, text)
	}
	return text
}

// AnalyzeMessage classifies a contact message. The result is advisory.
func (c *Client) AnalyzeMessage(ctx context.Context, message string) models.Analysis {
	prompt := fmt.Sprintf(
		"Analyze this customer message: %q. Return JSON with 'sentiment' (Positive, Neutral, Negative) and 'priority' (High, Normal, Low).",
		message,
	)
	text, err := c.generate(ctx, prompt, analysisConfig())
	if err != nil {
		c.logger.Printf("Error analyzing message: %v", err)
		return models.DefaultAnalysis()
	}

	var raw struct {
		Sentiment string `json:"sentiment"`
		Priority  string `json:"priority"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		c.logger.Printf("Error decoding message analysis: %v", err)
		return models.DefaultAnalysis()
	}
	return models.NormalizeAnalysis(raw.Sentiment, raw.Priority)
}

// DescriptionCacheKey identifies a generated description by its inputs.
func DescriptionCacheKey(itemName, ingredients string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(itemName)) + "|" + strings.ToLower(strings.TrimSpace(ingredients))))
	return "describe:" + hex.EncodeToString(sum[:])
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type schema struct {
	Type       string            `json:"type"`
	Properties map[string]schema `json:"properties,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

func analysisConfig() *generationConfig {
	return &generationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema: &schema{
			Type: "OBJECT",
			Properties: map[string]schema{
				"sentiment": {Type: "STRING"},
				"priority":  {Type: "STRING"},
			},
		},
	}
}

// generate calls generateContent and returns the first candidate's text.
func (c *Client) generate(ctx context.Context, prompt string, cfg *generationConfig) (string, error) {
	if c.apiKey == "" {
		return "", errNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if msg := gjson.GetBytes(raw, "error.message"); msg.Exists() {
			return "", fmt.Errorf("gemini api error (%d): %s", resp.StatusCode, msg.String())
		}
		return "", fmt.Errorf("gemini api error (%d)", resp.StatusCode)
	}

	if !gjson.ValidBytes(raw) {
		return "", errMalformed
	}
	text := gjson.GetBytes(raw, "candidates.0.content.parts.0.text")
	if !text.Exists() {
		return "", errMalformed
	}
	out := strings.TrimSpace(text.String())
	if out == "" {
		return "", errEmptyText
	}
	return out, nil
}
