package ai

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"google.golang.org/genai"

	"apexfit/api/internal/config"
)

var (
	// ErrModelUnavailable: the provider could not be reached at all, or
	// the deployment carries no credential. Users retry later; operators
	// check configuration.
	ErrModelUnavailable = errors.New("analysis model unavailable")
	// ErrModelRejected: the provider answered but refused the request
	// (auth, quota, policy, format). Distinct guidance from unavailable.
	ErrModelRejected = errors.New("analysis model rejected request")
)

var rejectedPattern = regexp.MustCompile(`(?i)api.?key|unauthorized|permission|invalid|quota|rate.?limit|safety|blocked|policy`)

// Client sends one image plus a context summary to the vision model and
// returns its raw text. One attempt per invocation; the caller owns any
// retry decision.
type Client struct {
	genai *genai.Client
	cfg   config.AIConfig
}

// NewClient builds the model client. A missing API key is not fatal:
// the client is created disarmed and every call reports
// ErrModelUnavailable, so the rest of the service still boots.
func NewClient(ctx context.Context, cfg config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return &Client{cfg: cfg}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{genai: client, cfg: cfg}, nil
}

// GenerateAnalysis performs the single model call: system instruction
// with the JSON field contract, then a user turn of context summary plus
// the normalized JPEG. Returns the raw response text untouched.
func (c *Client) GenerateAnalysis(ctx context.Context, imageJPEG []byte, userContext map[string]any) (string, error) {
	if c.genai == nil {
		return "", fmt.Errorf("%w: no API key configured", ErrModelUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	parts := []*genai.Part{
		genai.NewPartFromText(userTurn(userContext)),
		genai.NewPartFromBytes(imageJPEG, "image/jpeg"),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	maxTokens := int32(c.cfg.MaxOutputTokens)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		MaxOutputTokens:   maxTokens,
	}

	result, err := c.genai.Models.GenerateContent(ctx, c.cfg.Model, contents, cfg)
	if err != nil {
		return "", classifyModelError(err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrModelRejected)
	}
	return text, nil
}

// classifyModelError splits provider failures into the two outward
// classes by pattern-matching the error text: a response that names an
// auth/policy/format problem is a rejection; everything else (transport,
// timeout) means the provider was unreachable.
func classifyModelError(err error) error {
	if err == nil {
		return nil
	}
	if rejectedPattern.MatchString(err.Error()) {
		return fmt.Errorf("%w: %v", ErrModelRejected, err)
	}
	return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
}
