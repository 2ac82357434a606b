package generate

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

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"quizgen/internal/question"
)

const (
	// DefaultBaseURL is the OpenRouter API base URL.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel is used when no model is configured.
	DefaultModel = "google/gemini-2.5-flash"
	// DefaultTimeout bounds a single generation request.
	DefaultTimeout = 60 * time.Second
)

// HTTPDoer abstracts the HTTP client used for requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options tune a Client. Zero values select the defaults.
type Options struct {
	Model      string
	BaseURL    string
	HTTPClient HTTPDoer
	// Timeout bounds each request; a negative value disables it.
	Timeout time.Duration
	// RequestsPerMinute paces requests; zero disables pacing.
	RequestsPerMinute int
	// RekeyIDs replaces every generated id with a UUID.
	RekeyIDs bool
	Logger   *zap.Logger
}

// Request asks for Count questions of Type about Text.
type Request struct {
	Text  string
	Type  question.Type
	Count int
}

// Client generates questions through an OpenRouter-compatible chat API.
type Client struct {
	key      APIKey
	model    string
	baseURL  string
	http     HTTPDoer
	timeout  time.Duration
	limiter  *rate.Limiter
	rekeyIDs bool
	logger   *zap.Logger
}

// NewClient builds a client. The key must come from ParseAPIKey or APIKeyFromEnv.
func NewClient(key APIKey, opts Options) (*Client, error) {
	if key.IsZero() {
		return nil, errors.New("api key is required")
	}
	if opts.RequestsPerMinute < 0 {
		return nil, fmt.Errorf("requests per minute must be >= 0")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}
	return &Client{
		key:      key,
		model:    model,
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     client,
		timeout:  timeout,
		limiter:  limiter,
		rekeyIDs: opts.RekeyIDs,
		logger:   logger,
	}, nil
}

// Generate requests questions and returns them validated. Invalid input is
// reported as a *question.ValidationError; every failure after that point is
// a *GenerationError. The count is clamped to [MinCount, MaxCount].
func (c *Client) Generate(ctx context.Context, req Request) ([]question.Question, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, &question.ValidationError{Field: "text", Message: "must not be empty"}
	}
	questionType, ok := question.ParseType(string(req.Type))
	if !ok {
		return nil, &question.ValidationError{Field: "questionType", Message: fmt.Sprintf("unsupported type %q", req.Type)}
	}
	count := ClampCount(req.Count)

	questions, err := c.generate(ctx, text, questionType, count)
	if err != nil {
		c.logger.Error("generation failed",
			zap.String("model", c.model),
			zap.String("type", string(questionType)),
			zap.Int("count", count),
			zap.Error(err),
		)
		return nil, err
	}
	if len(questions) != count {
		c.logger.Warn("generator returned a different count",
			zap.Int("requested", count),
			zap.Int("returned", len(questions)),
		)
	}
	c.logger.Info("questions generated",
		zap.String("model", c.model),
		zap.String("type", string(questionType)),
		zap.Int("count", len(questions)),
	)
	return questions, nil
}

func (c *Client) generate(ctx context.Context, text string, t question.Type, count int) ([]question.Question, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fail("request", err)
		}
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	schema := ResponseSchema(t)
	content, err := c.complete(ctx, BuildPrompt(text, t, count), schema)
	if err != nil {
		return nil, err
	}
	return c.parseResponse(content, schema)
}

func (c *Client) complete(ctx context.Context, prompt string, schema Schema) (string, error) {
	body := chatRequest{
		Model:    c.model,
		Stream:   true,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: responseFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchema{Name: "quiz_questions", Schema: schema},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fail("request", fmt.Errorf("marshal request: %w", err))
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fail("request", fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.key.value)
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending generation request", zap.String("model", c.model), zap.Stringer("key", c.key))
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fail("request", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fail("status", fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(detail))))
	}
	content, err := readStream(resp.Body)
	if err != nil {
		return "", fail("stream", err)
	}
	return content, nil
}

func (c *Client) parseResponse(content string, schema Schema) ([]question.Question, error) {
	content = stripCodeFence(content)
	if content == "" {
		return nil, fail("decode", errors.New("empty response"))
	}
	document, err := decodeDocument(content)
	if err != nil {
		return nil, fail("decode", err)
	}
	validator, err := compileSchema(schema)
	if err != nil {
		return nil, fail("schema", err)
	}
	if err := validator.Validate(document); err != nil {
		return nil, fail("schema", err)
	}

	var set question.Set
	if err := json.Unmarshal([]byte(content), &set); err != nil {
		return nil, fail("decode", err)
	}
	assignIDs(set.Questions, c.rekeyIDs)
	questions, err := question.ValidateAll(set.Questions)
	if err != nil {
		return nil, fail("validate", err)
	}
	return questions, nil
}

// assignIDs gives a fresh UUID to records with a missing or repeated id, or
// to every record when rekey is set.
func assignIDs(raws []question.Raw, rekey bool) {
	seen := make(map[string]struct{}, len(raws))
	for i := range raws {
		id := strings.TrimSpace(raws[i].ID)
		if _, duplicate := seen[id]; rekey || id == "" || duplicate {
			id = uuid.NewString()
		}
		seen[id] = struct{}{}
		raws[i].ID = id
	}
}
