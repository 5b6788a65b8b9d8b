package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kheyfetsdan/wordsaveriii/internal/redact"
)

// TokenSource supplies the bearer token for authenticated calls.
// The session package implements it.
type TokenSource interface {
	Token() (string, bool)
}

// Client talks to the word store API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the server at baseURL. tokens may be nil when
// only Register, Login and Health are used.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q", ErrValidation, baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("component", "word_client"))
	return c, nil
}

// Register creates an account and returns its token. confirmPassword may be
// empty; otherwise it must equal password.
func (c *Client) Register(ctx context.Context, email, password, confirmPassword string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", validationError("email")
	}
	if password == "" {
		return "", validationError("password")
	}
	if confirmPassword != "" && confirmPassword != password {
		return "", fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	var resp authResponse
	req := authRequest{Email: strings.TrimSpace(email), Password: password, ConfirmPassword: confirmPassword}
	if err := c.do(ctx, http.MethodPost, "/registration", false, req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", validationError("email")
	}
	if password == "" {
		return "", validationError("password")
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/login", false, authRequest{Email: strings.TrimSpace(email), Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// SaveWord stores a new pair. A pair the user already has yields ErrDuplicate.
func (c *Client) SaveWord(ctx context.Context, word, translation string) (*Word, error) {
	word, translation = strings.TrimSpace(word), strings.TrimSpace(translation)
	if word == "" {
		return nil, validationError("word")
	}
	if translation == "" {
		return nil, validationError("translation")
	}

	var out Word
	if err := c.do(ctx, http.MethodPost, "/save-word", true, saveWordRequest{Word: word, Translation: translation}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RandomWord fetches a word to practise, avoiding excludeID when the user has
// other words. ErrNotFound means the user has no words.
func (c *Client) RandomWord(ctx context.Context, excludeID int64) (*Word, error) {
	var out Word
	if err := c.do(ctx, http.MethodPost, "/get-word", true, getWordRequest{ExcludeID: excludeID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWords fetches one page of the dictionary.
func (c *Client) ListWords(ctx context.Context, req ListRequest) (*WordList, error) {
	body := listRequest{
		SortingParam:     string(req.Sort.Field),
		SortingDirection: string(req.Sort.Direction),
		Page:             req.Page,
		PageSize:         req.PageSize,
		Search:           strings.TrimSpace(req.Search),
	}

	var out WordList
	if err := c.do(ctx, http.MethodPost, "/get-words-by-user", true, body, &out); err != nil {
		return nil, err
	}
	if out.Words == nil {
		out.Words = []Word{}
	}
	return &out, nil
}

// GetWord fetches one word by id.
func (c *Client) GetWord(ctx context.Context, id int64) (*Word, error) {
	var out Word
	if err := c.do(ctx, http.MethodGet, "/word/"+strconv.FormatInt(id, 10), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWord replaces the text of a word.
func (c *Client) UpdateWord(ctx context.Context, id int64, word, translation string) (*Word, error) {
	word, translation = strings.TrimSpace(word), strings.TrimSpace(translation)
	if word == "" {
		return nil, validationError("word")
	}
	if translation == "" {
		return nil, validationError("translation")
	}

	var out Word
	req := updateWordRequest{ID: id, Word: word, Translation: translation}
	if err := c.do(ctx, http.MethodPut, "/word", true, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWord removes a word.
func (c *Client) DeleteWord(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/delete-word/"+strconv.FormatInt(id, 10), true, nil, nil)
}

// UpdateStat records one answer for a word.
func (c *Client) UpdateStat(ctx context.Context, id int64, success bool) error {
	return c.do(ctx, http.MethodPut, "/word-stat/"+strconv.FormatInt(id, 10), true, statRequest{Success: success}, nil)
}

// QuizWord fetches a multiple-choice question. ErrInsufficientWords means the
// user needs more words.
func (c *Client) QuizWord(ctx context.Context, previousWord string) (*QuizWord, error) {
	var out QuizWord
	if err := c.do(ctx, http.MethodPost, "/quiz-word", true, quizRequest{PreviousWord: previousWord}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CountWords returns how many words the user has saved.
func (c *Client) CountWords(ctx context.Context) (int, error) {
	var out countResponse
	if err := c.do(ctx, http.MethodGet, "/words/count", true, nil, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

// ClearWords deletes every word and returns how many were removed.
func (c *Client) ClearWords(ctx context.Context) (int, error) {
	var out clearResponse
	if err := c.do(ctx, http.MethodDelete, "/words", true, nil, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", false, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, authenticated bool, in, out any) error {
	var token string
	if authenticated {
		var ok bool
		if c.tokens != nil {
			token, ok = c.tokens.Token()
		}
		if !ok || token == "" {
			return ErrNotAuthenticated
		}
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			"method", method,
			"path", path,
			"error", redact.Error(err))
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: "decode " + path, Err: err}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body errorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.TraceID = body.TraceID
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
