package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

func newTestClient(t *testing.T, tokens TokenSource, h http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", tokens)
	require.NoError(t, err)
	return c, &calls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New("not a url", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = New("http://localhost:8080", nil)
	assert.NoError(t, err)
}

func TestNoTokenSendsNoRequest(t *testing.T) {
	t.Parallel()

	c, calls := newTestClient(t, staticToken(""), func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})

	_, err := c.RandomWord(context.Background(), 0)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = c.CountWords(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	nilTokens, nilCalls := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {})
	assert.ErrorIs(t, nilTokens.DeleteWord(context.Background(), 1), ErrNotAuthenticated)

	assert.Zero(t, calls.Load())
	assert.Zero(t, nilCalls.Load())
}

func TestValidationSendsNoRequest(t *testing.T) {
	t.Parallel()

	c, calls := newTestClient(t, staticToken("tok"), func(w http.ResponseWriter, r *http.Request) {})
	ctx := context.Background()

	_, err := c.SaveWord(ctx, "  ", "время")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = c.SaveWord(ctx, "time", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = c.UpdateWord(ctx, 1, "", "x")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = c.Login(ctx, "", "secret")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = c.Register(ctx, "a@b.co", "secret1", "secret2")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Zero(t, calls.Load())
}

func TestSaveWordSendsBearerAndDecodes(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, staticToken("tok"), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/save-word", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body saveWordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, saveWordRequest{Word: "time", Translation: "время"}, body)

		writeJSON(w, http.StatusOK, Word{ID: 7, Word: body.Word, Translation: body.Translation})
	})

	w, err := c.SaveWord(context.Background(), " time ", "время")
	require.NoError(t, err)
	assert.Equal(t, int64(7), w.ID)
}

func TestListWordsRequestShape(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, staticToken("tok"), func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "failed", body["sortingParam"])
		assert.Equal(t, "desc", body["sortingDirection"])
		assert.EqualValues(t, 2, body["page"])
		assert.EqualValues(t, 5, body["pageSize"])
		assert.Equal(t, "do", body["search"])

		writeJSON(w, http.StatusOK, map[string]any{"total": 11})
	})

	page, err := c.ListWords(context.Background(), ListRequest{
		Search:   " do ",
		Sort:     domain.SortKey{Field: domain.SortByFailed, Direction: domain.Descending},
		Page:     2,
		PageSize: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)
	assert.NotNil(t, page.Words)
}

func TestAPIErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrNotAuthenticated},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrDuplicate},
		{http.StatusPreconditionFailed, ErrInsufficientWords},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			c, _ := newTestClient(t, staticToken("tok"), func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]string{"error": "nope", "trace_id": "abc"})
			})

			_, err := c.QuizWord(context.Background(), "")
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "nope", apiErr.Message)
			assert.Equal(t, "abc", apiErr.TraceID)
		})
	}

	t.Run("non-JSON body", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, staticToken("tok"), func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gateway exploded", http.StatusBadGateway)
		})

		err := c.UpdateStat(context.Background(), 1, true)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Equal(t, "Bad Gateway", apiErr.Message)
		assert.False(t, errors.Is(err, ErrNotFound))
	})
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, staticToken("tok"))
	require.NoError(t, err)

	_, err = c.CountWords(context.Background())
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Contains(t, tErr.Op, "/words/count")
}
