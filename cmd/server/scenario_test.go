package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kheyfetsdan/wordsaveriii/internal/client"
	"github.com/kheyfetsdan/wordsaveriii/internal/config"
	"github.com/kheyfetsdan/wordsaveriii/internal/dictionary"
	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
	"github.com/kheyfetsdan/wordsaveriii/internal/mocks"
	"github.com/kheyfetsdan/wordsaveriii/internal/practice"
	"github.com/kheyfetsdan/wordsaveriii/internal/service/auth"
	"github.com/kheyfetsdan/wordsaveriii/internal/session"
)

type testStack struct {
	server  *httptest.Server
	words   *mocks.MockWordStore
	session *session.Session
	api     *client.Client
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authCfg := auth.DefaultJWTConfig()
	words := mocks.NewMockWordStore()

	app, err := newApplicationWith(
		&config.Config{Auth: authCfg},
		logger,
		mocks.NewMockUserStore(),
		words,
		mocks.NewMockDB(),
		auth.NewTestJWTService(authCfg.JWTSecret, time.Hour, time.Now),
		mocks.PlainPasswordVerifier{},
	)
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)

	sess := session.New(nil, logger)
	api, err := client.New(srv.URL, sess, client.WithLogger(logger))
	require.NoError(t, err)

	return &testStack{server: srv, words: words, session: sess, api: api}
}

func (s *testStack) register(t *testing.T, email string) {
	t.Helper()
	token, err := s.api.Register(context.Background(), email, "password123", "password123")
	require.NoError(t, err)
	require.NoError(t, s.session.SignIn(token))
}

func TestScenario_SaveAndBrowse(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	ctx := context.Background()

	_, err := stack.api.SaveWord(ctx, "time", "время")
	require.ErrorIs(t, err, client.ErrNotAuthenticated)

	stack.register(t, "learner@example.com")

	saved, err := stack.api.SaveWord(ctx, "time", "время")
	require.NoError(t, err)
	assert.Equal(t, "time", saved.Word)

	_, err = stack.api.SaveWord(ctx, "TIME", "Время")
	assert.ErrorIs(t, err, client.ErrDuplicate)

	pager, err := dictionary.NewPager(stack.api, 0, nil)
	require.NoError(t, err)
	require.NoError(t, pager.SetSort(ctx, domain.SortKey{Field: domain.SortByWord, Direction: domain.Ascending}))

	view := pager.View()
	require.Len(t, view.Words, 1)
	assert.Equal(t, "время", view.Words[0].Translation)
	assert.Equal(t, 1, view.TotalPages)

	n, err := stack.api.CountWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestScenario_UsersAreIsolated(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	ctx := context.Background()

	stack.register(t, "first@example.com")
	w, err := stack.api.SaveWord(ctx, "dog", "собака")
	require.NoError(t, err)

	stack.register(t, "second@example.com")
	_, err = stack.api.GetWord(ctx, w.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)

	err = stack.api.DeleteWord(ctx, w.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestScenario_RecallWithEmptyDictionary(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	stack.register(t, "learner@example.com")

	engine := practice.New(stack.api, nil, practice.DefaultConfig(practice.Recall), nil)
	defer engine.Close()

	err := engine.LoadNewWord(context.Background())
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "no words saved", engine.Snapshot().Message)

	require.NoError(t, stack.session.SignOut())
	_ = engine.LoadNewWord(context.Background())
	assert.Equal(t, "not authenticated", engine.Snapshot().Message)
}

func TestScenario_QuizRoundReportsStatistics(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	ctx := context.Background()
	stack.register(t, "learner@example.com")

	cfg := practice.DefaultConfig(practice.Quiz)
	cfg.CountdownTicks = 0
	cfg.Shuffle = func([]string) {}

	reporter := practice.NewAsyncReporter(stack.api, practice.DefaultReporterConfig(), nil)
	engine := practice.New(stack.api, reporter, cfg, nil)
	defer engine.Close()

	_, err := stack.api.SaveWord(ctx, "dog", "собака")
	require.NoError(t, err)

	err = engine.LoadNewWord(ctx)
	require.True(t, errors.Is(err, client.ErrInsufficientWords), "got %v", err)
	assert.Equal(t, "add at least 4 words to start a quiz", engine.Snapshot().Message)

	for _, p := range [][2]string{{"cat", "кошка"}, {"house", "дом"}, {"time", "время"}} {
		_, err := stack.api.SaveWord(ctx, p[0], p[1])
		require.NoError(t, err)
	}

	require.NoError(t, engine.LoadNewWord(ctx))
	snap := engine.Snapshot()
	require.Len(t, snap.Candidates, 4)

	correct, err := engine.Select(0)
	require.NoError(t, err)
	assert.True(t, correct)

	reporter.Close()
	for err := range reporter.Errors() {
		t.Fatalf("unexpected report error: %v", err)
	}

	w, err := stack.api.GetWord(ctx, snap.WordID)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Success)
	assert.Equal(t, 0, w.Failed)
}
