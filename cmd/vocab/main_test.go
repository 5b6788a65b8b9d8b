package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kheyfetsdan/wordsaveriii/internal/practice"
)

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()

	authorized := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer tok"
	}
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"userId": "u1", "token": "tok"})
	})
	mux.HandleFunc("GET /words/count", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"total": 3})
	})
	mux.HandleFunc("POST /get-words-by-user", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"wordList": []map[string]any{
				{"id": 1, "word": "time", "translation": "время", "success": 2, "failed": 1},
			},
			"total": 1,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type result struct {
	code   int
	stdout string
	stderr string
}

func runVocab(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func setupEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("WORDSAVER_CLIENT_BASE_URL", baseURL)
	t.Setenv("WORDSAVER_CLIENT_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))
	t.Setenv("WORDSAVER_CLIENT_LOG_LEVEL", "error")
}

func TestRun_LoginPersistsToken(t *testing.T) {
	srv := newStubServer(t)
	setupEnv(t, srv.URL)

	res := runVocab(t, "", "count")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not authenticated")

	res = runVocab(t, "secret\n", "login", "-email", "user@example.com")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "signed in as user@example.com")

	res = runVocab(t, "", "count")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "3 words\n", res.stdout)

	res = runVocab(t, "", "logout")
	require.Equal(t, 0, res.code, res.stderr)

	res = runVocab(t, "", "count")
	assert.Equal(t, 1, res.code)
}

func TestRun_WrongPassword(t *testing.T) {
	srv := newStubServer(t)
	setupEnv(t, srv.URL)

	res := runVocab(t, "", "login", "-email", "user@example.com", "-password", "nope")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Invalid credentials")
}

func TestRun_Dict(t *testing.T) {
	srv := newStubServer(t)
	setupEnv(t, srv.URL)

	require.Equal(t, 0, runVocab(t, "", "login", "-email", "a@b.c", "-password", "secret").code)

	res := runVocab(t, "", "dict")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "время")
	assert.Contains(t, res.stdout, "page 1 of 1, 1 words, sorted by word asc")
}

func TestRun_Usage(t *testing.T) {
	srv := newStubServer(t)
	setupEnv(t, srv.URL)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{name: "no command", args: nil, code: 2},
		{name: "unknown command", args: []string{"fly"}, code: 2},
		{name: "missing args", args: []string{"add", "time"}, code: 2},
		{name: "bad id", args: []string{"show", "abc"}, code: 2},
		{name: "bad sort", args: []string{"dict", "-sort", "color"}, code: 2},
		{name: "help", args: []string{"help"}, code: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := runVocab(t, "", tc.args...)
			assert.Equal(t, tc.code, res.code, res.stderr)
		})
	}
}

func TestRenderer(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := &renderer{out: &out}

	cands := []practice.Candidate{{Text: "собака"}, {Text: "кошка"}, {Text: "время"}, {Text: "дом"}}
	r.render(practice.Snapshot{Mode: practice.Quiz, Phase: practice.Loading, Round: 1})
	r.render(practice.Snapshot{Mode: practice.Quiz, Phase: practice.Ready, Round: 1, Word: "dog", Candidates: cands})

	wrong := append([]practice.Candidate(nil), cands...)
	wrong[1].Disabled = true
	r.render(practice.Snapshot{Mode: practice.Quiz, Phase: practice.Ready, Round: 1, Word: "dog", Candidates: wrong})
	r.render(practice.Snapshot{Mode: practice.Quiz, Phase: practice.CountingDown, Round: 1, Word: "dog",
		Translation: "собака", Correct: true, Countdown: 5})
	r.render(practice.Snapshot{Mode: practice.Quiz, Phase: practice.CountingDown, Round: 1, Word: "dog",
		Translation: "собака", Correct: true, Countdown: 4})

	got := out.String()
	assert.Contains(t, got, "dog\n  1) [ ] собака")
	assert.Contains(t, got, "wrong, try again\n")
	assert.Contains(t, got, "  2) [x] кошка")
	assert.Contains(t, got, "correct! dog = собака\n")
	assert.Contains(t, got, "next word in 5...\nnext word in 4...\n")
	assert.Equal(t, 1, strings.Count(got, "correct!"))
}
