package practice

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/kheyfetsdan/wordsaveriii/internal/client"
	"github.com/kheyfetsdan/wordsaveriii/internal/events"
)

// Mode selects how a round is answered.
type Mode int

const (
	// Recall asks for a typed translation.
	Recall Mode = iota
	// Quiz offers four candidate translations.
	Quiz
)

func (m Mode) String() string {
	if m == Quiz {
		return "quiz"
	}
	return "recall"
}

// Phase is the engine's position in a round.
type Phase int

const (
	// Idle is the state before the first load and after a cancelled one.
	Idle Phase = iota
	Loading
	Ready
	Answered
	CountingDown
	// Failed carries a message in the snapshot. LoadNewWord is the retry.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Answered:
		return "answered"
	case CountingDown:
		return "counting_down"
	case Failed:
		return "error"
	}
	return "idle"
}

// Candidate is one quiz option.
type Candidate struct {
	Text     string
	Disabled bool
}

// Totals counts answered rounds in this session.
type Totals struct {
	Answered int
	Correct  int
}

// Snapshot is an immutable view of the engine.
type Snapshot struct {
	Mode  Mode
	Phase Phase
	Round uint64

	WordID int64
	Word   string
	// Translation is empty until the round is answered.
	Translation string
	Correct     bool

	Candidates []Candidate
	Countdown  int
	Message    string
	Totals     Totals
}

// Config tunes an Engine.
type Config struct {
	Mode           Mode
	CountdownTicks int
	TickInterval   time.Duration
	// Shuffle reorders quiz candidates. Defaults to a uniform shuffle.
	Shuffle func([]string)
}

// DefaultConfig counts down five seconds before the next word.
func DefaultConfig(mode Mode) Config {
	return Config{
		Mode:           mode,
		CountdownTicks: 5,
		TickInterval:   time.Second,
	}
}

// Engine drives one practice session. It is safe for concurrent use.
type Engine struct {
	source   WordSource
	reporter StatReporter
	cfg      Config
	logger   *slog.Logger
	states   *events.Broadcaster[Snapshot]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu            sync.Mutex
	snap          Snapshot
	answer        string
	reported      bool
	previousID    int64
	previousWord  string
	stopCountdown context.CancelFunc
	closed        bool
}

// New creates an idle engine. A nil reporter discards statistics.
func New(source WordSource, reporter StatReporter, cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = DiscardReporter{}
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.Shuffle == nil {
		cfg.Shuffle = func(s []string) {
			rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		}
	}
	logger = logger.With("component", "practice", "mode", cfg.Mode.String())

	initial := Snapshot{Mode: cfg.Mode, Phase: Idle}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		source:   source,
		reporter: reporter,
		cfg:      cfg,
		logger:   logger,
		states:   events.NewBroadcasterWith(initial, logger),
		ctx:      ctx,
		cancel:   cancel,
		snap:     initial,
	}
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap.clone()
}

// Subscribe streams snapshots, starting with the current one. Slow readers
// only see the latest.
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	return e.states.Subscribe()
}

// LoadNewWord cancels any countdown and fetches the next word, excluding the
// previous one. Failures put the engine in the Failed phase and are returned.
func (e *Engine) LoadNewWord(ctx context.Context) error {
	return e.load(ctx, 0)
}

// load starts a new round. A non-zero after is the round a countdown belongs
// to; the load is skipped when another round has started since.
func (e *Engine) load(ctx context.Context, after uint64) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if after != 0 && e.snap.Round != after {
		e.mu.Unlock()
		return nil
	}
	e.cancelCountdownLocked()
	e.snap.Round++
	round := e.snap.Round
	e.snap.Phase = Loading
	e.snap.Message = ""
	e.snap.Countdown = 0
	excludeID, previous := e.previousID, e.previousWord
	e.publishLocked()
	e.mu.Unlock()

	ctx, stop := mergeCancel(ctx, e.ctx)
	defer stop()

	var (
		next    Snapshot
		answer  string
		loadErr error
	)
	switch e.cfg.Mode {
	case Quiz:
		var q *client.QuizWord
		q, loadErr = e.source.QuizWord(ctx, previous)
		if loadErr == nil {
			next, answer = e.quizRound(q)
		}
	default:
		var w *client.Word
		w, loadErr = e.source.RandomWord(ctx, excludeID)
		if loadErr == nil {
			next, answer = Snapshot{WordID: w.ID, Word: w.Word}, w.Translation
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.snap.Round != round {
		// A newer load or Close took over.
		return loadErr
	}

	if loadErr != nil {
		if errors.Is(loadErr, context.Canceled) && ctx.Err() != nil {
			e.snap.Phase = Idle
			e.publishLocked()
			return loadErr
		}
		e.snap.Phase = Failed
		e.snap.Message = Describe(e.cfg.Mode, loadErr)
		e.snap.WordID, e.snap.Word, e.snap.Translation = 0, "", ""
		e.snap.Candidates = nil
		e.publishLocked()
		e.logger.Debug("load failed", "error", loadErr)
		return loadErr
	}

	e.snap.Phase = Ready
	e.snap.WordID = next.WordID
	e.snap.Word = next.Word
	e.snap.Translation = ""
	e.snap.Correct = false
	e.snap.Candidates = next.Candidates
	e.answer = answer
	e.reported = false
	e.previousID, e.previousWord = next.WordID, next.Word
	e.publishLocked()
	return nil
}

func (e *Engine) quizRound(q *client.QuizWord) (Snapshot, string) {
	texts := q.Candidates()
	e.cfg.Shuffle(texts)

	candidates := make([]Candidate, len(texts))
	for i, t := range texts {
		candidates[i] = Candidate{Text: t}
	}
	return Snapshot{WordID: q.ID, Word: q.Word, Candidates: candidates}, q.TrueTranslation
}

// CheckAnswer compares input with the translation, ignoring case and
// surrounding space. Both outcomes reveal the translation and start the
// countdown.
func (e *Engine) CheckAnswer(input string) (bool, error) {
	if e.cfg.Mode != Recall {
		return false, ErrWrongMode
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return false, ErrEmptyAnswer
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.answerableLocked(); err != nil {
		return false, err
	}
	correct := strings.EqualFold(input, strings.TrimSpace(e.answer))
	e.finishRoundLocked(correct)
	return correct, nil
}

// ShowTranslation reveals the answer and records the round as failed.
func (e *Engine) ShowTranslation() error {
	if e.cfg.Mode != Recall {
		return ErrWrongMode
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.answerableLocked(); err != nil {
		return err
	}
	e.finishRoundLocked(false)
	return nil
}

// Select picks the quiz candidate at index. A wrong pick disables only that
// candidate; only the first pick of a round is reported.
func (e *Engine) Select(index int) (bool, error) {
	if e.cfg.Mode != Quiz {
		return false, ErrWrongMode
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.answerableLocked(); err != nil {
		return false, err
	}
	if index < 0 || index >= len(e.snap.Candidates) {
		return false, ErrInvalidChoice
	}
	if e.snap.Candidates[index].Disabled {
		return false, ErrChoiceDisabled
	}

	correct := e.snap.Candidates[index].Text == e.answer
	if !correct {
		e.snap.Candidates = append([]Candidate(nil), e.snap.Candidates...)
		e.snap.Candidates[index].Disabled = true
		e.reportLocked(false)
		e.publishLocked()
		return false, nil
	}

	e.finishRoundLocked(true)
	return true, nil
}

// Close stops the countdown and any load in flight. The engine cannot be
// used afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.cancelCountdownLocked()
	e.snap.Phase = Idle
	e.snap.Countdown = 0
	e.publishLocked()
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
	e.states.Close()
}

func (e *Engine) answerableLocked() error {
	if e.closed {
		return ErrClosed
	}
	switch e.snap.Phase {
	case Ready:
		return nil
	case Answered, CountingDown:
		return ErrAlreadyAnswered
	}
	return ErrNotReady
}

func (e *Engine) reportLocked(success bool) {
	if e.reported {
		return
	}
	e.reported = true
	e.snap.Totals.Answered++
	if success {
		e.snap.Totals.Correct++
	}
	e.reporter.Report(e.snap.WordID, success)
}

func (e *Engine) finishRoundLocked(correct bool) {
	e.reportLocked(correct)

	e.snap.Phase = Answered
	e.snap.Correct = correct
	e.snap.Translation = e.answer
	if len(e.snap.Candidates) > 0 {
		candidates := make([]Candidate, len(e.snap.Candidates))
		for i, c := range e.snap.Candidates {
			candidates[i] = Candidate{Text: c.Text, Disabled: true}
		}
		e.snap.Candidates = candidates
	}
	e.publishLocked()

	if e.cfg.CountdownTicks > 0 {
		e.startCountdownLocked()
	}
}

func (e *Engine) startCountdownLocked() {
	e.cancelCountdownLocked()

	ctx, cancel := context.WithCancel(e.ctx)
	e.stopCountdown = cancel
	round := e.snap.Round
	e.snap.Phase = CountingDown
	e.snap.Countdown = e.cfg.CountdownTicks
	e.publishLocked()

	e.wg.Add(1)
	go e.countdown(ctx, round)
}

func (e *Engine) countdown(ctx context.Context, round uint64) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		e.mu.Lock()
		if ctx.Err() != nil || e.snap.Round != round {
			e.mu.Unlock()
			return
		}
		e.snap.Countdown--
		remaining := e.snap.Countdown
		e.publishLocked()
		e.mu.Unlock()

		if remaining <= 0 {
			if err := e.load(e.ctx, round); err != nil && !errors.Is(err, ErrClosed) {
				e.logger.Debug("automatic load failed", "error", err)
			}
			return
		}
	}
}

func (e *Engine) cancelCountdownLocked() {
	if e.stopCountdown != nil {
		e.stopCountdown()
		e.stopCountdown = nil
	}
}

func (e *Engine) publishLocked() {
	e.states.Publish(e.snap.clone())
}

func (s Snapshot) clone() Snapshot {
	if s.Candidates != nil {
		s.Candidates = append([]Candidate(nil), s.Candidates...)
	}
	return s
}

// mergeCancel returns a context that is done when either parent is.
func mergeCancel(ctx, other context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(other, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}
