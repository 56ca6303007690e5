package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/surlink/internal/client/models"
	"github.com/dmitrijs2005/surlink/internal/client/repositories/records"
	"github.com/dmitrijs2005/surlink/internal/common"
	"github.com/dmitrijs2005/surlink/internal/logging"
)

const (
	// AutoNextDelay is how long feedback stays before the next question.
	AutoNextDelay = 1200 * time.Millisecond
	// QuizPassPercent is the lowest passing score.
	QuizPassPercent = 70
)

var (
	ErrQuizLocked    = errors.New("question already answered")
	ErrInvalidOption = errors.New("invalid option")
)

type QuizPhase int

const (
	QuizAnswering QuizPhase = iota
	QuizFeedback
	QuizFinished
)

func (p QuizPhase) String() string {
	switch p {
	case QuizAnswering:
		return "answering"
	case QuizFeedback:
		return "feedback"
	default:
		return "finished"
	}
}

// QuizState is a snapshot published on every transition.
type QuizState struct {
	Phase    QuizPhase
	Index    int
	Total    int
	Score    int
	Question models.QuizQuestion
	// Selected is the chosen option in Feedback, -1 otherwise.
	Selected int
	Correct  bool
	Feedback string
	// Percent, Passed, Best and NewBest are set once Finished.
	Percent int
	Passed  bool
	Best    int
	NewBest bool
}

// stopper is the part of *time.Timer the quiz needs.
type stopper interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) stopper

func realAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Quiz is the three-question state machine. Answering moves to Feedback,
// which advances by timer or Next to the following question or Finished.
type Quiz struct {
	store     records.Repository
	log       logging.Logger
	questions []models.QuizQuestion
	delay     time.Duration
	after     afterFunc

	mu       sync.Mutex
	phase    QuizPhase
	index    int
	score    int
	selected int
	correct  bool
	best     int
	percent  int
	newBest  bool
	timer    stopper
	gen      uint64
	onChange func(QuizState)
}

func NewQuiz(store records.Repository, log logging.Logger) *Quiz {
	return newQuiz(store, log, models.DefaultQuizQuestions, AutoNextDelay, realAfterFunc)
}

func newQuiz(store records.Repository, log logging.Logger, questions []models.QuizQuestion, delay time.Duration, after afterFunc) *Quiz {
	return &Quiz{
		store:     store,
		log:       log,
		questions: questions,
		delay:     delay,
		after:     after,
		selected:  -1,
	}
}

// Subscribe sets the transition callback. Timed transitions call it from the
// timer goroutine.
func (q *Quiz) Subscribe(fn func(QuizState)) {
	q.mu.Lock()
	q.onChange = fn
	q.mu.Unlock()
}

// LoadBest reads the stored best percent; anything unparsable counts as 0.
func (q *Quiz) LoadBest(ctx context.Context) int {
	raw, err := q.store.Get(ctx, common.BestQuizKey)
	if err != nil {
		q.log.Warn(ctx, "failed to load best quiz score", "error", err)
	}
	best, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || best < 0 {
		best = 0
	}

	q.mu.Lock()
	q.best = best
	q.mu.Unlock()
	return best
}

func (q *Quiz) Best() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.best
}

func (q *Quiz) State() QuizState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stateLocked()
}

func (q *Quiz) stateLocked() QuizState {
	st := QuizState{
		Phase:    q.phase,
		Index:    q.index,
		Total:    len(q.questions),
		Score:    q.score,
		Selected: -1,
		Best:     q.best,
	}
	if q.phase != QuizFinished {
		st.Question = q.questions[q.index]
	}
	if q.phase == QuizFeedback {
		st.Selected = q.selected
		st.Correct = q.correct
		if q.correct {
			st.Feedback = "Correct!"
		} else {
			st.Feedback = "Not quite. Correct: " + st.Question.CorrectText()
		}
	}
	if q.phase == QuizFinished {
		st.Percent = q.percent
		st.Passed = q.percent >= QuizPassPercent
		st.NewBest = q.newBest
	}
	return st
}

// Select answers the current question and schedules the auto-advance.
func (q *Quiz) Select(option int) (QuizState, error) {
	q.mu.Lock()
	if q.phase != QuizAnswering {
		st := q.stateLocked()
		q.mu.Unlock()
		return st, ErrQuizLocked
	}
	if option < 0 || option >= len(q.questions[q.index].Options) {
		st := q.stateLocked()
		q.mu.Unlock()
		return st, fmt.Errorf("%w: %d", ErrInvalidOption, option+1)
	}

	q.selected = option
	q.correct = q.questions[q.index].Options[option].Correct
	if q.correct {
		q.score++
	}
	q.phase = QuizFeedback

	q.gen++
	gen := q.gen
	q.timer = q.after(q.delay, func() { q.autoAdvance(gen) })

	st, fn := q.stateLocked(), q.onChange
	q.mu.Unlock()

	publish(fn, st)
	return st, nil
}

// Next advances from Feedback at once. It does nothing in other phases.
func (q *Quiz) Next() QuizState {
	q.mu.Lock()
	if q.phase != QuizFeedback {
		st := q.stateLocked()
		q.mu.Unlock()
		return st
	}
	q.stopTimerLocked()
	q.advanceLocked()
	st, fn := q.stateLocked(), q.onChange
	q.mu.Unlock()

	q.afterTransition(st)
	publish(fn, st)
	return st
}

func (q *Quiz) autoAdvance(gen uint64) {
	q.mu.Lock()
	if gen != q.gen || q.phase != QuizFeedback {
		q.mu.Unlock()
		return
	}
	q.timer = nil
	q.advanceLocked()
	st, fn := q.stateLocked(), q.onChange
	q.mu.Unlock()

	q.afterTransition(st)
	publish(fn, st)
}

// Restart returns to the first question with a zero score.
func (q *Quiz) Restart() QuizState {
	q.mu.Lock()
	q.stopTimerLocked()
	q.phase = QuizAnswering
	q.index = 0
	q.score = 0
	q.selected = -1
	q.correct = false
	q.percent = 0
	q.newBest = false
	st, fn := q.stateLocked(), q.onChange
	q.mu.Unlock()

	publish(fn, st)
	return st
}

// Stop cancels a pending auto-advance.
func (q *Quiz) Stop() {
	q.mu.Lock()
	q.stopTimerLocked()
	q.mu.Unlock()
}

func (q *Quiz) stopTimerLocked() {
	q.gen++
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
}

func (q *Quiz) advanceLocked() {
	q.selected = -1
	q.correct = false
	if q.index+1 < len(q.questions) {
		q.index++
		q.phase = QuizAnswering
		return
	}

	q.phase = QuizFinished
	q.percent = QuizPercent(q.score, len(q.questions))
	q.newBest = q.percent > q.best
	if q.newBest {
		q.best = q.percent
	}
}

// afterTransition persists a new best score.
func (q *Quiz) afterTransition(st QuizState) {
	if st.Phase != QuizFinished || !st.NewBest {
		return
	}
	ctx := context.Background()
	if err := q.store.Put(ctx, common.BestQuizKey, []byte(strconv.Itoa(st.Best))); err != nil {
		q.log.Error(ctx, "failed to save best quiz score", "error", err)
	}
}

// QuizPercent is round(100*score/total).
func QuizPercent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(total)))
}

func publish(fn func(QuizState), st QuizState) {
	if fn != nil {
		fn(st)
	}
}
