// Package emotion implements the emotion-matching quiz.
//
// A Quiz moves between three phases. Answering correctly locks input in
// PhaseCorrect until Advance is called with the round it was issued for;
// answering incorrectly shows PhaseIncorrect until ClearFeedback is called with
// the matching feedback sequence. The caller owns the timers and passes the
// tags back, so a timer that fires after a newer answer or a reset is ignored.
package emotion

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// Storage keys for the persisted counters.
const (
	ScoreKey    = "autiplay-emotion-score"
	AttemptsKey = "autiplay-emotion-attempts"
)

// Timing of the feedback sequence.
const (
	AdvanceDelay        = 3 * time.Second
	CelebrationDuration = 2 * time.Second
	IncorrectDuration   = 1500 * time.Millisecond
)

// OptionCount is the number of answer candidates per round.
const OptionCount = 4

// Storage is the key-value space the counters persist into.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Phase is the quiz state.
type Phase int

const (
	PhaseAwaiting Phase = iota
	PhaseCorrect
	PhaseIncorrect
)

func (p Phase) String() string {
	switch p {
	case PhaseCorrect:
		return "showing-correct"
	case PhaseIncorrect:
		return "showing-incorrect"
	default:
		return "awaiting-answer"
	}
}

// Emotion is one face the quiz can ask about.
type Emotion struct {
	Emoji       string
	Name        string
	Description string
}

var emotions = []Emotion{
	{Emoji: "😊", Name: "Happy", Description: "Feeling good and cheerful"},
	{Emoji: "😢", Name: "Sad", Description: "Feeling unhappy or tearful"},
	{Emoji: "😡", Name: "Angry", Description: "Feeling mad or frustrated"},
	{Emoji: "😰", Name: "Scared", Description: "Feeling nervous or afraid"},
	{Emoji: "😴", Name: "Tired", Description: "Needing rest or sleep"},
	{Emoji: "🤔", Name: "Confused", Description: "Not understanding something"},
}

// Emotions returns the fixed emotion set.
func Emotions() []Emotion {
	out := make([]Emotion, len(emotions))
	copy(out, emotions)
	return out
}

// Outcome describes what an Answer call did.
type Outcome struct {
	// Ignored is set when input was locked; nothing changed.
	Ignored bool
	Correct bool
	// Round tags the pending Advance after a correct answer.
	Round int
	// Seq tags the pending ClearFeedback after an incorrect answer.
	Seq int
}

// Quiz is the emotion view's state.
type Quiz struct {
	rng   *rand.Rand
	store Storage

	target  Emotion
	options []Emotion
	phase   Phase
	picked  string

	score    int
	attempts int
	round    int
	seq      int
}

// New restores the counters from store and deals the first question. A nil
// rng uses a randomly seeded source; a nil store keeps counters in memory.
func New(store Storage, rng *rand.Rand) *Quiz {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	q := &Quiz{rng: rng, store: store}
	q.score = q.readCounter(ScoreKey)
	q.attempts = q.readCounter(AttemptsKey)
	q.NewQuestion()
	return q
}

// NewQuestion picks a target uniformly at random, adds three distinct
// distractors from the remaining emotions and shuffles the four options.
func (q *Quiz) NewQuestion() {
	pool := Emotions()
	idx := q.rng.IntN(len(pool))
	q.target = pool[idx]

	rest := append(pool[:idx:idx], pool[idx+1:]...)
	q.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	options := make([]Emotion, 0, OptionCount)
	options = append(options, q.target)
	options = append(options, rest[:OptionCount-1]...)
	q.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	q.options = options
	q.phase = PhaseAwaiting
	q.picked = ""
	q.round++
}

// Answer records a guess. While a correct answer is being revealed the call
// is ignored. The returned error only reports a failed counter write; the
// in-memory state is updated regardless.
func (q *Quiz) Answer(name string) (Outcome, error) {
	if q.phase == PhaseCorrect {
		return Outcome{Ignored: true, Round: q.round, Seq: q.seq}, nil
	}

	q.attempts++
	q.seq++
	q.picked = name

	out := Outcome{Round: q.round, Seq: q.seq}
	if name == q.target.Name {
		q.phase = PhaseCorrect
		q.score++
		out.Correct = true
	} else {
		q.phase = PhaseIncorrect
	}
	return out, q.save()
}

// AnswerIndex answers with the option at idx (zero-based). Out-of-range
// indexes are ignored.
func (q *Quiz) AnswerIndex(idx int) (Outcome, error) {
	if idx < 0 || idx >= len(q.options) {
		return Outcome{Ignored: true, Round: q.round, Seq: q.seq}, nil
	}
	return q.Answer(q.options[idx].Name)
}

// Advance deals a new question if the quiz is still revealing the correct
// answer of round. It reports whether it did.
func (q *Quiz) Advance(round int) bool {
	if round != q.round || q.phase != PhaseCorrect {
		return false
	}
	q.NewQuestion()
	return true
}

// ClearFeedback ends the incorrect-answer feedback issued with seq. It
// reports whether it did.
func (q *Quiz) ClearFeedback(seq int) bool {
	if seq != q.seq || q.phase != PhaseIncorrect {
		return false
	}
	q.phase = PhaseAwaiting
	return true
}

// ResetStats zeroes score and attempts and deals a new question.
func (q *Quiz) ResetStats() error {
	q.score = 0
	q.attempts = 0
	q.seq++
	err := q.save()
	q.NewQuestion()
	return err
}

// Target returns the emotion of the current round.
func (q *Quiz) Target() Emotion { return q.target }

// Options returns the answer candidates in display order.
func (q *Quiz) Options() []Emotion {
	out := make([]Emotion, len(q.options))
	copy(out, q.options)
	return out
}

// Phase returns the current phase.
func (q *Quiz) Phase() Phase { return q.phase }

// Picked returns the name chosen in the last answer of this round.
func (q *Quiz) Picked() string { return q.picked }

// Score returns the number of correct answers.
func (q *Quiz) Score() int { return q.score }

// Attempts returns the number of answers given.
func (q *Quiz) Attempts() int { return q.attempts }

// Round returns the current round number.
func (q *Quiz) Round() int { return q.round }

// Accuracy returns score/attempts as a rounded percentage.
func (q *Quiz) Accuracy() int {
	return Accuracy(q.score, q.attempts)
}

// Explanation describes the target once it has been guessed.
func (q *Quiz) Explanation() string {
	if q.phase != PhaseCorrect {
		return ""
	}
	return fmt.Sprintf("%s %s: %s", q.target.Emoji, q.target.Name, q.target.Description)
}

// Accuracy returns score/attempts as a rounded percentage, 0 without attempts.
func Accuracy(score, attempts int) int {
	if attempts <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(attempts) * 100))
}

// ReadCounters returns the persisted score and attempts.
func ReadCounters(store Storage) (score, attempts int) {
	q := Quiz{store: store}
	return q.readCounter(ScoreKey), q.readCounter(AttemptsKey)
}

func (q *Quiz) readCounter(key string) int {
	if q.store == nil {
		return 0
	}
	raw, ok, err := q.store.Get(key)
	if err != nil || !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (q *Quiz) save() error {
	if q.store == nil {
		return nil
	}
	if err := q.store.Set(ScoreKey, strconv.Itoa(q.score)); err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	if err := q.store.Set(AttemptsKey, strconv.Itoa(q.attempts)); err != nil {
		return fmt.Errorf("save attempts: %w", err)
	}
	return nil
}
