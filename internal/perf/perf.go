// Package perf holds the in-memory record of questions issued and answers
// received during one benchmark run. It is the single source of truth for
// "how is the learner doing right now": the difficulty reviewer reads its
// recency-windowed snapshot before approving each question.
//
// A Store's lifetime is exactly one run. Reusing a store across runs would
// leak stale history into the recency window, so the driver constructs a
// fresh one every time.
package perf

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// RecentWindow is the number of most recent answers the reviewer sees.
const RecentWindow = 5

// Question is a proposed question as it leaves the authoring step:
// options in authored order, correct answer identified by index.
type Question struct {
	Text         string
	Options      []string
	CorrectIndex int
}

// QuestionRecord is a registered question. Created once, never mutated.
// Options are in presentation order (shuffled at registration); the correct
// answer is identified by text, not by the authored index.
type QuestionRecord struct {
	ID            string
	Text          string
	Options       []string
	CorrectOption string
	CreatedAt     time.Time
}

// CorrectLetter returns the presentation letter (A-D) of the correct option.
func (q *QuestionRecord) CorrectLetter() string {
	for i, opt := range q.Options {
		if opt == q.CorrectOption {
			return string(rune('A' + i))
		}
	}
	return ""
}

// AnswerRecord is the learner's answer to one registered question.
// At most one per question; re-recording overwrites (see RecordAnswer).
type AnswerRecord struct {
	QuestionID string
	Submitted  string
	IsCorrect  bool
	AnsweredAt time.Time
}

// Snapshot is the aggregate performance view handed to the reviewer.
// A zero-history snapshot has zeroed fields, which is a valid state, not
// an error.
type Snapshot struct {
	Total      int
	Correct    int
	Incorrect  int
	Percentage float64
	Recent     []AnswerRecord // last RecentWindow answers, oldest first
}

// Store records all questions and answers for one run.
type Store struct {
	rng         *rand.Rand
	questions   map[string]*QuestionRecord
	answers     map[string]*AnswerRecord
	answerOrder []string // question ids in answer-time order
	lastID      string
}

// NewStore creates an empty store with a randomly seeded shuffler.
func NewStore() *Store {
	return NewSeededStore(rand.Uint64(), rand.Uint64())
}

// NewSeededStore creates an empty store whose option shuffling is
// deterministic for the given seed. Tests use this to pin presentation
// order.
func NewSeededStore(seed1, seed2 uint64) *Store {
	return &Store{
		rng:       rand.New(rand.NewPCG(seed1, seed2)),
		questions: make(map[string]*QuestionRecord),
		answers:   make(map[string]*AnswerRecord),
	}
}

// Register stores an approved question, assigns its identifier, and
// randomizes the option order. The correct answer survives the shuffle by
// text identity. Returns the registered record.
func (s *Store) Register(q Question) *QuestionRecord {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	correct := q.Options[q.CorrectIndex]

	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	rec := &QuestionRecord{
		ID:            uuid.NewString(),
		Text:          q.Text,
		Options:       options,
		CorrectOption: correct,
		CreatedAt:     time.Now(),
	}
	s.questions[rec.ID] = rec
	s.lastID = rec.ID
	return rec
}

// RecordAnswer stores the learner's answer for a registered question.
// Returns false when the id is unknown. Re-recording an answer for the
// same id overwrites the previous one and moves it to the end of the
// recency window — the overwrite is intentional (idempotent re-record),
// not an error.
func (s *Store) RecordAnswer(id, submitted string, isCorrect bool) bool {
	if _, ok := s.questions[id]; !ok {
		return false
	}

	if _, exists := s.answers[id]; exists {
		for i, qid := range s.answerOrder {
			if qid == id {
				s.answerOrder = append(s.answerOrder[:i], s.answerOrder[i+1:]...)
				break
			}
		}
	}

	s.answers[id] = &AnswerRecord{
		QuestionID: id,
		Submitted:  submitted,
		IsCorrect:  isCorrect,
		AnsweredAt: time.Now(),
	}
	s.answerOrder = append(s.answerOrder, id)
	return true
}

// Snapshot returns the current aggregate performance view.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{Total: len(s.answerOrder)}

	for _, id := range s.answerOrder {
		if s.answers[id].IsCorrect {
			snap.Correct++
		}
	}
	snap.Incorrect = snap.Total - snap.Correct
	if snap.Total > 0 {
		snap.Percentage = float64(snap.Correct) / float64(snap.Total) * 100
	}

	start := len(s.answerOrder) - RecentWindow
	if start < 0 {
		start = 0
	}
	for _, id := range s.answerOrder[start:] {
		snap.Recent = append(snap.Recent, *s.answers[id])
	}
	return snap
}

// Question returns the registered question for id.
func (s *Store) Question(id string) (*QuestionRecord, bool) {
	q, ok := s.questions[id]
	return q, ok
}

// LastRegisteredID returns the id of the most recently registered
// question. ok is false when the store is empty.
func (s *Store) LastRegisteredID() (id string, ok bool) {
	if s.lastID == "" {
		return "", false
	}
	return s.lastID, true
}
