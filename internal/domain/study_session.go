package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session-specific validation errors
var (
	// ErrSessionIDEmpty is returned when a session ID is empty or nil.
	ErrSessionIDEmpty = errors.New("session ID cannot be empty")

	// ErrSessionTopicEmpty is returned when a session's topic is empty.
	ErrSessionTopicEmpty = errors.New("session topic cannot be empty")

	// ErrSessionContentEmpty is returned when a session carries no notes,
	// flashcards, or exam questions at all.
	ErrSessionContentEmpty = errors.New("session must contain at least one note, flashcard, or exam question")
)

// Note is a single heading with its bullet points, as produced by the
// generation layer.
type Note struct {
	Heading string   `json:"heading"`
	Points  []string `json:"points"`
}

// Flashcard is a front/back card. Front and back are already a valid
// term/definition pair and bypass bullet splitting during extraction.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// MCQQuestion is a multiple-choice exam question. CorrectAnswer must
// exactly string-match one entry in Options.
type MCQQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// ShortAnswerQuestion is a free-text exam question with a model answer.
type ShortAnswerQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Exam groups the pre-structured practice questions. These feed the
// practice session directly; no pair extraction is involved.
type Exam struct {
	MCQ   []MCQQuestion         `json:"mcq"`
	Short []ShortAnswerQuestion `json:"short"`
}

// StudySession is one full generated study set: the unit of history
// persisted by the session store.
type StudySession struct {
	ID         uuid.UUID   `json:"id"`
	Topic      string      `json:"topic"`
	Notes      []Note      `json:"notes"`
	Flashcards []Flashcard `json:"flashcards"`
	Exam       Exam        `json:"exam"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewStudySession creates a StudySession with a fresh ID and creation
// timestamp. Returns an error if validation fails.
func NewStudySession(topic string, notes []Note, flashcards []Flashcard, exam Exam) (*StudySession, error) {
	s := &StudySession{
		ID:         uuid.New(),
		Topic:      topic,
		Notes:      notes,
		Flashcards: flashcards,
		Exam:       exam,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks that the session has valid data.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.Topic == "" {
		return ErrSessionTopicEmpty
	}

	if len(s.Notes) == 0 && len(s.Flashcards) == 0 &&
		len(s.Exam.MCQ) == 0 && len(s.Exam.Short) == 0 {
		return ErrSessionContentEmpty
	}

	return nil
}

// DailyUsage tracks how many study sets were generated on a given day.
// Date is formatted as "2006-01-02"; a stored date other than today means
// the counter is stale and resets to zero.
type DailyUsage struct {
	Count int    `json:"count"`
	Date  string `json:"date"`
}

// UsageDateFormat is the layout used for DailyUsage.Date.
const UsageDateFormat = "2006-01-02"

// ResetIfStale returns the usage unchanged when its date matches now's
// date, otherwise a fresh zero counter for today.
func (u DailyUsage) ResetIfStale(now time.Time) DailyUsage {
	today := now.Format(UsageDateFormat)
	if u.Date == today {
		return u
	}
	return DailyUsage{Count: 0, Date: today}
}
