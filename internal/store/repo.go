package store

import (
	"context"
	"errors"
	"time"
)

// DefaultPoints is the score of a challenge created without explicit points.
const DefaultPoints = 100

// ErrInvalidChallenge is returned when challenge fields fail validation.
var ErrInvalidChallenge = errors.New("invalid challenge")

// Difficulty grades a challenge.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Status tracks a challenge through its lifecycle.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func difficultyValues() []string {
	return []string{string(DifficultyBeginner), string(DifficultyIntermediate), string(DifficultyAdvanced)}
}

func statusValues() []string {
	return []string{string(StatusActive), string(StatusCompleted), string(StatusFailed)}
}

// Challenge is a persisted practice exercise.
type Challenge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Points      int        `json:"points"`
	Difficulty  Difficulty `json:"difficulty"`
	Status      Status     `json:"status"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ChallengeFields holds the caller-supplied values for a new challenge.
// Nil Points and empty Difficulty fall back to the column defaults.
type ChallengeFields struct {
	Name        string
	Description string
	Points      *int
	Difficulty  Difficulty
}

// ChallengeRepo manages challenge records.
type ChallengeRepo interface {
	// Create stores a new active challenge and returns it.
	Create(ctx context.Context, fields ChallengeFields) (*Challenge, error)

	// List returns all challenges, newest first.
	List(ctx context.Context) ([]Challenge, error)

	// Get returns the challenge with the given ID, or nil if none exists.
	Get(ctx context.Context, id string) (*Challenge, error)

	// MarkCompleted sets every challenge named name to completed with end
	// time at. It returns the number of records updated; zero is not an error.
	MarkCompleted(ctx context.Context, name string, at time.Time) (int64, error)
}
