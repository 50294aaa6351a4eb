package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// challengeRepo implements ChallengeRepo with ent's SQL builder.
type challengeRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *challengeRepo) Create(ctx context.Context, fields ChallengeFields) (*Challenge, error) {
	if err := fields.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &Challenge{
		ID:          uuid.NewString(),
		Name:        fields.Name,
		Description: fields.Description,
		Points:      DefaultPoints,
		Difficulty:  fields.Difficulty,
		Status:      StatusActive,
		StartTime:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if fields.Points != nil {
		c.Points = *fields.Points
	}
	if c.Difficulty == "" {
		c.Difficulty = DifficultyBeginner
	}

	query, args := builder().
		Insert(challengesTable).
		Columns(challengeColumns...).
		Values(c.ID, c.Name, c.Description, c.Points, string(c.Difficulty),
			string(c.Status), c.StartTime, nil, c.CreatedAt, c.UpdatedAt).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("save challenge: %w", err)
	}
	return c, nil
}

func (r *challengeRepo) List(ctx context.Context) ([]Challenge, error) {
	query, args := builder().
		Select(challengeColumns...).
		From(entsql.Table(challengesTable)).
		OrderBy(entsql.Desc(colCreatedAt), entsql.Desc(colID)).
		Query()

	challenges, err := r.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query challenges: %w", err)
	}
	return challenges, nil
}

func (r *challengeRepo) Get(ctx context.Context, id string) (*Challenge, error) {
	query, args := builder().
		Select(challengeColumns...).
		From(entsql.Table(challengesTable)).
		Where(entsql.EQ(colID, id)).
		Limit(1).
		Query()

	challenges, err := r.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query challenge %s: %w", id, err)
	}
	if len(challenges) == 0 {
		return nil, nil
	}
	return &challenges[0], nil
}

func (r *challengeRepo) MarkCompleted(ctx context.Context, name string, at time.Time) (int64, error) {
	at = at.UTC()
	query, args := builder().
		Update(challengesTable).
		Set(colStatus, string(StatusCompleted)).
		Set(colEndTime, at).
		Set(colUpdatedAt, at).
		Where(entsql.EQ(colName, name)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("mark challenge %q completed: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *challengeRepo) query(ctx context.Context, query string, args []any) ([]Challenge, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Challenge, 0)
	for rows.Next() {
		var (
			c          Challenge
			difficulty string
			status     string
			endTime    sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Points, &difficulty,
			&status, &c.StartTime, &endTime, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		c.Difficulty = Difficulty(difficulty)
		c.Status = Status(status)
		if endTime.Valid {
			t := endTime.Time
			c.EndTime = &t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (f ChallengeFields) validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidChallenge)
	}
	if f.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidChallenge)
	}
	if f.Points != nil && *f.Points < 0 {
		return fmt.Errorf("%w: points must not be negative", ErrInvalidChallenge)
	}
	switch f.Difficulty {
	case "", DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidChallenge, f.Difficulty)
	}
	return nil
}
