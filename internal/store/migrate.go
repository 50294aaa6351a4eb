package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	challengesTable = "challenges"

	colID          = "id"
	colName        = "name"
	colDescription = "description"
	colPoints      = "points"
	colDifficulty  = "difficulty"
	colStatus      = "status"
	colStartTime   = "start_time"
	colEndTime     = "end_time"
	colCreatedAt   = "created_at"
	colUpdatedAt   = "updated_at"
)

// challengeColumns lists columns in the order they are inserted and scanned.
var challengeColumns = []string{
	colID, colName, colDescription, colPoints, colDifficulty,
	colStatus, colStartTime, colEndTime, colCreatedAt, colUpdatedAt,
}

var (
	challengesColumns = []*entschema.Column{
		{Name: colID, Type: field.TypeString, Unique: true},
		{Name: colName, Type: field.TypeString},
		{Name: colDescription, Type: field.TypeString, Size: 2147483647},
		{Name: colPoints, Type: field.TypeInt, Default: DefaultPoints},
		{Name: colDifficulty, Type: field.TypeEnum, Enums: difficultyValues(), Default: string(DifficultyBeginner)},
		{Name: colStatus, Type: field.TypeEnum, Enums: statusValues(), Default: string(StatusActive)},
		{Name: colStartTime, Type: field.TypeTime},
		{Name: colEndTime, Type: field.TypeTime, Nullable: true},
		{Name: colCreatedAt, Type: field.TypeTime},
		{Name: colUpdatedAt, Type: field.TypeTime},
	}
	challengesSchema = &entschema.Table{
		Name:       challengesTable,
		Columns:    challengesColumns,
		PrimaryKey: []*entschema.Column{challengesColumns[0]},
		Indexes: []*entschema.Index{
			{Name: "challenge_name", Columns: []*entschema.Column{challengesColumns[1]}},
			{Name: "challenge_status", Columns: []*entschema.Column{challengesColumns[5]}},
		},
	}
)

// migrate creates or updates the tables owned by the store.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := entschema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, challengesSchema)
}
