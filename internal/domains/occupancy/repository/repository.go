package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stayin/infras/otel"
	"stayin/infras/sqlite"
	"stayin/internal/domains/occupancy/model"
	gDto "stayin/shared/dto"
	gRepo "stayin/shared/repository"

	"github.com/rs/zerolog/log"
)

type Occupancy interface {
	Insert(ctx context.Context, model model.Occupant) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Occupant, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Occupant, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Occupant]
	db   *sqlite.Connection
	otel otel.Otel
}

func New(db *sqlite.Connection, otel otel.Otel) Occupancy {
	if err := ensureSchema(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare occupants table")
	}

	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Occupant](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const createOccupantsTable = `
CREATE TABLE IF NOT EXISTS ` + model.TableName + ` (
	id            TEXT PRIMARY KEY,
	room_no       TEXT NOT NULL,
	name          TEXT NOT NULL DEFAULT '',
	contact_no    TEXT NOT NULL DEFAULT '',
	address       TEXT NOT NULL DEFAULT '',
	gender        TEXT NOT NULL DEFAULT '',
	checkin_date  TEXT NOT NULL DEFAULT '',
	checkout_date TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL,
	modified_at   TIMESTAMP NOT NULL,
	created_by    TEXT NOT NULL DEFAULT '',
	modified_by   TEXT NOT NULL DEFAULT ''
)`

// The store enforces one occupant per room so the pre-insert check cannot be
// raced into a double booking.
const createRoomIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_occupants_room_no ON ` + model.TableName + ` (room_no)`

func ensureSchema(db *sqlite.Connection) error {
	if _, err := db.Write.Exec(createOccupantsTable); err != nil {
		return fmt.Errorf("failed to create occupants table: %w", err)
	}

	if _, err := db.Write.Exec(createRoomIndex); err != nil {
		return fmt.Errorf("failed to create occupants room index: %w", err)
	}

	return nil
}
