package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"stayin/infras/otel"
	"stayin/infras/sqlite"
	"stayin/internal/domains/billing/model"
	gDto "stayin/shared/dto"
	gRepo "stayin/shared/repository"

	"github.com/rs/zerolog/log"
)

type Billing interface {
	Insert(ctx context.Context, model model.LedgerRow) error
	InsertBulk(ctx context.Context, models []model.LedgerRow) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.LedgerRow, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.LedgerRow]
	db   *sqlite.Connection
	otel otel.Otel
}

func New(db *sqlite.Connection, otel otel.Otel) Billing {
	if err := ensureSchema(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare ledger table")
	}

	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.LedgerRow](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

var ledgerColumns = []string{
	model.FieldID,
	model.FieldTableNumber,
	model.FieldCustomerName,
	model.FieldCustomerContact,
	model.FieldItemName,
	model.FieldItemQuantity,
	model.FieldCostPerItem,
	model.FieldBillNumber,
	model.FieldDate,
	model.FieldTotalCost,
}

const createLedgerTable = `
CREATE TABLE ` + model.TableName + ` (
	id               TEXT PRIMARY KEY,
	table_number     TEXT NOT NULL,
	customer_name    TEXT NOT NULL,
	customer_contact TEXT NOT NULL,
	item_name        TEXT NOT NULL,
	item_quantity    INTEGER NOT NULL,
	cost_per_item    REAL NOT NULL,
	bill_number      INTEGER NOT NULL,
	date             TEXT NOT NULL,
	total_cost       REAL NOT NULL,
	created_at       TIMESTAMP NOT NULL,
	modified_at      TIMESTAMP NOT NULL,
	created_by       TEXT NOT NULL DEFAULT '',
	modified_by      TEXT NOT NULL DEFAULT ''
)`

// ensureSchema recreates the ledger table when its column set does not match
// what this version expects. Recreation drops existing rows.
func ensureSchema(db *sqlite.Connection) error {
	var existing []string

	query := fmt.Sprintf("SELECT name FROM pragma_table_info('%s')", model.TableName)
	if err := db.Read.Select(&existing, query); err != nil {
		return fmt.Errorf("failed to inspect ledger table: %w", err)
	}

	complete := true

	for _, col := range ledgerColumns {
		if !slices.Contains(existing, col) {
			complete = false

			break
		}
	}

	if len(existing) > 0 && complete {
		return nil
	}

	if len(existing) > 0 {
		log.Warn().Str("table", model.TableName).Msg("Ledger table schema outdated, recreating")

		if _, err := db.Write.Exec(fmt.Sprintf("DROP TABLE %s", model.TableName)); err != nil {
			return fmt.Errorf("failed to drop ledger table: %w", err)
		}
	}

	if _, err := db.Write.Exec(createLedgerTable); err != nil {
		return fmt.Errorf("failed to create ledger table: %w", err)
	}

	return nil
}
