package sqlite

//nolint:revive
import (
	"fmt"
	"stayin/config"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// A single connection is opened at process start and held for the process
// lifetime. MaxOpenConns is pinned to 1 so every statement goes through the
// same underlying sqlite handle.
const (
	sqliteMaxIdleConnection = 1
	sqliteMaxOpenConnection = 1
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	db := CreateSQLiteConn(*config)

	return &Connection{
		Read:  db,
		Write: db,
	}
}

// CreateSQLiteConn opens the file-backed database.
func CreateSQLiteConn(config config.Config) *sqlx.DB {
	descriptor := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		config.DB.SQLite.Path,
		config.DB.SQLite.BusyTimeoutMS,
	)

	sqlDB, err := sqlx.Connect("sqlite", descriptor)
	if err != nil {
		log.Fatal().
			Err(err).
			Str("path", config.DB.SQLite.Path).
			Msg("Failed to open database file")

		return nil
	}

	sqlDB.SetMaxIdleConns(sqliteMaxIdleConnection)
	sqlDB.SetMaxOpenConns(sqliteMaxOpenConnection)

	log.Info().
		Str("path", config.DB.SQLite.Path).
		Msg("Connected to database")

	return sqlDB
}
