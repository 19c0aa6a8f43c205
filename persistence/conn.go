package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

type Configuration struct {
	Driver     string `mapstructure:"driver" validate:"required_with=Connection"`
	Connection string `mapstructure:"dsn" validate:"required_with=Driver"`
}

const pingTimeout = 5 * time.Second

// Connect opens a database using config and checks that it answers.
func Connect(config Configuration, log zerolog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open(config.Driver, config.Connection)
	if err != nil {
		return nil, fmt.Errorf("error creating connection to database: %w", err)
	}
	if err := checkConnection(db); err != nil {
		db.Close()
		return nil, err
	}
	log.Info().
		Str("driver", config.Driver).
		Msg("connected to database")
	return db, nil
}

func checkConnection(conn *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("error checking connection to database: %w", err)
	}
	return nil
}
