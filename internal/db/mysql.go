package db

import (
	"context"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// OpenMySQL prepares the direct SQL store without dialing. The DSN must
// carry parseTime=true so DATE and DATETIME columns scan into time.Time.
func OpenMySQL(dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(5 * time.Minute)
	return conn, nil
}

// ConnectMySQL opens the direct SQL store and verifies it with a ping.
func ConnectMySQL(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := OpenMySQL(dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
