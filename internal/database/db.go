package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/seatmap/internal/config"
)

// Open connects to MySQL using the DB_* settings of cfg and verifies the
// connection.
func Open(cfg config.Config) (*sql.DB, error) {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// seatsSchema mirrors the seat inventory table.  (vehicle_type, vehicle_id,
// row_no, col_no) is unique so a layout slot holds at most one seat.
const seatsSchema = `CREATE TABLE IF NOT EXISTS seats (
	id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	vehicle_type VARCHAR(10)     NOT NULL,
	vehicle_id   BIGINT UNSIGNED NOT NULL,
	seat_label   VARCHAR(10)     NOT NULL,
	row_no       INT             NOT NULL,
	col_no       INT             NOT NULL,
	seat_class   VARCHAR(20)     NOT NULL DEFAULT 'economy',
	is_booked    BOOLEAN         NOT NULL DEFAULT FALSE,
	created_at   DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY ux_seat_slot (vehicle_type, vehicle_id, row_no, col_no),
	KEY ix_seat_vehicle (vehicle_type, vehicle_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the tables the service reads from when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, seatsSchema); err != nil {
		return fmt.Errorf("create seats table: %w", err)
	}
	return nil
}
