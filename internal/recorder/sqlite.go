package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SatoshiSim/internal/model"
)

// SQLiteRecorder persists quotes, valuations and orders to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc reads don't block the recorder.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quotes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			usd        REAL,
			change_24h REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_ts ON quotes(timestamp)`,

		`CREATE TABLE IF NOT EXISTS valuations (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			year             INTEGER,
			historical_price REAL,
			btc_amount       REAL,
			current_value    REAL,
			delta            REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_valuations_ts ON valuations(timestamp)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			order_id   TEXT,
			lines      TEXT,
			total      REAL,
			remaining  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_ts ON orders(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordQuote(q model.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO quotes (timestamp, usd, change_24h) VALUES (?,?,?)`,
		q.FetchedAt.Unix(), q.USD, q.Change24h,
	)
	return err
}

func (r *SQLiteRecorder) RecordValuation(v model.Valuation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO valuations
		(timestamp, year, historical_price, btc_amount, current_value, delta)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), v.Year, v.HistoricalPrice, v.BTCAmount, v.CurrentValue, v.Delta,
	)
	return err
}

func (r *SQLiteRecorder) RecordOrder(o model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return fmt.Errorf("encode order lines: %w", err)
	}
	_, err = r.db.Exec(`INSERT INTO orders (timestamp, order_id, lines, total, remaining)
		VALUES (?,?,?,?,?)`,
		o.CreatedAt.Unix(), o.ID.String(), string(lines), o.Total, o.Remaining,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
