package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the frontend-local sqlite store. Only two things live here:
// login sessions and pending order drafts parked between the stock pre-check
// and the customer's shortage decision. All business state stays in the
// backend.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  role TEXT NOT NULL CHECK (role IN ('CUSTOMER','ADMIN')),
  customer_id INTEGER,
  display_name TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);

CREATE TABLE IF NOT EXISTS order_drafts(
  id TEXT PRIMARY KEY,               -- workflow invocation id
  customer_id INTEGER NOT NULL,
  payload TEXT NOT NULL,             -- json OrderDraft
  shortages TEXT NOT NULL,           -- json []ShortageItem from the pre-check
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_order_drafts_customer ON order_drafts(customer_id);
`
	_, err := db.Exec(schema)
	return err
}
