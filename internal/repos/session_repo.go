package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type SessionRepo struct{ db *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{db: db} }

type Session struct {
	ID          string         `db:"id"`
	Role        string         `db:"role"` // CUSTOMER | ADMIN
	CustomerID  sql.NullInt64  `db:"customer_id"`
	DisplayName sql.NullString `db:"display_name"`
}

func (s Session) IsAdmin() bool { return s.Role == "ADMIN" }

func (s Session) Customer() int64 {
	if s.CustomerID.Valid {
		return s.CustomerID.Int64
	}
	return 0
}

func (s Session) Name() string {
	if s.DisplayName.Valid {
		return s.DisplayName.String
	}
	return ""
}

func (r *SessionRepo) Bind(sid, role string, customerID int64, displayName string) error {
	var cid any
	if customerID > 0 {
		cid = customerID
	}
	_, err := r.db.Exec(`
		INSERT INTO sessions(id, role, customer_id, display_name, last_seen)
		VALUES(?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
		  role = excluded.role,
		  customer_id = excluded.customer_id,
		  display_name = excluded.display_name,
		  last_seen = CURRENT_TIMESTAMP
	`, sid, role, cid, displayName)
	return err
}

// Get returns nil when the sid has no bound login.
func (r *SessionRepo) Get(sid string) (*Session, error) {
	var s Session
	err := r.db.Get(&s, `SELECT id, role, customer_id, display_name FROM sessions WHERE id = ?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	_, _ = r.db.Exec(`UPDATE sessions SET last_seen = CURRENT_TIMESTAMP WHERE id = ?`, sid)
	return &s, nil
}

func (r *SessionRepo) Unbind(sid string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, sid)
	return err
}
