package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"bookbound/internal/domain"
)

// DraftRepo parks order drafts between the stock pre-check and the shortage
// decision. Each draft is keyed by a workflow invocation id so the handoff is
// explicit state, never ambient globals. Drafts are short-lived; anything the
// customer abandons is purged.
type DraftRepo struct{ db *sqlx.DB }

func NewDraftRepo(db *sqlx.DB) *DraftRepo { return &DraftRepo{db: db} }

var ErrDraftNotFound = errors.New("order draft not found or expired")

type PendingDraft struct {
	ID         string
	CustomerID int64
	Draft      domain.OrderDraft
	Shortages  []domain.ShortageItem
}

func (r *DraftRepo) Save(id string, customerID int64, draft domain.OrderDraft, shortages []domain.ShortageItem) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	sh, err := json.Marshal(shortages)
	if err != nil {
		return fmt.Errorf("encode shortages: %w", err)
	}
	_, err = r.db.Exec(`
		INSERT INTO order_drafts(id, customer_id, payload, shortages)
		VALUES(?,?,?,?)
	`, id, customerID, string(payload), string(sh))
	return err
}

// Get loads a draft; the customer id must match the one the draft was parked
// under, so one session can never finalize another customer's draft.
func (r *DraftRepo) Get(id string, customerID int64) (*PendingDraft, error) {
	var row struct {
		ID         string `db:"id"`
		CustomerID int64  `db:"customer_id"`
		Payload    string `db:"payload"`
		Shortages  string `db:"shortages"`
	}
	err := r.db.Get(&row, `SELECT id, customer_id, payload, shortages FROM order_drafts WHERE id = ? AND customer_id = ?`, id, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	out := &PendingDraft{ID: row.ID, CustomerID: row.CustomerID}
	if err := json.Unmarshal([]byte(row.Payload), &out.Draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Shortages), &out.Shortages); err != nil {
		return nil, fmt.Errorf("decode shortages: %w", err)
	}
	return out, nil
}

// Delete is scoped by owner, same as Get: a known draft id is not enough to
// discard another customer's parked draft.
func (r *DraftRepo) Delete(id string, customerID int64) error {
	_, err := r.db.Exec(`DELETE FROM order_drafts WHERE id = ? AND customer_id = ?`, id, customerID)
	return err
}

// PurgeOlderThan drops abandoned drafts. Called opportunistically at startup
// and after each save.
func (r *DraftRepo) PurgeOlderThan(age time.Duration) error {
	cutoff := time.Now().UTC().Add(-age).Format("2006-01-02 15:04:05")
	_, err := r.db.Exec(`DELETE FROM order_drafts WHERE created_at < ?`, cutoff)
	return err
}
