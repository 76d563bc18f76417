package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// UserFact is one append-only piece of known user information.
type UserFact struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Fact      string    `db:"fact"`
	Category  string    `db:"category"`
	CreatedAt time.Time `db:"created_at"`
}

// InsertUserFact appends a fact for a user.
func (s *Store) InsertUserFact(ctx context.Context, f *UserFact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_facts (id, user_id, fact, category, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, f.ID, f.UserID, f.Fact, f.Category, f.CreatedAt)
	return errors.Wrap(err, "inserting user fact")
}

// ListUserFacts returns all facts for a user in insertion order.
func (s *Store) ListUserFacts(ctx context.Context, userID string) ([]UserFact, error) {
	var facts []UserFact
	err := s.db.SelectContext(ctx, &facts, `
		SELECT id, user_id, fact, category, created_at
		FROM user_facts WHERE user_id = ? ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "listing user facts")
	}
	return facts, nil
}
