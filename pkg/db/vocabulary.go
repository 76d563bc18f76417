package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// VocabularyEntry is one word a bot has learned. Entries are never deleted
// and frequency never drops below 1.
type VocabularyEntry struct {
	BotID        string    `db:"bot_id"`
	Word         string    `db:"word"`
	Frequency    int       `db:"frequency"`
	FirstContext string    `db:"first_context"`
	FirstSeenAt  time.Time `db:"first_seen_at"`
}

// TouchWord records one sighting of a word. A first sighting inserts the
// entry with frequency 1 and the message as its first context; repeats only
// increment frequency. Returns the frequency after the touch.
func (s *Store) TouchWord(ctx context.Context, botID, word, firstContext string, seenAt time.Time) (int, error) {
	var frequency int
	err := s.db.GetContext(ctx, &frequency, `
		INSERT INTO vocabulary_entries (bot_id, word, frequency, first_context, first_seen_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT (bot_id, word) DO UPDATE SET frequency = frequency + 1
		RETURNING frequency
	`, botID, word, firstContext, seenAt)
	if err != nil {
		return 0, errors.Wrapf(err, "touching vocabulary word %q", word)
	}
	return frequency, nil
}

// VocabularySize returns the distinct word count for a bot.
func (s *Store) VocabularySize(ctx context.Context, botID string) (int, error) {
	var size int
	err := s.db.GetContext(ctx, &size,
		`SELECT COUNT(*) FROM vocabulary_entries WHERE bot_id = ?`, botID)
	if err != nil {
		return 0, errors.Wrap(err, "counting vocabulary")
	}
	return size, nil
}

// GetVocabularyEntry fetches a single entry, or nil when the bot has not
// seen the word yet.
func (s *Store) GetVocabularyEntry(ctx context.Context, botID, word string) (*VocabularyEntry, error) {
	var entry VocabularyEntry
	err := s.db.GetContext(ctx, &entry, `
		SELECT bot_id, word, frequency, first_context, first_seen_at
		FROM vocabulary_entries WHERE bot_id = ? AND word = ?
	`, botID, word)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "getting vocabulary entry")
	}
	return &entry, nil
}

// ListVocabulary returns all entries for a bot ordered by first sighting.
func (s *Store) ListVocabulary(ctx context.Context, botID string) ([]VocabularyEntry, error) {
	var entries []VocabularyEntry
	err := s.db.SelectContext(ctx, &entries, `
		SELECT bot_id, word, frequency, first_context, first_seen_at
		FROM vocabulary_entries WHERE bot_id = ? ORDER BY first_seen_at, word
	`, botID)
	if err != nil {
		return nil, errors.Wrap(err, "listing vocabulary")
	}
	return entries, nil
}
