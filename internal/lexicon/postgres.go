package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lib/pq"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/kana"
)

const commonNounTag = "noun (common) (futsuumeishi)"

// Reply selection starts from a random offset into the entry id space so
// repeated games don't always see the same counter-words.
const (
	replyOffsetBase = 1_000_000
	replyOffsetSpan = 500_001
)

// Store queries a JMdict-derived Postgres wordbase. It satisfies the
// engine's lexical store port.
type Store struct {
	db *sql.DB
}

func NewStore(databaseURL string) (*Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// IsCommonNoun reports whether the literal has a reading tagged as a common
// noun. Fails closed: malformed input can never widen the query because the
// literal travels as a bind parameter.
func (s *Store) IsCommonNoun(ctx context.Context, literal string) (bool, error) {
	const q = `
		SELECT EXISTS(
			SELECT 1
			FROM "JMdict_ReadingSense" AS rs
			INNER JOIN "JMdict_Sense" AS sn
				ON rs.entry_id = sn.entry_id
				AND rs.sense_index = sn.index
			WHERE rs.reading_literal = $1
				AND $2 = ANY(sn.parts_of_speech)
		)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, q, literal, commonNounTag).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// NextReply picks an unused common noun starting with either script form of
// the given syllable and not ending in ん/ン. Returns "" when the space is
// exhausted.
func (s *Store) NextReply(ctx context.Context, start kana.Unit, excluding []string) (string, error) {
	const q = `
		SELECT rs.reading_literal
		FROM "JMdict_ReadingSense" AS rs
		INNER JOIN "JMdict_Sense" AS sn
			ON rs.entry_id = sn.entry_id
			AND rs.sense_index = sn.index
		WHERE rs.entry_id > $1
			AND rs.reading_literal ~ $2
			AND NOT rs.reading_literal = ANY($3)
			AND $4 = ANY(sn.parts_of_speech)
		LIMIT 1`

	offset := replyOffsetBase + rand.Intn(replyOffsetSpan)
	var reply string
	err := s.db.QueryRowContext(ctx, q,
		offset, startPattern(start), pq.Array(excluding), commonNounTag,
	).Scan(&reply)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return reply, nil
}

// startPattern builds the reading regex for a start syllable. Digraph units
// must match as a whole; single-kana units must not be the base of a small-y
// digraph in the reading.
func startPattern(u kana.Unit) string {
	if utf8.RuneCountInString(u.Hiragana) > 1 {
		return fmt.Sprintf("^(?:(?:%s)|(?:%s)).*[^んン]$", u.Hiragana, u.Katakana)
	}
	return fmt.Sprintf("^[%s%s][^ゃゅょャュョ].*[^んン]$", u.Hiragana, u.Katakana)
}
