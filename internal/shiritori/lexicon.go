package shiritori

import (
	"context"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/kana"
)

// Lexicon is the lexical store port. The engine only needs membership checks
// and counter-word retrieval; the store's schema stays behind this boundary.
//
// NextReply returns "" when no candidate remains for the given start
// syllable. Errors from either method are infrastructure failures and
// surface as OutcomeStoreFailure, never as a rule violation.
type Lexicon interface {
	// IsCommonNoun reports whether literal is registered as a common noun.
	IsCommonNoun(ctx context.Context, literal string) (bool, error)

	// NextReply picks any unused common noun whose first syllable matches
	// start (either script form). Selection order is store-defined and may
	// be randomized.
	NextReply(ctx context.Context, start kana.Unit, excluding []string) (string, error)
}
