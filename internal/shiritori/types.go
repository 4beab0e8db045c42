package shiritori

import (
	"time"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/kana"
)

// Outcome classifies a validated turn. Exactly one outcome is produced per
// input; everything except OutcomeAccepted ends the session.
type Outcome string

const (
	OutcomeAccepted           Outcome = "ACCEPTED"
	OutcomeRepeated           Outcome = "REPEATED"
	OutcomeInvalidScript      Outcome = "INVALID_SCRIPT"
	OutcomeNoTrailingSyllable Outcome = "NO_TRAILING_SYLLABLE"
	OutcomeWrongStartSyllable Outcome = "WRONG_START_SYLLABLE"
	OutcomeEndsInN            Outcome = "ENDS_IN_N"
	OutcomeTooShort           Outcome = "TOO_SHORT"
	OutcomeNotACommonNoun     Outcome = "NOT_A_COMMON_NOUN"
	OutcomeStoreExhausted     Outcome = "STORE_EXHAUSTED"
	OutcomeStoreFailure       Outcome = "STORE_FAILURE"
)

// TurnReport is the structured result of one validated turn. The engine
// never renders user-facing text; the chat layer formats these fields.
type TurnReport struct {
	Outcome Outcome
	Word    string    // candidate after whitespace stripping
	BadChar string    // first unclassifiable fragment (InvalidScript)
	Want    kana.Unit // required start syllable (WrongStartSyllable)
	Reply   string    // counter-word from the store (Accepted)
	Score   int
}

// CheckResult is the outcome of the session-free word check.
type CheckResult struct {
	Passed   bool
	Reason   Outcome // populated when !Passed
	BadChar  string
	Trailing kana.Unit // resolved trailing unit pair when passed
}

// EndReason records why a session reached its terminal state.
type EndReason string

const (
	EndRuleViolation EndReason = "rule_violation"
	EndExhausted     EndReason = "exhausted"
	EndStoreFailure  EndReason = "store_failure"
	EndTimeout       EndReason = "timeout"
	EndCancelled     EndReason = "cancelled"
)

// GameResult is the persisted summary of a finished session.
type GameResult struct {
	SessionID string
	PlayerID  string
	Room      string
	Score     int
	Words     int // accepted words, seed excluded
	EndReason EndReason
	StartedAt time.Time
	EndedAt   time.Time
}
