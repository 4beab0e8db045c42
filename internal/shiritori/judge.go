package shiritori

import (
	"context"
	"errors"
	"strings"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/kana"
)

const ideographicSpace = "　"

// stripSpaces removes ASCII and ideographic spaces from a candidate.
func stripSpaces(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, ideographicSpace, "")
}

// sessionScore derives the score from the used-word list, which always
// carries the seed word at index 0. The seed doesn't count.
func sessionScore(used []string) int {
	if len(used) == 0 {
		return 0
	}
	return (len(used) - 1) / 2
}

// judge runs the turn pipeline against the session's used-word list, whose
// last entry is the previous accepted word. The check order is a contract:
// the first failing rule decides the outcome.
func judge(ctx context.Context, lex Lexicon, used []string, candidate string) *TurnReport {
	rep := &TurnReport{Word: stripSpaces(candidate), Score: sessionScore(used)}

	for _, w := range used {
		if w == rep.Word {
			rep.Outcome = OutcomeRepeated
			return rep
		}
	}

	prev, err := kana.Tokenize(used[len(used)-1])
	if err != nil || len(prev.Units) == 0 {
		// Accepted words always tokenize; treat a corrupt history as a
		// store-side fault rather than blaming the player.
		rep.Outcome = OutcomeStoreFailure
		return rep
	}
	prevUnit := prev.Trailing()

	word, err := kana.Tokenize(rep.Word)
	if err != nil {
		var ice *kana.InvalidCharError
		if errors.As(err, &ice) {
			rep.BadChar = ice.Char
		}
		rep.Outcome = OutcomeInvalidScript
		return rep
	}
	if len(word.Units) == 0 {
		rep.Outcome = OutcomeNoTrailingSyllable
		return rep
	}
	if !word.Units[0].Equal(prevUnit) {
		rep.Outcome = OutcomeWrongStartSyllable
		rep.Want = prevUnit
		return rep
	}
	if word.Trailing().Equal(kana.N) {
		rep.Outcome = OutcomeEndsInN
		return rep
	}
	if len(word.Units) < 2 {
		rep.Outcome = OutcomeTooShort
		return rep
	}

	noun, err := lex.IsCommonNoun(ctx, rep.Word)
	if err != nil {
		rep.Outcome = OutcomeStoreFailure
		return rep
	}
	if !noun {
		rep.Outcome = OutcomeNotACommonNoun
		return rep
	}

	excluding := make([]string, 0, len(used)+1)
	excluding = append(excluding, used...)
	excluding = append(excluding, rep.Word)
	reply, err := lex.NextReply(ctx, word.Trailing(), excluding)
	if err != nil {
		rep.Outcome = OutcomeStoreFailure
		return rep
	}
	if reply == "" {
		rep.Outcome = OutcomeStoreExhausted
		return rep
	}

	rep.Outcome = OutcomeAccepted
	rep.Reply = reply
	rep.Score = sessionScore(used) + 1
	return rep
}

// CheckWord runs the session-free subset of the pipeline: script, trailing
// syllable, ん ending, length, and common-noun membership. No store reply is
// fetched and no session state is touched.
func CheckWord(ctx context.Context, lex Lexicon, literal string) (*CheckResult, error) {
	res := &CheckResult{}
	cleaned := stripSpaces(literal)

	word, err := kana.Tokenize(cleaned)
	if err != nil {
		var ice *kana.InvalidCharError
		if errors.As(err, &ice) {
			res.BadChar = ice.Char
		}
		res.Reason = OutcomeInvalidScript
		return res, nil
	}
	if len(word.Units) == 0 {
		res.Reason = OutcomeNoTrailingSyllable
		return res, nil
	}
	if word.Trailing().Equal(kana.N) {
		res.Reason = OutcomeEndsInN
		return res, nil
	}
	if len(word.Units) < 2 {
		res.Reason = OutcomeTooShort
		return res, nil
	}
	noun, err := lex.IsCommonNoun(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	if !noun {
		res.Reason = OutcomeNotACommonNoun
		return res, nil
	}
	res.Passed = true
	res.Trailing = word.Trailing()
	return res, nil
}
