package shiritoripresenter

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/msgcat"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/obslog"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/util"
	"github.com/park285/Shiritori-KakaoTalk-bot/pkg/shiritoridto"
)

const (
	openingHeader = "A game of Shiritori is starting!"
	helpHeader    = "Play Shiritori with me!"
)

// Formatter renders shiritori DTOs into Kakao-friendly text blocks. All
// wording comes from the message catalog; each renderer carries a plain
// fallback so a broken override file never silences the bot.
type Formatter struct {
	cat *msgcat.Catalog
}

func NewFormatter(cat *msgcat.Catalog) *Formatter {
	return &Formatter{cat: cat}
}

func (f *Formatter) render(key string, data any, fallback string) string {
	if f == nil || f.cat == nil {
		return fallback
	}
	out, err := f.cat.Render(key, data)
	if err != nil {
		obslog.L().Warn("msgcat_render_error",
			zap.String("key", key),
			zap.Error(err),
		)
		return fallback
	}
	return out
}

func (f *Formatter) Opening(limit, delay time.Duration) string {
	text := f.render("shiritori.opening", map[string]any{
		"Limit": int(limit.Seconds()),
		"Delay": int(delay.Seconds()),
	}, fmt.Sprintf("%s Turn limit: %d seconds.", openingHeader, int(limit.Seconds())))
	return util.ApplySeeMoreWithHeader(text, openingHeader, "Shiritori", "")
}

func (f *Formatter) Seed(seed string) string {
	return f.render("shiritori.seed", map[string]any{"Seed": seed},
		fmt.Sprintf("Starting off, %s!", seed))
}

func (f *Formatter) Turn(rep *shiritoridto.TurnReport) string {
	if rep == nil {
		return ""
	}
	data := map[string]any{
		"Word":    rep.Word,
		"Char":    rep.BadChar,
		"Unit":    rep.Unit,
		"Sibling": rep.Sibling,
		"Reply":   rep.Reply,
		"Score":   rep.Score,
	}
	key, fallback := turnKey(rep)
	return f.render(key, data, fallback)
}

func turnKey(rep *shiritoridto.TurnReport) (key, fallback string) {
	switch rep.Outcome {
	case "ACCEPTED":
		return "shiritori.turn.accepted", rep.Reply
	case "REPEATED":
		return "shiritori.turn.repeated",
			fmt.Sprintf("You repeated %s! Score: %d", rep.Word, rep.Score)
	case "INVALID_SCRIPT":
		return "shiritori.turn.invalid_script",
			fmt.Sprintf("Your word must be in hiragana or katakana. What's %s? Score: %d", rep.BadChar, rep.Score)
	case "NO_TRAILING_SYLLABLE":
		return "shiritori.turn.no_trailing",
			fmt.Sprintf("Sokuon, sokuon, dash dash dash? Score: %d", rep.Score)
	case "WRONG_START_SYLLABLE":
		return "shiritori.turn.wrong_start",
			fmt.Sprintf("%s does not start with %s or %s! Score: %d", rep.Word, rep.Unit, rep.Sibling, rep.Score)
	case "ENDS_IN_N":
		return "shiritori.turn.ends_in_n",
			fmt.Sprintf("%s ends with ん or ン! Score: %d", rep.Word, rep.Score)
	case "TOO_SHORT":
		return "shiritori.turn.too_short",
			fmt.Sprintf("Your word needs at least two syllables/kana. Score: %d", rep.Score)
	case "NOT_A_COMMON_NOUN":
		return "shiritori.turn.not_noun",
			fmt.Sprintf("Seems like %s is not a common noun used in the Japanese language. Score: %d", rep.Word, rep.Score)
	case "STORE_EXHAUSTED":
		return "shiritori.turn.exhausted",
			fmt.Sprintf("I'm lost for words... Score: %d", rep.Score)
	default:
		return "shiritori.turn.store_failure",
			fmt.Sprintf("My wordbase stopped answering, so let's call it a game. Score: %d", rep.Score)
	}
}

func (f *Formatter) Timeout(score int) string {
	switch {
	case score == 0:
		return f.render("shiritori.timeout.zero", nil,
			"You took too long to answer. Try increasing the time limit!")
	case score >= 10:
		return f.render("shiritori.timeout.high", map[string]any{"Score": score},
			fmt.Sprintf("Time's up, but what a run! %d point(s), well played.", score))
	}
	return f.render("shiritori.timeout.scored", map[string]any{"Score": score},
		fmt.Sprintf("Tick tock, time's up! You scored %d point(s) this time.", score))
}

func (f *Formatter) CheckReport(res *shiritoridto.CheckResult) string {
	if res == nil {
		return ""
	}
	data := map[string]any{
		"Word":    res.Word,
		"Char":    res.BadChar,
		"Unit":    res.Unit,
		"Sibling": res.Sibling,
	}
	if res.Passed {
		return f.render("shiritori.check.pass", data,
			fmt.Sprintf("Looks good! The last syllable was %s or %s.", res.Unit, res.Sibling))
	}
	switch res.Reason {
	case "INVALID_SCRIPT":
		return f.render("shiritori.check.invalid_script", data,
			fmt.Sprintf("Your word must be in hiragana or katakana. What's %s?", res.BadChar))
	case "NO_TRAILING_SYLLABLE":
		return f.render("shiritori.check.no_trailing", data, "Sokuon, sokuon, dash dash dash?")
	case "ENDS_IN_N":
		return f.render("shiritori.check.ends_in_n", data,
			fmt.Sprintf("%s ends with ん or ン!", res.Word))
	case "TOO_SHORT":
		return f.render("shiritori.check.too_short", data,
			"Your word needs at least two syllables/kana.")
	default:
		return f.render("shiritori.check.not_noun", data,
			fmt.Sprintf("Seems like %s is not a common noun used in the Japanese language.", res.Word))
	}
}

func (f *Formatter) CheckUsage() string {
	return f.render("shiritori.check.usage", nil, "Give me one word to check, like: check りんご")
}

func (f *Formatter) Rank(entries []shiritoridto.RankEntry) string {
	if len(entries) == 0 {
		return f.render("shiritori.rank.empty", nil, "Nobody is on the board yet. Start a game!")
	}
	var sb strings.Builder
	sb.WriteString(f.render("shiritori.rank.header", nil, "Shiritori best scores"))
	for _, e := range entries {
		sb.WriteString("\n")
		sb.WriteString(f.render("shiritori.rank.entry", map[string]any{
			"Pos": e.Position, "Player": e.Player, "Score": e.Score,
		}, fmt.Sprintf("%d. %s - %d point(s)", e.Position, e.Player, e.Score)))
	}
	return sb.String()
}

// MyBest is the caller's personal line appended under the leaderboard.
func (f *Formatter) MyBest(score int) string {
	return f.render("shiritori.rank.mine", map[string]any{"Score": score},
		fmt.Sprintf("Your best: %d point(s)", score))
}

func (f *Formatter) Help(defaultLimit time.Duration) string {
	text := f.render("shiritori.help", map[string]any{
		"Default": int(defaultLimit.Seconds()),
	}, helpHeader)
	return util.ApplySeeMoreWithHeader(text, helpHeader, "Shiritori", "")
}

func (f *Formatter) TimeTooShort() string {
	return f.render("shiritori.time_too_short", nil,
		"I don't support speedtyping! Try five seconds and above.")
}

func (f *Formatter) TimeTooLong(max time.Duration) string {
	return f.render("shiritori.time_too_long", map[string]any{"Max": int(max.Seconds())},
		fmt.Sprintf("I can be benevolent, but isn't over %d seconds too much?", int(max.Seconds())))
}

func (f *Formatter) Stopped() string {
	return f.render("shiritori.stopped", nil, "Okay, stopping here. Thanks for playing!")
}

func (f *Formatter) NoGame() string {
	return f.render("shiritori.no_game", nil, "You don't have a game running right now.")
}
