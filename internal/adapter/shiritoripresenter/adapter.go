package shiritoripresenter

import (
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/rank"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/shiritori"
	"github.com/park285/Shiritori-KakaoTalk-bot/pkg/shiritoridto"
)

func ToDTOTurnReport(rep *shiritori.TurnReport) *shiritoridto.TurnReport {
	if rep == nil {
		return nil
	}
	return &shiritoridto.TurnReport{
		Outcome: string(rep.Outcome),
		Word:    rep.Word,
		BadChar: rep.BadChar,
		Unit:    rep.Want.Hiragana,
		Sibling: rep.Want.Katakana,
		Reply:   rep.Reply,
		Score:   rep.Score,
	}
}

func ToDTOCheckResult(word string, res *shiritori.CheckResult) *shiritoridto.CheckResult {
	if res == nil {
		return nil
	}
	return &shiritoridto.CheckResult{
		Passed:  res.Passed,
		Reason:  string(res.Reason),
		Word:    word,
		BadChar: res.BadChar,
		Unit:    res.Trailing.Hiragana,
		Sibling: res.Trailing.Katakana,
	}
}

func ToDTORankEntries(list []rank.Entry) []shiritoridto.RankEntry {
	out := make([]shiritoridto.RankEntry, 0, len(list))
	for i, e := range list {
		out = append(out, shiritoridto.RankEntry{
			Position: i + 1,
			Player:   e.Player,
			Score:    e.Score,
		})
	}
	return out
}
