package shiritoripresenter

import (
	"strings"
	"testing"
	"time"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/msgcat"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/rank"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/shiritori"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/util"
	"github.com/park285/Shiritori-KakaoTalk-bot/pkg/shiritoridto"
)

var _ shiritori.Reporter = (*Presenter)(nil)

func newTestFormatter(t *testing.T) *Formatter {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	return NewFormatter(cat)
}

func TestTurnAcceptedRendersReply(t *testing.T) {
	f := newTestFormatter(t)
	got := f.Turn(&shiritoridto.TurnReport{Outcome: "ACCEPTED", Word: "りす", Reply: "すいか", Score: 1})
	if got != "すいか" {
		t.Fatalf("accepted turn = %q, want すいか", got)
	}
}

func TestTurnWrongStart(t *testing.T) {
	f := newTestFormatter(t)
	got := f.Turn(&shiritoridto.TurnReport{
		Outcome: "WRONG_START_SYLLABLE", Word: "たいこ", Unit: "り", Sibling: "リ", Score: 0,
	})
	if got != "たいこ does not start with り or リ! Score: 0" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestTurnInvalidScript(t *testing.T) {
	f := newTestFormatter(t)
	got := f.Turn(&shiritoridto.TurnReport{Outcome: "INVALID_SCRIPT", Word: "り漢", BadChar: "漢", Score: 2})
	if !strings.Contains(got, "漢") || !strings.Contains(got, "Score: 2") {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestTimeoutVariants(t *testing.T) {
	f := newTestFormatter(t)
	if got := f.Timeout(0); !strings.Contains(got, "too long") {
		t.Fatalf("zero-score timeout = %q", got)
	}
	if got := f.Timeout(7); !strings.Contains(got, "7 point(s)") {
		t.Fatalf("scored timeout = %q", got)
	}
	high := f.Timeout(12)
	if !strings.Contains(high, "12 point(s)") || !strings.Contains(high, "what a run") {
		t.Fatalf("high-score timeout = %q", high)
	}
}

func TestMyBestLine(t *testing.T) {
	f := newTestFormatter(t)
	if got := f.MyBest(9); got != "Your best: 9 point(s)" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestCheckReportPass(t *testing.T) {
	f := newTestFormatter(t)
	got := f.CheckReport(&shiritoridto.CheckResult{Passed: true, Word: "りす", Unit: "す", Sibling: "ス"})
	if got != "Looks good! The last syllable was す or ス." {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestCheckReportFailure(t *testing.T) {
	f := newTestFormatter(t)
	got := f.CheckReport(&shiritoridto.CheckResult{Passed: false, Reason: "ENDS_IN_N", Word: "みかん"})
	if !strings.Contains(got, "みかん ends with") {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestRank(t *testing.T) {
	f := newTestFormatter(t)
	if got := f.Rank(nil); !strings.Contains(got, "Nobody") {
		t.Fatalf("empty rank = %q", got)
	}
	entries := ToDTORankEntries([]rank.Entry{{Player: "u1", Score: 12}, {Player: "u2", Score: 3}})
	got := f.Rank(entries)
	if !strings.Contains(got, "1. u1 - 12 point(s)") || !strings.Contains(got, "2. u2 - 3 point(s)") {
		t.Fatalf("rank render = %q", got)
	}
}

func TestOpeningCarriesLimitAndPadding(t *testing.T) {
	f := newTestFormatter(t)
	got := f.Opening(20*time.Second, 5*time.Second)
	if !strings.Contains(got, "20 seconds") {
		t.Fatalf("opening missing limit: %q", got)
	}
	if !strings.Contains(got, util.KakaoZeroWidthSpace) {
		t.Fatalf("opening missing see-more padding")
	}
}

func TestAdapterMapsEngineTypes(t *testing.T) {
	rep := ToDTOTurnReport(&shiritori.TurnReport{
		Outcome: shiritori.OutcomeWrongStartSyllable,
		Word:    "たいこ",
		Score:   3,
	})
	if rep.Outcome != "WRONG_START_SYLLABLE" || rep.Word != "たいこ" || rep.Score != 3 {
		t.Fatalf("unexpected turn mapping: %+v", rep)
	}

	res := ToDTOCheckResult("みかん", &shiritori.CheckResult{Passed: false, Reason: shiritori.OutcomeEndsInN})
	if res.Passed || res.Reason != "ENDS_IN_N" || res.Word != "みかん" {
		t.Fatalf("unexpected check mapping: %+v", res)
	}
}
