package kana

import (
	"errors"
	"testing"
)

func mustTokenize(t *testing.T, s string) Word {
	t.Helper()
	w, err := Tokenize(s)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", s, err)
	}
	return w
}

func literals(w Word) []string {
	out := make([]string, 0, len(w.Units))
	for _, u := range w.Units {
		out = append(out, u.Hiragana)
	}
	return out
}

func TestTokenizeBasic(t *testing.T) {
	w := mustTokenize(t, "しりとり")
	want := []string{"し", "り", "と", "り"}
	got := literals(w)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unit %d: got %q, want %q", i, got[i], want[i])
		}
	}
	if w.Literal != "しりとり" {
		t.Fatalf("literal round-trip lost: %q", w.Literal)
	}
}

func TestTokenizeDigraphs(t *testing.T) {
	w := mustTokenize(t, "きょうと")
	got := literals(w)
	want := []string{"きょ", "う", "と"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unit %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenizeKatakanaSharesUnits(t *testing.T) {
	h := mustTokenize(t, "りす")
	k := mustTokenize(t, "リス")
	if len(h.Units) != len(k.Units) {
		t.Fatalf("unit count mismatch: %d vs %d", len(h.Units), len(k.Units))
	}
	for i := range h.Units {
		if !h.Units[i].Equal(k.Units[i]) {
			t.Fatalf("unit %d differs across scripts: %v vs %v", i, h.Units[i], k.Units[i])
		}
	}
}

func TestTokenizeModifiersYieldNoUnit(t *testing.T) {
	w := mustTokenize(t, "らっこ")
	got := literals(w)
	if len(got) != 2 || got[0] != "ら" || got[1] != "こ" {
		t.Fatalf("got %v, want [ら こ]", got)
	}

	w = mustTokenize(t, "ラーメン")
	got = literals(w)
	if len(got) != 3 || got[0] != "ら" || got[1] != "め" || got[2] != "ん" {
		t.Fatalf("got %v, want [ら め ん]", got)
	}
}

func TestTokenizeOnlyModifiers(t *testing.T) {
	w := mustTokenize(t, "っーッ")
	if len(w.Units) != 0 {
		t.Fatalf("expected zero units, got %v", literals(w))
	}
	if !w.Trailing().IsZero() {
		t.Fatalf("expected zero trailing unit")
	}
}

func TestTokenizeLeadingSmallYStopsScan(t *testing.T) {
	w, err := Tokenize("ゃあ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Units) != 0 {
		t.Fatalf("expected zero units, got %v", literals(w))
	}
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	cases := []struct {
		in   string
		char string
	}{
		{"りsu", "s"},
		{"漢字", "漢"},
		{"っゃ", "っゃ"}, // unregistered digraph pair
		{"きゃゃ", "ゃゃ"},
	}
	for _, tc := range cases {
		_, err := Tokenize(tc.in)
		var ice *InvalidCharError
		if !errors.As(err, &ice) {
			t.Fatalf("Tokenize(%q): expected InvalidCharError, got %v", tc.in, err)
		}
		if ice.Char != tc.char {
			t.Fatalf("Tokenize(%q): reported char %q, want %q", tc.in, ice.Char, tc.char)
		}
	}
}

func TestTrailingSkipsModifiers(t *testing.T) {
	w := mustTokenize(t, "ラー")
	if w.Trailing().Hiragana != "ら" {
		t.Fatalf("trailing = %v, want ら", w.Trailing())
	}
}

func TestStartsWordAcceptsEitherScript(t *testing.T) {
	u, ok := Lookup("か")
	if !ok {
		t.Fatalf("catalog missing か")
	}
	if !u.StartsWord("かめ") {
		t.Fatalf("hiragana prefix not matched")
	}
	if !u.StartsWord("カメラ") {
		t.Fatalf("katakana sibling prefix not matched")
	}
	if u.StartsWord("さかな") {
		t.Fatalf("unexpected prefix match")
	}
}

func TestCatalogSiblingsResolveToSameUnit(t *testing.T) {
	for _, u := range catalog {
		h, ok := Lookup(u.Hiragana)
		if !ok {
			t.Fatalf("hiragana form %q not resolvable", u.Hiragana)
		}
		k, ok := Lookup(u.Katakana)
		if !ok {
			t.Fatalf("katakana form %q not resolvable", u.Katakana)
		}
		if !h.Equal(k) {
			t.Fatalf("script forms of %q resolve to different units", u.Hiragana)
		}
	}
}
