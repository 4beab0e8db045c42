package kana

import "fmt"

// smallY are the small y-vowel modifiers that form digraphs with the
// preceding base kana. They never stand alone as a syllable.
var smallY = map[rune]bool{
	'ゃ': true, 'ゅ': true, 'ょ': true,
	'ャ': true, 'ュ': true, 'ョ': true,
}

// modifiers attach to the preceding syllable and contribute no unit of
// their own: sokuon (gemination) and the long-vowel mark.
var modifiers = map[rune]bool{
	'っ': true, 'ッ': true, 'ー': true,
}

// InvalidCharError reports the first text fragment that cannot be
// classified as a syllable or modifier.
type InvalidCharError struct {
	Char string
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("not a kana syllable: %q", e.Char)
}

// Word is an immutable tokenized kana string.
type Word struct {
	Literal string
	Units   []Unit
}

// Trailing returns the last syllable of the word, skipping any trailing
// modifier marks. Zero Unit when the word tokenized to nothing.
func (w Word) Trailing() Unit {
	if len(w.Units) == 0 {
		return Unit{}
	}
	return w.Units[len(w.Units)-1]
}

// Tokenize segments a kana literal into its ordered syllables. The caller is
// expected to have stripped whitespace already.
//
// Scan rules, left to right:
//   - base kana followed by a small y-vowel is consumed as one digraph; an
//     unregistered pair fails as an invalid character
//   - a small y-vowel at the very first position means the word has no valid
//     first syllable: the scan stops with zero units
//   - っ/ッ/ー attach to the previous syllable and yield no unit
//   - anything else must match a catalog syllable on its own
func Tokenize(literal string) (Word, error) {
	rs := []rune(literal)
	w := Word{Literal: literal}
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if smallY[r] {
			if i == 0 {
				return w, nil
			}
			// Reachable only after a digraph consumed the previous rune;
			// the resulting pair is never a registered syllable.
			return Word{Literal: literal}, &InvalidCharError{Char: string(rs[i-1 : i+1])}
		}
		if i+1 < len(rs) && smallY[rs[i+1]] {
			pair := string(rs[i : i+2])
			u, ok := Lookup(pair)
			if !ok {
				return Word{Literal: literal}, &InvalidCharError{Char: pair}
			}
			w.Units = append(w.Units, u)
			i++
			continue
		}
		if modifiers[r] {
			continue
		}
		u, ok := Lookup(string(r))
		if !ok {
			return Word{Literal: literal}, &InvalidCharError{Char: string(r)}
		}
		w.Units = append(w.Units, u)
	}
	return w, nil
}
