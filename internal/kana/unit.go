package kana

import "strings"

// Unit is one phonetic syllable of kana text. Every unit carries both script
// forms; hiragana and katakana spellings of the same syllable compare equal.
type Unit struct {
	Hiragana string
	Katakana string
}

// catalog lists every recognized syllable with its parallel script forms.
// Digraphs (base kana + small ゃ/ゅ/ょ) and the foreign-sound combinations
// are full members; the modifier marks っ/ッ/ー are deliberately absent.
var catalog = []Unit{
	{"あ", "ア"}, {"い", "イ"}, {"う", "ウ"}, {"え", "エ"}, {"お", "オ"},
	{"か", "カ"}, {"き", "キ"}, {"く", "ク"}, {"け", "ケ"}, {"こ", "コ"},
	{"きゃ", "キャ"}, {"きゅ", "キュ"}, {"きょ", "キョ"},
	{"さ", "サ"}, {"し", "シ"}, {"す", "ス"}, {"せ", "セ"}, {"そ", "ソ"},
	{"しゃ", "シャ"}, {"しゅ", "シュ"}, {"しょ", "ショ"},
	{"た", "タ"}, {"ち", "チ"}, {"つ", "ツ"}, {"て", "テ"}, {"と", "ト"},
	{"ちゃ", "チャ"}, {"ちゅ", "チュ"}, {"ちょ", "チョ"},
	{"な", "ナ"}, {"に", "ニ"}, {"ぬ", "ヌ"}, {"ね", "ネ"}, {"の", "ノ"},
	{"にゃ", "ニャ"}, {"にゅ", "ニュ"}, {"にょ", "ニョ"},
	{"は", "ハ"}, {"ひ", "ヒ"}, {"ふ", "フ"}, {"へ", "ヘ"}, {"ほ", "ホ"},
	{"ひゃ", "ヒャ"}, {"ひゅ", "ヒュ"}, {"ひょ", "ヒョ"},
	{"ま", "マ"}, {"み", "ミ"}, {"む", "ム"}, {"め", "メ"}, {"も", "モ"},
	{"みゃ", "ミャ"}, {"みゅ", "ミュ"}, {"みょ", "ミョ"},
	{"や", "ヤ"}, {"ゆ", "ユ"}, {"よ", "ヨ"},
	{"ら", "ラ"}, {"り", "リ"}, {"る", "ル"}, {"れ", "レ"}, {"ろ", "ロ"},
	{"りゃ", "リャ"}, {"りゅ", "リュ"}, {"りょ", "リョ"},
	{"わ", "ワ"}, {"ゐ", "ヰ"}, {"ゑ", "ヱ"}, {"を", "ヲ"},
	{"ん", "ン"},
	{"が", "ガ"}, {"ぎ", "ギ"}, {"ぐ", "グ"}, {"げ", "ゲ"}, {"ご", "ゴ"},
	{"ぎゃ", "ギャ"}, {"ぎゅ", "ギュ"}, {"ぎょ", "ギョ"},
	{"ざ", "ザ"}, {"じ", "ジ"}, {"ず", "ズ"}, {"ぜ", "ゼ"}, {"ぞ", "ゾ"},
	{"じゃ", "ジャ"}, {"じゅ", "ジュ"}, {"じょ", "ジョ"},
	{"だ", "ダ"}, {"ぢ", "ヂ"}, {"づ", "ヅ"}, {"で", "デ"}, {"ど", "ド"},
	{"ぢゃ", "ヂャ"}, {"ぢゅ", "ヂュ"}, {"ぢょ", "ヂョ"},
	{"ば", "バ"}, {"び", "ビ"}, {"ぶ", "ブ"}, {"べ", "ベ"}, {"ぼ", "ボ"},
	{"びゃ", "ビャ"}, {"びゅ", "ビュ"}, {"びょ", "ビョ"},
	{"ぱ", "パ"}, {"ぴ", "ピ"}, {"ぷ", "プ"}, {"ぺ", "ペ"}, {"ぽ", "ポ"},
	{"ぴゃ", "ピャ"}, {"ぴゅ", "ピュ"}, {"ぴょ", "ピョ"},
	{"ゔぁ", "ヴァ"}, {"ゔぃ", "ヴィ"}, {"ゔ", "ヴ"}, {"ゔぇ", "ヴェ"}, {"ゔぉ", "ヴォ"},
	{"うぃ", "ウィ"}, {"うぇ", "ウェ"}, {"うぉ", "ウォ"},
	{"ふぁ", "ファ"}, {"ふぃ", "フィ"}, {"ふぇ", "フェ"}, {"ふぉ", "フォ"},
	{"てぃ", "ティ"}, {"とぅ", "トゥ"},
	{"でぃ", "ディ"}, {"どぅ", "ドゥ"},
	{"ちぇ", "チェ"}, {"しぇ", "シェ"}, {"じぇ", "ジェ"},
}

var byLiteral map[string]Unit

func init() {
	byLiteral = make(map[string]Unit, len(catalog)*2)
	for _, u := range catalog {
		byLiteral[u.Hiragana] = u
		byLiteral[u.Katakana] = u
	}
}

// N is the syllable that may not end a word.
var N = Unit{Hiragana: "ん", Katakana: "ン"}

// Lookup resolves a literal (either script) to its catalog unit.
func Lookup(literal string) (Unit, bool) {
	u, ok := byLiteral[literal]
	return u, ok
}

// Equal reports whether two units denote the same syllable.
func (u Unit) Equal(v Unit) bool { return u.Hiragana == v.Hiragana }

// IsZero reports whether the unit is the zero value (no syllable).
func (u Unit) IsZero() bool { return u.Hiragana == "" }

// StartsWord reports whether word begins with either script form of the unit.
func (u Unit) StartsWord(word string) bool {
	return strings.HasPrefix(word, u.Hiragana) || strings.HasPrefix(word, u.Katakana)
}

func (u Unit) String() string { return u.Hiragana }
