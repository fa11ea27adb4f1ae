package romaji

// Hepburn-style kana mapping tables. These are static data; the transliterator
// is only as complete as these tables.

// singleKana maps one kana character to its romanization. Covers plain, voiced
// (dakuten) and semi-voiced (handakuten) hiragana and katakana, plus standalone
// small vowel/y-kana forms.
var singleKana = map[rune]string{
	// Hiragana vowels
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	// Hiragana k row
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	// Hiragana s row
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	// Hiragana t row
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	// Hiragana n row
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	// Hiragana h row
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	// Hiragana m row
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	// Hiragana y row
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	// Hiragana r row
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	// Hiragana w row
	'わ': "wa", 'を': "wo",
	'ん': "n",

	// Hiragana dakuten
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",

	// Hiragana handakuten
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",

	// Katakana vowels
	'ア': "a", 'イ': "i", 'ウ': "u", 'エ': "e", 'オ': "o",
	// Katakana k row
	'カ': "ka", 'キ': "ki", 'ク': "ku", 'ケ': "ke", 'コ': "ko",
	// Katakana s row
	'サ': "sa", 'シ': "shi", 'ス': "su", 'セ': "se", 'ソ': "so",
	// Katakana t row
	'タ': "ta", 'チ': "chi", 'ツ': "tsu", 'テ': "te", 'ト': "to",
	// Katakana n row
	'ナ': "na", 'ニ': "ni", 'ヌ': "nu", 'ネ': "ne", 'ノ': "no",
	// Katakana h row
	'ハ': "ha", 'ヒ': "hi", 'フ': "fu", 'ヘ': "he", 'ホ': "ho",
	// Katakana m row
	'マ': "ma", 'ミ': "mi", 'ム': "mu", 'メ': "me", 'モ': "mo",
	// Katakana y row
	'ヤ': "ya", 'ユ': "yu", 'ヨ': "yo",
	// Katakana r row
	'ラ': "ra", 'リ': "ri", 'ル': "ru", 'レ': "re", 'ロ': "ro",
	// Katakana w row
	'ワ': "wa", 'ヲ': "wo",
	'ン': "n",

	// Katakana dakuten
	'ガ': "ga", 'ギ': "gi", 'グ': "gu", 'ゲ': "ge", 'ゴ': "go",
	'ザ': "za", 'ジ': "ji", 'ズ': "zu", 'ゼ': "ze", 'ゾ': "zo",
	'ダ': "da", 'ヂ': "ji", 'ヅ': "zu", 'デ': "de", 'ド': "do",
	'バ': "ba", 'ビ': "bi", 'ブ': "bu", 'ベ': "be", 'ボ': "bo",

	// Katakana handakuten
	'パ': "pa", 'ピ': "pi", 'プ': "pu", 'ペ': "pe", 'ポ': "po",

	'ヴ': "vu",

	// Standalone small kana
	'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o",
	'ァ': "a", 'ィ': "i", 'ゥ': "u", 'ェ': "e", 'ォ': "o",
	'ゃ': "ya", 'ゅ': "yu", 'ょ': "yo",
	'ャ': "ya", 'ュ': "yu", 'ョ': "yo",
}

// digraphKana maps two-character kana sequences to their romanization:
// palatalized consonant + small-y combinations, extended katakana for loanword
// sounds, and a small set of fixed hiragana long-vowel pairs.
var digraphKana = map[string]string{
	// Hiragana palatalized
	"きゃ": "kya", "きゅ": "kyu", "きょ": "kyo",
	"しゃ": "sha", "しゅ": "shu", "しょ": "sho",
	"ちゃ": "cha", "ちゅ": "chu", "ちょ": "cho",
	"にゃ": "nya", "にゅ": "nyu", "にょ": "nyo",
	"ひゃ": "hya", "ひゅ": "hyu", "ひょ": "hyo",
	"みゃ": "mya", "みゅ": "myu", "みょ": "myo",
	"りゃ": "rya", "りゅ": "ryu", "りょ": "ryo",

	// Hiragana palatalized, dakuten
	"ぎゃ": "gya", "ぎゅ": "gyu", "ぎょ": "gyo",
	"じゃ": "ja", "じゅ": "ju", "じょ": "jo",
	"ぢゃ": "ja", "ぢゅ": "ju", "ぢょ": "jo",
	"びゃ": "bya", "びゅ": "byu", "びょ": "byo",

	// Hiragana palatalized, handakuten
	"ぴゃ": "pya", "ぴゅ": "pyu", "ぴょ": "pyo",

	// Katakana palatalized
	"キャ": "kya", "キュ": "kyu", "キョ": "kyo",
	"シャ": "sha", "シュ": "shu", "ショ": "sho",
	"チャ": "cha", "チュ": "chu", "チョ": "cho",
	"ニャ": "nya", "ニュ": "nyu", "ニョ": "nyo",
	"ヒャ": "hya", "ヒュ": "hyu", "ヒョ": "hyo",
	"ミャ": "mya", "ミュ": "myu", "ミョ": "myo",
	"リャ": "rya", "リュ": "ryu", "リョ": "ryo",

	// Katakana palatalized, dakuten
	"ギャ": "gya", "ギュ": "gyu", "ギョ": "gyo",
	"ジャ": "ja", "ジュ": "ju", "ジョ": "jo",
	"ヂャ": "ja", "ヂュ": "ju", "ヂョ": "jo",
	"ビャ": "bya", "ビュ": "byu", "ビョ": "byo",

	// Katakana palatalized, handakuten
	"ピャ": "pya", "ピュ": "pyu", "ピョ": "pyo",

	// Extended katakana for loanword sounds
	"ファ": "fa", "フィ": "fi", "フェ": "fe", "フォ": "fo",
	"ティ": "ti", "ディ": "di",
	"トゥ": "tu", "ドゥ": "du",
	"ウィ": "wi", "ウェ": "we", "ウォ": "wo",
	"ヴァ": "va", "ヴィ": "vi", "ヴェ": "ve", "ヴォ": "vo",
	"シェ": "she", "ジェ": "je", "チェ": "che",
	"ツァ": "tsa", "ツィ": "tsi", "ツェ": "tse", "ツォ": "tso",

	// Hiragana long-vowel pairs
	"おう": "ou", "おお": "oo",
	"えい": "ei", "ええ": "ee",
	"ああ": "aa", "いい": "ii", "うう": "uu",

	// は after ち is the topic-particle reading (こんにちは → konnichiwa).
	"ちは": "chiwa",
}
