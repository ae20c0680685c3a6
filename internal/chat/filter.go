// Package chat implements the grammar-tutor chat proxy: a Czech
// keyword on-topic filter in front of an OpenAI-compatible
// chat-completions upstream.
package chat

import (
	"strings"
	"unicode"
)

// OffTopicReply is the fixed Czech answer returned without contacting
// the upstream when a message fails the keyword check.
const OffTopicReply = "Promiňte, ale mohu odpovídat pouze na otázky týkající se anglické gramatiky. Zkuste se zeptat na něco z lekce."

// defaultKeywords is the Czech allow-list of grammar-related terms.
// Matching is on normalized text (lowercased, punctuation stripped),
// so inflected forms sharing these stems still match.
var defaultKeywords = []string{
	"gramatika", "gramatiku", "gramatice",
	"anglictina", "anglictinu", "anglicky", "angličtina", "angličtinu",
	"sloveso", "slovesa", "slovesu",
	"podstatne jmeno", "podstatné jméno", "podstatna jmena",
	"pridavne jmeno", "přídavné jméno", "pridavna jmena",
	"prislovce", "příslovce",
	"zajmeno", "zájmeno",
	"predlozka", "předložka",
	"cas", "čas", "casy", "časy",
	"minuly", "minulý", "pritomny", "přítomný", "budouci", "budoucí",
	"veta", "věta", "vetu", "větu",
	"slovicko", "slovíčko", "slovicka", "slovíčka", "slovo", "slova",
	"preklad", "překlad", "prelozit", "přeložit",
	"otazka", "otázka", "cviceni", "cvičení", "lekce",
	"spelling", "grammar", "verb", "noun", "adjective", "adverb", "tense",
}

// Filter judges whether a chat message stays on the grammar topic.
type Filter struct {
	keywords []string
}

// NewFilter creates a filter with the default Czech keyword allow-list
// plus any extra keywords.
func NewFilter(extra ...string) *Filter {
	keywords := make([]string, 0, len(defaultKeywords)+len(extra))
	for _, k := range defaultKeywords {
		keywords = append(keywords, normalize(k))
	}
	for _, k := range extra {
		if n := normalize(k); n != "" {
			keywords = append(keywords, n)
		}
	}
	return &Filter{keywords: keywords}
}

// OnTopic reports whether the message mentions any allow-listed term.
func (f *Filter) OnTopic(message string) bool {
	text := normalize(message)
	if text == "" {
		return false
	}
	for _, k := range f.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// normalize lowercases the text and replaces punctuation with spaces,
// collapsing runs of whitespace.
func normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
