// Package extract pulls fenced code blocks out of free-form model responses.
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var patternCache = map[string]*regexp.Regexp{}

func fencePattern(lang string) *regexp.Regexp {
	if re, ok := patternCache[lang]; ok {
		return re
	}
	re := regexp.MustCompile("(?s)```" + regexp.QuoteMeta(lang) + "(.*?)```")
	patternCache[lang] = re
	return re
}

// FirstFenced returns the contents of the first fenced block tagged with
// lang, trimmed of surrounding whitespace. When no complete opening/closing
// pair exists the result is empty; an unmatched single marker does not
// count. Later blocks are ignored.
func FirstFenced(text, lang string) string {
	m := fencePattern(lang).FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// StripFenced removes every fenced block tagged with lang, leaving the prose
// explanation around the code.
func StripFenced(text, lang string) string {
	re := fencePattern(lang)
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		text = strings.Replace(text, fmt.Sprintf("```%s%s```", lang, m[1]), "", 1)
	}
	return strings.TrimSpace(text)
}
