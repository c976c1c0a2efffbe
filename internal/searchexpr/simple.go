package searchexpr

import "strings"

// DefaultSimpleSearch is the template applied to bare index patterns.
const DefaultSimpleSearch = "~f %s | ~s %s"

// simpleAliases maps shorthand words to their expression form.
var simpleAliases = map[string]string{
	"all":    "~A",
	"^":      "~A",
	".":      "~A",
	"del":    "~D",
	"flag":   "~F",
	"new":    "~N",
	"old":    "~O",
	"repl":   "~Q",
	"read":   "~R",
	"tag":    "~T",
	"unread": "~U",
}

// CheckSimple rewrites a bare pattern into a full search expression.
// Input that already contains expression syntax is returned unchanged;
// shorthand words map to their flag operators; anything else is quoted
// and substituted into each %s of the simple template.
func CheckSimple(pattern, simple string) string {
	if !isSimple(pattern) {
		return pattern
	}

	if alias, ok := simpleAliases[pattern]; ok {
		return alias
	}

	if simple == "" {
		simple = DefaultSimpleSearch
	}
	return strings.ReplaceAll(simple, "%s", quoteSimple(pattern))
}

// isSimple reports whether the pattern is plain text: no unescaped
// expression syntax anywhere.
func isSimple(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++ // skip escaped character
		case '~', '=', '%':
			return false
		}
	}
	return true
}

// quoteSimple wraps text in double quotes, escaping embedded quotes and
// backslashes so the expression lexer recovers the original text.
func quoteSimple(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
