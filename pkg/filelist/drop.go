package filelist

import (
	"net/url"
	"strings"
	"unicode"
)

// SplitDropped splits the text a drag-and-drop source delivers for one or
// more files. Words are separated by whitespace and may be grouped with
// {braces}, "double quotes" or 'single quotes'; a backslash escapes the next
// character outside single quotes. file:// URIs are converted to paths.
func SplitDropped(data string) []string {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		depth   int  // Brace nesting
		quote   rune // Active quote character, 0 if none
		escaped bool
	)

	flush := func() {
		if inWord {
			words = append(words, fromURI(current.String()))
		}
		current.Reset()
		inWord = false
	}

	for _, r := range data {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case depth > 0:
			switch r {
			case '{':
				depth++
				current.WriteRune(r)
			case '}':
				depth--
				if depth > 0 {
					current.WriteRune(r)
				}
			default:
				current.WriteRune(r)
			}
		case quote != 0:
			switch {
			case r == quote:
				quote = 0
			case r == '\\' && quote == '"':
				escaped = true
			default:
				current.WriteRune(r)
			}
		case r == '\\':
			inWord = true
			escaped = true
		case r == '{' && !inWord:
			inWord = true
			depth = 1
		case r == '"' || r == '\'':
			inWord = true
			quote = r
		case unicode.IsSpace(r):
			flush()
		default:
			inWord = true
			current.WriteRune(r)
		}
	}
	flush()

	return words
}

// fromURI turns file:// URIs into plain paths and leaves everything else alone.
func fromURI(s string) string {
	if !strings.HasPrefix(s, "file://") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.Path == "" {
		return s
	}
	return u.Path
}
