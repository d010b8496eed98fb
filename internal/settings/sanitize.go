package settings

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`[\r\n\t ]+`)
	octetRe      = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
	spacesRe     = regexp.MustCompile(` +`)
)

// SanitizeTextField cleans a single-line text value.
//
// Invalid UTF-8 yields "". A '<' with no '>' before the next '<' or the end
// of input is kept as "&lt;". Script and style elements are removed with
// their contents, remaining tags and comments are stripped, whitespace runs (including line breaks and tabs) collapse
// to one space, percent-encoded octets are removed, and the result is
// trimmed and NFC normalised. Arrays and objects yield "".
func SanitizeTextField(v any) any {
	var s string
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		s = val
	case bool:
		if val {
			s = "1"
		}
	case []any, map[string]any:
		return ""
	default:
		s = fmt.Sprint(val)
	}

	if !utf8.ValidString(s) {
		return ""
	}

	if strings.Contains(s, "<") {
		s = stripTags(escapeUnclosed(s))
	}

	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	found := false
	for octetRe.MatchString(s) {
		s = octetRe.ReplaceAllString(s, "")
		found = true
	}
	if found {
		s = strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
	}

	return norm.NFC.String(s)
}

// escapeUnclosed escapes every '<' that is not closed by a '>' before the
// next '<' or the end of s.
func escapeUnclosed(s string) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s = s[i:]

		end := strings.IndexAny(s[1:], "<>")
		switch {
		case end < 0:
			b.WriteString("&lt;")
			b.WriteString(s[1:])
			return b.String()
		case s[1+end] == '>':
			b.WriteString(s[:end+2])
			s = s[end+2:]
		default:
			b.WriteString("&lt;")
			b.WriteString(s[1 : end+1])
			s = s[end+1:]
		}
	}
}

// stripTags returns the text of s with tags and comments removed. Text
// inside script and style elements is dropped. Entities are kept as written.
func stripTags(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := ""
	for {
		switch z.Next() {
		case html.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				return ""
			}
			return b.String()
		case html.TextToken:
			if skip == "" {
				b.Write(z.Raw())
			}
		case html.StartTagToken:
			if name, _ := z.TagName(); skip == "" && isRawTextElement(string(name)) {
				skip = string(name)
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == skip {
				skip = ""
			}
		}
	}
}

func isRawTextElement(name string) bool {
	return name == "script" || name == "style"
}

// SanitizeBoolean coerces v to a bool.
//
// The strings "false" and "0" (any case) and "" are false; other strings
// are true. Numbers are true when non-zero. nil and empty collections are
// false.
func SanitizeBoolean(v any) any {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		switch strings.ToLower(val) {
		case "false", "0", "":
			return false
		}
		return true
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
