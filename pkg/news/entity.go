package news

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// maxEntityLen bounds how far past '&' a reference may extend.
const maxEntityLen = 32

// DecodeEntities decodes HTML character references (&amp;, &#39;, &#x27;).
// If any '&' does not start a complete, known reference the input is returned
// unchanged, so content is never lost to an entity the decoder cannot read.
func DecodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	rest := text
	for {
		i := strings.IndexByte(rest, '&')
		if i < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:i])
		rest = rest[i:]

		n := entityLen(rest)
		if n == 0 {
			return text
		}
		decoded, ok := decodeEntity(rest[:n])
		if !ok {
			return text
		}
		b.WriteString(decoded)
		rest = rest[n:]
	}
}

// entityLen returns the length of the reference at the start of s, including
// the leading '&' and trailing ';', or 0 when s does not start with one.
func entityLen(s string) int {
	if len(s) < 3 || s[0] != '&' {
		return 0
	}

	i := 1
	digit := isAlnum
	if s[i] == '#' {
		i++
		digit = isDigit
		if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
			i++
			digit = isHex
		}
	}

	start := i
	for i < len(s) && i < maxEntityLen && digit(s[i]) {
		i++
	}
	if i == start || i >= len(s) || s[i] != ';' {
		return 0
	}
	return i + 1
}

// decodeEntity decodes a single complete reference. html.UnescapeString
// leaves unknown names untouched and may decode only a prefix of a longer
// name (&ampfoo; -> &foo;); both cases count as failures. Numeric references
// to NUL, surrogates or values past U+10FFFF are rejected rather than replaced
// with U+FFFD.
func decodeEntity(ref string) (string, bool) {
	if strings.HasPrefix(ref, "&#") {
		if !validCodePoint(ref[2 : len(ref)-1]) {
			return "", false
		}
	}
	decoded := html.UnescapeString(ref)
	if decoded == ref {
		return "", false
	}
	if decoded != ";" && strings.HasSuffix(decoded, ";") {
		return "", false
	}
	return decoded, true
}

// validCodePoint reports whether the digits of a numeric reference ("123" or
// "x1F600") name a scalar value other than NUL.
func validCodePoint(digits string) bool {
	base := 10
	if digits != "" && (digits[0] == 'x' || digits[0] == 'X') {
		base = 16
		digits = digits[1:]
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return false
	}
	switch {
	case n == 0, n > utf8.MaxRune:
		return false
	case 0xD800 <= n && n <= 0xDFFF:
		return false
	}
	return true
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isAlnum(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
