package sepa

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// CheckStringLength reports whether text, once decoded with UnicodeDecode,
// is at most limit characters long. Empty text always passes.
func CheckStringLength(text string, limit int) bool {
	return utf8.RuneCountInString(UnicodeDecode(text)) <= limit
}

// RemoveSpaces strips every whitespace character. Only meant for identifiers
// such as BIC and IBAN where grouping spaces are cosmetic.
func RemoveSpaces(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// UnicodeDecode turns arbitrary input into the canonical text stored on a
// transaction: bytes that are not part of a valid UTF-8 sequence are read
// as Windows-1252 one at a time, literal \uXXXX escapes are resolved, the result is NFC-normalized and
// characters that cannot appear in an XML text node are dropped.
func UnicodeDecode(text string) string {
	if !utf8.ValidString(text) {
		text = decodeInvalidBytes(text)
	}
	if strings.Contains(text, `\u`) {
		text = decodeEscapes(text)
	}
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, norm.NFC.String(text))
}

// decodeInvalidBytes keeps every valid UTF-8 sequence and maps each stray
// byte through Windows-1252.
func decodeInvalidBytes(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(charmap.Windows1252.DecodeByte(text[i]))
		} else {
			b.WriteString(text[i : i+size])
		}
		i += size
	}
	return b.String()
}

// decodeEscapes resolves \uXXXX sequences, joining UTF-16 surrogate pairs.
// Unpaired surrogates are dropped; malformed escapes are kept verbatim.
func decodeEscapes(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		r, ok := readEscape(text, i)
		if !ok {
			b.WriteByte(text[i])
			i++
			continue
		}
		i += 6

		if utf16.IsSurrogate(r) {
			low, ok := readEscape(text, i)
			if !ok {
				continue
			}
			pair := utf16.DecodeRune(r, low)
			if pair == unicode.ReplacementChar {
				continue
			}
			i += 6
			r = pair
		}
		b.WriteRune(r)
	}
	return b.String()
}

func readEscape(text string, i int) (rune, bool) {
	if i+6 > len(text) || text[i] != '\\' || text[i+1] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(text[i+2:i+6], 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// isXMLChar implements the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
