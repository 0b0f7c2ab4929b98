package lineevent

import (
	"fmt"
	"strings"
	"unicode"
)

const echoTemplate = "受け取り：「%s」\n（建前）OK、まずは小さく試そう。"

// Reply is an outbound text message sent against a reply token.
type Reply struct {
	Text string
}

// EchoReply renders the acknowledgment for a received text. Surrounding whitespace
// of the input is dropped, the rest is embedded verbatim.
func EchoReply(text string) Reply {
	return Reply{Text: fmt.Sprintf(echoTemplate, strings.TrimFunc(text, isTrimmable))}
}

// isTrimmable reports whether r is an ECMAScript WhiteSpace or LineTerminator code point.
// Unlike unicode.IsSpace it includes U+FEFF and excludes U+0085.
func isTrimmable(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
