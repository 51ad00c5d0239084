// lexer.go — whitespace-tracking tokenizer for quiz math input.
//
// The lexer deliberately stays dumb: it never fails, producing either a
// single-character delimiter token, a maximal run of non-delimiters, or the
// empty token at end of input. All disambiguation lives in the parser, which
// relies on two lexer facts: whether whitespace preceded the current token
// (SkippedSpace), and the ability to peel a known-length prefix off the
// current token (Consume) when a function name like "sin" is glued to its
// argument.
package term

import "strings"

// delimiters each lex as a token of length 1; whitespace separates tokens
// without producing one.
const delimiters = "^%#*$()[]{},.:;+-/_!<>=?|"

// Lexer scans a source string one token at a time.
type Lexer struct {
	src   string
	pos   int
	start int // byte offset where the current token begins
	token string
	space bool // whitespace was skipped before the current token
}

// NewLexer creates a lexer and loads the first token.
func NewLexer(src string) *Lexer {
	l := &Lexer{src: src}
	l.Next()
	return l
}

// Token returns the current token, or "" at end of input.
func (l *Lexer) Token() string { return l.token }

// SkippedSpace reports whether whitespace preceded the current token.
func (l *Lexer) SkippedSpace() bool { return l.space }

// AtEnd reports whether the input is exhausted.
func (l *Lexer) AtEnd() bool { return l.token == "" }

// TokenPos returns the byte offset of the current token in the source,
// used for error positions.
func (l *Lexer) TokenPos() int { return l.start }

func isSpaceByte(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDelimByte(ch byte) bool {
	return strings.IndexByte(delimiters, ch) >= 0 || isSpaceByte(ch)
}

func isDigitByte(ch byte) bool { return ch >= '0' && ch <= '9' }

// Next advances to the next token. A token is either a single delimiter
// character or a maximal run of non-delimiters, with one extra boundary rule:
// numerals and letters split ("2pi" is "2" then "pi"), except that "C"
// followed by digits stays joined so integration constants like "C1" survive
// as one token.
func (l *Lexer) Next() {
	l.space = false
	for l.pos < len(l.src) && isSpaceByte(l.src[l.pos]) {
		l.space = true
		l.pos++
	}
	l.start = l.pos
	if l.pos >= len(l.src) {
		l.token = ""
		return
	}
	ch := l.src[l.pos]
	switch {
	case isDelimByte(ch):
		l.pos++
	case isDigitByte(ch):
		for l.pos < len(l.src) && isDigitByte(l.src[l.pos]) {
			l.pos++
		}
	case ch == 'C' && l.pos+1 < len(l.src) && isDigitByte(l.src[l.pos+1]):
		l.pos++
		for l.pos < len(l.src) && isDigitByte(l.src[l.pos]) {
			l.pos++
		}
	default:
		for l.pos < len(l.src) && !isDelimByte(l.src[l.pos]) && !isDigitByte(l.src[l.pos]) {
			l.pos++
		}
	}
	l.token = l.src[l.start:l.pos]
}

// Consume peels n bytes off the front of the current token, keeping the rest
// as the current token with its whitespace flag cleared. Consuming the whole
// token advances to the next one. The parser uses this after matching a
// function-name or identifier prefix.
func (l *Lexer) Consume(n int) {
	if n >= len(l.token) {
		l.Next()
		return
	}
	l.start += n
	l.token = l.token[n:]
	l.space = false
}
