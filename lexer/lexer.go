// Package lexer implements the smallos tokenizer.
//
// The lexer converts source text into a flat stream of [ast.Token] values.
// Call [Tokenize] to scan a whole source at once, or create a [Lexer] with [New]
// and call [Lexer.NextToken] repeatedly until a token with Type == [ast.EOF]
// comes back.
//
// Design notes:
//   - At every position the rules in [rules] are tried in order and the first
//     one that matches wins. The order is significant: it is what makes `x1A` a
//     BYTE rather than an identifier and `-5` a NUMBER rather than an operator
//     followed by a number.
//   - Comments (// to end of line), blanks and newlines produce no token.
//     Every newline consumed, including one inside a string literal, advances
//     the line counter.
//   - Input that no rule matches is reported as a [*LexicalError]; there is
//     no ILLEGAL token and no recovery.
//   - No global mutable state; every [Lexer] is independent.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/metaphox/smallos-lang/ast"
)

// LexicalError reports input that matches no token rule.
type LexicalError struct {
	Line    int    // 1-based line of the offending text
	Text    string // the offending character or literal
	Message string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error on line %d: %s %q", e.Line, e.Message, e.Text)
}

// Lexer holds all state required to tokenise a single source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input string // the full source text
	pos   int    // byte offset of the next unread character
	line  int    // current 1-based line number
}

// New creates a [Lexer] positioned at the start of input.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Tokenize scans the whole input and returns its tokens. The result always
// ends with exactly one EOF token.
func Tokenize(input string) ([]ast.Token, error) {
	l := New(input)
	var toks []ast.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == ast.EOF {
			return toks, nil
		}
	}
}

// NextToken returns the next token from the input.
//
// Skipped input (comments, blanks, newlines) is consumed before the token. When
// the input is exhausted NextToken returns an EOF token on every call.
func (l *Lexer) NextToken() (ast.Token, error) {
	for l.pos < len(l.input) {
		rest := l.input[l.pos:]
		r, n := l.match(rest)
		if n == 0 {
			ch, _ := utf8.DecodeRuneInString(rest)
			return ast.Token{}, &LexicalError{Line: l.line, Text: string(ch), Message: "unexpected character"}
		}

		text := rest[:n]
		line := l.line
		l.pos += n
		l.line += strings.Count(text, "\n")

		if r.skip {
			continue
		}
		return l.makeToken(r.kind, text, line)
	}

	return ast.Token{Type: ast.EOF, Literal: "", Value: "", Line: l.line}, nil
}

// match returns the first rule matching at the start of src and the length of
// its match. A zero length means no rule applies.
func (l *Lexer) match(src string) (rule, int) {
	for _, r := range rules {
		if n := r.match(src); n > 0 {
			return r, n
		}
	}
	return rule{}, 0
}

// makeToken decodes the literal payload of a scanned token.
func (l *Lexer) makeToken(tt ast.TokenType, text string, line int) (ast.Token, error) {
	if tt == ast.IDENT {
		return ast.Token{Type: ast.LookupIdent(text), Literal: text, Value: text, Line: line}, nil
	}
	v, err := ast.DecodeLiteral(tt, text)
	if err != nil {
		return ast.Token{}, &LexicalError{Line: line, Text: text, Message: err.Error()}
	}
	return ast.Token{Type: tt, Literal: text, Value: v, Line: line}, nil
}
