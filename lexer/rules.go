package lexer

import "github.com/metaphox/smallos-lang/ast"

// rule is one entry of the ordered token table. match returns the length of
// the longest prefix of src the rule accepts, or 0.
type rule struct {
	kind  ast.TokenType
	skip  bool // consumed without producing a token
	match func(src string) int
}

// rules is tried top to bottom at every position; the first match wins.
// Do not reorder: comments must beat BINOP on "//", symbols must beat HASH,
// ":=" must beat ":", BYTE must beat IDENT and NUMBER must beat BINOP.
var rules = []rule{
	{skip: true, match: matchComment},
	{kind: ast.SYMBOL, match: matchSymbol},

	{kind: ast.ASSIGN, match: exact(":=")},
	{kind: ast.PERIOD, match: exact(".")},
	{kind: ast.COLON, match: exact(":")},
	{kind: ast.SEMICOLON, match: exact(";")},
	{kind: ast.COMMA, match: exact(",")},
	{kind: ast.HASH, match: exact("#")},
	{kind: ast.LPAREN, match: exact("(")},
	{kind: ast.RPAREN, match: exact(")")},
	{kind: ast.LBRACKET, match: exact("[")},
	{kind: ast.RBRACKET, match: exact("]")},
	{kind: ast.LBRACE, match: exact("{")},
	{kind: ast.RBRACE, match: exact("}")},
	{kind: ast.ANSWER, match: exact("^")},
	{kind: ast.PIPE, match: exact("|")},
	{kind: ast.AT, match: exact("@")},

	{kind: ast.STRING, match: matchString},
	{kind: ast.BYTE, match: matchByte},
	{kind: ast.NUMBER, match: matchNumber},
	{kind: ast.IDENT, match: matchIdent},
	{kind: ast.BINOP, match: matchBinop},

	{skip: true, match: exact("\n")},
	{skip: true, match: matchBlank},
}

func exact(lit string) func(string) int {
	return func(src string) int {
		if len(src) >= len(lit) && src[:len(lit)] == lit {
			return len(lit)
		}
		return 0
	}
}

// matchComment accepts // up to, but excluding, the end of the line.
func matchComment(src string) int {
	if len(src) < 2 || src[0] != '/' || src[1] != '/' {
		return 0
	}
	n := 2
	for n < len(src) && src[n] != '\n' {
		n++
	}
	return n
}

// matchSymbol accepts #[a-zA-Z_$][a-zA-Z_$0-9]*.
func matchSymbol(src string) int {
	if len(src) < 2 || src[0] != '#' || !(isLetter(src[1]) || src[1] == '$') {
		return 0
	}
	n := 2
	for n < len(src) && (isLetter(src[n]) || isDigit(src[n]) || src[n] == '$') {
		n++
	}
	return n
}

// matchString accepts a double-quoted literal in which "" stands for a quote.
// An unterminated literal does not match at all.
func matchString(src string) int {
	if len(src) == 0 || src[0] != '"' {
		return 0
	}
	for n := 1; n < len(src); n++ {
		if src[n] != '"' {
			continue
		}
		if n+1 < len(src) && src[n+1] == '"' {
			n++
			continue
		}
		return n + 1
	}
	return 0
}

// matchByte accepts x followed by exactly two hex digits.
func matchByte(src string) int {
	if len(src) >= 3 && src[0] == 'x' && isHex(src[1]) && isHex(src[2]) {
		return 3
	}
	return 0
}

// matchNumber accepts [-+]?\d+(\.\d+)?.
func matchNumber(src string) int {
	n := 0
	if n < len(src) && (src[n] == '-' || src[n] == '+') {
		n++
	}
	start := n
	for n < len(src) && isDigit(src[n]) {
		n++
	}
	if n == start {
		return 0
	}
	if n+1 < len(src) && src[n] == '.' && isDigit(src[n+1]) {
		n++
		for n < len(src) && isDigit(src[n]) {
			n++
		}
	}
	return n
}

// matchIdent accepts [a-zA-Z_][a-zA-Z0-9_]*.
func matchIdent(src string) int {
	if len(src) == 0 || !isLetter(src[0]) {
		return 0
	}
	n := 1
	for n < len(src) && (isLetter(src[n]) || isDigit(src[n])) {
		n++
	}
	return n
}

// matchBinop accepts a run of operator characters.
func matchBinop(src string) int {
	n := 0
	for n < len(src) && isOperator(src[n]) {
		n++
	}
	return n
}

// matchBlank accepts spaces, tabs and carriage returns.
func matchBlank(src string) int {
	n := 0
	for n < len(src) && (src[n] == ' ' || src[n] == '\t' || src[n] == '\r') {
		n++
	}
	return n
}

// isLetter reports whether b may start an identifier.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOperator(b byte) bool {
	switch b {
	case '-', '+', '/', '*', '=', '<', '>', '!':
		return true
	}
	return false
}
