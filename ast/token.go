// Package ast defines the token model and the abstract syntax tree produced by
// the smallos lexer and parser.
//
// Tokens are the smallest meaningful units of a source file. Every token carries
// its kind, the exact text it was scanned from, a decoded payload for literals and
// the 1-based line it starts on. Lines are the only position information kept.
package ast

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// ILLEGAL is never produced by a successful scan; the lexer reports
	// unrecognised input as a LexicalError instead. It exists so the zero value
	// of TokenType is not a real kind.
	ILLEGAL TokenType = iota
	// EOF terminates every token sequence exactly once.
	EOF

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: [a-zA-Z_][a-zA-Z0-9_]*
	// Identifiers that spell a reserved word are re-classified by LookupIdent.
	IDENT
	// NUMBER is an optionally signed decimal literal: -5, 42, 3.25
	NUMBER
	// STRING is a double-quoted literal; a doubled quote ("") stands for one quote.
	STRING
	// SYMBOL is a hash-prefixed name: #foo
	SYMBOL
	// BYTE is an x followed by exactly two hex digits: x1A
	BYTE
	// BINOP is any run of the operator characters - + / * = < > !
	BINOP

	// ── Punctuation ────────────────────────────────────────────────────────────

	ASSIGN    // :=
	PERIOD    // .
	COLON     // :
	SEMICOLON // ;
	COMMA     // ,
	HASH      // #
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }
	ANSWER    // ^
	PIPE      // |
	AT        // @

	// ── Reserved words ─────────────────────────────────────────────────────────

	CLASS
	TRAIT
	EXTENDING
	IMPLEMENTING
	IS
	AS
	STATIC
	VAR
	DEF
	END
	REQUIRE
	TRUE
	FALSE
	NIL
)

var tokenNames = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "ID",
	NUMBER: "NUMBER",
	STRING: "STRING",
	SYMBOL: "SYMBOL",
	BYTE:   "BYTE",
	BINOP:  "BINOP",

	ASSIGN:    "ASSIGN",
	PERIOD:    "PERIOD",
	COLON:     "COLON",
	SEMICOLON: "SEMICOLON",
	COMMA:     "COMMA",
	HASH:      "HASH",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACKET:  "LBRACKET",
	RBRACKET:  "RBRACKET",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	ANSWER:    "ANSWER",
	PIPE:      "PIPE",
	AT:        "AT",

	CLASS:        "CLASS",
	TRAIT:        "TRAIT",
	EXTENDING:    "EXTENDING",
	IMPLEMENTING: "IMPLEMENTING",
	IS:           "IS",
	AS:           "AS",
	STATIC:       "STATIC",
	VAR:          "VAR",
	DEF:          "DEF",
	END:          "END",
	REQUIRE:      "REQUIRE",
	TRUE:         "TRUE",
	FALSE:        "FALSE",
	NIL:          "NIL",
}

// String returns the upper-case kind name used in diagnostics, e.g. "PERIOD".
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return "UNKNOWN"
}

// keywords maps the literal text of every reserved word to its TokenType.
// The lexer consults this table after it has scanned an identifier.
var keywords = map[string]TokenType{
	"class":        CLASS,
	"trait":        TRAIT,
	"extending":    EXTENDING,
	"implementing": IMPLEMENTING,
	"is":           IS,
	"as":           AS,
	"static":       STATIC,
	"var":          VAR,
	"def":          DEF,
	"end":          END,
	"require":      REQUIRE,
	"true":         TRUE,
	"false":        FALSE,
	"nil":          NIL,
}

// LookupIdent checks whether ident is a reserved word and returns the
// corresponding TokenType. If ident is not reserved, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Token is a single lexical unit produced by the lexer.
//
// Fields:
//   - Type    — the category of this token
//   - Literal — the exact source text that was scanned
//   - Value   — the decoded payload: int64 or float64 for NUMBER, byte for BYTE,
//     the unquoted text for STRING, the bare name for SYMBOL and the literal
//     text for every other kind
//   - Line    — 1-based source line the token starts on
type Token struct {
	Type    TokenType
	Literal string
	Value   any
	Line    int
}

// String returns the literal text of the token.
func (t Token) String() string {
	return t.Literal
}
