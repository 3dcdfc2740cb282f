// Package parser implements the smallos recursive-descent parser.
//
// The parser walks a token slice produced by [lexer.Tokenize] with a single
// cursor and builds an [ast.Program]. Every grammar rule is a method returning
// its node and an error; the first error aborts the whole parse and is returned
// unchanged to the caller as a [*SyntaxError]. There is no recovery and no error
// accumulation.
//
// Usage:
//
//	toks, err := lexer.Tokenize(source)
//	if err != nil { ... }
//	prog, err := parser.Parse(toks)
//
// Expression precedence, highest first:
//
//	value      identifier, literal, {array}, [block], #(chain), #[bytes], (expr)
//	unary      value ident ident ...
//	binary     unary op expression        (the argument is a full expression)
//	keyword    binary key: binary key: binary ...
//	cascade    keyword ; message ; message ...
package parser

import (
	"fmt"

	"github.com/metaphox/smallos-lang/ast"
	"github.com/metaphox/smallos-lang/lexer"
)

// SyntaxError reports a missing token or a violated grammar rule.
type SyntaxError struct {
	Line    int       // 1-based line the error was detected on
	Message string    // human-readable description
	Token   ast.Token // the token under the cursor
}

func (e *SyntaxError) Error() string {
	if e.Token.Type == ast.EOF {
		return fmt.Sprintf("syntax error on line %d: %s (at end of input)", e.Line, e.Message)
	}
	return fmt.Sprintf("syntax error on line %d: %s (near %q)", e.Line, e.Message, e.Token.Literal)
}

// Parser is the parsing context: a token sequence and a cursor into it.
// A Parser is used for exactly one parse and must not be shared between
// goroutines; independent parses need independent Parsers.
type Parser struct {
	tokens []ast.Token
	pos    int
}

// New creates a Parser over tokens. If the sequence does not end with an EOF
// token one is appended to a private copy.
func New(tokens []ast.Token) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Type != ast.EOF {
		line := 1
		if n > 0 {
			line = tokens[n-1].Line
		}
		tokens = append(tokens[:n:n], ast.Token{Type: ast.EOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Parse parses a complete token sequence into a Program.
func Parse(tokens []ast.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseString tokenizes and parses src. The error is either a
// [*lexer.LexicalError] or a [*SyntaxError].
func ParseString(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// ParseProgram parses statements until the end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.peek() != ast.EOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, s)
	}
	return prog, nil
}

// ── Cursor operations ─────────────────────────────────────────────────────────

// cur returns the token under the cursor.
func (p *Parser) cur() ast.Token { return p.tokens[p.pos] }

// peek returns the kind of the token under the cursor.
func (p *Parser) peek() ast.TokenType { return p.tokens[p.pos].Type }

// lookahead returns the kind of the token after the cursor, or EOF.
func (p *Parser) lookahead() ast.TokenType {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1].Type
	}
	return ast.EOF
}

// advance consumes the current token and returns it. The cursor never moves
// past the final EOF token.
func (p *Parser) advance() ast.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// accept consumes the current token if it has kind tt.
func (p *Parser) accept(tt ast.TokenType) (ast.Token, bool) {
	if p.peek() == tt {
		return p.advance(), true
	}
	return ast.Token{}, false
}

// expect consumes the current token if it has kind tt and fails otherwise.
// The optional msg replaces the default "expected X, got Y" description.
func (p *Parser) expect(tt ast.TokenType, msg ...string) (ast.Token, error) {
	if p.peek() == tt {
		return p.advance(), nil
	}
	if len(msg) > 0 {
		return ast.Token{}, p.errorf("%s", msg[0])
	}
	return ast.Token{}, p.errorf("expected %s, got %s", tt, p.peek())
}

// errorf builds a SyntaxError at the current token.
func (p *Parser) errorf(format string, args ...any) error {
	tok := p.cur()
	return &SyntaxError{Line: tok.Line, Message: fmt.Sprintf(format, args...), Token: tok}
}

// errorAt builds a SyntaxError reported against an earlier token.
func (p *Parser) errorAt(tok ast.Token, format string, args ...any) error {
	return &SyntaxError{Line: tok.Line, Message: fmt.Sprintf(format, args...), Token: tok}
}

// isValueStart reports whether tt can begin a value, and so an expression.
func isValueStart(tt ast.TokenType) bool {
	switch tt {
	case ast.IDENT, ast.LBRACE, ast.LBRACKET, ast.HASH, ast.STRING, ast.NUMBER,
		ast.SYMBOL, ast.TRUE, ast.FALSE, ast.NIL, ast.LPAREN:
		return true
	}
	return false
}

// ── Statement parsing ─────────────────────────────────────────────────────────

// parseStatement dispatches on the current token (and, for assignments, the
// one after it).
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch tt := p.peek(); {
	case tt == ast.IDENT && p.lookahead() == ast.ASSIGN:
		return p.parseAssignment()
	case tt == ast.VAR:
		return p.parseTempDecl()
	case tt == ast.CLASS:
		return p.parseClassDef()
	case tt == ast.TRAIT:
		return p.parseTraitDef()
	case tt == ast.ANSWER:
		return p.parseAnswer()
	case tt == ast.AT:
		return p.parsePragmaStatement()
	case isValueStart(tt):
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.endStatement(); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: expr}, nil
	default:
		return nil, p.errorf("expected statement, got %s", tt)
	}
}

// endStatement consumes the period that terminates most statements.
func (p *Parser) endStatement() error {
	_, err := p.expect(ast.PERIOD, "statements must be ended with a period")
	return err
}

// parseAssignment parses `name := expression.`
func (p *Parser) parseAssignment() (ast.Statement, error) {
	name := p.advance()
	if _, err := p.expect(ast.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ast.Assignment{Name: name.Literal, Value: value}, nil
}

// parseTempDecl parses `var name [:= expression].`
func (p *Parser) parseTempDecl() (ast.Statement, error) {
	p.advance() // 'var'
	name, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.TempDecl{Name: name.Literal}
	if _, ok := p.accept(ast.ASSIGN); ok {
		if decl.Value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseAnswer parses `^expression.`
func (p *Parser) parseAnswer() (ast.Statement, error) {
	p.advance() // '^'
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ast.Answer{Value: value}, nil
}

// parsePragma parses `@message`. Pragmas take no terminating period.
func (p *Parser) parsePragma() (*ast.Pragma, error) {
	if _, err := p.expect(ast.AT); err != nil {
		return nil, err
	}
	msg, err := p.parseMessage()
	if err != nil {
		return nil, err
	}
	return &ast.Pragma{Message: msg}, nil
}

func (p *Parser) parsePragmaStatement() (ast.Statement, error) {
	pr, err := p.parsePragma()
	if err != nil {
		return nil, err
	}
	return pr, nil
}

// parseStatementsUntil parses statements until a token of kind end, which is
// consumed.
func (p *Parser) parseStatementsUntil(end ast.TokenType) ([]ast.Statement, error) {
	var stmts []ast.Statement
	for {
		if _, ok := p.accept(end); ok {
			return stmts, nil
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
}

// ── Definitions ───────────────────────────────────────────────────────────────

// parseClassDef parses
//
//	class Name [extending Parent] [implementing T1, T2 ...] is members end
func (p *Parser) parseClassDef() (ast.Statement, error) {
	p.advance() // 'class'
	name, err := p.expect(ast.IDENT, "expected class name")
	if err != nil {
		return nil, err
	}
	def := &ast.ClassDef{Name: name.Literal}

	if def.Parent, err = p.parseExtending(); err != nil {
		return nil, err
	}
	if _, ok := p.accept(ast.IMPLEMENTING); ok {
		def.Traits = []string{}
		for {
			tr, ok := p.accept(ast.IDENT)
			if !ok {
				break
			}
			def.Traits = append(def.Traits, tr.Literal)
			p.accept(ast.COMMA)
		}
	}
	if _, err := p.expect(ast.IS); err != nil {
		return nil, err
	}

	for {
		if _, ok := p.accept(ast.END); ok {
			return def, nil
		}
		start := p.cur()
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		if _, ok := m.(*ast.Requirement); ok {
			return nil, p.errorAt(start, "classes cannot contain requirements")
		}
		def.Members = append(def.Members, m)
	}
}

// parseTraitDef parses `trait Name [extending Parent] is members end`.
func (p *Parser) parseTraitDef() (ast.Statement, error) {
	p.advance() // 'trait'
	name, err := p.expect(ast.IDENT, "expected trait name")
	if err != nil {
		return nil, err
	}
	def := &ast.TraitDef{Name: name.Literal}

	if def.Parent, err = p.parseExtending(); err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.IS); err != nil {
		return nil, err
	}

	for {
		if _, ok := p.accept(ast.END); ok {
			return def, nil
		}
		start := p.cur()
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		if _, ok := m.(*ast.Field); ok {
			return nil, p.errorAt(start, "traits cannot hold fields")
		}
		def.Members = append(def.Members, m)
	}
}

// parseExtending parses an optional `extending Parent` clause.
func (p *Parser) parseExtending() (string, error) {
	if _, ok := p.accept(ast.EXTENDING); !ok {
		return "", nil
	}
	parent, err := p.expect(ast.IDENT, "expected parent name after 'extending'")
	if err != nil {
		return "", err
	}
	return parent.Literal, nil
}

// ── Members ───────────────────────────────────────────────────────────────────

// parseMember parses one element of a class or trait body.
func (p *Parser) parseMember() (ast.Member, error) {
	switch p.peek() {
	case ast.STATIC:
		switch p.lookahead() {
		case ast.DEF:
			return p.parseMethod()
		case ast.VAR:
			return p.parseField()
		case ast.REQUIRE:
			return nil, p.errorf("requirements cannot be static")
		default:
			return nil, p.errorf("expected method or field after 'static'")
		}
	case ast.DEF:
		return p.parseMethod()
	case ast.VAR:
		return p.parseField()
	case ast.REQUIRE:
		return p.parseRequirement()
	case ast.AT:
		pr, err := p.parsePragma()
		if err != nil {
			return nil, err
		}
		return pr, nil
	default:
		return nil, p.errorf("expected one of: method, field, requirement, pragma in class/trait body")
	}
}

// parseMethod parses `[static] def signature as statements end`.
func (p *Parser) parseMethod() (ast.Member, error) {
	_, static := p.accept(ast.STATIC)
	if _, err := p.expect(ast.DEF); err != nil {
		return nil, err
	}
	sig, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.AS); err != nil {
		return nil, err
	}
	body, err := p.parseStatementsUntil(ast.END)
	if err != nil {
		return nil, err
	}
	return &ast.Method{Static: static, Signature: sig, Statements: body}, nil
}

// parseField parses `[static] var name [:= expression].`
func (p *Parser) parseField() (ast.Member, error) {
	_, static := p.accept(ast.STATIC)
	if _, err := p.expect(ast.VAR); err != nil {
		return nil, err
	}
	name, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	field := &ast.Field{Static: static, Name: name.Literal}
	if _, ok := p.accept(ast.ASSIGN); ok {
		if field.Value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ast.PERIOD, "fields must end with a period"); err != nil {
		return nil, err
	}
	return field, nil
}

// parseRequirement parses `require signature.`
func (p *Parser) parseRequirement() (ast.Member, error) {
	p.advance() // 'require'
	sig, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.PERIOD, "requirements must end with a period"); err != nil {
		return nil, err
	}
	return &ast.Requirement{Signature: sig}, nil
}

// parseSignature parses a unary, binary or keyword method signature.
func (p *Parser) parseSignature() (ast.Signature, error) {
	switch {
	case p.peek() == ast.BINOP:
		op := p.advance()
		param, err := p.expect(ast.IDENT, "binary signatures take one parameter name")
		if err != nil {
			return nil, err
		}
		return &ast.BinarySignature{Operator: op.Literal, Param: param.Literal}, nil

	case p.peek() == ast.IDENT && p.lookahead() == ast.COLON:
		sig := &ast.KeywordSignature{}
		for p.peek() == ast.IDENT {
			key := p.advance()
			if _, err := p.expect(ast.COLON); err != nil {
				return nil, err
			}
			param, err := p.expect(ast.IDENT, "expected parameter name after '"+key.Literal+":'")
			if err != nil {
				return nil, err
			}
			sig.Name += key.Literal + ":"
			sig.Keywords = append(sig.Keywords, key.Literal)
			sig.Params = append(sig.Params, param.Literal)
		}
		return sig, nil

	case p.peek() == ast.IDENT:
		return &ast.UnarySignature{Name: p.advance().Literal}, nil

	default:
		return nil, p.errorf("expected signature")
	}
}
