package parser

import (
	"github.com/metaphox/smallos-lang/ast"
)

// ── Expressions ───────────────────────────────────────────────────────────────
//
// Each level returns the node of the level below unchanged when no message of
// its own kind follows, so a bare value never gets wrapped.

// parseExpression parses a keyword expression optionally followed by a cascade.
func (p *Parser) parseExpression() (ast.Expression, error) {
	value, err := p.parseKeywordExpression()
	if err != nil {
		return nil, err
	}
	if p.peek() != ast.SEMICOLON {
		return value, nil
	}

	casc := &ast.CascadeExpression{Value: value}
	for {
		if _, ok := p.accept(ast.SEMICOLON); !ok {
			return casc, nil
		}
		msg, err := p.parseMessage()
		if err != nil {
			return nil, err
		}
		casc.Cascade = append(casc.Cascade, msg)
	}
}

// parseKeywordExpression parses a binary expression followed by at most one
// keyword message.
func (p *Parser) parseKeywordExpression() (ast.Expression, error) {
	recv, err := p.parseBinaryExpression()
	if err != nil {
		return nil, err
	}
	if p.peek() != ast.IDENT || p.lookahead() != ast.COLON {
		return recv, nil
	}
	msg, err := p.parseKeywordMessage()
	if err != nil {
		return nil, err
	}
	return &ast.KeywordExpression{Receiver: recv, Message: msg}, nil
}

// parseBinaryExpression parses a unary expression followed by binary messages.
func (p *Parser) parseBinaryExpression() (ast.Expression, error) {
	recv, err := p.parseUnaryExpression()
	if err != nil {
		return nil, err
	}
	var msgs []*ast.BinaryMessage
	for p.peek() == ast.BINOP {
		msg, err := p.parseBinaryMessage()
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	if len(msgs) == 0 {
		return recv, nil
	}
	return &ast.BinaryExpression{Receiver: recv, Messages: msgs}, nil
}

// parseUnaryExpression parses a value followed by unary messages. An
// identifier directly followed by a colon starts a keyword message and ends
// the unary chain.
func (p *Parser) parseUnaryExpression() (ast.Expression, error) {
	recv, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	var msgs []*ast.UnaryMessage
	for p.peek() == ast.IDENT && p.lookahead() != ast.COLON {
		msgs = append(msgs, p.parseUnaryMessage())
	}
	if len(msgs) == 0 {
		return recv, nil
	}
	return &ast.UnaryExpression{Receiver: recv, Messages: msgs}, nil
}

// ── Messages ──────────────────────────────────────────────────────────────────

// parseMessage parses a single message of any kind, as used in cascades and
// pragmas.
func (p *Parser) parseMessage() (ast.Message, error) {
	var (
		msg ast.Message
		err error
	)
	switch {
	case p.peek() == ast.BINOP:
		msg, err = p.parseBinaryMessage()
	case p.peek() == ast.IDENT && p.lookahead() == ast.COLON:
		msg, err = p.parseKeywordMessage()
	case p.peek() == ast.IDENT:
		msg = p.parseUnaryMessage()
	default:
		err = p.errorf("expected message, got %s", p.peek())
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (p *Parser) parseUnaryMessage() *ast.UnaryMessage {
	return &ast.UnaryMessage{Name: p.advance().Literal}
}

// parseBinaryMessage parses an operator and its argument. The argument is a
// full expression, so `a + b * c` sends `+` with the argument `b * c`.
func (p *Parser) parseBinaryMessage() (*ast.BinaryMessage, error) {
	op := p.advance()
	if !isValueStart(p.peek()) {
		return nil, p.errorf("expected argument for binary message %q", op.Literal)
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryMessage{Operator: op.Literal, Argument: arg}, nil
}

// parseKeywordMessage consumes every `keyword: argument` pair in a row. The
// arguments are binary expressions.
func (p *Parser) parseKeywordMessage() (*ast.KeywordMessage, error) {
	msg := &ast.KeywordMessage{}
	for p.peek() == ast.IDENT && p.lookahead() == ast.COLON {
		key := p.advance()
		p.advance() // ':'
		if !isValueStart(p.peek()) {
			return nil, p.errorf("expected argument for keyword %q", key.Literal+":")
		}
		arg, err := p.parseBinaryExpression()
		if err != nil {
			return nil, err
		}
		msg.Set(key.Literal, arg)
	}
	return msg, nil
}

// ── Values ────────────────────────────────────────────────────────────────────

// parseValue parses the highest-precedence forms. A parenthesised expression
// yields the inner expression itself.
func (p *Parser) parseValue() (ast.Expression, error) {
	switch p.peek() {
	case ast.IDENT:
		return &ast.Identifier{Name: p.advance().Literal}, nil
	case ast.LBRACE:
		return p.parseArray()
	case ast.LBRACKET:
		return p.parseBlock()
	case ast.HASH:
		switch p.lookahead() {
		case ast.LPAREN:
			return p.parseChain()
		case ast.LBRACKET:
			return p.parseByteArray()
		}
		return nil, p.errorf("expected chain or byte array after '#'")
	case ast.NUMBER, ast.STRING, ast.SYMBOL, ast.TRUE, ast.FALSE, ast.NIL:
		return p.parseLiteral()
	case ast.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf("expected value, got %s", p.peek())
	}
}

// parseLiteral converts a literal token into its value node.
func (p *Parser) parseLiteral() (ast.Value, error) {
	tok := p.advance()
	switch tok.Type {
	case ast.TRUE:
		return &ast.Boolean{Value: true}, nil
	case ast.FALSE:
		return &ast.Boolean{Value: false}, nil
	case ast.NIL:
		return &ast.Nil{}, nil
	}

	v, err := p.payload(tok)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case int64:
		return &ast.Number{Int: v}, nil
	case float64:
		return &ast.Number{IsFloat: true, Float: v}, nil
	case string:
		if tok.Type == ast.SYMBOL {
			return &ast.Symbol{Name: v}, nil
		}
		if tok.Type == ast.STRING {
			return &ast.String{Value: v}, nil
		}
	}
	return nil, p.errorAt(tok, "unexpected payload %T for %s", v, tok.Type)
}

// payload returns the decoded Value of a literal token. Tokens built without
// one are decoded from their literal text.
func (p *Parser) payload(tok ast.Token) (any, error) {
	if tok.Value != nil {
		return tok.Value, nil
	}
	v, err := ast.DecodeLiteral(tok.Type, tok.Literal)
	if err != nil {
		return nil, p.errorAt(tok, "%v", err)
	}
	return v, nil
}

// parseArray parses `{}` or `{e, e, ...}`.
func (p *Parser) parseArray() (ast.Value, error) {
	p.advance() // '{'
	arr := &ast.Array{}
	if _, ok := p.accept(ast.RBRACE); ok {
		return arr, nil
	}
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, e)
		if _, ok := p.accept(ast.RBRACE); ok {
			return arr, nil
		}
		if _, err := p.expect(ast.COMMA, "array elements must be separated by commas"); err != nil {
			return nil, err
		}
	}
}

// parseBlock parses `[ [:p1 p2 ... |] statements ]`.
func (p *Parser) parseBlock() (ast.Value, error) {
	p.advance() // '['
	blk := &ast.Block{}
	if _, ok := p.accept(ast.COLON); ok {
		for p.peek() == ast.IDENT {
			blk.Params = append(blk.Params, p.advance().Literal)
		}
		if _, err := p.expect(ast.PIPE, "expected '|' after block parameters"); err != nil {
			return nil, err
		}
	}
	body, err := p.parseStatementsUntil(ast.RBRACKET)
	if err != nil {
		return nil, err
	}
	blk.Statements = body
	return blk, nil
}

// parseChain parses `#(e, e, ...)`.
func (p *Parser) parseChain() (ast.Value, error) {
	p.advance() // '#'
	p.advance() // '('
	if !isValueStart(p.peek()) {
		return nil, p.errorf("chains must contain at least one expression")
	}
	ch := &ast.Chain{}
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		ch.Values = append(ch.Values, e)
		if _, ok := p.accept(ast.COMMA); !ok {
			break
		}
	}
	if _, err := p.expect(ast.RPAREN); err != nil {
		return nil, err
	}
	return ch, nil
}

// parseByteArray parses `#[xHH xHH ...]`.
func (p *Parser) parseByteArray() (ast.Value, error) {
	p.advance() // '#'
	p.advance() // '['
	arr := &ast.ByteArray{Values: []byte{}}
	for p.peek() == ast.BYTE {
		tok := p.advance()
		v, err := p.payload(tok)
		if err != nil {
			return nil, err
		}
		b, ok := v.(byte)
		if !ok {
			return nil, p.errorAt(tok, "unexpected payload %T for %s", v, tok.Type)
		}
		arr.Values = append(arr.Values, b)
	}
	if _, err := p.expect(ast.RBRACKET, "byte arrays may only contain byte literals"); err != nil {
		return nil, err
	}
	return arr, nil
}
