// Package frontend runs the whole smallos front end, source text to
// (optionally trimmed) AST, and logs what each stage produced.
//
// The lexer, parser and trimmer are silent; callers that want diagnostics go
// through a Frontend instead of calling them directly.
package frontend

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/metaphox/smallos-lang/ast"
	"github.com/metaphox/smallos-lang/lexer"
	"github.com/metaphox/smallos-lang/parser"
	"github.com/metaphox/smallos-lang/trim"
)

// Option configures a Frontend.
type Option func(*Frontend)

// WithLogger sets the logger. The default is log.Root().
func WithLogger(l log.Logger) Option {
	return func(f *Frontend) { f.log = l }
}

// WithTrim cuts the program's top-level statements after the first answer.
func WithTrim(on bool) Option {
	return func(f *Frontend) { f.trim = on }
}

// WithDeepTrim trims every method body and block as well as the program.
// It takes precedence over WithTrim.
func WithDeepTrim(on bool) Option {
	return func(f *Frontend) { f.deepTrim = on }
}

// Frontend is immutable after New and safe for concurrent use; every call
// tokenizes and parses with fresh state.
type Frontend struct {
	log      log.Logger
	trim     bool
	deepTrim bool
}

// New returns a Frontend configured by opts.
func New(opts ...Option) *Frontend {
	f := &Frontend{log: log.Root()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Tokenize scans src.
func (f *Frontend) Tokenize(src string) ([]ast.Token, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		f.log.Warn("Tokenizing failed", "line", Line(err), "err", err)
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	f.log.Debug("Tokenized source", "bytes", len(src), "tokens", len(toks))
	return toks, nil
}

// Parse tokenizes and parses src, then trims the result if configured to.
// Errors wrap a *lexer.LexicalError or a *parser.SyntaxError.
func (f *Frontend) Parse(src string) (*ast.Program, error) {
	toks, err := f.Tokenize(src)
	if err != nil {
		return nil, err
	}

	prog, err := parser.Parse(toks)
	if err != nil {
		f.log.Warn("Parsing failed", "line", Line(err), "err", err)
		return nil, fmt.Errorf("parse: %w", err)
	}
	f.log.Debug("Parsed program", "statements", len(prog.Statements), "nodes", ast.Count(prog))

	switch {
	case f.deepTrim:
		prog = trim.Tree(prog)
		f.log.Debug("Trimmed program tree", "statements", len(prog.Statements), "nodes", ast.Count(prog))
	case f.trim:
		prog = trim.Node(prog).(*ast.Program)
		f.log.Debug("Trimmed program", "statements", len(prog.Statements))
	}
	return prog, nil
}

// Line returns the source line carried by a front-end error, or 0 if err is
// neither a lexical nor a syntax error.
func Line(err error) int {
	var (
		le *lexer.LexicalError
		se *parser.SyntaxError
	)
	switch {
	case errors.As(err, &le):
		return le.Line
	case errors.As(err, &se):
		return se.Line
	}
	return 0
}
