// Package ast — node types.
//
// Every source construct has a corresponding node type. The families are closed
// sets: each is an interface with an unexported marker method, so only the types
// in this file can implement them and consumers can switch exhaustively.
//
//	Node (interface)
//	  Expression
//	    Value: Boolean, Nil, Symbol, Number, String, Chain, ByteArray,
//	           Block, Array, Identifier
//	    UnaryExpression, BinaryExpression, KeywordExpression, CascadeExpression
//	  Message: UnaryMessage, BinaryMessage, KeywordMessage
//	  Signature: UnarySignature, BinarySignature, KeywordSignature
//	  Member: Field, Method, Requirement, Pragma
//	  Statement: Assignment, TempDecl, ClassDef, TraitDef, Answer, Pragma, ExprStmt
//	  Program
//
// Nodes are built once by the parser and never modified afterwards. The String
// methods produce a compact S-expression-like rendering intended for tests and
// debugging output, not a faithful re-print of the source.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the AST.
type Node interface {
	// String returns a compact, human-readable representation of the node.
	String() string
}

// Expression is a Node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// Value is an Expression at the highest precedence level: a literal, an
// identifier or a bracketed literal form.
type Value interface {
	Expression
	valueNode()
}

// Message is the part of a message send that follows the receiver.
type Message interface {
	Node
	messageNode()
}

// Signature declares the selector and parameter names of a method or requirement.
type Signature interface {
	Node
	// Selector returns the method selector, e.g. "at:put:" or "+".
	Selector() string
	signatureNode()
}

// Member is an element of a class or trait body.
type Member interface {
	Node
	memberNode()
}

// Statement is an element of a statement list.
type Statement interface {
	Node
	statementNode()
}

// BlockContext is a node that owns a statement list: Program, Method or Block.
type BlockContext interface {
	Node
	// Body returns the node's statement list. Callers must not modify it.
	Body() []Statement
	blockContext()
}

// ── Program ───────────────────────────────────────────────────────────────────

// Program is the root node of every parsed source text.
type Program struct {
	Statements []Statement
}

func (p *Program) blockContext()     {}
func (p *Program) Body() []Statement { return p.Statements }

// String returns all statements, one per line.
func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// ── Values ────────────────────────────────────────────────────────────────────

// Boolean is the literal true or false.
type Boolean struct {
	Value bool
}

func (v *Boolean) expressionNode() {}
func (v *Boolean) valueNode()      {}
func (v *Boolean) String() string  { return strconv.FormatBool(v.Value) }

// Nil is the literal nil.
type Nil struct{}

func (v *Nil) expressionNode() {}
func (v *Nil) valueNode()      {}
func (v *Nil) String() string  { return "nil" }

// Symbol is a literal symbol such as #foo. Name excludes the hash.
type Symbol struct {
	Name string
}

func (v *Symbol) expressionNode() {}
func (v *Symbol) valueNode()      {}
func (v *Symbol) String() string  { return "#" + v.Name }

// Number is a numeric literal. Exactly one of Int and Float is meaningful,
// selected by IsFloat.
type Number struct {
	IsFloat bool
	Int     int64
	Float   float64
}

func (v *Number) expressionNode() {}
func (v *Number) valueNode()      {}
func (v *Number) String() string {
	if !v.IsFloat {
		return strconv.FormatInt(v.Int, 10)
	}
	s := strconv.FormatFloat(v.Float, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

// String is a string literal with quotes removed and doubled quotes collapsed.
type String struct {
	Value string
}

func (v *String) expressionNode() {}
func (v *String) valueNode()      {}
func (v *String) String() string  { return strconv.Quote(v.Value) }

// Chain is the literal #(e, e, ...). It always holds at least one expression.
type Chain struct {
	Values []Expression
}

func (v *Chain) expressionNode() {}
func (v *Chain) valueNode()      {}
func (v *Chain) String() string  { return "#(" + joinNodes(v.Values, ", ") + ")" }

// ByteArray is the literal #[x0A x1B ...].
type ByteArray struct {
	Values []byte
}

func (v *ByteArray) expressionNode() {}
func (v *ByteArray) valueNode()      {}
func (v *ByteArray) String() string {
	parts := make([]string, len(v.Values))
	for i, b := range v.Values {
		parts[i] = fmt.Sprintf("x%02X", b)
	}
	return "#[" + strings.Join(parts, " ") + "]"
}

// Block is a closure literal: [:a b| statements].
type Block struct {
	Params     []string
	Statements []Statement
}

func (v *Block) expressionNode()   {}
func (v *Block) valueNode()        {}
func (v *Block) blockContext()     {}
func (v *Block) Body() []Statement { return v.Statements }
func (v *Block) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if len(v.Params) > 0 {
		b.WriteString(":" + strings.Join(v.Params, " ") + "| ")
	}
	b.WriteString(joinNodes(v.Statements, " "))
	b.WriteByte(']')
	return b.String()
}

// Array is the dynamic array literal {e, e, ...}.
type Array struct {
	Elements []Expression
}

func (v *Array) expressionNode() {}
func (v *Array) valueNode()      {}
func (v *Array) String() string  { return "{" + joinNodes(v.Elements, ", ") + "}" }

// Identifier is a variable reference.
type Identifier struct {
	Name string
}

func (v *Identifier) expressionNode() {}
func (v *Identifier) valueNode()      {}
func (v *Identifier) String() string  { return v.Name }

// ── Messages ──────────────────────────────────────────────────────────────────

// UnaryMessage is a message without arguments: `size`.
type UnaryMessage struct {
	Name string
}

func (m *UnaryMessage) messageNode()   {}
func (m *UnaryMessage) String() string { return m.Name }

// BinaryMessage is an operator message with one argument: `+ 4`.
type BinaryMessage struct {
	Operator string
	Argument Expression
}

func (m *BinaryMessage) messageNode()   {}
func (m *BinaryMessage) String() string { return m.Operator + " " + m.Argument.String() }

// KeywordArg is one keyword part of a KeywordMessage together with its argument.
type KeywordArg struct {
	Keyword string
	Value   Expression
}

// KeywordMessage is a message built from one or more `keyword: argument` pairs.
//
// Name concatenates every keyword part followed by a colon, in source order.
// Args holds each distinct keyword once, in first-encounter order; when a
// keyword repeats, the later argument replaces the earlier one.
type KeywordMessage struct {
	Name string
	Args []KeywordArg
}

func (m *KeywordMessage) messageNode() {}

// Arg returns the argument bound to keyword (without the trailing colon).
func (m *KeywordMessage) Arg(keyword string) (Expression, bool) {
	for _, a := range m.Args {
		if a.Keyword == keyword {
			return a.Value, true
		}
	}
	return nil, false
}

// Set binds value to keyword and appends "keyword:" to the selector.
func (m *KeywordMessage) Set(keyword string, value Expression) {
	m.Name += keyword + ":"
	for i := range m.Args {
		if m.Args[i].Keyword == keyword {
			m.Args[i].Value = value
			return
		}
	}
	m.Args = append(m.Args, KeywordArg{Keyword: keyword, Value: value})
}

// String renders every keyword part of the selector with its argument. A
// repeated keyword shows the argument it is bound to at each occurrence, so
// `at: 1 at: 2` renders as "at: 2 at: 2".
func (m *KeywordMessage) String() string {
	if m.Name == "" {
		parts := make([]string, len(m.Args))
		for i, a := range m.Args {
			parts[i] = a.Keyword + ": " + a.Value.String()
		}
		return strings.Join(parts, " ")
	}
	keys := strings.Split(strings.TrimSuffix(m.Name, ":"), ":")
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ":"
		if v, ok := m.Arg(k); ok {
			parts[i] += " " + v.String()
		}
	}
	return strings.Join(parts, " ")
}

// ── Expressions ───────────────────────────────────────────────────────────────

// UnaryExpression is a receiver followed by one or more unary messages.
type UnaryExpression struct {
	Receiver Expression
	Messages []*UnaryMessage
}

func (e *UnaryExpression) expressionNode() {}
func (e *UnaryExpression) String() string {
	return "(" + e.Receiver.String() + " " + joinNodes(e.Messages, " ") + ")"
}

// BinaryExpression is a receiver followed by one or more binary messages.
// Because binary arguments are full expressions, `a + b + c` is represented
// as a single `+` message whose argument is the expression `b + c`.
type BinaryExpression struct {
	Receiver Expression
	Messages []*BinaryMessage
}

func (e *BinaryExpression) expressionNode() {}
func (e *BinaryExpression) String() string {
	return "(" + e.Receiver.String() + " " + joinNodes(e.Messages, " ") + ")"
}

// KeywordExpression is a receiver with a single keyword message.
type KeywordExpression struct {
	Receiver Expression
	Message  *KeywordMessage
}

func (e *KeywordExpression) expressionNode() {}
func (e *KeywordExpression) String() string {
	return "(" + e.Receiver.String() + " " + e.Message.String() + ")"
}

// CascadeExpression is an expression followed by `;`-separated messages that
// are all sent to the receiver of Value.
type CascadeExpression struct {
	Value   Expression
	Cascade []Message
}

func (e *CascadeExpression) expressionNode() {}
func (e *CascadeExpression) String() string {
	return "(" + e.Value.String() + "; " + joinNodes(e.Cascade, "; ") + ")"
}

// ── Signatures ────────────────────────────────────────────────────────────────

// UnarySignature declares a method without parameters.
type UnarySignature struct {
	Name string
}

func (s *UnarySignature) signatureNode()   {}
func (s *UnarySignature) Selector() string { return s.Name }
func (s *UnarySignature) String() string   { return s.Name }

// BinarySignature declares an operator method with one parameter.
type BinarySignature struct {
	Operator string
	Param    string
}

func (s *BinarySignature) signatureNode()   {}
func (s *BinarySignature) Selector() string { return s.Operator }
func (s *BinarySignature) String() string   { return s.Operator + " " + s.Param }

// KeywordSignature declares a keyword method. Keywords and Params are parallel.
type KeywordSignature struct {
	Name     string
	Keywords []string
	Params   []string
}

func (s *KeywordSignature) signatureNode()   {}
func (s *KeywordSignature) Selector() string { return s.Name }
func (s *KeywordSignature) String() string {
	parts := make([]string, len(s.Keywords))
	for i, k := range s.Keywords {
		parts[i] = k + ": " + s.Params[i]
	}
	return strings.Join(parts, " ")
}

// ── Members ───────────────────────────────────────────────────────────────────

// Field declares an instance or static variable. Value is nil when the
// declaration has no initializer.
type Field struct {
	Static bool
	Name   string
	Value  Expression
}

func (m *Field) memberNode() {}
func (m *Field) String() string {
	s := staticPrefix(m.Static) + "var " + m.Name
	if m.Value != nil {
		s += " := " + m.Value.String()
	}
	return s + "."
}

// Method is a method definition.
type Method struct {
	Static     bool
	Signature  Signature
	Statements []Statement
}

func (m *Method) memberNode()       {}
func (m *Method) blockContext()     {}
func (m *Method) Body() []Statement { return m.Statements }
func (m *Method) String() string {
	return staticPrefix(m.Static) + "def " + m.Signature.String() + " as " +
		joinNodes(m.Statements, " ") + " end"
}

// Requirement is an abstract method declaration. Only traits may hold them.
type Requirement struct {
	Signature Signature
}

func (m *Requirement) memberNode()    {}
func (m *Requirement) String() string { return "require " + m.Signature.String() + "." }

// ── Statements ────────────────────────────────────────────────────────────────

// Assignment binds the result of Value to an existing variable.
type Assignment struct {
	Name  string
	Value Expression
}

func (s *Assignment) statementNode() {}
func (s *Assignment) String() string { return s.Name + " := " + s.Value.String() + "." }

// TempDecl declares a local variable. Value is nil without an initializer.
type TempDecl struct {
	Name  string
	Value Expression
}

func (s *TempDecl) statementNode() {}
func (s *TempDecl) String() string {
	if s.Value == nil {
		return "var " + s.Name + "."
	}
	return "var " + s.Name + " := " + s.Value.String() + "."
}

// ClassDef defines a class. Parent is empty without an extending clause and
// Traits is nil without an implementing clause.
type ClassDef struct {
	Name    string
	Parent  string
	Traits  []string
	Members []Member
}

func (s *ClassDef) statementNode() {}
func (s *ClassDef) String() string {
	var b strings.Builder
	b.WriteString("class " + s.Name)
	if s.Parent != "" {
		b.WriteString(" extending " + s.Parent)
	}
	if s.Traits != nil {
		b.WriteString(" implementing " + strings.Join(s.Traits, ", "))
	}
	b.WriteString(" is")
	writeMembers(&b, s.Members)
	b.WriteString(" end")
	return b.String()
}

// TraitDef defines a trait. Parent is empty without an extending clause.
type TraitDef struct {
	Name    string
	Parent  string
	Members []Member
}

func (s *TraitDef) statementNode() {}
func (s *TraitDef) String() string {
	var b strings.Builder
	b.WriteString("trait " + s.Name)
	if s.Parent != "" {
		b.WriteString(" extending " + s.Parent)
	}
	b.WriteString(" is")
	writeMembers(&b, s.Members)
	b.WriteString(" end")
	return b.String()
}

// Answer returns Value from the enclosing method or block.
type Answer struct {
	Value Expression
}

func (s *Answer) statementNode() {}
func (s *Answer) String() string { return "^" + s.Value.String() + "." }

// Pragma is a metadata annotation carrying a single message. It may appear
// both as a statement and as a class or trait member.
type Pragma struct {
	Message Message
}

func (s *Pragma) statementNode() {}
func (s *Pragma) memberNode()    {}
func (s *Pragma) String() string { return "@" + s.Message.String() }

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	Expr Expression
}

func (s *ExprStmt) statementNode() {}
func (s *ExprStmt) String() string { return s.Expr.String() + "." }

// ── Helpers ───────────────────────────────────────────────────────────────────

func joinNodes[T Node](nodes []T, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}

func writeMembers(b *strings.Builder, members []Member) {
	for _, m := range members {
		b.WriteByte(' ')
		b.WriteString(m.String())
	}
}

func staticPrefix(static bool) string {
	if static {
		return "static "
	}
	return ""
}
