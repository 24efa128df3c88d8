package parse

// Expression is a node of the parsed method-chain expression. Every node
// remembers where it came from so diagnostics can point at exact source
// locations.
type Expression interface {
	Span() Span
}

// StringLiteral is a quoted string argument.
type StringLiteral struct {
	Value string
	span  Span
}

// Span implements Expression.
func (e *StringLiteral) Span() Span { return e.span }

// IntegerLiteral is a decimal integer argument.
type IntegerLiteral struct {
	Value int64
	span  Span
}

// Span implements Expression.
func (e *IntegerLiteral) Span() Span { return e.span }

// MethodCall is a named method invocation. Receiver is nil for the first
// call in a chain (the method applies to the implicit commit). A bare
// identifier such as `summary` parses as a MethodCall with no arguments.
type MethodCall struct {
	Receiver Expression
	Name     string
	NameSpan Span
	Args     []Expression
	span     Span
}

// Span implements Expression.
func (e *MethodCall) Span() Span { return e.span }

// CallSite is the builder-facing view of a single method call: the name,
// the ordered argument expressions, and spans for diagnostics.
type CallSite struct {
	Name     string
	NameSpan Span
	Args     []Expression
	FullSpan Span
}

// callSite adapts a MethodCall node for builders.
func (e *MethodCall) callSite() *CallSite {
	return &CallSite{
		Name:     e.Name,
		NameSpan: e.NameSpan,
		Args:     e.Args,
		FullSpan: e.span,
	}
}

// NewCallSite builds a call site directly; useful for hosts that assemble
// calls programmatically (tests, generated bindings).
func NewCallSite(name string, nameSpan Span, args []Expression, full Span) *CallSite {
	return &CallSite{Name: name, NameSpan: nameSpan, Args: args, FullSpan: full}
}

// NewStringLiteral builds a string literal node with an explicit span.
func NewStringLiteral(value string, span Span) *StringLiteral {
	return &StringLiteral{Value: value, span: span}
}

// NewIntegerLiteral builds an integer literal node with an explicit span.
func NewIntegerLiteral(value int64, span Span) *IntegerLiteral {
	return &IntegerLiteral{Value: value, span: span}
}
