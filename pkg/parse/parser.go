package parse

import (
	"fmt"
	"strconv"
)

// ParseExpression parses a method-chain expression such as
//
//	commit.num_char_in_id("1")
//	short_id(8)
//	summary
//
// into its AST. The surrounding template layout is not handled here; callers
// hand this parser only the property expressions extracted from bindings.
func ParseExpression(input string) (Expression, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	stream := &tokenStream{tokens: tokens, input: input}

	expr, err := parseChain(stream)
	if err != nil {
		return nil, err
	}
	if !stream.done() {
		tok := stream.peek()
		return nil, NewError(fmt.Sprintf("unexpected token %q", tok.raw), tok.span)
	}
	return expr, nil
}

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenInteger
	tokenDot
	tokenComma
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
	// value holds the decoded payload for string literals.
	value string
	span  Span
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	for i < len(input) {
		ch := input[i]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}

		start := i
		switch {
		case ch == '.':
			i++
			tokens = append(tokens, token{kind: tokenDot, raw: ".", span: Span{start, i}})
		case ch == ',':
			i++
			tokens = append(tokens, token{kind: tokenComma, raw: ",", span: Span{start, i}})
		case ch == '(':
			i++
			tokens = append(tokens, token{kind: tokenLParen, raw: "(", span: Span{start, i}})
		case ch == ')':
			i++
			tokens = append(tokens, token{kind: tokenRParen, raw: ")", span: Span{start, i}})
		case ch == '"' || ch == '\'':
			value, end, err := scanString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{
				kind:  tokenString,
				raw:   input[start:end],
				value: value,
				span:  Span{start, end},
			})
			i = end
		case ch >= '0' && ch <= '9':
			for i < len(input) && input[i] >= '0' && input[i] <= '9' {
				i++
			}
			tokens = append(tokens, token{kind: tokenInteger, raw: input[start:i], span: Span{start, i}})
		case isIdentStart(ch):
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdentifier, raw: input[start:i], span: Span{start, i}})
		default:
			return nil, NewError(fmt.Sprintf("unexpected character %q", string(ch)), Span{start, start + 1})
		}
	}

	return tokens, nil
}

// scanString consumes a quoted literal starting at input[start] and returns
// the decoded value plus the index one past the closing quote. Both single
// and double quotes are accepted; backslash escapes the next character.
func scanString(input string, start int) (string, int, error) {
	quote := input[start]
	i := start + 1
	var out []byte
	for i < len(input) {
		ch := input[i]
		if ch == '\\' {
			if i+1 >= len(input) {
				break
			}
			switch input[i+1] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			default:
				out = append(out, input[i+1])
			}
			i += 2
			continue
		}
		if ch == quote {
			return string(out), i + 1, nil
		}
		out = append(out, ch)
		i++
	}
	return "", 0, NewError("unterminated string literal", Span{start, len(input)})
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

type tokenStream struct {
	tokens []token
	pos    int
	input  string
}

func (s *tokenStream) done() bool {
	return s.pos >= len(s.tokens)
}

func (s *tokenStream) peek() token {
	return s.tokens[s.pos]
}

func (s *tokenStream) match(kind tokenKind) (token, bool) {
	if s.done() || s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func (s *tokenStream) endSpan() Span {
	return Span{len(s.input), len(s.input)}
}

// parseChain parses `call ('.' call)*`.
func parseChain(s *tokenStream) (Expression, error) {
	expr, err := parseCall(s, nil)
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := s.match(tokenDot); !ok {
			return expr, nil
		}
		expr, err = parseCall(s, expr)
		if err != nil {
			return nil, err
		}
	}
}

// parseCall parses `identifier ('(' args? ')')?` and attaches it to the
// optional receiver. A bare identifier is a zero-argument call.
func parseCall(s *tokenStream, receiver Expression) (Expression, error) {
	name, ok := s.match(tokenIdentifier)
	if !ok {
		if s.done() {
			return nil, NewError("expected method name", s.endSpan())
		}
		tok := s.peek()
		return nil, NewError(fmt.Sprintf("expected method name, got %q", tok.raw), tok.span)
	}

	call := &MethodCall{
		Receiver: receiver,
		Name:     name.raw,
		NameSpan: name.span,
		span:     name.span,
	}

	if _, ok := s.match(tokenLParen); !ok {
		return call, nil
	}

	if closing, ok := s.match(tokenRParen); ok {
		call.span = Span{name.span.Start, closing.span.End}
		return call, nil
	}

	for {
		arg, err := parseArgument(s)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		if _, ok := s.match(tokenComma); ok {
			continue
		}
		closing, ok := s.match(tokenRParen)
		if !ok {
			if s.done() {
				return nil, NewError("missing closing ')'", s.endSpan())
			}
			tok := s.peek()
			return nil, NewError(fmt.Sprintf("expected ',' or ')', got %q", tok.raw), tok.span)
		}
		call.span = Span{name.span.Start, closing.span.End}
		return call, nil
	}
}

func parseArgument(s *tokenStream) (Expression, error) {
	if s.done() {
		return nil, NewError("expected argument", s.endSpan())
	}
	switch tok := s.peek(); tok.kind {
	case tokenString:
		s.pos++
		return &StringLiteral{Value: tok.value, span: tok.span}, nil
	case tokenInteger:
		s.pos++
		value, err := strconv.ParseInt(tok.raw, 10, 64)
		if err != nil {
			return nil, NewError(fmt.Sprintf("invalid integer literal %q", tok.raw), tok.span)
		}
		return &IntegerLiteral{Value: value, span: tok.span}, nil
	case tokenIdentifier:
		return parseChain(s)
	default:
		return nil, NewError(fmt.Sprintf("unexpected token %q", tok.raw), tok.span)
	}
}
