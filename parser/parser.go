// Package parser turns CSS source text into an ast.Stylesheet.
//
// The parser is tolerant: it never fails. Text it cannot place in the tree
// becomes ast.Discarded nodes, and every node records the byte range of the
// source it was built from.
//
// Declarations and rulesets are told apart by a single rule. Text followed
// by a property boundary (";" or "}") is a declaration. Text followed by "{"
// is a ruleset, unless it ends in ":", in which case it is a declaration
// whose value is the braced block (a mixin, as in --foo: { ... }).
package parser

import (
	"bennypowers.dev/shadycss/ast"
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/token"
	"bennypowers.dev/shadycss/tokenizer"
)

// Parser builds syntax trees through an ast.Factory. A Parser holds no
// per-parse state and may be reused, but not concurrently with a Factory
// that is itself stateful.
type Parser struct {
	factory ast.Factory
}

// Option configures a Parser
type Option func(*Parser)

// WithFactory makes the parser build nodes with f instead of
// ast.DefaultFactory.
func WithFactory(f ast.Factory) Option {
	return func(p *Parser) {
		if f != nil {
			p.factory = f
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{factory: ast.DefaultFactory{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src with the default factory.
func Parse(src string) *ast.Stylesheet {
	return New().Parse(src)
}

// Parse parses src into a stylesheet. It always returns a tree.
func (p *Parser) Parse(src string) *ast.Stylesheet {
	s := &state{
		factory: p.factory,
		cursor:  tokenizer.NewCursor(tokenizer.New(src)),
		src:     src,
	}
	return s.parseStylesheet()
}

// state is the per-parse cursor plus the end of the last token taken.
type state struct {
	factory ast.Factory
	cursor  *tokenizer.Cursor
	src     string
	end     int
}

func (s *state) take() token.Token {
	tok, ok := s.cursor.TakeOne()
	if ok {
		s.end = tok.End
	}
	return tok
}

func (s *state) skipWhitespace() {
	for s.cursor.NextIs(token.Whitespace) {
		s.take()
	}
}

func (s *state) parseStylesheet() *ast.Stylesheet {
	rules := s.parseRules(false)
	return s.factory.Stylesheet(rules, ast.Range{Start: 0, End: len(s.src)})
}

// parseRules parses rules until the input is exhausted or, inside a block,
// until the closing brace is next.
func (s *state) parseRules(inBlock bool) []ast.Rule {
	var rules []ast.Rule
	for !s.cursor.Done() {
		if inBlock && s.cursor.NextIs(token.CloseBrace) {
			break
		}

		before := s.cursor.Index()
		rule := s.parseRule(inBlock)
		if rule != nil {
			rules = append(rules, rule)
		}

		if s.cursor.Index() == before {
			tok, _ := s.cursor.Next()
			log.Warn("parser made no progress at %s, discarding it", tok)
			s.take()
			rules = append(rules, s.factory.Discarded(s.src[tok.Start:tok.End], span(tok.Start, tok.End)))
		}
	}
	return rules
}

func (s *state) parseRule(inBlock bool) ast.Rule {
	tok, _ := s.cursor.Next()
	switch {
	case tok.Is(token.Whitespace):
		s.take()
		return nil
	case tok.Is(token.Comment):
		return s.parseComment(inBlock)
	case tok.Is(token.PropertyBoundary):
		return s.parseUnknown()
	case tok.Is(token.At):
		return s.parseAtRule()
	case tok.Is(token.Word), tok.Is(token.Boundary):
		return s.parseDeclarationOrRuleset()
	default:
		return s.parseUnknown()
	}
}

// parseComment builds a comment. An unterminated comment inside a block
// would swallow the block's closing brace when printed, so it is discarded.
func (s *state) parseComment(inBlock bool) ast.Rule {
	tok := s.take()
	if inBlock && !s.cursor.Tokenizer().Closed(tok) {
		return s.discard(tok.Start, tok.End)
	}
	return s.factory.Comment(s.cursor.Slice(tok), span(tok.Start, tok.End))
}

func (s *state) discard(start, end int) ast.Rule {
	text := s.src[start:end]
	log.Debug("discarding %q at %d", text, start)
	return s.factory.Discarded(text, span(start, end))
}

// parseUnknown discards the current token along with any semicolons that
// immediately follow it.
func (s *state) parseUnknown() ast.Rule {
	first := s.take()
	last := first
	for s.cursor.NextIs(token.Semicolon) {
		last = s.take()
	}
	return s.discard(first.Start, last.End)
}

// run tracks the first and last significant tokens of accumulated text, and
// the first colon seen outside parentheses. A run is open when it reached
// the end of input inside an unterminated string, comment or parenthesis.
type run struct {
	first, last token.Token
	colon       token.Token
	hasTokens   bool
	hasColon    bool
	open        bool
}

func (r *run) add(tok token.Token) {
	if !r.hasTokens {
		r.first = tok
		r.hasTokens = true
	}
	r.last = tok
}

func (r *run) start(fallback int) int {
	if r.hasTokens {
		return r.first.Start
	}
	return fallback
}

func (r *run) endsWithColon() bool {
	return r.hasTokens && r.last.Is(token.Colon)
}

// accumulate takes tokens up to, but not including, the next "{" or
// property boundary. Whitespace is taken but not recorded, and parenthesized
// spans are taken whole so that their contents never end the run.
func (s *state) accumulate() run {
	var r run
	for {
		tok, ok := s.cursor.Next()
		if !ok {
			return r
		}
		switch {
		case tok.Is(token.Whitespace):
			s.take()
		case tok.Is(token.OpenBrace), tok.Is(token.PropertyBoundary):
			return r
		case tok.Is(token.OpenParenthesis):
			s.takeParenthesized(&r)
		default:
			s.take()
			if tok.Is(token.Colon) && !r.hasColon {
				r.colon = tok
				r.hasColon = true
			}
			s.record(&r, tok)
		}
	}
}

// takeParenthesized takes tokens from an opening parenthesis through its
// matching close, or to the end of input.
func (s *state) takeParenthesized(r *run) {
	depth := 0
	for !s.cursor.Done() {
		tok := s.take()
		if !tok.Is(token.Whitespace) {
			s.record(r, tok)
		}
		switch {
		case tok.Is(token.OpenParenthesis):
			depth++
		case tok.Is(token.CloseParenthesis):
			depth--
		}
		if depth == 0 {
			return
		}
	}
	r.open = true
}

func (s *state) record(r *run, tok token.Token) {
	r.add(tok)
	if !s.cursor.Tokenizer().Closed(tok) {
		r.open = true
	}
}

func (s *state) parseDeclarationOrRuleset() ast.Rule {
	r := s.accumulate()
	next, ok := s.cursor.Next()

	switch {
	case !ok || next.Is(token.PropertyBoundary):
		return s.declaration(r)
	case r.endsWithColon():
		return s.mixinDeclaration(r)
	default:
		return s.ruleset(r, next)
	}
}

// declaration builds a declaration from text that ended at a property
// boundary or the end of input, taking a terminating semicolon with it.
// An open run is discarded: printed with a terminator, it would absorb that
// terminator when parsed again.
func (s *state) declaration(r run) ast.Rule {
	start := r.start(s.end)
	end := s.end
	if r.hasTokens {
		end = r.last.End
	}
	if r.open {
		return s.discard(start, end)
	}

	var (
		name      string
		nameRange ast.Range
		value     ast.Value
	)
	if r.hasColon {
		nameStart, nameEnd := s.cursor.Tokenizer().TrimSpan(start, r.colon.Start)
		name = s.src[nameStart:nameEnd]
		nameRange = span(nameStart, nameEnd)

		valueStart, valueEnd := s.cursor.Tokenizer().TrimSpan(r.colon.End, end)
		value = s.factory.Expression(s.src[valueStart:valueEnd], span(valueStart, valueEnd))
	} else {
		name = s.src[start:end]
		nameRange = span(start, end)
	}

	if s.cursor.NextIs(token.Semicolon) {
		end = s.take().End
	}

	return s.factory.Declaration(name, nameRange, value, span(start, end))
}

// mixinDeclaration builds a declaration whose value is the block that
// follows text ending in a colon.
func (s *state) mixinDeclaration(r run) ast.Rule {
	nameStart, nameEnd := s.cursor.Tokenizer().TrimSpan(r.first.Start, r.last.Start)
	rulelist := s.parseRulelist()
	end := rulelist.Range.End

	s.skipWhitespace()
	if s.cursor.NextIs(token.Semicolon) {
		end = s.take().End
	}

	return s.factory.Declaration(
		s.src[nameStart:nameEnd],
		span(nameStart, nameEnd),
		rulelist,
		span(r.first.Start, end),
	)
}

func (s *state) ruleset(r run, brace token.Token) ast.Rule {
	start := r.start(brace.Start)
	selectorEnd := start
	if r.hasTokens {
		selectorEnd = r.last.End
	}
	rulelist := s.parseRulelist()
	return s.factory.Ruleset(
		s.src[start:selectorEnd],
		span(start, selectorEnd),
		rulelist,
		span(start, rulelist.Range.End),
	)
}

// parseRulelist parses a braced block. The cursor must be on "{". An
// unclosed block ends with the input.
func (s *state) parseRulelist() *ast.Rulelist {
	open := s.take()
	rules := s.parseRules(true)
	if s.cursor.NextIs(token.CloseBrace) {
		s.take()
	}
	return s.factory.Rulelist(rules, span(open.Start, s.end))
}

func (s *state) parseAtRule() ast.Rule {
	at := s.take()

	nameStart := at.End
	for s.cursor.NextIs(token.Word) {
		s.take()
	}
	name := s.src[nameStart:s.end]
	nameRange := span(nameStart, s.end)

	params := s.accumulate()
	if params.open {
		return s.discard(at.Start, params.last.End)
	}

	var (
		parameters      string
		parametersRange *ast.Range
	)
	if params.hasTokens {
		parameters = s.cursor.Slice(params.first, params.last)
		rng := span(params.first.Start, params.last.End)
		parametersRange = &rng
	}

	var rulelist *ast.Rulelist
	end := nameRange.End
	if params.hasTokens {
		end = params.last.End
	}
	switch {
	case s.cursor.NextIs(token.OpenBrace):
		rulelist = s.parseRulelist()
		end = rulelist.Range.End
	case s.cursor.NextIs(token.Semicolon):
		end = s.take().End
	}

	return s.factory.AtRule(name, nameRange, parameters, parametersRange, rulelist, span(at.Start, end))
}

func span(start, end int) ast.Range {
	return ast.Range{Start: start, End: end}
}
