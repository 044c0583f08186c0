package ast

// Factory constructs the nodes of a syntax tree. The parser never allocates
// nodes itself, so a custom Factory can observe or rewrite every node as it
// is built. Embed DefaultFactory to override only some constructors.
type Factory interface {
	Stylesheet(rules []Rule, rng Range) *Stylesheet
	AtRule(name string, nameRange Range, params string, paramsRange *Range, rulelist *Rulelist, rng Range) *AtRule
	Comment(value string, rng Range) *Comment
	Rulelist(rules []Rule, rng Range) *Rulelist
	Ruleset(selector string, selectorRange Range, rulelist *Rulelist, rng Range) *Ruleset
	Declaration(name string, nameRange Range, value Value, rng Range) *Declaration
	Expression(text string, rng Range) *Expression
	Discarded(text string, rng Range) *Discarded
}

// DefaultFactory builds plain nodes from its arguments.
type DefaultFactory struct{}

var _ Factory = DefaultFactory{}

func (DefaultFactory) Stylesheet(rules []Rule, rng Range) *Stylesheet {
	return &Stylesheet{Rules: rules, Range: rng}
}

func (DefaultFactory) AtRule(name string, nameRange Range, params string, paramsRange *Range, rulelist *Rulelist, rng Range) *AtRule {
	return &AtRule{
		Name:            name,
		NameRange:       nameRange,
		Parameters:      params,
		ParametersRange: paramsRange,
		Rulelist:        rulelist,
		Range:           rng,
	}
}

func (DefaultFactory) Comment(value string, rng Range) *Comment {
	return &Comment{Value: value, Range: rng}
}

func (DefaultFactory) Rulelist(rules []Rule, rng Range) *Rulelist {
	return &Rulelist{Rules: rules, Range: rng}
}

func (DefaultFactory) Ruleset(selector string, selectorRange Range, rulelist *Rulelist, rng Range) *Ruleset {
	return &Ruleset{Selector: selector, SelectorRange: selectorRange, Rulelist: rulelist, Range: rng}
}

func (DefaultFactory) Declaration(name string, nameRange Range, value Value, rng Range) *Declaration {
	return &Declaration{Name: name, NameRange: nameRange, Value: value, Range: rng}
}

func (DefaultFactory) Expression(text string, rng Range) *Expression {
	return &Expression{Text: text, Range: rng}
}

func (DefaultFactory) Discarded(text string, rng Range) *Discarded {
	return &Discarded{Text: text, Range: rng}
}
