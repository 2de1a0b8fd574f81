// Package ast defines the query state accumulated by the fluent builder and
// consumed by the SQL generator.
package ast

// Connective joins a predicate to the clause before it.
type Connective string

const (
	And Connective = "AND"
	Or  Connective = "OR"
)

// PredicateType tags a predicate node.
type PredicateType string

const (
	Basic          PredicateType = "basic"
	In             PredicateType = "in"
	Null           PredicateType = "null"
	Column         PredicateType = "column"
	Between        PredicateType = "between"
	BetweenColumns PredicateType = "betweenColumns"
	JSONContains   PredicateType = "jsonContains"
	DatePart       PredicateType = "datePart"
	Nested         PredicateType = "nested"
	Exists         PredicateType = "exists"
	Raw            PredicateType = "raw"
)

// DateKind selects the date component a DatePart predicate compares.
type DateKind string

const (
	KindDate  DateKind = "date"
	KindTime  DateKind = "time"
	KindDay   DateKind = "day"
	KindMonth DateKind = "month"
	KindYear  DateKind = "year"
)

// JoinType is the SQL join family.
type JoinType string

const (
	InnerJoin JoinType = "INNER"
	LeftJoin  JoinType = "LEFT"
	RightJoin JoinType = "RIGHT"
	CrossJoin JoinType = "CROSS"
)

// Predicate is one WHERE condition node. Which fields are meaningful depends
// on Type. The connective of the first predicate in a list is never emitted.
type Predicate struct {
	Type       PredicateType
	Connective Connective
	Negated    bool

	Column   string
	Operator string
	Value    interface{}

	// In and the expanded JSONContains form carry multiple values.
	Values []interface{}

	// Column comparison.
	SecondColumn string

	// Between bounds, value or column form.
	Start       interface{}
	End         interface{}
	StartColumn string
	EndColumn   string

	// DatePart component.
	Kind DateKind

	// Nested group or correlated sub-query state.
	Sub *QueryState

	// Raw SQL fragment, never quoted by the compiler.
	SQL string
}

// Join is a join specification in registration order.
type Join struct {
	Type     JoinType
	Table    string
	First    string
	Operator string
	Second   string
}

// Order is one ORDER BY entry.
type Order struct {
	Column string
	Desc   bool
}

// QueryState is the full accumulated state of one fluent chain.
//
// Bindings are kept in per-clause buckets so the flattened list always
// matches the compiler's clause order (WHERE before HAVING) regardless of
// the order the caller chained the methods in.
type QueryState struct {
	Table      string
	Columns    []string
	RawSelects []string
	Distinct   bool

	Predicates []Predicate
	Joins      []Join
	Groups     []string
	Havings    []Predicate
	Orders     []Order

	Limit  *int
	Offset *int

	WhereBindings  []interface{}
	HavingBindings []interface{}
}

// NewQueryState creates an empty state for a table. Sub-query and group
// states use an empty table name.
func NewQueryState(table string) *QueryState {
	return &QueryState{Table: table}
}

// Bindings returns the positional bindings flattened in clause order.
func (s *QueryState) Bindings() []interface{} {
	out := make([]interface{}, 0, len(s.WhereBindings)+len(s.HavingBindings))
	out = append(out, s.WhereBindings...)
	out = append(out, s.HavingBindings...)
	return out
}

// Clone deep-copies the state so a derived computation (count pass,
// aggregate, cursor lookahead) never mutates the original chain.
func (s *QueryState) Clone() *QueryState {
	if s == nil {
		return nil
	}
	c := &QueryState{
		Table:    s.Table,
		Distinct: s.Distinct,
	}
	c.Columns = append([]string(nil), s.Columns...)
	c.RawSelects = append([]string(nil), s.RawSelects...)
	c.Groups = append([]string(nil), s.Groups...)
	c.Joins = append([]Join(nil), s.Joins...)
	c.Orders = append([]Order(nil), s.Orders...)
	c.Predicates = clonePredicates(s.Predicates)
	c.Havings = clonePredicates(s.Havings)
	c.WhereBindings = append([]interface{}(nil), s.WhereBindings...)
	c.HavingBindings = append([]interface{}(nil), s.HavingBindings...)
	if s.Limit != nil {
		v := *s.Limit
		c.Limit = &v
	}
	if s.Offset != nil {
		v := *s.Offset
		c.Offset = &v
	}
	return c
}

func clonePredicates(preds []Predicate) []Predicate {
	if preds == nil {
		return nil
	}
	out := make([]Predicate, len(preds))
	for i, p := range preds {
		p.Values = append([]interface{}(nil), p.Values...)
		p.Sub = p.Sub.Clone()
		out[i] = p
	}
	return out
}
