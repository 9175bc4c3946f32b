// Package query builds the Scryfall search strings used to draw the two
// card pools of a sample: one rare pick and the common/uncommon/land rest.
//
// Queries are modelled as a small tree of nodes (Term, All, Any, Group)
// rendered by a single formatter. Reserved characters of the search grammar
// are percent-encoded in exactly one place, escape, so no clause ever
// formats its own encoding.
package query

import (
	"strconv"
	"strings"
)

const (
	queryPrefix = "q="
	querySuffix = "&format=text"

	// separator joins clauses; Scryfall reads it as a space.
	separator = "+"
	orKeyword = "or"
)

// reserved maps each reserved character of the search grammar to its
// percent-encoding. Characters not listed are passed through.
var reserved = map[rune]string{
	'(': "%28",
	')': "%29",
	'+': "%2B",
	':': "%3A",
	'=': "%3D",
}

// escape percent-encodes the reserved characters of s.
func escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if enc, ok := reserved[r]; ok {
			sb.WriteString(enc)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Operator is a comparison between a search keyword and its value.
type Operator string

const (
	OpIs        Operator = ":"
	OpLess      Operator = "<"
	OpLessEqual Operator = "<="
	OpGreater   Operator = ">"
)

// Node is one element of a search expression.
type Node interface {
	render(sb *strings.Builder)
}

// Term is a single keyword condition such as "-t:land" or "usd<=0.1".
type Term struct {
	Negate bool
	Key    string
	Op     Operator
	Value  string
}

func (t Term) render(sb *strings.Builder) {
	if t.Negate {
		sb.WriteString("-")
	}
	sb.WriteString(escape(t.Key))
	sb.WriteString(escape(string(t.Op)))
	sb.WriteString(escape(t.Value))
}

// All matches cards satisfying every node.
type All []Node

func (a All) render(sb *strings.Builder) {
	for i, n := range a {
		if i > 0 {
			sb.WriteString(separator)
		}
		n.render(sb)
	}
}

// Any matches cards satisfying at least one node. It is always parenthesised.
type Any []Node

func (a Any) render(sb *strings.Builder) {
	sb.WriteString(escape("("))
	for i, n := range a {
		if i > 0 {
			sb.WriteString(separator + orKeyword + separator)
		}
		n.render(sb)
	}
	sb.WriteString(escape(")"))
}

// Group parenthesises a node.
type Group struct {
	Node Node
}

func (g Group) render(sb *strings.Builder) {
	sb.WriteString(escape("("))
	g.Node.render(sb)
	sb.WriteString(escape(")"))
}

// Format renders a node as a complete query string, including the "q="
// prefix and the plain-text format suffix.
func Format(n Node) string {
	var sb strings.Builder
	sb.WriteString(queryPrefix)
	n.render(&sb)
	sb.WriteString(querySuffix)
	return sb.String()
}

// Queries holds the two query strings of a sampling run.
type Queries struct {
	Rare  string // one card above uncommon rarity
	Other string // commons, uncommons and lands
}

// Build returns both query strings for a filter. It is pure: the same
// filter always yields byte-identical queries.
func Build(f FilterConfig) Queries {
	return Queries{
		Rare:  Format(RareExpression(f)),
		Other: Format(OtherExpression(f)),
	}
}

// RareExpression selects cards strictly above uncommon rarity under the
// rare price limit.
func RareExpression(f FilterConfig) Node {
	return append(baseClauses(f),
		Term{Key: "r", Op: OpGreater, Value: "u"},
		priceTerm(f.RarePrice),
	)
}

// OtherExpression selects non-land commons, non-land uncommons and lands
// below rare, each under its own price limit.
func OtherExpression(f FilterConfig) Node {
	notLand := Term{Negate: true, Key: "t", Op: OpIs, Value: "land"}
	return append(baseClauses(f), Any{
		Group{All{notLand, Term{Key: "r", Op: OpIs, Value: "c"}, priceTerm(f.CommonPrice)}},
		Group{All{notLand, Term{Key: "r", Op: OpIs, Value: "u"}, priceTerm(f.UncommonPrice)}},
		Group{All{Term{Key: "t", Op: OpIs, Value: "land"}, Term{Key: "r", Op: OpLess, Value: "r"}, priceTerm(f.LandPrice)}},
	})
}

// baseClauses excludes card types that cannot be played in a normal game,
// and silver-bordered cards unless the filter asks for them.
func baseClauses(f FilterConfig) All {
	clauses := All{
		Term{Negate: true, Key: "t", Op: OpIs, Value: "conspiracy"},
		Term{Negate: true, Key: "t", Op: OpIs, Value: "contraption"},
	}
	if !f.IncludeSilverBordered {
		clauses = append(clauses, Term{Negate: true, Key: "border", Op: OpIs, Value: "silver"})
	}
	return clauses
}

func priceTerm(limit float64) Term {
	return Term{Key: "usd", Op: OpLessEqual, Value: FormatPrice(limit)}
}

// FormatPrice renders a price with the shortest decimal representation that
// round-trips, e.g. 0.1, 0.25 or 2.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
