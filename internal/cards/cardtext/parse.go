// Package cardtext parses Scryfall's plain-text card format.
//
// A text response looks like:
//
//	Lightning Bolt {R}
//	Instant
//	Lightning Bolt deals 3 damage to any target.
//
// The first line is the card name, followed by the mana cost unless the card
// has none. The second line is the type line. Anything after that is rules
// text.
package cardtext

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// landPattern recognises type lines such as "Land", "Snow Land" or
// "Basic Land — Forest". Lands have no mana cost on the name line.
var landPattern = regexp.MustCompile(`(?i)(\w+\s{1})?(l{1})and(\s{1}.+)?`)

// Record is a parsed card.
type Record struct {
	Name      string // trimmed; the deduplication key
	ManaValue string // empty when the name line carries no cost
	TypeLine  string
	Text      string // rules text, possibly empty
}

// ParseError reports a malformed text response.
type ParseError struct {
	Reason string
	Input  string
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed card text (%s): %q", e.Reason, truncate(e.Input, 80))
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsLand reports whether a type line describes a land.
func IsLand(typeLine string) bool {
	return landPattern.MatchString(typeLine)
}

// Parse turns one text response into a Record. A single trailing line
// terminator does not start another line.
func Parse(raw string) (Record, error) {
	body := strings.TrimSuffix(raw, "\n")
	body = strings.TrimSuffix(body, "\r")
	lines := strings.Split(body, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	if len(lines) < 2 {
		return Record{}, &ParseError{Reason: "fewer than two lines", Input: raw}
	}

	nameLine := strings.TrimSpace(lines[0])
	if nameLine == "" {
		return Record{}, &ParseError{Reason: "empty name line", Input: raw}
	}
	typeLine := lines[1]

	record := Record{
		TypeLine: typeLine,
		Text:     strings.TrimSpace(strings.Join(lines[2:], "\n")),
	}

	tokens := strings.Split(nameLine, " ")
	switch {
	case len(tokens) == 1:
		record.Name = nameLine
	case IsLand(typeLine):
		record.Name = strings.Join(tokens, " ")
	default:
		record.Name = strings.TrimSpace(strings.Join(tokens[:len(tokens)-1], " "))
		record.ManaValue = tokens[len(tokens)-1]
	}

	if record.Name == "" {
		return Record{}, &ParseError{Reason: "empty card name", Input: raw}
	}

	return record, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
