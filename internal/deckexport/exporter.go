// Package deckexport writes a finished card sample as a text list.
package deckexport

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ramonehamilton/beejlander/internal/cards/collection"
)

// DefaultPath is where a sample is written when no path is configured.
const DefaultPath = "cards.txt"

// ExportFormat represents the format to export the sample in.
type ExportFormat string

const (
	FormatPlainText ExportFormat = "plaintext" // Simple text list (4x Card Name)
	FormatArena     ExportFormat = "arena"     // MTGA Arena import (4 Card Name)
	FormatMTGO      ExportFormat = "mtgo"      // MTGO format
	FormatJSON      ExportFormat = "json"      // Array of card objects
	FormatCSV       ExportFormat = "csv"       // name,count,mana_value,type_line
)

// ParseFormat returns the ExportFormat named by s. An empty string selects
// plaintext.
func ParseFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPlainText, nil
	case FormatPlainText, FormatArena, FormatMTGO, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// ExportOptions controls export behavior.
type ExportOptions struct {
	Format        ExportFormat
	IncludeHeader bool   // Leading "// <Title>" comment line (plaintext only)
	Title         string // Also names the suggested file for non-plaintext formats
}

// Export represents an exported sample.
type Export struct {
	Content  string       // The exported text
	Format   ExportFormat // The format used
	Filename string       // Suggested filename
}

// Render exports a sample to the specified format. Nil options select
// plaintext without a header.
func Render(cards *collection.Collection, options *ExportOptions) (*Export, error) {
	if cards == nil {
		return nil, fmt.Errorf("collection is nil")
	}
	if options == nil {
		options = &ExportOptions{Format: FormatPlainText}
	}

	format := options.Format
	if format == "" {
		format = FormatPlainText
	}

	var content string
	var filename string

	switch format {
	case FormatPlainText:
		content = exportPlainText(cards, options)
		filename = DefaultPath
	case FormatArena:
		content = exportCounted(cards)
		filename = fmt.Sprintf("%s.txt", sanitizeFilename(options.Title))
	case FormatMTGO:
		content = exportCounted(cards)
		filename = fmt.Sprintf("%s.dek", sanitizeFilename(options.Title))
	case FormatJSON:
		data, err := exportJSON(cards)
		if err != nil {
			return nil, err
		}
		content = data
		filename = fmt.Sprintf("%s.json", sanitizeFilename(options.Title))
	case FormatCSV:
		data, err := exportCSV(cards)
		if err != nil {
			return nil, err
		}
		content = data
		filename = fmt.Sprintf("%s.csv", sanitizeFilename(options.Title))
	default:
		return nil, fmt.Errorf("unsupported export format: %s", options.Format)
	}

	return &Export{
		Content:  content,
		Format:   format,
		Filename: filename,
	}, nil
}

// Save writes the content to path, or to Filename when path is empty,
// replacing any existing file. It returns the path written.
func (e *Export) Save(path string) (string, error) {
	if path == "" {
		path = e.Filename
	}
	if err := os.WriteFile(path, []byte(e.Content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// WriteFile renders the sample and saves it to path. An empty path selects
// the suggested filename for the format and title.
func WriteFile(path string, cards *collection.Collection, options *ExportOptions) (string, error) {
	export, err := Render(cards, options)
	if err != nil {
		return "", err
	}
	return export.Save(path)
}

// exportPlainText writes one "<count>x <name>" line per card.
func exportPlainText(cards *collection.Collection, options *ExportOptions) string {
	var sb strings.Builder

	if options.IncludeHeader && options.Title != "" {
		sb.WriteString(fmt.Sprintf("// %s\n\n", options.Title))
	}

	for count, name := range cards.Counts() {
		sb.WriteString(fmt.Sprintf("%dx %s\n", count, name))
	}

	return sb.String()
}

// exportCounted writes "<count> <name>" lines, which Arena and MTGO both import.
func exportCounted(cards *collection.Collection) string {
	var sb strings.Builder
	for count, name := range cards.Counts() {
		sb.WriteString(fmt.Sprintf("%d %s\n", count, name))
	}
	return sb.String()
}

// cardJSON is one entry of the JSON export.
type cardJSON struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	ManaValue string `json:"mana_value,omitempty"`
	TypeLine  string `json:"type_line"`
}

// exportJSON writes the sample as an indented JSON array sorted by name.
func exportJSON(cards *collection.Collection) (string, error) {
	entries := cards.Entries()
	out := make([]cardJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, cardJSON{
			Name:      e.Record.Name,
			Count:     e.Count,
			ManaValue: e.Record.ManaValue,
			TypeLine:  e.Record.TypeLine,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// exportCSV writes the sample with a header row.
func exportCSV(cards *collection.Collection) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"name", "count", "mana_value", "type_line"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, e := range cards.Entries() {
		row := []string{e.Record.Name, strconv.Itoa(e.Count), e.Record.ManaValue, e.Record.TypeLine}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.String(), nil
}

// sanitizeFilename removes invalid characters from filename.
func sanitizeFilename(name string) string {
	// Replace invalid filename characters with underscore
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	// Trim spaces and limit length
	result = strings.TrimSpace(result)
	if len(result) > 100 {
		result = result[:100]
	}
	if result == "" {
		result = "cards"
	}
	return result
}
