package mcp

import (
	"fmt"
	"strings"

	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

const defaultMaxTokens = 4000

// Verbosity controls how much detail is included in pal and combination lines.
type Verbosity string

const (
	VerbositySummary  Verbosity = "summary"
	VerbosityStandard Verbosity = "standard"
	VerbosityFull     Verbosity = "full"
)

// ParseVerbosity returns a Verbosity from a string, defaulting to standard.
func ParseVerbosity(s string) Verbosity {
	switch strings.ToLower(s) {
	case "summary":
		return VerbositySummary
	case "full":
		return VerbosityFull
	default:
		return VerbosityStandard
	}
}

// ResponseBuilder constructs token-budgeted Markdown responses for MCP tools.
type ResponseBuilder struct {
	buf           strings.Builder
	tokenEstimate int
	maxTokens     int
	truncated     bool
	itemCount     int
}

// NewResponseBuilder creates a builder with the given token budget.
// If maxTokens <= 0, defaultMaxTokens is used.
func NewResponseBuilder(maxTokens int) *ResponseBuilder {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &ResponseBuilder{maxTokens: maxTokens}
}

// AddHeader writes a header line to the response. Headers are never dropped.
func (rb *ResponseBuilder) AddHeader(text string) {
	line := text + "\n\n"
	rb.buf.WriteString(line)
	rb.tokenEstimate += len(line) / 4
}

// AddLine writes a single line to the response, returning false if budget exceeded.
func (rb *ResponseBuilder) AddLine(text string) bool {
	return rb.write(text + "\n")
}

// AddSection writes a section with a heading.
func (rb *ResponseBuilder) AddSection(heading string, content string) bool {
	return rb.write(fmt.Sprintf("### %s\n%s\n\n", heading, content))
}

// AddPalCard renders a pal at the requested verbosity.
func (rb *ResponseBuilder) AddPalCard(p models.Pal, special bool, verbosity Verbosity) bool {
	if !rb.write(formatPalCard(p, special, verbosity)) {
		return false
	}
	rb.itemCount++
	return true
}

// AddCombination renders one numbered search result.
func (rb *ResponseBuilder) AddCombination(n int, c models.Combination, verbosity Verbosity) bool {
	if !rb.write(FormatCombination(n, c, verbosity)) {
		return false
	}
	rb.itemCount++
	return true
}

func (rb *ResponseBuilder) write(text string) bool {
	cost := len(text) / 4
	if rb.tokenEstimate+cost > rb.maxTokens {
		rb.truncated = true
		return false
	}
	rb.buf.WriteString(text)
	rb.tokenEstimate += cost
	return true
}

// Finalize appends truncation notice and returns the final response text.
func (rb *ResponseBuilder) Finalize(totalCount, returnedCount int) string {
	if rb.truncated || returnedCount < totalCount {
		rb.buf.WriteString(fmt.Sprintf(
			"\n---\n*Showing %d of %d results (truncated to ~%d tokens). Use `offset` to paginate or increase `max_response_tokens`.*\n",
			returnedCount, totalCount, rb.maxTokens))
	}
	return rb.buf.String()
}

// TokenEstimate returns the current estimated token count.
func (rb *ResponseBuilder) TokenEstimate() int {
	return rb.tokenEstimate
}

// IsTruncated returns whether the response was truncated.
func (rb *ResponseBuilder) IsTruncated() bool {
	return rb.truncated
}

// ItemCount returns the number of items added.
func (rb *ResponseBuilder) ItemCount() int {
	return rb.itemCount
}

// PalLabel is the inline form of a pal: display name, with the internal name
// in parentheses when they differ.
func PalLabel(p models.Pal) string {
	if p.DisplayName == "" || p.DisplayName == p.Name {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.DisplayName, p.Name)
}

// FormatStep renders "A ♀ + B ♂ → C".
func FormatStep(s models.Step) string {
	return fmt.Sprintf("%s%s + %s%s → %s",
		PalLabel(s.Parent1), sexMark(s.Parent1Sex),
		PalLabel(s.Parent2), sexMark(s.Parent2Sex),
		PalLabel(s.Child))
}

// FormatCombination renders a numbered result line. Two-step chains get one
// indented line per step.
func FormatCombination(n int, c models.Combination, verbosity Verbosity) string {
	var b strings.Builder
	if c.Path == nil {
		fmt.Fprintf(&b, "%d. %s", n, FormatStep(c.Step))
		if verbosity == VerbosityFull {
			fmt.Fprintf(&b, " (ranks %d + %d)", c.Parent1.Rank, c.Parent2.Rank)
		}
		b.WriteByte('\n')
		return b.String()
	}

	fmt.Fprintf(&b, "%d. via **%s**\n", n, PalLabel(c.Path.Step1.Child))
	if verbosity == VerbositySummary {
		return b.String()
	}
	fmt.Fprintf(&b, "   1) %s\n", FormatStep(c.Path.Step1))
	fmt.Fprintf(&b, "   2) %s\n", FormatStep(c.Path.Step2))
	return b.String()
}

func formatPalCard(p models.Pal, special bool, verbosity Verbosity) string {
	var b strings.Builder
	tag := ""
	if special {
		tag = " *(override only)*"
	}

	switch verbosity {
	case VerbositySummary:
		fmt.Fprintf(&b, "- **%s** %s%s\n", PalLabel(p), p.CatalogNumber, tag)
	case VerbosityFull:
		fmt.Fprintf(&b, "**%s** %s%s\n", PalLabel(p), p.CatalogNumber, tag)
		fmt.Fprintf(&b, "  Rank: %d | Priority: %d\n", p.Rank, p.Priority)
		if p.ImageRef != "" {
			fmt.Fprintf(&b, "  Image: `%s`\n", p.ImageRef)
		}
		b.WriteByte('\n')
	default:
		fmt.Fprintf(&b, "**%s** %s%s\n", PalLabel(p), p.CatalogNumber, tag)
		fmt.Fprintf(&b, "  Rank: %d\n\n", p.Rank)
	}
	return b.String()
}

func sexMark(s models.Sex) string {
	switch s {
	case models.SexMale:
		return " ♂"
	case models.SexFemale:
		return " ♀"
	}
	return ""
}
