package color

import (
	"fmt"
	"os"
	"strings"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Bold   = "\033[1m"
)

// Color wraps text in ANSI codes when enabled
type Color struct {
	enabled bool
}

// New creates a Color that is enabled only if requested and the environment allows it
func New(enabled bool) *Color {
	return &Color{enabled: enabled && shouldEnableColor()}
}

// shouldEnableColor honours NO_COLOR (https://no-color.org/) and dumb terminals
func shouldEnableColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	term := os.Getenv("TERM")
	return term != "dumb" && term != ""
}

// Enabled reports whether output will be colored
func (c *Color) Enabled() bool {
	return c.enabled
}

func (c *Color) wrap(code, text string) string {
	if !c.enabled {
		return text
	}
	return code + text + Reset
}

// Add colors additions green
func (c *Color) Add(text string) string { return c.wrap(Green, text) }

// Change colors modifications yellow
func (c *Color) Change(text string) string { return c.wrap(Yellow, text) }

// Destroy colors deletions red
func (c *Color) Destroy(text string) string { return c.wrap(Red, text) }

// Bold makes text bold
func (c *Color) Bold(text string) string { return c.wrap(Bold, text) }

// Cyan colors headers and labels
func (c *Color) Cyan(text string) string { return c.wrap(Cyan, text) }

// PlanSymbol returns the symbol for a plan action
func (c *Color) PlanSymbol(action string) string {
	switch action {
	case "create":
		return c.Add("+")
	case "update":
		return c.Change("~")
	case "delete":
		return c.Destroy("-")
	default:
		return " "
	}
}

func (c *Color) counts(added, modified, dropped int) string {
	parts := []string{
		c.Add(fmt.Sprintf("%d to add", added)),
		c.Change(fmt.Sprintf("%d to modify", modified)),
		c.Destroy(fmt.Sprintf("%d to drop", dropped)),
	}
	return strings.Join(parts, ", ")
}

// FormatSummaryLine formats the counts for one object type
func (c *Color) FormatSummaryLine(objectType string, added, modified, dropped int) string {
	return fmt.Sprintf("  %s: %s", objectType, c.counts(added, modified, dropped))
}

// FormatPlanHeader formats the overall plan header
func (c *Color) FormatPlanHeader(added, modified, dropped int) string {
	return fmt.Sprintf("Plan: %s.", c.counts(added, modified, dropped))
}
