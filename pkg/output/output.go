// Package output provides terminal rendering helpers for the repogen CLI:
// a shared lipgloss style set, secret masking, and structured object output
// in JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var (
	Title   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	Section = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	Value   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15"))
	Accent  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE"))
	Dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	Success = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	Failure = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F87171"))
)

// Rule returns a dim horizontal divider.
func Rule() string {
	return Dim.Render(strings.Repeat("─", 50))
}

// MaskSecret renders a secret as its first characters followed by "***".
// At most eight leading characters are kept.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	n := len(secret)
	if n > 8 {
		n = 8
	}
	return secret[:n] + "***"
}

// Field renders a "label: value" line, dimming absent values.
func Field(label, value string) string {
	if value == "" {
		return fmt.Sprintf("  %s: %s", label, Dim.Render("not set"))
	}
	return fmt.Sprintf("  %s: %s", label, Value.Render(value))
}

// Bool renders a yes/no value.
func Bool(value bool) string {
	if value {
		return Success.Render("yes")
	}
	return Value.Render("no")
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func WriteObject(w io.Writer, format Format, obj any) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
