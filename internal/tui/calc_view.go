package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/boxect/internal/engine"
)

// Layout widths of the form.
const (
	fieldLabelWidth  = 28
	fieldValueWidth  = 12
	resultLabelWidth = 26
	resultValueWidth = 12
	separatorWidth   = 56
)

// View renders the current view.
func (m *CalcModel) View() string {
	if m.state == CalcStateQuitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("RSC Edge Crush Test Calculator"))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderForm())
	sb.WriteString("\n")
	sb.WriteString(RenderResult(m.result, m.err))
	sb.WriteString("\n\n")
	sb.WriteString(RenderCalcHelp(m.state == CalcStateEditing))

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(sb.String())
	}
	return sb.String()
}

// renderForm renders one row per input with the focused row marked.
func (m *CalcModel) renderForm() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Inputs"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")

	for i, field := range m.fields {
		focused := i == m.focusedRow
		editing := focused && m.state == CalcStateEditing

		switch {
		case editing:
			sb.WriteString("> ")
		case focused:
			sb.WriteString("→ ")
		default:
			sb.WriteString("  ")
		}

		label := fmt.Sprintf("%-*s", fieldLabelWidth, engine.FieldLabel(field))
		if focused {
			sb.WriteString(focusedStyle.Render(label))
		} else {
			sb.WriteString(labelStyle.Render(label))
		}

		if editing {
			sb.WriteString(m.editor.View())
		} else {
			sb.WriteString(m.renderValue(field, focused))
		}
		sb.WriteString("\n")

		if editing && m.editErr != nil {
			sb.WriteString("  ")
			sb.WriteString(errorStyle.Render(m.editErr.Error()))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m *CalcModel) renderValue(field string, focused bool) string {
	value, _ := m.inputs.Get(field)
	original, _ := m.original.Get(field)

	text := fmt.Sprintf("%-*s", fieldValueWidth, value)
	if engine.Options(field) != nil && focused {
		text = fmt.Sprintf("‹ %s ›", value)
	}

	var out string
	if value != original {
		out = modifiedStyle.Render(text)
	} else {
		out = valueStyle.Render(text)
	}
	if unit := engine.FieldUnit(field); unit != "" {
		out += " " + mutedStyle.Render(unit)
	}
	return out
}

// RenderResult renders the results panel. The compressive strength of the
// governing case and the recommended ECT are highlighted; validation errors
// replace the panel with one line per offending field.
func RenderResult(result engine.Result, err error) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Results"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")

	if err != nil {
		for _, e := range unjoin(err) {
			sb.WriteString("  ")
			sb.WriteString(errorStyle.Render(e.Error()))
			sb.WriteString("\n")
		}
		return strings.TrimSuffix(sb.String(), "\n")
	}

	governingKey := "CS_d"
	if result.Governing == engine.CaseStorage {
		governingKey = "CS_s"
	}

	for _, line := range result.Lines() {
		label := fmt.Sprintf("  %-*s", resultLabelWidth, line.Label)
		value := fmt.Sprintf("%*s %s", resultValueWidth, line.Text, line.Unit)
		switch line.Key {
		case "ect":
			sb.WriteString(ectStyle.Render(label + value))
		case governingKey:
			sb.WriteString(governingStyle.Render(label + value + "  ◀ governs"))
		default:
			sb.WriteString(labelStyle.Render(label))
			sb.WriteString(valueStyle.Render(value))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  Governing case: %s", result.Governing)))
	if result.IsDegenerate() {
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("  No recommendation: " + result.NoRecommendationReason()))
	}
	return sb.String()
}

// unjoin splits an errors.Join result into its parts.
func unjoin(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}

// RenderCalcHelp renders the keyboard shortcut help text.
func RenderCalcHelp(editing bool) string {
	shortcuts := []string{
		"↑/↓: Navigate",
		"←/→: Change option",
		"Enter: Edit value",
		"r: Reset",
		"q: Quit",
	}
	if editing {
		shortcuts = []string{"Enter: Apply", "Esc: Cancel"}
	}
	return mutedStyle.Render(strings.Join(shortcuts, " | "))
}
