package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/polyforge/polyforge/internal/errors"
)

// Format selects a report rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeFileMarshal,
			fmt.Sprintf("unknown report format: %s", s)).
			WithSuggestion("Use one of: text, json, yaml")
	}
}

// Write renders the report in the requested format.
func Write(w io.Writer, r *EvidenceReport, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, Render(r))
		return err
	}
}

// Styles holds the lipgloss styles for the text rendering.
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")), // Yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
	}
}

// Render produces the styled terminal view of the report.
func Render(r *EvidenceReport) string {
	return RenderStyled(r, DefaultStyles())
}

// RenderStyled renders with caller-supplied styles.
func RenderStyled(r *EvidenceReport, st Styles) string {
	var b strings.Builder

	b.WriteString(st.Title.Render(fmt.Sprintf("Evidence Report: %s", r.Summary.SpecName)))
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(fmt.Sprintf("run %s  spec %s  hash %.12s",
		r.Summary.RunID, r.Summary.SpecID, r.Summary.SpecHash)))
	b.WriteString("\n\n")

	state := st.Success.Render(strings.ToUpper(r.Summary.State))
	if r.Summary.FailedTargets > 0 || r.Summary.State != "done" {
		state = st.Error.Render(strings.ToUpper(r.Summary.State))
	}
	if r.Summary.Incomplete {
		state += " " + st.Warning.Render("(incomplete)")
	}
	b.WriteString(fmt.Sprintf("%s  %d/%d targets succeeded, %d artifacts, %d variations\n\n",
		state, r.Summary.SucceededTargets, r.Summary.TotalTargets,
		r.Summary.TotalArtifacts, r.Summary.TotalVariations))

	b.WriteString(st.Section.Render("Targets"))
	b.WriteString("\n")
	for _, h := range r.Targets {
		mark := st.Success.Render("✓")
		detail := fmt.Sprintf("%d artifacts, %.0f KB", h.Artifacts, h.BundleSizeKB)
		if !h.Success {
			mark = st.Error.Render("✗")
			detail = h.ErrorKind
			if h.ErrorDetail != "" {
				detail += ": " + h.ErrorDetail
			}
		}
		b.WriteString(fmt.Sprintf("  %s %-20s %-12s %s\n",
			mark, h.TargetID, h.Framework, detail))
		if len(h.FailedAxes) > 0 {
			b.WriteString(st.Warning.Render(
				fmt.Sprintf("      failed axes: %s", strings.Join(h.FailedAxes, ", "))))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if r.Consistency != nil {
		b.WriteString(st.Section.Render("Consistency"))
		b.WriteString("\n")
		for _, m := range r.Consistency.Dimensions {
			line := fmt.Sprintf("  %-16s consistency %.2f  completeness %.2f  accuracy %.2f",
				m.Dimension, m.Consistency, m.Completeness, m.Accuracy)
			if len(m.Variations) > 0 {
				line += st.Warning.Render(fmt.Sprintf("  (%d variations)", len(m.Variations)))
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if r.Optimization != nil && len(r.Optimization.Categories) > 0 {
		b.WriteString(st.Section.Render("Optimization"))
		b.WriteString("\n")
		for _, c := range r.Optimization.Categories {
			b.WriteString(fmt.Sprintf("  %-12s %d techniques, average improvement %.1f%%\n",
				c.Category, len(c.Metrics), c.AverageImprovement))
		}
		if r.Optimization.Summary.BestPerforming != "" {
			b.WriteString(st.Muted.Render(fmt.Sprintf(
				"  best performing: %s   smallest bundle: %s",
				r.Optimization.Summary.BestPerforming,
				r.Optimization.Summary.MostOptimized)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(st.Section.Render("Validation"))
	b.WriteString("\n")
	for _, v := range r.Validation {
		b.WriteString(fmt.Sprintf("  %-20s %d passed, %d failed, confidence %.2f\n",
			v.Axis, v.PassedTargets, v.FailedTargets, v.AverageConfidence))
	}
	b.WriteString("\n")

	b.WriteString(st.Section.Render("Conclusions"))
	b.WriteString("\n")
	for _, c := range r.Conclusions {
		b.WriteString("  • " + c + "\n")
	}
	return b.String()
}
