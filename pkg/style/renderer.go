package style

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/klaus-strele/shipshape/pkg/errors"
)

// Renderer defines the interface for rendering various output types
type Renderer interface {
	RenderPhaseStart(phase, detail string) string
	RenderCommand(index, total int, command string) string
	RenderDeployStatus(ds DeployStatus) string
	RenderEnvironments(names []string, selected string) string
	RenderError(err error) string
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderPhaseStart renders the marker printed when a phase begins.
func (r *TerminalRenderer) RenderPhaseStart(phase, detail string) string {
	marker := phaseAccent(phase).Render("==>")
	line := fmt.Sprintf("%s %s", marker, Bold(phase))
	if detail != "" {
		line += " " + MutedStyle.Render(detail)
	}
	return line
}

// RenderCommand renders one command line about to run within a phase.
func (r *TerminalRenderer) RenderCommand(index, total int, command string) string {
	counter := MutedStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	return fmt.Sprintf("  %s %s", counter, CodeStyle.Render(command))
}

// RenderDeployStatus renders the per-phase summary of a run. For dry
// runs it also lists the entries reconcile would touch and the commands
// that would execute, framed as a plan.
func (r *TerminalRenderer) RenderDeployStatus(ds DeployStatus) string {
	var result strings.Builder

	if ds.DryRun {
		result.WriteString(TitleStyle.Render("Deployment plan") + "\n")
	} else {
		result.WriteString(TitleStyle.Render("Deployment summary") + "\n")
	}

	target := fmt.Sprintf("%s → %s",
		PathStyle.Render(ds.Source),
		PathStyle.Render(ds.Destination))
	if ds.Environment != "" {
		target = fmt.Sprintf("%s: %s", Bold(ds.Environment), target)
	}
	result.WriteString(Indent(target, 1) + "\n\n")

	for _, ps := range ds.phaseSummaries() {
		result.WriteString(RenderPhaseLine(ps.status, ps.phase, ps.text) + "\n")
	}

	if ds.DryRun {
		if plan := r.renderPlanDetail(ds); plan != "" {
			result.WriteString("\n" + BoxStyle.Render(plan) + "\n")
		}
	}

	overall := ds.Overall()
	result.WriteString("\n" + overallStyle(overall).Render(overallText(overall)))

	return strings.TrimRight(result.String(), "\n")
}

// renderPlanDetail lists what a dry run would do entry by entry.
func (r *TerminalRenderer) renderPlanDetail(ds DeployStatus) string {
	var result strings.Builder

	if len(ds.Removed) > 0 {
		result.WriteString(SubtitleStyle.Render("would remove") + "\n")
		for _, name := range ds.Removed {
			result.WriteString(fmt.Sprintf("  %s %s\n", PendingIndicator, RemovedStyle.Render(name)))
		}
	}
	if len(ds.Kept) > 0 {
		result.WriteString(SubtitleStyle.Render("keeping") + "\n")
		for _, name := range ds.Kept {
			result.WriteString(fmt.Sprintf("  %s %s\n", SuccessIndicator, KeptStyle.Render(name)))
		}
	}
	if len(ds.PreDeploy) > 0 {
		result.WriteString(SubtitleStyle.Render("pre-deploy commands") + "\n")
		for i, command := range ds.PreDeploy {
			result.WriteString(r.RenderCommand(i+1, len(ds.PreDeploy), command) + "\n")
		}
	}
	if len(ds.PostDeploy) > 0 {
		header := "post-deploy commands"
		if ds.WorkDir != "" {
			header += " " + MutedStyle.Render("(in "+ds.WorkDir+")")
		}
		result.WriteString(SubtitleStyle.Render(header) + "\n")
		for i, command := range ds.PostDeploy {
			result.WriteString(r.RenderCommand(i+1, len(ds.PostDeploy), command) + "\n")
		}
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderEnvironments renders the environment names defined in a config.
func (r *TerminalRenderer) RenderEnvironments(names []string, selected string) string {
	if len(names) == 0 {
		return MutedStyle.Render("No environments defined")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render("Environments") + "\n")

	for _, name := range names {
		line := fmt.Sprintf("%s %s", InfoIndicator, name)
		if name == selected {
			line = fmt.Sprintf("%s %s %s", SuccessIndicator, Bold(name), MutedStyle.Render(Italic("(selected)")))
		}
		result.WriteString(ListItemStyle.Render(line) + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error message, surfacing the error code and
// its details when the error carries them.
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	var shipErr *errors.ShipshapeError
	if !stderrors.As(err, &shipErr) {
		return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, ErrorStyle.Render(err.Error()))
	}

	message := shipErr.Message
	if shipErr.Wrapped != nil {
		message += ": " + shipErr.Wrapped.Error()
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s Error %s: %s",
		pterm.Error.Prefix.Text,
		ErrorStyle.Render("["+string(shipErr.Code)+"]"),
		message))

	for _, key := range sortedDetailKeys(shipErr.Details) {
		detail := fmt.Sprintf("%s: %v", key, shipErr.Details[key])
		result.WriteString("\n" + Indent(MutedStyle.Render(detail), 2))
	}

	return result.String()
}

// phaseAccent picks the accent style for a phase marker.
func phaseAccent(phase string) lipgloss.Style {
	switch phase {
	case "pre-deploy", "post-deploy":
		return HookStyle
	default:
		return SyncStyle
	}
}

// overallStyle picks the style for the summary's closing status line.
func overallStyle(s Status) lipgloss.Style {
	switch s {
	case StatusError:
		return ErrorStyle
	case StatusPending:
		return WarningStyle
	case StatusSkipped:
		return MutedStyle
	default:
		return SuccessStyle
	}
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

func (r *PlainRenderer) RenderPhaseStart(phase, detail string) string {
	line := "==> " + phase
	if detail != "" {
		line += " " + detail
	}
	return line
}

func (r *PlainRenderer) RenderCommand(index, total int, command string) string {
	return fmt.Sprintf("  [%d/%d] %s", index, total, command)
}

func (r *PlainRenderer) RenderDeployStatus(ds DeployStatus) string {
	var result strings.Builder

	if ds.DryRun {
		result.WriteString("Deployment plan\n")
	} else {
		result.WriteString("Deployment summary\n")
	}

	if ds.Environment != "" {
		result.WriteString(fmt.Sprintf("  %s: %s -> %s\n\n", ds.Environment, ds.Source, ds.Destination))
	} else {
		result.WriteString(fmt.Sprintf("  %s -> %s\n\n", ds.Source, ds.Destination))
	}

	for _, ps := range ds.phaseSummaries() {
		result.WriteString(fmt.Sprintf("    %-11s : %s\n", ps.phase, ps.text))
	}

	if ds.DryRun {
		for _, name := range ds.Removed {
			result.WriteString(fmt.Sprintf("  would remove: %s\n", name))
		}
		for _, name := range ds.Kept {
			result.WriteString(fmt.Sprintf("  keeping: %s\n", name))
		}
		if len(ds.PreDeploy) > 0 {
			result.WriteString("  pre-deploy commands:\n")
			for i, command := range ds.PreDeploy {
				result.WriteString("  " + r.RenderCommand(i+1, len(ds.PreDeploy), command) + "\n")
			}
		}
		if len(ds.PostDeploy) > 0 {
			header := "  post-deploy commands:\n"
			if ds.WorkDir != "" {
				header = fmt.Sprintf("  post-deploy commands (in %s):\n", ds.WorkDir)
			}
			result.WriteString(header)
			for i, command := range ds.PostDeploy {
				result.WriteString("  " + r.RenderCommand(i+1, len(ds.PostDeploy), command) + "\n")
			}
		}
	}

	result.WriteString("\n" + overallText(ds.Overall()))

	return strings.TrimRight(result.String(), "\n")
}

func (r *PlainRenderer) RenderEnvironments(names []string, selected string) string {
	if len(names) == 0 {
		return "No environments defined"
	}

	var result strings.Builder
	result.WriteString("Environments:\n")
	for _, name := range names {
		if name == selected {
			result.WriteString(fmt.Sprintf("  - %s (selected)\n", name))
		} else {
			result.WriteString(fmt.Sprintf("  - %s\n", name))
		}
	}

	return strings.TrimRight(result.String(), "\n")
}

func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	var shipErr *errors.ShipshapeError
	if !stderrors.As(err, &shipErr) {
		return fmt.Sprintf("Error: %s", err.Error())
	}

	message := shipErr.Message
	if shipErr.Wrapped != nil {
		message += ": " + shipErr.Wrapped.Error()
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Error [%s]: %s", shipErr.Code, message))
	for _, key := range sortedDetailKeys(shipErr.Details) {
		result.WriteString(fmt.Sprintf("\n    %s: %v", key, shipErr.Details[key]))
	}

	return result.String()
}

func sortedDetailKeys(details map[string]interface{}) []string {
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
