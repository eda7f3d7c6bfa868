package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Status of a deployment phase
type Status string

const (
	StatusSuccess Status = "success" // Phase completed
	StatusError   Status = "error"   // Phase failed
	StatusPending Status = "pending" // Dry run, phase not executed
	StatusSkipped Status = "skipped" // Phase had nothing to do
)

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusSuccess:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case StatusPending:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// DeployStatus describes one deployment run for rendering. The CLI fills
// it from the pipeline result; for dry runs the counts describe what
// would happen.
type DeployStatus struct {
	Environment string
	Source      string
	Destination string
	WorkDir     string // post-deploy working directory
	DryRun      bool

	// CreatedDest is set when the destination did not exist and the
	// reconcile phase created it instead of emptying it.
	CreatedDest bool

	PreDeploy  []string // pre-deploy command lines
	PostDeploy []string // post-deploy command lines

	Removed []string // destination entries removed by reconcile
	Kept    []string // destination entries preserved by the keep list

	FilesCopied int
	DirsCopied  int
}

// phaseSummary is one rendered line of a deployment summary.
type phaseSummary struct {
	status Status
	phase  string
	text   string
}

// phaseSummaries builds the four phase lines for this run.
func (ds DeployStatus) phaseSummaries() []phaseSummary {
	status := StatusSuccess
	if ds.DryRun {
		status = StatusPending
	}

	var phases []phaseSummary

	if len(ds.PreDeploy) == 0 {
		phases = append(phases, phaseSummary{StatusSkipped, "pre-deploy", "no commands"})
	} else {
		text := verb(ds.DryRun, "ran", "would run") + " " +
			countNoun(len(ds.PreDeploy), "command", "commands")
		phases = append(phases, phaseSummary{status, "pre-deploy", text})
	}

	var reconcileText string
	if ds.CreatedDest {
		reconcileText = verb(ds.DryRun,
			"created the destination directory",
			"would create the destination directory")
	} else {
		reconcileText = verb(ds.DryRun, "removed", "would remove") + " " +
			countNoun(len(ds.Removed), "entry", "entries")
		if len(ds.Kept) > 0 {
			reconcileText += ", " + verb(ds.DryRun, "kept", "keeping") + " " +
				countNoun(len(ds.Kept), "entry", "entries")
		}
	}
	phases = append(phases, phaseSummary{status, "reconcile", reconcileText})

	copyText := verb(ds.DryRun, "copied", "would copy") + " " +
		countNoun(ds.FilesCopied, "file", "files")
	if ds.DirsCopied > 0 {
		copyText += ", " + countNoun(ds.DirsCopied, "directory", "directories")
	}
	phases = append(phases, phaseSummary{status, "copy", copyText})

	if len(ds.PostDeploy) == 0 {
		phases = append(phases, phaseSummary{StatusSkipped, "post-deploy", "no commands"})
	} else {
		text := verb(ds.DryRun, "ran", "would run") + " " +
			countNoun(len(ds.PostDeploy), "command", "commands")
		if ds.WorkDir != "" {
			text += " in " + ds.WorkDir
		}
		phases = append(phases, phaseSummary{status, "post-deploy", text})
	}

	return phases
}

// Overall reduces the run's phase statuses to the single outcome shown
// at the end of a summary.
func (ds DeployStatus) Overall() Status {
	phases := ds.phaseSummaries()
	statuses := make([]Status, len(phases))
	for i, ps := range phases {
		statuses[i] = ps.status
	}
	return AggregateStatus(statuses)
}

// RenderPhaseLine renders a single styled phase summary line.
func RenderPhaseLine(status Status, phase, text string) string {
	badge := StatusStyle(status).Sprint(fmt.Sprintf("%-11s", phase))
	return fmt.Sprintf("    %s : %s", badge, text)
}

// AggregateStatus determines the overall status of a run from its phase
// statuses. Errors dominate; a run where nothing executed stays pending;
// skipped phases never change the outcome on their own.
func AggregateStatus(statuses []Status) Status {
	hasError := false
	hasSuccess := false
	hasPending := false

	for _, s := range statuses {
		switch s {
		case StatusError:
			hasError = true
		case StatusSuccess:
			hasSuccess = true
		case StatusPending:
			hasPending = true
		}
	}

	switch {
	case hasError:
		return StatusError
	case hasPending && !hasSuccess:
		return StatusPending
	case hasSuccess:
		return StatusSuccess
	default:
		return StatusSkipped
	}
}

// overallText is the closing line of a deployment summary.
func overallText(s Status) string {
	switch s {
	case StatusError:
		return "deployment failed"
	case StatusPending:
		return "dry run: nothing was changed and no commands were run"
	case StatusSkipped:
		return "nothing to deploy"
	default:
		return "deployment complete"
	}
}

func verb(dryRun bool, past, conditional string) string {
	if dryRun {
		return conditional
	}
	return past
}

func countNoun(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}
