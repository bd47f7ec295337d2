package display

import (
	"fmt"
	"io"

	"github.com/ajxudir/deptherapist/pkg/constants"
	"github.com/fatih/color"
)

// Check descriptions printed before each check runs.
const (
	StepCircular  = "Checking for circular relationships (the codependent kind)..."
	StepConflicts = `Looking for version conflicts (the "he said, she said" of packages)...`
	StepOutdated  = "Checking for outdated packages (emotional baggage from the past)..."
)

// Prescription is the fixed remediation checklist printed under any issues.
var Prescription = []string{
	"Take a deep breath",
	"Run: npm audit fix",
	"Consider deleting node_modules and starting fresh",
	"Maybe talk to a real human? Just a thought.",
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	alertColor   = color.New(color.FgRed, color.Bold)
	healthyColor = color.New(color.FgGreen, color.Bold)
	adviceColor  = color.New(color.FgYellow, color.Bold)
)

// Printer writes the narrative of one session.
//
// A Printer holds no state besides its writer; the zero value is not usable,
// create one with NewPrinter.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
//
// Parameters:
//   - w: destination, normally os.Stdout
//
// Returns:
//   - *Printer: printer ready to use
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Banner opens the session.
//
// Example output:
//
//	<blank line>
//	🧠 DEPENDENCY THERAPIST SESSION STARTING...
//	<blank line>
//	Let's explore your emotional baggage together.
//	<blank line>
func (p *Printer) Banner() {
	_, _ = fmt.Fprintln(p.w)
	_, _ = headingColor.Fprintf(p.w, "%s DEPENDENCY THERAPIST SESSION STARTING...\n", constants.IconBrain)
	_, _ = fmt.Fprintln(p.w)
	_, _ = fmt.Fprintln(p.w, "Let's explore your emotional baggage together.")
	_, _ = fmt.Fprintln(p.w)
}

// MissingManifest explains that there is no package.json to talk about.
func (p *Printer) MissingManifest() {
	_, _ = alertColor.Fprintf(p.w, "%s No package.json found. Are you sure this is a project, or just existential dread?\n", constants.IconError)
}

// Counts prints how many dependencies the manifest declares.
//
// Parameters:
//   - deps: number of entries in dependencies
//   - devDeps: number of entries in devDependencies
func (p *Printer) Counts(deps, devDeps int) {
	_, _ = fmt.Fprintf(p.w, "%s Found %d dependencies and %d dev dependencies.\n", constants.IconPackage, deps, devDeps)
	_, _ = fmt.Fprintln(p.w, "That's a lot of relationships to maintain. No wonder you're stressed.")
	_, _ = fmt.Fprintln(p.w)
}

// Step announces a check before it runs.
//
// Parameters:
//   - description: one of the Step* constants
func (p *Printer) Step(description string) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", constants.IconSearch, description)
}

// Diagnosis prints the issues found, or the clean bill of health.
//
// It performs the following operations:
//   - Prints the diagnosis heading
//   - With no issues, prints the congratulatory message and nothing else
//   - Otherwise prints each issue numbered from 1 in the given order
//   - Follows the issues with the numbered Prescription
//
// Parameters:
//   - issues: issues in detection order
func (p *Printer) Diagnosis(issues []string) {
	_, _ = fmt.Fprintln(p.w)
	_, _ = headingColor.Fprintf(p.w, "%s THERAPIST'S DIAGNOSIS:\n", constants.IconPill)
	_, _ = fmt.Fprintln(p.w)

	if len(issues) == 0 {
		_, _ = healthyColor.Fprintf(p.w, "%s Your dependencies are surprisingly well-adjusted!\n", constants.IconCheckmarkBox)
		_, _ = fmt.Fprintln(p.w, "(This won't last. Enjoy it while you can.)")
		_, _ = fmt.Fprintln(p.w)
		return
	}

	_, _ = alertColor.Fprintf(p.w, "%s ISSUES FOUND:\n", constants.IconSiren)
	_, _ = fmt.Fprintln(p.w)
	for i, issue := range issues {
		_, _ = fmt.Fprintf(p.w, "%d. %s\n", i+1, issue)
	}

	_, _ = fmt.Fprintln(p.w)
	_, _ = adviceColor.Fprintf(p.w, "%s PRESCRIPTION:\n", constants.IconLightbulb)
	for i, step := range Prescription {
		_, _ = fmt.Fprintf(p.w, "%d. %s\n", i+1, step)
	}
	_, _ = fmt.Fprintln(p.w)
}

// Farewell closes the session.
func (p *Printer) Farewell() {
	_, _ = fmt.Fprintln(p.w, "Session complete. That'll be $200. (jk, it's free - unlike your time debugging)")
	_, _ = fmt.Fprintln(p.w)
}
