// Package diagnose runs a dependency therapy session: it loads the manifest,
// runs the checks against a package manager adapter and prints the
// diagnosis.
//
// Checks are independent. Each one may append an issue; issues keep the
// order in which they were found and are never deduplicated.
package diagnose

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ajxudir/deptherapist/pkg/display"
	"github.com/ajxudir/deptherapist/pkg/errors"
	"github.com/ajxudir/deptherapist/pkg/manager"
	"github.com/ajxudir/deptherapist/pkg/manifest"
	"github.com/ajxudir/deptherapist/pkg/verbose"
)

// DependencyThreshold is the number of runtime dependencies above which a
// project is considered to have too many.
const DependencyThreshold = 10

// Fixed issue texts.
const (
	IssueTooManyDependencies    = "You have too many dependencies. This isn't Tinder - quality over quantity."
	IssueCommunicationBreakdown = "Some packages aren't talking to each other. Classic communication breakdown."
	IssueStuckInOldWays         = "Some packages are stuck in their old ways. Change is hard."
)

// Markers searched for in list-installed output.
var conflictMarkers = []string{"UNMET DEPENDENCY", "npm ERR!"}

// outdatedExitCode is the status the outdated command uses to say that
// outdated packages exist.
const outdatedExitCode = 1

// ListFailedIssue returns the issue recorded when the list-installed
// command fails.
func ListFailedIssue(managerName string) string {
	return fmt.Sprintf("%s list failed. Even %s is avoiding this conversation.", managerName, managerName)
}

// OutdatedIssue returns the issue recorded when count packages are outdated.
func OutdatedIssue(count int) string {
	return fmt.Sprintf("%d packages are living in the past. Time for an intervention.", count)
}

// Report is the outcome of one session.
//
// Fields:
//   - Issues: detected problems in detection order
//   - DependencyCount: entries under "dependencies"
//   - DevDependencyCount: entries under "devDependencies"
//   - Outdated: parsed outdated entries when the outdated command succeeded
type Report struct {
	Issues             []string
	DependencyCount    int
	DevDependencyCount int
	Outdated           []manager.OutdatedEntry
}

// HasIssues reports whether any check found a problem.
func (r *Report) HasIssues() bool {
	return len(r.Issues) > 0
}

// Session holds what one run needs.
//
// Fields:
//   - Dir: directory containing package.json; commands run wherever the
//     adapter was configured to run them
//   - Adapter: package manager operations; only used once package.json has
//     loaded, so it may be nil when the manifest is known to be missing
//   - Printer: narrative output
type Session struct {
	Dir     string
	Adapter manager.Adapter
	Printer *display.Printer
}

// NewSession creates a session for dir.
func NewSession(dir string, adapter manager.Adapter, printer *display.Printer) *Session {
	return &Session{Dir: dir, Adapter: adapter, Printer: printer}
}

// Run executes the session and prints its narrative.
//
// It performs the following operations:
//   - Step 1: Prints the banner and loads package.json from Dir
//   - Step 2: Flags more than DependencyThreshold runtime dependencies
//   - Step 3: Runs the list-installed command and scans it for conflicts
//   - Step 4: Runs the outdated command and counts outdated packages
//   - Step 5: Prints the diagnosis and the closing line
//
// A missing manifest is reported before any command runs and returned as an
// *errors.ExitError with code ExitManifestMissing that is already marked as
// reported. An unparseable manifest, an outdated command exit status other
// than 0 or 1, unparseable outdated output, and cancellation of ctx are
// returned as errors with no report.
//
// Parameters:
//   - ctx: cancels a running package manager command
//
// Returns:
//   - *Report: the diagnosis, nil on error
//   - error: nil when the session completed, whatever it found
func (s *Session) Run(ctx context.Context) (*Report, error) {
	s.Printer.Banner()

	m, err := manifest.Load(s.Dir)
	if err != nil {
		if errors.IsManifestMissing(err) {
			s.Printer.MissingManifest()
			return nil, &errors.ExitError{Code: errors.ExitManifestMissing, Err: err, Reported: true}
		}
		return nil, err
	}

	report := &Report{
		Issues:             []string{},
		DependencyCount:    m.DependencyCount(),
		DevDependencyCount: m.DevDependencyCount(),
	}
	verbose.Printf("Manifest: %s", m.Path)
	verbose.Printf("Dependencies: %s", strings.Join(m.DependencyNames(), ", "))
	verbose.Printf("Dev dependencies: %s", strings.Join(m.DevDependencyNames(), ", "))
	s.Printer.Counts(report.DependencyCount, report.DevDependencyCount)

	// Named for the narrative; only the top-level count is checked.
	s.Printer.Step(display.StepCircular)
	s.checkDependencyCount(report)

	s.Printer.Step(display.StepConflicts)
	s.checkConflicts(ctx, report)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	s.Printer.Step(display.StepOutdated)
	if err := s.checkOutdated(ctx, m, report); err != nil {
		return nil, err
	}

	s.Printer.Diagnosis(report.Issues)
	s.Printer.Farewell()
	return report, nil
}

func (s *Session) checkDependencyCount(report *Report) {
	if report.DependencyCount > DependencyThreshold {
		report.add("dependency count", IssueTooManyDependencies)
	}
}

// checkConflicts records exactly one of two outcomes: the command failed, or
// it succeeded and printed a conflict marker.
func (s *Session) checkConflicts(ctx context.Context, report *Report) {
	res, err := s.Adapter.ListInstalled(ctx)
	if err != nil {
		verbose.Printf("List installed failed: %v", err)
		report.add("version conflicts", ListFailedIssue(s.Adapter.Name()))
		return
	}

	for _, marker := range conflictMarkers {
		if bytes.Contains(res.Output, []byte(marker)) {
			verbose.Printf("List installed output contains %q", marker)
			report.add("version conflicts", IssueCommunicationBreakdown)
			return
		}
	}
}

// checkOutdated interprets the outdated command by exit status: 0 means
// stdout is a JSON object of outdated packages, 1 means some are outdated
// without saying how many, anything else is fatal. Stderr is never parsed.
func (s *Session) checkOutdated(ctx context.Context, m *manifest.Manifest, report *Report) error {
	res, err := s.Adapter.ListOutdated(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if se, ok := errors.IsSubcommandError(err); ok && se.ExitCode == outdatedExitCode {
			report.add("outdated packages", IssueStuckInOldWays)
			return nil
		}
		return fmt.Errorf("outdated check failed: %w", err)
	}

	if len(bytes.TrimSpace(res.Stdout)) == 0 {
		verbose.Info("Outdated command printed nothing")
		return nil
	}

	entries, err := manager.ParseOutdated(res.Stdout)
	if err != nil {
		return err
	}
	report.Outdated = entries

	for _, e := range entries {
		verbose.Printf("Outdated: %s %s -> %s (%s)%s", e.Name, e.Current, e.Latest, manager.Bump(e), rangeNote(m, e))
	}
	if len(entries) > 0 {
		report.add("outdated packages", OutdatedIssue(len(entries)))
	}
	return nil
}

// rangeNote describes whether the declared range already admits the latest
// version, or returns "" when that cannot be told.
func rangeNote(m *manifest.Manifest, e manager.OutdatedEntry) string {
	declared, ok := m.Declared(e.Name)
	if !ok {
		return ""
	}
	allowed, ok := manager.Allowed(declared, e.Latest)
	switch {
	case !ok:
		return ""
	case allowed:
		return fmt.Sprintf(", latest within %s", declared)
	default:
		return fmt.Sprintf(", latest outside %s", declared)
	}
}

func (r *Report) add(check, issue string) {
	verbose.IssueRecorded(check, issue)
	r.Issues = append(r.Issues, issue)
}
