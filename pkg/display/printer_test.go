package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainPrinter returns a Printer over a buffer with colour disabled.
func plainPrinter(t *testing.T) (*Printer, *bytes.Buffer) {
	t.Helper()
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })

	var buf bytes.Buffer
	return NewPrinter(&buf), &buf
}

// TestBanner tests the behavior of Banner.
func TestBanner(t *testing.T) {
	p, buf := plainPrinter(t)
	p.Banner()

	assert.Equal(t, "\n🧠 DEPENDENCY THERAPIST SESSION STARTING...\n\nLet's explore your emotional baggage together.\n\n", buf.String())
}

// TestMissingManifest tests the behavior of MissingManifest.
func TestMissingManifest(t *testing.T) {
	p, buf := plainPrinter(t)
	p.MissingManifest()

	assert.Equal(t, "❌ No package.json found. Are you sure this is a project, or just existential dread?\n", buf.String())
}

// TestCounts tests the behavior of Counts.
func TestCounts(t *testing.T) {
	p, buf := plainPrinter(t)
	p.Counts(11, 3)

	assert.True(t, strings.HasPrefix(buf.String(), "📦 Found 11 dependencies and 3 dev dependencies.\n"))
	assert.Contains(t, buf.String(), "No wonder you're stressed.")
}

// TestStep tests the behavior of Step.
func TestStep(t *testing.T) {
	p, buf := plainPrinter(t)
	p.Step(StepCircular)
	p.Step(StepConflicts)
	p.Step(StepOutdated)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "🔍 Checking for circular relationships (the codependent kind)...", lines[0])
	assert.Equal(t, `🔍 Looking for version conflicts (the "he said, she said" of packages)...`, lines[1])
	assert.Equal(t, "🔍 Checking for outdated packages (emotional baggage from the past)...", lines[2])
}

// TestDiagnosis tests the behavior of Diagnosis.
//
// It verifies:
//   - No issues prints the congratulatory message without issues or prescription
//   - Issues are numbered from 1 in the given order
//   - The prescription follows the issues
func TestDiagnosis(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		p, buf := plainPrinter(t)
		p.Diagnosis(nil)

		out := buf.String()
		assert.Contains(t, out, "💊 THERAPIST'S DIAGNOSIS:")
		assert.Contains(t, out, "✅ Your dependencies are surprisingly well-adjusted!")
		assert.Contains(t, out, "(This won't last. Enjoy it while you can.)")
		assert.NotContains(t, out, "ISSUES FOUND")
		assert.NotContains(t, out, "PRESCRIPTION")
		assert.NotContains(t, out, "1. ")
	})

	t.Run("issues", func(t *testing.T) {
		p, buf := plainPrinter(t)
		p.Diagnosis([]string{"first problem", "second problem"})

		out := buf.String()
		assert.NotContains(t, out, "well-adjusted")
		assert.Contains(t, out, "🚨 ISSUES FOUND:\n\n1. first problem\n2. second problem\n")
		assert.Contains(t, out, "\n💡 PRESCRIPTION:\n"+
			"1. Take a deep breath\n"+
			"2. Run: npm audit fix\n"+
			"3. Consider deleting node_modules and starting fresh\n"+
			"4. Maybe talk to a real human? Just a thought.\n")
		assert.Less(t, strings.Index(out, "second problem"), strings.Index(out, "PRESCRIPTION"))
	})
}

// TestFarewell tests the behavior of Farewell.
func TestFarewell(t *testing.T) {
	p, buf := plainPrinter(t)
	p.Farewell()

	assert.Equal(t, "Session complete. That'll be $200. (jk, it's free - unlike your time debugging)\n\n", buf.String())
}
