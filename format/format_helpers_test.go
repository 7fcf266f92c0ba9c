package format

import (
	"testing"

	"github.com/smartcalc/smartcalc/session"
)

// execOutput runs text through a fresh session and returns its Output,
// for format tests that need a realistic session.Output fixture.
func execOutput(t *testing.T, text string) session.Output {
	t.Helper()
	return session.NewCalc().Execute("en", text)
}
