package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// VerifyGolden compares generated source against a golden file stored in
// testdata/<name>.golden next to the calling test.
//
// To regenerate golden files, run:
//
//	go test ./... -update
//
// Golden files are the source of truth for expected generator output:
// a diff means either an intentional generator change (regenerate) or a
// regression (fix).
func VerifyGolden(t *testing.T, name string, data []byte) {
	t.Helper()
	g := goldie.New(t)
	g.Assert(t, name, data)
}
