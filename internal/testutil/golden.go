package testutil

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"
	"testing"
)

var (
	// updateGolden controls whether golden files should be rewritten.
	// Use: go test ./... -run TestGolden -update
	updateGolden = flag.Bool("update", false, "update golden files")

	// goldenFixture filters which fixtures run.
	// Use: go test ./... -run TestGolden -goldenFixture=ts,python
	goldenFixture = flag.String("goldenFixture", "", "filter fixtures (comma-separated: ts,js,python)")
)

// ShouldUpdate returns true if golden files should be updated.
func ShouldUpdate() bool {
	return *updateGolden
}

// ShouldTestFixture returns true if the named fixture is selected.
func ShouldTestFixture(name string) bool {
	if *goldenFixture == "" {
		return true
	}
	for _, f := range strings.Split(*goldenFixture, ",") {
		f = strings.TrimSpace(f)
		if f == name || longName(f) == name {
			return true
		}
	}
	return false
}

func longName(short string) string {
	switch short {
	case "ts":
		return "typescript"
	case "js":
		return "javascript"
	case "py":
		return "python"
	default:
		return short
	}
}

// CompareGolden normalizes got to JSON and compares it against the golden file.
// With -update the file is written instead. A missing golden file fails the test.
func CompareGolden(t *testing.T, fixture *FixtureContext, name string, got any) {
	t.Helper()
	compare(t, fixture, name, MarshalNormalized(t, fixture, got))
}

// CompareGoldenText compares a rendered text report against the golden file
// after replacing the fixture root with a placeholder.
func CompareGoldenText(t *testing.T, fixture *FixtureContext, name, got string) {
	t.Helper()
	compare(t, fixture, name, []byte(NormalizePaths(got, fixture.Root)))
}

func compare(t testing.TB, fixture *FixtureContext, name string, got []byte) {
	t.Helper()

	goldenPath := fixture.ExpectedPath(name)
	if *updateGolden {
		UpdateGolden(t, fixture, name, got)
		t.Logf("Updated golden: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file missing: %s\n\nGot:\n%s\n\nRun with -update to create:\n  go test ./... -run %s -update",
				goldenPath, got, t.Name())
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if !bytes.Equal(got, expected) {
		diff := unifiedDiff(string(expected), string(got), goldenPath)
		t.Fatalf("Golden mismatch for %s:\n%s\n\nRun with -update to refresh:\n  go test ./... -run %s -update",
			name, diff, t.Name())
	}
}

// UpdateGolden writes data to the golden file, creating the directory.
func UpdateGolden(t testing.TB, fixture *FixtureContext, name string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(fixture.ExpectedDir, 0o755); err != nil {
		t.Fatalf("Failed to create expected directory: %v", err)
	}
	if err := os.WriteFile(fixture.ExpectedPath(name), data, 0o644); err != nil {
		t.Fatalf("Failed to write golden file: %v", err)
	}
}

// unifiedDiff produces a line-by-line diff with a little leading context.
func unifiedDiff(expected, got, path string) string {
	var buf bytes.Buffer

	expectedLines := strings.Split(expected, "\n")
	gotLines := strings.Split(got, "\n")

	fmt.Fprintf(&buf, "--- %s (expected)\n", path)
	fmt.Fprintf(&buf, "+++ %s (got)\n", path)

	n := max(len(expectedLines), len(gotLines))
	var hunk []string
	hunkStart := -1
	trailing := 0

	flush := func() {
		if len(hunk) == 0 {
			return
		}
		fmt.Fprintf(&buf, "@@ line %d @@\n", hunkStart+1)
		for _, line := range hunk {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
		hunk = nil
		hunkStart = -1
	}

	for i := 0; i < n; i++ {
		var exp, cur string
		if i < len(expectedLines) {
			exp = expectedLines[i]
		}
		if i < len(gotLines) {
			cur = gotLines[i]
		}

		if exp == cur {
			if hunkStart >= 0 {
				hunk = append(hunk, " "+exp)
				trailing++
				if trailing >= 3 {
					flush()
				}
			}
			continue
		}

		if hunkStart < 0 {
			hunkStart = i
			for j := max(0, i-3); j < i; j++ {
				hunk = append(hunk, " "+expectedLines[j])
			}
		}
		trailing = 0
		if i < len(expectedLines) {
			hunk = append(hunk, "-"+exp)
		}
		if i < len(gotLines) {
			hunk = append(hunk, "+"+cur)
		}
	}
	flush()

	return buf.String()
}

// ForEachFixture runs fn for each available fixture project.
// Respects the -goldenFixture flag.
func ForEachFixture(t *testing.T, fn func(t *testing.T, fixture *FixtureContext)) {
	t.Helper()

	names := AvailableFixtures(t)
	if len(names) == 0 {
		t.Skip("No fixtures available")
	}

	for _, name := range names {
		if !ShouldTestFixture(name) {
			continue
		}
		t.Run(name, func(t *testing.T) {
			fn(t, LoadFixture(t, name))
		})
	}
}
