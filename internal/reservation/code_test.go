package reservation

import (
	"regexp"
	"testing"
	"time"
)

var codePattern = regexp.MustCompile(`^OT-[0-9A-Z]+-[0-9A-Z]{4}$`)

func TestCodeGenerator_Format(t *testing.T) {
	t.Parallel()

	gen := NewCodeGenerator("ot", nil)
	code, err := gen.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !codePattern.MatchString(code) {
		t.Errorf("code %q does not match expected format", code)
	}
}

func TestCodeGenerator_UniqueUnderFrozenClock(t *testing.T) {
	t.Parallel()

	frozen := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	gen := NewCodeGenerator("OT", func() time.Time { return frozen })

	seen := make(map[string]struct{}, 100000)
	for i := 0; i < 100000; i++ {
		code, err := gen.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code %q after %d iterations", code, i)
		}
		seen[code] = struct{}{}
	}
}
