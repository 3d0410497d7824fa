package dispatch_test

import (
	"regexp"
	"testing"

	"github.com/geocoder89/confirmhub/internal/dispatch"
)

var codeShape = regexp.MustCompile(`^EVT-\d+-[0-9A-F]{6}$`)

func TestGenerateCodeShape(t *testing.T) {
	code := dispatch.GenerateCode()

	if !codeShape.MatchString(code) {
		t.Fatalf("code %q does not match prefix-timestamp-suffix", code)
	}
}

func TestGenerateCodeVaries(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 20; i++ {
		code := dispatch.GenerateCode()

		if !codeShape.MatchString(code) {
			t.Fatalf("code %q does not match prefix-timestamp-suffix", code)
		}

		seen[code] = true
	}

	// the random suffix should keep codes apart even within one millisecond
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct out of 20", len(seen))
	}
}
