package dispatch

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const codePrefix = "EVT"

// GenerateCode produces a display-only confirmation number with a stable
// shape: prefix, millisecond timestamp, short random suffix. Nothing checks
// for collisions; the code identifies a confirmation to humans, not to
// systems.
func GenerateCode() string {
	suffix := make([]byte, 3)

	// crypto/rand.Read does not fail on supported platforms
	_, _ = rand.Read(suffix)

	return fmt.Sprintf("%s-%d-%s",
		codePrefix,
		time.Now().UnixMilli(),
		strings.ToUpper(hex.EncodeToString(suffix)),
	)
}
