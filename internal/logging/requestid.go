package logging

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// GenerateRequestID creates a short identifier for correlating log lines.
// Format: HHMMSS_xxxxxx (timestamp + 6 random hex chars)
func GenerateRequestID() string {
	random := make([]byte, 3)
	_, _ = rand.Read(random)
	return time.Now().Format("150405") + "_" + hex.EncodeToString(random)
}
