// Package spam classifies validated submissions as automated spam.
package spam

import (
	"strings"

	"github.com/parduccinward/tukuy-cms/internal/model"
)

// IsSpam reports whether the decoy field was filled in. Legitimate visitors
// never see the field, so any non-blank value is treated as a bot.
func IsSpam(sub model.Submission) bool {
	return strings.TrimSpace(sub.Honeypot) != ""
}
