package sepa

import (
	"strings"

	"github.com/google/uuid"
)

// NewEndToEndID returns a random 32 character identifier that fits the
// Max35Text EndToEndId element.
func NewEndToEndID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
