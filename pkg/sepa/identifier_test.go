package sepa_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibbank/sepa/pkg/sepa"
)

func TestNewEndToEndID(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{32}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := sepa.NewEndToEndID()
		assert.Regexp(t, pattern, id)
		assert.LessOrEqual(t, len(id), 35)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
