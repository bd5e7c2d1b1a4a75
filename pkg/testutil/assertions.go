package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertErrorContains checks that err is non-nil and contains the expected
// substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}

// AssertFindingCodes checks that the given rule codes (and only those) are
// present in codes, ignoring order.
func AssertFindingCodes(t *testing.T, codes []string, expected ...string) {
	t.Helper()
	assert.ElementsMatch(t, expected, codes)
}
