package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateDecimals(t *testing.T) {
	assert.Equal(t, "3.14", TruncateDecimals("3.14159", 2))
	assert.Equal(t, "3.1", TruncateDecimals("3.1", 2))
	assert.Equal(t, "42", TruncateDecimals("42", 2))
	assert.Equal(t, "3", TruncateDecimals("3.999", 0))
	assert.Equal(t, "-1.5", TruncateDecimals("-1.55", 1))
}

func TestSanitizeNumber(t *testing.T) {
	assert.Equal(t, "123", SanitizeNumber("1a2b3c", false))
	assert.Equal(t, "1.5", SanitizeNumber("1.5", true))
	assert.Equal(t, "15", SanitizeNumber("1.5", false))
	assert.Equal(t, "-42", SanitizeNumber("-42", false))
	assert.Equal(t, "42", SanitizeNumber("4-2", false), "minus only leads")
	assert.Equal(t, "1.23", SanitizeNumber("1.2.3", true), "one dot only")
	assert.Equal(t, "", SanitizeNumber("abc", false))
}
