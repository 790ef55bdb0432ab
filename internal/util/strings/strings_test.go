package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	assert.Equal(t, "row", Pluralize("row", 1))
	assert.Equal(t, "rows", Pluralize("row", 0))
	assert.Equal(t, "rows", Pluralize("row", 6))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 group", Count(1, "group"))
	assert.Equal(t, "0 groups", Count(0, "group"))
	assert.Equal(t, "3 temperature bands", Count(3, "temperature band"))
}
