package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironmentVariables(t *testing.T) {
	t.Setenv("FEDERATION_TEST_VALUE", "a=b")

	env := GetEnvironmentVariables()
	assert.Equal(t, "a=b", env["FEDERATION_TEST_VALUE"])
	assert.Equal(t, "", env["FEDERATION_TEST_MISSING"])
}

func TestInPlaceFilter(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6}
	InPlaceFilter(&values, func(value int) bool {
		return value%2 == 0
	})

	assert.Equal(t, []int{2, 4, 6}, values)
}
