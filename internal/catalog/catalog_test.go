package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatestGeneration(t *testing.T) {
	assert.True(t, LatestGeneration("iPhone 16"))
	assert.True(t, LatestGeneration("iPhone 16 Pro Max"))
	assert.True(t, LatestGeneration("iPhone 17 Pro"))
	assert.False(t, LatestGeneration("iPhone 15 Pro Max"))
	assert.False(t, LatestGeneration("iPhone 7"))
	assert.False(t, LatestGeneration(""))
}

func TestColorsFor(t *testing.T) {
	assert.Equal(t, BaseColors, ColorsFor("iPhone 13"))
	assert.Equal(t, LatestColors, ColorsFor("iPhone 17 Pro Max"))
}

func TestMembership(t *testing.T) {
	assert.True(t, IsCondition("🆕 Brand New"))
	assert.False(t, IsCondition("brand new"), "condition match is exact")

	assert.True(t, IsModel("iPhone 13"))
	assert.False(t, IsModel("iPhone 13   "))
	assert.False(t, IsModel("Galaxy S24"))

	assert.True(t, IsStorage("128GB"))
	assert.False(t, IsStorage("128gb"))
}

func TestEveryModelHasAPalette(t *testing.T) {
	for _, m := range Models {
		assert.NotEmpty(t, ColorsFor(m), m)
	}
}
