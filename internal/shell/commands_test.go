package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/nursery/internal/component"
)

func TestParseKindSelector(t *testing.T) {
	k, err := ParseKindSelector("5")
	require.NoError(t, err)
	assert.Equal(t, component.KindTenebre, k)

	for _, in := range []string{"0", "6", "Feu", ""} {
		_, err := ParseKindSelector(in)
		assert.ErrorIs(t, err, ErrInvalidKind, in)
	}
}

func TestParseGenderSelector(t *testing.T) {
	g, random, err := ParseGenderSelector("2")
	require.NoError(t, err)
	assert.False(t, random)
	assert.Equal(t, component.GenderFemelle, g)

	_, random, err = ParseGenderSelector("3")
	require.NoError(t, err)
	assert.True(t, random)

	_, _, err = ParseGenderSelector("4")
	assert.ErrorIs(t, err, ErrInvalidGender)
}

func TestParseExp(t *testing.T) {
	assert.Equal(t, uint32(450), ParseExp("450", 30))
	assert.Equal(t, uint32(30), ParseExp("-5", 30))
	assert.Equal(t, uint32(30), ParseExp("abc", 30))
	assert.Equal(t, uint32(0), ParseExp("0", 30))
	assert.Equal(t, uint32(50), ParseExp("+50", 30))
	assert.Equal(t, uint32(30), ParseExp("++50", 30))
}

func TestIsRandomKeyword(t *testing.T) {
	for _, in := range []string{"aléatoire", "ALÉATOIRE", "ale\u0301atoire", "aleatoire", "Random", " random "} {
		assert.True(t, IsRandomKeyword(in), in)
	}
	for _, in := range []string{"", "Pika", "aleat"} {
		assert.False(t, IsRandomKeyword(in), in)
	}
}
