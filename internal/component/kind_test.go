package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"Feu", KindFeu},
		{"Eau", KindEau},
		{"Plante", KindPlante},
		{"Electrik", KindElectrik},
		{"Tenebre", KindTenebre},
		{"Ténèbre", KindFeu},
		{"eau", KindFeu},
		{"", KindFeu},
		{"Dragon", KindFeu},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKind(tt.in))
		})
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		require.Equal(t, k, ParseKind(k.String()))
	}
	assert.Equal(t, "Feu", Kind(42).String())
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		in   string
		want Gender
	}{
		{"Male", GenderMale},
		{"Femelle", GenderFemelle},
		{"Mâle", GenderMale},
		{"female", GenderMale},
		{"", GenderMale},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGender(tt.in))
		})
	}
}

func TestSelectors(t *testing.T) {
	for i, want := range Kinds {
		k, ok := KindFromSelector(i + 1)
		require.True(t, ok)
		assert.Equal(t, want, k)
	}
	_, ok := KindFromSelector(0)
	assert.False(t, ok)
	_, ok = KindFromSelector(6)
	assert.False(t, ok)

	g, ok := GenderFromSelector(2)
	require.True(t, ok)
	assert.Equal(t, GenderFemelle, g)
	_, ok = GenderFromSelector(3)
	assert.False(t, ok)
}

func TestNewCreature(t *testing.T) {
	c := NewCreature([16]byte{1}, "Goupix", KindFeu, GenderFemelle)
	assert.Equal(t, uint32(1), c.Level)
	assert.Equal(t, uint32(0), c.Exp)
	assert.Equal(t, "Goupix", c.Name)
}
