package component

// Kind is the elemental type of a creature. The zero value is KindFeu,
// which is also the fallback for unknown persisted text.
type Kind uint8

const (
	KindFeu      Kind = iota // fire
	KindEau                  // water
	KindPlante               // plant
	KindElectrik             // electric
	KindTenebre              // dark
)

var kindNames = [...]string{
	KindFeu:      "Feu",
	KindEau:      "Eau",
	KindPlante:   "Plante",
	KindElectrik: "Electrik",
	KindTenebre:  "Tenebre",
}

// Kinds lists every kind in selector order.
var Kinds = []Kind{KindFeu, KindEau, KindPlante, KindElectrik, KindTenebre}

// String returns the symbolic name used in save files.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindFeu]
}

// ParseKind maps a symbolic name back to a Kind.
// Unrecognized text yields KindFeu; it never fails.
func ParseKind(s string) Kind {
	for i, name := range kindNames {
		if name == s {
			return Kind(i)
		}
	}
	return KindFeu
}

// KindFromSelector maps a 1-based menu selector to a Kind.
func KindFromSelector(n int) (Kind, bool) {
	if n < 1 || n > len(Kinds) {
		return KindFeu, false
	}
	return Kinds[n-1], true
}

// Gender of a creature. The zero value GenderMale is the fallback
// for unknown persisted text.
type Gender uint8

const (
	GenderMale Gender = iota
	GenderFemelle
)

var genderNames = [...]string{
	GenderMale:    "Male",
	GenderFemelle: "Femelle",
}

// Genders lists both genders in selector order.
var Genders = []Gender{GenderMale, GenderFemelle}

func (g Gender) String() string {
	if int(g) < len(genderNames) {
		return genderNames[g]
	}
	return genderNames[GenderMale]
}

// ParseGender maps a symbolic name back to a Gender; unknown text yields GenderMale.
func ParseGender(s string) Gender {
	for i, name := range genderNames {
		if name == s {
			return Gender(i)
		}
	}
	return GenderMale
}

// GenderFromSelector maps a 1-based menu selector to a Gender.
// Selector 3 (random) is resolved by the caller, not here.
func GenderFromSelector(n int) (Gender, bool) {
	if n < 1 || n > len(Genders) {
		return GenderMale, false
	}
	return Genders[n-1], true
}
