package persist

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/nursery/internal/codec"
	"github.com/l1jgo/nursery/internal/component"
)

var repairedID = uuid.MustParse("99999999-9999-4999-9999-999999999999")

func fixedID() uuid.UUID { return repairedID }

func newFileStore(t *testing.T, charset string) *FileStore {
	t.Helper()
	c, err := codec.New(codec.Options{Charset: charset, NewID: fixedID})
	require.NoError(t, err)
	return NewFileStore(c, zap.NewNop())
}

func population() []*component.Creature {
	return []*component.Creature{
		{ID: uuid.MustParse("0b8c5a4e-8f7e-4a57-9a43-6d1e2f1c9a01"), Name: "Salamèche", Level: 9, Kind: component.KindFeu, Exp: 4, Gender: component.GenderMale},
		{ID: uuid.MustParse("7a0d2a3c-2c0e-4c4a-8d7b-3b7f0b1e2d02"), Name: "Carapuce", Level: 1, Kind: component.KindEau, Exp: 0, Gender: component.GenderFemelle},
		{ID: uuid.MustParse("c2f5e6d7-1a2b-4c3d-9e8f-a0b1c2d3e403"), Name: "Nosferapti", Level: 5, Kind: component.KindTenebre, Exp: 99, Gender: component.GenderFemelle},
	}
}
