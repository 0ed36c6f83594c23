package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine(t *testing.T, files map[string]string) *Engine {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestShippedRules(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, uint32(100), e.ExpPerLevel(1))
	assert.Equal(t, uint32(5), e.MinBreedLevel(1))
}

func TestMissingDirUsesDefaults(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "nope"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, uint32(100), e.ExpPerLevel(100))
	assert.Equal(t, uint32(5), e.MinBreedLevel(5))
}

func TestRuleOverrides(t *testing.T) {
	e := newEngine(t, map[string]string{
		"core/rules.lua":  "function exp_per_level() return 250 end",
		"rules/breed.lua": "function min_breed_level() return 10 end",
		"core/notes.txt":  "ignored",
	})
	assert.Equal(t, uint32(250), e.ExpPerLevel(100))
	assert.Equal(t, uint32(10), e.MinBreedLevel(5))
}

func TestBadRuleValuesFallBack(t *testing.T) {
	e := newEngine(t, map[string]string{
		"core/rules.lua": `
function exp_per_level() return -3 end
function min_breed_level() error("boom") end
`,
	})
	assert.Equal(t, uint32(100), e.ExpPerLevel(100))
	assert.Equal(t, uint32(5), e.MinBreedLevel(5))
}

func TestDoStringPatchesRules(t *testing.T) {
	e := newEngine(t, nil)
	require.NoError(t, e.DoString("function min_breed_level() return 2 end"))
	assert.Equal(t, uint32(2), e.MinBreedLevel(5))
}

func TestSyntaxErrorFailsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "core"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core", "bad.lua"), []byte("function ("), 0o644))
	_, err := NewEngine(dir, zap.NewNop())
	require.Error(t, err)
}

func TestKindsExported(t *testing.T) {
	e := newEngine(t, map[string]string{
		"core/rules.lua": "function exp_per_level() return #KINDS * 10 end",
	})
	assert.Equal(t, uint32(50), e.ExpPerLevel(100))
}

func TestNonFunctionGlobalIsIgnored(t *testing.T) {
	e := newEngine(t, map[string]string{
		"core/rules.lua": "exp_per_level = 7",
	})
	assert.Equal(t, uint32(100), e.ExpPerLevel(100))
}
