package scripting

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/l1jgo/nursery/internal/component"
)

// Script subdirectories, loaded in this order.
var scriptDirs = []string{"core", "rules"}

// Engine wraps a single gopher-lua VM holding the nursery rule scripts.
// Single-goroutine access only (command loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua VM and runs every script under dir/core and
// dir/rules. A missing directory is not an error: every bridge then
// returns the default it is given.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{vm: lua.NewState(), log: log}
	e.exportKinds()

	for _, sub := range scriptDirs {
		if err := e.loadDir(filepath.Join(dir, sub)); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// exportKinds publishes KINDS = {"Feu", "Eau", ...} to scripts.
func (e *Engine) exportKinds() {
	t := e.vm.NewTable()
	for _, k := range component.Kinds {
		t.Append(lua.LString(k.String()))
	}
	e.vm.SetGlobal("KINDS", t)
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua in the engine VM. Used to hot-patch rules.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// --- Rules Bridge ---

// ExpPerLevel calls Lua exp_per_level().
func (e *Engine) ExpPerLevel(def uint32) uint32 {
	return e.ruleOr("exp_per_level", def)
}

// MinBreedLevel calls Lua min_breed_level().
func (e *Engine) MinBreedLevel(def uint32) uint32 {
	return e.ruleOr("min_breed_level", def)
}

// ruleOr returns the positive result of the named rule function, or def
// when the function is undefined, fails, or yields anything else.
func (e *Engine) ruleOr(name string, def uint32) uint32 {
	v, ok, err := e.callNumber(name)
	switch {
	case err != nil:
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return def
	case !ok:
		return def
	case v < 1 || v > lua.LNumber(^uint32(0)):
		e.log.Warn("lua rule out of range, using default",
			zap.String("func", name), zap.Float64("value", float64(v)), zap.Uint32("default", def))
		return def
	}
	return uint32(v)
}

// callNumber calls a global Lua function without arguments. ok is false
// when no such function is defined.
func (e *Engine) callNumber(name string) (v lua.LNumber, ok bool, err error) {
	fn, isFn := e.vm.GetGlobal(name).(*lua.LFunction)
	if !isFn {
		return 0, false, nil
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		return 0, true, err
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsNumber(ret), true, nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
