package scripting

import (
	"fmt"
	"log/slog"

	lua "github.com/yuin/gopher-lua"

	"github.com/udisondev/soma/internal/model"
)

// Lua globals the engine looks up. Both are optional.
const (
	fnEnemyStats   = "enemy_stats"
	fnWaveDuration = "wave_duration"
)

// Engine wraps a single gopher-lua VM with formula overrides.
// Single-goroutine access only: one engine per session.
//
// A nil *Engine is valid and overrides nothing.
type Engine struct {
	vm *lua.LState
}

func newState() *lua.LState {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return vm
}

// NewEngine creates an engine and runs the script at path.
func NewEngine(path string) (*Engine, error) {
	vm := newState()
	if err := vm.DoFile(path); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	slog.Debug("loaded lua script", "file", path)
	return &Engine{vm: vm}, nil
}

// NewEngineFromString creates an engine from inline Lua source.
func NewEngineFromString(src string) (*Engine, error) {
	vm := newState()
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load inline script: %w", err)
	}
	return &Engine{vm: vm}, nil
}

// HasFunction reports whether the script defines a global function name.
func (e *Engine) HasFunction(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// EnemyStats calls Lua enemy_stats(wave, base) and merges the returned table
// over base. Fields the script leaves out keep their base value; a missing
// function or a failing call returns base unchanged.
//
//	function enemy_stats(wave, base)
//	  return { max_hp = base.max_hp * wave }
//	end
func (e *Engine) EnemyStats(wave int, base model.EnemyTemplate) model.EnemyTemplate {
	if !e.HasFunction(fnEnemyStats) {
		return base
	}

	bt := e.vm.NewTable()
	bt.RawSetString("kind", lua.LString(base.Kind))
	bt.RawSetString("max_hp", lua.LNumber(base.MaxHP))
	bt.RawSetString("contact_damage", lua.LNumber(base.ContactDamage))
	bt.RawSetString("speed", lua.LNumber(base.Speed))
	bt.RawSetString("width", lua.LNumber(base.Width))
	bt.RawSetString("height", lua.LNumber(base.Height))
	bt.RawSetString("xp_value", lua.LNumber(base.XPValue))
	bt.RawSetString("death_duration_ms", lua.LNumber(base.DeathDurationMs))

	ret, ok := e.call(fnEnemyStats, lua.LNumber(wave), bt)
	if !ok {
		return base
	}
	rt, ok := ret.(*lua.LTable)
	if !ok {
		slog.Warn("lua enemy_stats returned non-table", "wave", wave, "type", ret.Type().String())
		return base
	}

	out := base
	if s, ok := rt.RawGetString("kind").(lua.LString); ok && s != "" {
		out.Kind = string(s)
	}
	lFloat(rt, "max_hp", &out.MaxHP)
	lFloat(rt, "contact_damage", &out.ContactDamage)
	lFloat(rt, "speed", &out.Speed)
	lFloat(rt, "width", &out.Width)
	lFloat(rt, "height", &out.Height)
	lFloat(rt, "death_duration_ms", &out.DeathDurationMs)
	if n, ok := rt.RawGetString("xp_value").(lua.LNumber); ok {
		out.XPValue = int64(n)
	}
	return out
}

// WaveSeconds calls Lua wave_duration(wave). ok is false when the function is
// missing, fails or returns a non-positive number.
func (e *Engine) WaveSeconds(wave int) (seconds int, ok bool) {
	if !e.HasFunction(fnWaveDuration) {
		return 0, false
	}
	ret, ok := e.call(fnWaveDuration, lua.LNumber(wave))
	if !ok {
		return 0, false
	}
	n, isNum := ret.(lua.LNumber)
	if !isNum || n <= 0 {
		slog.Warn("lua wave_duration returned invalid value", "wave", wave, "value", ret.String())
		return 0, false
	}
	return int(n), true
}

// call invokes a global function in protected mode and returns its first result.
func (e *Engine) call(name string, args ...lua.LValue) (lua.LValue, bool) {
	if err := e.vm.CallByParam(lua.P{
		Fn:      e.vm.GetGlobal(name),
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		slog.Error("lua call error", "func", name, "err", err)
		return lua.LNil, false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return ret, true
}

// lFloat copies a numeric table field into dst when present.
func lFloat(t *lua.LTable, key string, dst *float64) {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		*dst = float64(n)
	}
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.vm.Close()
}
