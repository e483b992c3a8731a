package plugin

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stylecheck/internal/plugin/luart"
	"github.com/dshills/stylecheck/internal/rule"
)

// LuaRule adapts a Lua rule definition to the rule contracts.
//
// A definition is a table with a required "option" string and optional
// "configure" and "check" functions:
//
//	return {
//	    option = "disallow-foo",
//	    configure = function(settings) ... end,
//	    check = function(settings, file) return { {line=1, message="..."} } end,
//	}
//
// check receives the stored settings and a file table {path=..., lines={...}}
// and returns an array of problem tables.
type LuaRule struct {
	state       *luart.State
	option      string
	configureFn *lua.LFunction
	checkFn     *lua.LFunction
	settings    any
}

// newLuaRule builds a LuaRule from a definition table. The rule keeps the
// state it was defined in; the state must stay open for the rule's life.
func newLuaRule(state *luart.State, def *lua.LTable) (*LuaRule, error) {
	option, ok := def.RawGetString("option").(lua.LString)
	if !ok || option == "" {
		return nil, fmt.Errorf("rule definition is missing the option name")
	}

	r := &LuaRule{
		state:  state,
		option: string(option),
	}
	if fn, ok := def.RawGetString("configure").(*lua.LFunction); ok {
		r.configureFn = fn
	}
	if fn, ok := def.RawGetString("check").(*lua.LFunction); ok {
		r.checkFn = fn
	}
	return r, nil
}

// OptionName returns the configuration key this rule answers to.
func (r *LuaRule) OptionName() string {
	return r.option
}

// Configure stores the settings value and, when the definition supplies a
// configure function, lets the script validate it.
func (r *LuaRule) Configure(value any) error {
	r.settings = value
	if r.configureFn == nil {
		return nil
	}
	if err := r.state.CallFunction(r.configureFn, luart.ToLuaValue(r.state.L, value)); err != nil {
		return fmt.Errorf("%w: %s", rule.ErrInvalidSetting, err)
	}
	return nil
}

// Check runs the definition's check function, if any.
func (r *LuaRule) Check(f *rule.File) []rule.Problem {
	if r.checkFn == nil {
		return nil
	}

	fileTable := r.state.NewTable()
	fileTable.RawSetString("path", lua.LString(f.Path))
	fileTable.RawSetString("lines", luart.ToLuaValue(r.state.L, f.Lines))

	result, err := r.state.Call(r.checkFn, luart.ToLuaValue(r.state.L, r.settings), fileTable)
	if err != nil {
		return []rule.Problem{{
			Rule:    r.option,
			Path:    f.Path,
			Message: fmt.Sprintf("rule script failed: %v", err),
		}}
	}

	return problemsFromLua(r.option, f.Path, result)
}

// problemsFromLua converts a Lua check result into problems.
func problemsFromLua(option, path string, result lua.LValue) []rule.Problem {
	items, ok := luart.ToGoValue(result).([]any)
	if !ok {
		return nil
	}

	var problems []rule.Problem
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p := rule.Problem{Rule: option, Path: path}
		if line, ok := entry["line"].(int64); ok {
			p.Line = int(line)
		}
		if col, ok := entry["column"].(int64); ok {
			p.Column = int(col)
		}
		if msg, ok := entry["message"].(string); ok {
			p.Message = msg
		}
		problems = append(problems, p)
	}
	return problems
}
