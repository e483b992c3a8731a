package luart

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ToGoValue converts a Lua value to the plain Go shapes configuration
// maps are made of: bool, int64/float64, string, []any and map[string]any.
// Functions and userdata convert to nil.
func ToGoValue(lv lua.LValue) any {
	return toGoValue(lv, make(map[*lua.LTable]bool))
}

func toGoValue(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil // break circular references
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

// tableToGo converts a Lua table to a slice when it is a contiguous
// 1-based array, otherwise to a string-keyed map.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	maxN := 0
	count := 0
	isArray := true
	t.ForEach(func(k, _ lua.LValue) {
		count++
		kn, ok := k.(lua.LNumber)
		if !ok || float64(kn) != float64(int(kn)) || int(kn) <= 0 {
			isArray = false
			return
		}
		if int(kn) > maxN {
			maxN = int(kn)
		}
	})

	if isArray && maxN > 0 && count == maxN {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = toGoValue(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = toGoValue(v, visited)
	})
	return m
}

// ToLuaValue converts a plain Go configuration value to a Lua value.
func ToLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []string:
		t := L.NewTable()
		for i, s := range val {
			t.RawSetInt(i+1, lua.LString(s))
		}
		return t
	case []any:
		t := L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, ToLuaValue(L, item))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, item := range val {
			t.RawSetString(k, ToLuaValue(L, item))
		}
		return t
	case lua.LValue:
		return val
	default:
		return lua.LString(fmt.Sprintf("%v", val))
	}
}
