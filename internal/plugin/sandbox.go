package plugin

import (
	"log/slog"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// blockedGlobals are base library functions scripts must not reach. They
// load code from disk or from strings, or swap function environments.
var blockedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
	"getfenv",
	"setfenv",
	"_printregs",
}

// newSandbox creates a Lua state with the safe standard libraries.
// print is routed to logger.
func newSandbox(logger *slog.Logger, script string) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// io, os, debug and package stay closed.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	L.SetTop(0)

	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		logger.Info(strings.Join(parts, "\t"), "script", script)
		return 0
	}))
	return L
}
