package plugin

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rebind/internal/config"
	"github.com/dshills/rebind/internal/input/action"
	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/profile"
)

// inputModule implements the input global. Its functions run with the host
// lock held, so they read the host fields directly.
type inputModule struct {
	host *Host
}

// Loader builds the input table.
func (m *inputModule) Loader(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"button":      m.button((*profile.Profile).GetButton),
		"button_down": m.button((*profile.Profile).GetButtonDown),
		"button_up":   m.button((*profile.Profile).GetButtonUp),
		"axis":        m.axis,
		"rebind":      m.rebind,
		"source":      m.source,
		"labels":      m.labels,
		"profile":     m.profileName,
		"platform":    m.platform,
	})
	return mod
}

func (m *inputModule) profile(L *lua.LState) *profile.PlatformProfile {
	pp := m.host.profile
	if pp == nil {
		L.RaiseError("%v", ErrNoProfile)
	}
	return pp
}

// button wraps a button query. Unknown labels read false; axis labels raise.
func (m *inputModule) button(query func(*profile.Profile, string) (bool, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		label := L.CheckString(1)
		pp := m.profile(L)
		v, err := query(pp.Profile, label)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		L.Push(lua.LBool(v))
		return 1
	}
}

// axis(label) -> x, y
func (m *inputModule) axis(L *lua.LState) int {
	label := L.CheckString(1)
	pp := m.profile(L)
	v, err := pp.GetAxis(label)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(v.X))
	L.Push(lua.LNumber(v.Y))
	return 2
}

// rebind(label, field, control)
// An empty control string clears the field.
func (m *inputModule) rebind(L *lua.LState) int {
	label := L.CheckString(1)
	field := L.CheckString(2)
	name := L.OptString(3, "")
	pp := m.profile(L)

	a := pp.Find(label)
	if a == nil {
		L.ArgError(1, "unknown action: "+label)
		return 0
	}
	c, err := config.ParseControl(name, m.host.dev)
	if err != nil {
		L.ArgError(3, err.Error())
		return 0
	}
	if err := action.Rebind(a, field, c); err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	m.host.logger.Debug("script rebind", "script", m.host.name, "label", label, "field", field, "control", c.String())
	return 0
}

// source(label, field) -> control name, or "" when unbound
func (m *inputModule) source(L *lua.LState) int {
	label := L.CheckString(1)
	field := L.CheckString(2)
	pp := m.profile(L)

	a := pp.Find(label)
	if a == nil {
		L.ArgError(1, "unknown action: "+label)
		return 0
	}
	c, err := action.SourceOf(a, field)
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	if c == control.ControlNone {
		L.Push(lua.LString(""))
	} else {
		L.Push(lua.LString(c.String()))
	}
	return 1
}

func (m *inputModule) labels(L *lua.LState) int {
	pp := m.profile(L)
	tbl := L.NewTable()
	for _, label := range pp.Labels() {
		tbl.Append(lua.LString(label))
	}
	L.Push(tbl)
	return 1
}

func (m *inputModule) profileName(L *lua.LState) int {
	L.Push(lua.LString(m.profile(L).Name))
	return 1
}

func (m *inputModule) platform(L *lua.LState) int {
	L.Push(lua.LString(m.profile(L).Platform().String()))
	return 1
}
