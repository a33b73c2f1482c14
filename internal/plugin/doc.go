// Package plugin runs Lua scripts against the active input profile.
//
// A Host owns one sandboxed Lua state. Scripts see a global table named
// input:
//
//	input.button(label)        -- true while held
//	input.button_down(label)   -- true on the press frame
//	input.button_up(label)     -- true on the release frame
//	input.axis(label)          -- x, y
//	input.rebind(label, field, control)
//	input.source(label, field) -- control name bound to a field
//	input.labels()             -- array of labels in profile order
//	input.profile()            -- profile name
//	input.platform()           -- platform name
//
// Querying a label that is not in the profile yields false or 0, 0.
// Querying a button as an axis (or the reverse) raises a Lua error. A
// script may define a global update(frame) function; Host.Update calls it
// once per frame.
//
// Only the base, table, string and math libraries are available, and the
// chunk loading functions are removed.
package plugin
