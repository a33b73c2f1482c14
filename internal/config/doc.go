// Package config reads and writes bindings files.
//
// A bindings file lists profiles, each with a name, an optional platform
// and an ordered list of actions. The same model is encoded as TOML, YAML
// or JSON; the format follows the file extension.
//
//	[[profiles]]
//	name = "keyboard"
//	platform = "desktop"
//
//	[[profiles.actions]]
//	type = "button"
//	label = "Jump"
//	primary = "space"
//	alt = "pad:south"
//
//	[[profiles.actions]]
//	type = "axis"
//	label = "Move"
//	kind = "buttons"
//	positive_x = "d"
//	negative_x = "a"
//	positive_y = "w"
//	negative_y = "s"
//
// Control names are those accepted by control.Parse. A "pad:" prefix names
// an abstract gamepad button ("pad:south"), resolved by the device's layout
// when the action is built.
//
// # Live updates
//
// Build turns a File into a profile.Set. Apply pushes a later revision of
// the file into an existing set through the rebind setters, so the actions
// (and anything holding them) survive the reload. Watcher delivers decoded
// revisions from disk; PatchJSON persists a single rebind into a JSON file
// without disturbing the rest of it.
package config
