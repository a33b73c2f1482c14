// Package input groups the rebindable input layer.
//
// Subpackages:
//
//   - control: physical controls (keys, mouse buttons, joystick buttons) and
//     abstract gamepad buttons resolved per layout.
//   - device: the Provider interface actions poll, a frame-based State, and
//     the ebiten and terminal backends.
//   - action: Button and Axis actions with primary and alternate sources.
//   - profile: labelled collections of actions, scoped to a platform.
package input
