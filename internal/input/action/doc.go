// Package action provides rebindable virtual controls.
//
// An Action is either a Button or an Axis:
//
//   - Button: a primary and an alternate control. It is held, pressed or
//     released when either control is.
//   - Axis: a 2D value read from the left stick, the right stick, the mouse
//     delta, or composed from four directions of controls (AxisButtons).
//
// Actions poll a device.Provider on every query. Rebinding changes a source
// and then calls the action's RebindFunc. Clones share that callback.
//
// # Construction
//
//	jump := action.NewButton(dev, action.ButtonConfig{
//	    Label:      "Jump",
//	    Primary:    control.KeySpace,
//	    GamepadAlt: control.GamepadSouth,
//	})
//
//	move := action.NewAxis(dev, action.AxisConfig{
//	    Label: "Move",
//	    Kind:  action.AxisButtons,
//	    Primary: action.Sources{
//	        PositiveX: control.KeyD, NegativeX: control.KeyA,
//	        PositiveY: control.KeyW, NegativeY: control.KeyS,
//	    },
//	})
package action
