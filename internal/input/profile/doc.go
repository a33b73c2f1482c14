// Package profile groups actions into control schemes.
//
// A Profile is an ordered list of actions queried by label:
//
//	jump, err := p.GetButtonDown("Jump")
//	move, err := p.GetAxis("Move")
//
// Unknown labels and empty profiles yield false or the zero vector and
// no error. Querying a button label as an axis (or the reverse) returns
// an error matching action.ErrTypeMismatch.
//
// A PlatformProfile adds a fixed Platform, and a Set picks the profile
// for the active platform.
package profile
