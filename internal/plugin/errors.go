package plugin

import "errors"

// Script host errors.
var (
	// ErrHostClosed is returned when using a closed host.
	ErrHostClosed = errors.New("script host is closed")

	// ErrNotLoaded is returned when updating a host with no script.
	ErrNotLoaded = errors.New("script is not loaded")

	// ErrScriptFailed is returned by Update after the script has raised an
	// error. Loading the script again clears it.
	ErrScriptFailed = errors.New("script failed")

	// ErrExecutionTimeout is returned when a script call runs past the host
	// timeout.
	ErrExecutionTimeout = errors.New("script execution timeout")

	// ErrNoProfile is raised to scripts that query input before a profile
	// is attached.
	ErrNoProfile = errors.New("no profile attached")
)
