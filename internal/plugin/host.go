package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rebind/internal/input/device"
	"github.com/dshills/rebind/internal/input/profile"
)

// DefaultExecutionTimeout bounds a single script call.
const DefaultExecutionTimeout = 100 * time.Millisecond

// Host runs one Lua script against the attached profile.
type Host struct {
	mu sync.Mutex

	L      *lua.LState
	name   string
	closed bool

	// Attached input
	profile *profile.PlatformProfile
	dev     device.Provider

	// State
	state State
	err   error
	frame uint64

	// Options
	logger           *slog.Logger
	executionTimeout time.Duration
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostExecutionTimeout sets the timeout for each script call. Zero
// disables it.
func WithHostExecutionTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		h.executionTimeout = d
	}
}

// WithHostLogger sets the logger for print output and script errors.
func WithHostLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithHostProvider sets the device used to resolve "pad:" controls passed
// to input.rebind. The default resolves with the standard layout.
func WithHostProvider(dev device.Provider) HostOption {
	return func(h *Host) {
		if dev != nil {
			h.dev = dev
		}
	}
}

// NewHost creates a host with no script loaded.
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		state:            StateUnloaded,
		logger:           slog.Default(),
		executionTimeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.dev == nil {
		h.dev = device.NewState()
	}
	return h
}

// Name returns the name of the loaded script.
func (h *Host) Name() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.name
}

// State returns the host state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns the error that put the host in StateError.
func (h *Host) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// SetProfile attaches the profile scripts query and rebind. It may be
// called at any time, for example after the bindings are rebuilt.
func (h *Host) SetProfile(pp *profile.PlatformProfile) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.profile = pp
}

// LoadFile replaces the running script with the file at path.
func (h *Host) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return h.LoadString(filepath.Base(path), string(data))
}

// LoadString replaces the running script with code and runs its top-level
// chunk. The previous Lua state is discarded, so globals do not carry over.
func (h *Host) LoadString(name, code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	h.reset(name)

	fn, err := h.L.Load(strings.NewReader(code), name)
	if err != nil {
		return h.fail(fmt.Errorf("compile %s: %w", name, err))
	}
	if err := h.call(context.Background(), fn); err != nil {
		return h.fail(err)
	}
	h.state = StateLoaded
	h.logger.Debug("script loaded", "script", name)
	return nil
}

// reset swaps in a fresh sandbox with the input module installed.
func (h *Host) reset(name string) {
	if h.L != nil {
		h.L.Close()
	}
	h.name = name
	h.state = StateUnloaded
	h.err = nil
	h.frame = 0

	h.L = newSandbox(h.logger, name)
	mod := &inputModule{host: h}
	h.L.SetGlobal("input", mod.Loader(h.L))
}

// Update calls the script's global update(frame) function, if it defines
// one. A script error moves the host to StateError; later calls return
// ErrScriptFailed until a script is loaded again.
func (h *Host) Update(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	switch h.state {
	case StateUnloaded:
		return ErrNotLoaded
	case StateError:
		return fmt.Errorf("%w: %v", ErrScriptFailed, h.err)
	}

	h.frame++
	fn := h.L.GetGlobal("update")
	if fn.Type() != lua.LTFunction {
		return nil
	}
	if err := h.call(ctx, fn, lua.LNumber(h.frame)); err != nil {
		return h.fail(err)
	}
	return nil
}

// call runs fn with the execution timeout and panic recovery.
func (h *Host) call(ctx context.Context, fn lua.LValue, args ...lua.LValue) (err error) {
	if h.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.executionTimeout)
		defer cancel()
	}
	h.L.SetContext(ctx)
	defer h.L.RemoveContext()

	top := h.L.GetTop()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		h.L.SetTop(top)
	}()

	h.L.Push(fn)
	for _, arg := range args {
		h.L.Push(arg)
	}
	err = h.L.PCall(len(args), 0, nil)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	}
	return err
}

func (h *Host) fail(err error) error {
	h.state = StateError
	h.err = err
	h.logger.Error("script error", "script", h.name, "error", err)
	return err
}

// Close releases the Lua state. It is safe to call more than once.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	if h.L != nil {
		h.L.Close()
		h.L = nil
	}
	h.state = StateUnloaded
	return nil
}
