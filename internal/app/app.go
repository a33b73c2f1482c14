// Package app ties a bindings file, a device and an optional script into a
// live session. Frontends call Frame once per tick and draw Lines.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dshills/rebind/internal/config"
	"github.com/dshills/rebind/internal/input/action"
	"github.com/dshills/rebind/internal/input/device"
	"github.com/dshills/rebind/internal/input/profile"
	"github.com/dshills/rebind/internal/plugin"
)

// Application is a running bindings session.
type Application struct {
	mu sync.Mutex

	opts   Options
	logger *slog.Logger
	dev    device.Provider

	// Bindings
	file   *config.File
	set    *profile.Set
	active *profile.PlatformProfile

	// Components
	watcher *config.Watcher
	script  *plugin.Host

	// Status
	frame   uint64
	reloads int
	lastErr error
	events  *eventLog
	closed  bool
}

// Options configures the application.
type Options struct {
	// BindingsPath is the bindings file. It is watched when Watch is set.
	BindingsPath string

	// Platform selects the active profile.
	Platform profile.Platform

	// ScriptPath is an optional Lua script run every frame.
	ScriptPath string

	// Watch enables hot reload of the bindings file.
	Watch bool

	// Debounce overrides the watcher debounce interval.
	Debounce time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// LoadBindings reads and validates the bindings file at path. When the
// file does not exist and create is set, the default bindings are written
// there first.
func LoadBindings(path string, create bool) (*config.File, error) {
	f, err := config.Load(path)
	switch {
	case err == nil:
		if err := config.Validate(f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return f, nil
	case !create || !errors.Is(err, os.ErrNotExist):
		return nil, err
	}
	f = DefaultBindings()
	if err := config.Save(path, f); err != nil {
		return nil, err
	}
	return f, nil
}

// New builds the profiles in file against dev and starts the watcher and
// script named in opts.
func New(opts Options, file *config.File, dev device.Provider) (*Application, error) {
	a := &Application{
		opts:   opts,
		logger: opts.Logger,
		dev:    dev,
		events: newEventLog(8),
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	set, err := config.Build(file, dev, a.buildOptions())
	if err != nil {
		return nil, &InitError{Component: "bindings", Err: err}
	}
	active := a.choose(set)
	if active == nil {
		return nil, &InitError{Component: "bindings", Err: ErrNoProfile}
	}
	a.file, a.set, a.active = file, set, active

	if opts.Watch && opts.BindingsPath != "" {
		var wopts []config.WatcherOption
		wopts = append(wopts, config.WithWatcherLogger(a.logger))
		if opts.Debounce > 0 {
			wopts = append(wopts, config.WithDebounce(opts.Debounce))
		}
		w, err := config.NewWatcher(opts.BindingsPath, wopts...)
		if err != nil {
			return nil, &InitError{Component: "watcher", Err: err}
		}
		a.watcher = w
	}

	if opts.ScriptPath != "" {
		a.script = plugin.NewHost(plugin.WithHostLogger(a.logger), plugin.WithHostProvider(dev))
		a.script.SetProfile(active)
		if err := a.script.LoadFile(opts.ScriptPath); err != nil {
			// A broken script is shown in the status, not fatal.
			a.lastErr = err
		}
	}

	a.logger.Info("bindings loaded",
		"path", opts.BindingsPath,
		"profiles", set.Len(),
		"active", active.Name,
		"platform", active.Platform().String())
	return a, nil
}

func (a *Application) buildOptions() config.BuildOptions {
	return config.BuildOptions{OnRebind: a.onRebind, Logger: a.logger}
}

// onRebind is shared by every action, including clones.
func (a *Application) onRebind(act action.Action) {
	var parts []string
	for _, field := range action.Fields(act) {
		c, _ := action.SourceOf(act, field)
		parts = append(parts, fmt.Sprintf("%s=%s", field, c))
	}
	a.events.Add(fmt.Sprintf("%s rebound %v", act.Label(), parts))
	a.logger.Debug("action rebound", "label", act.Label())
}

// choose picks the profile for the configured platform, falling back to the
// first profile in the set.
func (a *Application) choose(set *profile.Set) *profile.PlatformProfile {
	if pp := set.Select(a.opts.Platform); pp != nil {
		return pp
	}
	if profiles := set.Profiles(); len(profiles) > 0 {
		return profiles[0]
	}
	return nil
}

// Frame runs one tick: pending bindings reloads are applied, then the
// script's update function runs.
func (a *Application) Frame(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrQuit
	}
	a.frame++
	a.drainReloads()

	if a.script != nil && a.script.State() == plugin.StateLoaded {
		if err := a.script.Update(ctx); err != nil {
			a.lastErr = err
		}
	}
	return nil
}

func (a *Application) drainReloads() {
	if a.watcher == nil {
		return
	}
	select {
	case u, ok := <-a.watcher.Updates():
		if !ok {
			a.watcher = nil
			return
		}
		a.reload(u)
	default:
	}
}

// reload applies a watcher update. Source changes are pushed into the live
// actions; structural changes rebuild the set.
func (a *Application) reload(u config.Update) {
	if u.Err != nil {
		a.lastErr = u.Err
		a.logger.Warn("bindings reload failed", "error", u.Err)
		return
	}

	if !sameShape(a.set, u.File) {
		a.rebuild(u.File)
		return
	}
	n, err := config.Apply(a.set, u.File, a.dev)
	switch {
	case err == nil:
		a.lastErr = nil
		a.retryScript()
	case structural(err):
		a.rebuild(u.File)
		return
	default:
		a.lastErr = err
		a.logger.Warn("bindings partially applied", "error", err)
	}
	a.file = u.File
	a.reloads++
	a.logger.Info("bindings reloaded", "rebinds", n)
}

func (a *Application) rebuild(f *config.File) {
	set, err := config.Build(f, a.dev, a.buildOptions())
	if err != nil {
		a.lastErr = err
		a.logger.Warn("bindings rebuild failed", "error", err)
		return
	}
	active := a.choose(set)
	if active == nil {
		a.lastErr = ErrNoProfile
		a.logger.Warn("bindings rebuild failed", "error", ErrNoProfile)
		return
	}
	a.file, a.set, a.active = f, set, active
	a.lastErr = nil
	if a.script != nil {
		a.script.SetProfile(active)
		a.retryScript()
	}
	a.reloads++
	a.logger.Info("bindings rebuilt", "profiles", set.Len(), "active", active.Name)
}

// retryScript reloads a script that failed, so fixing it or its bindings
// brings it back on the next reload. A loaded script keeps its state.
func (a *Application) retryScript() {
	if a.script == nil || a.script.State() != plugin.StateError {
		return
	}
	if err := a.script.LoadFile(a.opts.ScriptPath); err != nil {
		a.lastErr = err
		return
	}
	a.logger.Info("script reloaded", "script", a.script.Name())
}

func structural(err error) bool {
	return errors.Is(err, config.ErrProfileNotFound) ||
		errors.Is(err, config.ErrActionNotFound) ||
		errors.Is(err, config.ErrKindChanged)
}

// sameShape reports whether f has the same profiles and labels, in order,
// as set.
func sameShape(set *profile.Set, f *config.File) bool {
	profiles := set.Profiles()
	if len(profiles) != len(f.Profiles) {
		return false
	}
	for i, pp := range profiles {
		ps := f.Profiles[i]
		if pp.Name != ps.Name || pp.Platform().String() != platformName(ps.Platform) {
			return false
		}
		labels := pp.Labels()
		if len(labels) != len(ps.Actions) {
			return false
		}
		for j, label := range labels {
			if ps.Actions[j].Label != label {
				return false
			}
		}
	}
	return true
}

func platformName(s string) string {
	p, ok := profile.ParsePlatform(s)
	if !ok {
		return s
	}
	return p.String()
}

// Active returns the profile being shown.
func (a *Application) Active() *profile.PlatformProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Bindings returns the file the live set was last built or applied from.
func (a *Application) Bindings() *config.File {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.file
}

// Reloads returns how many watcher updates were applied.
func (a *Application) Reloads() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reloads
}

// Err returns the last reload or script error, if any.
func (a *Application) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// NextProfile makes the next profile in the set active and returns it.
func (a *Application) NextProfile() *profile.PlatformProfile {
	a.mu.Lock()
	defer a.mu.Unlock()

	profiles := a.set.Profiles()
	for i, pp := range profiles {
		if pp == a.active {
			a.active = profiles[(i+1)%len(profiles)]
			break
		}
	}
	if a.script != nil {
		a.script.SetProfile(a.active)
	}
	a.logger.Debug("profile switched", "active", a.active.Name)
	return a.active
}

// Export writes the live bindings, including script rebinds, to path.
func (a *Application) Export(path string) error {
	a.mu.Lock()
	f := config.Export(a.set)
	if a.file != nil {
		f.Layout = a.file.Layout
	}
	a.mu.Unlock()
	return config.Save(path, f)
}

// Shutdown stops the watcher and the script host. It is safe to call more
// than once.
func (a *Application) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.closed = true
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warn("close watcher", "error", err)
		}
		a.watcher = nil
	}
	if a.script != nil {
		a.script.Close()
	}
}
