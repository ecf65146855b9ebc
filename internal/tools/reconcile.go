package tools

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// checkConcurrency bounds parallel probes and index lookups.
const checkConcurrency = 4

// PackageManager installs and updates tools from one package index.
type PackageManager interface {
	Latest(ctx context.Context, d ToolDescriptor) (string, error)
	Upgrade(ctx context.Context, d ToolDescriptor) (string, error)
	Install(ctx context.Context, d ToolDescriptor) (string, error)
}

// Timeouts bounds the reconciler's phases. Zero fields fall back to the
// package defaults.
type Timeouts struct {
	Version time.Duration // local version probe
	Index   time.Duration // latest-version lookup
	Update  time.Duration // one install or upgrade
}

const (
	defaultVersionTimeout = 5 * time.Second
	defaultIndexTimeout   = 30 * time.Second
	defaultUpdateTimeout  = 300 * time.Second
)

func (t Timeouts) withDefaults() Timeouts {
	if t.Version <= 0 {
		t.Version = defaultVersionTimeout
	}
	if t.Index <= 0 {
		t.Index = defaultIndexTimeout
	}
	if t.Update <= 0 {
		t.Update = defaultUpdateTimeout
	}
	return t
}

// Reconciler drives the check/update cycle for registered tools.
type Reconciler struct {
	reg     *Registry
	t       Timeouts
	mgrs    map[Source]PackageManager
	brewErr error // reported per cask tool when brew is missing
}

// NewReconciler wires the default package managers. A missing brew is
// not fatal here; it only fails operations on cask tools, and those
// failures are reported per tool.
func NewReconciler(reg *Registry, t Timeouts) *Reconciler {
	r := &Reconciler{
		reg:  reg,
		t:    t.withDefaults(),
		mgrs: map[Source]PackageManager{SourceNpm: NewNpm()},
	}
	if b, err := NewBrew(); err == nil {
		r.mgrs[SourceCask] = b
	} else {
		r.brewErr = err
	}
	return r
}

// WithManager overrides the manager for a source and returns the
// receiver for chaining.
func (r *Reconciler) WithManager(s Source, m PackageManager) *Reconciler {
	r.mgrs[s] = m
	if s == SourceCask {
		r.brewErr = nil
	}
	return r
}

// Registry exposes the registry the reconciler operates on.
func (r *Reconciler) Registry() *Registry {
	return r.reg
}

func (r *Reconciler) managerFor(d ToolDescriptor) (PackageManager, error) {
	if m, ok := r.mgrs[d.Source]; ok {
		return m, nil
	}
	if d.Source == SourceCask && r.brewErr != nil {
		return nil, r.brewErr
	}
	return nil, fmt.Errorf("unsupported source: %q", d.Source)
}

// descriptors maps requested IDs to descriptors; empty means all.
// Unknown IDs fail the whole call so a typo cannot silently no-op.
func (r *Reconciler) descriptors(ids []ToolID) ([]ToolDescriptor, error) {
	if len(ids) == 0 {
		return r.reg.Descriptors(), nil
	}
	out := make([]ToolDescriptor, 0, len(ids))
	for _, id := range ids {
		d, err := r.reg.Lookup(id)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Status reports one tool, optionally with the latest published version.
func (r *Reconciler) Status(ctx context.Context, id ToolID, withLatest bool) (ToolStatus, error) {
	d, err := r.reg.Lookup(id)
	if err != nil {
		return ToolStatus{}, err
	}
	st := CheckTool(ctx, d, r.t.Version)
	if withLatest {
		if mgr, merr := r.managerFor(d); merr == nil {
			ictx, cancel := context.WithTimeout(ctx, r.t.Index)
			if latest, lerr := mgr.Latest(ictx, d); lerr == nil {
				st.Latest = latest
			}
			cancel()
		}
	}
	return st, nil
}

// LatestVersion looks up the latest published version for one tool
// without probing the local install.
func (r *Reconciler) LatestVersion(ctx context.Context, id ToolID) (string, error) {
	d, err := r.reg.Lookup(id)
	if err != nil {
		return "", err
	}
	mgr, err := r.managerFor(d)
	if err != nil {
		return "", err
	}
	ictx, cancel := context.WithTimeout(ctx, r.t.Index)
	defer cancel()
	return mgr.Latest(ictx, d)
}

// StatusAll reports every registered tool. Probes run concurrently and
// results keep registry order.
func (r *Reconciler) StatusAll(ctx context.Context, withLatest bool) []ToolStatus {
	ds := r.reg.Descriptors()
	out := make([]ToolStatus, len(ds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(checkConcurrency)
	for i, d := range ds {
		g.Go(func() error {
			st, _ := r.Status(gctx, d.ID, withLatest)
			out[i] = st
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// CheckUpdates computes update candidates for the given tools, or for
// every registered tool when ids is empty. Checks run concurrently;
// results keep request order.
func (r *Reconciler) CheckUpdates(ctx context.Context, ids []ToolID) ([]UpdateCandidate, error) {
	ds, err := r.descriptors(ids)
	if err != nil {
		return nil, err
	}
	out := make([]UpdateCandidate, len(ds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(checkConcurrency)
	for i, d := range ds {
		g.Go(func() error {
			out[i] = r.checkOne(gctx, d)
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

// checkOne walks one tool through requested -> checking -> terminal
// check state. A missing tool is an update candidate (apply installs
// it); a missing latest version never triggers an update.
func (r *Reconciler) checkOne(ctx context.Context, d ToolDescriptor) UpdateCandidate {
	c := UpdateCandidate{ID: d.ID, State: StateChecking}
	st := CheckTool(ctx, d, r.t.Version)
	c.Installed = st.Version
	mgr, err := r.managerFor(d)
	if err != nil {
		c.State = StateUpdateFailed
		c.Detail = err.Error()
		return c
	}
	ictx, cancel := context.WithTimeout(ctx, r.t.Index)
	latest, err := mgr.Latest(ictx, d)
	cancel()
	if err != nil {
		c.State = StateUpToDate
		c.Detail = "latest version unavailable: " + err.Error()
		return c
	}
	c.Latest = latest
	switch {
	case !st.Installed:
		c.State = StateNeedsUpdate
		c.Detail = "not installed"
	case IsNewer(latest, c.Installed):
		c.State = StateNeedsUpdate
	default:
		c.State = StateUpToDate
	}
	return c
}

// ApplyUpdates upgrades each requested tool that has a newer published
// version and installs the ones that are missing. Checks run
// concurrently, package operations sequentially: the package manager
// serializes on its own lock anyway, and one failed operation must not
// abort the rest.
func (r *Reconciler) ApplyUpdates(ctx context.Context, ids []ToolID) ([]UpdateCandidate, error) {
	cands, err := r.CheckUpdates(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range cands {
		c := &cands[i]
		if c.State != StateNeedsUpdate {
			if c.State == StateUpToDate && c.Detail == "" {
				c.Detail = "already up to date"
			}
			continue
		}
		d, lerr := r.reg.Lookup(c.ID)
		if lerr != nil {
			c.State = StateUpdateFailed
			c.Detail = lerr.Error()
			continue
		}
		mgr, merr := r.managerFor(d)
		if merr != nil {
			c.State = StateUpdateFailed
			c.Detail = merr.Error()
			continue
		}
		// resolve again right before acting; install state is never cached
		_, rerr := Resolve(d)
		fresh := rerr != nil
		c.State = StateUpdating
		uctx, cancel := context.WithTimeout(ctx, r.t.Update)
		var uerr error
		if fresh {
			_, uerr = mgr.Install(uctx, d)
		} else {
			_, uerr = mgr.Upgrade(uctx, d)
		}
		cancel()
		if uerr != nil {
			c.State = StateUpdateFailed
			c.Detail = uerr.Error()
			continue
		}
		c.State = StateUpdated
		old := c.Installed
		v, verr := InstalledVersion(ctx, d, r.t.Version)
		switch {
		case verr != nil || v == "":
			if fresh {
				c.Detail = "installed"
			} else {
				c.Detail = "updated"
			}
		case fresh:
			c.Installed = v
			c.Detail = "installed " + v
		default:
			c.Installed = v
			c.Detail = fmt.Sprintf("updated from %s to %s", old, v)
		}
	}
	return cands, nil
}

// Install installs one tool, tapping its tap first when needed.
// Installing a tool that is already present reports its current state
// without touching the package manager.
func (r *Reconciler) Install(ctx context.Context, id ToolID) (UpdateCandidate, error) {
	d, err := r.reg.Lookup(id)
	if err != nil {
		return UpdateCandidate{}, err
	}
	c := UpdateCandidate{ID: d.ID, State: StateChecking}
	st := CheckTool(ctx, d, r.t.Version)
	if st.Installed {
		c.Installed = st.Version
		c.State = StateUpToDate
		c.Detail = "already installed"
		return c, nil
	}
	mgr, err := r.managerFor(d)
	if err != nil {
		c.State = StateUpdateFailed
		c.Detail = err.Error()
		return c, nil
	}
	c.State = StateUpdating
	uctx, cancel := context.WithTimeout(ctx, r.t.Update)
	_, ierr := mgr.Install(uctx, d)
	cancel()
	if ierr != nil {
		c.State = StateUpdateFailed
		c.Detail = ierr.Error()
		return c, nil
	}
	c.State = StateUpdated
	if v, verr := InstalledVersion(ctx, d, r.t.Version); verr == nil && v != "" {
		c.Installed = v
		c.Detail = "installed " + v
	} else {
		c.Detail = "installed"
	}
	return c, nil
}

// InstallMissing installs every registered tool whose binary is absent.
// Installs run sequentially for the same reason upgrades do.
func (r *Reconciler) InstallMissing(ctx context.Context) ([]UpdateCandidate, error) {
	var out []UpdateCandidate
	for _, d := range r.reg.Descriptors() {
		if _, err := Resolve(d); err == nil {
			continue
		}
		c, err := r.Install(ctx, d.ID)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, nil
}
