package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tu "github.com/open-cli-collective/opencli-mcp/internal/testutil"
)

// fakePM is an in-memory package manager. onUpgrade/onInstall hooks let
// tests mutate the fake binaries the way a real upgrade would.
type fakePM struct {
	mu         sync.Mutex
	latest     map[ToolID]string
	latestErr  map[ToolID]error
	upgradeErr map[ToolID]error
	installErr map[ToolID]error
	upgraded   []ToolID
	installed  []ToolID
	onUpgrade  func(d ToolDescriptor)
	onInstall  func(d ToolDescriptor)
}

func (f *fakePM) Latest(ctx context.Context, d ToolDescriptor) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.latestErr[d.ID]; err != nil {
		return "", err
	}
	v, ok := f.latest[d.ID]
	if !ok {
		return "", fmt.Errorf("no published version for %s", d.ID)
	}
	return v, nil
}

func (f *fakePM) Upgrade(ctx context.Context, d ToolDescriptor) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.upgradeErr[d.ID]; err != nil {
		return "", err
	}
	f.upgraded = append(f.upgraded, d.ID)
	if f.onUpgrade != nil {
		f.onUpgrade(d)
	}
	return "ok", nil
}

func (f *fakePM) Install(ctx context.Context, d ToolDescriptor) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.installErr[d.ID]; err != nil {
		return "", err
	}
	f.installed = append(f.installed, d.ID)
	if f.onInstall != nil {
		f.onInstall(d)
	}
	return "ok", nil
}

func testReconciler(reg *Registry, pm *fakePM) *Reconciler {
	t := Timeouts{Version: 2 * time.Second, Index: 2 * time.Second, Update: 5 * time.Second}
	return NewReconciler(reg, t).WithManager(SourceCask, pm)
}

func versionScript(t *testing.T, dir, name, version string) {
	t.Helper()
	tu.WriteScript(t, dir, name, fmt.Sprintf("echo \"%s version %s\"\n", name, version))
}

func TestCheckUpdates_States(t *testing.T) {
	dir := probeDir(t)
	versionScript(t, dir, "alpha", "1.0.0")
	versionScript(t, dir, "beta", "2.0.0")
	versionScript(t, dir, "delta", "3.0.0")

	reg := NewRegistry(
		testDescriptor("alpha"),
		testDescriptor("beta"),
		testDescriptor("gamma"), // no binary on PATH
		testDescriptor("delta"),
	)
	pm := &fakePM{
		latest:    map[ToolID]string{"alpha": "1.1.0", "beta": "2.0.0", "gamma": "0.9.0"},
		latestErr: map[ToolID]error{"delta": errors.New("index offline")},
	}
	cands, err := testReconciler(reg, pm).CheckUpdates(context.Background(), nil)
	if err != nil {
		t.Fatalf("CheckUpdates error: %v", err)
	}
	if len(cands) != 4 {
		t.Fatalf("unexpected candidate count: %d", len(cands))
	}

	// results keep registry order
	for i, want := range []ToolID{"alpha", "beta", "gamma", "delta"} {
		if cands[i].ID != want {
			t.Fatalf("order broken at %d: %+v", i, cands[i])
		}
	}

	alpha := cands[0]
	if alpha.State != StateNeedsUpdate || alpha.Installed != "1.0.0" || alpha.Latest != "1.1.0" {
		t.Fatalf("alpha candidate wrong: %+v", alpha)
	}
	if beta := cands[1]; beta.State != StateUpToDate {
		t.Fatalf("beta candidate wrong: %+v", beta)
	}
	// a missing tool is still a candidate: apply installs it
	gamma := cands[2]
	if gamma.State != StateNeedsUpdate || gamma.Installed != "" || gamma.Latest != "0.9.0" {
		t.Fatalf("gamma candidate wrong: %+v", gamma)
	}
	if !strings.Contains(gamma.Detail, "not installed") {
		t.Fatalf("gamma detail wrong: %+v", gamma)
	}
	delta := cands[3]
	if delta.State != StateUpToDate || !strings.Contains(delta.Detail, "latest version unavailable") {
		t.Fatalf("delta candidate wrong: %+v", delta)
	}
	if !delta.State.Terminal() || StateUpdating.Terminal() {
		t.Fatal("terminal classification broken")
	}
}

func TestCheckUpdates_UnknownID(t *testing.T) {
	probeDir(t)
	reg := NewRegistry(testDescriptor("alpha"))
	pm := &fakePM{latest: map[ToolID]string{}}
	_, err := testReconciler(reg, pm).CheckUpdates(context.Background(), []ToolID{"alpha", "nope"})
	var unknown *UnknownToolError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownToolError, got %v", err)
	}
}

func TestApplyUpdates_UpgradesAndReprobes(t *testing.T) {
	dir := probeDir(t)
	versionScript(t, dir, "alpha", "1.0.0")
	versionScript(t, dir, "beta", "2.0.0")

	reg := NewRegistry(testDescriptor("alpha"), testDescriptor("beta"))
	pm := &fakePM{latest: map[ToolID]string{"alpha": "1.1.0", "beta": "2.0.0"}}
	pm.onUpgrade = func(d ToolDescriptor) {
		// a real upgrade swaps the binary for the new version
		versionScript(t, dir, d.Binary, pm.latest[d.ID])
	}

	r := testReconciler(reg, pm)
	cands, err := r.ApplyUpdates(context.Background(), nil)
	if err != nil {
		t.Fatalf("ApplyUpdates error: %v", err)
	}
	alpha := cands[0]
	if alpha.State != StateUpdated || alpha.Installed != "1.1.0" {
		t.Fatalf("alpha not updated: %+v", alpha)
	}
	if alpha.Detail != "updated from 1.0.0 to 1.1.0" {
		t.Fatalf("unexpected update detail: %q", alpha.Detail)
	}
	if beta := cands[1]; beta.State != StateUpToDate || beta.Detail != "already up to date" {
		t.Fatalf("beta must be untouched: %+v", beta)
	}
	if len(pm.upgraded) != 1 || pm.upgraded[0] != "alpha" {
		t.Fatalf("unexpected upgrade calls: %v", pm.upgraded)
	}

	// a second pass finds nothing to do
	cands, err = r.ApplyUpdates(context.Background(), nil)
	if err != nil {
		t.Fatalf("second ApplyUpdates error: %v", err)
	}
	if cands[0].State != StateUpToDate {
		t.Fatalf("alpha must be up to date after update: %+v", cands[0])
	}
	if len(pm.upgraded) != 1 {
		t.Fatalf("update must be idempotent, upgrades: %v", pm.upgraded)
	}
}

func TestApplyUpdates_FailureContainment(t *testing.T) {
	dir := probeDir(t)
	versionScript(t, dir, "alpha", "1.0.0")
	versionScript(t, dir, "zeta", "4.0.0")

	reg := NewRegistry(testDescriptor("alpha"), testDescriptor("zeta"))
	pm := &fakePM{
		latest:     map[ToolID]string{"alpha": "1.1.0", "zeta": "4.1.0"},
		upgradeErr: map[ToolID]error{"alpha": errors.New("cask checksum mismatch")},
	}
	pm.onUpgrade = func(d ToolDescriptor) {
		versionScript(t, dir, d.Binary, pm.latest[d.ID])
	}

	cands, err := testReconciler(reg, pm).ApplyUpdates(context.Background(), nil)
	if err != nil {
		t.Fatalf("ApplyUpdates error: %v", err)
	}
	if cands[0].State != StateUpdateFailed || !strings.Contains(cands[0].Detail, "checksum") {
		t.Fatalf("alpha failure not contained: %+v", cands[0])
	}
	if cands[1].State != StateUpdated {
		t.Fatalf("zeta must update despite alpha failing: %+v", cands[1])
	}
}

func TestApplyUpdates_InstallsMissing(t *testing.T) {
	dir := probeDir(t)
	versionScript(t, dir, "alpha", "1.0.0")

	reg := NewRegistry(testDescriptor("alpha"), testDescriptor("gamma"))
	pm := &fakePM{latest: map[ToolID]string{"alpha": "1.0.0", "gamma": "0.9.0"}}
	pm.onInstall = func(d ToolDescriptor) {
		versionScript(t, dir, d.Binary, pm.latest[d.ID])
	}

	cands, err := testReconciler(reg, pm).ApplyUpdates(context.Background(), nil)
	if err != nil {
		t.Fatalf("ApplyUpdates error: %v", err)
	}
	if alpha := cands[0]; alpha.State != StateUpToDate {
		t.Fatalf("alpha must be untouched: %+v", alpha)
	}
	gamma := cands[1]
	if gamma.State != StateUpdated || gamma.Installed != "0.9.0" || gamma.Detail != "installed 0.9.0" {
		t.Fatalf("gamma not installed: %+v", gamma)
	}
	if len(pm.upgraded) != 0 {
		t.Fatalf("missing tool must install, not upgrade: %v", pm.upgraded)
	}
	if len(pm.installed) != 1 || pm.installed[0] != "gamma" {
		t.Fatalf("unexpected install calls: %v", pm.installed)
	}
}

func TestInstall(t *testing.T) {
	dir := probeDir(t)
	reg := NewRegistry(testDescriptor("omega"))
	pm := &fakePM{latest: map[ToolID]string{"omega": "0.5.0"}}
	pm.onInstall = func(d ToolDescriptor) {
		versionScript(t, dir, d.Binary, "0.5.0")
	}

	r := testReconciler(reg, pm)
	c, err := r.Install(context.Background(), "omega")
	if err != nil {
		t.Fatalf("Install error: %v", err)
	}
	if c.State != StateUpdated || c.Installed != "0.5.0" || c.Detail != "installed 0.5.0" {
		t.Fatalf("unexpected install candidate: %+v", c)
	}

	// installing again is a no-op
	c, err = r.Install(context.Background(), "omega")
	if err != nil {
		t.Fatalf("second Install error: %v", err)
	}
	if c.State != StateUpToDate || c.Detail != "already installed" {
		t.Fatalf("reinstall must short-circuit: %+v", c)
	}
	if len(pm.installed) != 1 {
		t.Fatalf("unexpected install calls: %v", pm.installed)
	}
}

func TestInstallMissing(t *testing.T) {
	dir := probeDir(t)
	versionScript(t, dir, "present", "1.0.0")

	reg := NewRegistry(testDescriptor("present"), testDescriptor("absent"))
	pm := &fakePM{latest: map[ToolID]string{"absent": "2.0.0"}}
	pm.onInstall = func(d ToolDescriptor) {
		versionScript(t, dir, d.Binary, "2.0.0")
	}

	cands, err := testReconciler(reg, pm).InstallMissing(context.Background())
	if err != nil {
		t.Fatalf("InstallMissing error: %v", err)
	}
	if len(cands) != 1 || cands[0].ID != "absent" || cands[0].State != StateUpdated {
		t.Fatalf("unexpected install set: %+v", cands)
	}
	if len(pm.installed) != 1 || pm.installed[0] != "absent" {
		t.Fatalf("present tool must not be reinstalled: %v", pm.installed)
	}
}

func TestStatusAll(t *testing.T) {
	dir := probeDir(t)
	versionScript(t, dir, "alpha", "1.0.0")

	reg := NewRegistry(testDescriptor("alpha"), testDescriptor("ghost"))
	pm := &fakePM{latest: map[ToolID]string{"alpha": "1.1.0"}}

	sts := testReconciler(reg, pm).StatusAll(context.Background(), true)
	if len(sts) != 2 {
		t.Fatalf("unexpected status count: %d", len(sts))
	}
	alpha := sts[0]
	if alpha.ID != "alpha" || !alpha.Installed || alpha.Version != "1.0.0" || alpha.Latest != "1.1.0" {
		t.Fatalf("alpha status wrong: %+v", alpha)
	}
	ghost := sts[1]
	if ghost.ID != "ghost" || ghost.Installed || ghost.Err == "" {
		t.Fatalf("ghost status wrong: %+v", ghost)
	}
}

func TestCheckOne_UnsupportedSource(t *testing.T) {
	dir := probeDir(t)
	versionScript(t, dir, "weird", "1.0.0")

	d := testDescriptor("weird")
	d.Source = Source("apt")
	reg := NewRegistry(d)

	cands, err := testReconciler(reg, &fakePM{}).CheckUpdates(context.Background(), nil)
	if err != nil {
		t.Fatalf("CheckUpdates error: %v", err)
	}
	if cands[0].State != StateUpdateFailed || !strings.Contains(cands[0].Detail, "unsupported source") {
		t.Fatalf("unsupported source not reported: %+v", cands[0])
	}
}
