package tools

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	tu "github.com/open-cli-collective/opencli-mcp/internal/testutil"
)

// captureDispatcher returns a dispatcher whose runner records Options
// instead of spawning anything.
func captureDispatcher(reg *Registry) (*Dispatcher, *[]Options) {
	var seen []Options
	dp := NewDispatcher(reg, time.Second)
	dp.run = func(ctx context.Context, opts Options) (ExecutionResult, error) {
		seen = append(seen, opts)
		return ExecutionResult{ExitCode: 0, Stdout: "ok"}, nil
	}
	return dp, &seen
}

func TestDispatch_SplitsAndAppendsJSONFlag(t *testing.T) {
	dir := probeDir(t)
	versionScript(t, dir, "alpha", "1.0.0")

	dp, seen := captureDispatcher(NewRegistry(testDescriptor("alpha")))
	res, err := dp.Dispatch(context.Background(), "alpha", `issues create --summary "Fix login bug"`, true)
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(*seen) != 1 {
		t.Fatalf("expected one spawn, got %d", len(*seen))
	}
	got := (*seen)[0]
	want := []string{"issues", "create", "--summary", "Fix login bug", "--output", "json"}
	if !reflect.DeepEqual(got.Args, want) {
		t.Fatalf("unexpected argv: %#v", got.Args)
	}
	if !strings.HasSuffix(got.Path, "alpha") {
		t.Fatalf("unexpected resolved path: %q", got.Path)
	}
	if got.Timeout != time.Second {
		t.Fatalf("dispatch timeout not applied: %v", got.Timeout)
	}
}

func TestDispatch_NoJSONFlagWhenNotAsked(t *testing.T) {
	dir := probeDir(t)
	versionScript(t, dir, "alpha", "1.0.0")

	dp, seen := captureDispatcher(NewRegistry(testDescriptor("alpha")))
	if _, err := dp.Dispatch(context.Background(), "alpha", "me", false); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if got := (*seen)[0].Args; !reflect.DeepEqual(got, []string{"me"}) {
		t.Fatalf("unexpected argv: %#v", got)
	}
}

func TestDispatch_UnknownToolNeverSpawns(t *testing.T) {
	dp, seen := captureDispatcher(NewRegistry(testDescriptor("alpha")))
	_, err := dp.Dispatch(context.Background(), "alhpa", "whatever", false)
	var unknown *UnknownToolError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownToolError, got %v", err)
	}
	if len(*seen) != 0 {
		t.Fatal("unknown tool must not spawn a process")
	}
}

func TestDispatch_MalformedArgsNeverSpawn(t *testing.T) {
	dp, seen := captureDispatcher(NewRegistry(testDescriptor("alpha")))
	if _, err := dp.Dispatch(context.Background(), "alpha", `broken "quote`, false); err == nil {
		t.Fatal("expected split error")
	}
	if len(*seen) != 0 {
		t.Fatal("malformed args must not spawn a process")
	}
}

func TestDispatch_NotInstalled(t *testing.T) {
	probeDir(t)
	dp, seen := captureDispatcher(NewRegistry(testDescriptor("surely-absent-tool")))
	_, err := dp.Dispatch(context.Background(), "surely-absent-tool", "me", false)
	var notInstalled *NotInstalledError
	if !errors.As(err, &notInstalled) {
		t.Fatalf("expected NotInstalledError, got %v", err)
	}
	if len(*seen) != 0 {
		t.Fatal("missing binary must not spawn a process")
	}
}

func TestHelp_AppendsHelpFlag(t *testing.T) {
	dir := probeDir(t)
	versionScript(t, dir, "alpha", "1.0.0")

	dp, seen := captureDispatcher(NewRegistry(testDescriptor("alpha")))
	if _, err := dp.Help(context.Background(), "alpha", "issues create"); err != nil {
		t.Fatalf("Help error: %v", err)
	}
	want := []string{"issues", "create", "--help"}
	if got := (*seen)[0].Args; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected help argv: %#v", got)
	}

	// top-level help has just the flag
	if _, err := dp.Help(context.Background(), "alpha", ""); err != nil {
		t.Fatalf("Help error: %v", err)
	}
	if got := (*seen)[1].Args; !reflect.DeepEqual(got, []string{"--help"}) {
		t.Fatalf("unexpected top-level help argv: %#v", got)
	}
}

func TestDispatchArgv_EndToEnd(t *testing.T) {
	dir := probeDir(t)
	// real script that echoes its argv back, one per line
	tu.WriteScript(t, dir, "echoer", "printf '%s\\n' \"$@\"\n")

	d := testDescriptor("echoer")
	dp := NewDispatcher(NewRegistry(d), 5*time.Second)
	res, err := dp.DispatchArgv(context.Background(), "echoer", []string{"multi word", "$HOME"}, false)
	if err != nil {
		t.Fatalf("DispatchArgv error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(res.Stdout, "\n"), "\n")
	if len(lines) != 2 || lines[0] != "multi word" || lines[1] != "$HOME" {
		t.Fatalf("argv not passed verbatim: %#v", lines)
	}
}
