package tools

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Options configures one subprocess run.
type Options struct {
	Path    string        // absolute path or bare binary name
	Args    []string      // argv passed verbatim; no shell is involved
	Dir     string        // working directory; empty inherits ours
	Env     []string      // extra KEY=VALUE entries appended to the environment
	Stdin   string        // data piped to the child's stdin
	Timeout time.Duration // kill the child after this long; 0 means no limit
}

// grace between the timeout kill and abandoning Wait on held pipes
const waitDelay = 3 * time.Second

// Run executes one subprocess and captures both output streams. A
// timeout is not an error: the child is killed, TimedOut is set and the
// partial output is returned. The error return is reserved for failures
// to launch at all and for caller cancellation.
func Run(ctx context.Context, opts Options) (ExecutionResult, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, opts.Path, opts.Args...)
	cmd.Dir = opts.Dir
	// Avoid pagers, prompts and ANSI noise in captured output
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	cmd.Env = append(cmd.Env, opts.Env...)
	if opts.Stdin != "" {
		cmd.Stdin = strings.NewReader(opts.Stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	res := ExecutionResult{
		Stdout: strings.ToValidUTF8(stdout.String(), "�"),
		Stderr: strings.ToValidUTF8(stderr.String(), "�"),
	}
	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.TimedOut = true
		res.ExitCode = -1
	case errors.Is(ctx.Err(), context.Canceled):
		return res, ctx.Err()
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else if errors.Is(err, exec.ErrWaitDelay) {
			// child exited cleanly but left its pipes to a grandchild
			res.ExitCode = cmd.ProcessState.ExitCode()
		} else {
			return res, &LaunchError{Path: opts.Path, Err: err}
		}
	}
	return res, nil
}

// runCmd executes a command and returns combined output as string. The
// package manager plumbing uses it where stream separation is not
// needed.
func runCmd(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	// Avoid opening pager or interactive prompts
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ctx.Err()
	}
	return string(out), err
}
