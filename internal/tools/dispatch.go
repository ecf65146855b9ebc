package tools

import (
	"context"
	"time"
)

// Dispatcher routes tool invocations to their binaries.
type Dispatcher struct {
	reg     *Registry
	timeout time.Duration
	run     func(ctx context.Context, opts Options) (ExecutionResult, error)
}

// NewDispatcher returns a dispatcher bounding every invocation by
// timeout; zero falls back to one minute.
func NewDispatcher(reg *Registry, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Dispatcher{reg: reg, timeout: timeout, run: Run}
}

// Registry exposes the registry the dispatcher serves.
func (dp *Dispatcher) Registry() *Registry {
	return dp.reg
}

// Dispatch invokes one registered tool. The raw argument string is
// split shell-style into argv locally; no shell ever runs. jsonOut
// appends the tool's machine-readable output flag.
func (dp *Dispatcher) Dispatch(ctx context.Context, id ToolID, rawArgs string, jsonOut bool) (ExecutionResult, error) {
	if _, err := dp.reg.Lookup(id); err != nil {
		return ExecutionResult{}, err
	}
	args, err := SplitArgs(rawArgs)
	if err != nil {
		return ExecutionResult{}, err
	}
	return dp.DispatchArgv(ctx, id, args, jsonOut)
}

// DispatchArgv invokes a tool with an argv assembled by the caller.
// Wrapper tools use it so multi-word parameters stay single tokens.
func (dp *Dispatcher) DispatchArgv(ctx context.Context, id ToolID, args []string, jsonOut bool) (ExecutionResult, error) {
	d, err := dp.reg.Lookup(id)
	if err != nil {
		return ExecutionResult{}, err
	}
	path, err := Resolve(d)
	if err != nil {
		return ExecutionResult{}, err
	}
	if jsonOut {
		args = append(append([]string{}, args...), d.JSONArgs...)
	}
	return dp.run(ctx, Options{Path: path, Args: args, Timeout: dp.timeout})
}

// Help fetches --help output for a tool, optionally scoped to a
// subcommand path like "issues create".
func (dp *Dispatcher) Help(ctx context.Context, id ToolID, subcommand string) (ExecutionResult, error) {
	args, err := SplitArgs(subcommand)
	if err != nil {
		return ExecutionResult{}, err
	}
	args = append(args, "--help")
	return dp.DispatchArgv(ctx, id, args, false)
}
