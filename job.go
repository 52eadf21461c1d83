package shell

/*
   Copyright 2018 Bruno Moura <brunotm@gmail.com>

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

import (
	"strings"

	"github.com/brunotm/shell/log"
	"go.uber.org/multierr"
)

// JobJoinHandle is returned for each spawned stage; Wait blocks until that
// stage's goroutine has returned (section 4.4).
type JobJoinHandle struct {
	name string
	done chan struct{}
	err  error
}

// Wait blocks until the stage completes, returning its error if any.
func (h *JobJoinHandle) Wait() error {
	<-h.done
	return h.err
}

// JoinAll waits for every handle in order, combining every stage's error (if
// any) into one. A job with a single failing stage, the common case, yields
// that stage's error unwrapped. Used by Closure.Invoke and by top-level job
// runners.
func JoinAll(handles []*JobJoinHandle) error {
	var combined error
	for _, h := range handles {
		combined = multierr.Append(combined, h.Wait())
	}
	return combined
}

// CompileJob implements the job compiler of section 4.4: it wires
// firstInput into call 0's input, lastOutput onto call n-1's output, an
// internal ValueChannel between every adjacent pair of calls, resolves
// each call's command or closure, and spawns one goroutine per stage.
// cfg supplies the ambient stage.buffer_size and stage.default_scale
// settings; its zero value falls back to this package's own defaults.
func CompileJob(job []CallDefinition, scope *Scope, cwd string, firstInput *ValueChannel, lastOutput *OutputSink, printer *Printer, cfg Config) ([]*JobJoinHandle, error) {
	if len(job) == 0 {
		return nil, NewError(InvalidArgument, "job has no calls")
	}

	defaultScale := cfg.Get("stage", "default_scale").Int(1)

	inputs := make([]*ValueChannel, len(job))
	inputs[0] = firstInput
	for i := 1; i < len(job); i++ {
		inputs[i] = NewValueChannel()
	}

	handles := make([]*JobJoinHandle, len(job))
	for i, call := range job {
		i, call := i, call

		invocable, err := resolveInvocable(scope, call.Name)
		if err != nil {
			return nil, err
		}

		stageInput := inputs[i]
		var stageOutput *OutputSink
		if i == len(job)-1 {
			stageOutput = lastOutput
		} else {
			stageOutput = newOutputSink(inputs[i+1])
		}

		stageName := strings.Join(call.Name, ".")
		handle := &JobJoinHandle{name: stageName, done: make(chan struct{})}
		handles[i] = handle

		go func() {
			stageLogger := log.New("stage", stageName, "index", i)
			stageLogger.Debugw("stage starting")
			defer func() {
				close(handle.done)
				if handle.err != nil {
					stageLogger.Warnw("stage finished with error", "error", handle.err)
				} else {
					stageLogger.Debugw("stage finished")
				}
			}()
			defer stageOutput.closeIfUnset()

			var deps []*JobJoinHandle
			args, err := compileArguments(call.Arguments, scope, cwd, false, &deps, printer, cfg)
			if err != nil {
				handle.err = err
				printer.JobError(handle.name, err)
				return
			}

			ctx := &ExecutionContext{
				input:     stageInput,
				output:    stageOutput,
				arguments: args,
				scope:     scope,
				printer:   printer,
				logger:    stageLogger,
				cwd:       cwd,
				cfg:       cfg,
			}

			scale := resolveScale(call.Scale, defaultScale)
			run := invocable.Invoke
			if scale > 1 {
				stageLogger.Infow("stage scaling", "workers", scale, "key", call.ScaleKey)
				run = func(ctx *ExecutionContext) error {
					return runScaled(invocable.Invoke, scale, call.ScaleKey, ctx)
				}
			}

			if err := run(ctx); err != nil {
				handle.err = err
				printer.JobError(handle.name, err)
			}

			if err := JoinAll(deps); err != nil && handle.err == nil {
				handle.err = err
				printer.JobError(handle.name, err)
			}
		}()
	}

	return handles, nil
}

// resolveScale applies the stage.default_scale setting to a call that did
// not itself request a scale; an explicit CallDefinition.Scale always wins.
func resolveScale(callScale, defaultScale int) int {
	if callScale <= 0 {
		return defaultScale
	}
	return callScale
}

// spawnSubJob compiles and runs job as an argument sub-job (JobDefinition,
// section 4.3): it gets a fresh input/output channel pair and the caller
// blocks on the output for exactly one Value.
func spawnSubJob(job []CallDefinition, scope *Scope, cwd string, printer *Printer, cfg Config) (*JobJoinHandle, *ValueChannel, error) {
	in := NewValueChannel()
	in.Send(EmptyValue)
	out := NewValueChannel()

	handles, err := CompileJob(job, scope, cwd, in, newOutputSink(out), printer, cfg)
	if err != nil {
		return nil, nil, err
	}

	// Collapse the handles of this sub-job into a single join point.
	joined := &JobJoinHandle{name: "subjob", done: make(chan struct{})}
	go func() {
		defer close(joined.done)
		joined.err = JoinAll(handles)
	}()
	return joined, out, nil
}

// invocable is the single dispatch capability shared by Command and Closure
// (section 4.4 step 2a): the job compiler need not distinguish builtins
// from user closures once resolution has happened.
type invocable interface {
	Invoke(ctx *ExecutionContext) error
}

// resolveInvocable resolves a dotted command name by scope path lookup; it
// must yield a Command or Closure Value, else UnknownCommand.
func resolveInvocable(scope *Scope, name []string) (invocable, error) {
	v, err := scope.GetPath(name)
	if err != nil {
		return nil, NewError(UnknownCommand, "unknown command %q", strings.Join(name, "."))
	}
	if c, ok := v.AsCommand(); ok {
		return c, nil
	}
	if c, ok := v.AsClosure(); ok {
		return c, nil
	}
	return nil, NewError(UnknownCommand, "%q is not a command", strings.Join(name, "."))
}

// closeIfUnset closes o's underlying channel if the producing stage never
// called Send/Initialize, so a consumer's Recv observes ChannelClosed
// cleanly instead of hanging (section 4.5 contract). This applies uniformly
// to every stage's output, including the job's final one. A command that
// fails without writing must never leave its caller blocked forever.
func (o *OutputSink) closeIfUnset() {
	o.mtx.Lock()
	set := o.set
	o.mtx.Unlock()
	if !set {
		o.ch.Close()
	}
}
