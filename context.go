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
	"path/filepath"
	"sync"

	"github.com/brunotm/shell/log"
	"github.com/brunotm/shell/types"
)

// OutputSink is the write side of a command's output (section 4.5). A
// command sends exactly one Value with Send, or switches to streaming mode
// with Initialize and sends Rows through the returned RowSender. Either path
// may be taken at most once; a command that does neither leaves the
// downstream channel closed without a value, so the consumer's Recv returns
// a ChannelClosed error.
type OutputSink struct {
	ch  *ValueChannel
	mtx sync.Mutex
	set bool
}

func newOutputSink(ch *ValueChannel) *OutputSink {
	return &OutputSink{ch: ch}
}

// Send emits a single scalar Value and completes the output.
func (o *OutputSink) Send(v Value) error {
	o.mtx.Lock()
	defer o.mtx.Unlock()
	if o.set {
		return NewError(Internal, "output already sent")
	}
	o.set = true
	o.ch.Send(v)
	return nil
}

// Initialize switches to streaming mode: it immediately hands downstream a
// TableStream Value wrapping a fresh RowStream of the given schema, and
// returns the write half for the caller to Send Rows into. capacity <= 0
// creates an unbounded (non-blocking) stream; capacity > 0 creates a
// bounded, backpressuring stream of that buffer size.
func (o *OutputSink) Initialize(schema []ColumnType, capacity int) (RowSender, error) {
	o.mtx.Lock()
	defer o.mtx.Unlock()
	if o.set {
		return nil, NewError(Internal, "output already sent")
	}
	o.set = true
	var stream RowStream
	if capacity > 0 {
		stream = NewBoundedStream(schema, capacity)
	} else {
		stream = NewUnboundedStream(schema)
	}
	o.ch.Send(TableStreamValue(stream))
	return stream, nil
}

// ExecutionContext is the argument every CommandFunc receives (section 4.5).
type ExecutionContext struct {
	input     *ValueChannel
	output    *OutputSink
	arguments []Argument
	drained   int
	scope     *Scope
	printer   *Printer
	logger    log.Logger
	cwd       string
	cfg       Config
}

// NewExecutionContext builds an ExecutionContext for a single call stage.
func NewExecutionContext(input *ValueChannel, output *ValueChannel, arguments []Argument, scope *Scope, printer *Printer, cwd string) *ExecutionContext {
	return &ExecutionContext{
		input:     input,
		output:    newOutputSink(output),
		arguments: arguments,
		scope:     scope,
		printer:   printer,
		logger:    log.New("component", "shell"),
		cwd:       cwd,
	}
}

func (ctx *ExecutionContext) Input() *ValueChannel   { return ctx.input }
func (ctx *ExecutionContext) Output() *OutputSink    { return ctx.output }
func (ctx *ExecutionContext) Arguments() []Argument  { return ctx.arguments }
func (ctx *ExecutionContext) Scope() *Scope          { return ctx.scope }
func (ctx *ExecutionContext) Printer() *Printer      { return ctx.printer }
func (ctx *ExecutionContext) Logger() log.Logger     { return ctx.logger }
func (ctx *ExecutionContext) Cwd() string            { return ctx.cwd }
func (ctx *ExecutionContext) Config() Config         { return ctx.cfg }
func (ctx *ExecutionContext) rawOutput() *OutputSink { return ctx.output }

// BufferSize is the bounded-stream capacity a stage should use when it
// initializes a new output stream and has no size of its own to prefer,
// taken from this job's stage.buffer_size setting.
func (ctx *ExecutionContext) BufferSize() int {
	return ctx.cfg.Get("stage", "buffer_size").Int(DefaultBufferSize)
}

// CheckLen fails InvalidArgument unless exactly n arguments were given.
func (ctx *ExecutionContext) CheckLen(n int) error {
	if len(ctx.arguments) != n {
		return NewError(InvalidArgument, "expected %d arguments, got %d", n, len(ctx.arguments))
	}
	return nil
}

// ValueAt returns the i'th argument's Value, if present.
func (ctx *ExecutionContext) ValueAt(i int) (Value, bool) {
	if i < 0 || i >= len(ctx.arguments) {
		return Value{}, false
	}
	return ctx.arguments[i].Value, true
}

// OptionalInteger returns the i'th argument as an Integer if it exists and
// has that type; otherwise (0, false).
func (ctx *ExecutionContext) OptionalInteger(i int) (int64, bool) {
	v, ok := ctx.ValueAt(i)
	if !ok {
		return 0, false
	}
	return v.AsInteger()
}

// Files expands every File/Glob argument against the working directory,
// reporting unmatched globs to printer rather than failing the command.
func (ctx *ExecutionContext) Files() ([]string, error) {
	var out []string
	for _, a := range ctx.arguments {
		switch a.Value.Kind() {
		case types.File:
			p, _ := a.Value.AsFile()
			out = append(out, p)
		case types.Glob:
			pattern, _ := a.Value.AsGlob()
			matches, err := filepath.Glob(filepath.Join(ctx.cwd, pattern))
			if err != nil {
				return nil, Wrap(InvalidArgument, err, "invalid glob %q", pattern)
			}
			if len(matches) == 0 {
				ctx.printer.Printf("glob %q matched no files", pattern)
			}
			out = append(out, matches...)
		}
	}
	return out, nil
}

// Drain returns the arguments not returned by an earlier Drain call and
// marks all of them consumed. CheckLen and ValueAt do not consume arguments.
func (ctx *ExecutionContext) Drain() []Argument {
	rest := ctx.arguments[ctx.drained:]
	ctx.drained = len(ctx.arguments)
	return rest
}
