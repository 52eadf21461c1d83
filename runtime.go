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
	"os"
	"time"

	"github.com/brunotm/shell/log"
)

const (
	// DefaultBufferSize is the bounded-stream capacity new streams get when
	// a call does not otherwise specify one and stage.buffer_size is unset.
	DefaultBufferSize = 256
	// DefaultCloseTimeout bounds how long RunJob waits for every stage to
	// join once the terminal value has been received, when
	// stream.close_timeout is unset.
	DefaultCloseTimeout = 10 * time.Second
)

// Runtime is the shell's top-level handle: a root Scope with every builtin
// registered, a Config carrying the ambient runtime settings, a Printer for
// diagnostics, and a Logger for operational events. It is the one object
// an embedder constructs and reuses across jobs.
type Runtime struct {
	Root    *Scope
	Config  Config
	Printer *Printer
	Logger  log.Logger
}

// RegisterFunc registers builtins into a root Scope; satisfied by
// builtin.Register without this package importing the builtin package
// (which itself imports shell), avoiding an import cycle.
type RegisterFunc func(root *Scope) error

// NewRuntime builds a Runtime with register applied to a fresh root scope.
func NewRuntime(register RegisterFunc) (*Runtime, error) {
	root := NewScope()
	if err := register(root); err != nil {
		return nil, err
	}
	return &Runtime{
		Root:    root,
		Config:  DefaultRuntimeConfig(),
		Printer: NewPrinter(os.Stdout),
		Logger:  log.New("component", "shell"),
	}, nil
}

// RunJob compiles and runs job against a fresh child of the runtime's root
// scope, returning the terminal Value sent by the last stage.
func (rt *Runtime) RunJob(job []CallDefinition) (Value, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Value{}, Wrap(Io, err, "resolve working directory")
	}

	scope := rt.Root.NewChild()
	in := NewValueChannel()
	in.Send(EmptyValue)
	out := NewValueChannel()

	rt.Logger.Infow("compiling job", "stages", len(job))

	handles, err := CompileJob(job, scope, cwd, in, newOutputSink(out), rt.Printer, rt.Config)
	if err != nil {
		return Value{}, err
	}

	result, recvErr := out.Recv()

	closeTimeout := rt.Config.Get("stream", "close_timeout").Duration(DefaultCloseTimeout)
	joined := make(chan error, 1)
	go func() { joined <- JoinAll(handles) }()

	select {
	case err := <-joined:
		if err != nil {
			rt.Logger.Warnw("job finished with stage error", "error", err)
		}
	case <-time.After(closeTimeout):
		rt.Logger.Warnw("stage join timed out, returning terminal value without waiting further",
			"timeout", closeTimeout)
	}

	if recvErr != nil {
		if Is(recvErr, ChannelClosed) {
			return EmptyValue, nil
		}
		return Value{}, recvErr
	}
	return result, nil
}
