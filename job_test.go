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
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doubleCommand(ctx *ExecutionContext) error {
	v, err := ctx.Input().Recv()
	if err != nil {
		return nil
	}
	i, _ := v.AsInteger()
	return ctx.Output().Send(Integer(i * 2))
}

func incrCommand(ctx *ExecutionContext) error {
	v, _ := ctx.Input().Recv()
	i, _ := v.AsInteger()
	return ctx.Output().Send(Integer(i + 1))
}

func failCommand(ctx *ExecutionContext) error {
	return NewError(Internal, "boom")
}

func silentCommand(ctx *ExecutionContext) error {
	ctx.Input().Recv()
	return nil
}

func newTestPrinter() *Printer { return NewPrinter(os.Stdout) }

func TestCompileJobSingleStage(t *testing.T) {
	scope := NewScope()
	scope.DeclareCommand("double", doubleCommand, false, "", "")

	job := []CallDefinition{{Name: []string{"double"}}}

	in := NewValueChannel()
	in.Send(Integer(21))
	out := NewValueChannel()

	handles, err := CompileJob(job, scope, ".", in, newOutputSink(out), newTestPrinter(), Config{})
	assert.Nil(t, err)

	v, err := out.Recv()
	assert.Nil(t, err)
	i, _ := v.AsInteger()
	assert.Equal(t, int64(42), i)
	assert.Nil(t, JoinAll(handles))
}

func TestCompileJobChainsStages(t *testing.T) {
	scope := NewScope()
	scope.DeclareCommand("double", doubleCommand, false, "", "")
	scope.DeclareCommand("incr", incrCommand, false, "", "")

	job := []CallDefinition{
		{Name: []string{"double"}},
		{Name: []string{"incr"}},
	}

	in := NewValueChannel()
	in.Send(Integer(10))
	out := NewValueChannel()

	handles, err := CompileJob(job, scope, ".", in, newOutputSink(out), newTestPrinter(), Config{})
	assert.Nil(t, err)

	v, err := out.Recv()
	assert.Nil(t, err)
	i, _ := v.AsInteger()
	assert.Equal(t, int64(21), i)
	assert.Nil(t, JoinAll(handles))
}

func TestCompileJobUnknownCommand(t *testing.T) {
	scope := NewScope()
	job := []CallDefinition{{Name: []string{"nope"}}}

	in := NewValueChannel()
	in.Send(EmptyValue)
	out := NewValueChannel()

	_, err := CompileJob(job, scope, ".", in, newOutputSink(out), newTestPrinter(), Config{})
	assert.True(t, Is(err, UnknownCommand))
}

func TestCompileJobStageErrorIsJoined(t *testing.T) {
	scope := NewScope()
	scope.DeclareCommand("fail", failCommand, false, "", "")
	job := []CallDefinition{{Name: []string{"fail"}}}

	in := NewValueChannel()
	in.Send(EmptyValue)
	out := NewValueChannel()

	handles, err := CompileJob(job, scope, ".", in, newOutputSink(out), newTestPrinter(), Config{})
	assert.Nil(t, err)

	// the stage never sends; downstream should observe ChannelClosed.
	_, recvErr := out.Recv()
	assert.True(t, Is(recvErr, ChannelClosed))

	joinErr := JoinAll(handles)
	assert.True(t, Is(joinErr, Internal))
}

func TestCompileJobSilentStageClosesDownstream(t *testing.T) {
	scope := NewScope()
	scope.DeclareCommand("silent", silentCommand, false, "", "")
	scope.DeclareCommand("double", doubleCommand, false, "", "")

	job := []CallDefinition{
		{Name: []string{"silent"}},
		{Name: []string{"double"}},
	}

	in := NewValueChannel()
	in.Send(Integer(1))
	out := NewValueChannel()

	handles, err := CompileJob(job, scope, ".", in, newOutputSink(out), newTestPrinter(), Config{})
	assert.Nil(t, err)

	_, recvErr := out.Recv()
	assert.True(t, Is(recvErr, ChannelClosed))
	assert.Nil(t, JoinAll(handles))
}

func TestClosureInvoke(t *testing.T) {
	root := NewScope()
	root.DeclareCommand("double", doubleCommand, false, "", "")

	closure := &Closure{
		Jobs:     []CallDefinition{{Name: []string{"double"}}},
		Captured: root,
	}

	in := NewValueChannel()
	in.Send(Integer(5))
	out := NewValueChannel()

	ctx := NewExecutionContext(in, out, nil, root, newTestPrinter(), ".")
	assert.Nil(t, closure.Invoke(ctx))

	v, err := out.Recv()
	assert.Nil(t, err)
	i, _ := v.AsInteger()
	assert.Equal(t, int64(10), i)
}

func TestResolveScaleKeepsExplicitCallScale(t *testing.T) {
	assert.Equal(t, 4, resolveScale(4, 1))
}

func TestResolveScaleFallsBackToDefaultWhenUnset(t *testing.T) {
	assert.Equal(t, 3, resolveScale(0, 3))
}

// TestCompileJobAppliesConfiguredDefaultScale leaves CallDefinition.Scale
// unset and checks that stage.default_scale still fans the stage out across
// that many worker invocations, not just that rows still arrive intact.
func TestCompileJobAppliesConfiguredDefaultScale(t *testing.T) {
	var invocations int32
	passthrough := func(ctx *ExecutionContext) error {
		atomic.AddInt32(&invocations, 1)
		v, err := ctx.Input().Recv()
		if err != nil {
			return err
		}
		in, ok := v.AsTableStream()
		if !ok {
			return typeMismatch("expected a stream")
		}
		sender, err := ctx.Output().Initialize(in.Types(), ctx.BufferSize())
		if err != nil {
			return err
		}
		defer sender.Close()
		for {
			row, err := in.Recv()
			if err != nil {
				return nil
			}
			if err := sender.Send(row); err != nil {
				return nil
			}
		}
	}

	scope := NewScope()
	scope.DeclareCommand("passthrough", passthrough, false, "", "")

	schema := seqTestSchema()
	src := NewUnboundedStream(schema)
	for i := 0; i < 6; i++ {
		row, _ := NewRow(schema, []Value{Integer(int64(i))})
		src.Send(row)
	}
	src.Close()

	in := NewValueChannel()
	in.Send(TableStreamValue(src))
	out := NewValueChannel()

	// Scale is left unset on the call; stage.default_scale must supply it.
	job := []CallDefinition{{Name: []string{"passthrough"}}}
	cfg := NewConfig(map[string]interface{}{
		"stage": map[string]interface{}{"default_scale": 3},
	})

	handles, err := CompileJob(job, scope, ".", in, newOutputSink(out), newTestPrinter(), cfg)
	assert.Nil(t, err)

	v, err := out.Recv()
	assert.Nil(t, err)
	stream, ok := v.AsTableStream()
	assert.True(t, ok)

	var got []int64
	for {
		row, err := stream.Recv()
		if err != nil {
			break
		}
		i, _ := row.Cells[0].AsInteger()
		got = append(got, i)
	}
	assert.Len(t, got, 6)
	assert.Nil(t, JoinAll(handles))
	assert.Equal(t, int32(3), atomic.LoadInt32(&invocations))
}
