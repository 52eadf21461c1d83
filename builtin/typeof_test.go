package builtin

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
	"io"
	"testing"

	shell "github.com/brunotm/shell"
	"github.com/brunotm/shell/types"
	"github.com/stretchr/testify/assert"
)

func TestTypeOfEmitsInputKind(t *testing.T) {
	in := shell.NewValueChannel()
	in.Send(shell.Integer(7))
	out := shell.NewValueChannel()
	ctx := shell.NewExecutionContext(in, out, nil, shell.NewScope(), shell.NewPrinter(io.Discard), ".")

	assert.Nil(t, TypeOf(ctx))
	v, err := out.Recv()
	assert.Nil(t, err)
	vt, ok := v.AsType()
	assert.True(t, ok)
	assert.True(t, vt.Satisfies(shell.NewValueType(types.Integer)))
}

func TestTypeToCastsInput(t *testing.T) {
	in := shell.NewValueChannel()
	in.Send(shell.Text("42"))
	out := shell.NewValueChannel()
	args := []shell.Argument{{Value: shell.TypeVal(shell.NewValueType(types.Integer))}}
	ctx := shell.NewExecutionContext(in, out, args, shell.NewScope(), shell.NewPrinter(io.Discard), ".")

	assert.Nil(t, TypeTo(ctx))
	v, err := out.Recv()
	assert.Nil(t, err)
	i, ok := v.AsInteger()
	assert.True(t, ok)
	assert.Equal(t, int64(42), i)
}

func TestTypeToRejectsNonTypeArgument(t *testing.T) {
	in := shell.NewValueChannel()
	in.Send(shell.Text("42"))
	out := shell.NewValueChannel()
	args := []shell.Argument{{Value: shell.Integer(1)}}
	ctx := shell.NewExecutionContext(in, out, args, shell.NewScope(), shell.NewPrinter(io.Discard), ".")

	err := TypeTo(ctx)
	assert.True(t, shell.Is(err, shell.InvalidArgument))
}

func TestTypeToFailsOnDisallowedCast(t *testing.T) {
	in := shell.NewValueChannel()
	in.Send(shell.Text("not a number"))
	out := shell.NewValueChannel()
	args := []shell.Argument{{Value: shell.TypeVal(shell.NewValueType(types.Integer))}}
	ctx := shell.NewExecutionContext(in, out, args, shell.NewScope(), shell.NewPrinter(io.Discard), ".")

	err := TypeTo(ctx)
	assert.NotNil(t, err)
}
