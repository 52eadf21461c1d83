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
	"math"
	"testing"

	shell "github.com/brunotm/shell"
	"github.com/stretchr/testify/assert"
)

func TestConditionEvalOrderingOperators(t *testing.T) {
	row, _ := shell.NewRow(intSchema("value"), []shell.Value{shell.Integer(5)})

	cond := Condition{Left: Operand{IsField: true, Field: 0}, Op: OpGt, Right: Operand{Lit: shell.Integer(3)}}
	ok, err := cond.Eval(row)
	assert.Nil(t, err)
	assert.True(t, ok)

	cond.Op = OpLt
	ok, err = cond.Eval(row)
	assert.Nil(t, err)
	assert.False(t, ok)
}

func TestConditionEvalEqualityOperators(t *testing.T) {
	row, _ := shell.NewRow(intSchema("value"), []shell.Value{shell.Integer(5)})
	cond := Condition{Left: Operand{IsField: true, Field: 0}, Op: OpEq, Right: Operand{Lit: shell.Integer(5)}}
	ok, _ := cond.Eval(row)
	assert.True(t, ok)

	cond.Op = OpNe
	ok, _ = cond.Eval(row)
	assert.False(t, ok)
}

func TestConditionEvalNaNIncomparable(t *testing.T) {
	row, _ := shell.NewRow([]shell.ColumnType{shell.NamedColumn("value", shell.AnyType)}, []shell.Value{shell.Float(math.NaN())})
	cond := Condition{Left: Operand{IsField: true, Field: 0}, Op: OpLt, Right: Operand{Lit: shell.Float(1.0)}}
	_, err := cond.Eval(row)
	assert.True(t, shell.Is(err, shell.InvalidMatch))
}

func TestConditionEvalCrossKindIncomparable(t *testing.T) {
	row, _ := shell.NewRow([]shell.ColumnType{shell.NamedColumn("value", shell.AnyType)}, []shell.Value{shell.Integer(1)})
	cond := Condition{Left: Operand{IsField: true, Field: 0}, Op: OpLt, Right: Operand{Lit: shell.Float(2.0)}}
	_, err := cond.Eval(row)
	assert.True(t, shell.Is(err, shell.InvalidMatch))
}

func TestConditionEvalFieldOutOfRange(t *testing.T) {
	row, _ := shell.NewRow(intSchema("value"), []shell.Value{shell.Integer(1)})
	cond := Condition{Left: Operand{IsField: true, Field: 5}, Op: OpEq, Right: Operand{Lit: shell.Integer(1)}}
	_, err := cond.Eval(row)
	assert.True(t, shell.Is(err, shell.OutOfRange))
}

func TestConditionEvalMatchGlob(t *testing.T) {
	row, _ := shell.NewRow([]shell.ColumnType{shell.NamedColumn("name", shell.AnyType)}, []shell.Value{shell.Text("main.go")})
	cond := Condition{Left: Operand{IsField: true, Field: 0}, Op: OpMatch, Right: Operand{Lit: shell.Glob("*.go")}}
	ok, err := cond.Eval(row)
	assert.Nil(t, err)
	assert.True(t, ok)

	cond.Op = OpNotMatch
	ok, err = cond.Eval(row)
	assert.Nil(t, err)
	assert.False(t, ok)
}

func TestConditionEvalMatchRequiresTextOrFileLeft(t *testing.T) {
	row, _ := shell.NewRow(intSchema("value"), []shell.Value{shell.Integer(1)})
	cond := Condition{Left: Operand{IsField: true, Field: 0}, Op: OpMatch, Right: Operand{Lit: shell.Glob("*")}}
	_, err := cond.Eval(row)
	assert.True(t, shell.Is(err, shell.InvalidMatch))
}

func newFilterContext(schema []shell.ColumnType, rows [][]shell.Value) (*shell.ExecutionContext, *shell.ValueChannel) {
	stream := shell.NewUnboundedStream(schema)
	for _, cells := range rows {
		row, _ := shell.NewRow(schema, cells)
		stream.Send(row)
	}
	stream.Close()

	in := shell.NewValueChannel()
	in.Send(shell.TableStreamValue(stream))
	out := shell.NewValueChannel()
	ctx := shell.NewExecutionContext(in, out, nil, shell.NewScope(), shell.NewPrinter(io.Discard), ".")
	return ctx, out
}

func drainIntegers(t *testing.T, out *shell.ValueChannel) []int64 {
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
	return got
}

func TestFilterForwardsOnlyMatchingRows(t *testing.T) {
	schema := intSchema("value")
	ctx, out := newFilterContext(schema, [][]shell.Value{
		{shell.Integer(1)}, {shell.Integer(2)}, {shell.Integer(3)}, {shell.Integer(4)},
	})
	cond := Condition{Left: Operand{IsField: true, Field: 0}, Op: OpGe, Right: Operand{Lit: shell.Integer(3)}}

	assert.Nil(t, Filter(cond)(ctx))
	assert.Equal(t, []int64{3, 4}, drainIntegers(t, out))
}

func TestFilterDropsIncomparableRowsWithoutFailingStage(t *testing.T) {
	schema := []shell.ColumnType{shell.NamedColumn("value", shell.AnyType)}
	ctx, out := newFilterContext(schema, [][]shell.Value{
		{shell.Integer(1)}, {shell.Float(math.NaN())}, {shell.Integer(2)},
	})
	cond := Condition{Left: Operand{IsField: true, Field: 0}, Op: OpLt, Right: Operand{Lit: shell.Integer(10)}}

	err := Filter(cond)(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []int64{1, 2}, drainIntegers(t, out))
}

func TestFilterCommandParsesOperatorArguments(t *testing.T) {
	schema := intSchema("value")
	stream := shell.NewUnboundedStream(schema)
	for _, v := range []int64{1, 2, 3} {
		row, _ := shell.NewRow(schema, []shell.Value{shell.Integer(v)})
		stream.Send(row)
	}
	stream.Close()

	in := shell.NewValueChannel()
	in.Send(shell.TableStreamValue(stream))
	out := shell.NewValueChannel()
	args := []shell.Argument{
		{Value: shell.Field([]string{"value"})},
		{Value: shell.Text(">")},
		{Value: shell.Integer(1)},
	}
	ctx := shell.NewExecutionContext(in, out, args, shell.NewScope(), shell.NewPrinter(io.Discard), ".")

	assert.Nil(t, FilterCommand(ctx))
	assert.Equal(t, []int64{2, 3}, drainIntegers(t, out))
}

func TestFilterCommandUnknownOperatorFails(t *testing.T) {
	schema := intSchema("value")
	stream := shell.NewUnboundedStream(schema)
	stream.Close()
	in := shell.NewValueChannel()
	in.Send(shell.TableStreamValue(stream))
	out := shell.NewValueChannel()
	args := []shell.Argument{
		{Value: shell.Field([]string{"value"})},
		{Value: shell.Text("<>")},
		{Value: shell.Integer(1)},
	}
	ctx := shell.NewExecutionContext(in, out, args, shell.NewScope(), shell.NewPrinter(io.Discard), ".")

	err := FilterCommand(ctx)
	assert.True(t, shell.Is(err, shell.InvalidArgument))
}

func TestFilterCommandWrongArgCountFails(t *testing.T) {
	in := shell.NewValueChannel()
	out := shell.NewValueChannel()
	ctx := shell.NewExecutionContext(in, out, nil, shell.NewScope(), shell.NewPrinter(io.Discard), ".")

	err := FilterCommand(ctx)
	assert.True(t, shell.Is(err, shell.InvalidArgument))
}
