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
	shell "github.com/brunotm/shell"
	"github.com/brunotm/shell/types"
)

var sumSchema = []shell.ColumnType{shell.NamedColumn("sum", shell.NewValueType(types.Integer))}

// Sum consumes an upstream table/stream and accumulates an integer column.
// With no arguments the input schema must have exactly one Integer column.
// With one field argument, that column is selected by name. Overflow wraps
// silently in int64 rather than panicking, a documented choice rather than
// an oversight in this implementation.
func Sum(ctx *shell.ExecutionContext) error {
	stream, err := inputStream(ctx)
	if err != nil {
		return err
	}

	colIdx := 0
	if len(ctx.Arguments()) > 0 {
		field, ok := ctx.Arguments()[0].Value.AsField()
		if !ok || len(field) != 1 {
			return shell.NewError(shell.InvalidArgument, "sum takes at most one single-segment field argument")
		}
		colIdx = -1
		for i, c := range stream.Types() {
			if c.Name == field[0] {
				colIdx = i
				break
			}
		}
		if colIdx == -1 {
			return shell.NewError(shell.NotFound, "no column named %q", field[0])
		}
	} else if len(stream.Types()) != 1 {
		return shell.NewError(shell.InvalidArgument, "sum with no arguments requires a single-column schema")
	}

	var total int64
	for {
		row, err := stream.Recv()
		if shell.Is(err, shell.EndOfStream) {
			break
		}
		if err != nil {
			return err
		}
		i, ok := row.Cells[colIdx].AsInteger()
		if !ok {
			return shell.NewError(shell.TypeMismatch, "sum requires integer cells, got %s", row.Cells[colIdx].Type())
		}
		total += i
	}

	sender, err := ctx.Output().Initialize(sumSchema, 1)
	if err != nil {
		return err
	}
	defer sender.Close()
	row, err := shell.NewRow(sumSchema, []shell.Value{shell.Integer(total)})
	if err != nil {
		return err
	}
	return sender.Send(row)
}

// inputStream resolves the single upstream Value into a TableStream,
// accepting either a live stream or a materialised Table.
func inputStream(ctx *shell.ExecutionContext) (shell.TableStream, error) {
	v, err := ctx.Input().Recv()
	if err != nil {
		return nil, err
	}
	if s, ok := v.AsTableStream(); ok {
		return s, nil
	}
	if t, ok := v.AsTable(); ok {
		return shell.NewTableStreamReader(t), nil
	}
	return nil, shell.NewError(shell.TypeMismatch, "expected a table or stream input, got %s", v.Type())
}
