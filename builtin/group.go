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
)

type groupEntry struct {
	key    shell.Value
	sender shell.RowStream
}

// Group partitions an upstream table/stream by the value of one column. For
// each new key it allocates an unbounded sub-stream, emits { key, group }
// (or { key, <name> } if overridden by a name= argument) on the outer
// output, and forwards that row plus every later row with the same key into
// the sub-stream. All sub-streams are closed when the input ends.
func Group(ctx *shell.ExecutionContext) error {
	args := ctx.Arguments()
	if len(args) < 1 {
		return shell.NewError(shell.InvalidArgument, "group requires a key column argument")
	}

	keyColName, err := columnName(args[0].Value)
	if err != nil {
		return err
	}

	subColName := "group"
	for _, a := range args[1:] {
		if a.Name == "name" {
			if s, ok := a.Value.AsText(); ok {
				subColName = s
			}
		}
	}

	stream, err := inputStream(ctx)
	if err != nil {
		return err
	}

	keyColIdx := -1
	for i, c := range stream.Types() {
		if c.Name == keyColName {
			keyColIdx = i
			break
		}
	}
	if keyColIdx == -1 {
		return shell.NewError(shell.NotFound, "no column named %q", keyColName)
	}
	keyColType := stream.Types()[keyColIdx].CellType

	outerSchema := []shell.ColumnType{
		shell.NamedColumn(keyColName, keyColType),
		shell.NamedColumn(subColName, shell.StreamType(stream.Types())),
	}
	outer, err := ctx.Output().Initialize(outerSchema, 64)
	if err != nil {
		return err
	}
	defer outer.Close()

	buckets := make(map[uint64][]*groupEntry)

	for {
		row, err := stream.Recv()
		if shell.Is(err, shell.EndOfStream) {
			break
		}
		if err != nil {
			return err
		}

		keyVal := row.Cells[keyColIdx]
		entry, isNew, err := groupFor(buckets, keyVal)
		if err != nil {
			return err
		}
		if isNew {
			entry.sender = shell.NewUnboundedStream(stream.Types())
			outerRow, err := shell.NewRow(outerSchema, []shell.Value{keyVal, shell.TableStreamValue(entry.sender)})
			if err != nil {
				return err
			}
			if err := outer.Send(outerRow); err != nil {
				return nil
			}
		}
		if err := entry.sender.Send(row); err != nil {
			// that consumer is gone; keep routing to other groups.
			continue
		}
	}

	for _, bucket := range buckets {
		for _, e := range bucket {
			e.sender.Close()
		}
	}
	return nil
}

func groupFor(buckets map[uint64][]*groupEntry, key shell.Value) (*groupEntry, bool, error) {
	h, err := shell.HashValue(key)
	if err != nil {
		return nil, false, err
	}
	for _, e := range buckets[h] {
		if shell.ValuesEqual(e.key, key) {
			return e, false, nil
		}
	}
	e := &groupEntry{key: key}
	buckets[h] = append(buckets[h], e)
	return e, true, nil
}

// columnName extracts a column name from a Text or single-segment Field
// argument value.
func columnName(v shell.Value) (string, error) {
	if s, ok := v.AsText(); ok {
		return s, nil
	}
	if f, ok := v.AsField(); ok && len(f) == 1 {
		return f[0], nil
	}
	return "", shell.NewError(shell.InvalidArgument, "expected a column name")
}
