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
	"testing"

	"github.com/brunotm/shell/types"
	"github.com/stretchr/testify/assert"
)

func TestNewRowValidatesCellCount(t *testing.T) {
	schema := []ColumnType{NamedColumn("a", NewValueType(types.Integer))}
	_, err := NewRow(schema, []Value{Integer(1), Integer(2)})
	assert.True(t, Is(err, SchemaMismatch))
}

func TestNewRowValidatesCellType(t *testing.T) {
	schema := []ColumnType{NamedColumn("a", NewValueType(types.Integer))}
	_, err := NewRow(schema, []Value{Text("nope")})
	assert.True(t, Is(err, SchemaMismatch))
}

func TestRowIntoStructUsesColumnNames(t *testing.T) {
	schema := []ColumnType{
		NamedColumn("a", NewValueType(types.Integer)),
		NamedColumn("b", NewValueType(types.Text)),
	}
	row, err := NewRow(schema, []Value{Integer(1), Text("x")})
	assert.Nil(t, err)

	s := row.IntoStruct()
	v, ok := s.Get("a")
	assert.True(t, ok)
	i, _ := v.AsInteger()
	assert.Equal(t, int64(1), i)

	v, ok = s.Get("b")
	assert.True(t, ok)
	str, _ := v.AsText()
	assert.Equal(t, "x", str)
}

func TestRowIntoStructFallsBackToPositionalName(t *testing.T) {
	schema := []ColumnType{{CellType: NewValueType(types.Integer)}}
	row, err := NewRow(schema, []Value{Integer(7)})
	assert.Nil(t, err)

	s := row.IntoStruct()
	v, ok := s.Get("c0")
	assert.True(t, ok)
	i, _ := v.AsInteger()
	assert.Equal(t, int64(7), i)
}

func TestRowConformsToMatchingSchema(t *testing.T) {
	schema := []ColumnType{NamedColumn("a", NewValueType(types.Integer))}
	row, err := NewRow(schema, []Value{Integer(1)})
	assert.Nil(t, err)
	assert.True(t, row.conformsTo(schema))
}

func TestRowConformsToRejectsWrongCellType(t *testing.T) {
	intSchema := []ColumnType{NamedColumn("a", NewValueType(types.Integer))}
	textSchema := []ColumnType{NamedColumn("a", NewValueType(types.Text))}
	row, err := NewRow(intSchema, []Value{Integer(1)})
	assert.Nil(t, err)
	assert.False(t, row.conformsTo(textSchema))
}

func TestRowConformsToRejectsWrongColumnCount(t *testing.T) {
	schema := []ColumnType{NamedColumn("a", NewValueType(types.Integer))}
	row, err := NewRow(schema, []Value{Integer(1)})
	assert.Nil(t, err)
	assert.False(t, row.conformsTo(append(schema, NamedColumn("b", NewValueType(types.Integer)))))
}

func TestTableAppendAndGet(t *testing.T) {
	schema := []ColumnType{NamedColumn("a", NewValueType(types.Integer))}
	table := NewTable(schema)
	assert.Nil(t, table.Append([]Value{Integer(1)}))
	assert.Nil(t, table.Append([]Value{Integer(2)}))
	assert.Equal(t, 2, table.Len())

	s, err := table.Get(1)
	assert.Nil(t, err)
	v, _ := s.Get("a")
	i, _ := v.AsInteger()
	assert.Equal(t, int64(2), i)
}

func TestTableAppendRejectsSchemaMismatch(t *testing.T) {
	schema := []ColumnType{NamedColumn("a", NewValueType(types.Integer))}
	table := NewTable(schema)
	err := table.Append([]Value{Text("nope")})
	assert.True(t, Is(err, SchemaMismatch))
}

func TestTableGetOutOfRange(t *testing.T) {
	schema := []ColumnType{NamedColumn("a", NewValueType(types.Integer))}
	table := NewTable(schema)
	_, err := table.Get(0)
	assert.True(t, Is(err, OutOfRange))
}

func TestTableStreamReaderAdaptsTable(t *testing.T) {
	schema := []ColumnType{NamedColumn("a", NewValueType(types.Integer))}
	table := NewTable(schema)
	table.Append([]Value{Integer(1)})
	table.Append([]Value{Integer(2)})

	reader := NewTableStreamReader(table)
	assert.Equal(t, schema, reader.Types())

	row, err := reader.Recv()
	assert.Nil(t, err)
	i, _ := row.Cells[0].AsInteger()
	assert.Equal(t, int64(1), i)

	row, err = reader.Recv()
	assert.Nil(t, err)
	i, _ = row.Cells[0].AsInteger()
	assert.Equal(t, int64(2), i)

	_, err = reader.Recv()
	assert.True(t, Is(err, EndOfStream))
}

func TestTableStreamReaderGetDelegatesToTable(t *testing.T) {
	schema := []ColumnType{NamedColumn("a", NewValueType(types.Integer))}
	table := NewTable(schema)
	table.Append([]Value{Integer(9)})

	reader := NewTableStreamReader(table)
	s, err := reader.Get(0)
	assert.Nil(t, err)
	v, _ := s.Get("a")
	i, _ := v.AsInteger()
	assert.Equal(t, int64(9), i)
}
