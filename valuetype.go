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

	"github.com/brunotm/shell/types"
)

// ValueType mirrors Value but carries only type parameters: element type for
// List, key/value types for Dict, column schema for Row/Table/TableStream.
// ValueType{kind: types.Any} matches anything.
type ValueType struct {
	kind    types.Kind
	elem    *ValueType
	key     *ValueType
	val     *ValueType
	columns []ColumnType
}

// NewValueType builds a plain (unparameterised) ValueType for a scalar kind.
func NewValueType(k types.Kind) ValueType { return ValueType{kind: k} }

// AnyType matches any Value.
var AnyType = ValueType{kind: types.Any}

func ListType(elem ValueType) ValueType { return ValueType{kind: types.List, elem: &elem} }

func DictType(key, val ValueType) ValueType {
	return ValueType{kind: types.Dict, key: &key, val: &val}
}

func RowType(columns []ColumnType) ValueType   { return ValueType{kind: types.Row, columns: columns} }
func TableType(columns []ColumnType) ValueType { return ValueType{kind: types.Table, columns: columns} }
func StreamType(columns []ColumnType) ValueType {
	return ValueType{kind: types.TableStream, columns: columns}
}

// Kind returns the discriminant of this ValueType.
func (t ValueType) Kind() types.Kind { return t.kind }

// Columns returns the row schema for Row/Table/TableStream types.
func (t ValueType) Columns() []ColumnType { return t.columns }

// Element returns the declared element type of a List type.
func (t ValueType) Element() ValueType {
	if t.elem != nil {
		return *t.elem
	}
	return AnyType
}

// KeyType returns the declared key type of a Dict type.
func (t ValueType) KeyType() ValueType {
	if t.key != nil {
		return *t.key
	}
	return AnyType
}

// ValType returns the declared value type of a Dict type.
func (t ValueType) ValType() ValueType {
	if t.val != nil {
		return *t.val
	}
	return AnyType
}

// Satisfies reports whether a Value of this ValueType may be assigned where
// `want` is required: true if `want` is Any, the kinds match (and, for
// List/Dict, element/key/value types are themselves satisfied).
func (t ValueType) Satisfies(want ValueType) bool {
	if want.kind == types.Any {
		return true
	}
	if t.kind != want.kind {
		return false
	}
	switch t.kind {
	case types.List:
		return t.Element().Satisfies(want.Element())
	case types.Dict:
		return t.KeyType().Satisfies(want.KeyType()) && t.ValType().Satisfies(want.ValType())
	case types.Row, types.Table, types.TableStream:
		return columnsCompatible(t.columns, want.columns)
	}
	return true
}

// columnsCompatible implements the schema-compatibility rule of section 3:
// two schemas are compatible iff same length and pairwise compatible types.
func columnsCompatible(a, b []ColumnType) bool {
	if len(b) == 0 {
		return true // unconstrained schema, e.g. freshly declared stream type
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].CellType.Satisfies(b[i].CellType) {
			return false
		}
	}
	return true
}

func (t ValueType) String() string {
	switch t.kind {
	case types.List:
		return "list<" + t.Element().String() + ">"
	case types.Dict:
		return "dict<" + t.KeyType().String() + "," + t.ValType().String() + ">"
	case types.Row, types.Table, types.TableStream:
		parts := make([]string, len(t.columns))
		for i, c := range t.columns {
			parts[i] = c.String()
		}
		return t.kind.String() + "<" + strings.Join(parts, ", ") + ">"
	}
	return t.kind.String()
}

// Equal reports structural equality of two ValueTypes.
func (t ValueType) Equal(o ValueType) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case types.List:
		return t.Element().Equal(o.Element())
	case types.Dict:
		return t.KeyType().Equal(o.KeyType()) && t.ValType().Equal(o.ValType())
	case types.Row, types.Table, types.TableStream:
		if len(t.columns) != len(o.columns) {
			return false
		}
		for i := range t.columns {
			if t.columns[i].Name != o.columns[i].Name || !t.columns[i].CellType.Equal(o.columns[i].CellType) {
				return false
			}
		}
		return true
	}
	return true
}

// ColumnType is one element of a row schema: an optional name and a cell type.
type ColumnType struct {
	Name     string // empty means unnamed
	CellType ValueType
}

// NamedColumn builds a named ColumnType.
func NamedColumn(name string, t ValueType) ColumnType {
	return ColumnType{Name: name, CellType: t}
}

func (c ColumnType) String() string {
	if c.Name == "" {
		return c.CellType.String()
	}
	return c.Name + "=" + c.CellType.String()
}
