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

// Row is an ordered sequence of Values conforming to a schema.
type Row struct {
	schema []ColumnType
	Cells  []Value
}

// NewRow builds a Row against the given schema, validating the invariant
// from section 3: cell count equals schema length and each cell's dynamic
// type satisfies the declared cell type.
func NewRow(schema []ColumnType, cells []Value) (Row, error) {
	if len(cells) != len(schema) {
		return Row{}, NewError(SchemaMismatch, "row has %d cells, schema has %d columns", len(cells), len(schema))
	}
	for i, c := range cells {
		if !c.Type().Satisfies(schema[i].CellType) {
			return Row{}, NewError(SchemaMismatch, "column %d: value of type %s does not satisfy %s",
				i, c.Type(), schema[i].CellType)
		}
	}
	return Row{schema: schema, Cells: cells}, nil
}

// Schema returns the row's column types.
func (r Row) Schema() []ColumnType { return r.schema }

// conformsTo reports whether r's cells satisfy schema: the same check
// NewRow performs, used to guard a stream's Send against a row built
// against a different schema than the one the stream declared.
func (r Row) conformsTo(schema []ColumnType) bool {
	if len(r.Cells) != len(schema) {
		return false
	}
	for i, c := range r.Cells {
		if !c.Type().Satisfies(schema[i].CellType) {
			return false
		}
	}
	return true
}

// IntoStruct converts this Row into a Struct using the schema's column names,
// as used when subscripting a Table/TableStream by integer index (section 4.3).
func (r Row) IntoStruct() *Struct {
	names := make([]string, len(r.schema))
	for i, c := range r.schema {
		if c.Name != "" {
			names[i] = c.Name
		} else {
			names[i] = columnFallbackName(i)
		}
	}
	return &Struct{names: names, values: r.Cells}
}

func columnFallbackName(i int) string {
	return "c" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

// Table is a materialised set of Rows sharing one schema.
type Table struct {
	Columns []ColumnType
	Rows    []Row
}

// NewTable builds an empty Table with the given schema.
func NewTable(columns []ColumnType) *Table {
	return &Table{Columns: columns}
}

// Append adds a row, failing SchemaMismatch if it does not conform.
func (t *Table) Append(cells []Value) error {
	row, err := NewRow(t.Columns, cells)
	if err != nil {
		return err
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Get returns the row at idx as a Struct (section 4.3 subscript rule).
func (t *Table) Get(idx int) (*Struct, error) {
	if idx < 0 || idx >= len(t.Rows) {
		return nil, NewError(OutOfRange, "table index %d out of range (len %d)", idx, len(t.Rows))
	}
	return t.Rows[idx].IntoStruct(), nil
}

// Len reports the number of materialised rows.
func (t *Table) Len() int { return len(t.Rows) }

// TableStream is the "readable rows" capability shared by row streams and,
// via NewTableStreamReader, materialised tables: one capability both live
// streams and materialised data satisfy.
type TableStream interface {
	Types() []ColumnType
	Recv() (Row, error)
	// Get performs random access at position idx, which may block on a live
	// stream until that many rows have been produced (section 4.3).
	Get(idx int) (*Struct, error)
}

// tableStreamReader adapts a materialised Table to the TableStream capability.
type tableStreamReader struct {
	table *Table
	pos   int
}

// NewTableStreamReader wraps a Table for consumption through the same
// capability that live RowStreams expose.
func NewTableStreamReader(t *Table) TableStream {
	return &tableStreamReader{table: t}
}

func (r *tableStreamReader) Types() []ColumnType { return r.table.Columns }

func (r *tableStreamReader) Recv() (Row, error) {
	if r.pos >= len(r.table.Rows) {
		return Row{}, NewError(EndOfStream, "end of table")
	}
	row := r.table.Rows[r.pos]
	r.pos++
	return row, nil
}

func (r *tableStreamReader) Get(idx int) (*Struct, error) {
	return r.table.Get(idx)
}
