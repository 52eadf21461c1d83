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
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/brunotm/shell/types"
)

// Value is a tagged union of every runtime value the shell manipulates.
// Scalar variants live directly in the struct; composite and streaming
// variants are boxed in `any` and recovered with the matching accessor.
// This keeps Value a small, copyable struct for the common scalar path
// while still giving every value kind the shell manipulates a home.
type Value struct {
	kind types.Kind
	i    int64
	f    float64
	b    bool
	t    time.Time
	d    time.Duration
	s    string // Text, File path, Glob/Regex source
	any  interface{}
}

// Kind returns the discriminant of this Value.
func (v Value) Kind() types.Kind { return v.kind }

// --- constructors ---

func Integer(i int64) Value   { return Value{kind: types.Integer, i: i} }
func Float(f float64) Value   { return Value{kind: types.Float, f: f} }
func Text(s string) Value     { return Value{kind: types.Text, s: s} }
func Bool(b bool) Value       { return Value{kind: types.Bool, b: b} }
func TimeValue(t time.Time) Value    { return Value{kind: types.Time, t: t} }
func DurationValue(d time.Duration) Value { return Value{kind: types.Duration, d: d} }
func File(path string) Value  { return Value{kind: types.File, s: path} }
func Glob(pattern string) Value {
	return Value{kind: types.Glob, s: pattern, any: mustGlob(pattern)}
}
func RegexValue(source string, compiled *regexp.Regexp) Value {
	return Value{kind: types.Regex, s: source, any: compiled}
}
func Field(segments []string) Value { return Value{kind: types.Field, any: segments} }
func TypeVal(t ValueType) Value      { return Value{kind: types.Type, any: t} }
func CommandValue(c *Command) Value  { return Value{kind: types.Command, any: c} }
func ClosureValue(c *Closure) Value  { return Value{kind: types.Closure, any: c} }
func Binary(b []byte) Value          { return Value{kind: types.Binary, any: b} }
func BinaryStream(r io.Reader) Value { return Value{kind: types.BinaryStream, any: r} }
func ListValue(l *List) Value        { return Value{kind: types.List, any: l} }
func DictValue(d *Dict) Value        { return Value{kind: types.Dict, any: d} }
func StructValue(s *Struct) Value    { return Value{kind: types.Struct, any: s} }
func ScopeValue(s *Scope) Value      { return Value{kind: types.Scope, any: s} }
func RowValue(r Row) Value           { return Value{kind: types.Row, any: r} }
func TableValue(t *Table) Value      { return Value{kind: types.Table, any: t} }
func TableStreamValue(s TableStream) Value { return Value{kind: types.TableStream, any: s} }

// EmptyValue is the unit value.
var EmptyValue = Value{kind: types.Empty}

// --- accessors (zero value / false-ok if the Kind doesn't match) ---

func (v Value) AsInteger() (int64, bool)        { return v.i, v.kind == types.Integer }
func (v Value) AsFloat() (float64, bool)         { return v.f, v.kind == types.Float }
func (v Value) AsText() (string, bool)           { return v.s, v.kind == types.Text }
func (v Value) AsBool() (bool, bool)             { return v.b, v.kind == types.Bool }
func (v Value) AsTime() (time.Time, bool)        { return v.t, v.kind == types.Time }
func (v Value) AsDuration() (time.Duration, bool) { return v.d, v.kind == types.Duration }
func (v Value) AsFile() (string, bool)           { return v.s, v.kind == types.File }
func (v Value) AsGlob() (string, bool)           { return v.s, v.kind == types.Glob }

func (v Value) fieldPath() []string {
	if s, ok := v.any.([]string); ok {
		return s
	}
	return nil
}

func (v Value) AsField() ([]string, bool) { f, ok := v.any.([]string); return f, ok && v.kind == types.Field }

func (v Value) AsType() (ValueType, bool) {
	t, ok := v.any.(ValueType)
	return t, ok && v.kind == types.Type
}

func (v Value) AsCommand() (*Command, bool) {
	c, ok := v.any.(*Command)
	return c, ok && v.kind == types.Command
}

func (v Value) AsClosure() (*Closure, bool) {
	c, ok := v.any.(*Closure)
	return c, ok && v.kind == types.Closure
}

func (v Value) AsBinary() ([]byte, bool) {
	b, ok := v.any.([]byte)
	return b, ok && v.kind == types.Binary
}

func (v Value) AsBinaryStream() (io.Reader, bool) {
	r, ok := v.any.(io.Reader)
	return r, ok && v.kind == types.BinaryStream
}

func (v Value) AsList() (*List, bool) {
	l, ok := v.any.(*List)
	return l, ok && v.kind == types.List
}

func (v Value) AsDict() (*Dict, bool) {
	d, ok := v.any.(*Dict)
	return d, ok && v.kind == types.Dict
}

func (v Value) AsStruct() (*Struct, bool) {
	s, ok := v.any.(*Struct)
	return s, ok && v.kind == types.Struct
}

func (v Value) AsScope() (*Scope, bool) {
	s, ok := v.any.(*Scope)
	return s, ok && v.kind == types.Scope
}

func (v Value) AsRow() (Row, bool) {
	r, ok := v.any.(Row)
	return r, ok && v.kind == types.Row
}

func (v Value) AsTable() (*Table, bool) {
	t, ok := v.any.(*Table)
	return t, ok && v.kind == types.Table
}

func (v Value) AsTableStream() (TableStream, bool) {
	s, ok := v.any.(TableStream)
	return s, ok && v.kind == types.TableStream
}

func (v Value) regex() *regexp.Regexp {
	r, _ := v.any.(*regexp.Regexp)
	return r
}

// Type returns this Value's ValueType, parameterised where applicable.
func (v Value) Type() ValueType {
	switch v.kind {
	case types.List:
		if l, ok := v.AsList(); ok {
			return ValueType{kind: types.List, elem: &l.elemType}
		}
	case types.Dict:
		if d, ok := v.AsDict(); ok {
			return ValueType{kind: types.Dict, key: &d.keyType, val: &d.valType}
		}
	case types.Row:
		if r, ok := v.AsRow(); ok {
			return ValueType{kind: types.Row, columns: r.schema}
		}
	case types.Table:
		if t, ok := v.AsTable(); ok {
			return ValueType{kind: types.Table, columns: t.Columns}
		}
	case types.TableStream:
		if s, ok := v.AsTableStream(); ok {
			return ValueType{kind: types.TableStream, columns: s.Types()}
		}
	}
	return ValueType{kind: v.kind}
}

// String renders a Value for diagnostics and the pretty-printer contract.
func (v Value) String() string {
	switch v.kind {
	case types.Integer:
		return fmt.Sprintf("%d", v.i)
	case types.Float:
		return fmt.Sprintf("%g", v.f)
	case types.Text:
		return v.s
	case types.Bool:
		return fmt.Sprintf("%t", v.b)
	case types.Time:
		return v.t.Format(time.RFC3339)
	case types.Duration:
		return v.d.String()
	case types.File:
		return v.s
	case types.Glob:
		return v.s
	case types.Regex:
		return v.s
	case types.Field:
		return strings.Join(v.fieldPath(), ".")
	case types.Type:
		t, _ := v.AsType()
		return t.String()
	case types.Empty:
		return ""
	case types.Command:
		return "<command>"
	case types.Closure:
		return "<closure>"
	case types.Binary:
		return "<binary>"
	case types.BinaryStream:
		return "<binary stream>"
	case types.List:
		l, _ := v.AsList()
		parts := make([]string, l.Len())
		for i := 0; i < l.Len(); i++ {
			item, _ := l.Get(i)
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case types.Dict:
		return "<dict>"
	case types.Struct:
		return "<struct>"
	case types.Scope:
		return "<scope>"
	case types.Row:
		r, _ := v.AsRow()
		parts := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			parts[i] = c.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case types.Table:
		return "<table>"
	case types.TableStream:
		return "<stream>"
	}
	return "<unknown>"
}

// Fields returns the member names of v, as used by the `dir` builtin.
func (v Value) Fields() []string {
	switch v.kind {
	case types.Struct:
		s, _ := v.AsStruct()
		return append([]string(nil), s.names...)
	case types.Scope:
		s, _ := v.AsScope()
		return s.Names()
	case types.List:
		return []string{"len", "get", "append"}
	case types.Dict:
		return []string{"len", "get", "set", "delete"}
	case types.File:
		return []string{"exists", "name", "dir"}
	default:
		return nil
	}
}
