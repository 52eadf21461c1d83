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

// ValuesEqual implements section 3's equality rule: defined for all scalar
// variants, and structurally for List/Dict/Struct/Row. Cross-kind values are
// never equal.
func ValuesEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case types.Integer:
		return a.i == b.i
	case types.Float:
		return a.f == b.f // NaN != NaN, matching IEEE semantics
	case types.Text, types.File, types.Glob:
		return a.s == b.s
	case types.Bool:
		return a.b == b.b
	case types.Time:
		return a.t.Equal(b.t)
	case types.Duration:
		return a.d == b.d
	case types.Field:
		return strings.Join(a.fieldPath(), ".") == strings.Join(b.fieldPath(), ".")
	case types.Regex:
		return a.s == b.s
	case types.Empty:
		return true
	case types.Type:
		at, _ := a.AsType()
		bt, _ := b.AsType()
		return at.Equal(bt)
	case types.List:
		al, _ := a.AsList()
		bl, _ := b.AsList()
		if al.Len() != bl.Len() {
			return false
		}
		for i := 0; i < al.Len(); i++ {
			av, _ := al.Get(i)
			bv, _ := bl.Get(i)
			if !ValuesEqual(av, bv) {
				return false
			}
		}
		return true
	case types.Dict:
		ad, _ := a.AsDict()
		bd, _ := b.AsDict()
		if ad.Len() != bd.Len() {
			return false
		}
		for _, e := range ad.Elements() {
			bv, ok := bd.Get(e.Key)
			if !ok || !ValuesEqual(e.Val, bv) {
				return false
			}
		}
		return true
	case types.Struct:
		as, _ := a.AsStruct()
		bs, _ := b.AsStruct()
		if len(as.names) != len(bs.names) {
			return false
		}
		for i, n := range as.names {
			bv, ok := bs.Get(n)
			if !ok || !ValuesEqual(as.values[i], bv) {
				return false
			}
		}
		return true
	case types.Row:
		ar, _ := a.AsRow()
		br, _ := b.AsRow()
		if len(ar.Cells) != len(br.Cells) {
			return false
		}
		for i := range ar.Cells {
			if !ValuesEqual(ar.Cells[i], br.Cells[i]) {
				return false
			}
		}
		return true
	default:
		// Command/Closure/Scope/Binary/BinaryStream/Table/TableStream are
		// reference-ish values without a documented structural equality.
		// Identity is not compared either: they are never equal, not even
		// to themselves.
		return false
	}
}

// Ordering is the result of CompareValues.
type Ordering int

const (
	Less Ordering = iota - 1
	EqualOrd
	Greater
)

// CompareValues implements section 3's partial ordering: defined within
// Integer, Float, Text, File, Glob, Time and Duration values of the same
// kind, with NaN, cross-kind/cross-numeric pairs and every other kind
// (Bool, Field, ...) reported as incomparable (ok == false).
func CompareValues(a, b Value) (ord Ordering, ok bool) {
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case types.Integer:
		return compareInt64(a.i, b.i), true
	case types.Float:
		if isNaN(a.f) || isNaN(b.f) {
			return 0, false
		}
		return compareFloat64(a.f, b.f), true
	case types.Text, types.File, types.Glob:
		return compareString(a.s, b.s), true
	case types.Time:
		switch {
		case a.t.Before(b.t):
			return Less, true
		case a.t.After(b.t):
			return Greater, true
		default:
			return EqualOrd, true
		}
	case types.Duration:
		return compareInt64(int64(a.d), int64(b.d)), true
	default:
		return 0, false
	}
}

func isNaN(f float64) bool { return f != f }

func compareInt64(a, b int64) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return EqualOrd
	}
}

func compareFloat64(a, b float64) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return EqualOrd
	}
}

func compareString(a, b string) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return EqualOrd
	}
}
