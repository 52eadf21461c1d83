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
	"github.com/spf13/cast"

	"github.com/brunotm/shell/types"
)

// Cast converts v to the target ValueType per the documented cast table
// (section 4.6 / type.to): Integer<->Float<->Text<->Bool, Duration<->Text,
// Time<->Text. Casts outside that table fail TypeMismatch. Conversions are
// delegated to spf13/cast, which already implements the permissive
// stringly-typed conversion rules the cast table calls for.
func (v Value) Cast(target ValueType) (Value, error) {
	if v.Type().Satisfies(target) {
		return v, nil
	}

	raw := castSource(v)

	switch target.kind {
	case types.Integer:
		i, err := cast.ToInt64E(raw)
		if err != nil {
			return Value{}, typeMismatch("cannot cast %s to integer: %v", v.Type(), err)
		}
		return Integer(i), nil
	case types.Float:
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return Value{}, typeMismatch("cannot cast %s to float: %v", v.Type(), err)
		}
		return Float(f), nil
	case types.Text:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return Value{}, typeMismatch("cannot cast %s to text: %v", v.Type(), err)
		}
		return Text(s), nil
	case types.Bool:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return Value{}, typeMismatch("cannot cast %s to bool: %v", v.Type(), err)
		}
		return Bool(b), nil
	case types.Duration:
		d, err := cast.ToDurationE(raw)
		if err != nil {
			return Value{}, typeMismatch("cannot cast %s to duration: %v", v.Type(), err)
		}
		return DurationValue(d), nil
	case types.Time:
		t, err := cast.ToTimeE(raw)
		if err != nil {
			return Value{}, typeMismatch("cannot cast %s to time: %v", v.Type(), err)
		}
		return TimeValue(t), nil
	default:
		return Value{}, typeMismatch("unsupported cast from %s to %s", v.Type(), target)
	}
}

// castSource extracts the Go value spf13/cast should convert from.
func castSource(v Value) interface{} {
	switch v.kind {
	case types.Integer:
		return v.i
	case types.Float:
		return v.f
	case types.Text, types.File, types.Glob:
		return v.s
	case types.Bool:
		return v.b
	case types.Time:
		return v.t
	case types.Duration:
		return v.d
	default:
		return v.String()
	}
}
