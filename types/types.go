// Package types holds the Kind discriminant shared by Value and ValueType.
package types

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

// Kind discriminates the variants of the Value tagged union.
type Kind uint8

const (
	Integer Kind = iota
	Float
	Text
	Bool
	Time
	Duration
	File
	Glob
	Regex
	Field
	Type
	Command
	Closure
	Binary
	BinaryStream
	List
	Dict
	Struct
	Scope
	Row
	Table
	TableStream
	Empty
	Any // ValueType only: matches anything
)

func (k Kind) String() (name string) {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Text:
		return "text"
	case Bool:
		return "bool"
	case Time:
		return "time"
	case Duration:
		return "duration"
	case File:
		return "file"
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Field:
		return "field"
	case Type:
		return "type"
	case Command:
		return "command"
	case Closure:
		return "closure"
	case Binary:
		return "binary"
	case BinaryStream:
		return "binary_stream"
	case List:
		return "list"
	case Dict:
		return "dict"
	case Struct:
		return "struct"
	case Scope:
		return "scope"
	case Row:
		return "row"
	case Table:
		return "table"
	case TableStream:
		return "table_stream"
	case Empty:
		return "empty"
	case Any:
		return "any"
	}
	return "unknown"
}

// Scalar reports whether a Kind is a leaf, directly-hashable/comparable value
// (as opposed to a composite or streaming kind).
func (k Kind) Scalar() bool {
	switch k {
	case Integer, Float, Text, Bool, Time, Duration, File, Glob, Field:
		return true
	}
	return false
}
