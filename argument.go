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
	"os"
	"path/filepath"

	"github.com/brunotm/shell/types"
)

// Argument pairs an optional name with a fully evaluated Value, the
// compiled form of an ArgumentDefinition (section 4.3).
type Argument struct {
	Name  string
	Value Value
}

// ArgumentDefinition pairs an optional name with an uncompiled ValueDefinition.
type ArgumentDefinition struct {
	Name       string
	Definition ValueDefinition
}

// ValueDefinition is the sum of ways an argument's value may be produced,
// evaluated against a Scope during job compilation.
type ValueDefinition interface {
	isValueDefinition()
}

// LiteralDefinition wraps an already-known Value; never blocks.
type LiteralDefinition struct{ V Value }

// LabelDefinition looks the name up in scope, falling back to a File Value
// for a matching filename under the working directory.
type LabelDefinition struct{ Name string }

// ClosureDefinition wraps a job sequence into a Value::Closure; never blocks.
type ClosureDefinition struct{ Jobs []CallDefinition }

// JobDefinitionValue spawns Job as a sub-job and blocks for its single
// trailing output Value. Forbidden under compileNonBlocking.
type JobDefinitionValue struct{ Job []CallDefinition }

// GetItemDefinition evaluates Parent and Index, then applies the subscript
// rules of section 4.3.
type GetItemDefinition struct {
	Parent ValueDefinition
	Index  ValueDefinition
}

// PathDefinition evaluates Parent, then resolves Label as a path/member
// access (subscript rules with a text label, plus list-member lookup).
type PathDefinition struct {
	Parent ValueDefinition
	Label  string
}

func (LiteralDefinition) isValueDefinition()   {}
func (LabelDefinition) isValueDefinition()     {}
func (ClosureDefinition) isValueDefinition()   {}
func (JobDefinitionValue) isValueDefinition()  {}
func (GetItemDefinition) isValueDefinition()   {}
func (PathDefinition) isValueDefinition()      {}

// compiler threads together what a ValueDefinition needs to evaluate:
// the current scope, the working directory for Label/File fallback, whether
// sub-job spawning is currently permitted, and where to accumulate the
// JobJoinHandles of any spawned sub-jobs.
type compiler struct {
	scope       *Scope
	cwd         string
	nonBlocking bool
	deps        *[]*JobJoinHandle
	printer     *Printer
	cfg         Config
}

// compileArguments evaluates a list of ArgumentDefinitions into Arguments,
// accumulating sub-job join handles into deps.
func compileArguments(defs []ArgumentDefinition, scope *Scope, cwd string, nonBlocking bool, deps *[]*JobJoinHandle, printer *Printer, cfg Config) ([]Argument, error) {
	c := &compiler{scope: scope, cwd: cwd, nonBlocking: nonBlocking, deps: deps, printer: printer, cfg: cfg}
	out := make([]Argument, 0, len(defs))
	for _, d := range defs {
		v, err := c.eval(d.Definition)
		if err != nil {
			return nil, err
		}
		out = append(out, Argument{Name: d.Name, Value: v})
	}
	return out, nil
}

// canBlock reports whether defs, compiled non-blocking, would need to spawn
// a sub-job. This is the can_block classification used to keep the REPL
// responsive (section 4.3/4.4).
func canBlock(defs []ArgumentDefinition) bool {
	for _, d := range defs {
		if definitionCanBlock(d.Definition) {
			return true
		}
	}
	return false
}

func definitionCanBlock(d ValueDefinition) bool {
	switch t := d.(type) {
	case JobDefinitionValue:
		return true
	case GetItemDefinition:
		return definitionCanBlock(t.Parent) || definitionCanBlock(t.Index)
	case PathDefinition:
		return definitionCanBlock(t.Parent)
	default:
		return false
	}
}

func (c *compiler) eval(d ValueDefinition) (Value, error) {
	switch t := d.(type) {
	case LiteralDefinition:
		return t.V, nil
	case LabelDefinition:
		return c.evalLabel(t.Name)
	case ClosureDefinition:
		return ClosureValue(&Closure{Jobs: t.Jobs, Captured: c.scope}), nil
	case JobDefinitionValue:
		return c.evalJobDefinition(t.Job)
	case GetItemDefinition:
		return c.evalGetItem(t)
	case PathDefinition:
		return c.evalPath(t)
	default:
		return Value{}, NewError(Internal, "unknown value definition %T", d)
	}
}

func (c *compiler) evalLabel(name string) (Value, error) {
	if v, ok := c.scope.Get(name); ok {
		return v, nil
	}
	candidate := filepath.Join(c.cwd, name)
	if _, err := os.Stat(candidate); err == nil {
		return File(candidate), nil
	}
	return Value{}, notFound("no variable or file named %q", name)
}

func (c *compiler) evalJobDefinition(job []CallDefinition) (Value, error) {
	if c.nonBlocking {
		return Value{}, NewError(WouldBlock, "job argument requires blocking compilation")
	}
	handle, last, err := spawnSubJob(job, c.scope, c.cwd, c.printer, c.cfg)
	if err != nil {
		return Value{}, err
	}
	*c.deps = append(*c.deps, handle)
	return last.Recv()
}

func (c *compiler) evalGetItem(t GetItemDefinition) (Value, error) {
	parent, err := c.eval(t.Parent)
	if err != nil {
		return Value{}, err
	}
	index, err := c.eval(t.Index)
	if err != nil {
		return Value{}, err
	}
	return Subscript(parent, index)
}

func (c *compiler) evalPath(t PathDefinition) (Value, error) {
	parent, err := c.eval(t.Parent)
	if err != nil {
		return Value{}, err
	}
	return PathMember(parent, t.Label)
}

// Subscript implements the parent/index table of section 4.3.
func Subscript(parent, index Value) (Value, error) {
	switch parent.Kind() {
	case types.File:
		p, _ := parent.AsFile()
		idx, ok := index.AsText()
		if !ok {
			return Value{}, typeMismatch("file subscript requires a text index")
		}
		return File(filepath.Join(p, idx)), nil
	case types.List:
		l, _ := parent.AsList()
		idx, ok := index.AsInteger()
		if !ok {
			return Value{}, typeMismatch("list subscript requires an integer index")
		}
		return l.Get(int(idx))
	case types.Dict:
		d, _ := parent.AsDict()
		v, ok := d.Get(index)
		if !ok {
			return Value{}, notFound("no such key in dict")
		}
		return v, nil
	case types.Scope:
		s, _ := parent.AsScope()
		name, ok := index.AsText()
		if !ok {
			return Value{}, typeMismatch("scope subscript requires a text index")
		}
		v, ok := s.Get(name)
		if !ok {
			return Value{}, notFound("no binding %q in scope", name)
		}
		return v, nil
	case types.Struct:
		st, _ := parent.AsStruct()
		if name, ok := index.AsText(); ok {
			v, ok := st.Get(name)
			if !ok {
				return Value{}, notFound("no field %q", name)
			}
			return v, nil
		}
		if i, ok := index.AsInteger(); ok {
			v, ok := st.Index(int(i))
			if !ok {
				return Value{}, NewError(OutOfRange, "struct has no field at position %d", i)
			}
			return v, nil
		}
		return Value{}, typeMismatch("struct subscript requires a text or integer index")
	case types.Table:
		t, _ := parent.AsTable()
		i, ok := index.AsInteger()
		if !ok {
			return Value{}, typeMismatch("table subscript requires an integer index")
		}
		s, err := t.Get(int(i))
		if err != nil {
			return Value{}, err
		}
		return StructValue(s), nil
	case types.TableStream:
		ts, _ := parent.AsTableStream()
		i, ok := index.AsInteger()
		if !ok {
			return Value{}, typeMismatch("stream subscript requires an integer index")
		}
		s, err := ts.Get(int(i))
		if err != nil {
			return Value{}, err
		}
		return StructValue(s), nil
	default:
		return Value{}, typeMismatch("value of type %s is not subscriptable", parent.Type())
	}
}

// PathMember implements the path-access table of section 4.3: like
// Subscript with a text label, except for a List, where a label naming one
// of the list's members (Value.Fields) is returned as that name in a Text
// value; no member function is bound or returned.
func PathMember(parent Value, label string) (Value, error) {
	if parent.Kind() == types.List {
		for _, m := range parent.Fields() {
			if m == label {
				return Text(m), nil
			}
		}
		return Value{}, notFound("list has no member %q", label)
	}
	return Subscript(parent, Text(label))
}
