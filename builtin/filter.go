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

// CompareOp is one of the comparison operators a filter Condition supports.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpMatch
	OpNotMatch
)

// Operand is either a literal Value or a reference to a row column by index,
// resolved against the row being tested.
type Operand struct {
	IsField bool
	Field   int
	Lit     shell.Value
}

func (o Operand) resolve(row shell.Row) (shell.Value, error) {
	if !o.IsField {
		return o.Lit, nil
	}
	if o.Field < 0 || o.Field >= len(row.Cells) {
		return shell.Value{}, shell.NewError(shell.OutOfRange, "field index %d out of range", o.Field)
	}
	return row.Cells[o.Field], nil
}

// Condition is a single comparison between two Operands, as produced by the
// parser for a `filter` call (section 4.6). The core places no other
// structure on conditions; boolean composition, if any, is the parser's
// concern.
type Condition struct {
	Left  Operand
	Op    CompareOp
	Right Operand
}

// Eval evaluates the condition against row. A non-nil error is always a
// per-row condition (incomparable operands, invalid match target) the
// caller should report to the printer and treat as "row dropped", not a
// stage failure.
func (c Condition) Eval(row shell.Row) (bool, error) {
	left, err := c.Left.resolve(row)
	if err != nil {
		return false, err
	}
	right, err := c.Right.resolve(row)
	if err != nil {
		return false, err
	}

	switch c.Op {
	case OpEq:
		return shell.ValuesEqual(left, right), nil
	case OpNe:
		return !shell.ValuesEqual(left, right), nil
	case OpMatch, OpNotMatch:
		matched, err := matchValues(left, right)
		if err != nil {
			return false, err
		}
		if c.Op == OpNotMatch {
			return !matched, nil
		}
		return matched, nil
	default:
		ord, ok := shell.CompareValues(left, right)
		if !ok {
			return false, shell.NewError(shell.InvalidMatch, "values of type %s and %s are not comparable", left.Type(), right.Type())
		}
		switch c.Op {
		case OpLt:
			return ord == shell.Less, nil
		case OpLe:
			return ord != shell.Greater, nil
		case OpGt:
			return ord == shell.Greater, nil
		case OpGe:
			return ord != shell.Less, nil
		}
	}
	return false, shell.NewError(shell.Internal, "unknown comparison operator")
}

// matchValues implements =~/!~: the left side must be Text or File, the
// right side a Glob or Regex, else InvalidMatch.
func matchValues(left, right shell.Value) (bool, error) {
	s, ok := left.AsText()
	if !ok {
		s, ok = left.AsFile()
	}
	if !ok {
		return false, shell.NewError(shell.InvalidMatch, "left operand of =~/!~ must be text or file, got %s", left.Type())
	}
	return shell.MatchGlobOrRegex(right, s)
}

// Filter forwards rows satisfying cond, reporting per-row incomparability or
// match errors to the printer rather than failing the stage (section 4.6
// and section 7's per-row error handling). Exposed for tests and for
// embedding a pre-built Condition directly.
func Filter(cond Condition) shell.CommandFunc {
	return func(ctx *shell.ExecutionContext) error {
		stream, err := inputStream(ctx)
		if err != nil {
			return err
		}
		return filterStream(ctx, stream, cond)
	}
}

var opSymbols = map[string]CompareOp{
	"==": OpEq, "!=": OpNe, "<": OpLt, "<=": OpLe, ">": OpGt, ">=": OpGe,
	"=~": OpMatch, "!~": OpNotMatch,
}

// FilterCommand is the registered `filter` builtin. A parser would normally
// hand the core a ready-made Condition; since no parser is wired into this
// library, this entry point accepts its three pieces as ordinary call
// arguments instead: a left operand (field or literal), an operator symbol
// Text, and a right operand (field or literal). Field operands name a
// column of the upstream schema.
func FilterCommand(ctx *shell.ExecutionContext) error {
	args := ctx.Arguments()
	if len(args) != 3 {
		return shell.NewError(shell.InvalidArgument, "filter requires left, operator, right arguments")
	}

	opSym, ok := args[1].Value.AsText()
	if !ok {
		return shell.NewError(shell.InvalidArgument, "filter operator must be text")
	}
	op, ok := opSymbols[opSym]
	if !ok {
		return shell.NewError(shell.InvalidArgument, "unknown filter operator %q", opSym)
	}

	stream, err := inputStream(ctx)
	if err != nil {
		return err
	}

	left, err := resolveOperand(args[0].Value, stream)
	if err != nil {
		return err
	}
	right, err := resolveOperand(args[2].Value, stream)
	if err != nil {
		return err
	}

	cond := Condition{Left: left, Op: op, Right: right}
	return filterStream(ctx, stream, cond)
}

// resolveOperand turns an argument Value into an Operand: a single-segment
// Field names a column of stream's schema, anything else is a literal.
func resolveOperand(v shell.Value, stream shell.TableStream) (Operand, error) {
	field, ok := v.AsField()
	if !ok || len(field) != 1 {
		return Operand{Lit: v}, nil
	}
	for i, c := range stream.Types() {
		if c.Name == field[0] {
			return Operand{IsField: true, Field: i}, nil
		}
	}
	return Operand{}, shell.NewError(shell.NotFound, "no column named %q", field[0])
}

// filterStream runs cond over an already-resolved input stream, forwarding
// matching rows (section 4.6 and section 7's per-row error handling).
func filterStream(ctx *shell.ExecutionContext, stream shell.TableStream, cond Condition) error {
	sender, err := ctx.Output().Initialize(stream.Types(), 64)
	if err != nil {
		return err
	}
	defer sender.Close()

	for {
		row, err := stream.Recv()
		if shell.Is(err, shell.EndOfStream) {
			return nil
		}
		if err != nil {
			return err
		}
		ok, err := cond.Eval(row)
		if err != nil {
			ctx.Printer().Printf("filter: %v", err)
			continue
		}
		if !ok {
			continue
		}
		if err := sender.Send(row); err != nil {
			return nil
		}
	}
}
