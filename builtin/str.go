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
	"strings"

	shell "github.com/brunotm/shell"
	"github.com/brunotm/shell/types"
)

// StrUpper, StrLower and StrTrim each take a single Text argument and emit
// the transformed Text. They supplement the distilled command set's text
// handling per the `str` namespace named in the expanded specification.
func StrUpper(ctx *shell.ExecutionContext) error { return strTransform(ctx, strings.ToUpper) }
func StrLower(ctx *shell.ExecutionContext) error { return strTransform(ctx, strings.ToLower) }
func StrTrim(ctx *shell.ExecutionContext) error  { return strTransform(ctx, strings.TrimSpace) }

func strTransform(ctx *shell.ExecutionContext, fn func(string) string) error {
	if err := ctx.CheckLen(1); err != nil {
		return err
	}
	v, _ := ctx.ValueAt(0)
	s, ok := v.AsText()
	if !ok {
		return shell.NewError(shell.TypeMismatch, "expected text, got %s", v.Type())
	}
	return ctx.Output().Send(shell.Text(fn(s)))
}

// StrSplit takes a Text value and a Text separator, emitting a list of Text
// elements.
func StrSplit(ctx *shell.ExecutionContext) error {
	if err := ctx.CheckLen(2); err != nil {
		return err
	}
	v, _ := ctx.ValueAt(0)
	s, ok := v.AsText()
	if !ok {
		return shell.NewError(shell.TypeMismatch, "expected text, got %s", v.Type())
	}
	sepV, _ := ctx.ValueAt(1)
	sep, ok := sepV.AsText()
	if !ok {
		return shell.NewError(shell.TypeMismatch, "expected text separator, got %s", sepV.Type())
	}

	list := shell.NewList(shell.NewValueType(types.Text))
	for _, part := range strings.Split(s, sep) {
		if err := list.Append(shell.Text(part)); err != nil {
			return err
		}
	}
	return ctx.Output().Send(shell.ListValue(list))
}
