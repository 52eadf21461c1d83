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

import shell "github.com/brunotm/shell"

// Let declares each named argument in the current scope. An argument with
// an empty name fails InvalidArgument. Emits no row.
func Let(ctx *shell.ExecutionContext) error {
	for _, a := range ctx.Arguments() {
		if a.Name == "" {
			return shell.NewError(shell.InvalidArgument, "let requires named arguments")
		}
		if err := ctx.Scope().Declare(a.Name, a.Value); err != nil {
			return err
		}
	}
	return ctx.Output().Send(shell.EmptyValue)
}

// Val returns its single argument unchanged as the stage output.
func Val(ctx *shell.ExecutionContext) error {
	if err := ctx.CheckLen(1); err != nil {
		return err
	}
	v, _ := ctx.ValueAt(0)
	return ctx.Output().Send(v)
}
