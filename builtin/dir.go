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
	"github.com/brunotm/shell/types"
)

// Dir emits a list of the member names of its single argument: fields for
// structs, bindings for scopes, known accessor paths for files, and the
// fixed method tables for list/dict (section 4.6).
func Dir(ctx *shell.ExecutionContext) error {
	if err := ctx.CheckLen(1); err != nil {
		return err
	}
	v, _ := ctx.ValueAt(0)
	names := v.Fields()

	list := shell.NewList(shell.NewValueType(types.Text))
	for _, n := range names {
		if err := list.Append(shell.Text(n)); err != nil {
			return err
		}
	}
	return ctx.Output().Send(shell.ListValue(list))
}
