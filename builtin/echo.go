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

// Echo prints each argument via the pretty-printer and emits no row.
func Echo(ctx *shell.ExecutionContext) error {
	for _, a := range ctx.Arguments() {
		ctx.Printer().Print(a.Value)
	}
	return ctx.Output().Send(shell.EmptyValue)
}
