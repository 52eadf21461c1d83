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

// Pwd emits the job's working directory as a File Value. Supplements the
// distilled command set with the working-directory introspection every
// shell core in the example pack exposes alongside its file arguments.
func Pwd(ctx *shell.ExecutionContext) error {
	return ctx.Output().Send(shell.File(ctx.Cwd()))
}
