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

// TypeOf emits Value::Type(input.value_type()).
func TypeOf(ctx *shell.ExecutionContext) error {
	v, err := ctx.Input().Recv()
	if err != nil {
		return err
	}
	return ctx.Output().Send(shell.TypeVal(v.Type()))
}

// TypeTo casts the single input Value to the type named by the call's sole
// argument, using the documented cast table. Fails TypeMismatch on
// disallowed casts.
func TypeTo(ctx *shell.ExecutionContext) error {
	if err := ctx.CheckLen(1); err != nil {
		return err
	}
	target, ok := ctx.Arguments()[0].Value.AsType()
	if !ok {
		return shell.NewError(shell.InvalidArgument, "type.to requires a type argument")
	}
	v, err := ctx.Input().Recv()
	if err != nil {
		return err
	}
	cast, err := v.Cast(target)
	if err != nil {
		return err
	}
	return ctx.Output().Send(cast)
}
