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
	"math"

	shell "github.com/brunotm/shell"
	"github.com/brunotm/shell/types"
)

var seqSchema = []shell.ColumnType{shell.NamedColumn("value", shell.NewValueType(types.Integer))}

// Seq ignores its input and emits rows with one Integer column "value" for
// i in 0..n, defaulting to a very large count when n is not given. Like the
// teacher's source processors, it respects backpressure from a bounded
// output: a full buffer blocks the producer rather than dropping rows.
func Seq(ctx *shell.ExecutionContext) error {
	n := int64(math.MaxInt64)
	if v, ok := ctx.OptionalInteger(0); ok {
		n = v
	}

	sender, err := ctx.Output().Initialize(seqSchema, 256)
	if err != nil {
		return err
	}
	defer sender.Close()

	for i := int64(0); i < n; i++ {
		row, err := shell.NewRow(seqSchema, []shell.Value{shell.Integer(i)})
		if err != nil {
			return err
		}
		if err := sender.Send(row); err != nil {
			// downstream gone: clean shutdown, not an error (section 7).
			return nil
		}
	}
	return nil
}
