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
	"io"
	"testing"

	shell "github.com/brunotm/shell"
	"github.com/stretchr/testify/assert"
)

func TestSeqEmitsRequestedCount(t *testing.T) {
	in := shell.NewValueChannel()
	out := shell.NewValueChannel()
	args := []shell.Argument{{Value: shell.Integer(5)}}
	ctx := shell.NewExecutionContext(in, out, args, shell.NewScope(), shell.NewPrinter(io.Discard), ".")

	done := make(chan error, 1)
	go func() { done <- Seq(ctx) }()

	v, err := out.Recv()
	assert.Nil(t, err)
	stream, ok := v.AsTableStream()
	assert.True(t, ok)

	var got []int64
	for {
		row, err := stream.Recv()
		if err != nil {
			break
		}
		i, _ := row.Cells[0].AsInteger()
		got = append(got, i)
	}
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, got)
	assert.Nil(t, <-done)
}

func TestSeqStopsWhenDownstreamCloses(t *testing.T) {
	in := shell.NewValueChannel()
	out := shell.NewValueChannel()
	args := []shell.Argument{{Value: shell.Integer(1000000)}}
	ctx := shell.NewExecutionContext(in, out, args, shell.NewScope(), shell.NewPrinter(io.Discard), ".")

	done := make(chan error, 1)
	go func() { done <- Seq(ctx) }()

	v, err := out.Recv()
	assert.Nil(t, err)
	stream, _ := v.AsTableStream()
	row, err := stream.Recv()
	assert.Nil(t, err)
	i, _ := row.Cells[0].AsInteger()
	assert.Equal(t, int64(0), i)

	stream.Close()
	assert.Nil(t, <-done)
}
