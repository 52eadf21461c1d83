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
	"fmt"
	"io"
	"sync"
)

// Printer is the non-fatal diagnostic sink every ExecutionContext carries
// (section 4.5). It is distinct from the zap-backed internal Logger in
// log/log.go: the Logger records operational events for operators, while
// Printer carries user-facing messages (job errors, glob-miss notices,
// explicit `echo`) that belong on the shell's own output surface. All
// stages of a job share one underlying sink, serialised by a mutex so
// concurrent stages never interleave a line.
type Printer struct {
	mtx sync.Mutex
	w   io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Clone returns p itself: every holder shares the one Printer, with its
// writer and its mutex, so all writes are serialized.
func (p *Printer) Clone() *Printer {
	return p
}

// Printf writes a formatted diagnostic line.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Print writes v's rendered form as a diagnostic line, per the `echo` builtin.
func (p *Printer) Print(v Value) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	fmt.Fprintln(p.w, v.String())
}

// JobError reports an error surfaced by a failed stage or a failed
// sub-job dependency (section 4.4 step 2b).
func (p *Printer) JobError(command string, err error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	fmt.Fprintf(p.w, "error: %s: %v\n", command, err)
}
