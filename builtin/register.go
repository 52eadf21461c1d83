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

// Register declares every built-in streaming command of section 4.6, plus
// the str namespace supplemented in the expanded specification, into root.
func Register(root *shell.Scope) error {
	commands := []struct {
		name      string
		fn        shell.CommandFunc
		canBlock  bool
		shortHelp string
	}{
		{"seq", Seq, true, "emit an unbounded sequence of integers"},
		{"sum", Sum, true, "sum an integer column of the input"},
		{"group", Group, true, "partition the input into per-key sub-streams"},
		{"filter", FilterCommand, true, "forward rows satisfying a condition"},
		{"let", Let, false, "declare named bindings in the current scope"},
		{"val", Val, false, "return an argument unchanged"},
		{"dir", Dir, false, "list the member names of a value"},
		{"echo", Echo, false, "print each argument"},
		{"pwd", Pwd, false, "print the job's working directory"},
	}

	for _, c := range commands {
		if err := root.DeclareCommand(c.name, c.fn, c.canBlock, c.shortHelp, ""); err != nil {
			return err
		}
	}

	typeNS, err := root.CreateNamespace("type")
	if err != nil {
		return err
	}
	if err := typeNS.DeclareCommand("of", TypeOf, false, "emit the type of the input value", ""); err != nil {
		return err
	}
	if err := typeNS.DeclareCommand("to", TypeTo, false, "cast the input value to a type", ""); err != nil {
		return err
	}

	return root.CreateLazyNamespace("str", func(ns *shell.Scope) {
		ns.DeclareCommand("upper", StrUpper, false, "uppercase text", "")
		ns.DeclareCommand("lower", StrLower, false, "lowercase text", "")
		ns.DeclareCommand("trim", StrTrim, false, "trim surrounding whitespace", "")
		ns.DeclareCommand("split", StrSplit, false, "split text by a separator", "")
	})
}
