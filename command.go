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

// CommandFunc is the shape every built-in implements: a function of
// ExecutionContext to error (section 4.5). A command must call
// ctx.Output().Send or ctx.Output().Initialize(...).Send(...) at least once
// on success; failing to do so leaves the downstream channel closed without
// a value, which a consumer's Recv reports as a ChannelClosed error.
type CommandFunc func(ctx *ExecutionContext) error

// Command is a registered builtin: its invocable body plus the declaration
// metadata used for help text and for the can_block classification of
// section 4.3/4.4.
type Command struct {
	Name      string
	Fn        CommandFunc
	CanBlock  bool
	ShortHelp string
	LongHelp  string
}

// Invoke runs the command against ctx. Both Command and Closure implement
// this one capability, letting the job compiler dispatch without caring
// which kind of Value::Command/Value::Closure it resolved (section 4.4
// step 2a, the "Invocable" pattern).
func (c *Command) Invoke(ctx *ExecutionContext) error {
	return c.Fn(ctx)
}

// CallDefinition is one parsed pipeline stage: a dotted command name plus
// its uncompiled arguments (section 4.4). The parser produces a Job as an
// ordered sequence of these; this package never defines surface syntax.
//
// Scale requests that this stage run as Scale concurrent worker invocations
// of the resolved command, row-routed by a consistent hash of ScaleKey
// (section 2.12 of the expanded specification). Scale <= 1 runs the stage
// unscaled, exactly as section 4.4 describes it.
type CallDefinition struct {
	Name      []string
	Arguments []ArgumentDefinition
	Scale     int
	ScaleKey  string
}

// Closure is a deferred job sequence capturing the scope it was defined in
// (section 4.3's ClosureDefinition and section 3's Value::Closure). Invoking
// it compiles and runs Jobs against a child of Captured.
type Closure struct {
	Jobs     []CallDefinition
	Captured *Scope
}

// Invoke runs the closure's job sequence to completion in a fresh child
// scope of its captured environment, wiring input/output through ctx.
func (c *Closure) Invoke(ctx *ExecutionContext) error {
	child := c.Captured.NewChild()
	handles, err := CompileJob(c.Jobs, child, ctx.cwd, ctx.Input(), ctx.rawOutput(), ctx.printer, ctx.cfg)
	if err != nil {
		return err
	}
	return JoinAll(handles)
}
