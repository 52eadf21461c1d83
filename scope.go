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

import "sync"

// Scope is a lexically nested environment of named Values, addressed by
// name instead of position. A Scope may be marked readonly, in which case
// Declare/Set fail ReadOnly; this backs closure capture semantics.
type Scope struct {
	mtx       sync.RWMutex
	parent    *Scope
	vars      map[string]Value
	used      []*Scope
	children  map[string]*Scope
	readonly  bool
	lazyOnce  map[string]*sync.Once
	lazyInits map[string]func(ns *Scope)
}

// NewScope creates a root scope with no parent.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]Value)}
}

// NewChild creates a scope lexically nested under s.
func (s *Scope) NewChild() *Scope {
	return &Scope{parent: s, vars: make(map[string]Value)}
}

// Readonly marks the scope read-only in place; declarations and assignments
// on a readonly scope fail with ErrorKind ReadOnly, as required when a
// closure captures its defining scope.
func (s *Scope) Readonly() *Scope {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.readonly = true
	return s
}

func (s *Scope) isReadonly() bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.readonly
}

// Declare introduces name in this scope's own frame, shadowing any outer
// binding of the same name.
func (s *Scope) Declare(name string, v Value) error {
	if s.isReadonly() {
		return NewError(ReadOnly, "cannot declare %q: scope is read-only", name)
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.vars[name] = v
	return nil
}

// Set assigns to the nearest enclosing scope (including used scopes) that
// already declares name, failing NotFound if none does.
func (s *Scope) Set(name string, v Value) error {
	owner := s.lookupOwner(name)
	if owner == nil {
		return notFound("undeclared variable %q", name)
	}
	if owner.isReadonly() {
		return NewError(ReadOnly, "cannot assign %q: scope is read-only", name)
	}
	owner.mtx.Lock()
	owner.vars[name] = v
	owner.mtx.Unlock()
	return nil
}

// Get resolves name through the scope chain: own frame, used scopes, then
// the parent chain.
func (s *Scope) Get(name string) (Value, bool) {
	owner := s.lookupOwner(name)
	if owner == nil {
		return Value{}, false
	}
	owner.triggerLazyInit(name)
	owner.mtx.RLock()
	defer owner.mtx.RUnlock()
	v, ok := owner.vars[name]
	return v, ok
}

// triggerLazyInit runs the one-shot populate function registered for name,
// if any, the first time it is observed.
func (s *Scope) triggerLazyInit(name string) {
	s.mtx.RLock()
	once := s.lazyOnce[name]
	init := s.lazyInits[name]
	var ns *Scope
	if v, ok := s.vars[name]; ok {
		ns, _ = v.AsScope()
	}
	s.mtx.RUnlock()
	if once != nil && init != nil && ns != nil {
		once.Do(func() { init(ns) })
	}
}

// lookupOwner finds the scope frame that owns name, or nil.
func (s *Scope) lookupOwner(name string) *Scope {
	s.mtx.RLock()
	if _, ok := s.vars[name]; ok {
		s.mtx.RUnlock()
		return s
	}
	used := append([]*Scope(nil), s.used...)
	parent := s.parent
	s.mtx.RUnlock()

	for _, u := range used {
		if owner := u.lookupOwner(name); owner != nil {
			return owner
		}
	}
	if parent != nil {
		return parent.lookupOwner(name)
	}
	return nil
}

// GetPath resolves a dotted Field path: the first segment through Get, then
// each subsequent segment as a member lookup against the prior result, which
// must be a Struct (field by name) or a Scope (binding through Get); any
// other kind fails TypeMismatch.
func (s *Scope) GetPath(segments []string) (Value, error) {
	if len(segments) == 0 {
		return Value{}, NewError(InvalidArgument, "empty field path")
	}
	v, ok := s.Get(segments[0])
	if !ok {
		return Value{}, notFound("undeclared variable %q", segments[0])
	}
	for _, seg := range segments[1:] {
		next, err := memberGet(v, seg)
		if err != nil {
			return Value{}, err
		}
		v = next
	}
	return v, nil
}

// memberGet resolves a single member-access step, seg, against v.
func memberGet(v Value, seg string) (Value, error) {
	if st, ok := v.AsStruct(); ok {
		if fv, ok := st.Get(seg); ok {
			return fv, nil
		}
		return Value{}, notFound("no field %q", seg)
	}
	if sc, ok := v.AsScope(); ok {
		if fv, ok := sc.Get(seg); ok {
			return fv, nil
		}
		return Value{}, notFound("no field %q", seg)
	}
	return Value{}, typeMismatch("value of type %s has no field %q", v.Type(), seg)
}

// Use imports another scope's bindings as a fallback lookup path, mirroring
// a `use` statement. A used scope is searched after the importing scope's
// own frame but before its lexical parent.
func (s *Scope) Use(other *Scope) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.used = append(s.used, other)
}

// CreateNamespace declares name as an eagerly-populated nested Scope and
// returns it for the caller to populate.
func (s *Scope) CreateNamespace(name string) (*Scope, error) {
	ns := s.NewChild()
	if err := s.Declare(name, ScopeValue(ns)); err != nil {
		return nil, err
	}
	s.mtx.Lock()
	if s.children == nil {
		s.children = make(map[string]*Scope)
	}
	s.children[name] = ns
	s.mtx.Unlock()
	return ns, nil
}

// CreateLazyNamespace declares name bound to a Scope that is populated by
// init exactly once, on first access. This is the one-shot lazy-namespace
// pattern required for builtin namespaces such as `str`.
func (s *Scope) CreateLazyNamespace(name string, init func(ns *Scope)) error {
	ns := s.NewChild()
	if err := s.Declare(name, ScopeValue(ns)); err != nil {
		return err
	}
	s.mtx.Lock()
	if s.lazyOnce == nil {
		s.lazyOnce = make(map[string]*sync.Once)
		s.lazyInits = make(map[string]func(ns *Scope))
	}
	s.lazyOnce[name] = &sync.Once{}
	s.lazyInits[name] = init
	s.mtx.Unlock()
	return nil
}

// DeclareCommand registers a builtin into this scope, as named in section 6:
// declare_command(name, fn, can_block, short_help, long_help).
func (s *Scope) DeclareCommand(name string, fn CommandFunc, canBlock bool, shortHelp, longHelp string) error {
	cmd := &Command{Name: name, Fn: fn, CanBlock: canBlock, ShortHelp: shortHelp, LongHelp: longHelp}
	return s.Declare(name, CommandValue(cmd))
}

// Names returns the names declared directly in this scope's own frame, used
// by the `dir` builtin and by Value.Fields for a Scope value.
func (s *Scope) Names() []string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	names := make([]string, 0, len(s.vars))
	for n := range s.vars {
		names = append(names, n)
	}
	return names
}
