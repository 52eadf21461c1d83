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
	"regexp"
	"strings"
)

// compiledGlob is the boxed payload of a Value::Glob: a shell glob pattern
// (`*` any run of characters, `?` any single character) compiled once to a
// regexp for repeated Matches calls from `filter ... =~`.
type compiledGlob struct {
	pattern string
	re      *regexp.Regexp
}

func mustGlob(pattern string) *compiledGlob {
	return &compiledGlob{pattern: pattern, re: regexp.MustCompile(globToRegexp(pattern))}
}

// Matches reports whether s matches the glob pattern.
func (g *compiledGlob) Matches(s string) bool {
	return g.re.MatchString(s)
}

func globToRegexp(pattern string) string {
	var b strings.Builder
	b.WriteByte('^')
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '.', '+', '(', ')', '|', '[', ']', '{', '}', '^', '$', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('$')
	return b.String()
}

func (v Value) globMatcher() *compiledGlob {
	g, _ := v.any.(*compiledGlob)
	return g
}

// MatchGlobOrRegex matches s against pattern, which must be a Glob or Regex
// Value (section 4.6's `=~`/`!~` filter operator). Any other pattern kind
// fails InvalidMatch.
func MatchGlobOrRegex(pattern Value, s string) (bool, error) {
	if g := pattern.globMatcher(); g != nil {
		return g.Matches(s), nil
	}
	if re := pattern.regex(); re != nil {
		return re.MatchString(s), nil
	}
	return false, NewError(InvalidMatch, "right operand of =~/!~ must be glob or regex, got %s", pattern.Type())
}
