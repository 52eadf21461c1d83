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

import "fmt"

// ErrorKind is the closed set of error categories a stage can fail with.
type ErrorKind uint8

const (
	Parse ErrorKind = iota
	UnknownCommand
	NotFound
	InvalidArgument
	TypeMismatch
	SchemaMismatch
	ChannelClosed
	EndOfStream
	OutOfRange
	ReadOnly
	WouldBlock
	InvalidMatch
	Io
	Internal
)

func (k ErrorKind) String() string {
	switch k {
	case Parse:
		return "parse"
	case UnknownCommand:
		return "unknown_command"
	case NotFound:
		return "not_found"
	case InvalidArgument:
		return "invalid_argument"
	case TypeMismatch:
		return "type_mismatch"
	case SchemaMismatch:
		return "schema_mismatch"
	case ChannelClosed:
		return "channel_closed"
	case EndOfStream:
		return "end_of_stream"
	case OutOfRange:
		return "out_of_range"
	case ReadOnly:
		return "read_only"
	case WouldBlock:
		return "would_block"
	case InvalidMatch:
		return "invalid_match"
	case Io:
		return "io"
	case Internal:
		return "internal"
	}
	return "unknown"
}

// Error is the concrete error type returned by the runtime and by commands.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewError builds an *Error of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind carrying an underlying cause.
func Wrap(kind ErrorKind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind ErrorKind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

func notFound(format string, args ...interface{}) *Error {
	return NewError(NotFound, format, args...)
}

func typeMismatch(format string, args ...interface{}) *Error {
	return NewError(TypeMismatch, format, args...)
}
