/*
   Copyright 2025 The DIRPX Authors.

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

package apis

import "errors"

var (
	// ErrCloneFailed classifies every failure raised while duplicating a value.
	ErrCloneFailed = errors.New("immuter: clone operation failed")
	// ErrFreezeFailed classifies failures raised by host lock hooks.
	ErrFreezeFailed = errors.New("immuter: freeze operation failed")
	// ErrCycle is the cause reported when a value graph contains itself.
	ErrCycle = errors.New("immuter: cyclic value graph")
	// ErrUnsupported is the cause reported for tagged values a handler cannot introspect.
	ErrUnsupported = errors.New("immuter: value cannot be introspected")
)

// Op names the chain stage that produced an OpError.
type Op string

const (
	// OpClone is the duplication stage.
	OpClone Op = "clone"
	// OpFreeze is the locking stage.
	OpFreeze Op = "freeze"
)

// OpError wraps the cause of a failed chain run.
// errors.Is matches ErrCloneFailed or ErrFreezeFailed by Op, and the cause.
type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string {
	return e.kind().Error() + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

// Is reports whether target is the classification sentinel for e.Op.
func (e *OpError) Is(target error) bool {
	return target == e.kind()
}

func (e *OpError) kind() error {
	if e.Op == OpFreeze {
		return ErrFreezeFailed
	}
	return ErrCloneFailed
}
