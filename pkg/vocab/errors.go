/*
Copyright 2025 The vocab-manager Authors.

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

package vocab

import (
	"errors"
	"fmt"
)

// NoIndex is the sentinel returned by the special-index accessors when the
// loaded vocabulary defines no entry for that role.
const NoIndex int32 = -1

// ErrModelClosed is returned by lookups on a Model whose underlying engine
// has already been released.
var ErrModelClosed = errors.New("vocabulary model is closed")

// ModelLoadError reports a failure to construct a Model from a vocabulary
// resource. It is returned once, at load time; no partial handle is produced.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load vocabulary model from %q: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// IndexOutOfRangeError reports a token-id lookup outside [0, Size).
// It signals a contract violation by the caller and is never retried.
type IndexOutOfRangeError struct {
	Index int32
	Size  int32
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("token index %d is out of range [0, %d)", e.Index, e.Size)
}
