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

import "slices"

// ModelOptions holds the tokenizer-wide options accumulated before a Model
// is loaded. It is free-standing data: it performs no I/O, no validation,
// and has no dependency on a loaded engine. Mutate it only before handing
// it to LoadModel.
//
// The encode/decode collaborators re-read these flags through
// Model.Options(); the Model itself only serves index lookups.
type ModelOptions struct {
	// ControlTokens are extra vocabulary entries reserved beyond the base
	// vocabulary, in insertion order. Duplicates are preserved; callers
	// that need uniqueness must enforce it themselves.
	ControlTokens []string `json:"controlTokens"`
	// AddBOS tells consumers to inject a beginning-of-sequence marker.
	AddBOS bool `json:"addBOS"`
	// AddEOS tells consumers to inject an end-of-sequence marker.
	AddEOS bool `json:"addEOS"`
	// Reverse tells consumers to reverse the token sequence. Whether the
	// reversal happens before or after marker injection is owned by the
	// consumer.
	Reverse bool `json:"reverse"`
}

// DefaultModelOptions returns a ModelOptions with all flags off and no
// control tokens.
func DefaultModelOptions() *ModelOptions {
	return &ModelOptions{}
}

// WithControlToken appends value to the control-token sequence and returns
// the receiver for chaining.
func (o *ModelOptions) WithControlToken(value string) *ModelOptions {
	o.ControlTokens = append(o.ControlTokens, value)
	return o
}

// WithAddBOS sets the AddBOS flag and returns the receiver for chaining.
func (o *ModelOptions) WithAddBOS(value bool) *ModelOptions {
	o.AddBOS = value
	return o
}

// WithAddEOS sets the AddEOS flag and returns the receiver for chaining.
func (o *ModelOptions) WithAddEOS(value bool) *ModelOptions {
	o.AddEOS = value
	return o
}

// WithReverse sets the Reverse flag and returns the receiver for chaining.
func (o *ModelOptions) WithReverse(value bool) *ModelOptions {
	o.Reverse = value
	return o
}

// clone returns a deep copy so that a Model keeps its own snapshot of the
// options it was constructed with.
func (o *ModelOptions) clone() ModelOptions {
	cloned := *o
	cloned.ControlTokens = slices.Clone(o.ControlTokens)

	return cloned
}
