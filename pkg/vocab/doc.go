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

// Package vocab is the configuration and vocabulary-indexing layer in front
// of a subword tokenization engine.
//
// The package does not segment text. It owns two things: ModelOptions, the
// immutable-once-consumed declaration of special-token behavior (control
// tokens, beginning/end markers, reversal), and Model, the handle that loads
// the engine from a vocabulary resource and serves token-string to token-id
// lookups, the reserved special indices, and the vocabulary size. Encoder
// and decoder collaborators read the flags back through Model.Options() and
// reach the processor through Model.Engine().
package vocab
