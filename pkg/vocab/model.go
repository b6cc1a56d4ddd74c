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
	"sync/atomic"

	"github.com/subwordkit/vocab-manager/pkg/vocab/engine"
)

// Model is the handle over one loaded vocabulary: an immutable id space
// [0, VocabularySize()) with string forms, the reserved special indices,
// and the options its consumers need to wrap id sequences with markers.
//
// A Model exclusively owns its engine instance. Do not copy a Model; hand
// the pointer over when transferring ownership and call Close exactly once
// when the owner is done. After construction the handle is read-only and
// safe for concurrent lookups.
type Model struct {
	eng  engine.Engine
	opts ModelOptions

	size    int32
	special engine.SpecialTokens

	closed atomic.Bool
}

// LoadModel binds a Model to the vocabulary resource at path using the
// given options. The options' control tokens are folded into the engine's
// id space in insertion order; their exact placement is engine-defined and
// passed through untouched.
//
// On failure a *ModelLoadError is returned and no engine resource is left
// allocated. A nil opts is equivalent to DefaultModelOptions().
func LoadModel(path string, opts *ModelOptions) (*Model, error) {
	return LoadModelWithEngineConfig(path, opts, nil)
}

// LoadModelWithEngineConfig is LoadModel with explicit control over how the
// engine resolves the built-in special roles.
func LoadModelWithEngineConfig(path string, opts *ModelOptions, engineCfg *engine.Config) (*Model, error) {
	if opts == nil {
		opts = DefaultModelOptions()
	}

	eng, err := engine.Load(path, opts.ControlTokens, engineCfg)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Err: err}
	}

	return &Model{
		eng:     eng,
		opts:    opts.clone(),
		size:    eng.VocabularySize(),
		special: eng.SpecialTokens(),
	}, nil
}

// TokenToIndex returns the id for token. A token absent from the vocabulary
// is a normal outcome of subword vocabularies, not an error: the unknown-token
// id is returned instead (which is NoIndex when the vocabulary reserves no
// unknown entry).
func (m *Model) TokenToIndex(token string) int32 {
	if m.closed.Load() {
		return m.special.Unknown
	}

	if id, ok := m.eng.TokenToID(token); ok {
		return id
	}

	return m.special.Unknown
}

// IndexToToken returns the string form of id. An id outside
// [0, VocabularySize()) is a contract violation by the caller and yields an
// *IndexOutOfRangeError.
func (m *Model) IndexToToken(id int32) (string, error) {
	if id < 0 || id >= m.size {
		return "", &IndexOutOfRangeError{Index: id, Size: m.size}
	}

	if m.closed.Load() {
		return "", ErrModelClosed
	}

	token, ok := m.eng.IDToToken(id)
	if !ok {
		// The engine owns the id space; every id below its reported size
		// must resolve.
		return "", &IndexOutOfRangeError{Index: id, Size: m.size}
	}

	return token, nil
}

// UnkIndex returns the reserved unknown-token id, or NoIndex.
func (m *Model) UnkIndex() int32 {
	return m.special.Unknown
}

// BosIndex returns the reserved beginning-of-sequence id, or NoIndex.
func (m *Model) BosIndex() int32 {
	return m.special.BeginningOfSequence
}

// EosIndex returns the reserved end-of-sequence id, or NoIndex.
func (m *Model) EosIndex() int32 {
	return m.special.EndOfSequence
}

// PadIndex returns the reserved padding id, or NoIndex.
func (m *Model) PadIndex() int32 {
	return m.special.Pad
}

// VocabularySize returns the number of addressable token ids, including the
// control tokens folded in at load time. Consumers use it to size outputs
// and to validate externally-supplied ids before calling IndexToToken.
func (m *Model) VocabularySize() int32 {
	return m.size
}

// Options returns a copy of the options the Model was loaded with. Encoder
// and decoder collaborators read AddBOS, AddEOS, Reverse and ControlTokens
// from here; the Model itself never interprets them.
func (m *Model) Options() ModelOptions {
	return m.opts.clone()
}

// Engine exposes the underlying engine to encode/decode collaborators that
// need to run actual segmentation. The returned Engine must not outlive the
// Model and must not be closed by the caller.
func (m *Model) Engine() engine.Engine {
	return m.eng
}

// Close releases the underlying engine. The first call wins; subsequent
// calls are no-ops. Lookups on a closed Model fail (IndexToToken) or fall
// back to the unknown id (TokenToIndex).
func (m *Model) Close() error {
	if m.closed.Swap(true) {
		return nil
	}

	return m.eng.Close()
}
