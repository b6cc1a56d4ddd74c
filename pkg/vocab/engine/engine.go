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

// Package engine wraps the external subword tokenization processor behind a
// small lookup-oriented interface. The on-disk vocabulary format is owned by
// the processor's loader; nothing outside this package interprets it.
package engine

// NoID is the sentinel for "this vocabulary defines no such token".
const NoID int32 = -1

// SpecialTokens holds the reserved ids the loaded vocabulary declares for
// the four built-in special roles. An absent role carries NoID.
type SpecialTokens struct {
	Unknown             int32
	BeginningOfSequence int32
	EndOfSequence       int32
	Pad                 int32
}

// Engine is the opaque tokenization processor as seen by the vocabulary
// layer: an immutable id space with string forms and reserved roles.
//
// Implementations are read-only after Load and safe for concurrent lookups.
// Close releases whatever the implementation holds; it must be called
// exactly once, by the single owner of the Engine.
type Engine interface {
	// TokenToID returns the id for token, or (NoID, false) when the token
	// is not part of the vocabulary.
	TokenToID(token string) (int32, bool)

	// IDToToken returns the string form of id, or ("", false) when id is
	// not addressable.
	IDToToken(id int32) (string, bool)

	// VocabularySize returns the number of addressable ids, including any
	// control tokens folded in at load time.
	VocabularySize() int32

	// SpecialTokens returns the reserved ids for the built-in roles.
	SpecialTokens() SpecialTokens

	// Close releases the underlying processor.
	Close() error
}

// Config holds the token string forms probed for the built-in special
// roles after the vocabulary is loaded. For each role the candidates are
// probed in order and the first one present in the vocabulary wins.
type Config struct {
	UnknownTokens   []string `json:"unknownTokens"`
	BeginningTokens []string `json:"beginningTokens"`
	EndTokens       []string `json:"endTokens"`
	PadTokens       []string `json:"padTokens"`
}

// DefaultConfig returns the conventional special-token spellings used by
// SentencePiece-style and BERT-style vocabularies.
func DefaultConfig() *Config {
	return &Config{
		UnknownTokens:   []string{"<unk>", "[UNK]"},
		BeginningTokens: []string{"<s>", "[CLS]"},
		EndTokens:       []string{"</s>", "[SEP]"},
		PadTokens:       []string{"<pad>", "[PAD]"},
	}
}
