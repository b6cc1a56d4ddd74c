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

package engine

import (
	"fmt"
	"os"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/model/wordpiece"

	"github.com/subwordkit/vocab-manager/pkg/utils"
)

// wordpieceEngine is the default Engine implementation, backed by the
// sugarme/tokenizer wordpiece model. The vocabulary file format is owned by
// that library's loader.
type wordpieceEngine struct {
	tokenizer *tk.Tokenizer
	size      int32
	special   SpecialTokens
}

var _ Engine = &wordpieceEngine{}

// Load reads the vocabulary at path, folds controlTokens into the id space
// in order (appended after the base vocabulary), and resolves the special
// roles per cfg. A nil cfg means DefaultConfig.
func Load(path string, controlTokens []string, cfg *Config) (Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("vocabulary resource is not accessible: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("vocabulary resource %q is a directory", path)
	}

	unkForm := "[UNK]"
	if len(cfg.UnknownTokens) > 0 {
		unkForm = cfg.UnknownTokens[0]
	}

	wp, err := wordpiece.NewWordPieceFromFile(path, unkForm)
	if err != nil {
		// The strict loader insists on the unknown entry; retry through the
		// builder, which accepts vocabularies without one.
		wp = wordpiece.NewWordPieceBuilder().Files(path).Build()
	}

	tokenizer := tk.NewTokenizer(wp)
	if tokenizer.GetVocabSize(false) == 0 {
		return nil, fmt.Errorf("vocabulary resource %q holds no entries", path)
	}

	if len(controlTokens) > 0 {
		added := utils.SliceMap(controlTokens, func(token string) tk.AddedToken {
			return tk.NewAddedToken(token, true)
		})
		tokenizer.AddSpecialTokens(added)
	}

	eng := &wordpieceEngine{
		tokenizer: tokenizer,
		size:      int32(tokenizer.GetVocabSize(true)), //nolint:gosec // vocabulary sizes fit int32 by construction
	}
	eng.special = SpecialTokens{
		Unknown:             eng.probe(cfg.UnknownTokens),
		BeginningOfSequence: eng.probe(cfg.BeginningTokens),
		EndOfSequence:       eng.probe(cfg.EndTokens),
		Pad:                 eng.probe(cfg.PadTokens),
	}

	return eng, nil
}

// probe returns the id of the first candidate present in the vocabulary,
// or NoID when none is.
func (e *wordpieceEngine) probe(candidates []string) int32 {
	for _, candidate := range candidates {
		if id, ok := e.TokenToID(candidate); ok {
			return id
		}
	}

	return NoID
}

func (e *wordpieceEngine) TokenToID(token string) (int32, bool) {
	id, ok := e.tokenizer.TokenToId(token)
	if !ok {
		return NoID, false
	}

	return int32(id), true //nolint:gosec // ids are bounded by the vocabulary size
}

func (e *wordpieceEngine) IDToToken(id int32) (string, bool) {
	if id < 0 || id >= e.size {
		return "", false
	}

	return e.tokenizer.IdToToken(int(id))
}

func (e *wordpieceEngine) VocabularySize() int32 {
	return e.size
}

func (e *wordpieceEngine) SpecialTokens() SpecialTokens {
	return e.special
}

// Close drops the processor reference. The wordpiece backend holds no
// out-of-process resources, so there is nothing else to release.
func (e *wordpieceEngine) Close() error {
	e.tokenizer = nil
	return nil
}
