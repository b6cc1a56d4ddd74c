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

//nolint:testpackage // need to test internal types
package registry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/subwordkit/vocab-manager/pkg/vocab"
)

func writeVocabFile(t *testing.T, name string, tokens []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(tokens, "\n")+"\n"), 0o600))

	return path
}

var testVocabulary = []string{"<unk>", "<s>", "</s>", "<pad>", "hello", "world"}

func TestRegistry_GetCachesModels(t *testing.T) {
	registry, err := NewRegistry(DefaultConfig())
	require.NoError(t, err)
	defer registry.Close()

	ctx := context.Background()
	path := writeVocabFile(t, "vocab.txt", testVocabulary)

	first, err := registry.Get(ctx, path, nil)
	require.NoError(t, err)

	second, err := registry.Get(ctx, path, nil)
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated Get must return the cached handle")
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_DistinctOptionsDistinctHandles(t *testing.T) {
	registry, err := NewRegistry(DefaultConfig())
	require.NoError(t, err)
	defer registry.Close()

	ctx := context.Background()
	path := writeVocabFile(t, "vocab.txt", testVocabulary)

	plain, err := registry.Get(ctx, path, nil)
	require.NoError(t, err)

	withControl, err := registry.Get(ctx, path, vocab.DefaultModelOptions().WithControlToken("<sep>"))
	require.NoError(t, err)

	assert.NotSame(t, plain, withControl)
	assert.Equal(t, plain.VocabularySize()+1, withControl.VocabularySize())
	assert.Equal(t, 2, registry.Len())
}

func TestRegistry_GetError(t *testing.T) {
	registry, err := NewRegistry(DefaultConfig())
	require.NoError(t, err)
	defer registry.Close()

	model, err := registry.Get(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), nil)
	require.Error(t, err)
	assert.Nil(t, model)
	assert.Equal(t, 0, registry.Len(), "failed loads must not be cached")
}

func TestRegistry_EvictionClosesModel(t *testing.T) {
	registry, err := NewRegistry(&Config{CacheSize: 1})
	require.NoError(t, err)
	defer registry.Close()

	ctx := context.Background()

	first, err := registry.Get(ctx, writeVocabFile(t, "a.txt", testVocabulary), nil)
	require.NoError(t, err)

	_, err = registry.Get(ctx, writeVocabFile(t, "b.txt", testVocabulary), nil)
	require.NoError(t, err)

	require.Equal(t, 1, registry.Len())

	_, err = first.IndexToToken(0)
	require.ErrorIs(t, err, vocab.ErrModelClosed, "evicted model must be closed")
}

func TestRegistry_List(t *testing.T) {
	registry, err := NewRegistry(DefaultConfig())
	require.NoError(t, err)
	defer registry.Close()

	ctx := context.Background()
	pathA := writeVocabFile(t, "a.txt", testVocabulary)
	pathB := writeVocabFile(t, "b.txt", testVocabulary)

	_, err = registry.Get(ctx, pathA, nil)
	require.NoError(t, err)
	_, err = registry.Get(ctx, pathB, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{pathA, pathB}, registry.List(sets.New[string]()))
	assert.Equal(t, []string{pathA}, registry.List(sets.New(pathA)))
	assert.Empty(t, registry.List(sets.New("unrelated")))
}

func TestRegistry_Close(t *testing.T) {
	registry, err := NewRegistry(DefaultConfig())
	require.NoError(t, err)

	ctx := context.Background()
	model, err := registry.Get(ctx, writeVocabFile(t, "vocab.txt", testVocabulary), nil)
	require.NoError(t, err)

	registry.Close()
	assert.Equal(t, 0, registry.Len())

	_, err = model.IndexToToken(0)
	require.ErrorIs(t, err, vocab.ErrModelClosed)
}
