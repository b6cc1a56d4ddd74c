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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subwordkit/vocab-manager/pkg/vocab"
)

func TestWarmupPool_PreloadsModels(t *testing.T) {
	registry, err := NewRegistry(DefaultConfig())
	require.NoError(t, err)
	defer registry.Close()

	pool := NewWarmupPool(DefaultWarmupConfig(), registry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		pool.Run(ctx)
		close(done)
	}()

	pathA := writeVocabFile(t, "a.txt", testVocabulary)
	pathB := writeVocabFile(t, "b.txt", testVocabulary)

	pool.AddTask(pathA, nil)
	pool.AddTask(pathB, vocab.DefaultModelOptions().WithControlToken("<sep>"))

	assert.Eventually(t, func() bool {
		return registry.Len() == 2
	}, 5*time.Second, 10*time.Millisecond, "both models must be preloaded")

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not shut down after context cancellation")
	}
}

func TestWarmupPool_DefaultConfig(t *testing.T) {
	config := DefaultWarmupConfig()
	assert.Equal(t, defaultWarmupWorkers, config.WorkersCount)
	assert.Equal(t, defaultCacheSize, config.CacheSize)
}
