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

// Package registry caches loaded vocabulary models so that repeated
// consumers of the same resource share one handle.
package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/klog/v2"

	"github.com/subwordkit/vocab-manager/pkg/utils/logging"
	"github.com/subwordkit/vocab-manager/pkg/vocab"
	"github.com/subwordkit/vocab-manager/pkg/vocab/metrics"
)

// defaultCacheSize is the number of models kept alive.
// 1 model per vocabulary resource and option set.
const defaultCacheSize = 20

// Config holds the configuration for the Registry.
type Config struct {
	// CacheSize is the maximum number of loaded models kept alive.
	CacheSize int `json:"cacheSize"`
}

// DefaultConfig returns a default configuration for the Registry.
func DefaultConfig() *Config {
	return &Config{
		CacheSize: defaultCacheSize,
	}
}

// entry couples a cached model with the path it was loaded from, so that
// List can report paths without re-deriving them from keys.
type entry struct {
	path  string
	model *vocab.Model
}

// Registry is an LRU-bounded cache of loaded vocabulary models keyed by the
// (path, options) pair. Concurrent Get calls for the same key are collapsed
// into a single load. An evicted model is closed by the registry; handles
// obtained from Get must therefore not be retained past their use.
type Registry struct {
	cache *lru.Cache[uint64, entry]
	group singleflight.Group
}

// NewRegistry creates a Registry given a Config.
func NewRegistry(config *Config) (*Registry, error) {
	if config == nil {
		config = DefaultConfig()
	}

	cache, err := lru.NewWithEvict[uint64, entry](config.CacheSize, func(_ uint64, evicted entry) {
		metrics.Evictions.Inc()
		_ = evicted.model.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model cache: %w", err)
	}

	return &Registry{
		cache: cache,
	}, nil
}

// Get returns the cached model for (path, opts), loading it on a miss.
// Lookups and loads are instrumented; see the metrics package.
func (r *Registry) Get(ctx context.Context, path string, opts *vocab.ModelOptions) (*vocab.Model, error) {
	key := cacheKey(path, opts)

	if cached, ok := r.cache.Get(key); ok {
		metrics.Hits.Inc()
		return cached.model, nil
	}

	traceLogger := klog.FromContext(ctx).V(logging.TRACE).WithName("registry.Get")
	traceLogger.Info("model not cached, loading", "path", path)

	result, err, shared := r.group.Do(fmt.Sprintf("%d", key), func() (any, error) {
		start := time.Now()
		model, err := vocab.LoadModel(path, opts)
		if err != nil {
			metrics.LoadErrors.Inc()
			return nil, err
		}

		metrics.Loads.Inc()
		metrics.LoadLatency.Observe(time.Since(start).Seconds())

		return model, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load model for %q: %w", path, err)
	}

	model, ok := result.(*vocab.Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type from singleflight result")
	}

	if !shared {
		// Only add to cache if this goroutine actually loaded the model.
		r.cache.Add(key, entry{path: path, model: model})
	}

	return model, nil
}

// Len returns the number of models currently cached.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// List returns the resource paths of the cached models, filtered to the
// given set. An empty filter returns all paths.
func (r *Registry) List(filter sets.Set[string]) []string {
	paths := make([]string, 0, r.cache.Len())
	for _, key := range r.cache.Keys() {
		cached, ok := r.cache.Peek(key)
		if !ok {
			continue
		}

		if filter.Len() == 0 || filter.Has(cached.path) {
			paths = append(paths, cached.path)
		}
	}

	return paths
}

// Close evicts and closes every cached model.
func (r *Registry) Close() {
	r.cache.Purge()
}

// cacheKey digests the resource path and the full option set, so two option
// sets over the same path never share a handle.
func cacheKey(path string, opts *vocab.ModelOptions) uint64 {
	if opts == nil {
		opts = vocab.DefaultModelOptions()
	}

	digest := xxhash.New()
	_, _ = digest.WriteString(path)
	for _, token := range opts.ControlTokens {
		_, _ = digest.WriteString("\x00")
		_, _ = digest.WriteString(token)
	}
	_, _ = digest.WriteString("\x00")
	_, _ = digest.Write([]byte{boolByte(opts.AddBOS), boolByte(opts.AddEOS), boolByte(opts.Reverse)})

	return digest.Sum64()
}

func boolByte(value bool) byte {
	if value {
		return 1
	}

	return 0
}
