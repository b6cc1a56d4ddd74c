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

package registry

import (
	"context"
	"sync"

	"k8s.io/klog/v2"

	"k8s.io/client-go/util/workqueue"

	"github.com/subwordkit/vocab-manager/pkg/vocab"
)

const defaultWarmupWorkers = 5

// WarmupConfig holds the configuration for the WarmupPool.
type WarmupConfig struct {
	WorkersCount int
	*Config
}

// DefaultWarmupConfig returns a default configuration for the WarmupPool.
func DefaultWarmupConfig() *WarmupConfig {
	return &WarmupConfig{
		WorkersCount: defaultWarmupWorkers,
		Config:       DefaultConfig(),
	}
}

// WarmupTask names one vocabulary resource to preload.
type WarmupTask struct {
	Path    string
	Options *vocab.ModelOptions
}

// WarmupPool preloads vocabulary models into a Registry in the background,
// so the first consumer of a resource does not pay the load latency.
type WarmupPool struct {
	workers int
	queue   workqueue.TypedRateLimitingInterface[WarmupTask]
	wg      sync.WaitGroup

	registry *Registry
}

// NewWarmupPool initializes a WarmupPool with the specified number of
// workers feeding the provided Registry.
func NewWarmupPool(config *WarmupConfig, registry *Registry) *WarmupPool {
	if config == nil {
		config = DefaultWarmupConfig()
	}

	return &WarmupPool{
		workers:  config.WorkersCount,
		queue:    workqueue.NewTypedRateLimitingQueue(workqueue.DefaultTypedControllerRateLimiter[WarmupTask]()),
		registry: registry,
	}
}

// AddTask enqueues a vocabulary resource for preloading.
// This method only enqueues the task and does not start processing it.
func (pool *WarmupPool) AddTask(path string, opts *vocab.ModelOptions) {
	task := WarmupTask{
		Path:    path,
		Options: opts,
	}
	pool.queue.Add(task)
}

// Run launches worker goroutines that process tasks until the context is
// cancelled.
func (pool *WarmupPool) Run(ctx context.Context) {
	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.workerLoop(ctx)
	}

	<-ctx.Done()

	pool.queue.ShutDown()
	pool.wg.Wait()
}

// workerLoop is the main processing loop for each worker.
func (pool *WarmupPool) workerLoop(ctx context.Context) {
	defer pool.wg.Done()
	for {
		task, shutdown := pool.queue.Get()
		if shutdown {
			return
		}

		// Process the task.
		if err := pool.processTask(ctx, task); err == nil {
			pool.queue.Forget(task)
		} else {
			pool.queue.AddRateLimited(task)
		}
		pool.queue.Done(task)
	}
}

// processTask loads the named resource through the registry.
func (pool *WarmupPool) processTask(ctx context.Context, task WarmupTask) error {
	if _, err := pool.registry.Get(ctx, task.Path, task.Options); err != nil {
		klog.Error(err, " failed to preload vocabulary model", "path", task.Path)
		return err
	}

	return nil
}
