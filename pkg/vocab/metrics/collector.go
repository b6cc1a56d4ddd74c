// Copyright 2025 The vocab-manager Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"k8s.io/klog/v2"
)

var (
	// Loads counts how many vocabulary models were loaded from disk.
	Loads = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vocab", Subsystem: "registry", Name: "loads_total",
		Help: "Total number of vocabulary model loads",
	})
	// LoadErrors counts failed vocabulary model loads.
	LoadErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vocab", Subsystem: "registry", Name: "load_errors_total",
		Help: "Total number of failed vocabulary model loads",
	})
	// Hits counts Get() calls served from the registry cache.
	Hits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vocab", Subsystem: "registry", Name: "hits_total",
		Help: "Number of Get calls served from the cache",
	})
	// Evictions counts models evicted (and closed) by the registry cache.
	Evictions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vocab", Subsystem: "registry", Name: "evictions_total",
		Help: "Total number of evicted vocabulary models",
	})
	// LoadLatency logs latency of model loads.
	LoadLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vocab", Subsystem: "registry", Name: "load_latency_seconds",
		Help:    "Latency of vocabulary model loads in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// Collectors returns a slice of all registered Prometheus collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		Loads, LoadErrors,
		Hits, Evictions, LoadLatency,
	}
}

var registerMetricsOnce = sync.Once{}

// Register registers all metrics with the default Prometheus registerer.
func Register() {
	registerMetricsOnce.Do(func() {
		prometheus.MustRegister(Collectors()...)
	})
}

// StartMetricsLogging spawns a goroutine that logs current metric values
// every interval.
func StartMetricsLogging(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			logMetrics(ctx)
		}
	}()
}

func logMetrics(ctx context.Context) {
	var m dto.Metric

	err := Loads.Write(&m)
	if err != nil {
		return
	}
	loads := m.GetCounter().GetValue()

	err = LoadErrors.Write(&m)
	if err != nil {
		return
	}
	loadErrors := m.GetCounter().GetValue()

	err = Hits.Write(&m)
	if err != nil {
		return
	}
	hits := m.GetCounter().GetValue()

	err = Evictions.Write(&m)
	if err != nil {
		return
	}
	evictions := m.GetCounter().GetValue()

	var latencyMetric dto.Metric
	err = LoadLatency.Write(&latencyMetric)
	if err != nil {
		return
	}
	latencyCount := latencyMetric.GetHistogram().GetSampleCount()
	latencySum := latencyMetric.GetHistogram().GetSampleSum()

	klog.FromContext(ctx).WithName("metrics").Info("metrics beat",
		"loads", loads,
		"load_errors", loadErrors,
		"hits", hits,
		"evictions", evictions,
		"latency_count", latencyCount,
		"latency_sum", latencySum,
	)
}
