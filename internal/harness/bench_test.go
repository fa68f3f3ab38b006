// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness_test

import (
	"context"
	"testing"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfds"
	"code.hybscloud.com/lfds/internal/harness"
	"code.hybscloud.com/spin"
	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// ============================================================================
// Harness runs: lock-free vs mutex with the token check enabled
// ============================================================================

func benchmarkRun(b *testing.B, target func() harness.Target, producers, consumers int) {
	messages := max(b.N/producers, 1) * producers
	cfg := harness.Config{Messages: messages, Producers: producers, Consumers: consumers}

	b.ResetTimer()
	res, err := harness.Run(context.Background(), cfg, target())
	b.StopTimer()
	if err != nil {
		b.Fatalf("Run: %v", err)
	}
	if !res.OK() {
		b.Fatalf("missing=%d duplicates=%d", res.Missing, res.Duplicates)
	}
	b.ReportMetric(res.Throughput(), "Mops/s")
}

func BenchmarkRun_Mutex_1P1C(b *testing.B) {
	benchmarkRun(b, func() harness.Target {
		return harness.ForQueue("mutex", harness.NewMutexQueue[int](1024))
	}, 1, 1)
}

func BenchmarkRun_SPSC_1P1C(b *testing.B) {
	benchmarkRun(b, func() harness.Target {
		return harness.ForQueue("spsc", lfds.NewSPSC[int](1024))
	}, 1, 1)
}

func BenchmarkRun_Mutex_4P4C(b *testing.B) {
	benchmarkRun(b, func() harness.Target {
		return harness.ForQueue("mutex", harness.NewMutexQueue[int](1024))
	}, 4, 4)
}

func BenchmarkRun_MPMC_4P4C(b *testing.B) {
	benchmarkRun(b, func() harness.Target {
		return harness.ForQueue("mpmc", lfds.NewMPMC[int](1024))
	}, 4, 4)
}

func BenchmarkRun_Stack_4P4C(b *testing.B) {
	benchmarkRun(b, func() harness.Target {
		return harness.ForStack("stack", lfds.NewStack[int]())
	}, 4, 4)
}

func BenchmarkRun_StackIndirect_4P4C(b *testing.B) {
	benchmarkRun(b, func() harness.Target {
		return harness.ForStackIndirect("stack-indirect", lfds.NewStackIndirect(1024))
	}, 4, 4)
}

// ============================================================================
// MPSC: 4 producers, 1 consumer against external baselines
// ============================================================================

// BenchmarkMPSC_Channel_4P - buffered channel baseline
func BenchmarkMPSC_Channel_4P(b *testing.B) {
	ch := make(chan int, 1024)
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			case <-ch:
			}
		}
	}()

	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			ch <- i
			i++
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}

// BenchmarkMPSC_ShardedRing_4P_4S - go-lock-free-ring with one shard per producer
func BenchmarkMPSC_ShardedRing_4P_4S(b *testing.B) {
	r, err := ring.NewShardedRing(1024, 4)
	if err != nil {
		b.Fatalf("NewShardedRing: %v", err)
	}
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			default:
				r.TryRead()
			}
		}
	}()

	var producerID atomix.Uint64
	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		pid := producerID.Add(1) - 1
		i := 0
		for pb.Next() {
			for !r.Write(pid, i) {
			}
			i++
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}

// BenchmarkMPSC_MPMC_4P - MPMC with a single consumer
func BenchmarkMPSC_MPMC_4P(b *testing.B) {
	q := lfds.NewMPMC[int](1024)
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		sw := spin.Wait{}
		for {
			select {
			case <-done:
				return
			default:
				if _, err := q.Dequeue(); err == nil {
					sw.Reset()
				} else {
					sw.Once()
				}
			}
		}
	}()

	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		sw := spin.Wait{}
		i := 0
		for pb.Next() {
			v := i
			for q.Enqueue(&v) != nil {
				sw.Once()
			}
			sw.Reset()
			i++
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}
