// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfds"
	"github.com/valyala/fastrand"
	"golang.org/x/sync/errgroup"
)

// Result summarizes a finished run.
type Result struct {
	Name      string
	Messages  int
	Producers int
	Consumers int

	Produced int64
	Consumed int64

	// Missing counts tokens never consumed, Duplicates tokens consumed
	// more than once.
	Missing    int
	Duplicates int

	Elapsed time.Duration
}

// OK reports whether every token was consumed exactly once.
func (r Result) OK() bool {
	return r.Missing == 0 && r.Duplicates == 0 && r.Consumed == int64(r.Messages)
}

// Throughput returns consumed tokens per second, in millions.
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Consumed) / r.Elapsed.Seconds() / 1e6
}

// Run pushes cfg.Messages unique tokens through target and drains them.
//
// Producer p pushes tokens p*(Messages/Producers) through
// (p+1)*(Messages/Producers)-1 in order. Consumers keep draining until every
// token has been seen once. Blocked sides poll with iox.Backoff.
//
// The returned Result is filled in even when err is non-nil, so a timed out
// run still reports how far it got.
func Run(ctx context.Context, cfg Config, target Target) (Result, error) {
	res := Result{
		Name:      target.Name,
		Messages:  cfg.Messages,
		Producers: cfg.Producers,
		Consumers: cfg.Consumers,
	}
	if err := cfg.Validate(); err != nil {
		return res, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	total := cfg.Messages
	perProducer := total / cfg.Producers
	seen := make([]atomix.Int32, total)
	var produced, consumed atomix.Int64

	g, gctx := errgroup.WithContext(ctx)
	start := time.Now()

	for p := range cfg.Producers {
		g.Go(func() error {
			backoff := iox.Backoff{}
			base := p * perProducer
			for n := range perProducer {
				jitter(cfg.Jitter)
				for {
					err := target.Enqueue(base + n)
					if err == nil {
						break
					}
					if !lfds.IsWouldBlock(err) {
						return fmt.Errorf("%s: producer %d: %w", target.Name, p, err)
					}
					if err := gctx.Err(); err != nil {
						return fmt.Errorf("%s: producer %d stalled at %d/%d: %w", target.Name, p, n, perProducer, err)
					}
					backoff.Wait()
				}
				backoff.Reset()
				produced.Add(1)
			}
			return nil
		})
	}

	for c := range cfg.Consumers {
		g.Go(func() error {
			backoff := iox.Backoff{}
			for consumed.Load() < int64(total) {
				jitter(cfg.Jitter)
				v, err := target.Dequeue()
				if err != nil {
					if !lfds.IsWouldBlock(err) {
						return fmt.Errorf("%s: consumer %d: %w", target.Name, c, err)
					}
					if err := gctx.Err(); err != nil {
						return fmt.Errorf("%s: consumer %d stalled at %d/%d: %w", target.Name, c, consumed.Load(), total, err)
					}
					backoff.Wait()
					continue
				}
				backoff.Reset()
				if v < 0 || v >= total {
					return fmt.Errorf("%s: consumer %d: token %d out of range [0, %d)", target.Name, c, v, total)
				}
				seen[v].Add(1)
				consumed.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	res.Elapsed = time.Since(start)
	res.Produced = produced.Load()
	res.Consumed = consumed.Load()
	for i := range seen {
		switch n := seen[i].Load(); {
		case n == 0:
			res.Missing++
		case n > 1:
			res.Duplicates++
		}
	}
	return res, err
}

// jitter yields with probability 1/n.
func jitter(n uint32) {
	if n > 0 && fastrand.Uint32n(n) == 0 {
		runtime.Gosched()
	}
}
