// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command lfbench runs producer/consumer throughput comparisons between the
// lfds structures and a mutex-guarded queue.
//
// Usage:
//
//	go run ./cmd/lfbench -n 10000000 -size 1024
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"code.hybscloud.com/lfds"
	"code.hybscloud.com/lfds/internal/harness"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

type scenario struct {
	cfg      harness.Config
	target   harness.Target
	baseline string // name of the scenario to compare against, if any
}

func main() {
	messages := flag.Int("n", 10_000_000, "messages per run")
	size := flag.Int("size", 1024, "queue capacity")
	timeout := flag.Duration("timeout", time.Minute, "per-run timeout")
	jitter := flag.Uint("jitter", 0, "yield once every N operations on average (0 disables)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := logiface.LevelInformational
	if *verbose {
		level = logiface.LevelDebug
	}
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(os.Stderr), stumpy.WithTimeField(`ts`)),
		stumpy.L.WithLevel(level),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base := harness.Config{
		Messages: *messages,
		Timeout:  *timeout,
		Jitter:   uint32(*jitter),
	}

	failed := false
	results := make(map[string]harness.Result)
	for _, sc := range scenarios(base, *size) {
		logger.Debug().
			Str("target", sc.target.Name).
			Int("producers", sc.cfg.Producers).
			Int("consumers", sc.cfg.Consumers).
			Log("run started")

		res, err := harness.Run(ctx, sc.cfg, sc.target)
		if err != nil {
			failed = true
			logger.Err().
				Err(err).
				Str("target", sc.target.Name).
				Int64("consumed", res.Consumed).
				Log("run failed")
			if ctx.Err() != nil {
				break
			}
			continue
		}
		results[sc.target.Name] = res

		if !res.OK() {
			failed = true
			logger.Err().
				Str("target", res.Name).
				Int("missing", res.Missing).
				Int("duplicates", res.Duplicates).
				Log("token check failed")
		}

		logger.Info().
			Str("target", res.Name).
			Int("messages", res.Messages).
			Int("producers", res.Producers).
			Int("consumers", res.Consumers).
			Dur("elapsed", res.Elapsed).
			Float64("mops", res.Throughput()).
			Log("run finished")

		if b, ok := results[sc.baseline]; ok && res.Elapsed > 0 {
			logger.Info().
				Str("target", res.Name).
				Str("baseline", b.Name).
				Float64("speedup", b.Elapsed.Seconds()/res.Elapsed.Seconds()).
				Log("comparison")
		}
	}

	if failed {
		os.Exit(1)
	}
}

func scenarios(base harness.Config, size int) []scenario {
	with := func(p, c int) harness.Config {
		cfg := base
		cfg.Producers, cfg.Consumers = p, c
		cfg.Messages = max(cfg.Messages-cfg.Messages%p, p)
		return cfg
	}

	return []scenario{
		{cfg: with(1, 1), target: harness.ForQueue("mutex-1p1c", harness.NewMutexQueue[int](size))},
		{cfg: with(1, 1), target: harness.ForQueue("spsc", lfds.NewSPSC[int](size)), baseline: "mutex-1p1c"},
		{cfg: with(4, 4), target: harness.ForQueue("mutex-4p4c", harness.NewMutexQueue[int](size))},
		{cfg: with(4, 4), target: harness.ForQueue("mpmc", lfds.NewMPMC[int](size)), baseline: "mutex-4p4c"},
		{cfg: with(1, 1), target: harness.ForStack("stack", lfds.NewStack[int]())},
		{cfg: with(4, 4), target: harness.ForStackIndirect("stack-indirect", lfds.NewStackIndirect(size))},
	}
}
