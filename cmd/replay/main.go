package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/milk9111/climber/prefabs"
	"github.com/milk9111/climber/system"
)

func main() {
	trace := flag.Bool("trace", false, "log every state change")
	timeout := flag.Duration("timeout", time.Minute, "give up on a replay after this long")
	list := flag.Bool("list", false, "list the bundled replays and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: replay [flags] [name ...]\n\nRuns the named replays from prefabs/replays, or all of them.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		for _, name := range prefabs.ReplayNames() {
			fmt.Println(name)
		}
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		names = prefabs.ReplayNames()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed := 0
	for _, name := range names {
		if !runOne(ctx, name, *timeout, *trace) {
			failed++
		}
	}
	if failed > 0 {
		log.Printf("%d of %d replays failed", failed, len(names))
		os.Exit(1)
	}
}

func runOne(ctx context.Context, name string, timeout time.Duration, trace bool) bool {
	spec, err := prefabs.LoadReplaySpec(name)
	if err != nil {
		log.Printf("replay %s: %v", name, err)
		return false
	}
	r, err := system.NewReplay(spec)
	if err != nil {
		log.Printf("replay %s: %v", name, err)
		return false
	}
	if trace {
		r.OnTrace = func(ev system.TraceEvent) {
			log.Printf("[%s] %s", r.ID, ev)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	res, err := r.Run(ctx)
	if err != nil {
		log.Printf("replay %s [%s]: %v", name, r.ID, err)
		return false
	}

	for _, c := range res.Checks {
		switch {
		case c.Err != nil:
			log.Printf("  frame %4d  ERROR %s: %v", c.Frame, c.Expect, c.Err)
		case c.Passed:
			log.Printf("  frame %4d  ok    %s", c.Frame, c.Expect)
		default:
			log.Printf("  frame %4d  FAIL  %s", c.Frame, c.Expect)
		}
	}
	if !res.Passed() {
		log.Printf("replay %s final state: %v", name, res.Final)
	}
	return res.Passed()
}
