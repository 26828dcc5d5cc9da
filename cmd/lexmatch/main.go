// Command lexmatch selects filler words matched to a set of critical
// stimuli on frequency, concreteness, grammatical class and syllable count.
//
// Commands:
//
//	match      prepare the corpus, draw fillers and write the results table
//	partition  split observed items into low/high observation groups
//	migrate    apply run-store migrations
//	runs       inspect persisted runs
//	version    print the build version
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
