// Command refwatch runs a demo workload over refkit's shared handles and
// watches control-block lifecycles through the registry tracker, either
// as a one-shot report or interactively with a TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/refkit/registry"
	"github.com/wippyai/refkit/shared"
)

func main() {
	var (
		count       = flag.Int("n", 4, "Number of demo resources in the scripted workload")
		verbose     = flag.Bool("v", false, "Log block lifecycles to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		registry.SetLogger(logger)
	}

	tracker := registry.NewTracker()
	shared.SetTracer(tracker)

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(tracker); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(tracker, *count); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// demoResource is what the workload manages: a named value that remembers
// whether its cleanup ran.
type demoResource struct {
	name   string
	closed bool
}

func (r *demoResource) Release() { r.closed = true }

func run(tracker *registry.Tracker, count int) error {
	if count < 1 {
		return fmt.Errorf("need at least one resource, got %d", count)
	}

	fmt.Printf("Workload: %d resources\n\n", count)

	// Phase 1: combined allocation, one clone and one weak observer each.
	owners := make([]shared.Ptr[demoResource], 0, count)
	clones := make([]shared.Ptr[demoResource], 0, count)
	weaks := make([]shared.Weak[demoResource], 0, count)
	for i := 0; i < count; i++ {
		p := shared.Make(demoResource{name: fmt.Sprintf("res-%d", i)})
		clones = append(clones, p.Clone())
		weaks = append(weaks, shared.NewWeak(p))
		owners = append(owners, p)
	}
	fmt.Printf("after acquire: %d live blocks\n", tracker.Len())

	// Phase 2: first owners go away; clones keep everything alive.
	for i := range owners {
		owners[i].Release()
	}
	locked := 0
	for _, w := range weaks {
		if s := w.Lock(); s.Valid() {
			locked++
			s.Release()
		}
	}
	fmt.Printf("after first release: %d live blocks, %d/%d locks succeeded\n",
		tracker.Len(), locked, count)

	// Phase 3: last owners go; weak handles watch everything expire.
	for i := range clones {
		clones[i].Release()
	}
	expired := 0
	for _, w := range weaks {
		if w.Expired() {
			expired++
		}
	}
	if _, err := shared.FromWeak(weaks[0]); err != nil {
		fmt.Printf("after last release: %d/%d expired, promotion: %v\n", expired, count, err)
	}

	// Phase 4: drop the observers, blocks die.
	for i := range weaks {
		weaks[i].Release()
	}
	fmt.Printf("after weak release: %d live blocks\n\n", tracker.Len())

	leaks := tracker.Leaks()
	if len(leaks) == 0 {
		fmt.Println("no leaks")
		return nil
	}
	fmt.Printf("%d leaked blocks:\n", len(leaks))
	for _, b := range leaks {
		fmt.Printf("  block %d: strong=%d weak=%d inline=%v\n", b.ID, b.Strong, b.Weak, b.Inline)
	}
	return fmt.Errorf("workload leaked %d blocks", len(leaks))
}
