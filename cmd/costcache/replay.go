package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/costcache/pkg/file"
	"github.com/dmitrymomot/costcache/pkg/workload"
)

// runReplay loads the trace at path, replays it and prints the report.
// A trace with an expect block fails when the result does not match.
func runReplay(ctx context.Context, path string, files file.Storage, capacity int, asJSON bool, w io.Writer, log *slog.Logger) error {
	trace, err := workload.LoadFile(path)
	if err != nil {
		return err
	}
	if capacity > 0 {
		trace.Capacity = capacity
	}

	sim, err := trace.NewSimulator(files, log)
	if err != nil {
		return err
	}
	rep, err := workload.Run(ctx, trace, sim)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		printReport(w, rep)
	}

	return rep.Verify(trace.Expect)
}

func printReport(w io.Writer, rep *workload.Report) {
	p := message.NewPrinter(language.English)

	if rep.Name != "" {
		p.Fprintf(w, "Trace: %s\n", rep.Name)
	}
	p.Fprintf(w, "Capacity: %d, files created: %d, already present: %d\n\n", rep.Capacity, rep.Created, rep.Existing)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tFILE\tOUTCOME\tCOST\tCLOCK\tEVICTED")
	for _, s := range rep.Steps {
		evicted := "-"
		if s.Evicted != nil {
			evicted = p.Sprintf("%s (cost %d, last %d)", s.Evicted.FileID, s.Evicted.Cost, s.Evicted.LastAccess)
		}
		clock := "-"
		if s.Outcome != workload.StepNotFound {
			clock = p.Sprint(s.Clock)
		}
		p.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", s.Index+1, s.FileID, s.Outcome, s.Cost, clock, evicted)
	}
	_ = tw.Flush()

	p.Fprintf(w, "\nCache: %s\n", formatEntries(rep.Entries))
	printStats(p, w, rep.Stats)
}
