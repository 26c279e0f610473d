package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/costcache/pkg/cache"
	"github.com/dmitrymomot/costcache/pkg/file"
	"github.com/dmitrymomot/costcache/pkg/simulator"
)

const menuText = `
Menu:
1. Create File
2. Access File
3. List Files
4. View Cache Stats
5. Exit
`

// prompter reads answers line by line and writes prompts.
type prompter struct {
	in  *bufio.Scanner
	out *message.Printer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		in:  bufio.NewScanner(in),
		out: message.NewPrinter(language.English),
	}
}

// ask prints question and returns the trimmed answer. io.EOF means the
// input is exhausted.
func (p *prompter) ask(w io.Writer, question string) (string, error) {
	p.out.Fprint(w, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// askCapacity keeps asking until a positive number is given. An empty answer
// selects fallback.
func (p *prompter) askCapacity(w io.Writer, fallback int) (int, error) {
	for {
		answer, err := p.ask(w, "Enter cache size: ")
		if err != nil {
			return 0, err
		}
		if answer == "" && fallback > 0 {
			return fallback, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n > 0 {
			return n, nil
		}
		p.out.Fprintln(w, "Cache size must be a positive number.")
	}
}

// runMenu drives the interactive loop until Exit is chosen or input ends.
func runMenu(ctx context.Context, sim *simulator.Simulator, p *prompter, w io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.out.Fprint(w, menuText)
		choice, err := p.ask(w, "Enter choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = menuCreate(ctx, sim, p, w)
		case "2":
			err = menuAccess(ctx, sim, p, w)
		case "3":
			err = menuList(ctx, sim, p, w)
		case "4":
			printStats(p.out, w, sim.Stats())
		case "5":
			return nil
		default:
			p.out.Fprintln(w, "Invalid choice.")
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func menuCreate(ctx context.Context, sim *simulator.Simulator, p *prompter, w io.Writer) error {
	id, err := p.ask(w, "Enter file name: ")
	if err != nil {
		return err
	}
	answer, err := p.ask(w, "Enter file size (KB): ")
	if err != nil {
		return err
	}
	size, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		p.out.Fprintln(w, "File size must be a whole number.")
		return nil
	}

	f, err := sim.CreateFile(ctx, id, size)
	switch {
	case errors.Is(err, simulator.ErrFileExists):
		p.out.Fprintln(w, "File already exists.")
	case errors.Is(err, file.ErrInvalidID), errors.Is(err, file.ErrInvalidSize):
		p.out.Fprintf(w, "Invalid file: %v\n", err)
	case err != nil:
		p.out.Fprintf(w, "Error: %v\n", err)
	default:
		p.out.Fprintf(w, "Created file: %s (%d KB)\n", f.ID, f.SizeKiB)
	}
	return nil
}

func menuAccess(ctx context.Context, sim *simulator.Simulator, p *prompter, w io.Writer) error {
	id, err := p.ask(w, "Enter file name to access: ")
	if err != nil {
		return err
	}

	res, err := sim.Access(ctx, id)
	switch {
	case errors.Is(err, simulator.ErrFileNotFound):
		p.out.Fprintln(w, "File does not exist.")
		return nil
	case err != nil:
		p.out.Fprintf(w, "Error: %v\n", err)
		return nil
	}

	p.out.Fprintf(w, "Accessing: %s (Cost: %d)\n", res.FileID, res.Cost)
	if res.Hit() {
		p.out.Fprintln(w, "HIT")
		return nil
	}

	p.out.Fprintln(w, "MISS")
	if ev := res.Evicted; ev != nil {
		p.out.Fprintf(w, "Evicted: %s (Cost: %d, LastAccess: %d)\n", ev.FileID, ev.Cost, ev.LastAccess)
	}
	p.out.Fprintf(w, "Cache: %s\n", formatEntries(res.Entries))
	return nil
}

func menuList(ctx context.Context, sim *simulator.Simulator, p *prompter, w io.Writer) error {
	files, err := sim.ListFiles(ctx)
	if err != nil {
		p.out.Fprintf(w, "Error: %v\n", err)
		return nil
	}
	if len(files) == 0 {
		p.out.Fprintln(w, "No files available.")
		return nil
	}

	p.out.Fprintln(w, "Available Files:")
	for _, f := range files {
		p.out.Fprintf(w, "  - %s (%d KB)\n", f.ID, f.SizeKiB)
	}
	return nil
}

func printStats(p *message.Printer, w io.Writer, st cache.Stats) {
	p.Fprintln(w)
	p.Fprintln(w, "--- Cache Statistics ---")
	p.Fprintf(w, "Total Requests: %d\n", st.Requests)
	p.Fprintf(w, "Hits: %d\n", st.Hits)
	p.Fprintf(w, "Misses: %d\n", st.Misses)
	p.Fprintf(w, "Evictions: %d\n", st.Evictions)
	p.Fprintf(w, "Total Cost: %d KB\n", st.TotalCost)
	p.Fprintf(w, "Hit Ratio: %.2f%%\n", st.HitPercent())
}

// formatEntries renders cached ids in insertion order, like [A, C].
func formatEntries(entries []cache.Entry) string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.FileID)
	}
	return "[" + strings.Join(ids, ", ") + "]"
}
