// boggle prints every dictionary word that can be traced on a board file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"row-major.net/boggle/load"
	"row-major.net/boggle/solver"
	"row-major.net/boggle/trie"

	"cloud.google.com/go/storage"
	"github.com/golang/glog"
	"golang.org/x/term"
)

var (
	dictionary = flag.String("dictionary", "words.txt", "Word list to search for.  Either a local path or gs://bucket/object.")
	maxDepth   = flag.Int("max-depth", solver.MaxDepth, "Longest path, in tiles, to search.")
	minLength  = flag.Int("min-length", load.DefaultMinWordLength, "Dictionary words this many letters long or shorter are ignored.")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <board-file>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	if err := run(context.Background(), flag.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		glog.Flush()
		os.Exit(1)
	}
}

func loadDictionary(ctx context.Context, path string) ([]string, error) {
	opts := []load.DictionaryOption{load.WithMinLength(*minLength)}

	if load.IsGCSPath(path) {
		gcs, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("while creating GCS client: %w", err)
		}
		defer gcs.Close()
		opts = append(opts, load.WithObjectReader(&load.GCS{Client: gcs}))
	}

	return load.DictionaryFromPath(ctx, path, opts...)
}

func run(ctx context.Context, boardPath string, out io.Writer) error {
	g, err := load.BoardFromFile(boardPath)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	glog.Infof("Loaded %dx%d board from %q", g.Size, g.Size, boardPath)

	words, err := loadDictionary(ctx, *dictionary)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	index := trie.FromWords(words)
	glog.Infof("Indexed %d words from %q", index.Len(), *dictionary)

	s := solver.New(index, solver.WithMaxDepth(*maxDepth))
	found, stats := s.Solve(ctx, g)
	glog.Infof("Searched: states_considered=%d pruned=%d max_depth=%d", stats.StatesConsidered, stats.Pruned, stats.MaxDepth)

	width := 0
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}

	fmt.Fprint(out, g.DisplayString())
	fmt.Fprint(out, formatWords(found.Sorted(), width))
	fmt.Fprintf(out, "Found %d words.\n", found.Len())
	return nil
}

// formatWords lays words out in columns that fit width.  A width of zero
// prints one word per line.
func formatWords(words []string, width int) string {
	b := strings.Builder{}
	if width <= 0 {
		for _, w := range words {
			b.WriteString(w)
			b.WriteRune('\n')
		}
		return b.String()
	}

	colWidth := 0
	for _, w := range words {
		if n := utf8.RuneCountInString(w); n > colWidth {
			colWidth = n
		}
	}
	colWidth += 2

	cols := width / colWidth
	if cols < 1 {
		cols = 1
	}

	for i, w := range words {
		last := i%cols == cols-1 || i == len(words)-1
		if last {
			b.WriteString(w)
			b.WriteRune('\n')
			continue
		}
		b.WriteString(w)
		b.WriteString(strings.Repeat(" ", colWidth-utf8.RuneCountInString(w)))
	}
	return b.String()
}
