// Package resolve applies a compiled replacer to a batch of items.
package resolve

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kerlilow/mrf/replacer"
)

// StdinItem is the item list that asks for items to be read from stdin.
const StdinItem = "-"

// Pair is one successful mapping.
type Pair struct {
	Left  string
	Right string
	Match *replacer.Match
}

// Side selects which half of a Pair is used.
type Side int

const (
	Both Side = iota
	LeftOnly
	RightOnly
)

// Select returns the selected halves of p in left, right order.
func (p Pair) Select(side Side) []string {
	switch side {
	case LeftOnly:
		return []string{p.Left}
	case RightOnly:
		return []string{p.Right}
	default:
		return []string{p.Left, p.Right}
	}
}

// Result holds the mappings of a batch in input order.
type Result struct {
	Pairs     []Pair
	Unmatched []string
	Total     int
}

// Resolve maps every item through r using up to concurrency goroutines
// (runtime.NumCPU() when concurrency <= 0). Items the replacer cannot cover
// land in Unmatched; the batch only fails when ctx is done.
func Resolve(ctx context.Context, logger *zap.Logger, r *replacer.Replacer, items []string, concurrency int) (*Result, error) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	if logger != nil {
		logger.Debug("resolving items",
			zap.Int("items", len(items)),
			zap.Stringers("matchers", r.Specs()),
			zap.Int("concurrency", concurrency))
	}

	matches := make([]*replacer.Match, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		i, item := i, item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := r.Match(item)
			if err != nil {
				if errors.Is(err, replacer.ErrNoMatch) {
					if logger != nil {
						logger.Debug("item not matched", zap.String("item", item))
					}
					return nil
				}
				return err
			}
			matches[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Total: len(items)}
	for i, m := range matches {
		if m == nil {
			result.Unmatched = append(result.Unmatched, items[i])
			continue
		}
		result.Pairs = append(result.Pairs, Pair{Left: items[i], Right: m.Output, Match: m})
	}
	return result, nil
}

// Items returns args unless it is the single argument "-", in which case
// items are read from stdin, one per line.
func Items(args []string, stdin io.Reader) ([]string, error) {
	if len(args) == 1 && args[0] == StdinItem {
		return ReadItems(stdin)
	}
	return args, nil
}

// ReadItems reads one item per line. Trailing carriage returns are dropped
// and empty lines are skipped.
func ReadItems(r io.Reader) ([]string, error) {
	var items []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	return items, nil
}

// TakeEnds returns up to head pairs from the front and tail pairs from the
// back without overlap.
func TakeEnds(pairs []Pair, head, tail int) (front, back []Pair) {
	if head+tail >= len(pairs) {
		return pairs, nil
	}
	return pairs[:head], pairs[len(pairs)-tail:]
}

// Previews renders at most maxItems mappings as indented "left -> right"
// lines. When there are more, the first and last few are shown around "...".
func Previews(pairs []Pair, maxItems int, render func(Pair) string) string {
	if maxItems <= 0 || len(pairs) == 0 {
		return ""
	}
	if render == nil {
		render = func(p Pair) string { return p.Left + " -> " + p.Right }
	}

	head, tail := len(pairs), 0
	if len(pairs) > maxItems {
		head = (maxItems - 1) / 2
		tail = maxItems - 1 - head
	}
	front, back := TakeEnds(pairs, head, tail)

	lines := make([]string, 0, len(front)+len(back)+1)
	for _, p := range front {
		lines = append(lines, "    "+render(p))
	}
	if back != nil {
		lines = append(lines, "    ...")
		for _, p := range back {
			lines = append(lines, "    "+render(p))
		}
	}
	return strings.Join(lines, "\n")
}
