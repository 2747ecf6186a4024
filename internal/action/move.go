package action

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/kerlilow/mrf/internal/resolve"
)

// ErrTargetExists is returned by Move when it would overwrite a file.
var ErrTargetExists = errors.New("target already exists")

// Move returns a Job that renames Left to Right. Pairs whose sides are
// equal are skipped. Unless force is set an existing Right is never
// replaced.
func Move(force bool) Job {
	return func(_ context.Context, p resolve.Pair) error {
		if p.Left == p.Right {
			return ErrSkipped
		}
		if !force {
			_, err := os.Lstat(p.Right)
			if err == nil {
				return fmt.Errorf("%w: %s", ErrTargetExists, p.Right)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
		return os.Rename(p.Left, p.Right)
	}
}

// Collisions returns, sorted, every target that more than one pair would
// be renamed to.
func Collisions(pairs []resolve.Pair) []string {
	seen := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if p.Left != p.Right {
			seen[p.Right]++
		}
	}

	var targets []string
	for target, n := range seen {
		if n > 1 {
			targets = append(targets, target)
		}
	}
	sort.Strings(targets)
	return targets
}

// Overlaps returns, sorted, every target that is also the source of another
// pair. Renaming onto such a target would replace an item that is itself
// being processed, and the outcome would depend on job order. Pairs whose
// sides are equal never overlap with themselves.
func Overlaps(pairs []resolve.Pair) []string {
	sources := make(map[string]int, len(pairs))
	for i, p := range pairs {
		sources[filepath.Clean(p.Left)] = i
	}

	seen := make(map[string]struct{})
	var targets []string
	for i, p := range pairs {
		if p.Left == p.Right {
			continue
		}
		target := filepath.Clean(p.Right)
		j, ok := sources[target]
		if !ok || j == i {
			continue
		}
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		targets = append(targets, p.Right)
	}
	sort.Strings(targets)
	return targets
}
