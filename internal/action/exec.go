package action

import (
	"context"
	"io"
	"os/exec"

	"github.com/kerlilow/mrf/internal/command"
	"github.com/kerlilow/mrf/internal/resolve"
)

// Exec returns a Job that runs argv with the selected sides of each pair
// appended. A non-zero exit status counts as a failure.
func Exec(argv []string, side resolve.Side, stdout, stderr io.Writer) (Job, error) {
	if len(argv) == 0 {
		return nil, command.ErrEmpty
	}
	name, base := argv[0], argv[1:]

	return func(ctx context.Context, p resolve.Pair) error {
		args := append(append(make([]string, 0, len(base)+2), base...), p.Select(side)...)
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		return cmd.Run()
	}, nil
}
