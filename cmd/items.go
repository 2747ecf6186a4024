package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kerlilow/mrf/internal/highlight"
	"github.com/kerlilow/mrf/internal/resolve"
	"github.com/kerlilow/mrf/replacer"
)

// compileReplacer expands "@name" from the config and compiles the result.
func compileReplacer(s string) (*replacer.Replacer, error) {
	pattern, err := conf.ResolveReplacer(s)
	if err != nil {
		return nil, err
	}
	r, err := replacer.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid replacer %q: %w", pattern, err)
	}
	return r, nil
}

// resolveArgs treats the last argument as the replacer and the rest as
// items, then maps every item.
func resolveArgs(cmd *cobra.Command, args []string, concurrency int) (*resolve.Result, error) {
	itemArgs, replacerArg := args[:len(args)-1], args[len(args)-1]

	r, err := compileReplacer(replacerArg)
	if err != nil {
		return nil, err
	}
	items, err := resolve.Items(itemArgs, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	result, err := resolve.Resolve(cmd.Context(), logger, r, items, workers(concurrency))
	if err != nil {
		return nil, err
	}
	if len(result.Unmatched) > 0 {
		logger.Info("Items not matched",
			zap.Int("unmatched", len(result.Unmatched)),
			zap.Int("total", result.Total))
	}
	return result, nil
}

// workers picks the flag value over the config value.
func workers(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return conf.Concurrency
}

func readsStdin(itemArgs []string) bool {
	return len(itemArgs) == 1 && itemArgs[0] == resolve.StdinItem
}

func checkStrict(result *resolve.Result) error {
	if strict && len(result.Unmatched) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrUnmatched, len(result.Unmatched), result.Total)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printPairs writes one line per pair on a terminal, highlighted unless
// colour is disabled. Anywhere else the selected sides are written
// NUL-terminated for xargs -0.
func printPairs(w io.Writer, pairs []resolve.Pair, side resolve.Side) {
	if !isTerminal(w) {
		for _, p := range pairs {
			for _, s := range p.Select(side) {
				fmt.Fprint(w, s+"\x00")
			}
		}
		return
	}

	h := highlight.New(!color.NoColor)
	for _, p := range pairs {
		switch side {
		case resolve.LeftOnly:
			fmt.Fprintln(w, h.Input(p.Match))
		case resolve.RightOnly:
			fmt.Fprintln(w, h.Output(p.Match))
		default:
			fmt.Fprintln(w, h.Mapping(p.Match))
		}
	}
}

func sideOf(leftOnly, rightOnly bool) resolve.Side {
	switch {
	case leftOnly:
		return resolve.LeftOnly
	case rightOnly:
		return resolve.RightOnly
	default:
		return resolve.Both
	}
}

// confirm prints "<verb> N out of M items:" with a preview and asks the user
// to continue. The answer defaults to no. When items came from stdin the
// answer is read from the controlling terminal.
func confirm(cmd *cobra.Command, verb string, result *resolve.Result, itemsFromStdin bool) (bool, error) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d out of %d items:\n", verb, len(result.Pairs), result.Total)

	var render func(resolve.Pair) string
	if isTerminal(out) && !color.NoColor {
		h := highlight.New(true)
		render = func(p resolve.Pair) string { return h.Mapping(p.Match) }
	}
	if previews := resolve.Previews(result.Pairs, conf.MaxPreviews, render); previews != "" {
		fmt.Fprintln(out, previews)
	}

	in := cmd.InOrStdin()
	if itemsFromStdin {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return false, fmt.Errorf("cannot ask for confirmation after reading items from stdin, use --yes: %w", err)
		}
		defer tty.Close()
		in = tty
	}

	fmt.Fprint(out, "Do you want to continue? [y/N] ")
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(out, "Aborted.")
	return false, nil
}
