package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/pkgnews/internal/terminal"
	"github.com/samvad-hq/pkgnews/pkg/comments"
	"github.com/samvad-hq/pkgnews/pkg/httpclient"
)

func runComments(ctx context.Context, e *env, args []string) error {
	var (
		base      string
		colorFlag string
		width     int
	)
	flags := newFlagSet("comments", e.stderr)
	flags.StringVarP(&base, "url", "u", e.cfg.AURURL, "AUR base URL")
	flags.StringVar(&colorFlag, "color", "auto", "Color output: auto|always|never")
	flags.IntVarP(&width, "width", "w", 0, "Wrap width (0 uses terminal width if available)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("comments takes exactly one package name")
	}

	mode, err := terminal.ParseColorMode(colorFlag)
	if err != nil {
		return err
	}

	pkg := flags.Arg(0)
	cs, err := comments.Fetch(ctx, httpclient.NewRestyClient(e.cfg.HTTPTimeout), base, pkg)
	if err != nil {
		return err
	}
	if len(cs) == 0 {
		fmt.Fprintf(e.stderr, "no comments for %s\n", pkg)
		return nil
	}
	return terminal.NewPrinter(e.stdout, mode, width).Comments(cs)
}
