package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/pkgnews/internal/terminal"
	"github.com/samvad-hq/pkgnews/pkg/split"
)

func runSplit(_ context.Context, e *env, args []string) error {
	var (
		modeFlag  string
		inventory string
	)
	flags := newFlagSet("split", e.stderr)
	flags.StringVarP(&modeFlag, "mode", "m", "any", "Target mode: any|aur|repo")
	flags.StringVarP(&inventory, "inventory", "i", e.cfg.InventoryFile, "Repository inventory file (YAML)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("split needs at least one target")
	}

	mode, err := split.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	var inv split.Inventory
	if mode.IsAny() {
		loaded, err := split.LoadInventory(inventory)
		if err != nil {
			return fmt.Errorf("load inventory: %w", err)
		}
		inv = loaded
	}

	targets := make([]split.Target, flags.NArg())
	for i, arg := range flags.Args() {
		targets[i] = split.ParseTarget(arg)
	}
	repo, aur := split.Targets(inv, mode, targets)

	p := terminal.NewPrinter(e.stdout, terminal.ColorNever, 0)
	if err := p.List("repo", targetNames(repo)); err != nil {
		return err
	}
	return p.List("aur", targetNames(aur))
}

func targetNames(ts []split.Target) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}
