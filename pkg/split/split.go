// Package split partitions package names between the sync repositories and
// the AUR.
package split

import (
	"fmt"
	"strings"
)

// Mode restricts where targets are looked up.
type Mode int

const (
	// ModeAny resolves each target against the repositories, falling back to the AUR.
	ModeAny Mode = iota
	// ModeAUR treats every target as an AUR package.
	ModeAUR
	// ModeRepo treats every target as a repository package.
	ModeRepo
)

// IsAny reports whether targets are resolved against the inventory.
func (m Mode) IsAny() bool { return m == ModeAny }

// IsAUR reports whether every target is sent to the AUR.
func (m Mode) IsAUR() bool { return m == ModeAUR }

// IsRepo reports whether every target is sent to the repositories.
func (m Mode) IsRepo() bool { return m == ModeRepo }

func (m Mode) String() string {
	switch m {
	case ModeAUR:
		return "aur"
	case ModeRepo:
		return "repo"
	default:
		return "any"
	}
}

// ParseMode accepts "any", "aur" and "repo" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return ModeAny, nil
	case "aur":
		return ModeAUR, nil
	case "repo", "repos":
		return ModeRepo, nil
	default:
		return ModeAny, fmt.Errorf("unknown mode %q", s)
	}
}

// Inventory answers membership questions about the sync repositories.
type Inventory interface {
	// Has reports whether a package with exactly this name exists.
	Has(name string) bool
	// Satisfies reports whether some package is named or provides dep.
	Satisfies(dep string) bool
	// HasGroup reports whether a package group with this name exists.
	HasGroup(name string) bool
}

const aurRepo = "aur"

// Target is a package request, optionally qualified with a repository.
type Target struct {
	Repo string
	Name string
}

// ParseTarget splits "repo/name"; a bare name leaves Repo empty.
func ParseTarget(s string) Target {
	s = strings.TrimSpace(s)
	if repo, name, ok := strings.Cut(s, "/"); ok {
		return Target{Repo: repo, Name: name}
	}
	return Target{Name: s}
}

func (t Target) String() string {
	if t.Repo == "" {
		return t.Name
	}
	return t.Repo + "/" + t.Name
}

// Packages splits pkgs into those present in inv and the rest, which are
// assumed to come from the AUR. Input order is kept.
func Packages(inv Inventory, pkgs []string) (repo, aur []string) {
	for _, pkg := range pkgs {
		if inv != nil && inv.Has(pkg) {
			repo = append(repo, pkg)
		} else {
			aur = append(aur, pkg)
		}
	}
	return repo, aur
}

// PackagesByMode is Packages with mode applied first.
func PackagesByMode(inv Inventory, mode Mode, pkgs []string) (repo, aur []string) {
	switch mode {
	case ModeAUR:
		return nil, append([]string(nil), pkgs...)
	case ModeRepo:
		return append([]string(nil), pkgs...), nil
	default:
		return Packages(inv, pkgs)
	}
}

// Targets splits targets taking repository qualifiers, providers and groups
// into account. A target qualified with "aur" always goes to the AUR side and
// any other qualifier to the repository side.
func Targets(inv Inventory, mode Mode, targets []Target) (repo, aur []Target) {
	switch mode {
	case ModeAUR:
		return nil, append([]Target(nil), targets...)
	case ModeRepo:
		return append([]Target(nil), targets...), nil
	}

	for _, t := range targets {
		switch {
		case t.Repo == aurRepo:
			aur = append(aur, t)
		case t.Repo != "":
			repo = append(repo, t)
		case inv != nil && (inv.Satisfies(t.Name) || inv.HasGroup(t.Name)):
			repo = append(repo, t)
		default:
			aur = append(aur, t)
		}
	}
	return repo, aur
}
