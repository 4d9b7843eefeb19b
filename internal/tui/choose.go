// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ChooseOptions configures a single-select prompt.
type ChooseOptions struct {
	// Title is displayed above the options.
	Title string

	// Options is the ordered list of display strings.
	Options []string

	// Placeholder is offered as the sole entry when Options is empty.
	// Choosing it reads as "no selection".
	Placeholder string

	// Height limits the number of visible options (0 for auto).
	Height int

	// Accessible switches huh to its screen-reader friendly mode.
	Accessible bool
}

// ChooseString presents a single-select prompt and returns the chosen
// string. ok is false when the user cancelled or picked the placeholder.
func ChooseString(opts ChooseOptions) (choice string, ok bool, err error) {
	entries, placeholderOnly := promptEntries(opts)
	if len(entries) == 0 {
		return "", false, nil
	}

	huhOpts := make([]huh.Option[string], len(entries))
	for i, entry := range entries {
		huhOpts[i] = huh.NewOption(entry, entry)
	}

	var result string
	sel := huh.NewSelect[string]().
		Title(opts.Title).
		Options(huhOpts...).
		Value(&result)
	if opts.Height > 0 {
		sel = sel.Height(opts.Height)
	}

	form := huh.NewForm(huh.NewGroup(sel)).
		WithAccessible(opts.Accessible)

	if runErr := form.Run(); runErr != nil {
		if errors.Is(runErr, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("selection prompt: %w", runErr)
	}

	if placeholderOnly {
		return "", false, nil
	}
	return result, true, nil
}

// promptEntries returns the strings to present and whether they consist of
// the placeholder alone.
func promptEntries(opts ChooseOptions) (entries []string, placeholderOnly bool) {
	if len(opts.Options) > 0 {
		return opts.Options, false
	}
	if opts.Placeholder != "" {
		return []string{opts.Placeholder}, true
	}
	return nil, false
}
