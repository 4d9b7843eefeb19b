// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"slices"
	"testing"
)

func TestPromptEntriesPassThrough(t *testing.T) {
	entries, placeholderOnly := promptEntries(ChooseOptions{
		Options:     []string{"Debug", "Release"},
		Placeholder: "Default",
	})
	if !slices.Equal(entries, []string{"Debug", "Release"}) {
		t.Errorf("entries = %v", entries)
	}
	if placeholderOnly {
		t.Error("placeholderOnly should be false with real options")
	}
}

func TestPromptEntriesPlaceholder(t *testing.T) {
	entries, placeholderOnly := promptEntries(ChooseOptions{Placeholder: "Default"})
	if !slices.Equal(entries, []string{"Default"}) {
		t.Errorf("entries = %v", entries)
	}
	if !placeholderOnly {
		t.Error("placeholderOnly should be true")
	}
}

func TestPromptEntriesEmpty(t *testing.T) {
	entries, _ := promptEntries(ChooseOptions{})
	if len(entries) != 0 {
		t.Errorf("entries = %v, want none", entries)
	}
}

func TestChooseStringNothingToShow(t *testing.T) {
	choice, ok, err := ChooseString(ChooseOptions{Title: "Pick one"})
	if err != nil {
		t.Fatalf("ChooseString: %v", err)
	}
	if ok || choice != "" {
		t.Errorf("choice = %q, ok = %v; want empty, false", choice, ok)
	}
}
