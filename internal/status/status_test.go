// SPDX-License-Identifier: MPL-2.0

package status

import (
	"strings"
	"testing"
)

func TestRenderPlaceholders(t *testing.T) {
	line := NewLine()

	got := line.Render()
	if strings.Count(got, "Default") != 3 {
		t.Errorf("Render() = %q, want three placeholders", got)
	}
}

func TestRenderValues(t *testing.T) {
	line := NewLine()
	line.SetConfiguration("Debug")
	line.SetTarget("all")
	line.SetLaunchConfiguration(">out/app()")

	got := line.Render()
	for _, want := range []string{"Debug", "all", ">out/app()", "configuration:", "target:", "launch:"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "Default") {
		t.Errorf("Render() = %q, placeholder should be gone", got)
	}
}

func TestWriteTo(t *testing.T) {
	line := NewLine()
	line.SetConfiguration("Release")

	var sb strings.Builder
	if _, err := line.WriteTo(&sb); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if !strings.HasSuffix(sb.String(), "\n") {
		t.Error("WriteTo should end with a newline")
	}
	if !strings.Contains(sb.String(), "Release") {
		t.Errorf("WriteTo wrote %q", sb.String())
	}
}
