// SPDX-License-Identifier: MPL-2.0

package parser

import (
	"path/filepath"
	"testing"
)

const databaseSample = `# GNU Make 4.3
# Make data base, printed on Mon Jan  1 00:00:00 2024

# Variables
CC := gcc
SHELL = /bin/sh

# Directories

# Files

all: main.o util.o

# Not a target:
.c.o:

clean:
	rm -f *.o

.PHONY: all clean

main.o: main.c
	$(CC) -c main.c

clean:
	rm -rf build
`

func TestTargets(t *testing.T) {
	got := New().Targets(databaseSample)

	want := []string{"all", "clean", "main.o", "clean"}
	if len(got) != len(want) {
		t.Fatalf("Targets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Targets()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTargets_RejectsAssignmentsAndSpecials(t *testing.T) {
	got := New().Targets("VAR := val\n.PHONY: all\n%.o: %.c\n")

	if len(got) != 0 {
		t.Errorf("expected no targets, got %v", got)
	}
}

func TestTargets_EmptyInput(t *testing.T) {
	if got := New().Targets(""); len(got) != 0 {
		t.Errorf("expected no targets from empty input, got %v", got)
	}
}

const dryRunSample = `make: Entering directory '/proj'
gcc -c -o main.o main.c
gcc -o app main.o util.o
make[1]: Entering directory '/proj/tools'
cc -o helper helper.c
make[1]: Leaving directory '/proj/tools'
arm-none-eabi-gcc -o firmware.elf boot.o
echo done
make: Leaving directory '/proj'
`

func TestLaunchCandidates(t *testing.T) {
	got := New().LaunchCandidates(dryRunSample, "/fallback")

	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d: %v", len(got), got)
	}

	if got[0].Binary != filepath.Join("/proj", "app") || got[0].Cwd != "/proj" {
		t.Errorf("candidate 0 = %+v", got[0])
	}
	if got[1].Binary != filepath.Join("/proj/tools", "helper") || got[1].Cwd != "/proj/tools" {
		t.Errorf("candidate 1 = %+v", got[1])
	}
	// After leaving the nested directory the outer scope applies again.
	if got[2].Binary != filepath.Join("/proj", "firmware.elf") || got[2].Cwd != "/proj" {
		t.Errorf("candidate 2 = %+v", got[2])
	}
}

func TestLaunchCandidates_DefaultsToProjectRoot(t *testing.T) {
	got := New().LaunchCandidates("gcc -o app main.o\n", "/proj")

	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %v", got)
	}
	if got[0].Cwd != "/proj" {
		t.Errorf("expected project root cwd, got %q", got[0].Cwd)
	}
}

func TestLinkOutput(t *testing.T) {
	tests := []struct {
		line string
		bin  string
		ok   bool
	}{
		{"gcc -o app main.o", "app", true},
		{"/usr/bin/clang++ -O2 -o build/app main.o", "build/app", true},
		{"gcc -c -o main.o main.c", "", false},
		{"rm -o not-a-linker", "", false},
		{"gcc main.c", "", false},
		{"", "", false},
		{"gcc -o", "", false},
	}

	for _, tt := range tests {
		bin, ok := linkOutput(tt.line)
		if bin != tt.bin || ok != tt.ok {
			t.Errorf("linkOutput(%q) = (%q, %v), want (%q, %v)", tt.line, bin, ok, tt.bin, tt.ok)
		}
	}
}
