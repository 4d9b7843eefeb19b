// SPDX-License-Identifier: MPL-2.0

package buildtool

import "testing"

func TestLookupFirstMatchWins(t *testing.T) {
	set := ConfigurationSet{
		{Name: "debug", MakeCommand: "gmake"},
		{Name: "release"},
		{Name: "debug", MakeCommand: "nmake"},
	}

	rec, ok := set.Lookup("debug")
	if !ok {
		t.Fatal("expected lookup to find a record")
	}
	if rec.MakeCommand != "gmake" {
		t.Errorf("expected first record to win, got command %q", rec.MakeCommand)
	}
}

func TestLookupMissing(t *testing.T) {
	set := ConfigurationSet{{Name: "debug"}}

	if _, ok := set.Lookup("release"); ok {
		t.Error("expected lookup miss for unknown name")
	}
	if _, ok := ConfigurationSet(nil).Lookup("debug"); ok {
		t.Error("expected lookup miss on empty set")
	}
}

func TestNames(t *testing.T) {
	set := ConfigurationSet{{Name: "a"}, {Name: "b"}, {Name: "a"}}

	names := set.Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 names, got %d", len(names))
	}
	if names[0] != "a" || names[1] != "b" || names[2] != "a" {
		t.Errorf("expected file order preserved, got %v", names)
	}
}

func TestEffectiveBuildSettingsHasBuildLog(t *testing.T) {
	if (EffectiveBuildSettings{}).HasBuildLog() {
		t.Error("expected empty settings to have no build log")
	}
	if !(EffectiveBuildSettings{BuildLogPath: "/proj/build.log"}).HasBuildLog() {
		t.Error("expected settings with a path to report a build log")
	}
}
