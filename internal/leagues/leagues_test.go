package leagues

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinRegistry(t *testing.T) {
	reg := Builtin()

	if got := reg.Default().Key; got != "wnba" {
		t.Fatalf("expected default wnba, got %s", got)
	}

	all := reg.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 leagues, got %d", len(all))
	}
	wantPaths := map[string]string{
		"wnba": "basketball/wnba",
		"nwsl": "soccer/usa.nwsl",
		"pwhl": "hockey/pwhl",
	}
	for _, l := range all {
		if wantPaths[l.Key] != l.Path {
			t.Fatalf("unexpected path for %s: %s", l.Key, l.Path)
		}
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	reg := Builtin()
	l, ok := reg.Lookup("  NWSL ")
	if !ok || l.Label != "NWSL" {
		t.Fatalf("expected NWSL lookup to succeed, got %+v %v", l, ok)
	}
	if _, ok := reg.Lookup("nba"); ok {
		t.Fatalf("expected unknown league to be rejected")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	reg := Builtin()
	all := reg.All()
	all[0].Key = "mutated"
	if reg.All()[0].Key == "mutated" {
		t.Fatalf("expected All to return a copy")
	}
}

func TestParseRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":       "leagues: []",
		"missingPath": "leagues:\n  - key: x\n",
		"duplicate":   "leagues:\n  - key: x\n    path: a\n  - key: X\n    path: b\n",
		"badDefault":  "default: zzz\nleagues:\n  - key: x\n    path: a\n",
		"notYAML":     "leagues: [",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestParseDefaultsToFirstLeague(t *testing.T) {
	reg, err := Parse([]byte("leagues:\n  - key: nba\n    path: basketball/nba\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Default().Key != "nba" || reg.Default().Label != "NBA" {
		t.Fatalf("expected first league as default with derived label, got %+v", reg.Default())
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leagues.yaml")
	if err := os.WriteFile(path, []byte("leagues:\n  - key: mls\n    label: MLS\n    path: soccer/usa.1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	reg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := reg.Lookup("mls"); !ok {
		t.Fatalf("expected mls league from file")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if reg, err := Load(""); err != nil || reg.Default().Key != "wnba" {
		t.Fatalf("expected builtin registry for empty path")
	}
}
