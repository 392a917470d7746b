package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDemos(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "iem_katowice/vitality-vs-spirit-m1.dem")
	touch(t, root, "iem_katowice/sub/deep.DEM")
	touch(t, root, "blast_austin/._resource-fork.dem")
	touch(t, root, "blast_austin/faze-vs-g2.dem")
	touch(t, root, "blast_austin/notes.txt")
	touch(t, root, "loose.dem")

	demos, err := Demos(root)
	if err != nil {
		t.Fatalf("Demos: %v", err)
	}
	want := []Demo{
		{Path: filepath.Join(root, "blast_austin/faze-vs-g2.dem"), Event: "blast_austin"},
		{Path: filepath.Join(root, "iem_katowice/sub/deep.DEM"), Event: "iem_katowice"},
		{Path: filepath.Join(root, "iem_katowice/vitality-vs-spirit-m1.dem"), Event: "iem_katowice"},
		{Path: filepath.Join(root, "loose.dem"), Event: Ungrouped},
	}
	if len(demos) != len(want) {
		t.Fatalf("got %d demos, want %d: %+v", len(demos), len(want), demos)
	}
	for i := range want {
		if demos[i] != want[i] {
			t.Errorf("demos[%d] = %+v, want %+v", i, demos[i], want[i])
		}
	}
}

func TestDemosMissingRoot(t *testing.T) {
	if _, err := Demos(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestDemosEmptyRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	demos, err := Demos(root)
	if err != nil {
		t.Fatalf("empty root should not fail: %v", err)
	}
	if len(demos) != 0 {
		t.Errorf("got %d demos, want 0", len(demos))
	}
}
