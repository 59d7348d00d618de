package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// replaceFile writes data next to path and renames it into place, so the
// watcher sees a single create event for path.
func replaceFile(t *testing.T, path, data string, mod time.Time) {
	t.Helper()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", tmp, err)
	}
	if err := os.Chtimes(tmp, mod, mod); err != nil {
		t.Fatalf("chtimes %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename %s: %v", tmp, err)
	}
}

func waitChange(t *testing.T, w *Watcher, timeout time.Duration) (Change, bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if c, ok := w.Poll(); ok {
			return c, true
		}
		if err := w.Err(); err != nil {
			t.Fatalf("watch error: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	return Change{}, false
}

func newTestWatcher(t *testing.T, simName, catalogName string) *Watcher {
	t.Helper()
	w, err := NewWatcher(simName, catalogName)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.Mkdir("prefabs", 0o755); err != nil {
		t.Fatal(err)
	}
	w := newTestWatcher(t, "", "")
	mod := time.Now().Add(-time.Hour).Truncate(time.Second)

	replaceFile(t, filepath.Join("prefabs", "sim.yaml"), "seed: 3\n", mod)
	c, ok := waitChange(t, w, 2*time.Second)
	if !ok || c != (Change{Name: "sim.yaml", Kind: SpecSim}) {
		t.Fatalf("change = %+v, %v", c, ok)
	}
	if c, ok := waitChange(t, w, 200*time.Millisecond); ok {
		t.Fatalf("unexpected second change %+v", c)
	}

	replaceFile(t, filepath.Join("prefabs", "classes.yaml"), "classes: []\n", mod)
	c, ok = waitChange(t, w, 2*time.Second)
	if !ok || c != (Change{Name: "classes.yaml", Kind: SpecCatalog}) {
		t.Fatalf("change = %+v, %v", c, ok)
	}
}

func TestWatcherSkipsUnchangedModTime(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.Mkdir("prefabs", 0o755); err != nil {
		t.Fatal(err)
	}
	w := newTestWatcher(t, "sim.yaml", "classes.yaml")
	path := filepath.Join("prefabs", "sim.yaml")
	mod := time.Now().Add(-time.Hour).Truncate(time.Second)

	replaceFile(t, path, "seed: 1\n", mod)
	if _, ok := waitChange(t, w, 2*time.Second); !ok {
		t.Fatalf("first write not reported")
	}
	replaceFile(t, path, "seed: 2\n", mod)
	if c, ok := waitChange(t, w, 300*time.Millisecond); ok {
		t.Fatalf("same mod time reported again: %+v", c)
	}
	replaceFile(t, path, "seed: 3\n", mod.Add(time.Minute))
	if _, ok := waitChange(t, w, 2*time.Second); !ok {
		t.Fatalf("newer write not reported")
	}
}

func TestWatcherAbsoluteSimPath(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.Mkdir("prefabs", 0o755); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "street.yaml")
	w := newTestWatcher(t, path, "")

	replaceFile(t, path, "seed: 9\n", time.Now().Add(-time.Hour).Truncate(time.Second))
	c, ok := waitChange(t, w, 2*time.Second)
	if !ok || c != (Change{Name: path, Kind: SpecSim}) {
		t.Fatalf("change = %+v, %v", c, ok)
	}

	spec, err := LoadSimSpec(c.Name)
	if err != nil {
		t.Fatalf("LoadSimSpec: %v", err)
	}
	if spec.Seed != 9 {
		t.Fatalf("seed = %d, want 9", spec.Seed)
	}
}

func TestWatcherNilIsQuiet(t *testing.T) {
	var w *Watcher
	if _, ok := w.Poll(); ok {
		t.Fatalf("nil watcher reported a change")
	}
	if w.Err() != nil || w.Close() != nil {
		t.Fatalf("nil watcher should be inert")
	}
}
