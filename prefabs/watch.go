package prefabs

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SpecKind names the spec file a Change refers to.
type SpecKind int

const (
	SpecSim SpecKind = iota
	SpecCatalog
)

func (k SpecKind) String() string {
	if k == SpecCatalog {
		return "catalog"
	}
	return "sim"
}

// Change is one edit of a watched spec on disk.
type Change struct {
	Name string
	Kind SpecKind
}

// Watcher reports edits of the sim spec and the class catalog under the
// prefabs directory. Editors that write a file several times in a row
// produce one Change per distinct modification time.
type Watcher struct {
	fs      *fsnotify.Watcher
	files   map[string]SpecKind
	changes chan Change
	errs    chan error
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the directories holding simName and catalogName.
// Relative names live under prefabs/; empty names fall back to the default
// spec files.
func NewWatcher(simName, catalogName string) (*Watcher, error) {
	if simName == "" {
		simName = "sim.yaml"
	}
	if catalogName == "" {
		catalogName = "classes.yaml"
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dirs := []string{filepath.Dir(diskPath(simName))}
	if d := filepath.Dir(diskPath(catalogName)); d != dirs[0] {
		dirs = append(dirs, d)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs: fw,
		files: map[string]SpecKind{
			filepath.Base(simName):     SpecSim,
			filepath.Base(catalogName): SpecCatalog,
		},
		changes: make(chan Change, 8),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.run(map[SpecKind]string{SpecSim: simName, SpecCatalog: catalogName})
	return w, nil
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

// Poll returns the next pending change without blocking.
func (w *Watcher) Poll() (Change, bool) {
	if w == nil {
		return Change{}, false
	}
	select {
	case c := <-w.changes:
		return c, true
	default:
		return Change{}, false
	}
}

// Err returns the last watch error, if any, without blocking.
func (w *Watcher) Err() error {
	if w == nil {
		return nil
	}
	select {
	case err := <-w.errs:
		return err
	default:
		return nil
	}
}

func (w *Watcher) run(names map[SpecKind]string) {
	seen := make(map[SpecKind]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			kind, ok := w.files[filepath.Base(event.Name)]
			if !ok {
				continue
			}
			mod, ok := ModTime(names[kind])
			if !ok || mod.Equal(seen[kind]) {
				continue
			}
			seen[kind] = mod
			select {
			case w.changes <- Change{Name: names[kind], Kind: kind}:
			case <-w.done:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}
