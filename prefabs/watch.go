package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
	ChangeLevel
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeScript:
		return "script"
	case ChangeLevel:
		return "level"
	}
	return "spec"
}

// Change is one debounced edit of a watched file.
type Change struct {
	Path string
	Name string
	Kind ChangeKind
}

// Watcher reports edits to prefab specs, scripts and levels on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs. Repeated events for one file within 100ms are
// folded into one.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		debounce: 100 * time.Millisecond,
		Events:   make(chan Change, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Poll returns the next pending change without blocking.
func (w *Watcher) Poll() (Change, bool) {
	select {
	case c, ok := <-w.Events:
		return c, ok
	default:
		return Change{}, false
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			change, ok := classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// classify maps a path to the kind of asset it holds. Level files live in a
// levels directory; other YAML is a prefab spec.
func classify(path string) (Change, bool) {
	slash := filepath.ToSlash(path)
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(base, filepath.Ext(base))

	switch {
	case ext == ".tengo":
		return Change{Path: path, Name: name, Kind: ChangeScript}, true
	case ext != ".yaml" && ext != ".yml":
		return Change{}, false
	case strings.Contains(slash, "levels/"):
		return Change{Path: path, Name: name, Kind: ChangeLevel}, true
	}
	return Change{Path: path, Name: name, Kind: ChangeSpec}, true
}
