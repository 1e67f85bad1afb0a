package source

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Notifier watches a log root directory and reports which source changed,
// so the viewer can refresh the active selection without polling.
type Notifier struct {
	fsw *fsnotify.Watcher
	log zerolog.Logger

	// Events receives the base name of each changed *.log file.
	Events chan string
}

// NewNotifier creates a Notifier over the given log root directory.
func NewNotifier(root string, logger zerolog.Logger) (*Notifier, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(root); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Notifier{
		fsw:    fsw,
		log:    logger,
		Events: make(chan string, 256),
	}, nil
}

// Start begins forwarding change events. Blocks until the context is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	defer n.fsw.Close()
	defer close(n.Events)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-n.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			if !strings.HasSuffix(name, LogExtension) {
				continue
			}
			select {
			case n.Events <- name:
			default:
				// Slow consumer; refresh signals are collapsible.
			}

		case err, ok := <-n.fsw.Errors:
			if !ok {
				return
			}
			n.log.Warn().Err(err).Msg("notifier error")
		}
	}
}
