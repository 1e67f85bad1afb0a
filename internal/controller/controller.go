package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/vishwajitvm/tracenest/internal/classify"
	"github.com/vishwajitvm/tracenest/internal/model"
	"github.com/vishwajitvm/tracenest/internal/source"
	"github.com/vishwajitvm/tracenest/internal/stats"
	"github.com/vishwajitvm/tracenest/internal/view"
)

const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
)

// LevelAll is the toggle token that clears the level filter entirely.
const LevelAll = "all"

const subscriberBuffer = 16

// ViewModel is the immutable result of one recomputation: everything a
// presenter needs to render the current page.
type ViewModel struct {
	State         string            `json:"state"` // idle, loading, ready
	Source        string            `json:"source"`
	Sources       []string          `json:"sources"`
	Records       []model.LogRecord `json:"records"` // current page slice
	Page          int               `json:"page"`
	TotalPages    int               `json:"total_pages"`
	TotalFiltered int               `json:"total_filtered"`
	PageSize      int               `json:"page_size"`
	ActiveLevels  []model.Level     `json:"active_levels"`
	SearchTerm    string            `json:"search_term"`
	Stats         stats.Snapshot    `json:"stats"`
	Err           string            `json:"error,omitempty"`
}

type event any

type (
	evLoadSources   struct{}
	evSourcesLoaded struct {
		names []string
		err   error
	}
	evSelectSource struct{ name string }
	evLinesLoaded  struct {
		source string
		lines  []string
		err    error
	}
	evToggleLevel struct{ token string }
	evSetSearch   struct{ term string }
	evGoToPage    struct{ n int }
	evRefresh     struct{}
)

// Controller owns all mutable viewer state: the source list, the active
// selection, filters, and pagination. Every change flows through a single
// event loop, so one event is fully applied before the next is seen and no
// transition is ever observed half done. Read completions are validated
// against the authoritative target: a response for a source the user has
// since navigated away from is dropped, even if it arrives last.
type Controller struct {
	reader   source.Reader
	maxLines int
	log      zerolog.Logger

	ctx    context.Context
	events chan event

	mu          sync.RWMutex
	subscribers []chan ViewModel
	latest      *ViewModel
	dropped     int64

	// Event-loop state. Touched only by the Start goroutine.
	state     string
	sources   []string
	target    string // authoritative target source name
	selection model.SourceSelection
	records   []model.LogRecord
	filter    model.FilterState
	pages     model.PaginationState
	lastErr   string
}

// New creates a Controller reading through the given Reader.
func New(reader source.Reader, maxLines, pageSize int, logger zerolog.Logger) *Controller {
	return &Controller{
		reader:   reader,
		maxLines: maxLines,
		log:      logger,
		events:   make(chan event, 64),
		state:    StateIdle,
		filter:   model.FilterState{ActiveLevels: make(map[model.Level]bool)},
		pages:    model.PaginationState{PageSize: pageSize, CurrentPage: 1},
	}
}

// Subscribe returns a buffered channel that receives every published
// ViewModel. Multiple presenters can subscribe; each gets every update.
func (c *Controller) Subscribe() <-chan ViewModel {
	ch := make(chan ViewModel, subscriberBuffer)
	c.mu.Lock()
	c.subscribers = append(c.subscribers, ch)
	c.mu.Unlock()
	return ch
}

// LatestView returns the most recently published ViewModel, if any.
func (c *Controller) LatestView() (ViewModel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return ViewModel{}, false
	}
	return *c.latest, true
}

// Dropped returns the number of updates dropped on slow subscribers.
func (c *Controller) Dropped() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dropped
}

// SelectSource makes name the authoritative target and fetches its lines.
func (c *Controller) SelectSource(name string) { c.post(evSelectSource{name: name}) }

// ToggleLevel flips one level in the filter set; the LevelAll token clears it.
func (c *Controller) ToggleLevel(token string) { c.post(evToggleLevel{token: token}) }

// SetSearchTerm replaces the free-text filter.
func (c *Controller) SetSearchTerm(term string) { c.post(evSetSearch{term: term}) }

// GoToPage navigates to page n if it is in range, otherwise does nothing.
func (c *Controller) GoToPage(n int) { c.post(evGoToPage{n: n}) }

// Refresh re-fetches the current target, keeping filters and search.
func (c *Controller) Refresh() { c.post(evRefresh{}) }

// Start runs the event loop. It first requests the source list, then
// blocks until the context is cancelled.
func (c *Controller) Start(ctx context.Context) {
	c.ctx = ctx
	defer c.closeAll()

	c.post(evLoadSources{})

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.events:
			c.handle(ev)
		}
	}
}

func (c *Controller) post(ev event) {
	select {
	case c.events <- ev:
	default:
		c.log.Warn().Msg("event queue full, dropping event")
	}
}

func (c *Controller) handle(ev event) {
	switch ev := ev.(type) {
	case evLoadSources:
		go func() {
			names, err := c.reader.ListSources(c.ctx)
			c.post(evSourcesLoaded{names: names, err: err})
		}()

	case evSourcesLoaded:
		c.onSourcesLoaded(ev.names, ev.err)

	case evSelectSource:
		c.selectSource(ev.name)

	case evLinesLoaded:
		c.onLinesLoaded(ev.source, ev.lines, ev.err)

	case evToggleLevel:
		c.toggleLevel(ev.token)

	case evSetSearch:
		c.filter.SearchTerm = strings.ToLower(ev.term)
		c.pages.CurrentPage = 1
		c.recompute()

	case evGoToPage:
		c.goToPage(ev.n)

	case evRefresh:
		if c.target == "" {
			return
		}
		c.pages.CurrentPage = 1
		c.state = StateLoading
		c.fetchLines(c.target)
		c.recompute()
	}
}

func (c *Controller) onSourcesLoaded(names []string, err error) {
	if err != nil {
		c.log.Error().Err(err).Msg("source list fetch failed")
		c.lastErr = err.Error()
		c.recompute()
		return
	}

	c.sources = names
	c.lastErr = ""
	if c.target == "" && len(names) > 0 {
		c.selectSource(names[0])
		return
	}
	c.recompute()
}

// selectSource resets filter and pagination state, records the new
// authoritative target, and kicks off the fetch.
func (c *Controller) selectSource(name string) {
	c.target = name
	c.state = StateLoading
	c.filter = model.FilterState{ActiveLevels: make(map[model.Level]bool)}
	c.pages.CurrentPage = 1
	c.selection = model.SourceSelection{}
	c.records = nil
	c.lastErr = ""

	c.fetchLines(name)
	c.recompute()
}

func (c *Controller) fetchLines(name string) {
	go func() {
		lines, err := c.reader.ReadLines(c.ctx, name, c.maxLines)
		c.post(evLinesLoaded{source: name, lines: lines, err: err})
	}()
}

func (c *Controller) onLinesLoaded(name string, lines []string, err error) {
	if name != c.target {
		// Stale response for a source the user navigated away from.
		c.log.Debug().Str("source", name).Str("target", c.target).Msg("dropping stale response")
		return
	}

	c.state = StateReady
	if err != nil {
		c.log.Error().Err(err).Str("source", name).Msg("read failed")
		c.selection = model.SourceSelection{Name: name}
		c.records = nil
		c.lastErr = err.Error()
		c.recompute()
		return
	}

	c.lastErr = ""
	c.selection = model.SourceSelection{Name: name, RawLines: lines}
	c.records = make([]model.LogRecord, 0, len(lines))
	for _, line := range lines {
		c.records = append(c.records, classify.Classify(line))
	}
	c.recompute()
}

func (c *Controller) toggleLevel(token string) {
	if token == LevelAll {
		c.filter.ActiveLevels = make(map[model.Level]bool)
	} else {
		lvl, ok := model.ParseLevel(token)
		if !ok {
			c.log.Warn().Str("token", token).Msg("ignoring unknown level token")
			return
		}
		if c.filter.ActiveLevels[lvl] {
			delete(c.filter.ActiveLevels, lvl)
		} else {
			c.filter.ActiveLevels[lvl] = true
		}
	}

	c.pages.CurrentPage = 1
	c.recompute()
}

func (c *Controller) goToPage(n int) {
	filtered := view.Filter(c.records, c.filter)
	pg := view.Paginate(filtered, c.pages.CurrentPage, c.pages.PageSize)
	if n < 1 || n > pg.TotalPages {
		return
	}
	c.pages.CurrentPage = n
	c.recompute()
}

// recompute runs the pure pipeline (filter, paginate, stats) over the
// current state and publishes the resulting ViewModel.
func (c *Controller) recompute() {
	filtered := view.Filter(c.records, c.filter)
	pg := view.Paginate(filtered, c.pages.CurrentPage, c.pages.PageSize)

	active := make([]model.Level, 0, len(c.filter.ActiveLevels))
	for _, lvl := range model.Levels {
		if c.filter.ActiveLevels[lvl] {
			active = append(active, lvl)
		}
	}

	sources := make([]string, len(c.sources))
	copy(sources, c.sources)

	vm := ViewModel{
		State:         c.state,
		Source:        c.target,
		Sources:       sources,
		Records:       pg.Records,
		Page:          pg.Number,
		TotalPages:    pg.TotalPages,
		TotalFiltered: pg.TotalCount,
		PageSize:      c.pages.PageSize,
		ActiveLevels:  active,
		SearchTerm:    c.filter.SearchTerm,
		Stats:         stats.Collect(c.selection.Name, c.records),
		Err:           c.lastErr,
	}

	c.publish(vm)
}

func (c *Controller) publish(vm ViewModel) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latest = &vm
	for _, ch := range c.subscribers {
		select {
		case ch <- vm:
		default:
			c.dropped++
		}
	}
}

func (c *Controller) closeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subscribers {
		close(ch)
	}
	c.subscribers = nil
}
