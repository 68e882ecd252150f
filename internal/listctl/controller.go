package listctl

import (
	"context"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/notewind/notewind/internal/api"
	"github.com/notewind/notewind/internal/cache"
	"github.com/notewind/notewind/internal/model"
)

// Filter narrows the list to one source kind. Text notes have no filter
// tab, so they only show under FilterAll.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterPDF     Filter = "pdf"
	FilterAudio   Filter = "audio"
	FilterYouTube Filter = "youtube"
)

func (f Filter) valid() bool {
	switch f {
	case FilterAll, FilterPDF, FilterAudio, FilterYouTube:
		return true
	}
	return false
}

func (f Filter) sourceType() model.SourceType {
	if f == FilterAll {
		return ""
	}
	return model.SourceType(f)
}

// Scope is the viewing context of one list: a user's library, or the
// global search surface (no owner).
type Scope struct {
	UserID       string
	GlobalSearch bool
}

func (s Scope) usable() bool {
	return s.UserID != "" || s.GlobalSearch
}

// Snapshot is a point-in-time copy of the controller state.
type Snapshot struct {
	Notes           []model.Note
	Page            int
	SearchQuery     string
	DebouncedSearch string
	ActiveFilter    Filter
	HasMore         bool
	Loading         bool
	LoadingMore     bool
	LastError       string
}

type fetchMode int

const (
	modeReplace fetchMode = iota
	modeAppend
	modeSilent
)

const (
	defaultLimit    = 8
	defaultDebounce = 500 * time.Millisecond
)

// Controller owns one paginated, searchable, filterable note list.
//
// Every issued fetch carries a monotonic sequence number; only the
// response of the most recently issued fetch is applied, so a slow stale
// request can never overwrite newer data.
type Controller struct {
	lister   api.INoteLister
	store    *cache.NoteCache
	scope    Scope
	limit    int
	debounce time.Duration
	onChange func(Snapshot)

	ctx    context.Context
	cancel context.CancelFunc

	mu              sync.Mutex
	notes           []model.Note
	page            int
	searchQuery     string
	debouncedSearch string
	filter          Filter
	hasMore         bool
	loading         bool
	loadingMore     bool
	lastErr         string
	seq             uint64
	debounceTimer   *time.Timer
}

type Option func(*Controller)

func WithLimit(limit int) Option {
	return func(c *Controller) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithCache enables write-through of every page-1 result to the local
// cache. Cache failures are logged, never surfaced.
func WithCache(store *cache.NoteCache) Option {
	return func(c *Controller) {
		c.store = store
	}
}

// WithOnChange registers a callback invoked after every applied fetch
// (success or failure), outside the controller lock.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// New builds a controller and, when the scope is usable, issues the
// initial page-1 fetch. A scope with neither an owner nor the global
// search flag stays empty and idle until recreated.
func New(lister api.INoteLister, scope Scope, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		lister:   lister,
		scope:    scope,
		limit:    defaultLimit,
		debounce: defaultDebounce,
		ctx:      ctx,
		cancel:   cancel,
		page:     1,
		filter:   FilterAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.mu.Lock()
	c.startFetchLocked(modeReplace)
	c.mu.Unlock()
	return c
}

// SetSearchQuery updates the raw query immediately and schedules the
// debounced commit: the settled value is applied (page reset to 1, one
// fetch) only after the window passes with no further calls.
func (c *Controller) SetSearchQuery(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchQuery = text
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = time.AfterFunc(c.debounce, func() {
		c.commitSearch(text)
	})
}

func (c *Controller) commitSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if text != c.searchQuery {
		// A newer edit re-armed the timer; this commit lost the race.
		return
	}
	if text == c.debouncedSearch {
		return
	}
	c.debouncedSearch = text
	c.page = 1
	c.startFetchLocked(modeReplace)
}

// SetActiveFilter switches the source-kind filter immediately (no
// debounce) and resets to page 1. Unknown filters are ignored.
func (c *Controller) SetActiveFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !f.valid() || f == c.filter {
		return
	}
	c.filter = f
	c.page = 1
	c.startFetchLocked(modeReplace)
}

// LoadMore fetches the next page and appends it. It reports false when
// ignored: nothing more to load, or a load already in flight.
func (c *Controller) LoadMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasMore || c.loading || c.loadingMore {
		return false
	}
	c.page++
	c.startFetchLocked(modeAppend)
	return true
}

// RefreshNotes resets to page 1 and forces a re-fetch even when no query
// parameter changed.
func (c *Controller) RefreshNotes() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = 1
	c.startFetchLocked(modeReplace)
}

// RefreshSilent re-fetches page 1 and replaces the list without touching
// the loading flags, so no skeleton flashes. Used right after a
// background creation completes.
func (c *Controller) RefreshSilent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = 1
	c.startFetchLocked(modeSilent)
}

// ClearFilters restores the default query state and re-fetches page 1.
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchQuery = ""
	c.debouncedSearch = ""
	c.filter = FilterAll
	c.page = 1
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
	c.startFetchLocked(modeReplace)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	notes := make([]model.Note, len(c.notes))
	copy(notes, c.notes)
	return Snapshot{
		Notes:           notes,
		Page:            c.page,
		SearchQuery:     c.searchQuery,
		DebouncedSearch: c.debouncedSearch,
		ActiveFilter:    c.filter,
		HasMore:         c.hasMore,
		Loading:         c.loading,
		LoadingMore:     c.loadingMore,
		LastError:       c.lastErr,
	}
}

// CachedNotes returns the locally cached page-1 list for the current
// query state, for cold starts and offline fallback.
func (c *Controller) CachedNotes(ctx context.Context) ([]model.Note, bool, error) {
	if c.store == nil {
		return nil, false, nil
	}
	c.mu.Lock()
	scope := c.cacheScopeLocked()
	c.mu.Unlock()
	return c.store.Get(ctx, scope)
}

func (c *Controller) cacheScopeLocked() cache.Scope {
	return cache.Scope{
		UserID: c.scope.UserID,
		Filter: string(c.filter),
		Search: c.debouncedSearch,
	}
}

// Close stops pending debounce work and cancels in-flight fetches.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
	c.mu.Unlock()
	c.cancel()
}

func (c *Controller) startFetchLocked(mode fetchMode) {
	if !c.scope.usable() {
		c.notes = nil
		c.loading = false
		c.loadingMore = false
		return
	}
	c.seq++
	seq := c.seq
	switch mode {
	case modeReplace:
		c.loading = true
	case modeAppend:
		c.loadingMore = true
	}
	q := api.ListNotesQuery{
		UserID:     c.scope.UserID,
		Page:       c.page,
		Limit:      c.limit,
		Keyword:    c.debouncedSearch,
		SourceType: c.filter.sourceType(),
	}
	go c.fetch(seq, q)
}

func (c *Controller) fetch(seq uint64, q api.ListNotesQuery) {
	notes, err := c.lister.ListNotes(c.ctx, q)

	c.mu.Lock()
	if seq != c.seq {
		// A newer fetch owns the state now; drop this response.
		c.mu.Unlock()
		return
	}
	if err != nil {
		logutil.GetLogger(c.ctx).Error("list fetch failed",
			zap.Int("page", q.Page),
			zap.String("keyword", q.Keyword),
			zap.String("source_type", string(q.SourceType)),
			zap.Error(err))
		c.lastErr = err.Error()
		c.loading = false
		c.loadingMore = false
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.emit(snap)
		return
	}
	if q.Page == 1 {
		c.notes = notes
	} else {
		c.notes = append(c.notes, notes...)
	}
	c.hasMore = len(notes) == q.Limit
	c.lastErr = ""
	c.loading = false
	c.loadingMore = false
	scope := c.cacheScopeLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if q.Page == 1 && c.store != nil {
		if err := c.store.Put(context.Background(), scope, notes); err != nil {
			logutil.GetLogger(c.ctx).Warn("cache write failed", zap.Error(err))
		}
	}
	c.emit(snap)
}

func (c *Controller) emit(snap Snapshot) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}
