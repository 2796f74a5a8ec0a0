// Package tracker orchestrates the reconciliation pipeline: fetch from the
// backend, replace the store, re-derive, re-project — one logical transaction
// per refresh.
//
// The controller is the only writer of the record store. Between backend
// calls everything runs synchronously, so an observer never sees new
// applications paired with stale derived email counts.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tbonnaire/apptrack/internal/derive"
	"github.com/tbonnaire/apptrack/internal/project"
	"github.com/tbonnaire/apptrack/internal/store"
	"github.com/tbonnaire/apptrack/internal/types"
)

// State is the controller lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// ErrSuperseded is returned by a refresh whose response arrived after a newer
// refresh was issued. Its data has been discarded — last-initiated wins.
var ErrSuperseded = errors.New("refresh superseded by a newer one")

// Backend is the subset of the API client the controller drives.
type Backend interface {
	FetchApplications(ctx context.Context) ([]types.ApplicationRecord, error)
	FetchEmails(ctx context.Context) ([]types.EmailRecord, error)
	FetchSummary(ctx context.Context) (*types.Summary, error)
	ProcessEmails(ctx context.Context, limit int) (*types.ProcessResult, error)
	CreateApplication(ctx context.Context, req types.CreateApplicationRequest) (*types.ApplicationRecord, error)
	DeleteApplication(ctx context.Context, id string) error
}

// Snapshotter mirrors a successful fetch somewhere durable (the offline
// cache). Failures to mirror never fail a refresh.
type Snapshotter interface {
	Save(apps []types.ApplicationRecord, emails []types.EmailRecord, fetchedAt string) error
}

// View is one consistent projected result.
type View struct {
	Page      project.Page
	Summary   *types.Summary
	FetchedAt time.Time
}

// Controller owns the store and the projection parameters.
type Controller struct {
	backend Backend
	store   *store.Store
	snap    Snapshotter

	mu        sync.Mutex
	state     State
	lastErr   error
	lastGood  *View
	summary   *types.Summary
	fetchedAt time.Time

	filter   project.Filter
	sort     project.Sort
	page     int
	pageSize int

	seq uint64 // latest issued refresh sequence
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize overrides the default page size.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithSnapshotter attaches an offline mirror.
func WithSnapshotter(s Snapshotter) Option {
	return func(c *Controller) { c.snap = s }
}

// WithSort sets the initial sort.
func WithSort(s project.Sort) Option {
	return func(c *Controller) { c.sort = s }
}

// New returns an idle controller. The default sort matches the backend's
// dashboard: most recently updated first.
func New(backend Backend, st *store.Store, opts ...Option) *Controller {
	c := &Controller{
		backend:  backend,
		store:    st,
		state:    StateIdle,
		sort:     project.Sort{Field: "updated_at", Desc: true},
		page:     1,
		pageSize: project.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error carried by the Failed state, nil otherwise.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// View returns the last-known-good projection, which Failed retains so a
// broken refresh never blanks an already rendered screen. Nil before the
// first successful refresh.
func (c *Controller) View() *View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastGood
}

// Refresh fetches applications, emails, and the processing summary, then
// replaces the store and recomputes the projection as one visible update.
//
// Each refresh carries a sequence number. If a newer refresh is issued while
// this one is in flight, this one's response is discarded when it lands —
// regardless of arrival order, the store only ever reflects the
// last-initiated fetch.
func (c *Controller) Refresh(ctx context.Context) (*View, error) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = StateLoading
	c.mu.Unlock()

	apps, err := c.backend.FetchApplications(ctx)
	var emails []types.EmailRecord
	if err == nil {
		emails, err = c.backend.FetchEmails(ctx)
	}
	var summary *types.Summary
	if err == nil {
		summary, err = c.backend.FetchSummary(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return nil, ErrSuperseded
	}

	if err != nil {
		c.state = StateFailed
		c.lastErr = err
		return c.lastGood, err
	}

	c.store.ReplaceAll(apps, emails)
	c.summary = summary
	c.fetchedAt = time.Now()
	c.reprojectLocked()
	c.state = StateReady
	c.lastErr = nil

	if c.snap != nil {
		// Mirroring is advisory; the in-memory state is already committed.
		_ = c.snap.Save(apps, emails, c.fetchedAt.UTC().Format(time.RFC3339))
	}
	return c.lastGood, nil
}

// Process triggers the backend's auto-process run, then re-fetches
// everything. The run's counters are a summary of what it did, not a resync;
// only the re-fetch decides what the store contains afterwards. A failed run
// leaves the store untouched.
func (c *Controller) Process(ctx context.Context, limit int) (*types.ProcessResult, *View, error) {
	result, err := c.backend.ProcessEmails(ctx, limit)
	if err != nil {
		return nil, c.View(), err
	}
	view, err := c.Refresh(ctx)
	return result, view, err
}

// Create submits a new application and, once the backend returns the created
// record, prepends it to the store head and reprojects.
func (c *Controller) Create(ctx context.Context, req types.CreateApplicationRequest) (*types.ApplicationRecord, error) {
	rec, err := c.backend.CreateApplication(ctx, req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.PrependApplication(*rec)
	c.reprojectLocked()
	return rec, nil
}

// Delete removes an application. The local record goes away only after the
// backend confirms — never optimistically.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.backend.DeleteApplication(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.RemoveApplication(id)
	c.reprojectLocked()
	return nil
}

// Seed loads a previously cached snapshot without talking to the backend.
// The summary is derived locally since the cached mirror has no backend
// metrics.
func (c *Controller) Seed(apps []types.ApplicationRecord, emails []types.EmailRecord, fetchedAt time.Time) *View {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.ReplaceAll(apps, emails)
	local := derive.LocalSummary(apps, emails)
	c.summary = &local
	c.fetchedAt = fetchedAt
	c.reprojectLocked()
	c.state = StateReady
	c.lastErr = nil
	return c.lastGood
}

// SetFilter installs a new filter spec and resets to page 1.
func (c *Controller) SetFilter(f project.Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
	c.page = 1
	c.reprojectLocked()
}

// SetSort installs a new sort spec and resets to page 1.
func (c *Controller) SetSort(s project.Sort) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = s
	c.page = 1
	c.reprojectLocked()
}

// SetPageSize changes the page size and resets to page 1.
func (c *Controller) SetPageSize(n int) {
	if n < 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pageSize = n
	c.page = 1
	c.reprojectLocked()
}

// SetPage moves to a page. Out-of-range values clamp during projection.
func (c *Controller) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = n
	c.reprojectLocked()
}

// reprojectLocked reruns the pure pipeline over the current store snapshot.
// Callers hold c.mu. Nothing happens before the first data load, so a Failed
// first refresh keeps lastGood nil rather than publishing an empty view.
func (c *Controller) reprojectLocked() {
	if c.fetchedAt.IsZero() {
		return
	}
	apps, emails := c.store.Snapshot()
	views := derive.Views(apps, emails)
	page := project.Project(views, c.filter, c.sort, c.page, c.pageSize)
	c.page = page.Number
	c.lastGood = &View{
		Page:      page,
		Summary:   c.summary,
		FetchedAt: c.fetchedAt,
	}
}
