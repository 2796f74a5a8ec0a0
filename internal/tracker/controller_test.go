package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbonnaire/apptrack/internal/project"
	"github.com/tbonnaire/apptrack/internal/store"
	"github.com/tbonnaire/apptrack/internal/types"
)

// fakeBackend serves canned data and can be told to fail or block.
type fakeBackend struct {
	mu      sync.Mutex
	apps    []types.ApplicationRecord
	emails  []types.EmailRecord
	summary types.Summary

	failFetch error
	failProc  error
	failCreat error
	failDel   error

	// gate, when set, blocks FetchApplications until released.
	gate chan struct{}

	processResult types.ProcessResult
	deleted       []string
}

func (f *fakeBackend) set(apps []types.ApplicationRecord, emails []types.EmailRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apps = apps
	f.emails = emails
}

func (f *fakeBackend) setGate(gate chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = gate
}

func (f *fakeBackend) FetchApplications(ctx context.Context) ([]types.ApplicationRecord, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch != nil {
		return nil, f.failFetch
	}
	return append([]types.ApplicationRecord(nil), f.apps...), nil
}

func (f *fakeBackend) FetchEmails(ctx context.Context) ([]types.EmailRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch != nil {
		return nil, f.failFetch
	}
	return append([]types.EmailRecord(nil), f.emails...), nil
}

func (f *fakeBackend) FetchSummary(ctx context.Context) (*types.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch != nil {
		return nil, f.failFetch
	}
	s := f.summary
	return &s, nil
}

func (f *fakeBackend) ProcessEmails(ctx context.Context, limit int) (*types.ProcessResult, error) {
	if f.failProc != nil {
		return nil, f.failProc
	}
	r := f.processResult
	return &r, nil
}

func (f *fakeBackend) CreateApplication(ctx context.Context, req types.CreateApplicationRequest) (*types.ApplicationRecord, error) {
	if f.failCreat != nil {
		return nil, f.failCreat
	}
	return &types.ApplicationRecord{ID: "created", CompanyName: req.CompanyName, JobTitle: req.JobTitle}, nil
}

func (f *fakeBackend) DeleteApplication(ctx context.Context, id string) error {
	if f.failDel != nil {
		return f.failDel
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func apps(ids ...string) []types.ApplicationRecord {
	out := make([]types.ApplicationRecord, len(ids))
	for i, id := range ids {
		out[i] = types.ApplicationRecord{ID: id, CompanyName: id, Status: types.StatusApplied}
	}
	return out
}

func TestRefreshSuccess(t *testing.T) {
	fb := &fakeBackend{summary: types.Summary{TotalApplications: 2}}
	fb.set(apps("a1", "a2"), []types.EmailRecord{{ID: "e1", ApplicationID: "a1"}})

	c := New(fb, store.New())
	assert.Equal(t, StateIdle, c.State())

	view, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, 2, view.Page.TotalCount)
	assert.Equal(t, 2, view.Summary.TotalApplications)
	assert.Equal(t, 1, view.Page.Items[0].LinkedEmailCount)
}

func TestRefreshFailureKeepsLastGood(t *testing.T) {
	fb := &fakeBackend{}
	fb.set(apps("a1"), nil)

	c := New(fb, store.New())
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	fb.failFetch = errors.New("connection refused")
	view, err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, c.State())
	assert.ErrorContains(t, c.Err(), "connection refused")

	// The broken refresh still hands back the previous good view.
	require.NotNil(t, view)
	assert.Equal(t, 1, view.Page.TotalCount)
	assert.Equal(t, 1, c.View().Page.TotalCount)
}

func TestRefreshFirstFailureHasNoView(t *testing.T) {
	fb := &fakeBackend{failFetch: errors.New("down")}
	c := New(fb, store.New())

	view, err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.Nil(t, view)
	assert.Nil(t, c.View())
	assert.Equal(t, StateFailed, c.State())
}

func TestRefreshLastInitiatedWins(t *testing.T) {
	fb := &fakeBackend{}
	fb.set(apps("old"), nil)
	gate := make(chan struct{})
	fb.setGate(gate)

	c := New(fb, store.New())

	// Start a refresh that blocks inside the backend.
	done := make(chan error, 1)
	go func() {
		_, err := c.Refresh(context.Background())
		done <- err
	}()

	// Wait until the first refresh is parked in the gated fetch, then let a
	// newer refresh overtake it.
	time.Sleep(20 * time.Millisecond)
	fb.setGate(nil)
	fb.set(apps("new1", "new2"), nil)
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	// Release the stale refresh; its response must be discarded even though
	// it arrives last.
	close(gate)
	err = <-done
	assert.ErrorIs(t, err, ErrSuperseded)

	view := c.View()
	require.NotNil(t, view)
	assert.Equal(t, 2, view.Page.TotalCount)
	assert.Equal(t, StateReady, c.State())
}

func TestProcessRefetchIsAuthoritative(t *testing.T) {
	fb := &fakeBackend{
		processResult: types.ProcessResult{
			Success: true,
			Results: types.ProcessCounts{ProcessedEmails: 5, CreatedApplications: 3},
		},
	}
	// The run claims 3 created, but the re-fetch only returns 2 records. The
	// table must show 2.
	fb.set(apps("a1", "a2"), nil)

	c := New(fb, store.New())
	result, view, err := c.Process(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Results.CreatedApplications)
	assert.Equal(t, 2, view.Page.TotalCount)
}

func TestProcessFailureLeavesStoreUntouched(t *testing.T) {
	fb := &fakeBackend{}
	fb.set(apps("a1"), nil)

	c := New(fb, store.New())
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	fb.failProc = errors.New("boom")
	_, view, err := c.Process(context.Background(), 0)
	require.Error(t, err)
	require.NotNil(t, view)
	assert.Equal(t, 1, view.Page.TotalCount)
}

func TestCreatePrependsToHead(t *testing.T) {
	fb := &fakeBackend{}
	fb.set(apps("a1"), nil)

	c := New(fb, store.New())
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	rec, err := c.Create(context.Background(), types.CreateApplicationRequest{CompanyName: "Acme", JobTitle: "Dev"})
	require.NoError(t, err)
	assert.Equal(t, "created", rec.ID)

	view := c.View()
	require.Equal(t, 2, view.Page.TotalCount)
	assert.Equal(t, "created", view.Page.Items[0].ID)
}

func TestCreateFailureAddsNothing(t *testing.T) {
	fb := &fakeBackend{failCreat: errors.New("422")}
	fb.set(apps("a1"), nil)

	c := New(fb, store.New())
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	_, err = c.Create(context.Background(), types.CreateApplicationRequest{CompanyName: "Acme"})
	require.Error(t, err)
	assert.Equal(t, 1, c.View().Page.TotalCount)
}

func TestDeleteOnlyAfterConfirmation(t *testing.T) {
	fb := &fakeBackend{}
	fb.set(apps("a1", "a2"), nil)

	c := New(fb, store.New())
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	fb.failDel = errors.New("403")
	require.Error(t, c.Delete(context.Background(), "a1"))
	assert.Equal(t, 2, c.View().Page.TotalCount, "failed delete removes nothing")

	fb.failDel = nil
	require.NoError(t, c.Delete(context.Background(), "a1"))
	view := c.View()
	require.Equal(t, 1, view.Page.TotalCount)
	assert.Equal(t, "a2", view.Page.Items[0].ID)
	assert.Equal(t, []string{"a1"}, fb.deleted)
}

func TestFilterAndSortResetPage(t *testing.T) {
	fb := &fakeBackend{}
	var many []types.ApplicationRecord
	for i := 0; i < 30; i++ {
		many = append(many, types.ApplicationRecord{ID: string(rune('a' + i)), CompanyName: "Acme", Status: types.StatusApplied})
	}
	fb.set(many, nil)

	c := New(fb, store.New(), WithPageSize(10))
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	c.SetPage(3)
	assert.Equal(t, 3, c.View().Page.Number)

	c.SetFilter(project.Filter{Company: "acme"})
	assert.Equal(t, 1, c.View().Page.Number, "filter change resets to page 1")

	c.SetPage(2)
	c.SetSort(project.Sort{Field: "company_name"})
	assert.Equal(t, 1, c.View().Page.Number, "sort change resets to page 1")
}

func TestSetPageClamps(t *testing.T) {
	fb := &fakeBackend{}
	fb.set(apps("a1", "a2"), nil)

	c := New(fb, store.New(), WithPageSize(10))
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	c.SetPage(999)
	assert.Equal(t, 1, c.View().Page.Number)
}

func TestSeedDerivesLocalSummary(t *testing.T) {
	fb := &fakeBackend{}
	c := New(fb, store.New())

	marker := types.AutoCreatedMarker
	view := c.Seed(
		[]types.ApplicationRecord{
			{ID: "a1", Status: types.StatusApplied, Source: marker},
			{ID: "a2", Status: types.StatusOffer},
		},
		[]types.EmailRecord{{ID: "e1", ApplicationID: "a1"}},
		time.Now().Add(-time.Hour),
	)

	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, 2, view.Page.TotalCount)
	require.NotNil(t, view.Summary)
	assert.Equal(t, 1, view.Summary.AutoCreatedApplications)
	assert.Equal(t, 1, view.Summary.LinkedEmails)
}

type recordingSnap struct {
	mu    sync.Mutex
	saves int
}

func (r *recordingSnap) Save(apps []types.ApplicationRecord, emails []types.EmailRecord, fetchedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	return nil
}

func TestRefreshMirrorsSnapshot(t *testing.T) {
	fb := &fakeBackend{}
	fb.set(apps("a1"), nil)
	snap := &recordingSnap{}

	c := New(fb, store.New(), WithSnapshotter(snap))
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.saves)

	fb.failFetch = errors.New("down")
	_, _ = c.Refresh(context.Background())
	assert.Equal(t, 1, snap.saves, "failed refresh never mirrors")
}
