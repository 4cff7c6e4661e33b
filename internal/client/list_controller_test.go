package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack/internal/models"
)

// scriptedFetcher answers List calls through a user-supplied function and
// records every combination it was asked for.
type scriptedFetcher struct {
	mu      sync.Mutex
	calls   []string
	respond func(ctx context.Context, status string, pageIndex, pageSize int) (*models.TaskPage, error)
}

func (f *scriptedFetcher) List(ctx context.Context, status string, pageIndex, pageSize int) (*models.TaskPage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, status)
	f.mu.Unlock()
	return f.respond(ctx, status, pageIndex, pageSize)
}

func pageOf(title string, pageIndex, pageSize, totalCount int) *models.TaskPage {
	items := []models.TaskSummary{{ID: 1, Title: title, Status: "Todo"}}
	return models.NewTaskPage(items, pageIndex, pageSize, totalCount)
}

func waitFor(t *testing.T, c *ListController, cond func(ListState) bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		return cond(c.State())
	}, 2*time.Second, 5*time.Millisecond)
}

func TestListController_InitialFetch(t *testing.T) {
	f := &scriptedFetcher{
		respond: func(_ context.Context, status string, pageIndex, pageSize int) (*models.TaskPage, error) {
			return pageOf("first", pageIndex, pageSize, 1), nil
		},
	}
	c := NewListController(f)
	defer c.Close()

	waitFor(t, c, func(s ListState) bool { return len(s.Tasks) == 1 && !s.IsLoading })

	s := c.State()
	assert.Equal(t, "first", s.Tasks[0].Title)
	assert.Equal(t, 1, s.PageIndex)
	assert.Equal(t, 10, s.PageSize)
	assert.Equal(t, 1, s.PageInfo.TotalCount)
}

func TestListController_StaleResponseNeverApplied(t *testing.T) {
	slowDone := make(chan struct{})
	f := &scriptedFetcher{
		respond: func(_ context.Context, status string, pageIndex, pageSize int) (*models.TaskPage, error) {
			if status == "" {
				// The superseded fetch deliberately ignores cancellation
				// and resolves late, after the fresh one.
				<-slowDone
				return pageOf("stale", pageIndex, pageSize, 99), nil
			}
			return pageOf("fresh", pageIndex, pageSize, 1), nil
		},
	}
	c := NewListController(f)
	defer c.Close()

	c.SetStatusFilter("Done")
	waitFor(t, c, func(s ListState) bool {
		return len(s.Tasks) == 1 && s.Tasks[0].Title == "fresh" && !s.IsLoading
	})

	// Now let the superseded response arrive out of order.
	close(slowDone)
	time.Sleep(50 * time.Millisecond)

	s := c.State()
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, "fresh", s.Tasks[0].Title)
	assert.Equal(t, 1, s.PageInfo.TotalCount)
	assert.False(t, s.IsLoading)
}

func TestListController_FilterResetsPage(t *testing.T) {
	f := &scriptedFetcher{
		respond: func(_ context.Context, status string, pageIndex, pageSize int) (*models.TaskPage, error) {
			return pageOf("x", pageIndex, pageSize, 30), nil
		},
	}
	c := NewListController(f)
	defer c.Close()

	waitFor(t, c, func(s ListState) bool { return s.PageInfo.TotalPages == 3 })

	c.GoToPage(2)
	waitFor(t, c, func(s ListState) bool { return s.PageIndex == 2 && !s.IsLoading })

	c.SetStatusFilter("Done")
	assert.Equal(t, 1, c.State().PageIndex)

	// Unchanged filter value is a no-op: once the "Done" fetch has been
	// issued, repeating the same filter must not issue another.
	require.Eventually(t, func() bool {
		return len(f.callsSnapshot()) > 0 && f.callsSnapshot()[len(f.callsSnapshot())-1] == "Done"
	}, 2*time.Second, 5*time.Millisecond)
	before := len(f.callsSnapshot())
	c.SetStatusFilter("Done")
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, before, len(f.callsSnapshot()))
}

func (f *scriptedFetcher) callsSnapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func TestListController_FailureAbsorbed(t *testing.T) {
	var failing bool
	var mu sync.Mutex
	f := &scriptedFetcher{}
	f.respond = func(_ context.Context, status string, pageIndex, pageSize int) (*models.TaskPage, error) {
		mu.Lock()
		defer mu.Unlock()
		if failing {
			return nil, errors.New("boom")
		}
		return pageOf("ok", pageIndex, pageSize, 20), nil
	}
	c := NewListController(f)
	defer c.Close()

	waitFor(t, c, func(s ListState) bool { return len(s.Tasks) == 1 && !s.IsLoading })

	mu.Lock()
	failing = true
	mu.Unlock()
	c.Refresh()
	waitFor(t, c, func(s ListState) bool { return s.ErrorMessage != "" && !s.IsLoading })

	s := c.State()
	assert.Empty(t, s.Tasks)
	assert.Equal(t, PageInfo{}, s.PageInfo)

	// The stream survives the failure: the next input fetches again.
	mu.Lock()
	failing = false
	mu.Unlock()
	c.Refresh()
	waitFor(t, c, func(s ListState) bool { return len(s.Tasks) == 1 && s.ErrorMessage == "" })
}

func TestListController_PageNavigationGuards(t *testing.T) {
	f := &scriptedFetcher{
		respond: func(_ context.Context, status string, pageIndex, pageSize int) (*models.TaskPage, error) {
			return pageOf("x", pageIndex, pageSize, 20), nil
		},
	}
	c := NewListController(f)
	defer c.Close()

	waitFor(t, c, func(s ListState) bool { return s.PageInfo.TotalPages == 2 })

	c.PreviousPage() // no previous from page 1
	assert.Equal(t, 1, c.State().PageIndex)

	c.NextPage()
	// Wait for the page-2 result so HasNextPage reflects the last page.
	waitFor(t, c, func(s ListState) bool { return s.PageIndex == 2 && !s.PageInfo.HasNextPage })

	c.NextPage() // no next from the last page
	assert.Equal(t, 2, c.State().PageIndex)

	c.GoToPage(99) // out of range
	assert.Equal(t, 2, c.State().PageIndex)
}

func TestPageNumbers(t *testing.T) {
	cases := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"all fit", 2, 5, []int{1, 2, 3, 4, 5}},
		{"one page", 1, 1, []int{1}},
		{"none", 1, 0, []int{}},
		{"start of long strip", 1, 10, []int{1, 2, Ellipsis, 10}},
		{"near start", 2, 10, []int{1, 2, 3, Ellipsis, 10}},
		{"middle", 5, 10, []int{1, Ellipsis, 4, 5, 6, Ellipsis, 10}},
		{"near end", 9, 10, []int{1, Ellipsis, 8, 9, 10}},
		{"at end", 10, 10, []int{1, Ellipsis, 9, 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PageNumbers(tc.current, tc.total))
		})
	}
}
