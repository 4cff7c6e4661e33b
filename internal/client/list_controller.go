package client

import (
	"context"
	"sync"

	"tasktrack/internal/models"
)

// ListFetcher is the slice of the API the list controller needs.
type ListFetcher interface {
	List(ctx context.Context, status string, pageIndex, pageSize int) (*models.TaskPage, error)
}

// PageInfo is the pagination metadata exposed to the rendering layer.
type PageInfo struct {
	TotalCount      int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// ListState is a snapshot of everything the list view renders.
type ListState struct {
	Tasks        []models.TaskSummary
	IsLoading    bool
	ErrorMessage string
	StatusFilter string
	PageIndex    int
	PageSize     int
	PageInfo     PageInfo
}

// ListController composes four inputs — status filter, page index, page
// size and an explicit refresh — into a single fetch stream. Every input
// change cancels the in-flight fetch and starts one for the latest
// combination; an epoch counter guarantees that at most one fetch's
// result is ever applied and a superseded response can never overwrite
// newer state.
//
// The controller owns its state; consumers read snapshots via State and
// wake on Updates. There is no fetch timeout: a hung request keeps
// IsLoading true until a newer input supersedes it.
type ListController struct {
	fetcher ListFetcher

	mu      sync.Mutex
	state   ListState
	epoch   uint64
	cancel  context.CancelFunc
	updates chan struct{}
}

// NewListController starts with no filter, page 1, page size 10, and
// issues the initial fetch.
func NewListController(fetcher ListFetcher) *ListController {
	c := &ListController{
		fetcher: fetcher,
		updates: make(chan struct{}, 1),
	}
	c.state.PageIndex = 1
	c.state.PageSize = 10
	c.mu.Lock()
	c.reload()
	c.mu.Unlock()
	return c
}

// State returns a copy of the current visible state.
func (c *ListController) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates signals after every state change. The channel is never closed;
// it coalesces bursts.
func (c *ListController) Updates() <-chan struct{} {
	return c.updates
}

// SetStatusFilter switches the equality filter (symbolic label, empty for
// all) and resets to page 1. Unchanged values are ignored.
func (c *ListController) SetStatusFilter(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if status == c.state.StatusFilter {
		return
	}
	c.state.StatusFilter = status
	c.state.PageIndex = 1
	c.reload()
}

// SetPageSize changes the window size, keeping the current page index.
func (c *ListController) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if size < 1 || size == c.state.PageSize {
		return
	}
	c.state.PageSize = size
	c.reload()
}

// GoToPage jumps to a 1-based page inside the known range.
func (c *ListController) GoToPage(pageIndex int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pageIndex < 1 || pageIndex > c.state.PageInfo.TotalPages || pageIndex == c.state.PageIndex {
		return
	}
	c.state.PageIndex = pageIndex
	c.reload()
}

func (c *ListController) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.PageInfo.HasNextPage {
		return
	}
	c.state.PageIndex++
	c.reload()
}

func (c *ListController) PreviousPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.PageInfo.HasPreviousPage {
		return
	}
	c.state.PageIndex--
	c.reload()
}

// Refresh refetches the current combination. Call after any mutation.
func (c *ListController) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reload()
}

// Close cancels any in-flight fetch and prevents further state changes.
func (c *ListController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// reload abandons the in-flight fetch and issues one for the latest
// combination. Callers hold c.mu.
func (c *ListController) reload() {
	c.epoch++
	epoch := c.epoch
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	status := c.state.StatusFilter
	pageIndex := c.state.PageIndex
	pageSize := c.state.PageSize
	go c.fetch(ctx, epoch, status, pageIndex, pageSize)
}

func (c *ListController) fetch(ctx context.Context, epoch uint64, status string, pageIndex, pageSize int) {
	// The loading flag is applied here, a tick after the input change:
	// the reader never observes loading=true before the combination that
	// caused it is in place.
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	c.state.IsLoading = true
	c.state.ErrorMessage = ""
	c.mu.Unlock()
	c.notify()

	page, err := c.fetcher.List(ctx, status, pageIndex, pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		// Superseded while in flight; a newer fetch owns the state now.
		return
	}
	c.state.IsLoading = false
	if err != nil {
		c.state.ErrorMessage = "Failed to load tasks"
		c.state.Tasks = []models.TaskSummary{}
		c.state.PageInfo = PageInfo{}
	} else {
		c.state.Tasks = page.Items
		c.state.PageInfo = PageInfo{
			TotalCount:      page.TotalCount,
			TotalPages:      page.TotalPages,
			HasNextPage:     page.HasNextPage,
			HasPreviousPage: page.HasPreviousPage,
		}
	}
	c.notify()
}

func (c *ListController) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// Ellipsis marks a gap in the page-number strip.
const Ellipsis = -1

// PageNumbers returns the 1-based page numbers to display: all of them
// when there are at most five, otherwise the first and last page plus up
// to three centered on current, with Ellipsis wherever the shown set is
// non-contiguous.
func PageNumbers(current, totalPages int) []int {
	const maxPagesToShow = 5

	if totalPages <= 0 {
		return []int{}
	}
	if totalPages <= maxPagesToShow {
		pages := make([]int, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	pages := []int{1}

	start := current - 1
	if start < 2 {
		start = 2
	}
	end := current + 1
	if end > totalPages {
		end = totalPages
	}

	if start > 2 {
		pages = append(pages, Ellipsis)
	}
	for i := start; i <= end; i++ {
		if !containsPage(pages, i) {
			pages = append(pages, i)
		}
	}
	if end < totalPages-1 {
		pages = append(pages, Ellipsis)
	}
	if !containsPage(pages, totalPages) {
		pages = append(pages, totalPages)
	}
	return pages
}

func containsPage(pages []int, n int) bool {
	for _, p := range pages {
		if p == n {
			return true
		}
	}
	return false
}
