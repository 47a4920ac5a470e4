package pagination

import (
	"context"
	"errors"
	"sync"

	"findaccommodation/api"
	"findaccommodation/search"
)

var (
	ErrNoFetcher   = errors.New("pagination: no page fetcher")
	ErrBadPageSize = errors.New("pagination: page size must be at least 1")
)

// Fetcher loads one page of listings for a filter.
type Fetcher interface {
	FetchPage(ctx context.Context, filter search.State, page, size int) (*api.ApartmentPage, error)
}

type FetcherFunc func(ctx context.Context, filter search.State, page, size int) (*api.ApartmentPage, error)

func (f FetcherFunc) FetchPage(ctx context.Context, filter search.State, page, size int) (*api.ApartmentPage, error) {
	return f(ctx, filter, page, size)
}

// View is what the pagination controls and the result list render from.
type View struct {
	Page        *api.ApartmentPage
	Window      PageSet
	CurrentPage int
	PageSize    int
	HasPrevious bool
	HasNext     bool
	Placeholder bool
	ScrollToTop bool
	Start, End  int
	Err         error
}

// Controller owns the current page of one paginated listing view.
//
// Page changes only move currentPage; Load fetches it. While a fetch is in flight
// the previously loaded page stays visible as placeholder data and Advance is
// suppressed. When fetches overlap, the one that completes last is kept.
type Controller struct {
	fetcher  Fetcher
	pageSize int

	mu          sync.Mutex
	filter      search.State
	currentPage int
	page        *api.ApartmentPage
	err         error
	inFlight    int
	scrollToTop bool
}

func NewController(fetcher Fetcher, filter search.State, pageSize int) (*Controller, error) {
	if fetcher == nil {
		return nil, ErrNoFetcher
	}
	if pageSize < 1 {
		return nil, ErrBadPageSize
	}

	return &Controller{
		fetcher:     fetcher,
		pageSize:    pageSize,
		filter:      filter,
		currentPage: 1,
	}, nil
}

// CurrentPage returns the page the next Load will fetch.
func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage
}

// IsPlaceholder reports whether a fetch is in flight and the loaded page is stale.
func (c *Controller) IsPlaceholder() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

// Advance moves to the next page. It is a no-op, reported as false, unless the
// loaded page has a next page and no fetch is in flight.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight > 0 || c.page == nil || c.page.NextPage == nil {
		return false
	}

	c.currentPage++
	c.scrollToTop = true
	return true
}

// Retreat moves to the previous page, never below page 1.
func (c *Controller) Retreat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := max(c.currentPage-1, 1)
	if prev == c.currentPage {
		return false
	}

	c.currentPage = prev
	c.scrollToTop = true
	return true
}

// JumpTo sets the current page to n. Out-of-range pages are corrected by Load
// once the total page count is known.
func (c *Controller) JumpTo(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := n != c.currentPage
	c.currentPage = n
	c.scrollToTop = c.scrollToTop || changed
	return changed
}

// Reset replaces the filter and returns to page 1.
func (c *Controller) Reset(filter search.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter = filter
	c.currentPage = 1
	c.page = nil
	c.err = nil
	c.scrollToTop = true
}

// Load fetches the current page and returns the resulting View. A current page
// past the last page reported by the API is clamped and fetched once more.
func (c *Controller) Load(ctx context.Context) View {
	page, err := c.fetch(ctx)
	if err == nil && page.TotalPages > 0 && c.clampTo(page.TotalPages) {
		c.fetch(ctx)
	}

	return c.View()
}

// View returns the current state without fetching.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Page:        c.page,
		CurrentPage: c.currentPage,
		PageSize:    c.pageSize,
		Placeholder: c.inFlight > 0,
		ScrollToTop: c.scrollToTop,
		Window:      PageSet{Pages: []int{}},
		Err:         c.err,
	}
	c.scrollToTop = false

	if c.err != nil {
		v.Page = nil
		return v
	}

	if c.page != nil {
		v.Window = Window(c.currentPage, c.page.TotalPages)
		v.HasPrevious = c.currentPage > 1 && c.page.PreviousPage != nil
		v.HasNext = c.page.NextPage != nil && !v.Placeholder
		v.Start, v.End = Indices(c.pageSize, c.currentPage, c.page.TotalNumberOfItems)
	}

	return v
}

func (c *Controller) fetch(ctx context.Context) (*api.ApartmentPage, error) {
	c.mu.Lock()
	if c.currentPage < 1 {
		c.currentPage = 1
	}
	filter, pageNum := c.filter, c.currentPage
	c.inFlight++
	c.mu.Unlock()

	page, err := c.fetcher.FetchPage(ctx, filter, pageNum, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	if err != nil {
		c.err = err
		return nil, err
	}
	if page == nil {
		page = &api.ApartmentPage{}
	}

	c.page = page
	c.err = nil
	return page, nil
}

func (c *Controller) clampTo(last int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.currentPage <= last {
		return false
	}

	c.currentPage = last
	c.scrollToTop = true
	return true
}
