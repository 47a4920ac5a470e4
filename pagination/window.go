// Package pagination computes the visible page window and drives page changes
// for a paginated listing view.
package pagination

// WindowSize is the number of page links shown at once.
const WindowSize = 4

// PageSet is the window of page numbers rendered as pagination controls.
type PageSet struct {
	Pages              []int
	HasMoreAfterWindow bool
}

// Window returns the page numbers to render for currentPage out of totalPages.
//
// Up to WindowSize consecutive pages are returned. Near the start the window is
// anchored at page 1, near the end at the last page, and elsewhere the current
// page is the second entry. A currentPage outside [1, totalPages] is clamped.
func Window(currentPage, totalPages int) PageSet {
	if totalPages <= 0 {
		return PageSet{Pages: []int{}}
	}

	currentPage = clamp(currentPage, 1, totalPages)

	var start int
	switch {
	case totalPages <= WindowSize:
		start = 1
	case currentPage <= 2:
		start = 1
	case currentPage == 3:
		start = 2
	case totalPages-currentPage <= 1:
		start = totalPages - WindowSize + 1
	default:
		start = currentPage - 1
	}

	end := min(start+WindowSize-1, totalPages)

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}

	return PageSet{
		Pages:              pages,
		HasMoreAfterWindow: totalPages > end,
	}
}

// Contains reports whether page is part of the window.
func (s PageSet) Contains(page int) bool {
	for _, p := range s.Pages {
		if p == page {
			return true
		}
	}
	return false
}

// Last returns the highest page in the window, or 0 when it is empty.
func (s PageSet) Last() int {
	if len(s.Pages) == 0 {
		return 0
	}
	return s.Pages[len(s.Pages)-1]
}

// Indices returns the 1-based positions of the first and last item shown on page,
// as in "Showing 5 to 8 of 20". Both are 0 when there is nothing to show.
func Indices(pageSize, page, totalItems int) (start, end int) {
	if pageSize < 1 || page < 1 || totalItems <= 0 {
		return 0, 0
	}

	start = (page-1)*pageSize + 1
	if start > totalItems {
		return 0, 0
	}

	end = min(page*pageSize, totalItems)
	return start, end
}

// TotalPages returns how many pages of pageSize hold totalItems.
func TotalPages(pageSize, totalItems int) int {
	if pageSize < 1 || totalItems <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
