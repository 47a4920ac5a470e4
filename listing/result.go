// Package listing holds the display-side model of a single apartment listing.
package listing

import "findaccommodation/api"

type Kind int

const (
	Loading Kind = iota
	Loaded
	Absent
)

func (k Kind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Absent:
		return "absent"
	default:
		return "unknown"
	}
}

// Result is the state of a listing being displayed. Apartment is only set when
// Kind is Loaded.
type Result struct {
	Kind      Kind
	Apartment *api.Apartment
}

func NewLoading() Result {
	return Result{Kind: Loading}
}

func NewLoaded(a *api.Apartment) Result {
	if a == nil {
		return NewAbsent()
	}
	return Result{Kind: Loaded, Apartment: a}
}

func NewAbsent() Result {
	return Result{Kind: Absent}
}

func (r Result) IsLoading() bool { return r.Kind == Loading }
func (r Result) IsLoaded() bool  { return r.Kind == Loaded }
func (r Result) IsAbsent() bool  { return r.Kind == Absent }
