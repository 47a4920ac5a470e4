package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findaccommodation/api"
	"findaccommodation/data"
	"findaccommodation/helpers"
	"findaccommodation/httpx"
	"findaccommodation/jobs"
	middlewarex "findaccommodation/middleware"
	"findaccommodation/pagination"
	"findaccommodation/search"
)

type fakeAPI struct {
	mu sync.Mutex

	apartments []api.Apartment
	states     []api.State
	err        error

	searches      []search.State
	searchPages   []int
	featuredPages []int

	registerErr error
	registered  []api.RegisterInput
	loginErr    error
	messages    []api.MessageInput
	tokens      []string
}

func newFakeAPI(n int) *fakeAPI {
	f := &fakeAPI{
		states: []api.State{{
			ID:     "st-1",
			Name:   "lagos",
			Cities: []api.City{{ID: "ct-1", Name: "Ikeja"}, {ID: "ct-2", Name: "Yaba"}},
		}},
	}
	for i := 1; i <= n; i++ {
		f.apartments = append(f.apartments, api.Apartment{
			ID:    "a" + strconv.Itoa(i),
			Title: "flat number " + strconv.Itoa(i),
			Price: 150000,
			User:  api.User{ID: "owner-" + strconv.Itoa(i)},
		})
	}
	return f
}

func (f *fakeAPI) page(page, size int) (*api.ApartmentPage, error) {
	if f.err != nil {
		return nil, f.err
	}

	total := len(f.apartments)
	totalPages := pagination.TotalPages(size, total)
	p := &api.ApartmentPage{TotalNumberOfItems: total, TotalPages: totalPages, CurrentPage: page}
	if page > 1 {
		prev := strconv.Itoa(page - 1)
		p.PreviousPage = &prev
	}
	if page < totalPages {
		next := strconv.Itoa(page + 1)
		p.NextPage = &next
	}

	start, end := pagination.Indices(size, page, total)
	if start > 0 {
		p.Apartments = f.apartments[start-1 : end]
	}
	return p, nil
}

func (f *fakeAPI) SearchApartments(_ context.Context, filter search.State, page, size int) (*api.ApartmentPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, filter)
	f.searchPages = append(f.searchPages, page)
	return f.page(page, size)
}

func (f *fakeAPI) FeaturedApartments(_ context.Context, page, size int) (*api.ApartmentPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.featuredPages = append(f.featuredPages, page)
	return f.page(page, size)
}

func (f *fakeAPI) GetApartment(_ context.Context, id string) (*api.Apartment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.apartments {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, &api.ResponseError{Status: http.StatusNotFound}
}

func (f *fakeAPI) States(context.Context) ([]api.State, error) {
	return f.states, nil
}

func (f *fakeAPI) Countries(context.Context) ([]api.Country, error) {
	return []api.Country{{ID: "ng", Name: "Nigeria"}}, nil
}

func (f *fakeAPI) Register(_ context.Context, in api.RegisterInput) (*api.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered = append(f.registered, in)
	return &api.User{ID: "u1", Username: in.Username, Email: in.Email}, nil
}

func (f *fakeAPI) Login(_ context.Context, in api.LoginInput) (*api.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &api.Session{AccessToken: "token-" + in.Email}, nil
}

func (f *fakeAPI) SendMessage(_ context.Context, token string, in api.MessageInput) (*api.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.messages = append(f.messages, in)
	return &api.Message{ID: "m1", Receiver: in.Receiver, Text: in.Text}, nil
}

type fakeQueue struct {
	jobs []data.Job
}

func (q *fakeQueue) CreateJob(_ context.Context, jobType data.JobType, payload json.RawMessage) (*data.Job, error) {
	job := data.Job{ID: len(q.jobs) + 1, Type: jobType, Payload: payload, Status: data.JobStatusPending}
	q.jobs = append(q.jobs, job)
	return &job, nil
}

func newServer(f *fakeAPI, queue JobQueue) *echo.Echo {
	key, err := helpers.TokenKey("test app key")
	if err != nil {
		panic(err)
	}

	h := &Handlers{
		TokenKey:     key,
		Listings:     f,
		Accounts:     f,
		PageSize:     4,
		FeaturedSize: 3,
		BaseURL:      "https://findaccommodation.test",
	}
	if queue != nil {
		h.Jobs = queue
	}

	e := echo.NewWithConfig(echo.Config{
		Validator:        httpx.NewValidator(),
		HTTPErrorHandler: h.HandleError,
	})
	e.Use(session.Middleware(httpx.NewCookieSessionStore([]byte("0123456789abcdef0123456789abcdef"), false)))

	g := e.Group("")
	g.Use(middlewarex.WithAuthAny)
	g.GET("/", h.Home)
	g.GET("/featured", h.Featured)
	g.GET("/search", h.SearchSubmit)
	g.GET("/search/:option", h.Search)
	g.GET("/apartments/:id", h.Apartment)
	g.GET("/apartments/:id/details", h.ApartmentDetails)
	g.GET("/locations/cities", h.Cities)
	g.GET("/contact", h.ContactShow)
	g.POST("/contact", h.ContactSend)

	af := e.Group("")
	af.Use(middlewarex.WithAuthForbidden)
	af.GET("/sign-up", h.UserShowSignUp)
	af.POST("/sign-up", h.UserSignUp)
	af.GET("/log-in", h.UserShowLogIn)
	af.POST("/log-in", h.UserLogIn)

	ar := e.Group("")
	ar.Use(middlewarex.WithAuthRequired)
	ar.POST("/log-out", h.UserLogOut)
	ar.POST("/apartments/:id/messages", h.MessageSend)

	return e
}

type requestOption func(*http.Request)

func htmx(r *http.Request) { r.Header.Set("HX-Request", "true") }

func withCookies(cookies []*http.Cookie) requestOption {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

func do(e *echo.Echo, method, target string, form url.Values, opts ...requestOption) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func logIn(t *testing.T, e *echo.Echo) []*http.Cookie {
	t.Helper()

	rec := do(e, http.MethodPost, "/log-in", url.Values{"Email": {"ada@example.com"}, "Password": {"secret123"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestSearchFragment(t *testing.T) {
	f := newFakeAPI(20)
	e := newServer(f, nil)

	rec := do(e, http.MethodGet, "/search/rent?page=2", nil, htmx)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="results"`)
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "Flat number 5")
	assert.Contains(t, body, "Showing 5 to 8 of 20")
	assert.Contains(t, rec.Header().Get("HX-Push-Url"), "page=2")
	assert.Equal(t, []int{2}, f.searchPages)
	assert.Equal(t, "rent", f.searches[0].AvailableFor)
}

func TestSearchFullPage(t *testing.T) {
	f := newFakeAPI(6)
	e := newServer(f, nil)

	rec := do(e, http.MethodGet, "/search/buy?sort_type=Lowest+price", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, "Properties for sale")
	assert.Empty(t, rec.Header().Get("HX-Push-Url"))
	require.Len(t, f.searches, 1)
	assert.Equal(t, "sale", f.searches[0].AvailableFor)
	assert.Equal(t, "price", f.searches[0].SortType)
}

func TestSearchStepNext(t *testing.T) {
	f := newFakeAPI(20)
	e := newServer(f, nil)

	rec := do(e, http.MethodGet, "/search/rent?page=1&step=next", nil, htmx)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{1, 2}, f.searchPages)
	assert.Contains(t, rec.Header().Get("HX-Push-Url"), "page=2")
	assert.NotContains(t, rec.Header().Get("HX-Push-Url"), "step=")
	assert.Contains(t, rec.Header().Get("HX-Reswap"), "show:window:top")
}

func TestSearchStepPastLastPage(t *testing.T) {
	f := newFakeAPI(8)
	e := newServer(f, nil)

	rec := do(e, http.MethodGet, "/search/rent?page=2&step=next", nil, htmx)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{2}, f.searchPages, "no next page to fetch")
}

func TestSearchInvalidFilters(t *testing.T) {
	f := newFakeAPI(4)
	e := newServer(f, nil)

	rec := do(e, http.MethodGet, "/search/rent?min_price=cheap", nil, htmx)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), httpx.MsgErrInvalidSearch)
	assert.Empty(t, f.searchPages)
}

func TestSearchUnknownOption(t *testing.T) {
	e := newServer(newFakeAPI(4), nil)

	rec := do(e, http.MethodGet, "/search/swap", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "We could not find that page")
}

func TestSearchUnavailable(t *testing.T) {
	f := newFakeAPI(4)
	f.err = api.ErrUnavailable
	e := newServer(f, nil)

	rec := do(e, http.MethodGet, "/search/rent", nil, htmx)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="results"`)
}

func TestSearchSubmit(t *testing.T) {
	e := newServer(newFakeAPI(4), nil)

	rec := do(e, http.MethodGet, "/search?option=buy&city=ct-1&page=3&min_price=&step=next", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/search/buy?city=ct-1", rec.Header().Get(echo.HeaderLocation))

	rec = do(e, http.MethodGet, "/search?option=nope", nil)
	assert.Equal(t, "/search/rent", rec.Header().Get(echo.HeaderLocation))

	rec = do(e, http.MethodGet, "/search?available_for=short_let&state=st-1", nil)
	assert.Equal(t, "/search/short-let?state=st-1", rec.Header().Get(echo.HeaderLocation))
}

func TestFeaturedClampsPastLastPage(t *testing.T) {
	f := newFakeAPI(10)
	e := newServer(f, nil)

	rec := do(e, http.MethodGet, "/featured?page=9", nil, htmx)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{9, 3}, f.featuredPages)
	assert.Contains(t, rec.Header().Get("HX-Push-Url"), "page=3")
	assert.Contains(t, rec.Body.String(), "Flat number 9")
}

func TestHome(t *testing.T) {
	f := newFakeAPI(5)
	e := newServer(f, nil)

	rec := do(e, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Flat number 1")
	assert.Contains(t, body, "Flat number 3")
	assert.NotContains(t, body, "Flat number 4")
	assert.Contains(t, body, `href="/featured"`)
	assert.Equal(t, []int{1}, f.featuredPages)
}

func TestApartment(t *testing.T) {
	e := newServer(newFakeAPI(2), nil)

	rec := do(e, http.MethodGet, "/apartments/a2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hx-get="/apartments/a2/details"`)
}

func TestApartmentDetails(t *testing.T) {
	e := newServer(newFakeAPI(2), nil)

	t.Run("loaded", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/apartments/a2/details", nil, htmx)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Flat number 2")
		assert.NotContains(t, body, "<html")
		assert.Contains(t, body, "https://www.facebook.com/sharer")
	})

	t.Run("absent", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/apartments/missing/details", nil, htmx)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), httpx.MsgErrApartmentNotFound)
	})

	t.Run("full page", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/apartments/a1/details", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<title>Flat number 1")
	})
}

func TestCities(t *testing.T) {
	e := newServer(newFakeAPI(0), nil)

	rec := do(e, http.MethodGet, "/locations/cities?state=st-1", nil, htmx)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ikeja")
	assert.Contains(t, rec.Body.String(), "Yaba")

	rec = do(e, http.MethodGet, "/locations/cities", nil, htmx)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Ikeja")
}

func TestContactSend(t *testing.T) {
	form := url.Values{"Email": {"ada@example.com"}, "Message": {"I would like to list my flat <b>today</b>"}}

	t.Run("queued", func(t *testing.T) {
		queue := &fakeQueue{}
		e := newServer(newFakeAPI(0), queue)

		rec := do(e, http.MethodPost, "/contact", form, htmx)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Thanks, we will get back to you soon")
		require.Len(t, queue.jobs, 1)
		assert.Equal(t, jobs.ContactEmailType, queue.jobs[0].Type)

		var payload jobs.ContactEmailPayload
		require.NoError(t, json.Unmarshal(queue.jobs[0].Payload, &payload))
		assert.Equal(t, "ada@example.com", payload.Email)
	})

	t.Run("invalid", func(t *testing.T) {
		queue := &fakeQueue{}
		e := newServer(newFakeAPI(0), queue)

		rec := do(e, http.MethodPost, "/contact", url.Values{"Email": {"nope"}, "Message": {"hi"}}, htmx)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, queue.jobs)
	})

	t.Run("no workers", func(t *testing.T) {
		e := newServer(newFakeAPI(0), nil)

		rec := do(e, http.MethodPost, "/contact", form, htmx)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), httpx.MsgErrWorkersUnavailable)
	})
}

func TestUserSignUp(t *testing.T) {
	valid := url.Values{
		"Username":        {"ada"},
		"Email":           {"ada@example.com"},
		"Password":        {"secret123"},
		"PasswordConfirm": {"secret123"},
	}

	t.Run("created", func(t *testing.T) {
		f := newFakeAPI(0)
		e := newServer(f, nil)

		rec := do(e, http.MethodPost, "/sign-up", valid)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/log-in?registered=1", rec.Header().Get(echo.HeaderLocation))
		require.Len(t, f.registered, 1)
		assert.Equal(t, "ada@example.com", f.registered[0].Email)
	})

	t.Run("mismatched passwords", func(t *testing.T) {
		f := newFakeAPI(0)
		e := newServer(f, nil)

		form := url.Values{}
		for k, v := range valid {
			form[k] = v
		}
		form.Set("PasswordConfirm", "secret124")

		rec := do(e, http.MethodPost, "/sign-up", form, htmx)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotContains(t, rec.Body.String(), "<html")
		assert.Empty(t, f.registered)
	})

	t.Run("rejected by the api", func(t *testing.T) {
		f := newFakeAPI(0)
		f.registerErr = &api.ResponseError{
			Status: http.StatusBadRequest,
			Fields: map[string]string{"email": "user with this email already exists."},
		}
		e := newServer(f, nil)

		rec := do(e, http.MethodPost, "/sign-up", valid, htmx)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already exists")
	})
}

func TestUserShowLogIn(t *testing.T) {
	e := newServer(newFakeAPI(0), nil)

	rec := do(e, http.MethodGet, "/log-in?registered=1&next=/apartments/a1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Account created. You can now log in")
	assert.Contains(t, rec.Body.String(), `value="/apartments/a1"`)
}

func TestUserLogIn(t *testing.T) {
	t.Run("redirects to next", func(t *testing.T) {
		e := newServer(newFakeAPI(0), nil)

		rec := do(e, http.MethodPost, "/log-in", url.Values{
			"Email":    {"ada@example.com"},
			"Password": {"secret123"},
			"Next":     {"/apartments/a1"},
		})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/apartments/a1", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("bad credentials", func(t *testing.T) {
		f := newFakeAPI(0)
		f.loginErr = &api.ResponseError{Status: http.StatusUnauthorized, Message: "No active account found"}
		e := newServer(f, nil)

		rec := do(e, http.MethodPost, "/log-in", url.Values{"Email": {"ada@example.com"}, "Password": {"nope"}}, htmx)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("logged in visitors are sent home", func(t *testing.T) {
		e := newServer(newFakeAPI(0), nil)
		cookies := logIn(t, e)

		rec := do(e, http.MethodGet, "/log-in", nil, withCookies(cookies))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	})
}

func TestMessageSend(t *testing.T) {
	t.Run("sent to the owner", func(t *testing.T) {
		f := newFakeAPI(2)
		e := newServer(f, nil)
		cookies := logIn(t, e)

		rec := do(e, http.MethodPost, "/apartments/a2/messages", url.Values{"Text": {"Is it still available?"}}, htmx, withCookies(cookies))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), httpx.MsgSuccessMessageSent)
		require.Len(t, f.messages, 1)
		assert.Equal(t, "owner-2", f.messages[0].Receiver)
		assert.Equal(t, "token-ada@example.com", f.tokens[0])
	})

	t.Run("empty message", func(t *testing.T) {
		f := newFakeAPI(2)
		e := newServer(f, nil)
		cookies := logIn(t, e)

		rec := do(e, http.MethodPost, "/apartments/a2/messages", url.Values{"Text": {""}}, htmx, withCookies(cookies))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, f.messages)
	})

	t.Run("anonymous", func(t *testing.T) {
		e := newServer(newFakeAPI(2), nil)

		rec := do(e, http.MethodPost, "/apartments/a2/messages", url.Values{"Text": {"hello"}}, htmx, func(r *http.Request) {
			r.Header.Set("HX-Current-URL", "http://example.com/apartments/a2")
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/log-in?next=%2Fapartments%2Fa2", rec.Header().Get("HX-Location"))
	})
}

func TestUserLogOut(t *testing.T) {
	e := newServer(newFakeAPI(0), nil)
	cookies := logIn(t, e)

	rec := do(e, http.MethodPost, "/log-out", nil, withCookies(cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next     string
		expected string
	}{
		{next: "/apartments/a1", expected: "/apartments/a1"},
		{next: "", expected: "/"},
		{next: "//evil.example", expected: "/"},
		{next: "/\\evil.example", expected: "/"},
		{next: "https://evil.example", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			assert.Equal(t, tt.expected, safeNext(tt.next))
		})
	}
}
