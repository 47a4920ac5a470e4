package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"findaccommodation/search"
)

// Listings is the read side of the listings API the pages are rendered from.
type Listings interface {
	SearchApartments(ctx context.Context, filter search.State, page, size int) (*ApartmentPage, error)
	FeaturedApartments(ctx context.Context, page, size int) (*ApartmentPage, error)
	GetApartment(ctx context.Context, id string) (*Apartment, error)
	States(ctx context.Context) ([]State, error)
	Countries(ctx context.Context) ([]Country, error)
}

// Accounts covers the endpoints acting on behalf of a visitor.
type Accounts interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	SendMessage(ctx context.Context, token string, in MessageInput) (*Message, error)
}

var (
	_ Listings = (*Client)(nil)
	_ Accounts = (*Client)(nil)
)

// Client talks JSON to the listings REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) SearchApartments(ctx context.Context, filter search.State, page, size int) (*ApartmentPage, error) {
	query := filter.Encode()
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	data := new(ApartmentPage)
	if err := c.do(ctx, http.MethodGet, "/apartments/search", query, "", nil, data); err != nil {
		return nil, fmt.Errorf("search apartments: %w", err)
	}

	return data, nil
}

func (c *Client) FeaturedApartments(ctx context.Context, page, size int) (*ApartmentPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	data := new(ApartmentPage)
	if err := c.do(ctx, http.MethodGet, "/apartments/featured", query, "", nil, data); err != nil {
		return nil, fmt.Errorf("featured apartments: %w", err)
	}

	return data, nil
}

func (c *Client) GetApartment(ctx context.Context, id string) (*Apartment, error) {
	data := new(Apartment)
	if err := c.do(ctx, http.MethodGet, "/apartments/"+url.PathEscape(id), nil, "", nil, data); err != nil {
		return nil, fmt.Errorf("get apartment %s: %w", id, err)
	}

	return data, nil
}

func (c *Client) States(ctx context.Context) ([]State, error) {
	var data []State
	if err := c.do(ctx, http.MethodGet, "/states/all", nil, "", nil, &data); err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}

	return data, nil
}

func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	var data []Country
	if err := c.do(ctx, http.MethodGet, "/countries/all", nil, "", nil, &data); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	return data, nil
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*User, error) {
	data := new(User)
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, "", in, data); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	return data, nil
}

func (c *Client) Login(ctx context.Context, in LoginInput) (*Session, error) {
	data := new(Session)
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", in, data); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if data.AccessToken == "" {
		return nil, fmt.Errorf("login: %w: no access token in response", ErrUnavailable)
	}

	return data, nil
}

func (c *Client) SendMessage(ctx context.Context, token string, in MessageInput) (*Message, error) {
	data := new(Message)
	if err := c.do(ctx, http.MethodPost, "/messages/create", nil, token, in, data); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	return data, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, in, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody map[string]any
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&errBody)
		return newResponseError(resp.StatusCode, errBody)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
