// Package imagesearch looks up a picture for an item name against an
// Unsplash-style photo search endpoint.
package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second

// Searcher resolves an image URL for a name. An empty result means no image.
type Searcher interface {
	Search(ctx context.Context, name string) (string, error)
}

// LookupError reports a failed search. Callers treat it as "no image".
type LookupError struct {
	Query  string
	Status int
	Err    error
}

func (e *LookupError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("image search %q: status %d", e.Query, e.Status)
	}
	return fmt.Sprintf("image search %q: %v", e.Query, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

func IsLookup(err error) bool {
	var l *LookupError
	return errors.As(err, &l)
}

type Client struct {
	endpoint  string
	accessKey string
	http      *http.Client
}

// New returns a Client, or a Disabled searcher when endpoint is empty.
func New(endpoint, accessKey string, timeout time.Duration) Searcher {
	if strings.TrimSpace(endpoint) == "" {
		return Disabled{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint:  endpoint,
		accessKey: accessKey,
		http:      &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Small   string `json:"small"`
			Regular string `json:"regular"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
	} `json:"results"`
}

func (c *Client) Search(ctx context.Context, name string) (string, error) {
	query := strings.TrimSpace(name)
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", &LookupError{Query: query, Err: err}
	}
	q := u.Query()
	q.Set("query", query)
	q.Set("per_page", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", &LookupError{Query: query, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.accessKey != "" {
		req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &LookupError{Query: query, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &LookupError{Query: query, Status: resp.StatusCode}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &LookupError{Query: query, Err: err}
	}
	for _, r := range body.Results {
		switch {
		case r.URLs.Small != "":
			return r.URLs.Small, nil
		case r.URLs.Regular != "":
			return r.URLs.Regular, nil
		case r.URLs.Thumb != "":
			return r.URLs.Thumb, nil
		}
	}
	return "", nil
}

// Disabled never finds an image.
type Disabled struct{}

func (Disabled) Search(context.Context, string) (string, error) { return "", nil }
