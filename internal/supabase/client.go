// Package supabase reads tables through a PostgREST endpoint such as the
// one Supabase exposes at {project}/rest/v1.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
)

const (
	restPath = "/rest/v1"

	// codeNotSingle is returned by PostgREST when an object response
	// matches zero or several rows.
	codeNotSingle = "PGRST116"
)

// APIError is a PostgREST error response. postgrest-go reports these as
// "(code) message"; the parts are recovered here so callers can branch on
// the code.
type APIError struct {
	Code    string
	Message string
	err     error
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return "supabase: " + e.Message
	}
	return fmt.Sprintf("supabase: %s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.err }

// NotSingle reports whether the error came from an object request that did
// not match exactly one row.
func (e *APIError) NotSingle() bool {
	return e.Code == codeNotSingle
}

func apiError(err error) error {
	msg := err.Error()
	if !strings.HasPrefix(msg, "(") {
		return err
	}
	code, message, ok := strings.Cut(msg[1:], ") ")
	if !ok {
		return err
	}
	return &APIError{Code: code, Message: message, err: err}
}

// Client issues read-only requests. It is safe for concurrent use.
type Client struct {
	rest *postgrest.Client
}

// New returns a Client for the project at baseURL authenticated with the
// anonymous key. timeout bounds how long a request waits for response
// headers.
func New(baseURL, key string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rest := postgrest.NewClient(strings.TrimRight(baseURL, "/")+restPath, "", nil)
	if rest.ClientError == nil {
		rest.SetApiKey(key).SetAuthToken(key)

		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.ResponseHeaderTimeout = timeout
		rest.Transport.Parent = tr
	}
	return &Client{rest: rest}
}

// Query describes a select on one table.
type Query struct {
	Table     string
	Columns   string // defaults to "*"
	OrderBy   string
	Ascending bool
	Limit     int
	Single    bool // request exactly one object
}

func (c *Client) build(q Query) *postgrest.FilterBuilder {
	fb := c.rest.From(q.Table).Select(q.Columns, "", false)
	if q.OrderBy != "" {
		fb = fb.Order(q.OrderBy, &postgrest.OrderOpts{Ascending: q.Ascending})
	}
	if q.Limit > 0 {
		fb = fb.Limit(q.Limit, "")
	}
	if q.Single {
		fb = fb.Single()
	}
	return fb
}

type result[T any] struct {
	val T
	err error
}

// Select runs q and decodes the JSON response into a T. postgrest-go takes
// no context: when ctx ends first Select returns ctx.Err() and the request
// finishes in the background under the transport timeout.
func Select[T any](ctx context.Context, c *Client, q Query) (T, error) {
	var zero T
	if q.Table == "" {
		return zero, errors.New("supabase: table required")
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	done := make(chan result[T], 1)
	go func() {
		var r result[T]
		defer func() {
			if p := recover(); p != nil {
				r.err = fmt.Errorf("supabase: select %s: %v", q.Table, p)
			}
			done <- r
		}()
		if _, err := c.build(q).ExecuteTo(&r.val); err != nil {
			r.err = fmt.Errorf("supabase: select %s: %w", q.Table, apiError(err))
		}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Ping checks that the REST endpoint answers for table.
func (c *Client) Ping(ctx context.Context, table string) error {
	_, err := Select[[]json.RawMessage](ctx, c, Query{Table: table, Limit: 1})
	return err
}
