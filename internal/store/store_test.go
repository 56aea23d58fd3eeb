package store

import (
	"errors"

	"github.com/rodrigopv/vercheck/internal/fetch"
)

// fakeFetcher records the last request and serves a canned response, the
// same seam the real sources use against HTTPFetcher.
type fakeFetcher struct {
	resp *fetch.Response
	err  error

	calls       int
	lastURL     string
	lastHeaders map[string]string
}

func (f *fakeFetcher) Fetch(targetURL string, headers map[string]string) (*fetch.Response, error) {
	f.calls++
	f.lastURL = targetURL
	f.lastHeaders = headers
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

var errTransport = errors.New("connection reset")

func resp200(body string) *fetch.Response {
	return &fetch.Response{Status: 200, Body: body}
}

func resp404() *fetch.Response {
	return &fetch.Response{Status: 404, Body: "not found"}
}
