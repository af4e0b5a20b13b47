package adapter

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
)

// roundTripFunc adapts a function into an http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// newTestClient builds a Client whose transport rewrites every request to
// hit srv, recording the original host in the X-Original-Host header so
// handlers can tell the real targets apart.
func newTestClient(srv *httptest.Server) *Client {
	httpClient := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			req.Header.Set("X-Original-Host", req.URL.Host)
			req.URL.Scheme = "http"
			req.URL.Host = srv.Listener.Addr().String()
			return http.DefaultTransport.RoundTrip(req)
		}),
	}
	return NewClient(httpClient, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
