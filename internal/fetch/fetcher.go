package fetch

// Response carries everything a store source needs to interpret an HTTP
// exchange: the status code, the raw text body, and the URL finally reached
// after redirects.
type Response struct {
	Status   int
	Body     string
	FinalURL string
}

// Fetcher defines the contract for retrieving store content.
// Implementations are responsible for the specifics of fetching, including
// following redirects and applying the caller's request headers.
// Non-2xx statuses are returned in the Response, not as errors: each store
// source maps status codes to its own failure conditions. An error is
// returned only when the request itself could not complete.
type Fetcher interface {
	Fetch(targetURL string, headers map[string]string) (*Response, error)
}
