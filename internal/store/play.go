package store

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/rodrigopv/vercheck/internal/extract"
	"github.com/rodrigopv/vercheck/internal/fetch"
)

const playDetailsEndpoint = "https://play.google.com/store/apps/details"

// playHeaders is the fixed header set the listing endpoint needs to serve
// full markup to a non-browser client.
var playHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Accept-Language": "en-US,en;q=0.9",
}

// PlaySource resolves the published version from the canonical Play Store
// listing page. The listing has no structured API for this data, so the
// version is mined out of the embedded data-callback scripts.
type PlaySource struct {
	fetcher fetch.Fetcher
}

// NewPlaySource creates a PlaySource backed by the given fetcher.
func NewPlaySource(fetcher fetch.Fetcher) *PlaySource {
	return &PlaySource{fetcher: fetcher}
}

// Name implements the Source interface.
func (s *PlaySource) Name() string { return "playstore" }

// Lookup fetches the listing page for the request's Play identifier
// (falling back to the local package name) and extracts the version from
// its script blocks. The identifier is validated before the request is
// issued, so a missing identifier always wins over ErrNotFound.
func (s *PlaySource) Lookup(req Request) (*VersionRecord, error) {
	appID := req.PlayStoreID
	if appID == "" {
		appID = req.Local.PackageName
	}
	if appID == "" {
		return nil, fmt.Errorf("playstore: %w", ErrMissingIdentifier)
	}

	listingURL := playDetailsEndpoint + "?" + url.Values{"id": {appID}, "hl": {"en"}}.Encode()
	resp, err := s.fetcher.Fetch(listingURL, playHeaders)
	if err != nil {
		return nil, fmt.Errorf("playstore: fetch %s: %w", listingURL, err)
	}
	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("playstore: status %d for %q: %w", resp.Status, appID, ErrNotFound)
	}

	version := extract.ScriptVersion(resp.Body, appID)
	if version == "" {
		return nil, fmt.Errorf("playstore: listing for %q: %w", appID, ErrExtractionFailed)
	}

	return &VersionRecord{
		LocalVersion: req.Local.Version,
		StoreVersion: version,
		StoreURL:     listingURL,
		Platform:     Android,
	}, nil
}
