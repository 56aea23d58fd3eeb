package store

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/rodrigopv/vercheck/internal/extract"
	"github.com/rodrigopv/vercheck/internal/fetch"
)

const getAppsDetailsEndpoint = "https://global.app.mi.com/details"

// getAppsHeaders spoofs a handset browser; the endpoint serves different
// markup (without the versionName token) to unrecognized clients.
var getAppsHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Linux; Android 13; M2101K6G) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Mobile Safari/537.36",
	"Accept-Language": "en-IN,en;q=0.9",
}

// GetAppsSource resolves the published version from the Xiaomi GetApps
// listing. Its markup is stable enough for the single keyed extractor.
type GetAppsSource struct {
	fetcher fetch.Fetcher
}

// NewGetAppsSource creates a GetAppsSource backed by the given fetcher.
func NewGetAppsSource(fetcher fetch.Fetcher) *GetAppsSource {
	return &GetAppsSource{fetcher: fetcher}
}

// Name implements the Source interface.
func (s *GetAppsSource) Name() string { return "getapps" }

// Lookup fetches the GetApps listing for the package and matches the
// versionName token against the raw body.
func (s *GetAppsSource) Lookup(req Request) (*VersionRecord, error) {
	packageID := req.PlayStoreID
	if packageID == "" {
		packageID = req.Local.PackageName
	}
	if packageID == "" {
		return nil, fmt.Errorf("getapps: %w", ErrMissingIdentifier)
	}

	listingURL := getAppsDetailsEndpoint + "?" + url.Values{"lo": {"IN"}, "la": {"en"}, "id": {packageID}}.Encode()
	resp, err := s.fetcher.Fetch(listingURL, getAppsHeaders)
	if err != nil {
		return nil, fmt.Errorf("getapps: fetch %s: %w", listingURL, err)
	}
	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("getapps: status %d for %q: %w", resp.Status, packageID, ErrNotFound)
	}

	version := extract.KeyedVersion(resp.Body)
	if version == "" {
		return nil, fmt.Errorf("getapps: listing for %q: %w", packageID, ErrExtractionFailed)
	}

	return &VersionRecord{
		LocalVersion: req.Local.Version,
		StoreVersion: version,
		StoreURL:     listingURL,
		Platform:     Android,
	}, nil
}
