package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rodrigopv/vercheck/internal/fetch"
)

const (
	appStoreLookupEndpoint = "https://itunes.apple.com/lookup"
	defaultCountry         = "us"
)

type lookupEnvelope struct {
	ResultCount int            `json:"resultCount"`
	Results     []lookupResult `json:"results"`
}

type lookupResult struct {
	Version      string `json:"version"`
	TrackViewURL string `json:"trackViewUrl"`
}

// AppStoreSource resolves the published version through the lookup API, the
// one provider here with a stable structured endpoint.
type AppStoreSource struct {
	fetcher fetch.Fetcher
}

// NewAppStoreSource creates an AppStoreSource backed by the given fetcher.
func NewAppStoreSource(fetcher fetch.Fetcher) *AppStoreSource {
	return &AppStoreSource{fetcher: fetcher}
}

// Name implements the Source interface.
func (s *AppStoreSource) Name() string { return "appstore" }

// Lookup queries the lookup endpoint by apple id or, absent that, bundle
// identifier. Calling with neither is a programming error and is rejected
// before any network attempt. The endpoint answers 200 with zero results
// for unknown ids; that is ErrNotFound, never an empty success.
func (s *AppStoreSource) Lookup(req Request) (*VersionRecord, error) {
	bundleID := req.BundleID
	if bundleID == "" {
		bundleID = req.Local.PackageName
	}
	if req.AppleID == "" && bundleID == "" {
		return nil, errors.New("appstore: either an apple id or a bundle identifier is required")
	}

	country := req.Country
	if country == "" {
		country = defaultCountry
	}

	query := url.Values{"country": {country}, "version": {"2"}}
	if req.AppleID != "" {
		query.Set("id", req.AppleID)
	} else {
		query.Set("bundleId", bundleID)
	}

	lookupURL := appStoreLookupEndpoint + "?" + query.Encode()
	resp, err := s.fetcher.Fetch(lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("appstore: fetch %s: %w", lookupURL, err)
	}
	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("appstore: status %d: %w", resp.Status, ErrNotFound)
	}

	var envelope lookupEnvelope
	if err := json.Unmarshal([]byte(resp.Body), &envelope); err != nil {
		return nil, fmt.Errorf("appstore: decode lookup response: %w", err)
	}
	if len(envelope.Results) == 0 {
		return nil, fmt.Errorf("appstore: lookup returned zero results: %w", ErrNotFound)
	}

	first := envelope.Results[0]
	return &VersionRecord{
		LocalVersion: req.Local.Version,
		StoreVersion: first.Version,
		StoreURL:     first.TrackViewURL,
		Platform:     IOS,
	}, nil
}
