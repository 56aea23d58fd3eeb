package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// playListingFixture builds a Play-shaped listing page embedding the
// version inside a data-callback script.
func playListingFixture(packageID, version string) string {
	return fmt.Sprintf(`<html><head><title>Example App - Apps</title></head><body>
<div class="listing">Example App</div>
<script>window.telemetry = {};</script>
<script>AF_initDataCallback({key: 'ds:4', hash: '7', data: [["%s", "Example App"], [[["%s"]]]], sideChannel: {}});</script>
</body></html>`, packageID, version)
}

func TestPlaySource_Lookup(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{resp: resp200(playListingFixture("com.example.app", "9.2.1"))}
	source := NewPlaySource(fetcher)

	record, err := source.Lookup(Request{
		Local: PackageInfo{PackageName: "com.example.app", Version: "9.0.0"},
	})
	require.NoError(t, err)
	require.Equal(t, "9.2.1", record.StoreVersion)
	require.Equal(t, "9.0.0", record.LocalVersion)
	require.Equal(t, Android, record.Platform)
	require.Equal(t, "https://play.google.com/store/apps/details?hl=en&id=com.example.app", record.StoreURL)
	require.Equal(t, record.StoreURL, fetcher.lastURL)
	require.NotEmpty(t, fetcher.lastHeaders["User-Agent"])
}

func TestPlaySource_ExplicitIDWinsOverPackage(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{resp: resp200(playListingFixture("com.other.app", "1.0.0"))}
	source := NewPlaySource(fetcher)

	record, err := source.Lookup(Request{
		Local:       PackageInfo{PackageName: "com.example.app"},
		PlayStoreID: "com.other.app",
	})
	require.NoError(t, err)
	require.Contains(t, fetcher.lastURL, "id=com.other.app")
	require.Equal(t, "1.0.0", record.StoreVersion)
}

func TestPlaySource_NotFound(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{resp: resp404()}
	source := NewPlaySource(fetcher)

	_, err := source.Lookup(Request{Local: PackageInfo{PackageName: "com.example.app"}})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlaySource_MissingIdentifierBeforeFetch(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	source := NewPlaySource(fetcher)

	_, err := source.Lookup(Request{})
	require.ErrorIs(t, err, ErrMissingIdentifier)
	require.Zero(t, fetcher.calls)
}

func TestPlaySource_ExtractionFailed(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{resp: resp200(`<html><body><script>window.telemetry = {};</script></body></html>`)}
	source := NewPlaySource(fetcher)

	_, err := source.Lookup(Request{Local: PackageInfo{PackageName: "com.example.app"}})
	require.ErrorIs(t, err, ErrExtractionFailed)
}

func TestPlaySource_TransportError(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{err: errTransport}
	source := NewPlaySource(fetcher)

	_, err := source.Lookup(Request{Local: PackageInfo{PackageName: "com.example.app"}})
	require.ErrorIs(t, err, errTransport)
}
