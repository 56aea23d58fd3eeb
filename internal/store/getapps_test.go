package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const getAppsFixture = `<html><body><div class="app-info">
<script>window.__STATE__ = {"app": {"packageName":"com.example.app","versionName":"3.5.9","versionCode":359}};</script>
</div></body></html>`

func TestGetAppsSource_Lookup(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{resp: resp200(getAppsFixture)}
	source := NewGetAppsSource(fetcher)

	record, err := source.Lookup(Request{
		Local: PackageInfo{PackageName: "com.example.app", Version: "3.0.0"},
	})
	require.NoError(t, err)
	require.Equal(t, "3.5.9", record.StoreVersion)
	require.Equal(t, Android, record.Platform)
	require.Contains(t, record.StoreURL, "https://global.app.mi.com/details?")
	require.Contains(t, fetcher.lastURL, "id=com.example.app")
	require.Contains(t, fetcher.lastURL, "lo=IN")
	require.Contains(t, fetcher.lastURL, "la=en")
}

func TestGetAppsSource_SpoofedHeaders(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{resp: resp200(getAppsFixture)}
	source := NewGetAppsSource(fetcher)

	_, err := source.Lookup(Request{Local: PackageInfo{PackageName: "com.example.app"}})
	require.NoError(t, err)
	require.Contains(t, fetcher.lastHeaders["User-Agent"], "Android")
	require.Equal(t, "en-IN,en;q=0.9", fetcher.lastHeaders["Accept-Language"])
}

func TestGetAppsSource_NotFound(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{resp: resp404()}
	source := NewGetAppsSource(fetcher)

	_, err := source.Lookup(Request{Local: PackageInfo{PackageName: "com.example.app"}})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetAppsSource_ExtractionFailed(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{resp: resp200(`<html><body>listing without a version token</body></html>`)}
	source := NewGetAppsSource(fetcher)

	_, err := source.Lookup(Request{Local: PackageInfo{PackageName: "com.example.app"}})
	require.ErrorIs(t, err, ErrExtractionFailed)
}

func TestGetAppsSource_MissingIdentifier(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	source := NewGetAppsSource(fetcher)

	_, err := source.Lookup(Request{})
	require.ErrorIs(t, err, ErrMissingIdentifier)
	require.Zero(t, fetcher.calls)
}
