package resolver

import (
	"fmt"
	"log"
	"strings"

	"github.com/rodrigopv/vercheck/internal/fetch"
	"github.com/rodrigopv/vercheck/internal/store"
)

// DeviceClassifier supplies a lowercase device manufacturer string. It is a
// routing signal only; the resolver tests it for known OEM substrings and
// nothing else.
type DeviceClassifier interface {
	Manufacturer() (string, error)
}

// StaticClassifier is a DeviceClassifier with a fixed answer, for callers
// that already know the manufacturer (CLI flag, host app).
type StaticClassifier string

// Manufacturer implements the DeviceClassifier interface.
func (c StaticClassifier) Manufacturer() (string, error) {
	return strings.ToLower(strings.TrimSpace(string(c))), nil
}

// oemManufacturers lists the manufacturer substrings whose devices ship the
// GetApps store as primary.
var oemManufacturers = []string{"xiaomi", "redmi", "poco"}

// Resolver dispatches a resolution to the right store source per platform
// and owns the single-level OEM fallback. It holds no state across calls.
type Resolver struct {
	play       store.Source
	appStore   store.Source
	oem        store.Source
	classifier DeviceClassifier
}

// New creates a Resolver with the standard three sources on top of the
// given fetcher. A nil classifier routes all Android lookups to the
// canonical store.
func New(fetcher fetch.Fetcher, classifier DeviceClassifier) *Resolver {
	return &Resolver{
		play:       store.NewPlaySource(fetcher),
		appStore:   store.NewAppStoreSource(fetcher),
		oem:        store.NewGetAppsSource(fetcher),
		classifier: classifier,
	}
}

// Resolve produces the published VersionRecord for the platform.
//
// iOS goes straight to the app store source and any failure propagates
// unchanged. Android consults the device classifier first: OEM-family
// devices attempt the OEM store and fall back exactly once to the canonical
// store on any failure; everything else goes to the canonical store
// directly. Unrecognized platforms fail with store.ErrUnsupportedPlatform
// before any network call.
func (r *Resolver) Resolve(platform store.Platform, req store.Request) (*store.VersionRecord, error) {
	switch platform {
	case store.IOS:
		return r.appStore.Lookup(req)
	case store.Android:
		if r.isOEMDevice() {
			record, err := r.oem.Lookup(req)
			if err == nil {
				return record, nil
			}
			log.Printf("resolver: %s lookup failed, falling back to %s: %v", r.oem.Name(), r.play.Name(), err)
		}
		return r.play.Lookup(req)
	default:
		return nil, fmt.Errorf("resolver: platform %q: %w", platform, store.ErrUnsupportedPlatform)
	}
}

// isOEMDevice asks the classifier once per call. Classification failures
// count as "not OEM" rather than failing the resolution.
func (r *Resolver) isOEMDevice() bool {
	if r.classifier == nil {
		return false
	}
	manufacturer, err := r.classifier.Manufacturer()
	if err != nil {
		log.Printf("resolver: device classification failed, using canonical store: %v", err)
		return false
	}
	for _, oem := range oemManufacturers {
		if strings.Contains(manufacturer, oem) {
			return true
		}
	}
	return false
}
