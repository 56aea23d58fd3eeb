package store

// Platform identifies the provider family that produced a record.
type Platform string

const (
	Android Platform = "android"
	IOS     Platform = "ios"
)

// PackageInfo describes the caller's running build as reported by its local
// package inspector. It is treated as authoritative and never re-validated.
type PackageInfo struct {
	PackageName string
	Version     string
}

// Request carries every identifier a source might need. Each source reads
// only the fields it understands and ignores the rest.
type Request struct {
	Local       PackageInfo
	PlayStoreID string
	AppleID     string
	BundleID    string
	Country     string
}

// VersionRecord is the immutable value returned to the caller. A record
// returned from a successful lookup always has StoreVersion and Platform
// populated; StoreURL is populated whenever the provider exposes one.
type VersionRecord struct {
	LocalVersion string   `json:"localVersion,omitempty"`
	StoreVersion string   `json:"storeVersion"`
	StoreURL     string   `json:"storeUrl,omitempty"`
	Platform     Platform `json:"platform"`
}

// Source is one provider's way of producing a VersionRecord. Each
// implementation owns its endpoint construction and response decoding; the
// resolver only decides which source to invoke and what to do on failure.
type Source interface {
	Name() string
	Lookup(req Request) (*VersionRecord, error)
}
