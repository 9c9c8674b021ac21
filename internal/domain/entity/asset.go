package entity

// AssetRef identifies an uploaded file. It is stored relative to the site
// root (for example "/uploads/thumbnail-1700000000-123.png") and resolved to
// an absolute URL per request. External absolute URLs are kept verbatim.
type AssetRef string

func (a AssetRef) String() string { return string(a) }

func (a AssetRef) IsZero() bool { return a == "" }

// AssetMapper rewrites a single asset reference.
type AssetMapper func(AssetRef) AssetRef

// AssetCarrier is implemented by every type embedding asset references, at
// any depth. MapAssets must apply fn to each AssetRef it owns and recurse into
// nested carriers.
type AssetCarrier interface {
	MapAssets(fn AssetMapper)
}
