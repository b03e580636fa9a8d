package assets

// AssetResolver layers a custom asset directory over the embedded assets.
// Only not-found errors fall through to the embedded copy; an unreadable or
// incomplete custom asset is reported as is.
type AssetResolver struct {
	custom   AssetLoader // nil without a custom directory
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// embedded assets only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

// LoadStyle loads a CSS style, custom directory first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return layered(r, name, AssetLoader.LoadStyle)
}

// LoadTemplateSet loads a template set, custom directory first.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return layered(r, name, AssetLoader.LoadTemplateSet)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

func layered[T any](r *AssetResolver, name string, load func(AssetLoader, string) (T, error)) (T, error) {
	if r.custom != nil {
		v, err := load(r.custom, name)
		if err == nil || !isNotFound(err) {
			return v, err
		}
	}
	return load(r.embedded, name)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
