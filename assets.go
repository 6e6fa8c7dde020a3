package pagedoc

import (
	"errors"
	"fmt"

	"github.com/alnah/go-pagedoc/internal/assets"
)

// Built-in asset names.
const (
	// DefaultStyle is the base typography applied inside every page.
	DefaultStyle = assets.DefaultStyleName

	// DefaultScript is the preview scale controller.
	DefaultScript = assets.DefaultScriptName
)

// AssetLoader loads CSS styles and scripts by name (without extension).
// Implementations may load from the filesystem, embedded assets or any
// other store.
type AssetLoader interface {
	// LoadStyle returns ErrStyleNotFound if the style does not exist.
	LoadStyle(name string) (string, error)

	// LoadScript returns ErrScriptNotFound if the script does not exist.
	LoadScript(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for basePath. An empty basePath
// uses only embedded assets; otherwise files in basePath/styles and
// basePath/scripts take precedence over the embedded ones.
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter maps internal asset errors to public sentinels.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadScript(name string) (string, error) {
	content, err := a.resolver.LoadScript(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

var _ AssetLoader = (*assetLoaderAdapter)(nil)

// convertAssetError maps internal asset errors to public sentinel errors.
func convertAssetError(err error) error {
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return fmt.Errorf("%w: %v", ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrScriptNotFound):
		return fmt.Errorf("%w: %v", ErrScriptNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrInvalidAssetName),
		errors.Is(err, assets.ErrPathTraversal):
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	default:
		return err
	}
}
