package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Default asset names.
const (
	DefaultStyleName  = "page"
	DefaultScriptName = "scale"
)

// AssetLoader loads stylesheets and scripts by name, without extension.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadScript(name string) (string, error)
}

// ValidateAssetName rejects empty names and names containing path separators
// or dots, so a name can never select another extension or directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrScriptNotFound)
}
