package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IconConverter turns an image into a Windows .ico file. Implementations
// wrap external tooling; the build flow only depends on this port.
type IconConverter interface {
	Convert(srcPath, destPath string) error
}

// ResolveIcon prepares the icon referenced by a manifest for the Windows
// packager. An .ico passes through untouched; a .png is converted next to
// the original. If conversion fails the original path is returned so the
// build proceeds with the backend's own handling.
func ResolveIcon(converter IconConverter, iconPath string) (string, error) {
	if iconPath == "" {
		return "", nil
	}
	if _, err := os.Stat(iconPath); err != nil {
		return "", fmt.Errorf("icon not readable: %w", err)
	}

	if strings.EqualFold(filepath.Ext(iconPath), ".ico") {
		return iconPath, nil
	}

	if converter == nil {
		return iconPath, nil
	}

	destPath := strings.TrimSuffix(iconPath, filepath.Ext(iconPath)) + ".ico"
	if err := converter.Convert(iconPath, destPath); err != nil {
		return iconPath, nil
	}
	return destPath, nil
}
