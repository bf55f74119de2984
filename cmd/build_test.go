package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Bare output names must land in the configured output directory; the flag
// is not decorative.
func TestResolveOutputPath_BareNameUsesOutputDir(t *testing.T) {
	assert.Equal(t, filepath.Join("dist", "myapp"), resolveOutputPath("dist", "myapp"))
}

// An output name that already carries a path wins over the configured
// directory.
func TestResolveOutputPath_ExplicitPathKept(t *testing.T) {
	assert.Equal(t, "build/custom/myapp", resolveOutputPath("dist", "build/custom/myapp"))
	assert.Equal(t, "/tmp/myapp", resolveOutputPath("dist", "/tmp/myapp"))
}

func TestResolveOutputPath_EmptyOutputDir(t *testing.T) {
	assert.Equal(t, "myapp", resolveOutputPath("", "myapp"))
}
