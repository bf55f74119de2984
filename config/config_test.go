package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The explicit --config path must map to the matching viper config type.
func TestGetConfigFileType(t *testing.T) {
	assert.Equal(t, "json", GetConfigFileType("lw-config.json"))
	assert.Equal(t, "yaml", GetConfigFileType("lw-config.yaml"))
	assert.Equal(t, "yaml", GetConfigFileType("lw-config.yml"))
	assert.Equal(t, "", GetConfigFileType("lw-config.toml"))
	assert.Equal(t, "", GetConfigFileType("lw-config"))
}
