package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codevault/lw-compiler/constants/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file
type Config struct {
	Version             string               `mapstructure:"version"`
	Theme               string               `mapstructure:"theme"`
	PresetsPath         string               `mapstructure:"presets_path"`
	OutputDir           string               `mapstructure:"output_dir"`
	DefaultMode         string               `mapstructure:"default_mode"`
	LicenseServerConfig *LicenseServerConfig `mapstructure:"license_server_config"`
}

// LicenseServerConfig holds the license server connection settings.
type LicenseServerConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Product string `mapstructure:"product"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:     "1.2.0",
	Theme:       "dracula",
	PresetsPath: defaultPresetsPath(),
	OutputDir:   "dist",
	DefaultMode: "generic",
	LicenseServerConfig: &LicenseServerConfig{
		BaseURL: "http://localhost:8721/api",
		Product: "",
	},
}

func defaultPresetsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "presets.json"
	}
	return filepath.Join(home, ".lw-compiler", "presets.json")
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		// Use the config file from the flag
		viper.SetConfigFile(cfgFile)
		if configType := GetConfigFileType(cfgFile); configType != "" {
			viper.SetConfigType(configType)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("lw-config") // Name of config file (without extension)
		viper.AddConfigPath(cwd)         // Look in the current working directory

		// Support both JSON and YAML formats
		viper.SetConfigType("yaml") // Set default type
		if err := viper.ReadInConfig(); err != nil {
			// If YAML fails, try JSON
			viper.SetConfigType("json")
			_ = viper.ReadInConfig() // Fall back to defaults when neither exists
		}
	}

	// Read the explicitly specified config file (if any)
	if cfgFile != "" {
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("presets_path", DefaultConfig.PresetsPath)
	viper.SetDefault("output_dir", DefaultConfig.OutputDir)
	viper.SetDefault("default_mode", DefaultConfig.DefaultMode)
	viper.SetDefault("license_server_config.base_url", DefaultConfig.LicenseServerConfig.BaseURL)
	viper.SetDefault("license_server_config.product", DefaultConfig.LicenseServerConfig.Product)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "THEME")
	_ = viper.BindEnv("presets_path", "PRESETS_PATH")
	_ = viper.BindEnv("output_dir", "OUTPUT_DIR")
	_ = viper.BindEnv("default_mode", "DEFAULT_MODE")
	_ = viper.BindEnv("license_server_config.base_url", "LICENSE_SERVER_URL")
	_ = viper.BindEnv("license_server_config.product", "LICENSE_PRODUCT")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("presets_path", rootCmd.PersistentFlags().Lookup("presets_path"))
	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output_dir"))
	_ = viper.BindPFlag("default_mode", rootCmd.PersistentFlags().Lookup("default_mode"))
	_ = viper.BindPFlag("license_server_config.base_url", rootCmd.PersistentFlags().Lookup("license_server_url"))
	_ = viper.BindPFlag("license_server_config.product", rootCmd.PersistentFlags().Lookup("license_product"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	// Theme configuration
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set customize theme for rendering build manifests. (e.g., 'dracula', 'light', 'dark')")

	// Preset store location
	rootCmd.PersistentFlags().String("presets_path", DefaultConfig.PresetsPath, "Path of the JSON file holding saved build presets.")

	// Output directory for packaged executables
	rootCmd.PersistentFlags().String("output_dir", DefaultConfig.OutputDir, "Directory the packaged executable is written to.")

	// Default protection mode for new drafts
	rootCmd.PersistentFlags().String("default_mode", DefaultConfig.DefaultMode, "Protection mode new build drafts start in ('generic', 'demo' or 'none').")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")

	// License server configuration
	rootCmd.PersistentFlags().String("license_server_url", DefaultConfig.LicenseServerConfig.BaseURL, "The base URL of the license server used by generic-protection builds.")
	rootCmd.PersistentFlags().String("license_product", DefaultConfig.LicenseServerConfig.Product, "Product identifier sent to the license server when issuing keys.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
