package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigFileName is the optional overlay file discovered next to the working directory.
const ConfigFileName = ".repodump.yaml"

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// LoadApplicationConfiguration returns the compiled-in defaults overlaid with
// an optional configuration file. An absent file yields the pure defaults, so
// a bare invocation behaves identically on every machine.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	merged := DefaultApplicationConfiguration()

	configPath, resolveError := resolveConfigPath(options.WorkingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if configPath == "" {
		return merged, nil
	}

	overlay, loadError := loadConfigurationFromPath(configPath)
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	return merged.Merge(overlay), nil
}

func resolveConfigPath(workingDirectory string, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolutePath, absoluteError := filepath.Abs(explicitPath)
			if absoluteError != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, absoluteError)
			}
			return absolutePath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var overlay ApplicationConfiguration
	if decodeError := reader.Unmarshal(&overlay); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return overlay, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
// Non-empty lists in the override replace the corresponding default list wholesale.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Filter = result.Filter.merge(override.Filter)
	result.Output = result.Output.merge(override.Output)
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (configuration FilterConfiguration) merge(override FilterConfiguration) FilterConfiguration {
	result := configuration
	if len(override.ExcludedDirectoryNames) > 0 {
		result.ExcludedDirectoryNames = copyStrings(override.ExcludedDirectoryNames)
	}
	if len(override.IncludedFileNames) > 0 {
		result.IncludedFileNames = copyStrings(override.IncludedFileNames)
	}
	if len(override.IncludedExtensions) > 0 {
		result.IncludedExtensions = copyStrings(override.IncludedExtensions)
	}
	if len(override.ConfigNameFragments) > 0 {
		result.ConfigNameFragments = copyStrings(override.ConfigNameFragments)
	}
	return result
}

func (configuration OutputConfiguration) merge(override OutputConfiguration) OutputConfiguration {
	result := configuration
	if override.FileName != "" {
		result.FileName = override.FileName
	}
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		enabled := *override.Enabled
		result.Enabled = &enabled
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}
