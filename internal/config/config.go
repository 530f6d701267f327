// Package config defines the selection rules and output settings applied during a dump run.
package config

// DefaultOutputFileName is the fixed name of the generated document.
const DefaultOutputFileName = "codebase_dump.txt"

// FilterConfiguration holds the immutable selection tables consulted by the
// directory filter and the file selector. Values are fixed for the duration
// of a run; an optional configuration file may overlay the defaults before
// the run starts.
type FilterConfiguration struct {
	ExcludedDirectoryNames []string `mapstructure:"excluded_directories"`
	IncludedFileNames      []string `mapstructure:"included_filenames"`
	IncludedExtensions     []string `mapstructure:"included_extensions"`
	ConfigNameFragments    []string `mapstructure:"config_fragments"`
}

// OutputConfiguration controls where the generated document is written.
type OutputConfiguration struct {
	FileName string `mapstructure:"filename"`
}

// TokenConfiguration controls token counting defaults for the run summary.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// ApplicationConfiguration aggregates every tunable of the dump tool.
type ApplicationConfiguration struct {
	Filter FilterConfiguration `mapstructure:"filter"`
	Output OutputConfiguration `mapstructure:"output"`
	Tokens TokenConfiguration  `mapstructure:"tokens"`
}

// DefaultFilterConfiguration returns the compiled-in selection tables.
// The returned slices are fresh copies so callers cannot mutate the defaults.
func DefaultFilterConfiguration() FilterConfiguration {
	return FilterConfiguration{
		ExcludedDirectoryNames: copyStrings(defaultExcludedDirectoryNames),
		IncludedFileNames:      copyStrings(defaultIncludedFileNames),
		IncludedExtensions:     copyStrings(defaultIncludedExtensions),
		ConfigNameFragments:    copyStrings(defaultConfigNameFragments),
	}
}

// DefaultApplicationConfiguration returns the full compiled-in configuration.
func DefaultApplicationConfiguration() ApplicationConfiguration {
	return ApplicationConfiguration{
		Filter: DefaultFilterConfiguration(),
		Output: OutputConfiguration{FileName: DefaultOutputFileName},
		Tokens: TokenConfiguration{Model: defaultTokenizerModel},
	}
}

const defaultTokenizerModel = "gpt-4o"

var defaultExcludedDirectoryNames = []string{
	".git",
	".svn",
	".hg",
	".idea",
	".vscode",
	"node_modules",
	"vendor",
	"bower_components",
	"dist",
	"build",
	"out",
	"target",
	"bin",
	"obj",
	".next",
	".nuxt",
	".cache",
	"coverage",
	"__pycache__",
	".pytest_cache",
	".mypy_cache",
	"venv",
	".venv",
	"env",
	"logs",
	"log",
	"tmp",
	"temp",
}

var defaultIncludedFileNames = []string{
	"Dockerfile",
	"Makefile",
	"Jenkinsfile",
	"Procfile",
	"Rakefile",
	"Gemfile",
	".gitignore",
	".gitattributes",
	".editorconfig",
	".dockerignore",
	".npmrc",
	".nvmrc",
	".babelrc",
	".prettierrc",
	".eslintrc",
	".env",
	"LICENSE",
	"README",
}

var defaultIncludedExtensions = []string{
	".go", ".py", ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs",
	".rb", ".php", ".java", ".kt", ".c", ".h", ".cpp", ".hpp",
	".cs", ".rs", ".swift", ".scala", ".sh", ".bash", ".ps1",
	".sql", ".pl", ".lua", ".r", ".dart", ".vue", ".svelte",
	".html", ".htm", ".css", ".scss", ".less", ".xml", ".svg",
	".json", ".yaml", ".yml", ".toml", ".ini", ".cfg", ".conf",
	".env", ".properties", ".graphql", ".proto",
	".md", ".markdown", ".rst", ".txt", ".adoc",
}

var defaultConfigNameFragments = []string{
	".config.",
	"config.",
}

func copyStrings(values []string) []string {
	copied := make([]string, len(values))
	copy(copied, values)
	return copied
}
