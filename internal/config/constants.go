package config

// SourceFileExt is the extension of Python source modules.
const SourceFileExt = ".py"

// PackageInitFile is the file that backs a dotted path naming a package.
const PackageInitFile = "__init__.py"

// ConfigFileNames are the config file names looked up by FindConfig.
var ConfigFileNames = []string{"diffconv.yaml", "diffconv.yml"}

// Defaults for the rename pass and import recognition.
const (
	DefaultOldToken     = "llama"
	DefaultNewToken     = "gemma"
	DefaultSourceMarker = "modeling_"
	DefaultIndexCache   = 256
)

// Environment overrides.
const (
	EnvModulePath   = "DIFFCONV_MODULE_PATH"
	EnvSourceMarker = "DIFFCONV_SOURCE_MARKER"
)

// SuperFuncName is the parent-delegation builtin rewritten after a merge.
const SuperFuncName = "super"

// PlaceholderFormat is the text embedded for an external module that could
// not be found.
const PlaceholderFormat = "# Module %s not found"
