package config

// Scan defaults
const (
	DefaultExtension = ".rs"
)

// DefaultIgnoreDirs returns the default directory-name denylist for
// discovery: build artifacts, test/example trees, vendored code and VCS
// metadata.
func DefaultIgnoreDirs() []string {
	return []string{"target", "tests", "examples", "benches", "docs", "vendor", ".git"}
}

// Verifier defaults
const (
	DefaultVerifierCommand = "verus"
	DefaultTimeoutSeconds  = 30
	DefaultConcurrency     = 1
)

// Output defaults
const (
	DefaultOutputDir    = "./extracted_snippets"
	DefaultManifestName = "manifest.jsonl"
)
