package internal

// SearchOptions - per-run output options from CLI.
type SearchOptions struct {
	LineNumber bool // prefix records with 1-based line numbers
	Color      bool // highlight matched spans
	MaxCount   int  // global cap on emitted lines; negative means no cap
	SkipBinary bool // drop files whose prefix looks binary
	Archives   bool // descend into archive entries instead of sniffing them away
}

// TraversalSpec controls which files under a root are visited. One instance
// is built per invocation and shared read-only across all roots.
type TraversalSpec struct {
	Recursive      bool
	Hidden         bool     // include dotfiles
	RespectIgnores bool     // honor .gitignore/.ignore/exclude/global ignore files
	Globs          []string // override globs, "!" prefix excludes
}
