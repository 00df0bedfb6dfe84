package internal

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/sirupsen/logrus"
)

// ignoreChain is an ordered list of ignore-file matchers. Later entries
// (deeper in the tree) override earlier ones, mirroring git's precedence.
type ignoreChain []gitignore.GitIgnore

// Ignored reports whether abs is excluded by the chain. The last matcher
// with an opinion wins, so a deeper negation can re-include a path.
func (c ignoreChain) Ignored(abs string) bool {
	ignored := false
	for _, gi := range c {
		if m := gi.Match(abs); m != nil {
			ignored = m.Ignore()
		}
	}
	return ignored
}

// buildIgnoreChain assembles the standard ignore-file lookups for a root:
// the global git ignore file, .gitignore files inherited from ancestor
// directories (outermost first), the repository exclude file, then the
// in-tree .gitignore and .ignore repositories.
func buildIgnoreChain(root string) ignoreChain {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil
	}

	var chain ignoreChain

	if f, err := os.Open(globalIgnorePath()); err == nil {
		chain = append(chain, gitignore.New(f, abs, nil))
		f.Close()
	}

	var ancestors []string
	for dir := filepath.Dir(abs); ; dir = filepath.Dir(dir) {
		ancestors = append(ancestors, dir)
		if dir == filepath.Dir(dir) {
			break
		}
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if gi, err := gitignore.NewFromFile(filepath.Join(ancestors[i], ".gitignore")); err == nil {
			chain = append(chain, gi)
		}
	}

	if f, err := os.Open(filepath.Join(abs, ".git", "info", "exclude")); err == nil {
		chain = append(chain, gitignore.New(f, abs, nil))
		f.Close()
	}

	if gi, err := gitignore.NewRepository(abs); err == nil {
		chain = append(chain, gi)
	}
	if gi, err := gitignore.NewRepositoryWithFile(abs, ".ignore"); err == nil {
		chain = append(chain, gi)
	}

	return chain
}

func globalIgnorePath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git", "ignore")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "git", "ignore")
}

func hiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Walk traverses the subtree under root and calls visit for every eligible
// regular file, in lexical order. Eligibility is a short-circuit predicate
// chain: hidden filter, ignore-file chain, glob overrides. Per-entry
// traversal errors are logged and do not abort sibling entries. An error
// returned by visit aborts the walk and is propagated unchanged.
func Walk(root string, spec TraversalSpec, ov *Overrides, visit func(path string) error) error {
	var chain ignoreChain
	if spec.RespectIgnores {
		chain = buildIgnoreChain(root)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			logrus.WithFields(logrus.Fields{"path": path, "err": err}).Warn("cannot traverse")
			if d != nil && d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if !spec.Hidden && hiddenName(d.Name()) {
			if d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if len(chain) > 0 && chain.Ignored(filepath.Join(absRoot, rel)) {
			if d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		// Symlinks and special files are never search targets.
		if !d.Type().IsRegular() {
			return nil
		}
		if !ov.Admit(filepath.ToSlash(rel)) {
			return nil
		}
		return visit(path)
	})
}
