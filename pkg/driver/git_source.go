package driver

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitSource reads Python files from a commit instead of the working tree.
type GitSource struct {
	repo *git.Repository
	root string
}

// OpenGitSource opens the repository containing path.
func OpenGitSource(path string) (*GitSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("git: resolve %s: %w", path, err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("git: open %s: %w", abs, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("git: worktree: %w", err)
	}
	root, err := filepath.Abs(worktree.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("git: resolve worktree root: %w", err)
	}
	return &GitSource{repo: repo, root: root}, nil
}

// Root returns the absolute worktree directory.
func (g *GitSource) Root() string {
	return g.root
}

// Resolve turns a revision expression (branch, tag, hash, HEAD~1) into a commit hash.
func (g *GitSource) Resolve(rev string) (plumbing.Hash, error) {
	rev = strings.TrimSpace(rev)
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := g.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("git: resolve revision %s: %w", rev, err)
	}
	return *hash, nil
}

// Files returns the Python sources committed at rev that fall under cfg's
// include roots and are not excluded. Paths are absolute, rooted at the worktree.
func (g *GitSource) Files(rev string, cfg *Config) ([]RawFile, plumbing.Hash, error) {
	hash, err := g.Resolve(rev)
	if err != nil {
		return nil, plumbing.ZeroHash, err
	}
	commit, err := g.repo.CommitObject(hash)
	if err != nil {
		return nil, hash, fmt.Errorf("git: commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, hash, fmt.Errorf("git: tree %s: %w", hash, err)
	}

	includes := cfg.IncludeRoots()
	var files []RawFile
	err = tree.Files().ForEach(func(f *object.File) error {
		if f.Mode != filemode.Regular && f.Mode != filemode.Executable {
			return nil
		}
		if !IsPythonSource(f.Name) {
			return nil
		}
		path := filepath.Join(g.root, filepath.FromSlash(f.Name))
		if !underAny(path, includes) {
			return nil
		}
		rel, err := filepath.Rel(cfg.Root, path)
		if err == nil && cfg.Excluded(rel) {
			return nil
		}
		contents, err := f.Contents()
		if err != nil {
			return fmt.Errorf("git: read %s: %w", f.Name, err)
		}
		files = append(files, RawFile{Path: path, Source: []byte(contents)})
		return nil
	})
	if err != nil {
		return nil, hash, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, hash, nil
}

func underAny(path string, roots []string) bool {
	for _, root := range roots {
		if path == root {
			return true
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
