// Package snapshot keeps a publish history: every successful publish commits
// the fully rendered site into a local git repository, one directory per
// website. The history is an audit trail, not a serving path.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/observability"
)

const (
	authorName  = "sitebuilder"
	authorEmail = "publish@sitebuilder.invalid"
)

// History is a git-backed publish archive.
type History struct {
	path string
	repo *git.Repository
}

// Open opens or initializes the history repository at path.
func Open(path string) (*History, error) {
	repo, err := git.PlainOpen(path)
	if err == git.ErrRepositoryNotExists {
		if mkErr := os.MkdirAll(path, 0750); mkErr != nil {
			return nil, fmt.Errorf("create history directory: %w", mkErr)
		}
		repo, err = git.PlainInit(path, false)
	}
	if err != nil {
		return nil, fmt.Errorf("open history repository: %w", err)
	}
	return &History{path: path, repo: repo}, nil
}

// Record writes the rendered pages of one website into the work tree and
// commits them. pages maps page slug to rendered HTML; the homepage uses
// slug "index". Returns the commit hash.
func (h *History) Record(ctx context.Context, websiteID, address string, pages map[string]string) (string, error) {
	siteDir := filepath.Join(h.path, websiteID)
	if err := os.RemoveAll(siteDir); err != nil {
		return "", fmt.Errorf("clear site work tree: %w", err)
	}
	if err := os.MkdirAll(siteDir, 0750); err != nil {
		return "", fmt.Errorf("create site work tree: %w", err)
	}

	for slug, html := range pages {
		name := pageFileName(slug)
		if name == "" {
			return "", fmt.Errorf("unusable page slug %q", slug)
		}
		if err := os.WriteFile(filepath.Join(siteDir, name), []byte(html), 0600); err != nil {
			return "", fmt.Errorf("write page %s: %w", slug, err)
		}
	}

	wt, err := h.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open work tree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("stage site: %w", err)
	}

	msg := fmt.Sprintf("publish %s -> %s", websiteID, address)
	hash, err := wt.Commit(msg, &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("commit snapshot: %w", err)
	}

	observability.InfoContext(ctx, "publish snapshot recorded",
		logfields.WebsiteID(websiteID), logfields.Domain(address))
	return hash.String(), nil
}

// Entry is one publish event in a website's history.
type Entry struct {
	Hash    string
	Address string
	When    time.Time
}

// Log returns the publish history of a website, newest first.
func (h *History) Log(websiteID string) ([]Entry, error) {
	iter, err := h.repo.Log(&git.LogOptions{})
	if err != nil {
		if err == git.ErrRepositoryNotExists || strings.Contains(err.Error(), "reference not found") {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer iter.Close()

	prefix := "publish " + websiteID + " -> "
	var entries []Entry
	err = iter.ForEach(func(c *object.Commit) error {
		msg := strings.TrimSpace(c.Message)
		if !strings.HasPrefix(msg, prefix) {
			return nil
		}
		entries = append(entries, Entry{
			Hash:    c.Hash.String(),
			Address: strings.TrimPrefix(msg, prefix),
			When:    c.Author.When,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk history: %w", err)
	}
	return entries, nil
}

// pageFileName maps a page slug to a flat file name inside the site
// directory. Path separators are rejected rather than escaped.
func pageFileName(slug string) string {
	if slug == "" || strings.ContainsAny(slug, "/\\") || strings.HasPrefix(slug, ".") {
		return ""
	}
	return slug + ".html"
}
