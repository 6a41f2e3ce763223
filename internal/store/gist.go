package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"

	"github.com/dshills/trilex/internal/dictionary"
)

const defaultAPIURL = "https://api.github.com"

// GistOption configures a Gist store.
type GistOption func(*Gist)

// WithAPIURL overrides the GitHub API endpoint.
func WithAPIURL(u string) GistOption {
	return func(g *Gist) {
		if u != "" {
			g.apiURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) GistOption {
	return func(g *Gist) {
		if c != nil {
			g.httpClient = c
		}
	}
}

// Gist stores the dictionary files in a GitHub Gist.
type Gist struct {
	id         string
	apiURL     string
	httpClient *http.Client
	client     *github.Client
}

// NewGist creates a Gist store. The token needs the gist scope to save.
func NewGist(id, token string, opts ...GistOption) (*Gist, error) {
	if id == "" {
		return nil, &StoreError{Backend: "gist", Op: "open", Err: fmt.Errorf("%w: no gist id", ErrNotFound)}
	}
	g := &Gist{id: id, apiURL: defaultAPIURL}
	for _, opt := range opts {
		opt(g)
	}

	base, err := url.Parse(g.apiURL + "/")
	if err != nil {
		return nil, &StoreError{Backend: "gist", Op: "open", Err: fmt.Errorf("api url: %w", err)}
	}
	g.client = github.NewClient(g.httpClient)
	if token != "" {
		g.client = g.client.WithAuthToken(token)
	}
	g.client.BaseURL = base
	return g, nil
}

// Name implements Store.
func (g *Gist) Name() string {
	id := g.id
	if len(id) > 8 {
		id = id[:8]
	}
	return "gist:" + id
}

// Load implements Store. Files whose content is shorter than their
// reported size were truncated by the API and are fetched from their raw
// URL.
func (g *Gist) Load(ctx context.Context) (dictionary.Snapshot, error) {
	gist, _, err := g.client.Gists.Get(ctx, g.id)
	if err != nil {
		return dictionary.Snapshot{}, &StoreError{Backend: "gist", Op: "load", Err: githubError(err)}
	}

	files := make(map[string][]byte, len(Files))
	for _, name := range Files {
		f, ok := gist.Files[github.GistFilename(name)]
		if !ok {
			continue
		}
		content := f.GetContent()
		if f.GetSize() > len(content) && f.GetRawURL() != "" {
			raw, err := g.raw(ctx, f.GetRawURL())
			if err != nil {
				return dictionary.Snapshot{}, &StoreError{Backend: "gist", Op: "load " + name, Err: githubError(err)}
			}
			content = raw
		}
		files[name] = []byte(content)
	}

	snap, err := Decode(files)
	if err != nil {
		return dictionary.Snapshot{}, &StoreError{Backend: "gist", Op: "load", Err: err}
	}
	return snap, nil
}

// Save implements Store. All five files are replaced in one update.
func (g *Gist) Save(ctx context.Context, snap dictionary.Snapshot) error {
	encoded, err := Encode(snap)
	if err != nil {
		return &StoreError{Backend: "gist", Op: "save", Err: err}
	}

	files := make(map[github.GistFilename]github.GistFile, len(Files))
	for _, name := range Files {
		content := string(encoded[name])
		files[github.GistFilename(name)] = github.GistFile{Content: &content}
	}
	if _, _, err := g.client.Gists.Edit(ctx, g.id, &github.Gist{Files: files}); err != nil {
		return &StoreError{Backend: "gist", Op: "save", Err: githubError(err)}
	}
	return nil
}

// Close implements Store.
func (g *Gist) Close() error {
	return nil
}

func (g *Gist) raw(ctx context.Context, rawURL string) (string, error) {
	req, err := g.client.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := g.client.Do(ctx, req, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// githubError maps API failures onto the store sentinels.
func githubError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: %s", ErrRateLimited, rateErr.Message)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %s", ErrRateLimited, abuseErr.Message)
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrUnauthorized, respErr.Message)
		}
		msg := respErr.Message
		if msg == "" {
			msg = http.StatusText(respErr.Response.StatusCode)
		}
		return fmt.Errorf("github: %d %s", respErr.Response.StatusCode, msg)
	}
	return err
}
