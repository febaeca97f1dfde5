package migrate

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/jasonpoonia/wpmigrate/pkg/wp"
)

// 🔍 Resolver turns a discovered page URL into the full content record behind
// it, embedded media included.
type Resolver struct {
	Source *wp.Source
}

// Resolve maps a URL to its post. Query-style permalinks (?p=ID) resolve by
// ID; everything else resolves by the final path segment as a slug, in two
// steps so the full record always arrives with embedded media. A (nil, nil)
// return means the URL has no identifiable post behind it and the item should
// be skipped rather than failed.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*wp.Post, error) {
	logger := zerolog.Ctx(ctx)

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Errorf("parsing item url %q: %w", rawURL, err)
	}

	// Query-style permalink: /?p=42
	if idStr := u.Query().Get("p"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			logger.Warn().Str("url", rawURL).Msg("permalink id is not numeric")
			return nil, nil
		}
		post, err := r.Source.GetPost(ctx, id)
		if err != nil {
			return nil, errors.Errorf("resolving id %d: %w", id, err)
		}
		return post, nil
	}

	slug := lastPathSegment(u.Path)
	if slug == "" {
		logger.Warn().Str("url", rawURL).Msg("url has no slug to resolve")
		return nil, nil
	}

	listed, err := r.Source.FirstPostBySlug(ctx, slug)
	if err != nil {
		return nil, errors.Errorf("resolving slug %q: %w", slug, err)
	}
	if listed == nil {
		logger.Warn().Str("slug", slug).Msg("no post found for slug")
		return nil, nil
	}

	// Refetch by ID so the record carries its embedded media.
	post, err := r.Source.GetPost(ctx, listed.ID)
	if err != nil {
		return nil, errors.Errorf("fetching resolved post %d: %w", listed.ID, err)
	}
	return post, nil
}

// lastPathSegment returns the final non-empty path segment.
func lastPathSegment(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
