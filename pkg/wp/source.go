// Copyright 2025 Jason Poonia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wp

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/jasonpoonia/wpmigrate/pkg/transport"
)

// ErrPageOutOfRange reports that the source rejected a page number past the
// end of its collection. WordPress signals this with HTTP 400 rather than an
// empty list.
var ErrPageOutOfRange = errors.New("page out of range")

// 📖 Source reads published content from the origin site. It never
// authenticates; everything it touches is public.
type Source struct {
	base string
	t    *transport.Client
}

// 🏭 NewSource creates a reader for the site at baseURL.
func NewSource(baseURL string, t *transport.Client) *Source {
	return &Source{base: baseURL, t: t}
}

// BaseURL returns the site base the reader was built with.
func (s *Source) BaseURL() string {
	return s.base
}

// 📖 ListPosts fetches one page of published posts with embedded media.
// Paging past the end returns ErrPageOutOfRange.
func (s *Source) ListPosts(ctx context.Context, page, perPage int) ([]Post, error) {
	query := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
		"status":   {"publish"},
		"_embed":   {"1"},
	}

	var posts []Post
	err := s.t.GetJSON(ctx, endpoint(s.base, "posts"), query, &posts)
	if err != nil {
		if transport.IsStatus(err, http.StatusBadRequest) {
			return nil, ErrPageOutOfRange
		}
		return nil, errors.Errorf("listing posts page %d: %w", page, err)
	}

	zerolog.Ctx(ctx).Debug().
		Int("page", page).
		Int("count", len(posts)).
		Msg("fetched post listing page")

	return posts, nil
}

// 🔍 FirstPostBySlug returns the first post matching slug, or nil when the
// source has none. The result is a listing row; fetch the full record with
// GetPost before transferring it.
func (s *Source) FirstPostBySlug(ctx context.Context, slug string) (*Post, error) {
	var posts []Post
	err := s.t.GetJSON(ctx, endpoint(s.base, "posts"), url.Values{"slug": {slug}}, &posts)
	if err != nil {
		return nil, errors.Errorf("querying slug %q: %w", slug, err)
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// 📖 GetPost fetches a single post by ID with embedded media.
func (s *Source) GetPost(ctx context.Context, id int) (*Post, error) {
	var post Post
	err := s.t.GetJSON(ctx, endpoint(s.base, "posts/"+strconv.Itoa(id)), url.Values{"_embed": {"1"}}, &post)
	if err != nil {
		return nil, errors.Errorf("fetching post %d: %w", id, err)
	}
	return &post, nil
}

// 📥 DownloadMedia fetches the raw bytes of an asset. The URL comes from the
// post's embedded media and may point at a CDN host rather than the site
// itself; it gets the same retry budget either way.
func (s *Source) DownloadMedia(ctx context.Context, rawURL string) ([]byte, error) {
	data, err := s.t.Get(ctx, rawURL)
	if err != nil {
		return nil, errors.Errorf("downloading media: %w", err)
	}
	return data, nil
}
