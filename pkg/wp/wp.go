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

// Package wp models the WordPress REST surface the migration touches: posts,
// embedded media, and the create payloads accepted by a destination site.
package wp

import (
	"fmt"
	"strings"
)

// 📝 Rendered is WordPress's {"rendered": "..."} wrapper around HTML fields.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// 🖼️ Media is an attachment as returned by the media endpoint or embedded
// under wp:featuredmedia.
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url,omitempty"`
	MimeType  string `json:"mime_type,omitempty"`
}

// 📦 Embedded carries the related resources returned when a post is fetched
// with _embed. Only featured media matters here.
type Embedded struct {
	FeaturedMedia []Media `json:"wp:featuredmedia,omitempty"`
}

// 📝 Post is a content item as the REST API returns it.
type Post struct {
	ID         int            `json:"id"`
	Date       string         `json:"date,omitempty"`
	Modified   string         `json:"modified,omitempty"`
	Slug       string         `json:"slug"`
	Status     string         `json:"status,omitempty"`
	Link       string         `json:"link,omitempty"`
	Title      Rendered       `json:"title"`
	Content    Rendered       `json:"content"`
	Excerpt    Rendered       `json:"excerpt"`
	Categories []int          `json:"categories,omitempty"`
	Tags       []int          `json:"tags,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
	Embedded   *Embedded      `json:"_embedded,omitempty"`
}

// 🔍 Ref returns a short human-readable handle for logs: the slug when there
// is one, otherwise the numeric ID.
func (p *Post) Ref() string {
	if p.Slug != "" {
		return p.Slug
	}
	return fmt.Sprintf("#%d", p.ID)
}

// 🔍 FeaturedMediaURL returns the source URL of the first embedded featured
// media entry, or "" when the post has none.
func (p *Post) FeaturedMediaURL() string {
	if p.Embedded == nil || len(p.Embedded.FeaturedMedia) == 0 {
		return ""
	}
	return p.Embedded.FeaturedMedia[0].SourceURL
}

// 📤 NewPost is the create payload for the destination's posts endpoint.
// Title, content and excerpt are plain strings here; WordPress wraps them in
// Rendered only on the way out.
type NewPost struct {
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	Excerpt    string         `json:"excerpt"`
	Status     string         `json:"status"`
	Slug       string         `json:"slug"`
	Categories []int          `json:"categories,omitempty"`
	Tags       []int          `json:"tags,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
	Date       string         `json:"date,omitempty"`
	Modified   string         `json:"modified,omitempty"`
}

// 🏭 FromPost flattens a fetched post into a create payload. The payload is
// always published regardless of what the source said; drafts never make it
// into the enumeration in the first place.
func FromPost(p *Post) NewPost {
	return NewPost{
		Title:      p.Title.Rendered,
		Content:    p.Content.Rendered,
		Excerpt:    p.Excerpt.Rendered,
		Status:     "publish",
		Slug:       p.Slug,
		Categories: p.Categories,
		Tags:       p.Tags,
		Meta:       p.Meta,
		Date:       p.Date,
		Modified:   p.Modified,
	}
}

// endpoint joins a site base URL with a path under /wp-json/wp/v2/.
func endpoint(base, path string) string {
	return strings.TrimRight(base, "/") + "/wp-json/wp/v2/" + path
}
