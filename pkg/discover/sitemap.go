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

package discover

import (
	"context"
	"encoding/xml"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jasonpoonia/wpmigrate/pkg/transport"
)

// wellKnownPaths are the sitemap locations WordPress sites expose, in probe
// order: classic plugins first, the core wp-sitemap layout after.
var wellKnownPaths = []string{
	"/sitemap.xml",
	"/wp-sitemap.xml",
	"/post-sitemap.xml",
	"/wp-sitemap-posts-post-1.xml",
}

func init() {
	for _, p := range wellKnownPaths {
		path := p
		Register(func(t *transport.Client) Strategy {
			return &SitemapStrategy{path: path, t: t}
		})
	}
}

// 🗺️ SitemapStrategy probes one well-known sitemap path. Index documents are
// walked one level deep into their post sitemaps.
type SitemapStrategy struct {
	path string
	t    *transport.Client
}

// 📝 Name identifies the strategy in logs
func (s *SitemapStrategy) Name() string {
	return "sitemap:" + s.path
}

// 🔍 Discover fetches and parses the sitemap at this strategy's path.
func (s *SitemapStrategy) Discover(ctx context.Context, site string) ([]string, bool) {
	return fetchSitemap(ctx, s.t, strings.TrimRight(site, "/")+s.path, true)
}

// urlset is a plain sitemap listing page URLs.
type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// sitemapIndex is a sitemap of sitemaps.
type sitemapIndex struct {
	XMLName  xml.Name `xml:"sitemapindex"`
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

// fetchSitemap fetches one sitemap document and returns the page URLs it
// lists. Index documents recurse exactly one level, and only into child
// sitemaps that look post-related; deeper nesting is not a layout WordPress
// produces.
func fetchSitemap(ctx context.Context, t *transport.Client, rawURL string, followIndex bool) ([]string, bool) {
	logger := zerolog.Ctx(ctx)

	data, err := t.Get(ctx, rawURL)
	if err != nil {
		logger.Debug().Str("url", rawURL).Err(err).Msg("sitemap fetch failed")
		return nil, false
	}

	// Plain sitemap: collect the page URLs.
	var us urlset
	if err := xml.Unmarshal(data, &us); err == nil {
		urls := make([]string, 0, len(us.URLs))
		for _, u := range us.URLs {
			loc := strings.TrimSpace(u.Loc)
			if loc != "" {
				urls = append(urls, loc)
			}
		}
		return urls, len(urls) > 0
	}

	// Sitemap index: walk into post sitemaps.
	var idx sitemapIndex
	if err := xml.Unmarshal(data, &idx); err != nil {
		logger.Debug().Str("url", rawURL).Err(err).Msg("sitemap is neither urlset nor index")
		return nil, false
	}
	if !followIndex {
		return nil, false
	}

	var merged []string
	for _, child := range idx.Sitemaps {
		loc := strings.TrimSpace(child.Loc)
		if loc == "" || !strings.Contains(loc, "post") {
			continue
		}
		urls, ok := fetchSitemap(ctx, t, loc, false)
		if !ok {
			continue
		}
		merged = append(merged, urls...)
	}
	return merged, len(merged) > 0
}
