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
	"net/url"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// contentMarkers are the URL fragments that mark a page as a content item
// rather than an archive, category, or static page.
var contentMarkers = []string{"/posts/", "/?p=", "/blog/"}

// 🔍 Matcher decides which discovered URLs and slugs take part in a run.
// The content-path heuristic applies to index URLs only; the include and
// exclude globs apply to everything the run touches.
type Matcher struct {
	include []string
	exclude []string
}

// 🏭 NewMatcher creates a matcher over include and exclude glob patterns.
// Patterns without a slash match the final path segment (the slug); patterns
// with a slash match the whole path.
func NewMatcher(include, exclude []string) *Matcher {
	return &Matcher{include: include, exclude: exclude}
}

// 🔍 IsContent reports whether a URL looks like a content item.
func (m *Matcher) IsContent(rawURL string) bool {
	for _, marker := range contentMarkers {
		if strings.Contains(rawURL, marker) {
			return true
		}
	}
	return false
}

// 🔍 Allowed applies the include/exclude globs to a URL or bare slug.
func (m *Matcher) Allowed(ref string) bool {
	for _, pattern := range m.exclude {
		if m.matches(pattern, ref) {
			return false
		}
	}
	if len(m.include) == 0 {
		return true
	}
	for _, pattern := range m.include {
		if m.matches(pattern, ref) {
			return true
		}
	}
	return false
}

// 🔍 Match combines the content heuristic with the configured globs.
func (m *Matcher) Match(rawURL string) bool {
	return m.IsContent(rawURL) && m.Allowed(rawURL)
}

func (m *Matcher) matches(pattern, ref string) bool {
	target := ref
	if strings.Contains(ref, "://") {
		if u, err := url.Parse(ref); err == nil {
			target = strings.Trim(u.Path, "/")
		}
	}
	if !strings.Contains(pattern, "/") && target != "" {
		target = path.Base(target)
	}

	ok, err := doublestar.Match(pattern, target)
	return err == nil && ok
}
