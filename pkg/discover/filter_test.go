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

package discover_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jasonpoonia/wpmigrate/pkg/discover"
)

func TestMatcher_IsContent(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{
			name: "posts_path",
			url:  "https://src.example.com/posts/hello-world",
			want: true,
		},
		{
			name: "query_permalink",
			url:  "https://src.example.com/?p=42",
			want: true,
		},
		{
			name: "blog_path",
			url:  "https://src.example.com/blog/hello-world",
			want: true,
		},
		{
			name: "static_page",
			url:  "https://src.example.com/about",
			want: false,
		},
		{
			name: "category_archive",
			url:  "https://src.example.com/category/news/",
			want: false,
		},
		{
			name: "bare_host",
			url:  "https://src.example.com/",
			want: false,
		},
	}

	m := discover.NewMatcher(nil, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.IsContent(tt.url))
		})
	}
}

func TestMatcher_Allowed(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		ref     string
		want    bool
	}{
		{
			name: "no_patterns_allows_everything",
			ref:  "https://src.example.com/posts/hello",
			want: true,
		},
		{
			name:    "exclude_matches_slug",
			exclude: []string{"*landing*"},
			ref:     "https://src.example.com/posts/spring-landing-page",
			want:    false,
		},
		{
			name:    "exclude_misses_slug",
			exclude: []string{"*landing*"},
			ref:     "https://src.example.com/posts/hello",
			want:    true,
		},
		{
			name:    "exclude_on_bare_slug",
			exclude: []string{"draft-*"},
			ref:     "draft-notes",
			want:    false,
		},
		{
			name:    "include_requires_match",
			include: []string{"hello*"},
			ref:     "https://src.example.com/posts/goodbye",
			want:    false,
		},
		{
			name:    "include_matches",
			include: []string{"hello*"},
			ref:     "https://src.example.com/posts/hello-world",
			want:    true,
		},
		{
			name:    "exclude_beats_include",
			include: []string{"hello*"},
			exclude: []string{"hello-secret"},
			ref:     "https://src.example.com/posts/hello-secret",
			want:    false,
		},
		{
			name:    "path_pattern_matches_whole_path",
			exclude: []string{"archive/**"},
			ref:     "https://src.example.com/archive/2019/old-post",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := discover.NewMatcher(tt.include, tt.exclude)
			assert.Equal(t, tt.want, m.Allowed(tt.ref))
		})
	}
}
