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
	"net/url"
	"path"
	"strings"
)

// DefaultMediaFilename names an uploaded asset whose URL has no usable path
// segment.
const DefaultMediaFilename = "featured-image.jpg"

// contentTypes maps lowercase filename extensions to the MIME type sent with
// media uploads. Unknown extensions fall back to octet-stream; WordPress
// sniffs the real type server-side anyway.
var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"pdf":  "application/pdf",
}

// 🔍 ContentTypeForFilename returns the MIME type to send for a media upload,
// derived from the filename extension.
func ContentTypeForFilename(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// 🔍 FilenameFromURL extracts the final path segment of an asset URL for use
// as the uploaded filename. Query strings and fragments are discarded; URLs
// with no usable segment get DefaultMediaFilename.
func FilenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || strings.HasSuffix(u.Path, "/") {
		return DefaultMediaFilename
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return DefaultMediaFilename
	}
	return name
}
