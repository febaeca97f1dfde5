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
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"gitlab.com/tozd/go/errors"

	"github.com/jasonpoonia/wpmigrate/pkg/transport"
)

// ✍️ Destination writes content to the target site. The transport it is
// built with must already carry the application-password credentials.
type Destination struct {
	base string
	t    *transport.Client
}

// 🏭 NewDestination creates a writer for the site at baseURL.
func NewDestination(baseURL string, t *transport.Client) *Destination {
	return &Destination{base: baseURL, t: t}
}

// BaseURL returns the site base the writer was built with.
func (d *Destination) BaseURL() string {
	return d.base
}

// ✍️ CreatePost creates a post and returns the stored record, including the
// ID needed to attach media afterwards.
func (d *Destination) CreatePost(ctx context.Context, np NewPost) (*Post, error) {
	var created Post
	err := d.t.PostJSON(ctx, endpoint(d.base, "posts"), np, &created)
	if err != nil {
		return nil, errors.Errorf("creating post %q: %w", np.Slug, err)
	}
	return &created, nil
}

// 📤 UploadMedia uploads raw asset bytes to the media library. The content
// type is derived from the filename; WordPress requires the disposition
// header to accept a sideloaded file.
func (d *Destination) UploadMedia(ctx context.Context, filename string, data []byte) (*Media, error) {
	header := http.Header{}
	header.Set("Content-Type", ContentTypeForFilename(filename))
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	resp, err := d.t.Do(ctx, http.MethodPost, endpoint(d.base, "media"), data, header)
	if err != nil {
		return nil, errors.Errorf("uploading media %q: %w", filename, err)
	}
	defer resp.Body.Close()

	var media Media
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		return nil, errors.Errorf("decoding media response: %w", err)
	}
	return &media, nil
}

// 🔗 SetFeaturedMedia attaches an uploaded media item to a post.
func (d *Destination) SetFeaturedMedia(ctx context.Context, postID, mediaID int) error {
	body := map[string]int{"featured_media": mediaID}
	err := d.t.PostJSON(ctx, endpoint(d.base, "posts/"+strconv.Itoa(postID)), body, nil)
	if err != nil {
		return errors.Errorf("attaching media %d to post %d: %w", mediaID, postID, err)
	}
	return nil
}
