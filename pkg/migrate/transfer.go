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

package migrate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jasonpoonia/wpmigrate/pkg/text"
	"github.com/jasonpoonia/wpmigrate/pkg/wp"
)

// 📦 TransferResult captures what one item transfer produced on the
// destination.
type TransferResult struct {
	Post         *wp.Post
	MediaID      int
	MediaLinked  bool
	Replacements int
}

// 🚛 Engine transfers a single resolved post to the destination: create the
// post first, then carry its featured media over. Media failures degrade the
// item, they never undo the created post.
type Engine struct {
	Source   *wp.Source
	Dest     *wp.Destination
	Rewriter *text.Rewriter
}

// Transfer creates post on the destination and mirrors its featured media.
// A create failure is fatal for the item and returns a *CreateError. Media
// failures after that point are logged and reflected in the result, because
// the post already exists and must be counted as transferred.
func (e *Engine) Transfer(ctx context.Context, post *wp.Post) (*TransferResult, error) {
	logger := zerolog.Ctx(ctx)

	payload := wp.FromPost(post)
	result := &TransferResult{}

	if !e.Rewriter.Empty() {
		title := e.Rewriter.Rewrite(payload.Title)
		content := e.Rewriter.Rewrite(payload.Content)
		excerpt := e.Rewriter.Rewrite(payload.Excerpt)

		payload.Title = title.Content
		payload.Content = content.Content
		payload.Excerpt = excerpt.Content
		result.Replacements = title.Replacements + content.Replacements + excerpt.Replacements
	}

	created, err := e.Dest.CreatePost(ctx, payload)
	if err != nil {
		return nil, &CreateError{Ref: post.Ref(), Err: err}
	}
	result.Post = created

	logger.Debug().
		Str("ref", post.Ref()).
		Int("dest_id", created.ID).
		Msg("post created on destination")

	e.transferMedia(ctx, post, created, result)

	return result, nil
}

// transferMedia downloads the source's featured media, uploads it, and links
// it to the created post. Each stage failure is a warning, not an error: the
// created post stays.
func (e *Engine) transferMedia(ctx context.Context, source *wp.Post, created *wp.Post, result *TransferResult) {
	logger := zerolog.Ctx(ctx)

	mediaURL := source.FeaturedMediaURL()
	if mediaURL == "" {
		return
	}

	data, err := e.Source.DownloadMedia(ctx, mediaURL)
	if err != nil {
		warnMedia(logger, &MediaError{Stage: "download", URL: mediaURL, Err: err})
		return
	}

	filename := wp.FilenameFromURL(mediaURL)
	media, err := e.Dest.UploadMedia(ctx, filename, data)
	if err != nil {
		warnMedia(logger, &MediaError{Stage: "upload", URL: mediaURL, Err: err})
		return
	}
	result.MediaID = media.ID

	if err := e.Dest.SetFeaturedMedia(ctx, created.ID, media.ID); err != nil {
		warnMedia(logger, &MediaError{Stage: "link", URL: mediaURL, Err: err})
		return
	}
	result.MediaLinked = true

	logger.Debug().
		Int("media_id", media.ID).
		Int("post_id", created.ID).
		Msg("featured media linked")
}

func warnMedia(logger *zerolog.Logger, err *MediaError) {
	logger.Warn().
		Str("stage", err.Stage).
		Str("url", err.URL).
		Err(err.Err).
		Msg("featured media transfer degraded")
}
