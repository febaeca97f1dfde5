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
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/jasonpoonia/wpmigrate/pkg/wp"
)

// DefaultPerPage is the largest page size the posts endpoint accepts.
const DefaultPerPage = 100

// 📖 Enumerator pages through the posts API when no index is available.
type Enumerator struct {
	Source    *wp.Source
	PerPage   int           // page size, defaults to DefaultPerPage
	PageDelay time.Duration // pause between page requests
}

// 📖 All fetches every published post page by page. Enumeration ends cleanly
// on an out-of-range page or a short page. A mid-stream failure returns the
// posts collected so far together with the error, so a long run keeps what it
// already paid for.
func (e *Enumerator) All(ctx context.Context) ([]wp.Post, error) {
	logger := zerolog.Ctx(ctx)

	perPage := e.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	var collected []wp.Post
	for page := 1; ; page++ {
		if page > 1 && e.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return collected, errors.Errorf("enumeration interrupted: %w", ctx.Err())
			case <-time.After(e.PageDelay):
			}
		}

		posts, err := e.Source.ListPosts(ctx, page, perPage)
		if errors.Is(err, wp.ErrPageOutOfRange) {
			// The API signals the end of the collection with a rejected page.
			break
		}
		if err != nil {
			logger.Warn().
				Int("page", page).
				Int("collected", len(collected)).
				Err(err).
				Msg("enumeration stopped early")
			return collected, errors.Errorf("enumerating page %d: %w", page, err)
		}

		if len(posts) == 0 {
			break
		}
		collected = append(collected, posts...)

		if len(posts) < perPage {
			break
		}
	}

	logger.Info().Int("posts", len(collected)).Msg("api enumeration finished")
	return collected, nil
}
