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
	"sort"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/jasonpoonia/wpmigrate/pkg/transport"
)

// 🔌 Strategy is the interface for index discovery strategies
type Strategy interface {
	// 📝 Name identifies the strategy in logs
	Name() string

	// 🔍 Discover probes one location and returns candidate content URLs.
	// ok is false when the location yielded nothing; the reader moves on.
	Discover(ctx context.Context, site string) (urls []string, ok bool)
}

// 🏭 Factory creates a strategy around the shared transport
type Factory func(t *transport.Client) Strategy

var (
	// 🗺️ factories holds registered strategy factories in probe order
	factories []Factory
)

// 📝 Register registers a strategy factory
func Register(f Factory) {
	factories = append(factories, f)
}

// 📖 IndexReader runs every registered strategy against a site and merges
// what they find into one deduplicated, filtered, sorted URL list.
type IndexReader struct {
	strategies []Strategy
	matcher    *Matcher
}

// 🏭 NewIndexReader creates a reader with all registered strategies. A nil
// matcher accepts every content-looking URL.
func NewIndexReader(t *transport.Client, matcher *Matcher) *IndexReader {
	if matcher == nil {
		matcher = NewMatcher(nil, nil)
	}
	strategies := make([]Strategy, 0, len(factories))
	for _, f := range factories {
		strategies = append(strategies, f(t))
	}
	return &IndexReader{strategies: strategies, matcher: matcher}
}

// 🔍 Discover probes every strategy in order and merges the results. An empty
// result is not an error; it tells the caller no index is available and the
// posts API should be enumerated instead. Strategy failures are logged and
// skipped. Only context cancellation aborts the probe sequence.
func (r *IndexReader) Discover(ctx context.Context, site string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	seen := make(map[string]struct{})
	var merged []string

	for _, s := range r.strategies {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("discovery interrupted: %w", err)
		}

		urls, ok := s.Discover(ctx, site)
		if !ok {
			logger.Debug().Str("strategy", s.Name()).Msg("index location yielded nothing")
			continue
		}

		logger.Debug().
			Str("strategy", s.Name()).
			Int("urls", len(urls)).
			Msg("index location yielded candidates")

		for _, u := range urls {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			if !r.matcher.Match(u) {
				continue
			}
			merged = append(merged, u)
		}
	}

	sort.Strings(merged)

	logger.Info().
		Str("site", site).
		Int("urls", len(merged)).
		Msg("index discovery finished")

	return merged, nil
}
