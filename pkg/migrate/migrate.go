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
	"time"

	"github.com/rs/zerolog"

	"github.com/jasonpoonia/wpmigrate/pkg/config"
	"github.com/jasonpoonia/wpmigrate/pkg/discover"
	"github.com/jasonpoonia/wpmigrate/pkg/status"
	"github.com/jasonpoonia/wpmigrate/pkg/text"
	"github.com/jasonpoonia/wpmigrate/pkg/transport"
	"github.com/jasonpoonia/wpmigrate/pkg/wp"
)

// Discovery modes a run can settle on. Exactly one is in effect per run.
const (
	ModeSitemap = "sitemap"
	ModeAPI     = "api"
)

// 📊 Summary aggregates what a run did across every item.
type Summary struct {
	Mode          string // Discovery mode the run settled on
	Total         int    // Items the run attempted
	Transferred   int    // Posts created on the destination
	Skipped       int    // Items that could not be resolved to a post
	Failed        int    // Items whose create call failed
	MediaUploaded int    // Featured media files uploaded
	MediaLinked   int    // Featured media attached to their posts
	Replacements  int    // Content replacements made across all items
}

// 🎯 Migrator orchestrates a full run: discover what the source offers, then
// transfer it item by item with the configured pacing.
type Migrator struct {
	cfg      *config.Config
	source   *wp.Source
	dest     *wp.Destination
	reader   *discover.IndexReader
	matcher  *discover.Matcher
	engine   *Engine
	resolver *Resolver
	reporter status.Reporter

	itemDelay time.Duration
	pageDelay time.Duration

	// DryRun resolves and counts items without writing to the destination.
	DryRun bool
}

// 🏭 New wires a migrator from validated configuration. The transport is
// shared between both sites; only the destination side carries credentials.
// A nil reporter runs silently.
func New(cfg *config.Config, t *transport.Client, reporter status.Reporter) *Migrator {
	if reporter == nil {
		reporter = status.Nop{}
	}
	args := cfg.Migrate
	if args == nil {
		args = &config.MigrateArgs{}
	}

	source := wp.NewSource(cfg.Source.URL, t)
	dest := wp.NewDestination(
		cfg.Destination.URL,
		t.WithBasicAuth(cfg.Destination.Username, cfg.Destination.AppPassword),
	)

	rewriter := text.NewRewriter()
	if args.RewriteLinks {
		rewriter.Append(text.BaseURLRule(cfg.Source.URL, cfg.Destination.URL))
	}
	for _, r := range args.Replacements {
		rewriter.Append(text.Rule{From: r.Old, To: r.New})
	}

	matcher := discover.NewMatcher(args.Include, args.Exclude)

	return &Migrator{
		cfg:       cfg,
		source:    source,
		dest:      dest,
		reader:    discover.NewIndexReader(t, matcher),
		matcher:   matcher,
		engine:    &Engine{Source: source, Dest: dest, Rewriter: rewriter},
		resolver:  &Resolver{Source: source},
		reporter:  reporter,
		itemDelay: args.ItemDelayDur,
		pageDelay: args.PageDelayDur,
	}
}

// 🔍 Discover probes the source's index locations and returns the content
// URLs they expose. An empty list means a run would fall back to the API.
func (m *Migrator) Discover(ctx context.Context) ([]string, error) {
	return m.reader.Discover(ctx, m.source.BaseURL())
}

// item is one unit of work. Sitemap mode starts from a URL that still needs
// resolving; API mode starts from an already-fetched post.
type item struct {
	ref  string
	url  string
	post *wp.Post
}

// 🚀 Run executes the migration. Discovery picks the mode: an index with
// content URLs wins, otherwise the posts API is enumerated. Item failures are
// tallied in the summary rather than aborting the run; only an empty source
// or a cancelled context ends it with an error.
func (m *Migrator) Run(ctx context.Context) (*Summary, error) {
	logger := zerolog.Ctx(ctx)

	urls, err := m.reader.Discover(ctx, m.source.BaseURL())
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	var items []item

	if len(urls) > 0 {
		summary.Mode = ModeSitemap
		for _, u := range urls {
			items = append(items, item{ref: u, url: u})
		}
	} else {
		summary.Mode = ModeAPI
		logger.Info().Msg("no usable index found, enumerating posts api")

		enum := &discover.Enumerator{Source: m.source, PageDelay: m.pageDelay}
		posts, err := enum.All(ctx)
		if err != nil && len(posts) == 0 {
			return nil, err
		}
		if err != nil {
			logger.Warn().Err(err).Int("posts", len(posts)).
				Msg("enumeration incomplete, continuing with partial results")
		}

		for i := range posts {
			p := &posts[i]
			ref := p.Link
			if ref == "" {
				ref = p.Slug
			}
			if !m.matcher.Allowed(ref) {
				continue
			}
			items = append(items, item{ref: p.Ref(), post: p})
		}
	}

	if len(items) == 0 {
		return nil, ErrNoContent
	}
	summary.Total = len(items)

	logger.Info().
		Str("mode", summary.Mode).
		Int("items", summary.Total).
		Msg("starting transfer")

	if pr, ok := m.reporter.(status.PhaseReporter); ok {
		pr.PhaseStarted(ctx, status.PhaseInfo{
			Name:        "migrate",
			Source:      m.source.BaseURL(),
			Destination: m.dest.BaseURL(),
			Mode:        summary.Mode,
		})
		defer pr.PhaseFinished(ctx)
	}

	m.reporter.StartOperation(ctx, summary.Total)

	for i, it := range items {
		if i > 0 && m.itemDelay > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(m.itemDelay):
			}
		}

		m.processItem(ctx, it, summary)
		m.reporter.UpdateProgress(ctx, i+1)
	}

	m.reporter.FinishOperation(ctx)

	logger.Info().
		Int("transferred", summary.Transferred).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int("media_uploaded", summary.MediaUploaded).
		Msg("run finished")

	return summary, nil
}

// processItem takes one item through resolve and transfer, recording the
// outcome in both the summary and the reporter.
func (m *Migrator) processItem(ctx context.Context, it item, summary *Summary) {
	logger := zerolog.Ctx(ctx)

	post := it.post
	ref := it.ref

	if post == nil {
		resolved, err := m.resolver.Resolve(ctx, it.url)
		if err != nil {
			logger.Warn().Str("url", it.url).Err(err).Msg("skipping unresolvable item")
			summary.Skipped++
			m.reporter.TrackItem(ctx, ref, status.ItemInfo{
				Ref:     ref,
				Outcome: status.OutcomeSkipped,
				Error:   err,
			})
			return
		}
		if resolved == nil {
			summary.Skipped++
			m.reporter.TrackItem(ctx, ref, status.ItemInfo{
				Ref:     ref,
				Outcome: status.OutcomeSkipped,
			})
			return
		}
		post = resolved
		ref = post.Ref()
	}

	if m.DryRun {
		logger.Info().Str("ref", ref).Msg("dry run, post not created")
		summary.Transferred++
		m.reporter.TrackItem(ctx, ref, status.ItemInfo{
			Ref:     ref,
			Outcome: status.OutcomeTransferred,
		})
		return
	}

	result, err := m.engine.Transfer(ctx, post)
	if err != nil {
		logger.Error().Str("ref", ref).Err(err).Msg("item transfer failed")
		summary.Failed++
		m.reporter.TrackItem(ctx, ref, status.ItemInfo{
			Ref:     ref,
			Outcome: status.OutcomeFailed,
			Error:   err,
		})
		return
	}

	summary.Transferred++
	summary.Replacements += result.Replacements
	if result.MediaID != 0 {
		summary.MediaUploaded++
	}
	if result.MediaLinked {
		summary.MediaLinked++
	}

	m.reporter.TrackItem(ctx, ref, status.ItemInfo{
		Ref:          ref,
		Outcome:      status.OutcomeTransferred,
		DestID:       result.Post.ID,
		MediaID:      result.MediaID,
		MediaLinked:  result.MediaLinked,
		Replacements: result.Replacements,
	})
}
