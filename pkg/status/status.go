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

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 Outcome represents the final state of one content item's transfer
type Outcome int

const (
	OutcomeUnknown     Outcome = iota
	OutcomeTransferred         // Item was created on the destination
	OutcomeSkipped             // Item could not be resolved and was passed over
	OutcomeFailed              // Item creation failed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeTransferred:
		return "transferred"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 ItemInfo contains metadata about one item's transfer
type ItemInfo struct {
	Ref          string  // Item slug or source URL
	Outcome      Outcome // Final state
	DestID       int     // Post ID on the destination, when created
	MediaID      int     // Uploaded media ID, zero when none
	MediaLinked  bool    // Whether the media was attached to the post
	Replacements int     // Content replacements made during rewrite
	Error        error   // Any error associated with this item
}

// 📈 Reporter receives item outcomes and progress as a run advances
type Reporter interface {
	// Item tracking
	TrackItem(ctx context.Context, ref string, info ItemInfo)

	// Progress reporting
	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context, processed int)
	FinishOperation(ctx context.Context)
}

// 🗺️ PhaseInfo describes a run phase for reporters that render them
type PhaseInfo struct {
	Name        string // Phase name, e.g. "discover" or "migrate"
	Source      string // Source site URL
	Destination string // Destination site URL
	Mode        string // Discovery mode in effect, e.g. "sitemap" or "api"
}

// 🎬 PhaseReporter is an optional capability for Reporters that render run
// phases. Callers type-assert for it; plain Reporters skip phase output.
type PhaseReporter interface {
	PhaseStarted(ctx context.Context, info PhaseInfo)
	PhaseFinished(ctx context.Context)
}

// 🔧 Manager implements Reporter with zerolog-backed tracking
type Manager struct {
	logger    *zerolog.Logger // Logger for status updates
	formatter ItemFormatter   // Formatter for status messages

	// Item tracking
	mu    sync.RWMutex
	items map[string]ItemInfo
	order []string

	// Progress tracking
	total     int
	processed int
}

// 🏭 New creates a new status manager
func New(logger *zerolog.Logger) *Manager {
	return &Manager{
		logger:    logger,
		formatter: NewDefaultItemFormatter(),
		items:     make(map[string]ItemInfo),
	}
}

// Reporter interface implementation

func (m *Manager) TrackItem(ctx context.Context, ref string, info ItemInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, seen := m.items[ref]; !seen {
		m.order = append(m.order, ref)
	}
	m.items[ref] = info

	msg := m.formatter.FormatItemOperation(
		ref,
		info.Outcome == OutcomeTransferred,
		info.Outcome == OutcomeSkipped,
		info.Outcome == OutcomeFailed,
	)
	if info.Error != nil {
		msg = m.formatter.FormatError(info.Error)
	}
	m.logger.Info().
		Str("item", ref).
		Str("outcome", info.Outcome.String()).
		Msg(msg)
}

func (m *Manager) GetItemInfo(ctx context.Context, ref string) (ItemInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.items[ref]
	if !ok {
		return ItemInfo{}, errors.Errorf("item not tracked: %s", ref)
	}
	return info, nil
}

// ListItems returns tracked items in the order they were first seen.
func (m *Manager) ListItems(ctx context.Context) ([]ItemInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]ItemInfo, 0, len(m.items))
	for _, ref := range m.order {
		items = append(items, m.items[ref])
	}
	return items, nil
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	msg := m.formatter.FormatProgress(0, total)
	m.logger.Info().Int("total", total).Msg(msg)
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	msg := m.formatter.FormatProgress(processed, m.total)
	m.logger.Info().
		Int("processed", processed).
		Int("total", m.total).
		Msg(msg)
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := m.formatter.FormatProgress(m.total, m.total)
	m.logger.Info().
		Int("processed", m.total).
		Int("total", m.total).
		Msg(msg)
}

// 🔇 Nop is a Reporter that discards everything. Useful as the default when
// a caller does not care about progress.
type Nop struct{}

func (Nop) TrackItem(context.Context, string, ItemInfo) {}
func (Nop) StartOperation(context.Context, int)         {}
func (Nop) UpdateProgress(context.Context, int)         {}
func (Nop) FinishOperation(context.Context)             {}
