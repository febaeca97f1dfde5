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

package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/jasonpoonia/wpmigrate/pkg/log"
	"github.com/jasonpoonia/wpmigrate/pkg/status"
)

// 📢 ConsoleReporter renders run progress for a human watching the terminal.
// It implements status.Reporter and status.PhaseReporter on top of the
// console logger, with pterm markers for the run-level milestones.
type ConsoleReporter struct {
	console *log.Logger

	mu        sync.Mutex
	total     int
	processed int
}

// 🏭 NewConsoleReporter creates a reporter that writes through console
func NewConsoleReporter(console *log.Logger) *ConsoleReporter {
	return &ConsoleReporter{console: console}
}

// PhaseStarted renders the phase header
func (r *ConsoleReporter) PhaseStarted(ctx context.Context, info status.PhaseInfo) {
	r.console.StartPhase(ctx, log.PhaseOperation{
		Name:        info.Name,
		Source:      info.Source,
		Destination: info.Destination,
		Mode:        info.Mode,
	})
}

// PhaseFinished closes the phase
func (r *ConsoleReporter) PhaseFinished(ctx context.Context) {
	r.console.EndPhase(ctx)
	r.console.LogNewline()
}

// TrackItem renders one item outcome as a console line
func (r *ConsoleReporter) TrackItem(ctx context.Context, ref string, info status.ItemInfo) {
	op := log.ItemOperation{
		Ref:           info.Ref,
		IsTransferred: info.Outcome == status.OutcomeTransferred,
		IsSkipped:     info.Outcome == status.OutcomeSkipped,
		IsFailed:      info.Outcome == status.OutcomeFailed,
		HasMedia:      info.MediaLinked,
		Replacements:  info.Replacements,
	}

	switch info.Outcome {
	case status.OutcomeTransferred:
		op.Step = "create"
		op.Status = "transferred"
		if info.MediaLinked {
			op.Status = "transferred +media"
		}
	case status.OutcomeSkipped:
		op.Step = "resolve"
		op.Status = "skipped"
	case status.OutcomeFailed:
		op.Step = "create"
		op.Status = "failed"
	default:
		op.Step = "resolve"
		op.Status = "processing"
	}

	r.console.LogItemOperation(ctx, op)

	if info.Error != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(info.Error)
	}
}

// StartOperation announces the batch
func (r *ConsoleReporter) StartOperation(ctx context.Context, total int) {
	r.mu.Lock()
	r.total = total
	r.processed = 0
	r.mu.Unlock()

	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).
		Println(fmt.Sprintf("Transferring %d items", total))
}

// UpdateProgress records how far the run has come. Item lines already show
// the activity, so progress only surfaces in debug logs.
func (r *ConsoleReporter) UpdateProgress(ctx context.Context, processed int) {
	r.mu.Lock()
	r.processed = processed
	total := r.total
	r.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Int("processed", processed).
		Int("total", total).
		Msg("progress")
}

// FinishOperation announces completion
func (r *ConsoleReporter) FinishOperation(ctx context.Context) {
	r.mu.Lock()
	total := r.total
	r.mu.Unlock()

	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).
		Println(fmt.Sprintf("Processed %d items", total))
}
