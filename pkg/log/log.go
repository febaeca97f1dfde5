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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	itemIndent  = 4  // spaces to indent item entries
	refWidth    = 40 // Base width for the item slug or URL
	stepWidth   = 10 // Width for the transfer step
	statusWidth = 20 // Width for status text
)

// 🎯 ItemOperation represents one content item's transfer for logging
type ItemOperation struct {
	Ref           string // Item slug or URL
	Step          string // Transfer step (resolve/create/media)
	Status        string // Operation status
	IsTransferred bool   // Whether the item was created on the destination
	IsSkipped     bool   // Whether the item was skipped
	IsFailed      bool   // Whether the item failed
	HasMedia      bool   // Whether featured media was carried over
	Replacements  int    // Number of content replacements made
}

// 📦 PhaseOperation represents a pipeline phase for logging
type PhaseOperation struct {
	Name        string // Phase name (discover/transfer)
	Source      string // Source site base URL
	Destination string // Destination site base URL
	Mode        string // Enumeration mode (sitemap/api)
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog         zerolog.Logger
	console      io.Writer
	mu           sync.Mutex
	currentPhase *PhaseOperation
	operations   []ItemOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatItemOperation formats an item operation for display
func (l *Logger) formatItemOperation(op ItemOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	case op.IsTransferred:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	// Format step with color
	var stepColor color.Attribute
	switch op.Step {
	case "resolve":
		stepColor = color.FgCyan
	case "create":
		stepColor = color.FgBlue
	case "media":
		stepColor = color.FgMagenta
	default:
		stepColor = color.FgYellow
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", itemIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", refWidth, op.Ref),
		color.New(stepColor).Sprint(fmt.Sprintf("%-*s", stepWidth, op.Step)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogItemOperation logs a content item operation
func (l *Logger) LogItemOperation(ctx context.Context, op ItemOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to operations list
	l.operations = append(l.operations, op)

	// Format and print
	fmt.Fprintln(l.console, l.formatItemOperation(op))

	// Log to zerolog
	l.zlog.Info().
		Str("item", op.Ref).
		Str("step", op.Step).
		Str("status", op.Status).
		Bool("is_transferred", op.IsTransferred).
		Bool("is_skipped", op.IsSkipped).
		Bool("is_failed", op.IsFailed).
		Bool("has_media", op.HasMedia).
		Int("replacements", op.Replacements).
		Msg("item operation")
}

// 📝 StartPhase starts a new pipeline phase
func (l *Logger) StartPhase(ctx context.Context, op PhaseOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentPhase = &op
	l.operations = nil

	// Print phase header
	fmt.Fprintf(l.console, "[%s %s]\n",
		op.Name,
		color.New(color.FgCyan).Sprint(op.Source))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Destination),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Mode))

	// Log to zerolog
	l.zlog.Info().
		Str("phase", op.Name).
		Str("source", op.Source).
		Str("destination", op.Destination).
		Str("mode", op.Mode).
		Msg("starting phase")
}

// 📝 EndPhase ends the current pipeline phase
func (l *Logger) EndPhase(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentPhase == nil {
		return
	}

	// Log summary
	l.zlog.Info().
		Str("phase", l.currentPhase.Name).
		Int("items", len(l.operations)).
		Msg("phase complete")

	l.currentPhase = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("wpmigrate")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
