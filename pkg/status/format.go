package status

import (
	"fmt"
)

// ItemFormatter defines how item outcomes and progress should be formatted
type ItemFormatter interface {
	// FormatItemOperation formats an item outcome status message
	FormatItemOperation(ref string, transferred, skipped, failed bool) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultItemFormatter provides a default implementation of ItemFormatter
type DefaultItemFormatter struct{}

// NewDefaultItemFormatter creates a new DefaultItemFormatter
func NewDefaultItemFormatter() *DefaultItemFormatter {
	return &DefaultItemFormatter{}
}

// FormatItemOperation formats an item outcome status message with emojis
func (f *DefaultItemFormatter) FormatItemOperation(ref string, transferred, skipped, failed bool) string {
	switch {
	case transferred:
		return fmt.Sprintf("✨ Transferred %s", ref)
	case skipped:
		return fmt.Sprintf("⏭️  Skipped %s", ref)
	case failed:
		return fmt.Sprintf("❌ Failed %s", ref)
	default:
		return fmt.Sprintf("⏳ Processing %s", ref)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultItemFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultItemFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
