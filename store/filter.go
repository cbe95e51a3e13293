// Package store provides FAQ repositories backed by memory snapshots or SQLite.
package store

import (
	"strings"

	"github.com/gcbaptista/faq-assistant/model"
	"github.com/gcbaptista/faq-assistant/services"
)

// Matches reports whether rec satisfies the filters in opts.
func Matches(rec model.FaqRecord, opts services.ListOptions) bool {
	if opts.ActiveOnly && !rec.IsActive {
		return false
	}
	if opts.InactiveOnly && rec.IsActive {
		return false
	}
	if opts.Category != "" && !strings.EqualFold(rec.Category, opts.Category) {
		return false
	}
	if text := strings.ToLower(strings.TrimSpace(opts.Text)); text != "" {
		return strings.Contains(strings.ToLower(rec.Question), text) ||
			strings.Contains(strings.ToLower(rec.Answer), text) ||
			strings.Contains(strings.ToLower(rec.Keywords), text)
	}
	return true
}

// window converts offset and limit into slice bounds for n items.
func window(n, offset, limit int) (int, int) {
	start := min(max(offset, 0), n)
	end := n
	if limit > 0 && start+limit < n {
		end = start + limit
	}
	return start, end
}
