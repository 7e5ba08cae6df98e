package logutils

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/gravitational/trace"
)

// journalHandler is a slog.Handler that emits entries to the systemd
// journal, mapping slog levels to journal priorities and record attrs
// to journal fields.
type journalHandler struct {
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

func newJournalHandler(level slog.Leveler) (*journalHandler, error) {
	if !journal.Enabled() {
		return nil, trace.NotFound("systemd journal socket is not available")
	}

	return &journalHandler{level: level}, nil
}

func (h *journalHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *journalHandler) Handle(ctx context.Context, record slog.Record) error {
	vars := make(map[string]string, len(h.attrs)+record.NumAttrs())
	for _, a := range h.attrs {
		addJournalField(vars, h.groups, a)
	}
	record.Attrs(func(a slog.Attr) bool {
		addJournalField(vars, h.groups, a)
		return true
	})

	return trace.Wrap(journal.Send(record.Message, journalPriority(record.Level), vars))
}

func (h *journalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)
	return &c
}

func (h *journalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &c
}

func journalPriority(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

func addJournalField(vars map[string]string, groups []string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		groups = append(groups, a.Key)
		for _, ga := range a.Value.Group() {
			addJournalField(vars, groups, ga)
		}
		return
	}

	key := a.Key
	if len(groups) != 0 {
		key = strings.Join(groups, "_") + "_" + key
	}
	vars[journalFieldName(key)] = fmt.Sprint(a.Value.Resolve().Any())
}

// journalFieldName converts an attr key to a valid journal field name,
// which may contain only uppercase letters, digits and underscores and
// must not start with a digit.
func journalFieldName(key string) string {
	var b strings.Builder
	for i, r := range strings.ToUpper(key) {
		switch {
		case r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
