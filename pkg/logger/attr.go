package logger

import (
	"log/slog"
	"time"
)

// Error records err under the key "error". A nil err yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// EntityID records the entity instance identifier under the key "entity_id".
// If id is nil, it returns an empty Attr.
func EntityID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("entity_id", id)
}

func Property(name string) slog.Attr {
	return slog.String("property", name)
}

// Pass records the pass sequence number under the key "pass".
func Pass(n uint64) slog.Attr {
	return slog.Uint64("pass", n)
}

// Diff groups the properties whose errors a pass removed or changed under the
// key "diff". Empty lists are left out; with both empty it returns an empty Attr.
func Diff(removed, changed []string) slog.Attr {
	attrs := make([]slog.Attr, 0, 2)
	if len(removed) > 0 {
		attrs = append(attrs, slog.Any("removed", removed))
	}
	if len(changed) > 0 {
		attrs = append(attrs, slog.Any("changed", changed))
	}
	if len(attrs) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "diff", Value: slog.GroupValue(attrs...)}
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Language(lang string) slog.Attr {
	return slog.String("lang", lang)
}
