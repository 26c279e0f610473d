package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// FileID records the backing file identifier under the key "file_id".
func FileID(id string) slog.Attr {
	return slog.String("file_id", id)
}

// Cost records a file cost in KiB under the key "cost_kib".
func Cost(kib int64) slog.Attr {
	return slog.Int64("cost_kib", kib)
}

// Outcome records a cache outcome ("hit" or "miss") under the key "outcome".
func Outcome(o any) slog.Attr {
	return slog.Any("outcome", o)
}

// Clock records the logical clock value under the key "clock".
func Clock(t uint64) slog.Attr {
	return slog.Uint64("clock", t)
}

// Evicted records an evicted entry as a group under the key "evicted".
func Evicted(id string, cost int64, lastAccess uint64) slog.Attr {
	return Group("evicted",
		slog.String("file_id", id),
		slog.Int64("cost_kib", cost),
		slog.Uint64("last_access", lastAccess),
	)
}

// RequestID records the request identifier under the key "request_id".
// If id is empty, it returns an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
