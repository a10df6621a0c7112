// Package logging builds the process logger: a text handler on stderr, an
// optional JSON file and an optional systemd journal, fanned out with
// slog-multi. Stdout is reserved for the MCP protocol and is never logged to.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options selects the log destinations.
type Options struct {
	Level slog.Leveler

	// Writer receives human-readable text. Defaults to os.Stderr.
	Writer io.Writer

	// File, when set, also receives JSON records. It is appended to.
	File string

	// Journal also sends records to the systemd journal.
	Journal bool
}

// New builds a logger from opts. The returned close function releases the
// log file, if any, and is safe to call when nothing was opened.
func New(opts Options) (*slog.Logger, func() error, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	closeFn := func() error { return nil }

	terminal := slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{Level: opts.Level})
	handlers := []slog.Handler{terminal}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
		closeFn = f.Close
	}

	if opts.Journal {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: opts.Level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = terminal.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journal)
		}
	}

	return slog.New(&callHandler{Handler: slogmulti.Fanout(handlers...)}), closeFn, nil
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}

type callIDKey struct{}

// WithCallID tags ctx with a fresh call id. Records logged with the
// returned context carry it as "call_id".
func WithCallID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, callIDKey{}, id), id
}

// CallID returns the call id stored in ctx, or "".
func CallID(ctx context.Context) string {
	id, _ := ctx.Value(callIDKey{}).(string)
	return id
}

// callHandler adds the context's call id to every record.
type callHandler struct {
	slog.Handler
}

func (h *callHandler) Handle(ctx context.Context, record slog.Record) error {
	if id := CallID(ctx); id != "" {
		record.AddAttrs(slog.String("call_id", id))
	}
	return h.Handler.Handle(ctx, record)
}

func (h *callHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &callHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *callHandler) WithGroup(name string) slog.Handler {
	return &callHandler{Handler: h.Handler.WithGroup(name)}
}
