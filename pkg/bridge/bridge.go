// Package bridge hosts a component over JSON Lines: one inbound envelope per
// line on the reader, one outbound report per line on the writer.
//
// Inbound:
//
//	{"type":"render","args":{"options":[...],"indent":10,"collapsedState":[...]}}
//	{"type":"toggle","key":"p-Parent-0"}
//	{"type":"click","index":3}   or   {"type":"click","id":"c"}
//
// Outbound:
//
//	{"type":"componentReady"}
//	{"type":"setFrameHeight","height":140}
//	{"type":"setComponentValue","value":{"id":"c","name":"Child","level":1,"collapsedState":[]}}
package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/clicktree"
	"github.com/aretw0/clicktree/internal/dto"
	"github.com/aretw0/clicktree/internal/logging"
	"github.com/aretw0/clicktree/internal/sanitize"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/aretw0/clicktree/pkg/ports"
)

// Inbound envelope types.
const (
	TypeRender = "render"
	TypeToggle = "toggle"
	TypeClick  = "click"
)

// Envelope is one inbound line.
type Envelope struct {
	Type  string         `json:"type"`
	Args  map[string]any `json:"args,omitempty"`
	Key   string         `json:"key,omitempty"`
	Index *int           `json:"index,omitempty"`
	ID    string         `json:"id,omitempty"`
}

// Bridge connects one component to a line-oriented host.
type Bridge struct {
	in     io.Reader
	out    io.Writer
	mu     sync.Mutex // guards enc
	enc    *json.Encoder
	logger *slog.Logger
	opts   []clicktree.Option
	comp   *clicktree.Component
}

// Option configures the Bridge.
type Option func(*Bridge)

// WithLogger sets the logger for skipped lines and failed interactions.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithComponentOptions is applied when the bridge creates its component.
func WithComponentOptions(opts ...clicktree.Option) Option {
	return func(b *Bridge) {
		b.opts = append(b.opts, opts...)
	}
}

// New creates a bridge reading envelopes from r and writing reports to w.
func New(r io.Reader, w io.Writer, opts ...Option) *Bridge {
	b := &Bridge{
		in:     r,
		out:    w,
		enc:    json.NewEncoder(w),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.comp = clicktree.New(append(b.opts, clicktree.WithHost(b.Host()), clicktree.WithLogger(b.logger))...)
	return b
}

// Component returns the hosted component.
func (b *Bridge) Component() *clicktree.Component {
	return b.comp
}

// Host returns the ports.Host that writes reports to the bridge output.
func (b *Bridge) Host() ports.Host {
	return ports.MessageHost(b.send)
}

func (b *Bridge) send(_ context.Context, msg domain.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enc.Encode(msg)
}

// Run signals readiness and processes envelopes until the input ends (nil) or
// ctx is canceled. Malformed or failing envelopes are logged and skipped; only
// output failures stop the loop.
func (b *Bridge) Run(ctx context.Context) error {
	if err := b.comp.Ready(ctx); err != nil {
		return err
	}

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		r := bufio.NewReader(b.in)
		for {
			line, err := r.ReadBytes('\n')
			if len(line) > 0 {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return fmt.Errorf("failed to read input: %w", err)
				default:
					return nil
				}
			}
			if err := b.Handle(ctx, line); err != nil {
				return err
			}
		}
	}
}

// Handle processes one inbound line. It returns an error only when a report
// could not be written.
func (b *Bridge) Handle(ctx context.Context, line []byte) error {
	if strings.TrimSpace(string(line)) == "" {
		return nil
	}
	if err := sanitize.Payload(line); err != nil {
		b.logger.Warn("skipping line", "err", err)
		return nil
	}

	var env Envelope
	if err := json.Unmarshal(line, &env); err != nil {
		b.logger.Warn("skipping malformed line", "err", err)
		return nil
	}

	err := b.dispatch(ctx, env)
	if err == nil {
		return nil
	}
	if errors.Is(err, errOutput) {
		return err
	}
	b.logger.Warn("envelope rejected", "type", env.Type, "err", err)
	return nil
}

var errOutput = errors.New("failed to write report")

func (b *Bridge) dispatch(ctx context.Context, env Envelope) error {
	switch env.Type {
	case TypeRender:
		var raw any
		if env.Args != nil {
			raw = env.Args
		}
		cfg, err := dto.DecodeConfig(raw)
		if err != nil {
			return err
		}
		_, err = b.comp.Render(ctx, cfg)
		return b.classify(err)
	case TypeToggle:
		_, err := b.comp.Toggle(ctx, env.Key)
		return err
	case TypeClick:
		var err error
		switch {
		case env.Index != nil:
			_, err = b.comp.Select(ctx, *env.Index)
		case env.ID != "":
			_, err = b.comp.SelectByID(ctx, env.ID)
		default:
			err = fmt.Errorf("%w: click needs index or id", domain.ErrNodeNotFound)
		}
		return b.classify(err)
	default:
		return fmt.Errorf("unknown envelope type %q", env.Type)
	}
}

// classify separates host write failures, which end the session, from
// rejected input, which does not.
func (b *Bridge) classify(err error) error {
	if err == nil {
		return nil
	}
	var lvl *domain.LevelError
	switch {
	case errors.As(err, &lvl),
		errors.Is(err, domain.ErrNoTree),
		errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, domain.ErrNotLeaf):
		return err
	}
	return fmt.Errorf("%w: %w", errOutput, err)
}
