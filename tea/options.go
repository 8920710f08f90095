package tea

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/on-the-ground/teatui/terminal"
	"go.uber.org/zap"
)

// InputSource yields terminal events. ReadEvent blocks until an event is
// available and fails once the source is exhausted.
type InputSource interface {
	ReadEvent() (tcell.Event, error)
}

// Renderer owns the terminal between Init and Restore.
type Renderer interface {
	Init() error
	Draw(terminal.Widget) error
	Restore() error
}

type options struct {
	logger   *zap.Logger
	renderer Renderer
	input    InputSource
	effects  EffectsConfig
	metrics  *Metrics
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRenderer replaces the default tcell screen. If r also implements
// InputSource it is used for input too, unless WithInput is given.
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

func WithInput(in InputSource) Option {
	return func(o *options) {
		o.input = in
	}
}

func WithEffects(cfg EffectsConfig) Option {
	return func(o *options) {
		o.effects = cfg.normalized()
	}
}

func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:  zap.NewNop(),
		effects: EffectsConfig{}.normalized(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// backends resolves the renderer and input source. A default tcell screen
// serves as both when neither is given.
func (o options) backends() (Renderer, InputSource, error) {
	r, in := o.renderer, o.input
	if r == nil {
		screen, err := terminal.NewScreen()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrRender, err)
		}
		r = screen
		if in == nil {
			in = screen
		}
	}
	if in == nil {
		src, ok := r.(InputSource)
		if !ok {
			return nil, nil, fmt.Errorf("%w: renderer cannot read input and no input source was given", ErrMissingBackend)
		}
		in = src
	}
	return r, in, nil
}
