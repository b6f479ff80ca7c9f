package pager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BeatGlow/pager/draw"
)

// Errors
var (
	ErrCapacity = errors.New("pager: page capacity exhausted")
	ErrNoPages  = errors.New("pager: no pages registered")
	ErrRotating = errors.New("pager: rotation in progress")
	ErrNilPage  = errors.New("pager: nil page")
)

// DefaultDuration is how long a page stays on the display unless it was registered with a
// duration of its own.
const DefaultDuration = 5 * time.Second

const (
	defaultSplashDuration = 500 * time.Millisecond
	tracerName            = "github.com/BeatGlow/pager"
)

// Surface is the display a rotator draws on: a frame buffer that can be cleared and flushed to
// the hardware. Refresh errors are transport errors and end the rotation.
//
// A surface that also has a Show(bool) error method is switched on by [Rotator.Init].
type Surface interface {
	draw.Image

	// Clear the frame buffer.
	Clear()

	// Refresh sends the frame buffer to the display.
	Refresh() error
}

// ErrorPolicy decides what the rotator does when a page or the display fails.
type ErrorPolicy uint8

const (
	// AbortOnError stops the rotation and returns the error.
	AbortOnError ErrorPolicy = iota

	// SkipOnError logs the error and carries on with the next page once the failed page's
	// turn is over.
	SkipOnError
)

// Option configures a [Rotator].
type Option func(*Rotator)

// WithLogger sets the logger, [slog.Default] otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Rotator) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithDefaultDuration sets the duration of pages registered without one.
func WithDefaultDuration(d time.Duration) Option {
	return func(r *Rotator) {
		if d > 0 {
			r.defaultDuration = d
		}
	}
}

// WithSplashDuration sets how long [Rotator.Init] shows the splash screen. Zero draws the splash
// without waiting.
func WithSplashDuration(d time.Duration) Option {
	return func(r *Rotator) {
		r.splashDuration = max(d, 0)
	}
}

// WithErrorPolicy sets the error policy, [AbortOnError] by default.
func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(r *Rotator) {
		r.policy = policy
	}
}

// WithTracerProvider sets where turn spans go, the global OpenTelemetry provider otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Rotator) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithCoordinator shares an existing coordinator, for controllers created before the rotator.
func WithCoordinator(c *Coordinator) Option {
	return func(r *Rotator) {
		if c != nil {
			r.coord = c
		}
	}
}

// Rotator shows its pages one after the other on a display it owns exclusively.
//
// Pages are registered before [Rotator.Rotate] is called and stay registered for the lifetime of
// the rotator.
type Rotator struct {
	surface         Surface
	pages           registry
	coord           *Coordinator
	next            int
	timer           *time.Timer
	rotating        atomic.Bool
	defaultDuration time.Duration
	splashDuration  time.Duration
	policy          ErrorPolicy
	log             *slog.Logger
	tracer          trace.Tracer
}

// New returns a rotator for surface with room for capacity pages.
func New(surface Surface, capacity int, options ...Option) *Rotator {
	r := &Rotator{
		surface:         surface,
		pages:           newRegistry(capacity),
		coord:           NewCoordinator(),
		defaultDuration: DefaultDuration,
		splashDuration:  defaultSplashDuration,
		log:             slog.Default(),
		tracer:          otel.Tracer(tracerName),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// AddPage registers a page shown for the default duration.
func (r *Rotator) AddPage(p Page) error {
	return r.AddPageWithDuration(p, 0)
}

// AddPageWithDuration registers a page shown for d; a zero d means the default duration.
func (r *Rotator) AddPageWithDuration(p Page, d time.Duration) error {
	if p == nil {
		return ErrNilPage
	}
	if r.rotating.Load() {
		return ErrRotating
	}
	return r.pages.add(Slot{Page: p, Duration: d})
}

// Len returns the number of registered pages.
func (r *Rotator) Len() int {
	return r.pages.len()
}

// Controller returns a handle to move the rotation forward or back.
func (r *Rotator) Controller() Controller {
	return NewController(r.coord)
}

// Init switches the display on and shows the splash screen. It is meant to be called once,
// before Rotate.
func (r *Rotator) Init(ctx context.Context) error {
	if s, ok := r.surface.(interface{ Show(bool) error }); ok {
		if err := s.Show(true); err != nil {
			return fmt.Errorf("pager: switch display on: %w", err)
		}
	}
	if err := r.splash(ctx); err != nil {
		return fmt.Errorf("pager: splash: %w", err)
	}
	return nil
}

// Rotate shows the registered pages in order, each for its duration, until ctx is done or a page
// or the display fails. It returns ctx.Err() in the former case and the failure, wrapped with the
// slot it happened in, in the latter. Under [SkipOnError] only ctx ends the rotation.
func (r *Rotator) Rotate(ctx context.Context) error {
	n := r.pages.len()
	if n == 0 {
		return ErrNoPages
	}
	if !r.rotating.CompareAndSwap(false, true) {
		return ErrRotating
	}
	defer r.rotating.Store(false)

	r.log.Info("pager: rotation started", "pages", n)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.turn(ctx, n); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if r.policy == SkipOnError {
				r.log.Error("pager: page failed, skipping", "error", err)
				continue
			}
			return err
		}
	}
}

// turn runs one page's turn from selection to deactivation.
func (r *Rotator) turn(ctx context.Context, n int) error {
	generation := r.coord.begin()
	command := r.coord.take()

	index, next := navigate(r.next, n, command)
	r.next = next

	var (
		slot     = r.pages.at(index)
		duration = slot.duration(r.defaultDuration)
		fps      = framesPerSecond(slot.Page)
	)

	ctx, span := r.tracer.Start(ctx, "pager.turn", trace.WithAttributes(
		attribute.Int("pager.slot", index),
		attribute.Int64("pager.generation", int64(generation)),
		attribute.String("pager.command", command.String()),
		attribute.String("pager.duration", duration.String()),
		attribute.Int("pager.fps", int(fps)),
	))
	defer span.End()

	r.arm(duration, generation)
	defer r.disarm()

	r.log.Debug("pager: turn started", "slot", index, "generation", generation, "duration", duration, "fps", fps, "command", command)
	start := time.Now()
	if err := r.drive(ctx, slot.Page, fps); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if r.policy == SkipOnError {
			r.idle(ctx)
		}
		return fmt.Errorf("pager: slot %d: %w", index, err)
	}

	reason := r.endReason()
	span.SetAttributes(attribute.String("pager.end", reason))
	r.log.Debug("pager: turn ended", "slot", index, "generation", generation, "reason", reason, "elapsed", time.Since(start))
	return nil
}

// arm starts the timer that ends the turn of generation after d.
func (r *Rotator) arm(d time.Duration, generation uint32) {
	coord := r.coord
	r.timer = time.AfterFunc(d, func() {
		coord.expire(generation)
	})
}

// disarm stops the current turn's timer. A timer that already fired is harmless: its generation
// no longer matches.
func (r *Rotator) disarm() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Rotator) endReason() string {
	switch {
	case r.coord.Pending() != None:
		return r.coord.Pending().String()
	case r.coord.Cancelled():
		return "timeout"
	default:
		return "stopped"
	}
}
