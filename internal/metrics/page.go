package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BeatGlow/pager"
	"github.com/BeatGlow/pager/draw"
)

// Lifecycle stages used as the stage label of [PageMetrics.Errors].
const (
	StageActivate   = "activate"
	StageRender     = "render"
	StageDeactivate = "deactivate"
)

// PageMetrics holds the Prometheus metrics of pages, labelled by page name.
type PageMetrics struct {
	Activations    *prometheus.CounterVec
	Frames         *prometheus.CounterVec
	Errors         *prometheus.CounterVec
	Active         *prometheus.GaugeVec
	RenderDuration *prometheus.HistogramVec
}

// NewPageMetrics creates and registers page metrics on the given registry.
func NewPageMetrics(reg prometheus.Registerer) *PageMetrics {
	m := &PageMetrics{
		Activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "page",
			Name:      "activations_total",
			Help:      "Total number of turns a page was rotated in for.",
		}, []string{"page"}),
		Frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "page",
			Name:      "frames_total",
			Help:      "Total number of frames rendered, by page.",
		}, []string{"page"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "page",
			Name:      "errors_total",
			Help:      "Total number of page errors, by page and lifecycle stage.",
		}, []string{"page", "stage"}),
		Active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "page",
			Name:      "active",
			Help:      "1 while the page owns the display, 0 otherwise.",
		}, []string{"page"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "page",
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering one frame, by page.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{"page"}),
	}

	reg.MustRegister(m.Activations, m.Frames, m.Errors, m.Active, m.RenderDuration)
	return m
}

// Instrument wraps p so that its lifecycle is recorded under name. The wrapper keeps the frame
// rate p declares.
func (m *PageMetrics) Instrument(name string, p pager.Page) pager.Page {
	return &instrumentedPage{Page: p, name: name, m: m}
}

type instrumentedPage struct {
	pager.Page
	name string
	m    *PageMetrics
}

func (p *instrumentedPage) Activated() error {
	p.m.Activations.WithLabelValues(p.name).Inc()
	p.m.Active.WithLabelValues(p.name).Set(1)
	if a, ok := p.Page.(pager.Activator); ok {
		return p.observe(StageActivate, a.Activated())
	}
	return nil
}

func (p *instrumentedPage) Render(dst draw.Image) error {
	start := time.Now()
	err := p.Page.Render(dst)
	p.m.RenderDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())
	p.m.Frames.WithLabelValues(p.name).Inc()
	return p.observe(StageRender, err)
}

func (p *instrumentedPage) Deactivated() error {
	p.m.Active.WithLabelValues(p.name).Set(0)
	if d, ok := p.Page.(pager.Deactivator); ok {
		return p.observe(StageDeactivate, d.Deactivated())
	}
	return nil
}

// FramesPerSecond returns zero, the default rate, for pages without a declared rate.
func (p *instrumentedPage) FramesPerSecond() uint8 {
	if r, ok := p.Page.(pager.FrameRater); ok {
		return r.FramesPerSecond()
	}
	return 0
}

func (p *instrumentedPage) observe(stage string, err error) error {
	if err != nil {
		p.m.Errors.WithLabelValues(p.name, stage).Inc()
	}
	return err
}
