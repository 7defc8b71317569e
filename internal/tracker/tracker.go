package tracker

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	// Positions reported with worse accuracy than this are unreliable
	// and never enter the pipeline.
	maxAccuracyMeters = 15.0
	// Movement below this is GPS jitter: no steps, but the position
	// still becomes the new reference point.
	minMoveMeters = 1.0
	// Rough steps-per-meter for an average walking stride.
	stepsPerMeter = 1.3
	// Linear calories-per-step model, no pace or terrain distinction.
	caloriesPerStep = 0.04

	earthRadiusMeters = 6371000
)

type Position struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	AccuracyM float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

// PositionSource is the device location stream. Watch must return an
// error immediately when the source cannot be started so the caller can
// surface it and stay stopped.
type PositionSource interface {
	Watch(ctx context.Context) (<-chan Position, <-chan error, error)
}

// StepSink receives the accumulated totals after every accepted
// movement. Implementations persist them (daily steps and active
// calories state keys).
type StepSink interface {
	Flush(totalSteps, activeCalories int) error
}

// Tracker filters a raw position stream into step and active-calorie
// totals. One goroutine owns the pipeline; Stop tears the subscription
// down synchronously and clears the previous-position memory so a
// restart cannot compute a jump from stale data.
type Tracker struct {
	source PositionSource
	sink   StepSink

	mu         sync.Mutex
	cancel     context.CancelFunc
	done       chan struct{}
	totalSteps int
	prev       *Position
	hasPrev    bool
	lastErr    error
}

func New(source PositionSource, sink StepSink, initialSteps int) *Tracker {
	return &Tracker{
		source:     source,
		sink:       sink,
		totalSteps: initialSteps,
	}
}

// Start subscribes to the position source. If the source fails to
// start, the error is returned and the tracker remains stopped.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return fmt.Errorf("tracking already started")
	}

	watchCtx, cancel := context.WithCancel(ctx)
	positions, errs, err := t.source.Watch(watchCtx)
	if err != nil {
		cancel()
		return fmt.Errorf("start location watch: %w", err)
	}

	done := make(chan struct{})
	t.cancel = cancel
	t.done = done
	t.lastErr = nil
	go t.run(done, positions, errs)
	return nil
}

// Stop cancels the subscription and waits for the pipeline goroutine
// to drain, then forgets the previous position.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	done := t.done
	t.cancel = nil
	t.done = nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	t.mu.Lock()
	t.prev = nil
	t.hasPrev = false
	t.mu.Unlock()
}

func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

func (t *Tracker) TotalSteps() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalSteps
}

// Wait blocks until the pipeline goroutine exits (source closed or
// Stop called) and reports the first stream error seen during the
// session, if any. Returns immediately when not started.
func (t *Tracker) Wait() error {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done != nil {
		<-done
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

func (t *Tracker) run(done chan struct{}, positions <-chan Position, errs <-chan error) {
	defer close(done)
	for pos := range positions {
		t.Observe(pos)
	}
	// Sources close the position channel after reporting any terminal
	// error; drain it so a dying feed is not mistaken for a clean stop.
	for err := range errs {
		t.recordErr(err)
	}
}

func (t *Tracker) recordErr(err error) {
	if err == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastErr == nil {
		t.lastErr = err
	}
}

// Observe feeds one raw position through the filter. Exposed so tests
// and replay tooling can drive the pipeline without a live source.
func (t *Tracker) Observe(pos Position) (stepsAdded int) {
	if pos.AccuracyM > maxAccuracyMeters {
		// Unreliable fix: dropped entirely, previous unchanged.
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.hasPrev {
		t.prev = &pos
		t.hasPrev = true
		return 0
	}

	distance := Haversine(t.prev.Latitude, t.prev.Longitude, pos.Latitude, pos.Longitude)
	t.prev = &pos

	if distance < minMoveMeters {
		return 0
	}

	stepsAdded = int(math.Round(distance * stepsPerMeter))
	if stepsAdded <= 0 {
		return 0
	}
	t.totalSteps += stepsAdded
	if t.sink != nil {
		_ = t.sink.Flush(t.totalSteps, int(math.Round(float64(t.totalSteps)*caloriesPerStep)))
	}
	return stepsAdded
}

// Haversine returns the great-circle distance in meters between two
// coordinates.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
