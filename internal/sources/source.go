// Package sources produces raw domain readings, either from a live upstream
// provider or from a deterministic simulation of one.
package sources

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"gaia-platform/internal/models"
	"gaia-platform/pkg/upstream"
)

// SimulatedName is the Name of every simulated source.
const SimulatedName = models.SourceSimulated

var (
	// ErrNotConfigured is returned by live sources missing a credential.
	ErrNotConfigured = errors.New("source not configured")

	// ErrNoData is returned when an upstream answered but yielded no usable points.
	ErrNoData = errors.New("upstream returned no data points")
)

// DomainSource produces one domain's reading for a location.
type DomainSource[R any] interface {
	Name() string
	Fetch(ctx context.Context, q models.LocationQuery) (R, error)
}

// Clock returns the current time. Sources take one so output is reproducible.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time { return time.Now().UTC() }

// Endpoint is an upstream base URL with its per-call timeout.
type Endpoint struct {
	BaseURL string
	Timeout time.Duration
}

// UpstreamError wraps a failed live fetch with the provider it came from.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsTransient reports whether retrying later could succeed.
func (e *UpstreamError) IsTransient() bool {
	var statusErr *upstream.StatusError
	if errors.As(e.Err, &statusErr) {
		return statusErr.IsTransient()
	}
	return !errors.Is(e.Err, ErrNotConfigured) && !errors.Is(e.Err, ErrNoData)
}

func wrap(source string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Source: source, Err: err}
}

// rngFor seeds a generator from the source name and the coordinates, so the
// same location always simulates the same reading.
func rngFor(name string, q models.LocationQuery) *rand.Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%.4f|%.4f", name, q.Lat, q.Lon)
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// between draws uniformly from [lo, hi).
func between(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// seasonalMoisture estimates topsoil moisture from the calendar month.
func seasonalMoisture(now time.Time) float64 {
	month := float64(now.Month() - 1)
	factor := math.Cos(month/12*2*math.Pi)*0.3 + 0.5
	return math.Round(factor*45*10) / 10
}

func ptr(v float64) *float64 { return &v }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
