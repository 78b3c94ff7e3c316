package param

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// ErrInvalidParameter is returned by New for a malformed definition.
var ErrInvalidParameter = errors.New("param: invalid parameter")

// Parameter is one automatable plugin control.
type Parameter struct {
	ID      string
	Name    string
	Unit    string
	Range   Range
	Default float64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)

	// Plain value as float32 bits for lock-free access in the audio thread.
	value atomic.Uint32
}

// Option configures a Parameter at construction.
type Option func(*Parameter) error

// WithUnit sets the display unit.
func WithUnit(unit string) Option {
	return func(p *Parameter) error {
		p.Unit = unit
		return nil
	}
}

// WithFormatter sets custom value formatting and parsing. Either function
// may be nil to keep the default.
func WithFormatter(format func(float64) string, parse func(string) (float64, error)) Option {
	return func(p *Parameter) error {
		p.formatFunc = format
		p.parseFunc = parse

		return nil
	}
}

// New creates a parameter set to its default value.
func New(id, name string, r Range, def float64, opts ...Option) (*Parameter, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidParameter)
	}

	if _, err := NewRange(r.Min, r.Max, r.Interval, r.Skew); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidParameter, id, err)
	}

	if def < r.Min || def > r.Max || math.IsNaN(def) {
		return nil, fmt.Errorf("%w %q: default %g outside [%g, %g]", ErrInvalidParameter, id, def, r.Min, r.Max)
	}

	p := &Parameter{
		ID:      id,
		Name:    name,
		Range:   r,
		Default: def,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	p.Reset()

	return p, nil
}

// Load returns the current plain value.
func (p *Parameter) Load() float32 {
	return math.Float32frombits(p.value.Load())
}

// Store snaps v to the range and sets it as the current plain value.
func (p *Parameter) Store(v float64) {
	p.value.Store(math.Float32bits(float32(p.Range.Snap(v))))
}

// Normalized returns the current value mapped to [0, 1].
func (p *Parameter) Normalized() float64 {
	return p.Range.ConvertTo0to1(float64(p.Load()))
}

// SetNormalized sets the value from a normalized position in [0, 1].
func (p *Parameter) SetNormalized(n float64) {
	p.Store(p.Range.ConvertFrom0to1(n))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.Store(p.Default)
}

// Format returns plain formatted for display.
func (p *Parameter) Format(plain float64) string {
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}

	s := strconv.FormatFloat(plain, 'f', 2, 64)
	if p.Unit != "" {
		s += " " + p.Unit
	}

	return s
}

// Parse converts display text to a plain value. The result is not stored.
func (p *Parameter) Parse(text string) (float64, error) {
	if p.parseFunc != nil {
		return p.parseFunc(text)
	}

	return strconv.ParseFloat(text, 64)
}

// Set parses text and stores the result.
func (p *Parameter) Set(text string) error {
	v, err := p.Parse(text)
	if err != nil {
		return fmt.Errorf("param %q: %w", p.ID, err)
	}

	p.Store(v)

	return nil
}

// String formats the current value.
func (p *Parameter) String() string {
	return p.Format(float64(p.Load()))
}
