// Package scanner runs the barcode acquisition loop: while scanning, a
// frame is captured at a fixed cadence and fed to the decoder; the first
// decoded code triggers exactly one product lookup and ends the scan.
package scanner

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"caloriescan/internal/model"
)

type State int

const (
	StateIdle State = iota
	StateScanning
	StateResolving
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateResolving:
		return "resolving"
	default:
		return "idle"
	}
}

// FrameSource hands out the current camera frame on demand. A frame
// that is not ready yet is reported as an error and treated as a miss.
type FrameSource interface {
	Frame(ctx context.Context) (image.Image, error)
}

// Decoder extracts a barcode payload from a frame. Any failure means
// "no code in this frame", never a terminal condition.
type Decoder interface {
	Decode(img image.Image) (string, error)
}

// LookupFunc resolves a decoded barcode into a product.
type LookupFunc func(ctx context.Context, code string) (model.Product, error)

// Result is the outcome of one resolved scan. Seq increases with every
// accepted decode; consumers drop results whose Seq predates the latest
// one they have already taken.
type Result struct {
	Seq     uint64
	Code    string
	Product model.Product
	Err     error
}

type Config struct {
	Interval time.Duration // tick cadence, default 1s
	Timeout  time.Duration // lookup deadline, default 10s
	Logger   *zap.Logger
}

type Scanner struct {
	frames   FrameSource
	decoder  Decoder
	lookup   LookupFunc
	interval time.Duration
	timeout  time.Duration
	log      *zap.Logger

	mu     sync.Mutex
	state  State
	seq    uint64
	cancel context.CancelFunc
	done   chan struct{}

	results chan Result
}

func New(frames FrameSource, decoder Decoder, lookup LookupFunc, cfg Config) *Scanner {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Scanner{
		frames:   frames,
		decoder:  decoder,
		lookup:   lookup,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		log:      cfg.Logger,
		results:  make(chan Result, 1),
	}
}

// Start moves the scanner from Idle to Scanning and begins ticking.
func (s *Scanner) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return fmt.Errorf("scanner is %s, not idle", s.state)
	}
	ctx, cancel := context.WithCancel(ctx)
	s.state = StateScanning
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx)
	return nil
}

// Stop cancels scanning and waits for the loop to exit. After Stop
// returns, no further tick fires and no result is delivered.
func (s *Scanner) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scanner) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Results delivers at most one Result per completed scan.
func (s *Scanner) Results() <-chan Result {
	return s.results
}

func (s *Scanner) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.setState(StateIdle)
			return
		case <-ticker.C:
			if resolved := s.tick(ctx); resolved {
				return
			}
		}
	}
}

// tick captures and decodes one frame. It reports true when a barcode
// was resolved (successfully or not) and the loop should end.
func (s *Scanner) tick(ctx context.Context) bool {
	// Ticks that fire while a lookup is in flight or after cancellation
	// are discarded.
	s.mu.Lock()
	if s.state != StateScanning {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	img, err := s.frames.Frame(ctx)
	if err != nil {
		s.log.Debug("frame not ready", zap.Error(err))
		return false
	}
	code, err := s.decoder.Decode(img)
	if err != nil || code == "" {
		// Expected steady state while scanning: wait for the next tick.
		return false
	}

	s.mu.Lock()
	if s.state != StateScanning {
		s.mu.Unlock()
		return false
	}
	s.state = StateResolving
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.log.Debug("barcode decoded", zap.String("code", code), zap.Uint64("seq", seq))
	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	product, lookupErr := s.lookup(lookupCtx, code)
	cancel()

	s.setState(StateIdle)
	if ctx.Err() != nil {
		return true
	}
	res := Result{Seq: seq, Code: code, Product: product, Err: lookupErr}
	select {
	case s.results <- res:
	default:
		// An unconsumed older result loses to the fresher one.
		select {
		case <-s.results:
		default:
		}
		s.results <- res
	}
	return true
}

func (s *Scanner) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
