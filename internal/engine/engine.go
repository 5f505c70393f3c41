// Package engine runs rotation-expression evaluation behind a single actor
// goroutine. The actor owns the pseudo-random generator, so sampling is
// reproducible from a seed and safe under concurrent callers without locks.
package engine

import (
	"context"
	"time"

	"gonum.org/v1/gonum/num/quat"

	"so3kit/expr"
	"so3kit/linalg"
	"so3kit/so3"
)

// Sample is one random orientation drawn from the Haar measure.
type Sample struct {
	Quat quat.Number `json:"quat"`
	TS   time.Time   `json:"ts"`
}

type evalReq struct {
	chain []expr.RelativeRotation
	reply chan evalReply
}

type evalReply struct {
	result ChainResult
	err    error
}

type sampleReq struct {
	reply chan quat.Number
}

type subscribeReq struct {
	ch chan Sample
}

// Engine evaluates rotation chains and serves orientation samples.
type Engine struct {
	evalCh      chan evalReq
	sampleCh    chan sampleReq
	subscribeCh chan subscribeReq
	unsubCh     chan chan Sample

	seed   int64
	tickHz float64
}

// Config holds the engine settings.
type Config struct {
	// Seed for the engine-owned generator. Zero means seed from the clock.
	Seed int64
	// TickHz is the rate of the sample stream. Defaults to 20.
	TickHz float64
}

// New creates an engine. Call Run to start it.
func New(cfg Config) *Engine {
	if cfg.TickHz <= 0 {
		cfg.TickHz = 20
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Engine{
		evalCh:      make(chan evalReq, 32),
		sampleCh:    make(chan sampleReq, 32),
		subscribeCh: make(chan subscribeReq, 32),
		unsubCh:     make(chan chan Sample, 32),
		seed:        cfg.Seed,
		tickHz:      cfg.TickHz,
	}
}

// EvaluateChain composes the exponential maps of the given relative
// rotations and returns the result with its Jacobians.
func (e *Engine) EvaluateChain(ctx context.Context, chain []expr.RelativeRotation) (ChainResult, error) {
	req := evalReq{chain: chain, reply: make(chan evalReply, 1)}
	select {
	case e.evalCh <- req:
	case <-ctx.Done():
		return ChainResult{}, ctx.Err()
	}

	select {
	case rep := <-req.reply:
		return rep.result, rep.err
	case <-ctx.Done():
		return ChainResult{}, ctx.Err()
	}
}

// RandomOrientation draws one Haar-uniform orientation from the
// engine-owned generator.
func (e *Engine) RandomOrientation(ctx context.Context) (quat.Number, error) {
	req := sampleReq{reply: make(chan quat.Number, 1)}
	select {
	case e.sampleCh <- req:
	case <-ctx.Done():
		return quat.Number{}, ctx.Err()
	}

	select {
	case q := <-req.reply:
		return q, nil
	case <-ctx.Done():
		return quat.Number{}, ctx.Err()
	}
}

// Subscribe returns a channel of periodic orientation samples and an
// unsubscribe function. Slow subscribers drop samples.
func (e *Engine) Subscribe(ctx context.Context) (<-chan Sample, func()) {
	ch := make(chan Sample, 32)

	select {
	case e.subscribeCh <- subscribeReq{ch: ch}:
	case <-ctx.Done():
		close(ch)
		return ch, func() {}
	}

	unsub := func() {
		select {
		case e.unsubCh <- ch:
		default:
		}
	}
	return ch, unsub
}

// Run owns all mutable engine state until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	rng := newRand(e.seed)
	subs := map[chan Sample]struct{}{}

	drawSample := func(ts time.Time) Sample {
		q := so3.RandomQuaternion[float64](rng)
		return Sample{Quat: linalg.Number(q), TS: ts}
	}

	publish := func(s Sample) {
		for ch := range subs {
			select {
			case ch <- s:
			default:
				// slow subscriber -> drop sample
			}
		}
	}

	tick := time.NewTicker(time.Duration(float64(time.Second) / e.tickHz))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			for ch := range subs {
				close(ch)
			}
			return nil

		case req := <-e.subscribeCh:
			subs[req.ch] = struct{}{}
			req.ch <- drawSample(time.Now())

		case ch := <-e.unsubCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case req := <-e.sampleCh:
			q := so3.RandomQuaternion[float64](rng)
			req.reply <- linalg.Number(q)

		case req := <-e.evalCh:
			result, err := EvaluateChain(req.chain)
			req.reply <- evalReply{result: result, err: err}

		case t := <-tick.C:
			if len(subs) > 0 {
				publish(drawSample(t))
			}
		}
	}
}
