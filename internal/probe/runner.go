package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/probeherd/probeherd/internal/config"
	"github.com/probeherd/probeherd/internal/event"
	"github.com/probeherd/probeherd/internal/exception"
	"github.com/probeherd/probeherd/internal/logger"
)

// Runner executes one probe sequentially against an ordered set of
// targets. A failing target never prevents subsequent targets from
// being probed; every target appears in the result sequence exactly
// once, in the order the inventory provides them.
type Runner struct {
	targets    []config.Target
	probe      Probe
	timeout    time.Duration
	evtManager event.Manager
	log        logger.Logger
}

// NewRunner returns a runner for the given targets and probe. The
// timeout bounds each individual probe execution; a non-positive value
// falls back to the inventory default. The event manager may be nil
// when no progress reporting is needed.
func NewRunner(
	targets []config.Target,
	p Probe,
	timeout time.Duration,
	evtManager event.Manager,
) (*Runner, error) {
	if len(targets) == 0 {
		return nil, exception.NewConfigError("no targets to probe")
	}

	if p == nil {
		return nil, exception.NewConfigError("no probe implementation provided")
	}

	if timeout <= 0 {
		timeout = time.Duration(config.DefaultTimeoutSeconds) * time.Second
	}

	return &Runner{
		targets:    targets,
		probe:      p,
		timeout:    timeout,
		evtManager: evtManager,
		log:        logger.New(),
	}, nil
}

// Run probes every target in order and returns one result per target.
// Per-target failures are captured in results and never returned as
// errors. Cancellation of ctx terminates the run immediately and
// discards any partial results.
func (r *Runner) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, 0, len(r.targets))

	for _, target := range r.targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r.sendEvent(event.Event{
			Type:    event.ProbeStartedEventType,
			Payload: target.ID,
		})

		result := r.probeTarget(ctx, target)

		// a cancellation mid-probe ends the run, not just the target
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		results = append(results, result)

		r.sendEvent(event.Event{
			Type:    event.ProbeCompletedEventType,
			Payload: result,
		})
	}

	return results, nil
}

// probeTarget runs a single Pending -> Running -> Completed execution
func (r *Runner) probeTarget(ctx context.Context, target config.Target) *Result {
	timeout := r.timeout

	if target.TimeoutSeconds > 0 {
		timeout = time.Duration(target.TimeoutSeconds) * time.Second
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r.log.Debug().
		Str("target", target.ID).
		Dur("timeout", timeout).
		Msg("probing target")

	start := time.Now()

	result, err := r.probe.Execute(probeCtx, target)

	elapsed := time.Since(start)

	if result == nil {
		result = &Result{}
	}

	result.TargetID = target.ID
	result.Label = target.Label
	result.Probe = r.probe.Describe()
	result.Duration = elapsed

	if err == nil {
		result.Outcome = OutcomeSuccess
		return result
	}

	result.Outcome = OutcomeFailure

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(probeCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.Error = fmt.Sprintf("probe timed out after %s", timeout)
	} else {
		result.Error = err.Error()
	}

	r.log.Debug().
		Str("target", target.ID).
		Str("error", result.Error).
		Msg("probe failed")

	return result
}

func (r *Runner) sendEvent(evt event.Event) {
	if r.evtManager == nil {
		return
	}

	r.evtManager.Send(evt)
}
