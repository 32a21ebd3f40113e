package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tonhe/tcpflo/internal/config"
	"github.com/tonhe/tcpflo/internal/probe"
	"github.com/tonhe/tcpflo/internal/samplelog"
	"github.com/tonhe/tcpflo/internal/targets"
)

// Sampler probes every target in order and appends one sample per probe to
// the target's log. It is the only writer of those logs.
type Sampler struct {
	mu      sync.RWMutex
	targets []targets.Target
	logs    []samplelog.Log
	prober  probe.Prober
	timeout time.Duration
	delay   time.Duration
	cadence string
	rounds  int
	logger  *log.Logger
	now     func() time.Time
	info    SamplerInfo
}

// NewSampler creates a Sampler for the given targets. A rounds value of 0 in
// cfg means run until cancelled.
func NewSampler(cfg *config.Config, list []targets.Target, prober probe.Prober, logger *log.Logger) *Sampler {
	logs := make([]samplelog.Log, len(list))
	for i, t := range list {
		logs[i] = samplelog.Log{Path: t.Log}
	}
	return &Sampler{
		targets: list,
		logs:    logs,
		prober:  prober,
		timeout: cfg.Timeout,
		delay:   cfg.Delay,
		cadence: cfg.Cadence,
		rounds:  cfg.Rounds,
		logger:  logger.With("worker", "sampler"),
		now:     time.Now,
	}
}

// Run executes sampling rounds until the round ceiling is reached or ctx is
// cancelled.
func (s *Sampler) Run(ctx context.Context) {
	s.setState(WorkerRunning)
	defer s.setState(WorkerStopped)

	s.ensureLogDirs()

	for round := 0; s.rounds == 0 || round < s.rounds; round++ {
		for i := range s.targets {
			if ctx.Err() != nil {
				return
			}
			s.probeTarget(ctx, i)
			if s.cadence != config.CadenceRound {
				if !sleep(ctx, s.delay) {
					return
				}
			}
		}
		if s.cadence == config.CadenceRound {
			if !sleep(ctx, s.delay) {
				return
			}
		}

		s.mu.Lock()
		s.info.Rounds++
		s.mu.Unlock()
	}
	s.logger.Info("round ceiling reached", "rounds", s.rounds)
}

// probeTarget measures one target and appends the result. A failed probe is
// recorded as the sentinel; a probe cut short by shutdown is not recorded.
func (s *Sampler) probeTarget(ctx context.Context, i int) {
	target := s.targets[i]
	rtt, err := s.prober.Probe(ctx, target.Host, target.Port, s.timeout)
	if ctx.Err() != nil {
		return
	}
	now := s.now()

	sample := samplelog.Measured(now, probe.Milliseconds(rtt))
	if err != nil {
		sample = samplelog.Failure(now)
		s.logger.Debug("probe failed", "target", target.Label, "err", err)
	}

	writeErr := s.logs[i].Append(sample)

	s.mu.Lock()
	defer s.mu.Unlock()
	if writeErr != nil {
		s.info.WriteErrors++
		s.logger.Error("append sample", "target", target.Label, "err", writeErr)
		return
	}
	s.info.Samples++
	if sample.Failed {
		s.info.Failures++
	}
	s.info.LastSample = now
}

func (s *Sampler) ensureLogDirs() {
	seen := make(map[string]bool)
	for _, l := range s.logs {
		dir := filepath.Dir(l.Path)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := os.MkdirAll(dir, 0755); err != nil {
			s.logger.Error("create log dir", "dir", dir, "err", err)
		}
	}
}

// Info returns a snapshot of sampler progress.
func (s *Sampler) Info() SamplerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

func (s *Sampler) setState(state WorkerState) {
	s.mu.Lock()
	s.info.State = state
	s.mu.Unlock()
}

// sleep waits for d or until ctx is done. It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
