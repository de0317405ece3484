// Package runner executes the probed binary and converts every execution
// failure (spawn error, timeout) into a uniform result shape instead of an
// error return.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sync/errgroup"
)

// TimeoutExitCode is the sentinel exit code for timeouts and spawn
// failures, distinguishable from any normal non-zero exit.
const TimeoutExitCode = -1

// Default execution limits
const (
	DefaultTimeout        = 30 * time.Second
	DefaultSampleInterval = 100 * time.Millisecond
	DefaultSampleCap      = 10 * time.Second
)

// Command describes one invocation of an external executable
type Command struct {
	Path string
	Args []string
	Dir  string
}

// Result is the uniform outcome of a command execution
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Elapsed  time.Duration
	TimedOut bool
}

// Success reports whether the command completed with exit 0
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// ConcurrentResult is the outcome of a parallel fan-out: one Result per
// invocation plus the wall clock from first launch to last completion.
type ConcurrentResult struct {
	Results   []Result
	TotalTime time.Duration
}

// Runner runs commands with a per-invocation timeout
type Runner struct {
	Timeout time.Duration
}

// New creates a Runner with the given timeout, falling back to the default.
func New(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{Timeout: timeout}
}

// Run executes the command and waits for completion. Timeouts kill the
// child process and surface as TimeoutExitCode with an explanatory stderr;
// the returned Result is always complete.
func (r *Runner) Run(ctx context.Context, cmd Command) Result {
	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(runCtx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	elapsed := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		return Result{
			ExitCode: TimeoutExitCode,
			Stderr:   fmt.Sprintf("command timed out after %s", r.Timeout),
			Elapsed:  elapsed,
			TimedOut: true,
		}
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return Result{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				Elapsed:  elapsed,
			}
		}
		// Spawn failure: binary missing, not executable, etc.
		return Result{
			ExitCode: TimeoutExitCode,
			Stderr:   err.Error(),
			Elapsed:  elapsed,
		}
	}

	return Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Elapsed:  elapsed,
	}
}

// RunSampled executes the command while polling its resident memory at the
// given interval until process exit or the hard cap. Samples are in MB. An
// empty sample set means the process exited before the first poll or memory
// introspection is unsupported; callers must treat that as SKIP, not FAIL.
func (r *Runner) RunSampled(ctx context.Context, cmd Command, interval, sampleCap time.Duration) (Result, []float64) {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}

	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(runCtx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	if err := c.Start(); err != nil {
		return Result{ExitCode: TimeoutExitCode, Stderr: err.Error(), Elapsed: time.Since(start)}, nil
	}

	done := make(chan error, 1)
	go func() { done <- c.Wait() }()

	var samples []float64
	proc, procErr := process.NewProcess(int32(c.Process.Pid))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.After(sampleCap)

	waitErr := error(nil)
sampling:
	for {
		select {
		case waitErr = <-done:
			break sampling
		case <-deadline:
			waitErr = <-done
			break sampling
		case <-ticker.C:
			if procErr != nil {
				continue
			}
			info, err := proc.MemoryInfo()
			if err != nil {
				// Process already gone or introspection unsupported
				continue
			}
			samples = append(samples, float64(info.RSS)/1024/1024)
		}
	}
	elapsed := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		return Result{
			ExitCode: TimeoutExitCode,
			Stderr:   fmt.Sprintf("command timed out after %s", r.Timeout),
			Elapsed:  elapsed,
			TimedOut: true,
		}, samples
	}

	exitCode := 0
	if waitErr != nil {
		exitCode = TimeoutExitCode
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}

	return Result{
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Elapsed:  elapsed,
	}, samples
}

// RunConcurrent launches n independent invocations of the same command and
// joins them with a barrier: it returns only when every invocation has
// finished or hit its own timeout. Each goroutine writes exactly one
// pre-assigned slot, so no locking is needed beyond the join.
func (r *Runner) RunConcurrent(ctx context.Context, n int, cmd Command) ConcurrentResult {
	if n <= 0 {
		n = 1
	}

	results := make([]Result, n)
	g, gCtx := errgroup.WithContext(ctx)

	start := time.Now()
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i] = r.Run(gCtx, cmd)
			return nil
		})
	}
	// Goroutines never return errors; Run converts all failures to Results.
	_ = g.Wait()

	return ConcurrentResult{
		Results:   results,
		TotalTime: time.Since(start),
	}
}
