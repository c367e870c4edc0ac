package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
)

// Config names the output files; empty fields disable that profiler.
type Config struct {
	CPU   string
	Mem   string
	Trace string
}

// Profiler owns the files of one profiling session.
type Profiler struct {
	once      sync.Once
	cpuFile   *os.File
	traceFile *os.File
	memPath   string
}

// Start enables the profilers named in cfg. On error nothing is left running.
func Start(cfg Config) (*Profiler, error) {
	p := &Profiler{memPath: cfg.Mem}
	if cfg.CPU != "" {
		f, err := os.Create(cfg.CPU)
		if err != nil {
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		p.cpuFile = f
	}
	if cfg.Trace != "" {
		f, err := os.Create(cfg.Trace)
		if err == nil {
			if err = trace.Start(f); err != nil {
				_ = f.Close()
			}
		}
		if err != nil {
			p.stopCPU()
			return nil, fmt.Errorf("failed to start trace: %w", err)
		}
		p.traceFile = f
	}
	return p, nil
}

// Stop ends every active profiler and writes the heap profile. Only the first
// call has an effect.
func (p *Profiler) Stop() error {
	var err error
	p.once.Do(func() {
		if p.traceFile != nil {
			trace.Stop()
			err = errors.Join(err, p.traceFile.Close())
		}
		err = errors.Join(err, p.stopCPU())
		if p.memPath != "" {
			err = errors.Join(err, writeMem(p.memPath))
		}
	})
	return err
}

func (p *Profiler) stopCPU() error {
	if p.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := p.cpuFile.Close()
	p.cpuFile = nil
	return err
}

// writeMem captures a heap profile to the supplied file path.
func writeMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
