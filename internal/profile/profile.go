// Package profile writes pprof profiles covering a whole viewer run.
package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
)

// Profiler records a CPU profile for the whole run and, when heapPath is set,
// a heap profile of the allocated pipeline buffers on Stop.
type Profiler struct {
	cpu      *os.File
	heapPath string
	once     sync.Once
	err      error
}

// Start starts whichever profiles have a path. Either path may be
// empty; with both empty it returns a Profiler whose Stop does nothing.
func Start(cpuPath, heapPath string) (*Profiler, error) {
	p := &Profiler{heapPath: heapPath}
	if cpuPath == "" {
		return p, nil
	}
	f, err := os.Create(cpuPath)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("cpu profile %s: %w", cpuPath, err)
	}
	p.cpu = f
	return p, nil
}

// Stop flushes the profiles. Later calls return the first result.
func (p *Profiler) Stop() error {
	p.once.Do(func() {
		if p.cpu != nil {
			pprof.StopCPUProfile()
			p.err = p.cpu.Close()
		}
		if p.heapPath != "" {
			p.err = errors.Join(p.err, writeHeapProfile(p.heapPath))
		}
	})
	return p.err
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("heap profile %s: %w", path, err)
	}
	return f.Close()
}
