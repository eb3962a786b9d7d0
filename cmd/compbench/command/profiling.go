package command

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

type profileOptions struct {
	cpuProfile   string
	memProfile   string
	blockProfile string
}

type profiler struct {
	cpu, mem, block *os.File
}

func startProfiling(o profileOptions) (*profiler, error) {
	p := &profiler{}
	if err := p.start(o); err != nil {
		return nil, errors.Join(err, p.stop())
	}
	return p, nil
}

func (p *profiler) start(o profileOptions) error {
	// Start CPU profiling.
	if o.cpuProfile != "" {
		file, err := os.Create(o.cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create cpu profile %q: %w", o.cpuProfile, err)
		}
		if err := pprof.StartCPUProfile(file); err != nil {
			file.Close()
			return fmt.Errorf("could not start cpu profile %q: %w", o.cpuProfile, err)
		}
		p.cpu = file
	}

	// Start memory profiling.
	if o.memProfile != "" {
		file, err := os.Create(o.memProfile)
		if err != nil {
			return fmt.Errorf("could not create memory profile %q: %w", o.memProfile, err)
		}
		p.mem = file
		runtime.MemProfileRate = 4096
	}

	// Start block profiling.
	if o.blockProfile != "" {
		file, err := os.Create(o.blockProfile)
		if err != nil {
			return fmt.Errorf("could not create block profile %q: %w", o.blockProfile, err)
		}
		p.block = file
		runtime.SetBlockProfileRate(1)
	}

	return nil
}

func (p *profiler) stop() error {
	if p == nil {
		return nil
	}
	var errs []error

	if p.cpu != nil {
		pprof.StopCPUProfile()
		if err := p.cpu.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing cpu profile: %w", err))
		}
		p.cpu = nil
	}

	if p.mem != nil {
		if err := pprof.Lookup("heap").WriteTo(p.mem, 0); err != nil {
			errs = append(errs, fmt.Errorf("could not write mem profile: %w", err))
		}
		if err := p.mem.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing mem profile: %w", err))
		}
		p.mem = nil
	}

	if p.block != nil {
		if err := pprof.Lookup("block").WriteTo(p.block, 0); err != nil {
			errs = append(errs, fmt.Errorf("could not write block profile: %w", err))
		}
		if err := p.block.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing block profile: %w", err))
		}
		p.block = nil
		runtime.SetBlockProfileRate(0)
	}

	return errors.Join(errs...)
}
