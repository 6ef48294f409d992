// Package profile provides a simple way to generate pprof compatible
// profiles of the constraints added to a model, attributing each
// insertion to the call site that produced it.
//
// The optkit core operates in a single goroutine and so does this
// package: Start, Stop and the recording hooks are meant to be called
// from that same goroutine.
package profile

import (
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/google/pprof/profile"
	"github.com/optkit/optkit/logger"
)

var (
	sessions       []*Profile // active sessions
	activeSessions uint32
)

// Profile represents an active constraint profiling session.
type Profile struct {
	// defaults to ./optkit.pprof
	// if blank, profile is not written to disk
	filePath string

	// details on the pprof format: https://github.com/google/pprof/blob/main/proto/README.md
	pprof profile.Profile

	functions map[string]*profile.Function
	locations map[uint64]*profile.Location

	chDone chan struct{}
}

// Option defines configuration Options for Profile.
type Option func(*Profile)

// WithPath controls the profile destination file. If blank, profile is not written.
//
// Defaults to ./optkit.pprof.
func WithPath(path string) Option {
	return func(p *Profile) {
		p.filePath = path
	}
}

// WithNoOutput indicates that the profile is not going to be written to disk.
//
// This is equivalent to WithPath("")
func WithNoOutput() Option {
	return func(p *Profile) {
		p.filePath = ""
	}
}

// Start creates a new active profiling session. When Stop() is called,
// this session is removed from the active sessions and may be serialized
// to disk as a pprof compatible file (see WithPath option).
//
// It is allowed to create multiple overlapping profiling sessions.
func Start(options ...Option) *Profile {
	// start the worker first time a profiling session starts.
	onceInit.Do(func() {
		go worker()
	})

	p := Profile{
		functions: make(map[string]*profile.Function),
		locations: make(map[uint64]*profile.Location),
		filePath:  filepath.Join(".", "optkit.pprof"),
		chDone:    make(chan struct{}),
	}
	p.pprof.SampleType = []*profile.ValueType{{
		Type: "constraints",
		Unit: "count",
	}}

	for _, option := range options {
		option(&p)
	}

	log := logger.Logger()
	if p.filePath == "" {
		log.Warn().Msg("optkit profiling enabled [not writing to disk]")
	} else {
		log.Info().Str("path", p.filePath).Msg("optkit profiling enabled")
	}

	chCommands <- command{p: &p}
	atomic.AddUint32(&activeSessions, 1)

	return &p
}

// Stop removes the profile from the active sessions and may write the
// pprof file to disk. See WithPath option.
func (p *Profile) Stop() {
	log := logger.Logger()

	if p.chDone == nil {
		log.Fatal().Msg("optkit profile stopped multiple times")
	}

	// ask the worker routine to remove ourselves from the active sessions
	chCommands <- command{p: p, remove: true}

	// wait for the worker routine to remove us.
	<-p.chDone
	p.chDone = nil

	if p.filePath != "" {
		f, err := os.Create(p.filePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create optkit profile")
		}
		if err := p.pprof.Write(f); err != nil {
			log.Error().Err(err).Msg("writing profile")
		}
		f.Close()
		log.Info().Str("path", p.filePath).Msg("optkit profiling disabled")
	} else {
		log.Warn().Msg("optkit profiling disabled [not writing to disk]")
	}
}

// NbConstraints returns the number of samples (constraint insertions)
// collected by the profile session.
func (p *Profile) NbConstraints() int {
	return len(p.pprof.Sample)
}

// RecordConstraint adds a sample (with count == 1) to all the active
// profiling sessions.
func RecordConstraint() {
	if n := atomic.LoadUint32(&activeSessions); n == 0 {
		return // do nothing, no active session.
	}

	// collect the stack and send it async to the worker
	pc := make([]uintptr, 20)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return
	}
	pc = pc[:n]
	chCommands <- command{pc: pc}
}

func (p *Profile) getLocation(frame *runtime.Frame) *profile.Location {
	l, ok := p.locations[uint64(frame.PC)]
	if !ok {
		// first let's see if we have the function.
		f, ok := p.functions[frame.File+frame.Function]
		if !ok {
			f = &profile.Function{
				ID:         uint64(len(p.functions) + 1),
				Name:       shortFunctionName(frame.Function),
				SystemName: frame.Function,
				Filename:   frame.File,
			}

			p.functions[frame.File+frame.Function] = f
			p.pprof.Function = append(p.pprof.Function, f)
		}

		l = &profile.Location{
			ID:   uint64(len(p.locations) + 1),
			Line: []profile.Line{{Function: f, Line: int64(frame.Line)}},
		}
		p.locations[uint64(frame.PC)] = l
		p.pprof.Location = append(p.pprof.Location, l)
	}

	return l
}
