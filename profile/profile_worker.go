package profile

import (
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/pprof/profile"
)

// since we are assuming usage of this package from a single goroutine,
// this channel has one producer and one consumer. Its purpose is to
// guarantee the order of execution of adding / removing a profiling
// session and sampling events, while letting the caller record events
// asynchronously.
var chCommands = make(chan command, 100)
var onceInit sync.Once

type command struct {
	p      *Profile
	pc     []uintptr
	remove bool
}

func worker() {
	for c := range chCommands {
		if c.p != nil {
			if c.remove {
				for i := 0; i < len(sessions); i++ {
					if sessions[i] == c.p {
						sessions[i] = sessions[len(sessions)-1]
						sessions = sessions[:len(sessions)-1]
						break
					}
				}
				close(c.p.chDone)
				atomic.AddUint32(&activeSessions, ^uint32(0))
			} else {
				sessions = append(sessions, c.p)
			}
			continue
		}

		collectSample(c.pc)
	}
}

// collectSample must be called from the worker goroutine
func collectSample(pc []uintptr) {
	// for each session we may have a distinct sample, since the ids of
	// functions and locations may mismatch between sessions
	samples := make([]*profile.Sample, len(sessions))
	for i := range samples {
		samples[i] = &profile.Sample{Value: []int64{1}} // one new constraint
	}

	frames := runtime.CallersFrames(pc)
	for {
		frame, more := frames.Next()

		if strings.HasSuffix(frame.Function, ".func1") {
			// skip anonymous wrappers, they carry no attribution value
			continue
		}

		if strings.Contains(frame.Function, "optkit/constraint.") ||
			strings.Contains(frame.Function, "optkit/profile.") {
			// keep only the caller's frames, not our own plumbing
			continue
		}

		for i := range samples {
			samples[i].Location = append(samples[i].Location, sessions[i].getLocation(&frame))
		}

		if !more {
			break
		}
	}

	for i := range samples {
		if len(samples[i].Location) == 0 {
			continue
		}
		sessions[i].pprof.Sample = append(sessions[i].pprof.Sample, samples[i])
	}
}

func shortFunctionName(name string) string {
	fe := strings.Split(name, "/")
	return fe[len(fe)-1]
}
