package session

import "time"

// Observer is told about session starts, stops and every command, e.g. to
// export metrics. Implementations must be safe for concurrent use.
type Observer interface {
	SessionStarted(err error)
	SessionStopped(err error)
	CommandDone(command string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) SessionStarted(error)                      {}
func (nopObserver) SessionStopped(error)                      {}
func (nopObserver) CommandDone(string, time.Duration, error) {}
