package gareporter

import "time"

// Tracker is the set of tracking operations implemented by Reporter. Code that reports
// analytics can depend on Tracker so that it can be given NewNullTracker() when analytics
// are disabled entirely.
type Tracker interface {
	ScreenView(name string, parameters map[string]string)
	Session(start bool, parameters map[string]string)
	Event(category, action, label string, parameters map[string]string)
	Exception(description string, isFatal bool, parameters map[string]string)
	Timing(category, name, label string, d time.Duration, parameters map[string]string)
	Close() error
}

var _ Tracker = (*Reporter)(nil)

type nullTracker struct{}

// NewNullTracker creates a no-op implementation of Tracker.
func NewNullTracker() Tracker {
	return nullTracker{}
}

func (n nullTracker) ScreenView(name string, parameters map[string]string) {}

func (n nullTracker) Session(start bool, parameters map[string]string) {}

func (n nullTracker) Event(category, action, label string, parameters map[string]string) {}

func (n nullTracker) Exception(description string, isFatal bool, parameters map[string]string) {}

func (n nullTracker) Timing(category, name, label string, d time.Duration, parameters map[string]string) {
}

func (n nullTracker) Close() error {
	return nil
}
