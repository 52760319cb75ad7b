package gareporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNullTracker(t *testing.T) {
	// Just verifies that these methods don't panic
	n := NewNullTracker()
	n.ScreenView("Home", nil)
	n.Session(true, nil)
	n.Event("video", "play", "", nil)
	n.Exception("boom", true, nil)
	n.Timing("load", "home", "", time.Second, nil)
	require.NoError(t, n.Close())
}
