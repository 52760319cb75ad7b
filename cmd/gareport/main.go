// Command gareport sends a single Google Analytics hit from the command line.
//
//	gareport [flags] event CATEGORY ACTION [LABEL]
//	gareport [flags] screen NAME
//	gareport [flags] session start|end
//	gareport [flags] exception DESCRIPTION [fatal]
//	gareport [flags] timing CATEGORY NAME DURATION [LABEL]
//
// DURATION is a Go duration ("1.5s") or a number of seconds. The anonymous client ID is
// kept in a JSON file so that repeated runs report as the same user.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	gareporter "github.com/gareporter/go-gareporter"
	"github.com/gareporter/go-gareporter/filestore"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "gareport:", err)
		os.Exit(2)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("gareport", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML settings file")
	trackerID := fs.String("tracker", "", "tracker ID, UA-XXXXX-XX (overrides the settings file)")
	storePath := fs.String("store", "", "file that holds the anonymous client ID (overrides the settings file)")
	verbose := fs.Bool("verbose", false, "log each request and any delivery failure")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := loadSettings(*configPath)
	if err != nil {
		return err
	}
	if *trackerID != "" {
		s.TrackerID = *trackerID
	}
	if *storePath != "" {
		s.StorePath = *storePath
	}
	if *verbose {
		s.Verbose = true
	}
	if s.TrackerID == "" {
		return errors.New("no tracker ID; use -tracker or set trackerId in the settings file")
	}

	h, err := parseHit(fs.Args())
	if err != nil {
		return err
	}

	config := s.reporterConfig()
	config.Loggers = ldlog.NewDefaultLoggers()
	if s.StorePath == "" {
		if s.StorePath, err = filestore.DefaultPath("gareport"); err != nil {
			return err
		}
	}
	config.Store = filestore.New(s.StorePath)

	reporter := gareporter.NewReporter(config)
	reporter.Configure(s.TrackerID)
	h.report(reporter)
	return reporter.Close()
}

// hit is a parsed command line hit.
type hit struct {
	kind        string
	category    string
	action      string
	label       string
	description string
	fatal       bool
	start       bool
	duration    time.Duration
}

func parseHit(args []string) (hit, error) {
	if len(args) == 0 {
		return hit{}, errors.New("missing hit type: event, screen, session, exception or timing")
	}
	h := hit{kind: args[0]}
	rest := args[1:]
	switch h.kind {
	case "event":
		if len(rest) < 2 || len(rest) > 3 {
			return h, errors.New("usage: event CATEGORY ACTION [LABEL]")
		}
		h.category, h.action = rest[0], rest[1]
		if len(rest) == 3 {
			h.label = rest[2]
		}
	case "screen":
		if len(rest) != 1 {
			return h, errors.New("usage: screen NAME")
		}
		h.label = rest[0]
	case "session":
		if len(rest) != 1 || (rest[0] != "start" && rest[0] != "end") {
			return h, errors.New("usage: session start|end")
		}
		h.start = rest[0] == "start"
	case "exception":
		if len(rest) < 1 || len(rest) > 2 || (len(rest) == 2 && rest[1] != "fatal") {
			return h, errors.New("usage: exception DESCRIPTION [fatal]")
		}
		h.description = rest[0]
		h.fatal = len(rest) == 2
	case "timing":
		if len(rest) < 3 || len(rest) > 4 {
			return h, errors.New("usage: timing CATEGORY NAME DURATION [LABEL]")
		}
		d, err := parseDuration(rest[2])
		if err != nil {
			return h, err
		}
		h.category, h.action, h.duration = rest[0], rest[1], d
		if len(rest) == 4 {
			h.label = rest[3]
		}
	default:
		return h, fmt.Errorf("unknown hit type %q", h.kind)
	}
	return h, nil
}

func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(math.Round(secs * float64(time.Second))), nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func (h hit) report(r *gareporter.Reporter) {
	switch h.kind {
	case "event":
		r.Event(h.category, h.action, h.label, nil)
	case "screen":
		r.ScreenView(h.label, nil)
	case "session":
		r.Session(h.start, nil)
	case "exception":
		r.Exception(h.description, h.fatal, nil)
	case "timing":
		r.Timing(h.category, h.action, h.label, h.duration, nil)
	}
}
