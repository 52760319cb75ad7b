//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package gareporter

import "runtime"

func osDescription() string {
	return runtime.GOOS + " " + runtime.GOARCH
}
