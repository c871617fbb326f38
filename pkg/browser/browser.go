// Package browser opens the local UI in the user's default browser once per
// process. It is a convenience for desktop use and never affects the API.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync/atomic"
)

var opened atomic.Bool

// OpenOnce launches the default browser at url. Subsequent calls in the same
// process are no-ops.
func OpenOnce(url string) error {
	if !opened.CompareAndSwap(false, true) {
		return nil
	}
	return open(url)
}

func open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	default:
		return fmt.Errorf("unsupported platform %q", runtime.GOOS)
	}
}
