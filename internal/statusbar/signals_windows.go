//go:build windows

package statusbar

import "os"

// Windows has no SIGWINCH, a resize is picked up on the next tick instead.
func getSignalChannel() chan os.Signal {
	return make(chan os.Signal, 1)
}
