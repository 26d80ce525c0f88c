//go:build !windows

package console

// Interactive is always true off Windows.
func Interactive() bool {
	return true
}

// NotifyInterrupt does nothing off Windows, where os/signal delivers
// SIGINT even while SDL holds a locked thread.
func NotifyInterrupt(ch chan struct{}) func() {
	return func() {}
}
