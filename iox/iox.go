// Package iox provides I/O helpers for resource cleanup.
package iox

import "io"

// DiscardClose closes c and discards the error.
//
//	defer iox.DiscardClose(client)
func DiscardClose(c io.Closer) { _ = c.Close() }

// CloseFunc returns a cleanup function that closes c, for t.Cleanup.
func CloseFunc(c io.Closer) func() {
	return func() { _ = c.Close() }
}

// DrainClose reads rc to EOF and closes it so the underlying HTTP
// connection can be reused. Errors are discarded.
//
//	defer iox.DrainClose(resp.Body)
func DrainClose(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}
