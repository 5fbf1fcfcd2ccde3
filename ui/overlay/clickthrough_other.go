//go:build !windows

package overlay

// Click-through relies on Win32 extended window styles; other platforms
// keep the overlay visible but input-opaque.
func enableClickThrough(string) error { return nil }
