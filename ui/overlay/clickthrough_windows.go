//go:build windows

package overlay

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Win32 extended window styles for a layered, input-transparent window.
const (
	gwlExstyle      = ^uintptr(19) // GWL_EXSTYLE (-20) as the API's 32-bit index
	wsExLayered     = 0x00080000
	wsExTransparent = 0x00000020
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW    = user32.NewProc("FindWindowW")
	procGetWindowLongW = user32.NewProc("GetWindowLongW")
	procSetWindowLongW = user32.NewProc("SetWindowLongW")
)

// enableClickThrough adds WS_EX_LAYERED|WS_EX_TRANSPARENT to the overlay
// window so all pointer and keyboard input passes to the windows beneath.
// The window is located by its title; Tk does not expose the HWND directly.
func enableClickThrough(title string) error {
	t, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(t)))
	if hwnd == 0 {
		return fmt.Errorf("overlay: window %q not found", title)
	}
	style, _, _ := procGetWindowLongW.Call(hwnd, gwlExstyle)
	r, _, callErr := procSetWindowLongW.Call(hwnd, gwlExstyle, style|wsExLayered|wsExTransparent)
	if r == 0 {
		return fmt.Errorf("overlay: SetWindowLongW failed: %v", callErr)
	}
	return nil
}
