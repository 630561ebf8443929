//go:build windows

package overlay

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"

	"snip-ocr/src/screenshot"
)

// windowsSelector shows a full-screen translucent overlay across the
// virtual screen and drives the shared Tracker from window messages.
type windowsSelector struct{}

func newPlatformSelector() Selector { return &windowsSelector{} }

const overlayAlpha = 77 // ~30% opacity, matches the classic snip dimming

// Overlay state for the message loop. The overlay is modal: only one
// selection can be active at a time, guarded by the event loop.
var (
	overlayTracker        Tracker
	overlayHwnd           win.HWND
	overlayVirtualX       int32
	overlayVirtualY       int32
	overlayCrossCursor    win.HCURSOR
	overlaySelectionIsSet bool
	overlaySelection      screenshot.Region
	overlayCancelled      bool
)

func (w *windowsSelector) Select(ctx context.Context) (screenshot.Region, bool, error) {
	region, cancelled, err := runOverlay()
	if err != nil {
		return screenshot.Region{}, false, err
	}
	select {
	case <-ctx.Done():
		return screenshot.Region{}, false, ctx.Err()
	default:
	}
	return region, cancelled, nil
}

// runOverlay creates the overlay window and pumps messages until the drag
// gesture finalizes. Win32 windows are bound to their creating thread.
func runOverlay() (screenshot.Region, bool, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	vx := win.GetSystemMetrics(win.SM_XVIRTUALSCREEN)
	vy := win.GetSystemMetrics(win.SM_YVIRTUALSCREEN)
	vw := win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN)
	vh := win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)
	log.Printf("OVERLAY: virtual screen x=%d y=%d w=%d h=%d", vx, vy, vw, vh)

	overlayVirtualX = vx
	overlayVirtualY = vy
	overlayTracker.Reset()
	overlaySelectionIsSet = false
	overlaySelection = screenshot.Region{}
	overlayCancelled = false

	overlayCrossCursor = win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_CROSS))

	// Unique class name so repeated selections never collide.
	classNameStr := fmt.Sprintf("SnipOverlay_%d", time.Now().UnixNano())
	className := syscall.StringToUTF16Ptr(classNameStr)
	wndClass := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		Style:         win.CS_HREDRAW | win.CS_VREDRAW,
		LpfnWndProc:   syscall.NewCallback(overlayWndProc),
		HInstance:     win.GetModuleHandle(nil),
		HCursor:       overlayCrossCursor,
		HbrBackground: win.HBRUSH(win.GetStockObject(win.BLACK_BRUSH)),
		LpszClassName: className,
	}
	if win.RegisterClassEx(&wndClass) == 0 {
		return screenshot.Region{}, false, fmt.Errorf("failed to register overlay window class")
	}
	defer win.UnregisterClass(className)

	overlayHwnd = win.CreateWindowEx(
		win.WS_EX_TOPMOST|win.WS_EX_TOOLWINDOW|win.WS_EX_LAYERED,
		className,
		syscall.StringToUTF16Ptr("Select region - drag to select, ESC cancels"),
		win.WS_POPUP|win.WS_VISIBLE,
		vx, vy, vw, vh,
		0, 0, win.GetModuleHandle(nil), nil,
	)
	if overlayHwnd == 0 {
		return screenshot.Region{}, false, fmt.Errorf("failed to create overlay window")
	}
	defer func() {
		if overlayHwnd != 0 {
			win.DestroyWindow(overlayHwnd)
			overlayHwnd = 0
		}
	}()

	win.SetLayeredWindowAttributes(overlayHwnd, 0, overlayAlpha, win.LWA_ALPHA)
	win.ShowWindow(overlayHwnd, win.SW_SHOW)
	win.SetForegroundWindow(overlayHwnd)
	win.SetFocus(overlayHwnd)
	win.UpdateWindow(overlayHwnd)

	var msg win.MSG
	for {
		ret := win.GetMessage(&msg, 0, 0, 0)
		if ret == 0 || ret == -1 { // WM_QUIT or error
			break
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}

	if overlayCancelled || !overlaySelectionIsSet {
		log.Printf("OVERLAY: selection cancelled")
		return screenshot.Region{}, true, nil
	}

	// Tracker coordinates are window-client; shift into virtual-screen space.
	region := overlaySelection
	region.X += int(overlayVirtualX)
	region.Y += int(overlayVirtualY)
	log.Printf("OVERLAY: selection finalized: %s", region)
	return region, false, nil
}

func overlayWndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case win.WM_LBUTTONDOWN:
		x := int(int16(win.LOWORD(uint32(lParam))))
		y := int(int16(win.HIWORD(uint32(lParam))))
		win.SetCapture(hwnd)
		overlayTracker.Press(x, y)
		win.InvalidateRect(hwnd, nil, true)
		win.UpdateWindow(hwnd)
		return 0

	case win.WM_MOUSEMOVE:
		if overlayTracker.Dragging() {
			x := int(int16(win.LOWORD(uint32(lParam))))
			y := int(int16(win.HIWORD(uint32(lParam))))
			overlayTracker.Move(x, y)
			win.InvalidateRect(hwnd, nil, true)
			win.UpdateWindow(hwnd)
		}
		return 0

	case win.WM_LBUTTONUP:
		if overlayTracker.Dragging() {
			win.ReleaseCapture()
			x := int(int16(win.LOWORD(uint32(lParam))))
			y := int(int16(win.HIWORD(uint32(lParam))))
			region, cancelled := overlayTracker.Release(x, y)
			overlaySelection = region
			overlaySelectionIsSet = !cancelled
			overlayCancelled = cancelled
			win.PostQuitMessage(0)
		}
		return 0

	case win.WM_KEYDOWN:
		if wParam == win.VK_ESCAPE {
			overlayTracker.Cancel()
			overlayCancelled = true
			win.PostQuitMessage(0)
		}
		return 0

	case win.WM_SETCURSOR:
		if overlayCrossCursor != 0 {
			win.SetCursor(overlayCrossCursor)
			return 1
		}

	case win.WM_PAINT:
		var ps win.PAINTSTRUCT
		hdc := win.BeginPaint(hwnd, &ps)
		if overlayTracker.Dragging() {
			drawSelectionRect(hdc, overlayTracker.Current())
		}
		win.EndPaint(hwnd, &ps)
		return 0

	case win.WM_DESTROY:
		win.PostQuitMessage(0)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func drawSelectionRect(hdc win.HDC, r screenshot.Region) {
	pen := win.CreatePen(win.PS_SOLID, 2, win.RGB(0, 255, 0))
	oldPen := win.SelectObject(hdc, win.HGDIOBJ(pen))
	oldBrush := win.SelectObject(hdc, win.GetStockObject(win.NULL_BRUSH))
	win.Rectangle_(hdc, int32(r.X), int32(r.Y), int32(r.X+r.Width), int32(r.Y+r.Height))
	win.SelectObject(hdc, oldBrush)
	win.SelectObject(hdc, oldPen)
	win.DeleteObject(win.HGDIOBJ(pen))
}
