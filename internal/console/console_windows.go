// Package console deals with how the daemon was started. On Windows it tells
// a double-click launch from a terminal one, and installs a Ctrl+C handler
// that still fires while SDL holds the locked input thread.
package console

import (
	"log"
	"os"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procGetConsoleWindow      = kernel32.NewProc("GetConsoleWindow")
	procAllocConsole          = kernel32.NewProc("AllocConsole")
	procFreeConsole           = kernel32.NewProc("FreeConsole")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

const (
	ctrlCEvent     = 0
	ctrlBreakEvent = 1
)

// Interactive reports whether the daemon has a terminal to log to. A launch
// from Explorer has none; if Windows created a console window for it anyway
// the window is released.
func Interactive() bool {
	fromExplorer := parentIsExplorer()

	if hwnd, _, _ := procGetConsoleWindow.Call(); hwnd != 0 {
		if fromExplorer {
			procFreeConsole.Call()
			return false
		}
		return true
	}

	if fromExplorer {
		return false
	}

	// GUI build started from a terminal
	procAllocConsole.Call()
	redirectStdStreams()
	return true
}

func redirectStdStreams() {
	stdout, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil || stdout == 0 {
		return
	}
	stderr, err := windows.GetStdHandle(windows.STD_ERROR_HANDLE)
	if err != nil || stderr == 0 {
		return
	}
	os.Stdout = os.NewFile(uintptr(stdout), "/dev/stdout")
	os.Stderr = os.NewFile(uintptr(stderr), "/dev/stderr")
	if stdin, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE); err == nil && stdin != 0 {
		os.Stdin = os.NewFile(uintptr(stdin), "/dev/stdin")
	}
	log.SetOutput(os.Stderr)
}

// parentIsExplorer walks the process snapshot to find the parent's image
// name.
func parentIsExplorer() bool {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return false
	}
	defer windows.CloseHandle(snap)

	names := make(map[uint32]string)
	parent := uint32(0)
	self := uint32(os.Getpid())

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	for err = windows.Process32First(snap, &entry); err == nil; err = windows.Process32Next(snap, &entry) {
		names[entry.ProcessID] = windows.UTF16ToString(entry.ExeFile[:])
		if entry.ProcessID == self {
			parent = entry.ParentProcessID
		}
	}

	if parent == 0 {
		return false
	}
	return strings.EqualFold(names[parent], "explorer.exe")
}

var (
	handlerOnce sync.Once
	handlerFn   uintptr
	interrupted chan struct{}
	closeOnce   sync.Once
)

// NotifyInterrupt closes ch on Ctrl+C or Ctrl+Break. The returned function
// registers the handler again; call it after SDL has initialized because SDL
// installs its own.
func NotifyInterrupt(ch chan struct{}) func() {
	handlerOnce.Do(func() {
		interrupted = ch
		handlerFn = windows.NewCallback(func(ctrlType uint32) uintptr {
			if ctrlType != ctrlCEvent && ctrlType != ctrlBreakEvent {
				return 0
			}
			closeOnce.Do(func() { close(interrupted) })
			return 1
		})
	})

	register := func() {
		if ret, _, _ := procSetConsoleCtrlHandler.Call(handlerFn, 1); ret == 0 {
			log.Printf("Warning: failed to set console control handler")
		}
	}
	register()
	return register
}
