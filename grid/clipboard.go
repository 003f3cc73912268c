package grid

import (
	"fmt"
	"log"
	"sync"

	clipboard "golang.design/x/clipboard"
)

// Maximum clipboard size in bytes - helps avoid X11 BadLength errors on Linux
const maxClipboardSize = 1 * 1024 * 1024

var (
	clipboardOnce  sync.Once
	clipboardReady bool
)

// safeClipboardWrite attempts to write data to clipboard with panic recovery.
// Returns an error if the write fails or data is too large.
func safeClipboardWrite(data []byte) (err error) {
	if len(data) > maxClipboardSize {
		return fmt.Errorf("data too large for clipboard (%d bytes, max %d bytes)", len(data), maxClipboardSize)
	}

	clipboardOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			log.Printf("[CLIPBOARD] init failed, copy disabled: %v", err)
			return
		}
		clipboardReady = true
	})
	if !clipboardReady {
		return fmt.Errorf("clipboard unavailable")
	}

	// Use defer/recover to catch panics from clipboard operations
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard write failed: %v", r)
		}
	}()

	clipboard.Write(clipboard.FmtText, data)
	return nil
}

// CopyShareURL builds the shareable link for the current state and puts it
// on the system clipboard. The link is returned either way so a caller can
// fall back to showing it when the clipboard is unavailable.
func (g *Grid) CopyShareURL() (string, error) {
	link := g.BuildShareableURL()
	if err := safeClipboardWrite([]byte(link)); err != nil {
		return link, err
	}
	return link, nil
}
