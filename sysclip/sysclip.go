// Package sysclip mirrors clipboard text to the operating system clipboard.
package sysclip

import (
	"errors"
	"sync"

	atotto "github.com/atotto/clipboard"
	"golang.design/x/clipboard"
)

var ErrUnavailable = errors.New("sysclip: no system clipboard")

var (
	initOnce sync.Once
	initErr  error
)

// Clipboard reads and writes plain text. It uses the native clipboard when
// it initializes and falls back to the platform clipboard commands otherwise.
type Clipboard struct {
	native bool
}

func New() *Clipboard {
	initOnce.Do(func() { initErr = clipboard.Init() })
	return &Clipboard{native: initErr == nil}
}

// Backend names the implementation in use, for logging.
func (c *Clipboard) Backend() string {
	switch {
	case c.native:
		return "native"
	case atotto.Unsupported:
		return "none"
	default:
		return "command"
	}
}

func (c *Clipboard) ReadText() (string, error) {
	if c.native {
		return string(clipboard.Read(clipboard.FmtText)), nil
	}
	if atotto.Unsupported {
		return "", ErrUnavailable
	}
	return atotto.ReadAll()
}

func (c *Clipboard) WriteText(s string) error {
	if c.native {
		clipboard.Write(clipboard.FmtText, []byte(s))
		return nil
	}
	if atotto.Unsupported {
		return ErrUnavailable
	}
	return atotto.WriteAll(s)
}
