package auth

import (
	"github.com/pkg/browser"
	"github.com/pkg/errors"
)

// URLOpener opens a URL in a new browsing context.
type URLOpener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to URLOpener.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error {
	return f(url)
}

// BrowserOpener opens URLs in the desktop's default browser.
type BrowserOpener struct{}

func (BrowserOpener) Open(url string) error {
	if err := browser.OpenURL(url); err != nil {
		return errors.Wrap(err, "[BrowserOpener.Open] browser.OpenURL")
	}
	return nil
}
