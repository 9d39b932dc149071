// Package indicator defines the single status entry shown by the daemon and
// the presentation contract that renders it.
package indicator

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Indicator is the state of the visual entry. The zero value is an absent
// indicator.
type Indicator struct {
	Text        string
	Color       colorful.Color
	Active      bool // currently displayed
	Highlighted bool // user is interacting with the entry
}

// Presenter draws the indicator. Implementations are called from the
// dispatcher goroutine only.
type Presenter interface {
	Show(text string, c colorful.Color)
	Remove()
}

// PresenterFunc pairs plain functions into a Presenter.
type PresenterFunc struct {
	ShowFn   func(text string, c colorful.Color)
	RemoveFn func()
}

func (p PresenterFunc) Show(text string, c colorful.Color) {
	if p.ShowFn != nil {
		p.ShowFn(text, c)
	}
}

func (p PresenterFunc) Remove() {
	if p.RemoveFn != nil {
		p.RemoveFn()
	}
}
