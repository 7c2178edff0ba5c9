package domain

import (
	"sort"
	"time"
)

// Connectivity is the two-state online indicator. The zero value means "not polled yet".
type Connectivity string

const (
	ConnectivityUnknown Connectivity = ""
	ConnectivityOnline  Connectivity = "online"
	ConnectivityOffline Connectivity = "offline"
)

// Notice is the inline status message.
type Notice struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// HomeLocation is where a fresh board starts.
const HomeLocation = "/"

// Board is a snapshot of every user-visible status indicator.
type Board struct {
	Busy         []string     `json:"busy"`
	Notice       *Notice      `json:"notice,omitempty"`
	Alert        string       `json:"alert,omitempty"`
	Location     string       `json:"location"`
	Connectivity Connectivity `json:"connectivity,omitempty"`
	Revision     uint64       `json:"revision"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Sealed holds the encrypted board when it was written through an
	// encrypting store. The other text fields are then empty.
	Sealed string `json:"sealed,omitempty"`
}

// NewBoard returns an idle board located at the home page.
func NewBoard() *Board {
	return &Board{
		Busy:     []string{},
		Location: HomeLocation,
	}
}

// IsBusy reports whether indicator id is visible.
func (b *Board) IsBusy(id string) bool {
	for _, v := range b.Busy {
		if v == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	c := *b
	c.Busy = append([]string{}, b.Busy...)
	if b.Notice != nil {
		n := *b.Notice
		c.Notice = &n
	}
	return &c
}

// SetBusy shows or hides indicator id. It reports whether the board changed.
func (b *Board) SetBusy(id string, visible bool) bool {
	if visible == b.IsBusy(id) {
		return false
	}
	if visible {
		b.Busy = append(b.Busy, id)
		sort.Strings(b.Busy)
		return true
	}
	out := b.Busy[:0]
	for _, v := range b.Busy {
		if v != id {
			out = append(out, v)
		}
	}
	b.Busy = out
	return true
}

// Apply writes effect e. A message replaces the notice, an alert replaces the
// alert slot and a navigation replaces the location. It reports whether the
// board changed.
func (b *Board) Apply(e Effect) bool {
	switch e.Kind {
	case EffectMessage:
		b.Notice = &Notice{Text: e.Text, Tone: e.Tone}
	case EffectAlert:
		b.Alert = e.Text
	case EffectNavigate:
		b.Location = e.Location
		// a fresh page has an empty status area
		b.Notice = nil
		b.Alert = ""
	default:
		return false
	}
	return true
}
