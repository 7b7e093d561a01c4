package gallery

import "sync"

// PopupID names one modal surface.
type PopupID string

const (
	PopupEditProfile  PopupID = "edit-profile"
	PopupNewCard      PopupID = "new-card"
	PopupUpdateAvatar PopupID = "update-avatar"
	PopupImagePreview PopupID = "image-preview"
)

// AllPopups lists every popup in render order.
var AllPopups = []PopupID{PopupEditProfile, PopupNewCard, PopupUpdateAvatar, PopupImagePreview}

// Valid reports whether id names a known popup.
func (id PopupID) Valid() bool {
	switch id {
	case PopupEditProfile, PopupNewCard, PopupUpdateAvatar, PopupImagePreview:
		return true
	}
	return false
}

// PopupState is the state of a single popup.
type PopupState int

const (
	PopupClosed PopupState = iota
	PopupOpen
)

func (s PopupState) String() string {
	if s == PopupOpen {
		return "open"
	}
	return "closed"
}

// PopupController shows and hides modal surfaces.
type PopupController interface {
	Open(id PopupID)
	Close(id PopupID)
	State(id PopupID) PopupState
}

// Popups keeps one Closed/Open state per popup. Opening a popup never
// closes another one.
type Popups struct {
	mu    sync.RWMutex
	state map[PopupID]PopupState
}

// NewPopups returns a controller with every popup closed.
func NewPopups() *Popups {
	return &Popups{state: make(map[PopupID]PopupState)}
}

func (p *Popups) Open(id PopupID) {
	p.mu.Lock()
	p.state[id] = PopupOpen
	p.mu.Unlock()
}

func (p *Popups) Close(id PopupID) {
	p.mu.Lock()
	p.state[id] = PopupClosed
	p.mu.Unlock()
}

func (p *Popups) State(id PopupID) PopupState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state[id]
}
