package core

// Key is a logical key, abstracted from the terminal or window key codes
// each host receives.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyEnter
	KeySpace
	KeyBackspace
	KeyTab

	// KeyA..KeyZ are contiguous so hosts can map letters arithmetically.
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeySpace:     "Space",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
}

// LetterKey returns the key for an ASCII letter, or KeyNone.
func LetterKey(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	}
	return KeyNone
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if k >= KeyA && k <= KeyZ {
		return string(rune('A' + int(k-KeyA)))
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// EventKind classifies an input or system event.
type EventKind int

const (
	EventNone EventKind = iota
	EventQuit           // window closed, interrupt, session ended
	EventKeyDown
	EventKeyUp
	EventResize // host display changed; the grid itself never changes
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "Quit"
	case EventKeyDown:
		return "KeyDown"
	case EventKeyUp:
		return "KeyUp"
	case EventResize:
		return "Resize"
	default:
		return "None"
	}
}

// Event is one queued input or system event.
type Event struct {
	Kind EventKind
	Key  Key // Set for key events

	// Width and Height carry the new display size for EventResize.
	Width, Height int
}

// QuitEvent returns a window-close style event.
func QuitEvent() Event {
	return Event{Kind: EventQuit}
}

// KeyDownEvent returns a key press event.
func KeyDownEvent(k Key) Event {
	return Event{Kind: EventKeyDown, Key: k}
}

// KeyUpEvent returns a key release event.
func KeyUpEvent(k Key) Event {
	return Event{Kind: EventKeyUp, Key: k}
}

// IsQuit reports whether the event asks the loop to stop: a quit event or
// an Escape key press.
func (e Event) IsQuit() bool {
	return e.Kind == EventQuit || (e.Kind == EventKeyDown && e.Key == KeyEscape)
}

// KeyState is the set of keys currently held, built from drained events.
type KeyState struct {
	held map[Key]bool
}

// NewKeyState creates an empty key snapshot.
func NewKeyState() KeyState {
	return KeyState{held: make(map[Key]bool)}
}

// Apply updates the snapshot from a key event. Other events are ignored.
func (s *KeyState) Apply(e Event) {
	if s.held == nil {
		s.held = make(map[Key]bool)
	}
	switch e.Kind {
	case EventKeyDown:
		s.held[e.Key] = true
	case EventKeyUp:
		delete(s.held, e.Key)
	}
}

// IsDown reports whether k is currently held.
func (s KeyState) IsDown(k Key) bool {
	return s.held[k]
}

// Len returns the number of held keys.
func (s KeyState) Len() int {
	return len(s.held)
}

// Clear releases every key.
func (s *KeyState) Clear() {
	for k := range s.held {
		delete(s.held, k)
	}
}

// Clone creates a copy of this snapshot.
func (s KeyState) Clone() KeyState {
	clone := NewKeyState()
	for k, v := range s.held {
		clone.held[k] = v
	}
	return clone
}
