package tui

// Script is a headless surface with fixed geometry that replays a list of
// events. Once the events run out it reports KeyCancel, so a scripted picker
// always terminates.
type Script struct {
	width  int
	height int
	events []Event

	frame   grid
	shown   []string
	cursorX int
	cursorY int
	frames  int

	Inited    bool
	Finalized bool
}

// NewScript creates a scripted surface of the given size.
func NewScript(width, height int, events ...Event) *Script {
	return &Script{width: width, height: height, events: events}
}

func (s *Script) Init() error {
	s.Inited = true
	return nil
}

func (s *Script) Fini() {
	s.Finalized = true
}

func (s *Script) Size() (width, height int) {
	return s.width, s.height
}

// Resize changes the geometry and queues a resize event at the front.
func (s *Script) Resize(width, height int) {
	s.width, s.height = width, height
	s.events = append([]Event{{Key: KeyResize}}, s.events...)
}

func (s *Script) Clear() {
	s.frame.resize(s.width, s.height)
	s.frame.clear()
}

func (s *Script) DrawText(x, y int, text string, style Style) int {
	return s.frame.put(x, y, text, style)
}

func (s *Script) ShowCursor(x, y int) {
	s.cursorX, s.cursorY = x, y
}

func (s *Script) Show() {
	s.frames++
	s.shown = s.shown[:0]
	for y := 0; y < s.frame.height; y++ {
		s.shown = append(s.shown, s.frame.line(y))
	}
}

func (s *Script) PollEvent() Event {
	if len(s.events) == 0 {
		return Event{Key: KeyCancel}
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

// Lines returns the last shown frame as plain text rows.
func (s *Script) Lines() []string {
	out := make([]string, len(s.shown))
	copy(out, s.shown)
	return out
}

// StyleAt returns the style of the cell at x, y in the pending frame.
func (s *Script) StyleAt(x, y int) Style {
	if x < 0 || y < 0 || x >= s.frame.width || y >= s.frame.height {
		return StyleNormal
	}
	return s.frame.cells[y*s.frame.width+x].style
}

// Cursor returns the parked cursor position.
func (s *Script) Cursor() (x, y int) {
	return s.cursorX, s.cursorY
}

// Frames returns how many frames were shown.
func (s *Script) Frames() int {
	return s.frames
}

// Remaining returns the number of unplayed events.
func (s *Script) Remaining() int {
	return len(s.events)
}
