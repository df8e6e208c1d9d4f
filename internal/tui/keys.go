package tui

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Decode turns raw terminal input bytes into events. A single read may carry
// several keys (pasted text, fast typing); unknown sequences are dropped.
func Decode(buf []byte) []Event {
	var events []Event
	for len(buf) > 0 {
		ev, n := decodeOne(buf)
		if ev.Key != KeyNone {
			events = append(events, ev)
		}
		buf = buf[n:]
	}
	return events
}

func decodeOne(b []byte) (Event, int) {
	switch b[0] {
	case 0x1b:
		if len(b) == 1 {
			return Event{Key: KeyCancel}, 1
		}
		if b[1] == '[' || b[1] == 'O' {
			if len(b) >= 3 {
				switch b[2] {
				case 'A':
					return Event{Key: KeyUp}, 3
				case 'B':
					return Event{Key: KeyDown}, 3
				}
			}
			// Skip the rest of the sequence up to its final byte
			n := 2
			for n < len(b) && (b[n] < 0x40 || b[n] > 0x7e) {
				n++
			}
			if n < len(b) {
				n++
			}
			return Event{}, n
		}
		if b[1] == 0x1b {
			return Event{Key: KeyCancel}, 1
		}
		// Alt+key
		_, size := utf8.DecodeRune(b[1:])
		return Event{}, 1 + size
	case '\r', '\n':
		return Event{Key: KeyEnter}, 1
	case '\t':
		return Event{Key: KeyTab}, 1
	case 0x7f, 0x08: // DEL or Ctrl-H
		return Event{Key: KeyBackspace}, 1
	case 0x03: // Ctrl-C
		return Event{Key: KeyClear}, 1
	case 0x10: // Ctrl-P
		return Event{Key: KeyUp}, 1
	case 0x0e: // Ctrl-N
		return Event{Key: KeyDown}, 1
	case ' ':
		return Event{Key: KeySpace}, 1
	}

	if b[0] < 0x20 {
		return Event{}, 1
	}

	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return Event{}, 1
	}
	if !unicode.IsPrint(r) {
		return Event{}, size
	}
	return Rune(r), size
}

var tokenRe = regexp.MustCompile(`^(?:[A-Z\-]+|TYPE=.+)$`)

// ParseKeys parses a key script. A comma separated list, or a lone token,
// uses names like UP, DOWN, ENTER, ESC, SPACE, CTRL-C or TYPE=text. Anything
// else is decoded as raw terminal input.
func ParseKeys(keys string) []Event {
	if keys == "" {
		return nil
	}

	if !strings.Contains(keys, ",") && !tokenRe.MatchString(keys) {
		return Decode([]byte(keys))
	}

	var events []Event
	for _, part := range strings.Split(keys, ",") {
		tok := strings.TrimSpace(part)
		if tok == "" {
			continue
		}
		up := strings.ToUpper(tok)
		switch up {
		case "UP", "CTRL-P", "CTRLP":
			events = append(events, Event{Key: KeyUp})
		case "DOWN", "CTRL-N", "CTRLN":
			events = append(events, Event{Key: KeyDown})
		case "ENTER", "RETURN":
			events = append(events, Event{Key: KeyEnter})
		case "ESC", "ESCAPE":
			events = append(events, Event{Key: KeyCancel})
		case "TAB":
			events = append(events, Event{Key: KeyTab})
		case "SPACE":
			events = append(events, Event{Key: KeySpace})
		case "BACKSPACE", "BS", "CTRL-H", "CTRLH":
			events = append(events, Event{Key: KeyBackspace})
		case "CTRL-C", "CTRLC", "CLEAR":
			events = append(events, Event{Key: KeyClear})
		case "RESIZE":
			events = append(events, Event{Key: KeyResize})
		default:
			if strings.HasPrefix(up, "TYPE=") {
				for _, r := range tok[len("TYPE="):] {
					if r == ' ' {
						events = append(events, Event{Key: KeySpace})
						continue
					}
					events = append(events, Rune(r))
				}
			} else if utf8.RuneCountInString(tok) == 1 {
				r, _ := utf8.DecodeRuneInString(tok)
				events = append(events, Rune(r))
			}
		}
	}
	return events
}
