package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// terminal переводит стандартный ввод в сырой режим, чтобы читать клавиши без Enter
type terminal struct {
	fd    int
	state *term.State
}

func newTerminal(f *os.File) *terminal {
	return &terminal{fd: int(f.Fd())}
}

// interactive сообщает, подключен ли ввод к терминалу
func (t *terminal) interactive() bool {
	return t != nil && term.IsTerminal(t.fd)
}

func (t *terminal) makeRaw() error {
	if !t.interactive() || t.state != nil {
		return nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return err
	}
	t.state = state
	return nil
}

func (t *terminal) restore() {
	if t == nil || t.state == nil {
		return
	}
	_ = term.Restore(t.fd, t.state)
	t.state = nil
}

// action команда консольного плеера
type action int

const (
	actionNone action = iota
	actionQuit
	actionToggle
	actionNext
	actionPrevious
	actionShuffle
	actionBack
	actionForward
	actionSeekTo
)

// keyPress разобранное нажатие клавиши
type keyPress struct {
	action action
	tenths int // Для actionSeekTo
}

// parseKeys разбирает байты одного чтения из терминала. За одно чтение может прийти
// несколько нажатий
func parseKeys(b []byte) []keyPress {
	var keys []keyPress
	for len(b) > 0 {
		// Стрелки приходят escape-последовательностями
		if len(b) >= 3 && b[0] == 0x1b && b[1] == '[' {
			switch b[2] {
			case 'C':
				keys = append(keys, keyPress{action: actionNext})
			case 'D':
				keys = append(keys, keyPress{action: actionPrevious})
			}
			b = b[3:]
			continue
		}

		if k := parseKey(b[0]); k.action != actionNone {
			keys = append(keys, k)
		}
		b = b[1:]
	}
	return keys
}

func parseKey(c byte) keyPress {
	switch {
	case c == 'q' || c == 0x03:
		return keyPress{action: actionQuit}
	case c == ' ':
		return keyPress{action: actionToggle}
	case c == 'n':
		return keyPress{action: actionNext}
	case c == 'p':
		return keyPress{action: actionPrevious}
	case c == 's':
		return keyPress{action: actionShuffle}
	case c == '[':
		return keyPress{action: actionBack}
	case c == ']':
		return keyPress{action: actionForward}
	case c >= '0' && c <= '9':
		return keyPress{action: actionSeekTo, tenths: int(c - '0')}
	}
	return keyPress{}
}

// readKeys читает нажатия до конца ввода
func readKeys(r io.Reader) <-chan keyPress {
	keys := make(chan keyPress)
	go func() {
		defer close(keys)
		buf := make([]byte, 8)
		for {
			n, err := r.Read(buf)
			for _, k := range parseKeys(buf[:n]) {
				keys <- k
			}
			if err != nil {
				return
			}
		}
	}()
	return keys
}
