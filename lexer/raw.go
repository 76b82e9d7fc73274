// SPDX-License-Identifier: MIT
package lexer

// Raw content tracking.
//
// The body of a raw content tag is opaque text up to the exact sequence `</name>`. The sequence
// may be split across write calls, so the length of its matched prefix is part of the Lexer's
// state; a failed match hands the prefix back as raw content.

// enterRawContent starts scanning the body of the named raw content tag.
func (l *Lexer) enterRawContent(name string) {
	l.closing = []rune("</" + name + ">")
	l.matched = 0
	l.state = StateRawContent
}

func (l *Lexer) lexRawContent(r rune) bool {
	if r == '<' {
		l.flushRaw()

		l.matched = 1
		l.state = StateRawContentPotentialEnd

		return false
	}
	l.raw.WriteRune(r)

	return false
}

func (l *Lexer) lexRawContentPotentialEnd(r rune) bool {
	if r != l.closing[l.matched] {
		// Not the closing tag, re-examine the rune as content.
		l.abandonMatch()
		return true
	}

	if l.matched++; l.matched < len(l.closing) {
		return false
	}

	name := string(l.closing[2 : len(l.closing)-1])
	l.matched = 0
	l.closeTag(name)

	return false
}

// abandonMatch returns the matched prefix of the closing sequence to the raw content.
func (l *Lexer) abandonMatch() {
	l.raw.WriteString(string(l.closing[:l.matched]))
	l.matched = 0
	l.state = StateRawContent
}

// flushRaw delivers the buffered raw content to the handlers.
func (l *Lexer) flushRaw() {
	top := len(l.stack) - 1
	if l.raw.Len() < 1 || top < 0 {
		return
	}

	text, tag := l.raw.String(), l.stack[top]
	l.raw.Reset()

	if l.debug {
		l.logger.Debugf("lexer raw content for <%s>: %q", tag.Name, text)
	}
	for _, h := range l.handlers {
		h.RawContent(tag, text)
	}
}
