// SPDX-License-Identifier: MIT
package lexer

// REF: https://html.spec.whatwg.org/multipage/parsing.html#tokenization
// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

type (
	// stepFunction consumes a rune in some State, reporting whether the rune should be
	// re-examined in the (updated) State.
	stepFunction func(*Lexer, rune) (reconsume bool)

	// Lexer defines an incremental scanner for XML-like markup.
	//
	// The Lexer is push based: Write & Close run to completion, invoking the registered Handlers
	// synchronously. It supports a single writer; independent documents need independent Lexers.
	Lexer struct {
		logger   logrus.FieldLogger
		handlers []Handler
		rawTags  map[string]struct{}

		// stack holds the open tags, innermost last.
		stack []TagData

		// residue holds an incomplete UTF-8 sequence trailing the last Write.
		residue []byte

		// Scratch space for the tag under construction.
		name      strings.Builder
		attrName  strings.Builder
		attrValue strings.Builder
		attrs     Attrs
		quote     rune

		// raw holds raw content not yet delivered to the handlers.
		raw strings.Builder
		// closing is the closing sequence of the current raw content tag & matched the length of
		// its prefix seen so far.
		closing []rune
		matched int

		state    State
		offset   int
		readSize int

		debug  bool
		strict bool
		closed bool
	}
)

// Lexing errors.
var (
	ErrSyntax    = errors.New("syntax error")
	ErrStructure = errors.New("structural error")

	ErrClosed = errors.New("lexer closed")
)

var steps = [numStates]stepFunction{
	StateText:                   (*Lexer).lexText,
	StateTagOpen:                (*Lexer).lexTagOpen,
	StateTagName:                (*Lexer).lexTagName,
	StateClosingTagOpen:         (*Lexer).lexClosingTagOpen,
	StateClosingTagName:         (*Lexer).lexClosingTagName,
	StateAttrNameStart:          (*Lexer).lexAttrNameStart,
	StateAttrName:               (*Lexer).lexAttrName,
	StateAttrNameEnd:            (*Lexer).lexAttrNameEnd,
	StateAttrValueStart:         (*Lexer).lexAttrValueStart,
	StateAttrValue:              (*Lexer).lexAttrValue,
	StateSelfClosingStart:       (*Lexer).lexSelfClosingStart,
	StateTagEnding:              (*Lexer).lexTagEnding,
	StateRawContent:             (*Lexer).lexRawContent,
	StateRawContentPotentialEnd: (*Lexer).lexRawContentPotentialEnd,
}

// New creates a new Lexer in the lenient mode.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		logger:   logrus.New(),
		rawTags:  make(map[string]struct{}),
		stack:    make([]TagData, 0, defBufferSize),
		readSize: DefaultReadSize,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// State obtains the current State.
func (l *Lexer) State() State { return l.state }

// Stack obtains a copy of the open tags, innermost last.
func (l *Lexer) Stack() []TagData { return append([]TagData(nil), l.stack...) }

// Strict reports whether structural irregularities are reported.
func (l *Lexer) Strict() bool { return l.strict }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Offset obtains the amount of bytes consumed.
func (l *Lexer) Offset() int { return l.offset }

// IsRawContentTag reports whether a tag's body is scanned as raw content.
func (l *Lexer) IsRawContentTag(name string) (ok bool) {
	_, ok = l.rawTags[name]
	return
}

// Write scans a chunk of UTF-8 encoded input, implementing io.Writer.
//
// A multi-byte sequence split across calls is reassembled.
func (l *Lexer) Write(p []byte) (n int, err error) {
	if l.closed {
		return 0, ErrClosed
	}
	l.scan(string(p))

	return len(p), nil
}

// WriteString scans a chunk of input, implementing io.StringWriter.
func (l *Lexer) WriteString(chunk string) (n int, err error) {
	if l.closed {
		return 0, ErrClosed
	}
	l.scan(chunk)

	return len(chunk), nil
}

// Close signals the end of the input.
//
// A partially matched raw content closing sequence is delivered as raw content & a strict Lexer
// reports unclosed tags. Subsequent calls are no-ops.
func (l *Lexer) Close() error {
	if l.closed {
		return nil
	}

	// An incomplete trailing sequence decodes as utf8.RuneError per byte.
	for range l.residue {
		l.step(utf8.RuneError)
		l.offset++
	}
	l.residue = nil

	if l.state == StateRawContentPotentialEnd {
		l.abandonMatch()
	}
	l.flushRaw()

	if l.state.inTag() {
		l.reportf(ErrSyntax, "input ended inside a tag (state %s)", l.state)
	}
	if len(l.stack) > 0 {
		names := make([]string, len(l.stack))
		for index := range l.stack {
			names[index] = l.stack[index].Name
		}
		l.reportf(ErrStructure, "unclosed tags: %s", strings.Join(names, ", "))
	}

	l.closed = true
	if l.debug {
		l.logger.Debugf("lexer end at offset %d", l.offset)
	}
	for _, h := range l.handlers {
		h.End()
	}

	return nil
}

// scan processes a chunk, rune by rune.
func (l *Lexer) scan(chunk string) {
	data := chunk
	if len(l.residue) > 0 {
		data = string(l.residue) + chunk
		l.residue = l.residue[:0]
	}

	for index := 0; index < len(data); {
		r, size := utf8.DecodeRuneInString(data[index:])
		if r == utf8.RuneError && !utf8.FullRuneInString(data[index:]) {
			// Incomplete sequence, await the next chunk.
			l.residue = append(l.residue, data[index:]...)
			break
		}

		l.step(r)
		l.offset += size
		index += size
	}

	// Deliver raw content incrementally; a partial closing sequence match is retained.
	l.flushRaw()

	if l.debug {
		l.logger.Debugf("lexer chunk processed: %q, state: %s, stack: %s", chunk, l.state, spew.Sdump(l.stack))
	}
	for _, h := range l.handlers {
		h.Chunk(chunk)
	}
}

// step feeds a rune to the state functions until it is consumed.
func (l *Lexer) step(r rune) {
	for steps[l.state](l, r) {
	}
}

func (l *Lexer) lexText(r rune) bool {
	if r == '<' {
		l.state = StateTagOpen
	}

	// Inter-tag text is discarded.
	return false
}

func (l *Lexer) lexTagOpen(r rune) bool {
	switch {
	case r == '/':
		l.state = StateClosingTagOpen
	case isNameStart(r):
		l.name.Reset()
		l.name.WriteRune(r)
		l.attrs = make(Attrs)
		l.state = StateTagName
	default:
		l.unexpected(r)
		l.state = StateText

		return true
	}

	return false
}

func (l *Lexer) lexTagName(r rune) bool {
	switch {
	case isName(r):
		l.name.WriteRune(r)
	case isWhitespace(r):
		l.state = StateAttrNameStart
	case r == '>':
		l.openTag(false)
	case r == '/':
		l.state = StateSelfClosingStart
	default:
		l.unexpected(r)
	}

	return false
}

func (l *Lexer) lexClosingTagOpen(r rune) bool {
	switch {
	case isNameStart(r):
		l.name.Reset()
		l.name.WriteRune(r)
		l.state = StateClosingTagName
	default:
		l.unexpected(r)
		l.state = StateText

		return true
	}

	return false
}

func (l *Lexer) lexClosingTagName(r rune) bool {
	switch {
	case isName(r):
		l.name.WriteRune(r)
	case isWhitespace(r):
		l.state = StateTagEnding
	case r == '>':
		l.closeTag(l.name.String())
	default:
		l.unexpected(r)
	}

	return false
}

func (l *Lexer) lexTagEnding(r rune) bool {
	switch {
	case isWhitespace(r):
	case r == '>':
		l.closeTag(l.name.String())
	default:
		l.unexpected(r)
	}

	return false
}

func (l *Lexer) lexAttrNameStart(r rune) bool {
	switch {
	case isWhitespace(r):
	case r == '>':
		l.openTag(false)
	case r == '/':
		l.state = StateSelfClosingStart
	case isNameStart(r):
		l.startAttr(r)
	default:
		l.unexpected(r)
	}

	return false
}

func (l *Lexer) lexAttrName(r rune) bool {
	switch {
	case isName(r):
		l.attrName.WriteRune(r)
	case r == '=':
		l.state = StateAttrValueStart
	case isWhitespace(r):
		l.state = StateAttrNameEnd
	case r == '>':
		l.commitAttr()
		l.openTag(false)
	case r == '/':
		l.commitAttr()
		l.state = StateSelfClosingStart
	default:
		l.unexpected(r)
	}

	return false
}

func (l *Lexer) lexAttrNameEnd(r rune) bool {
	switch {
	case isWhitespace(r):
	case r == '=':
		l.state = StateAttrValueStart
	case r == '>':
		l.commitAttr()
		l.openTag(false)
	case r == '/':
		l.commitAttr()
		l.state = StateSelfClosingStart
	case isNameStart(r):
		// The previous attribute was boolean.
		l.commitAttr()
		l.startAttr(r)
	default:
		l.unexpected(r)
	}

	return false
}

func (l *Lexer) lexAttrValueStart(r rune) bool {
	switch {
	case isWhitespace(r):
	case r == '"' || r == '\'':
		l.quote = r
		l.attrValue.Reset()
		l.state = StateAttrValue
	case r == '>':
		l.reportf(ErrSyntax, "missing value for attribute %q at offset %d", l.attrName.String(), l.offset)
		l.commitAttr()
		l.openTag(false)
	case r == '/':
		l.reportf(ErrSyntax, "missing value for attribute %q at offset %d", l.attrName.String(), l.offset)
		l.commitAttr()
		l.state = StateSelfClosingStart
	default:
		l.quote = 0
		l.attrValue.Reset()
		l.attrValue.WriteRune(r)
		l.state = StateAttrValue
	}

	return false
}

func (l *Lexer) lexAttrValue(r rune) bool {
	if l.quote != 0 {
		if r == l.quote {
			l.commitAttr()
			l.state = StateAttrNameStart
		} else {
			l.attrValue.WriteRune(r)
		}

		return false
	}

	// Unquoted values end at whitespace, `>` or `/`.
	switch {
	case isWhitespace(r):
		l.commitAttr()
		l.state = StateAttrNameStart
	case r == '>':
		l.commitAttr()
		l.openTag(false)
	case r == '/':
		l.commitAttr()
		l.state = StateSelfClosingStart
	default:
		l.attrValue.WriteRune(r)
	}

	return false
}

func (l *Lexer) lexSelfClosingStart(r rune) bool {
	if r == '>' {
		l.openTag(true)
		return false
	}

	l.unexpected(r)
	l.state = StateAttrNameStart

	return true
}

// startAttr begins collecting an attribute name.
func (l *Lexer) startAttr(r rune) {
	l.attrName.Reset()
	l.attrValue.Reset()
	l.attrName.WriteRune(r)
	l.state = StateAttrName
}

// commitAttr stores the attribute under construction; boolean attributes have an empty value.
func (l *Lexer) commitAttr() {
	if l.attrs == nil {
		l.attrs = make(Attrs)
	}
	l.attrs[l.attrName.String()] = l.attrValue.String()

	l.attrName.Reset()
	l.attrValue.Reset()
	l.quote = 0
}

// openTag finalizes the tag under construction.
func (l *Lexer) openTag(selfClosing bool) {
	tag := TagData{Name: l.name.String(), Attrs: l.attrs, SelfClosing: selfClosing}
	if tag.Attrs == nil {
		tag.Attrs = make(Attrs)
	}
	l.attrs = nil

	if l.debug {
		l.logger.Debugf("lexer open tag: %s", tag)
	}

	if selfClosing {
		// Never pushed onto the stack.
		for _, h := range l.handlers {
			h.OpenTag(tag)
		}
		for _, h := range l.handlers {
			h.CloseTag(tag)
		}
		l.resume()

		return
	}

	l.stack = append(l.stack, tag)
	for _, h := range l.handlers {
		h.OpenTag(tag)
	}
	l.resume()
}

// closeTag emits a close event, popping the stack only when its top entry matches.
func (l *Lexer) closeTag(name string) {
	tag, top := TagData{Name: name, Attrs: make(Attrs)}, len(l.stack)-1

	switch {
	case top < 0:
		l.reportf(ErrStructure, "unexpected closing tag </%s> at offset %d: no open tags", name, l.offset)
	case l.stack[top].Name != name:
		l.reportf(ErrStructure, "mismatched closing tag </%s> at offset %d: expected </%s>",
			name, l.offset, l.stack[top].Name)
	default:
		tag = l.stack[top]
	}

	if l.debug {
		l.logger.Debugf("lexer close tag: </%s>", name)
	}
	for _, h := range l.handlers {
		h.CloseTag(tag)
	}

	if top >= 0 && l.stack[top].Name == name {
		l.stack = l.stack[:top]
	}
	l.resume()
}

// resume returns to the raw content of the innermost open tag, if it is a raw content tag, or
// the text otherwise.
func (l *Lexer) resume() {
	if top := len(l.stack) - 1; top >= 0 && l.IsRawContentTag(l.stack[top].Name) {
		l.enterRawContent(l.stack[top].Name)
		return
	}

	l.state = StateText
}

// unexpected reports a syntax error for an out of place rune.
func (l *Lexer) unexpected(r rune) {
	l.reportf(ErrSyntax, "unexpected %q at offset %d (state %s)", r, l.offset, l.state)
}

// reportf invokes the handlers' Error for a strict Lexer.
func (l *Lexer) reportf(kind error, format string, args ...interface{}) {
	if !l.strict {
		return
	}

	err := fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
	if l.debug {
		l.logger.WithError(err).Debugf("lexer stack: %s", spew.Sdump(l.stack))
	}
	for _, h := range l.handlers {
		h.Error(err)
	}
}

// isWhitespace return true for whitespace, newline & carriage return.
func isWhitespace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' }

// isNameStart return true for runes that may begin a tag or attribute name.
func isNameStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

// isName return true for runes that may continue a tag or attribute name.
func isName(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || r == '-' || r == '.' || r == ':'
}
