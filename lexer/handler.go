// SPDX-License-Identifier: MIT
package lexer

type (
	// Handler receives the Lexer's events.
	//
	// Events are delivered synchronously, in input order, from within the Write & Close calls
	// that produce them.
	Handler interface {
		OpenTag(tag TagData)
		CloseTag(tag TagData)
		// RawContent delivers a body fragment of a raw content tag.
		RawContent(tag TagData, text string)
		// Error is only invoked by a strict Lexer.
		Error(err error)
		// Chunk is invoked once per write call, after its characters have been processed.
		Chunk(chunk string)
		End()
	}

	// HandlerFuncs adapts optional functions to the Handler interface; nil functions are skipped.
	HandlerFuncs struct {
		OnOpenTag    func(tag TagData)
		OnCloseTag   func(tag TagData)
		OnRawContent func(tag TagData, text string)
		OnError      func(err error)
		OnChunk      func(chunk string)
		OnEnd        func()
	}

	// Collector records every event as an Item.
	Collector struct {
		Items []Item
	}
)

var (
	_ Handler = HandlerFuncs{}
	_ Handler = (*Collector)(nil)
)

// OpenTag implements Handler.
func (h HandlerFuncs) OpenTag(tag TagData) {
	if h.OnOpenTag != nil {
		h.OnOpenTag(tag)
	}
}

// CloseTag implements Handler.
func (h HandlerFuncs) CloseTag(tag TagData) {
	if h.OnCloseTag != nil {
		h.OnCloseTag(tag)
	}
}

// RawContent implements Handler.
func (h HandlerFuncs) RawContent(tag TagData, text string) {
	if h.OnRawContent != nil {
		h.OnRawContent(tag, text)
	}
}

// Error implements Handler.
func (h HandlerFuncs) Error(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

// Chunk implements Handler.
func (h HandlerFuncs) Chunk(chunk string) {
	if h.OnChunk != nil {
		h.OnChunk(chunk)
	}
}

// End implements Handler.
func (h HandlerFuncs) End() {
	if h.OnEnd != nil {
		h.OnEnd()
	}
}

// OpenTag implements Handler.
func (c *Collector) OpenTag(tag TagData) { c.Items = append(c.Items, Item{ID: ItemOpenTag, Tag: tag}) }

// CloseTag implements Handler.
func (c *Collector) CloseTag(tag TagData) {
	c.Items = append(c.Items, Item{ID: ItemCloseTag, Tag: tag})
}

// RawContent implements Handler.
func (c *Collector) RawContent(tag TagData, text string) {
	c.Items = append(c.Items, Item{ID: ItemRawContent, Tag: tag, Val: text})
}

// Error implements Handler.
func (c *Collector) Error(err error) { c.Items = append(c.Items, Item{ID: ItemError, Err: err}) }

// Chunk implements Handler.
func (c *Collector) Chunk(chunk string) { c.Items = append(c.Items, Item{ID: ItemChunk, Val: chunk}) }

// End implements Handler.
func (c *Collector) End() { c.Items = append(c.Items, Item{ID: ItemEnd}) }

// Errors lists the recorded errors.
func (c *Collector) Errors() (errs []error) {
	for _, item := range c.Items {
		if item.ID == ItemError {
			errs = append(errs, item.Err)
		}
	}

	return
}

// RawContentOf concatenates the raw content recorded for the named tag.
func (c *Collector) RawContentOf(name string) string {
	var out []byte
	for _, item := range c.Items {
		if item.ID == ItemRawContent && item.Tag.Name == name {
			out = append(out, item.Val...)
		}
	}

	return string(out)
}
