// SPDX-License-Identifier: MIT
package lexer

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// ItemID int holding an identifier for the Item events.
	ItemID int

	// Attrs holds a tag's attributes; boolean attributes map to an empty string.
	Attrs map[string]string

	// TagData describes an opened or self-closed markup element.
	TagData struct {
		Attrs       Attrs
		Name        string
		SelfClosing bool
	}

	// Item type holding a single scanner event.
	Item struct {
		Err error
		Tag TagData
		Val string // Raw content fragment or chunk text.
		ID  ItemID
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_              ItemID = iota // Consume 0 to start actual numbering at 1.
	ItemError                    // Notify occurrence of an `error`.
	ItemOpenTag                  // `<name ...>` or the opening half of `<name ... />`.
	ItemCloseTag                 // `</name>` or the closing half of `<name ... />`.
	ItemRawContent               // Body fragment of a raw content tag.
	ItemChunk                    // A write call's chunk, after it has been processed.
	ItemEnd                      // End of the input.
)

var itemNames = map[ItemID]string{
	ItemError:      "error",
	ItemOpenTag:    "open",
	ItemCloseTag:   "close",
	ItemRawContent: "raw",
	ItemChunk:      "chunk",
	ItemEnd:        "end",
}

func (i ItemID) String() string {
	if name, ok := itemNames[i]; ok {
		return name
	}

	return fmt.Sprintf("ItemID(%d)", int(i))
}

// Get an attribute's value.
func (a Attrs) Get(key string) (val string, ok bool) {
	val, ok = a[key]
	return
}

// Keys lists the attribute names in lexical order.
func (a Attrs) Keys() (keys []string) {
	keys = maps.Keys(a)
	slices.Sort(keys)

	return
}

// String renders the tag in its markup form, attributes sorted by name.
func (t TagData) String() string {
	var buffer strings.Builder

	buffer.WriteByte('<')
	buffer.WriteString(t.Name)
	for _, key := range t.Attrs.Keys() {
		fmt.Fprintf(&buffer, " %s=%q", key, t.Attrs[key])
	}
	if t.SelfClosing {
		buffer.WriteString(" /")
	}
	buffer.WriteByte('>')

	return buffer.String()
}

func (i Item) String() string {
	switch i.ID {
	case ItemOpenTag:
		return fmt.Sprintf("%s %s", i.ID, i.Tag)
	case ItemCloseTag:
		return fmt.Sprintf("%s </%s>", i.ID, i.Tag.Name)
	case ItemRawContent:
		return fmt.Sprintf("%s <%s> %q", i.ID, i.Tag.Name, i.Val)
	case ItemChunk:
		return fmt.Sprintf("%s %q", i.ID, i.Val)
	case ItemError:
		return fmt.Sprintf("%s %v", i.ID, i.Err)
	default:
		return i.ID.String()
	}
}
