// SPDX-License-Identifier: MIT
package lexer

import "fmt"

// State is the scanner's position within the markup grammar.
type State int

// Scanner states; StateText is the initial state.
const (
	StateText                    State = iota // Outside any tag.
	StateTagOpen                              // Just saw `<`.
	StateTagName                              // Collecting an opening tag's name.
	StateClosingTagOpen                       // Just saw `</`.
	StateClosingTagName                       // Collecting a closing tag's name.
	StateAttrNameStart                        // Awaiting an attribute name or the end of the tag.
	StateAttrName                             // Collecting an attribute name.
	StateAttrNameEnd                          // Name finished, awaiting `=`.
	StateAttrValueStart                       // Awaiting a quote or a bare value character.
	StateAttrValue                            // Collecting an attribute value.
	StateSelfClosingStart                     // Saw `/` inside a tag.
	StateTagEnding                            // Closing tag name finished, awaiting `>`.
	StateRawContent                           // Inside a raw content tag's body.
	StateRawContentPotentialEnd               // Matching the raw content tag's closing sequence.

	numStates
)

var stateNames = [numStates]string{
	StateText:                   "TEXT",
	StateTagOpen:                "TAG_OPEN",
	StateTagName:                "TAG_NAME",
	StateClosingTagOpen:         "CLOSING_TAG_OPEN",
	StateClosingTagName:         "CLOSING_TAG_NAME",
	StateAttrNameStart:          "ATTR_NAME_START",
	StateAttrName:               "ATTR_NAME",
	StateAttrNameEnd:            "ATTR_NAME_END",
	StateAttrValueStart:         "ATTR_VALUE_START",
	StateAttrValue:              "ATTR_VALUE",
	StateSelfClosingStart:       "SELF_CLOSING_START",
	StateTagEnding:              "TAG_ENDING",
	StateRawContent:             "RAW_CONTENT",
	StateRawContentPotentialEnd: "RAW_CONTENT_POTENTIAL_END",
}

func (s State) String() string {
	if s >= 0 && s < numStates {
		return stateNames[s]
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// inTag reports whether the state lies between a tag's `<` & `>`.
func (s State) inTag() bool { return s != StateText && s != StateRawContent && s != StateRawContentPotentialEnd }
