// SPDX-License-Identifier: MIT
package artifact

import (
	"regexp"
	"strings"
)

// Markup carrying single payloads, extracted from a fully buffered response.
const (
	TryCatchErrorTag  = "TryCatchError"
	NewComponentIDTag = "NewComponentId"
)

var (
	tryCatchErrorRe  = payloadRe(TryCatchErrorTag)
	newComponentIDRe = payloadRe(NewComponentIDTag)
)

func payloadRe(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)<` + tag + `>(.*?)</` + tag + `>`)
}

// ExtractTryCatchError obtains the trimmed payload of the first closed TryCatchError tag.
func ExtractTryCatchError(s string) (string, bool) { return extractPayload(tryCatchErrorRe, s) }

// ExtractNewComponentID obtains the trimmed payload of the first closed NewComponentId tag.
func ExtractNewComponentID(s string) (string, bool) { return extractPayload(newComponentIDRe, s) }

func extractPayload(re *regexp.Regexp, s string) (payload string, ok bool) {
	match := re.FindStringSubmatch(s)
	if match == nil {
		return
	}

	return strings.TrimSpace(match[1]), true
}
