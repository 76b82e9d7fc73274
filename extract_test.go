// SPDX-License-Identifier: MIT
package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		extract func(string) (string, bool)
		input   string
		want    string
		wantOk  bool
	}{
		{
			name:    "try catch error",
			extract: ExtractTryCatchError,
			input:   "Fixed it.\n<TryCatchError>\n  TypeError: x is undefined\n    at App (App.tsx:3)\n</TryCatchError>\nDone",
			want:    "TypeError: x is undefined\n    at App (App.tsx:3)",
			wantOk:  true,
		},
		{
			name:    "first of many",
			extract: ExtractTryCatchError,
			input:   "<TryCatchError>one</TryCatchError><TryCatchError>two</TryCatchError>",
			want:    "one",
			wantOk:  true,
		},
		{
			name:    "empty payload",
			extract: ExtractTryCatchError,
			input:   "<TryCatchError>  </TryCatchError>",
			want:    "",
			wantOk:  true,
		},
		{
			name:    "unclosed",
			extract: ExtractTryCatchError,
			input:   "<TryCatchError>pending",
		},
		{
			name:    "component id",
			extract: ExtractNewComponentID,
			input:   `<ComponentArtifact name="A"></ComponentArtifact><NewComponentId> cpn-42 </NewComponentId>`,
			want:    "cpn-42",
			wantOk:  true,
		},
		{
			name:    "component id absent",
			extract: ExtractNewComponentID,
			input:   "<TryCatchError>cpn-42</TryCatchError>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.extract(tt.input)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
