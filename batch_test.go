// SPDX-License-Identifier: MIT
package artifact

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/fisherprime/artifact/internal/chunk"
	"gitlab.com/fisherprime/artifact/lexer"
)

func TestParseAll(t *testing.T) {
	const count = 12

	sources := make([]Source, count)
	for index := range sources {
		doc := strings.Replace(document, `name="MiniCpn"`, fmt.Sprintf(`name="Cpn%d"`, index), 1)
		sources[index] = Source{
			Name:   fmt.Sprintf("doc-%d", index),
			Reader: chunk.NewReader(strings.NewReader(doc), chunk.WithJitter(rand.New(rand.NewSource(int64(index))))),
		}
	}

	results, err := ParseAll(context.Background(), sources, &Config{Workers: 3})
	require.NoError(t, err)
	require.Len(t, results, count)

	for index, resl := range results {
		assert.Equal(t, fmt.Sprintf("doc-%d", index), resl.Name)
		assert.NoError(t, resl.Err)
		require.Len(t, resl.Artifacts, 1)
		assert.Equal(t, fmt.Sprintf("Cpn%d", index), resl.Artifacts[0].ComponentName)
		assert.Equal(t, miniCpn().Codes, resl.Artifacts[0].Codes)
	}
}

func TestParseAll_Failures(t *testing.T) {
	sources := []Source{
		{Name: "good", Reader: strings.NewReader(document)},
		{Name: "broken", Reader: iotest.ErrReader(errors.New("connection reset"))},
		{Name: "malformed", Reader: strings.NewReader(`<ComponentArtifact name="X"></Oops></ComponentArtifact>`)},
	}

	results, err := ParseAll(context.Background(), sources, &Config{Strict: true, Workers: 2})
	require.Error(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Len(t, results[0].Artifacts, 1)

	assert.True(t, errors.Is(results[1].Err, lexer.ErrRead))
	assert.True(t, errors.Is(results[2].Err, lexer.ErrStructure))
	assert.Len(t, results[2].Artifacts, 1)

	assert.True(t, errors.Is(err, ErrParse))
	assert.Contains(t, err.Error(), "broken: ")
	assert.Contains(t, err.Error(), "malformed: ")
	assert.NotContains(t, err.Error(), "good: ")
}

func TestParseAll_Empty(t *testing.T) {
	results, err := ParseAll(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, results)
}
