package lobby

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mememaster/lobby/internal/dependencies/mocks"
	"github.com/mememaster/lobby/internal/dependencies/random"
)

func TestGenerateCodeLengthAndAlphabet(t *testing.T) {
	rnd := random.New()

	for i := 0; i < 1000; i++ {
		code := string(GenerateCode(rnd))
		assert.Len(t, code, CodeLength)
		for _, r := range code {
			assert.Contains(t, CodeAlphabet, string(r))
		}
	}
}

func TestGenerateCodeExcludesAmbiguousCharacters(t *testing.T) {
	for _, ambiguous := range []string{"I", "O", "0", "1"} {
		assert.NotContains(t, CodeAlphabet, ambiguous)
	}

	rnd := random.New()
	for i := 0; i < 1000; i++ {
		code := string(GenerateCode(rnd))
		assert.False(t, strings.ContainsAny(code, "IO01"), "code %q contains ambiguous character", code)
	}
}

func TestGenerateCodeUsesInjectedRandom(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueString("K7M2X")

	assert.Equal(t, "K7M2X", string(GenerateCode(rnd)))
}
