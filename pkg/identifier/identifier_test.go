package identifier_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillpoint/pos-api/pkg/identifier"
)

func TestGenerate_Format(t *testing.T) {
	id := identifier.Generate("PAY")
	assert.Regexp(t, regexp.MustCompile(`^PAY-\d{13}-[0-9a-z]{9}$`), id)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := identifier.Generate("LT")
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestGenerateCompact(t *testing.T) {
	id := identifier.GenerateCompact("SKU", 8)
	assert.Len(t, id, 11)
	assert.True(t, strings.HasPrefix(id, "SKU"))
	assert.Equal(t, id, strings.ToUpper(id))
}
