package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	renderer := NewCsvRenderer()

	t.Run("header and rows", func(t *testing.T) {
		got, err := renderer.Render(
			[]string{"id", "title"},
			[][]string{{"1", "Tea bowl"}, {"2", "Vase, tall"}},
		)

		require.NoError(t, err)
		assert.Equal(t, "id,title\n1,Tea bowl\n2,\"Vase, tall\"\n", got)
	})

	t.Run("no rows still emits the header", func(t *testing.T) {
		got, err := renderer.Render([]string{"id", "title"}, nil)

		require.NoError(t, err)
		assert.Equal(t, "id,title\n", got)
	})
}
