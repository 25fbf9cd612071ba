package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	t.Run("passes a plain filename through", func(t *testing.T) {
		got, err := SanitizeFilename("report.pdf")
		require.NoError(t, err)
		require.Equal(t, "report.pdf", got)
	})

	t.Run("replaces filesystem metacharacters", func(t *testing.T) {
		got, err := SanitizeFilename(`a<b>c:d"e.txt`)
		require.NoError(t, err)
		require.Equal(t, "a_b_c_d_e.txt", got)
	})

	t.Run("strips control and invisible characters", func(t *testing.T) {
		got, err := SanitizeFilename("re​port\t.pdf")
		require.NoError(t, err)
		require.Equal(t, "report.pdf", got)
	})

	t.Run("rejects empty and traversal names", func(t *testing.T) {
		for _, name := range []string{"", "   ", ".", ".."} {
			_, err := SanitizeFilename(name)
			require.Error(t, err, "name %q", name)
		}
	})

	t.Run("rejects null bytes", func(t *testing.T) {
		_, err := SanitizeFilename("a\x00b.txt")
		require.Error(t, err)
	})

	t.Run("rejects reserved names", func(t *testing.T) {
		for _, name := range []string{"CON", "con.txt", "LPT1.log"} {
			_, err := SanitizeFilename(name)
			require.Error(t, err, "name %q", name)
		}
	})

	t.Run("truncates very long names by runes", func(t *testing.T) {
		long := ""
		for i := 0; i < 300; i++ {
			long += "ü"
		}

		got, err := SanitizeFilename(long)
		require.NoError(t, err)
		require.Len(t, []rune(got), 255)
	})
}
