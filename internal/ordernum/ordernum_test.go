package ordernum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for i := 0; i < 100; i++ {
		number := New()
		require.Len(t, number, 9)
		require.True(t, Valid(number), "номер %s не проходит проверку Луна", number)
	}
}

func TestValid(t *testing.T) {
	require.True(t, Valid("79927398713"))
	require.False(t, Valid("79927398710"))
	require.False(t, Valid("не номер"))
	require.False(t, Valid(""))
}
