package session

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweetlavka/storefront/internal/session/config"
)

func TestRegistrySessionReuse(t *testing.T) {
	registry := NewRegistry(config.Config{TokenSecret: "тест"})

	first := registry.Session("100001")
	require.Same(t, first, registry.Session("100001"))
	require.NotSame(t, first, registry.Session("100002"))
}

func TestRegistryBounded(t *testing.T) {
	registry := NewRegistry(config.Config{TokenSecret: "тест"})

	for i := 0; i < maxSessions; i++ {
		registry.Session(strconv.Itoa(i))
	}
	require.Len(t, registry.sessions, maxSessions)

	// сессия сверх предела вытесняет самую давнюю, реестр не растет
	registry.Session("новичок")
	require.Len(t, registry.sessions, maxSessions)
	require.Contains(t, registry.sessions, "новичок")
}
