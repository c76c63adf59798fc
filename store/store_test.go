// store_test.go - Tests fuer die Uebersetzungs-Historie
package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndList(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.Add("este es un problema", "this is a problem", 120*time.Millisecond)
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	id2, err := s.Add("hola", "hello", 80*time.Millisecond)
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	translations, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, translations, 2)

	// Neueste zuerst
	byID := map[string]Translation{}
	for _, tr := range translations {
		byID[tr.ID] = tr
	}
	require.Equal(t, "this is a problem", byID[id1].Result)
	require.Equal(t, int64(120), byID[id1].Duration)
	require.Equal(t, "hola", byID[id2].Source)
}

func TestListLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := s.Add("quelle", "source", time.Millisecond)
		require.NoError(t, err)
	}

	translations, err := s.List(3)
	require.NoError(t, err)
	require.Len(t, translations, 3)
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)

	translations, err := s.List(10)
	require.NoError(t, err)
	require.Empty(t, translations)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := New(path)
	require.NoError(t, err)
	_, err = s.Add("adios", "goodbye", time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()

	translations, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, translations, 1)
	require.Equal(t, "goodbye", translations[0].Result)
}
