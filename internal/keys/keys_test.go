// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keys

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatdeck-tui/internal/storage"
)

func TestEmptyListIsNotAnError(t *testing.T) {
	mgr := NewManager(storage.NewMemStore())
	ks, err := mgr.List()
	require.NoError(t, err)
	assert.Empty(t, ks)
}

func TestGeneratePersistsAndNames(t *testing.T) {
	mgr := NewManager(storage.NewMemStore())

	k1, err := mgr.Generate()
	require.NoError(t, err)
	k2, err := mgr.Generate()
	require.NoError(t, err)

	assert.Equal(t, "Key 1", k1.Name)
	assert.Equal(t, "Key 2", k2.Name)
	assert.True(t, strings.HasPrefix(k1.Secret, "sk-"), "secret should carry the sk- prefix")
	assert.NotEqual(t, k1.Secret, k2.Secret, "generated secrets must differ")
	assert.NotEqual(t, k1.ID, k2.ID, "generated IDs must differ")

	ks, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, ks, 2)
}

func TestRevoke(t *testing.T) {
	mgr := NewManager(storage.NewMemStore())
	k1, err := mgr.Generate()
	require.NoError(t, err)
	k2, err := mgr.Generate()
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(k1.ID))

	ks, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, ks, 1)
	assert.Equal(t, k2.ID, ks[0].ID)

	assert.ErrorIs(t, mgr.Revoke("nope"), ErrKeyNotFound)
}

func TestMasked(t *testing.T) {
	k := Key{Secret: "sk-0123456789abcdef0123456789abcdef"}
	masked := k.Masked()
	assert.Equal(t, "sk-...cdef", masked)
	assert.NotContains(t, masked, "0123456789", "mask must not leak the secret body")
}
