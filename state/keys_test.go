// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddPermissions(t *testing.T) {
	tests := []struct {
		name       string
		permission Permissions
		canRead    bool
		canAlloc   bool
		canWrite   bool
	}{
		{
			name:       "read only account",
			permission: Read,
			canRead:    true,
		},
		{
			name:       "writable account",
			permission: Write,
			canRead:    true,
			canWrite:   true,
		},
		{
			name:       "writable account that may be created",
			permission: All,
			canRead:    true,
			canAlloc:   true,
			canWrite:   true,
		},
		{
			name:       "no permissions",
			permission: None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			keys := Keys{}
			keys.Add("account", tt.permission)

			perm := keys["account"]
			require.Equal(tt.canRead, perm.Has(Read))
			require.Equal(tt.canAlloc, perm.Has(Allocate))
			require.Equal(tt.canWrite, perm.Has(Write))
		})
	}
}

func TestUnionPermissions(t *testing.T) {
	require := require.New(t)

	keys := Keys{}
	keys.Add("account", Read)
	keys.Add("account", Write)
	require.Equal(Write, keys["account"])

	// Listing the account again as read-only must not narrow it.
	keys.Add("account", Read)
	require.True(keys["account"].Has(Write))

	keys.Add("account", Allocate)
	require.Equal(All, keys["account"])
}
