// Dosbridge
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dosbridge.
//
// Dosbridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dosbridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dosbridge.  If not, see <http://www.gnu.org/licenses/>.

package winpath

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPosix(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("Game/Data", 0o755))
	require.NoError(t, afero.WriteFile(fs, "Game/Data/config.CFG", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "dosbox.conf", []byte("x"), 0o644))

	res := NewResolver(fs)

	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"exact match", "Game/Data/config.CFG", "Game/Data/config.CFG", true},
		{"backslash separators", `Game\Data\config.CFG`, "Game/Data/config.CFG", true},
		{"wrong case everywhere", "GAME/DATA/CONFIG.CFG", "Game/Data/config.CFG", true},
		{"lowercase", "game/data/config.cfg", "Game/Data/config.CFG", true},
		{"drive letter stripped", `C:\GAME\DATA\CONFIG.CFG`, "Game/Data/config.CFG", true},
		{"dot resolves to dot", ".", ".", true},
		{"missing file", "Game/Data/missing.cfg", "", false},
		{"missing directory", "Other/config.CFG", "", false},
		{"top level", "DOSBOX.CONF", "dosbox.conf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := res.ToPosix(tt.in)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExists(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "SETUP.EXE", []byte("x"), 0o644))

	res := NewResolver(fs)
	assert.True(t, res.Exists("setup.exe"))
	assert.True(t, res.Exists("Setup.Exe"))
	assert.False(t, res.Exists("install.exe"))
}

func TestGuessesMixedCase(t *testing.T) {
	t.Parallel()

	// A capitalization none of the cheap guesses cover.
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ReadMe.TxT", []byte("x"), 0o644))

	res := NewResolver(fs)
	got, ok := res.ToPosix("readme.txt")
	require.True(t, ok)
	assert.Equal(t, "ReadMe.TxT", got)
}

func TestLongNameUsesDirectoryListing(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "AVeryLongGameDataFile.dat", []byte("x"), 0o644))

	res := NewResolver(fs)
	got, ok := res.ToPosix("averylonggamedatafile.DAT")
	require.True(t, ok)
	assert.Equal(t, "AVeryLongGameDataFile.dat", got)
}
