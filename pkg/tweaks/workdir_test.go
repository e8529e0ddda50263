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

package tweaks

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckWorkDir(t *testing.T) {
	t.Parallel()

	cmd := []string{"/games/Doom/base/DOSBOX.EXE", "-conf", "doom.conf"}

	t.Run("conf resolves in cwd", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/games/Doom/doom.conf", []byte("x"), 0o644))

		check := CheckWorkDir(fs, "/games/Doom", cmd)
		assert.True(t, check.OK)
		assert.False(t, check.ChangeNeeded)
		assert.Equal(t, "/games/Doom", check.Dir)
	})

	t.Run("conf resolves in program ancestor", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/games/Doom/base/doom.conf", []byte("x"), 0o644))

		check := CheckWorkDir(fs, "/somewhere/else", cmd)
		assert.True(t, check.OK)
		assert.True(t, check.ChangeNeeded)
		assert.Equal(t, "/games/Doom/base", check.Dir)
	})

	t.Run("undeterminable when conf nowhere", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()

		check := CheckWorkDir(fs, "/somewhere", cmd)
		assert.False(t, check.OK)
	})

	t.Run("relative program path is undeterminable", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()

		check := CheckWorkDir(fs, "/somewhere", []string{"DOSBOX.EXE", "-conf", "doom.conf"})
		assert.False(t, check.OK)
	})

	t.Run("windows separators in conf reference", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/games/Doom/base/conf/doom.conf", []byte("x"), 0o644))

		check := CheckWorkDir(fs, "/elsewhere", []string{
			"/games/Doom/base/DOSBOX.EXE", "-conf", `CONF\DOOM.CONF`,
		})
		assert.True(t, check.OK)
		assert.True(t, check.ChangeNeeded)
		assert.Equal(t, "/games/Doom/base", check.Dir)
	})
}
