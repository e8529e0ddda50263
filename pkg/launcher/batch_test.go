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

package launcher

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBatch(t *testing.T, fs afero.Fs, content string) string {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, "run.bat", []byte(content), 0o644))
	return "run.bat"
}

func TestParseTrivialBatch(t *testing.T) {
	t.Parallel()

	t.Run("single command with noise", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		path := writeBatch(t, fs, "@echo off\r\nrem launcher script\r\n\r\ndosbox GAME.EXE -exit\r\n")

		batch, err := ParseTrivialBatch(fs, path, "dosbox")
		require.NoError(t, err)
		assert.Empty(t, batch.Dir)
		assert.Equal(t, []string{"GAME.EXE", "-exit"}, batch.Args)
	})

	t.Run("leading cd", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		path := writeBatch(t, fs, "cd GAME\nDOSBOX.EXE -conf game.conf\n")

		batch, err := ParseTrivialBatch(fs, path, "dosbox")
		require.NoError(t, err)
		assert.Equal(t, "GAME", batch.Dir)
		assert.Equal(t, []string{"-conf", "game.conf"}, batch.Args)
	})

	t.Run("quoted arguments", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		path := writeBatch(t, fs, `dosbox -conf "my game.conf" -fullscreen`)

		batch, err := ParseTrivialBatch(fs, path, "dosbox")
		require.NoError(t, err)
		assert.Equal(t, []string{"-conf", "my game.conf", "-fullscreen"}, batch.Args)
	})

	t.Run("second command rejected", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		path := writeBatch(t, fs, "dosbox GAME.EXE\ndosbox EDITOR.EXE\n")

		_, err := ParseTrivialBatch(fs, path, "dosbox")
		require.ErrorIs(t, err, ErrNotTrivialBatch)
	})

	t.Run("non emulator command rejected", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		path := writeBatch(t, fs, "SETUP.EXE\n")

		_, err := ParseTrivialBatch(fs, path, "dosbox")
		require.ErrorIs(t, err, ErrNotTrivialBatch)
	})

	t.Run("cd after command rejected", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		path := writeBatch(t, fs, "dosbox GAME.EXE\ncd ..\n")

		_, err := ParseTrivialBatch(fs, path, "dosbox")
		require.ErrorIs(t, err, ErrNotTrivialBatch)
	})

	t.Run("empty script rejected", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		path := writeBatch(t, fs, "@echo off\nrem nothing here\n")

		_, err := ParseTrivialBatch(fs, path, "dosbox")
		require.ErrorIs(t, err, ErrNotTrivialBatch)
	})
}

func TestSplitCommandLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"dosbox", "-c", "mount C ."},
		splitCommandLine(`dosbox -c "mount C ."`))
	assert.Empty(t, splitCommandLine("   "))
}
