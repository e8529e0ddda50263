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

package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	vals, err := Load(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, []string{"dosbox"}, vals.Emulator.Command)
	assert.Equal(t, "dosbox", vals.Emulator.Name)

	exists, err := afero.Exists(fs, filepath.Join("/cfg", CfgFile))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLoadReadsExisting(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	content := `[emulator]
command = ["dosbox-staging", "-fullscreen"]
name = "dosbox"
`
	require.NoError(t, fs.MkdirAll("/cfg", 0o750))
	require.NoError(t, afero.WriteFile(fs, filepath.Join("/cfg", CfgFile), []byte(content), 0o600))

	vals, err := Load(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, []string{"dosbox-staging", "-fullscreen"}, vals.Emulator.Command)
}

func TestLoadFillsEmptyFields(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/cfg", 0o750))
	require.NoError(t, afero.WriteFile(fs, filepath.Join("/cfg", CfgFile), []byte("debug_logging = true\n"), 0o600))

	vals, err := Load(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)
	assert.True(t, vals.Debug)
	assert.Equal(t, []string{"dosbox"}, vals.Emulator.Command)
	assert.Equal(t, "dosbox", vals.Emulator.Name)
}

func TestSnapshotEnv(t *testing.T) {
	t.Setenv(RunExeEnv, "GAME/START.BAT")
	t.Setenv("SteamAppId", "2280")
	t.Setenv(RegenConfEnv, "1")
	t.Setenv(QuietEnv, "0")

	env := SnapshotEnv()
	assert.Equal(t, "GAME/START.BAT", env.RunExe)
	assert.Equal(t, "2280", env.AppID)
	assert.True(t, env.RegenConf)
	assert.False(t, env.Quiet)
}

func TestSnapshotEnvAppIDFallback(t *testing.T) {
	t.Setenv("SteamAppId", "")
	t.Setenv("STEAM_APPID", "10100")

	env := SnapshotEnv()
	assert.Equal(t, "10100", env.AppID)
}
