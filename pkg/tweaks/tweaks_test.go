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
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTweakNeeded(t *testing.T) {
	t.Parallel()

	db := NewDB()
	assert.True(t, db.CommandTweakNeeded("224960"))
	assert.False(t, db.CommandTweakNeeded("2280"), "conf-only tweak is not a command tweak")
	assert.False(t, db.CommandTweakNeeded("999999"))
}

func TestTweakCommand(t *testing.T) {
	t.Parallel()

	t.Run("matching rule replaces args", func(t *testing.T) {
		t.Parallel()
		db := NewDB()
		args, err := db.TweakCommand("224960", []string{"C:/games/TOMB.EXE", "-something"})
		require.NoError(t, err)
		assert.Equal(t, "-conf", args[0])
		assert.Contains(t, args, "dosboxtr.conf")
	})

	t.Run("no matching rule is a taxonomy error", func(t *testing.T) {
		t.Parallel()
		db := &DB{entries: map[string]Tweak{
			"1": {Commands: []CommandRule{{
				Match: regexp.MustCompile(`^LAUNCH\.EXE`),
				Args:  []string{"-conf", "x.conf"},
			}}},
		}}
		_, err := db.TweakCommand("1", []string{"OTHER.EXE"})
		require.ErrorIs(t, err, ErrNoCommandTweak)
	})

	t.Run("returned args are a copy", func(t *testing.T) {
		t.Parallel()
		db := NewDB()
		args, err := db.TweakCommand("733760", []string{"whatever"})
		require.NoError(t, err)
		args[0] = "mutated"

		again, err := db.TweakCommand("733760", []string{"whatever"})
		require.NoError(t, err)
		assert.Equal(t, "-conf", again[0])
	})
}

func TestConfTweak(t *testing.T) {
	t.Parallel()

	db := NewDB()
	frag := db.ConfTweak("2280")
	require.NotNil(t, frag)
	assert.Equal(t, "true", frag["render"]["aspect"])

	assert.Nil(t, db.ConfTweak("999999"))
}

func TestMidiPolicyDefault(t *testing.T) {
	t.Parallel()

	db := NewDB()
	assert.Equal(t, MidiAuto, db.Midi("999999"))
}
