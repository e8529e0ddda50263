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

package confgen

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaparooProject/dosbridge/pkg/winpath"
)

func TestToLinuxAutoexec(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("Game Data", 0o755))
	require.NoError(t, afero.WriteFile(fs, "disc.iso", []byte("x"), 0o644))
	res := winpath.NewResolver(fs)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "quoted mount resolves case",
			in:   `mount c "GAME DATA"`,
			want: `mount C "Game Data"`,
		},
		{
			name: "imgmount with options keeps rest",
			in:   "imgmount d DISC.ISO -t iso",
			want: `imgmount D "disc.iso" -t iso`,
		},
		{
			name: "at-prefixed mount",
			in:   "@mount c .",
			want: `mount C "."`,
		},
		{
			name: "drive change with backslash",
			in:   `c:\`,
			want: "C:",
		},
		{
			name: "drive change plain",
			in:   "C:",
			want: "C:",
		},
		{
			name: "unrelated lines untouched",
			in:   "GAME.EXE -skipintro",
			want: "GAME.EXE -skipintro",
		},
		{
			name: "missing mount target passes through",
			in:   "mount e NOPE",
			want: `mount E "NOPE"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ToLinuxAutoexec(res, []string{tt.in})
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}
