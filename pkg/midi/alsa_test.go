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

package midi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seqClientsSample = `Client info
  cur  clients : 3
Client   0 : "Timer" [Kernel]
  Port   0 : "Timer" (Rwe-)
Client  14 : "Midi Through" [Kernel]
  Port   0 : "Midi Through Port-0" (RWe-)
Client 128 : "TiMidity" [User]
  Port   0 : "TiMidity port 0" (-We-)
  Port   1 : "TiMidity port 1" (-We-)
`

func TestParseSeqPorts(t *testing.T) {
	t.Parallel()

	ports := ParseSeqPorts(strings.NewReader(seqClientsSample))
	require.Len(t, ports, 4)

	assert.Equal(t, "0:0", ports[0].Addr)
	assert.Equal(t, "Timer", ports[0].Name)
	assert.Equal(t, "Kernel", ports[0].Space)
	assert.Equal(t, "Rwe-", ports[0].Flags)

	assert.Equal(t, "128:0", ports[2].Addr)
	assert.Equal(t, "TiMidity", ports[2].Name)
	assert.Equal(t, "TiMidity port 0", ports[2].Desc)
	assert.Equal(t, "128:1", ports[3].Addr)
}

func TestFindSynthPort(t *testing.T) {
	t.Parallel()

	t.Run("timidity matched on writable port", func(t *testing.T) {
		t.Parallel()
		ports := ParseSeqPorts(strings.NewReader(seqClientsSample))
		port, ok := findSynthPort(ports)
		require.True(t, ok)
		assert.Equal(t, "128:0", port.Addr)
	})

	t.Run("read-only ports skipped", func(t *testing.T) {
		t.Parallel()
		port, ok := findSynthPort([]Port{
			{Addr: "128:0", Name: "FluidSynth", Flags: "R-e-"},
		})
		assert.False(t, ok)
		assert.Empty(t, port.Addr)
	})

	t.Run("non synth clients skipped", func(t *testing.T) {
		t.Parallel()
		_, ok := findSynthPort([]Port{
			{Addr: "14:0", Name: "Midi Through", Flags: "RWe-"},
		})
		assert.False(t, ok)
	})

	t.Run("fluidsynth matched", func(t *testing.T) {
		t.Parallel()
		port, ok := findSynthPort([]Port{
			{Addr: "129:0", Name: "FLUID Synth (qsynth)", Flags: "-We-"},
		})
		require.True(t, ok)
		assert.Equal(t, "129:0", port.Addr)
	})
}
