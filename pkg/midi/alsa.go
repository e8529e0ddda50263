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

// Package midi detects MIDI synthesizers, keeps the persisted on/off
// preference and applies per-title resource patches.
package midi

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const seqClientsPath = "/proc/asound/seq/clients"

// synthNameRe matches the client names of the software synthesizers
// DOSBox can talk to out of the box.
var synthNameRe = regexp.MustCompile(`timidity|fluid`)

var (
	clientRe = regexp.MustCompile(`^Client +(\d+) : "(.*)" \[(.*)\]`)
	portRe   = regexp.MustCompile(`^  Port +(\d+) : "(.*)" \((.{4})\)`)
)

// Port is one ALSA sequencer port.
type Port struct {
	Addr  string
	Name  string
	Desc  string
	Space string
	Flags string
}

// ParseSeqPorts parses the ALSA sequencer client list format exposed in
// procfs.
func ParseSeqPorts(r io.Reader) []Port {
	var ports []Port
	var client, name, space string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := clientRe.FindStringSubmatch(line); m != nil {
			client, name, space = m[1], m[2], m[3]
			continue
		}
		if m := portRe.FindStringSubmatch(line); m != nil {
			ports = append(ports, Port{
				Addr:  client + ":" + m[1],
				Name:  name,
				Desc:  m[2],
				Space: space,
				Flags: m[3],
			})
		}
	}
	return ports
}

// DetectSynth returns the first writable sequencer port belonging to a
// known software synthesizer.
func DetectSynth(fs afero.Fs) (Port, bool) {
	f, err := fs.Open(seqClientsPath)
	if err != nil {
		log.Debug().Err(err).Msg("alsa sequencer not available")
		return Port{}, false
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing seq clients")
		}
	}()
	return findSynthPort(ParseSeqPorts(f))
}

func findSynthPort(ports []Port) (Port, bool) {
	for _, port := range ports {
		// Flags are four characters, the second is 'W' for ports that
		// accept input.
		if len(port.Flags) < 2 || port.Flags[1] != 'W' {
			continue
		}
		if synthNameRe.MatchString(strings.ToLower(port.Name)) {
			return port, true
		}
	}
	return Port{}, false
}
