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
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ZaparooProject/dosbridge/pkg/tweaks"
)

// Setup runs the pre-launch MIDI step.
type Setup struct {
	fs afero.Fs
	// PrefPath is the persisted preference file.
	PrefPath string
	// ArchivePath is the per-title resource patch archive; empty
	// disables patching.
	ArchivePath string
	// Detect is swappable for tests; defaults to DetectSynth.
	Detect func(afero.Fs) (Port, bool)
}

// NewSetup returns a Setup over fs.
func NewSetup(fs afero.Fs, prefPath, archivePath string) *Setup {
	return &Setup{fs: fs, PrefPath: prefPath, ArchivePath: archivePath, Detect: DetectSynth}
}

// Apply runs the MIDI transition for a title and returns the synthesizer
// port address to hand to the emulator, or empty when MIDI stays off.
//
// Every failure in here is soft: the launch continues without MIDI.
func (s *Setup) Apply(policy tweaks.MidiPolicy, appID string) string {
	pref, err := LoadPreference(s.fs, s.PrefPath)
	if err != nil {
		log.Warn().Err(err).Msg("midi preference unreadable, assuming enabled")
	}

	switch policy {
	case tweaks.MidiDisable:
		if pref.Enabled {
			pref.Enabled = false
			s.savePref(pref)
		}
		return ""

	case tweaks.MidiForce:
		if !pref.Enabled {
			return ""
		}
		port, ok := s.Detect(s.fs)
		if !ok {
			return ""
		}
		return port.Addr

	case tweaks.MidiAuto:
		port, detected := s.Detect(s.fs)
		if !detected {
			if pref.Enabled {
				log.Warn().Msg("no midi synthesizer detected, disabling midi")
				pref.Enabled = false
				s.savePref(pref)
			}
			s.patch(appID, pref.Enabled)
			return ""
		}
		if !pref.Enabled {
			return ""
		}
		log.Info().Msgf("detected %s on %s", port.Name, port.Addr)
		return port.Addr
	}
	return ""
}

func (s *Setup) savePref(pref Preference) {
	if err := SavePreference(s.fs, s.PrefPath, pref); err != nil {
		log.Warn().Err(err).Msg("error saving midi preference")
	}
}

// patch applies the one-time resource patch for titles the archive
// covers. Checksum or coverage failures abort the MIDI step only.
func (s *Setup) patch(appID string, midiOn bool) {
	if s.ArchivePath == "" || appID == "" {
		return
	}
	if err := ApplyResourcePatch(s.fs, s.ArchivePath, appID, midiOn); err != nil {
		log.Error().Err(err).Msgf("midi resource patch skipped for app %s", appID)
	}
}
