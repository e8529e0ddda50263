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
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// PrefFile is the persisted MIDI preference, stored under the shim's
// config directory.
const PrefFile = "midi.toml"

// Preference is the cross-run MIDI state. Enabled defaults to true; MIDI
// music is wanted unless detection or a title policy said otherwise.
type Preference struct {
	Enabled bool `toml:"enabled"`
}

// LoadPreference reads the preference file, returning the enabled default
// when it does not exist.
func LoadPreference(fs afero.Fs, path string) (Preference, error) {
	pref := Preference{Enabled: true}
	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return pref, nil
	}
	if err != nil {
		return pref, fmt.Errorf("error reading midi preference: %w", err)
	}
	if err := toml.Unmarshal(data, &pref); err != nil {
		return pref, fmt.Errorf("error parsing midi preference: %w", err)
	}
	return pref, nil
}

// SavePreference persists the preference.
func SavePreference(fs afero.Fs, path string, pref Preference) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("error creating preference directory: %w", err)
	}
	data, err := toml.Marshal(pref)
	if err != nil {
		return fmt.Errorf("error marshalling midi preference: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
		return fmt.Errorf("error writing midi preference: %w", err)
	}
	return nil
}
