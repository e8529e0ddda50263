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
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	AppName    = "dosbridge"
	AppVersion = "0.1.0"
	CfgFile    = "dosbridge.toml"
	LogFile    = "dosbridge.log"

	// InstallDirToken is replaced in every emulator command template
	// token with the resolved game installation directory.
	InstallDirToken = "%install_dir%"

	// DefaultConfName is the conf file DOSBox itself would pick up from
	// the working directory.
	DefaultConfName = "dosbox.conf"

	// ConfPrefix namespaces every static artifact written next to a game.
	ConfPrefix = "dosbridge_"

	// AutoConfName is the per-run configuration layer, rewritten on
	// every launch.
	AutoConfName = "dosbridge_auto.conf"
)

// Values holds the shim's own settings, loaded once at process start and
// read-only afterwards.
type Values struct {
	Emulator Emulator `toml:"emulator"`
	Launcher Launcher `toml:"launcher,omitempty"`
	Debug    bool     `toml:"debug_logging"`
}

// Emulator configures how the DOSBox binary is invoked.
type Emulator struct {
	// Command is the invocation template. Tokens may contain
	// InstallDirToken which is substituted at run time.
	Command []string `toml:"command,multiline"`
	// Name is the binary name the classifier matches against, without
	// extension.
	Name string `toml:"name"`
}

// Launcher configures recognition of third-party launcher executables.
type Launcher struct {
	// Exe is the launcher binary name matched case-insensitively.
	Exe string `toml:"exe"`
	// Ini is the adapter file expected next to the launcher binary.
	Ini string `toml:"ini"`
}

// BaseDefaults are the settings written to disk on first run.
var BaseDefaults = Values{
	Emulator: Emulator{
		Command: []string{"dosbox"},
		Name:    "dosbox",
	},
	Launcher: Launcher{
		Exe: "SierraLauncher.exe",
		Ini: "SierraLauncher.ini",
	},
}

// Dir returns the shim's configuration directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// CacheDir returns the directory for logs and the PID file.
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Load reads the settings file under dir, creating it with defaults when
// it does not exist yet.
//
//nolint:gocritic // defaults struct copied for immutability
func Load(fs afero.Fs, dir string, defaults Values) (Values, error) {
	path := filepath.Join(dir, CfgFile)
	vals := defaults

	if _, err := fs.Stat(path); os.IsNotExist(err) {
		log.Info().Msgf("saving new default config to %s", path)
		if saveErr := save(fs, path, &vals); saveErr != nil {
			return vals, saveErr
		}
		return vals, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return vals, fmt.Errorf("error reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, &vals); err != nil {
		return vals, fmt.Errorf("error parsing config file: %w", err)
	}

	if len(vals.Emulator.Command) == 0 {
		vals.Emulator.Command = defaults.Emulator.Command
	}
	if vals.Emulator.Name == "" {
		vals.Emulator.Name = defaults.Emulator.Name
	}

	return vals, nil
}

func save(fs afero.Fs, path string, vals *Values) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	data, err := toml.Marshal(vals)
	if err != nil {
		return fmt.Errorf("error marshalling config: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
