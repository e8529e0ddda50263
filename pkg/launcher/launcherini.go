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
	"fmt"

	ini "gopkg.in/ini.v1"
)

// LauncherConfig is the adapter result for a third-party launcher's ini
// file: what to call the game, where to run it from and the emulator
// arguments to use instead of the launcher binary.
type LauncherConfig struct {
	Name string
	Dir  string
	Args []string
}

// ParseLauncherIni reads a third-party launcher configuration. The caller
// guarantees the file exists; malformed content is a parse error the
// classifier surfaces as a configuration error.
//
// Expected shape:
//
//	[launcher]
//	name = Some Game Collection
//	dir = GAME1
//	exe = GAME.EXE
//	switches = -conf game.conf
func ParseLauncherIni(data []byte) (*LauncherConfig, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:      "=",
		SkipUnrecognizableLines: false,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("error parsing launcher ini: %w", err)
	}

	section, err := file.GetSection("launcher")
	if err != nil {
		return nil, fmt.Errorf("launcher ini has no [launcher] section: %w", err)
	}

	exe := section.Key("exe").String()
	if exe == "" {
		return nil, fmt.Errorf("launcher ini names no executable")
	}

	cfg := &LauncherConfig{
		Name: section.Key("name").String(),
		Dir:  section.Key("dir").String(),
	}
	cfg.Args = append(cfg.Args, exe)
	if switches := section.Key("switches").String(); switches != "" {
		cfg.Args = append(cfg.Args, splitCommandLine(switches)...)
	}
	return cfg, nil
}
