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

// Package steam reads the minimum of Steam library metadata the shim
// needs: where a title is installed and what it is called.
package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// App is the resolved metadata for one installed title.
type App struct {
	Name       string
	InstallDir string
}

// DefaultRoots returns the usual Steam installation roots for the current
// user, existing or not.
func DefaultRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".steam", "debian-installation"),
	}
}

// FindApp locates appID in any library under the given Steam roots. A
// miss is normal (shortcut launches, dev setups) and reported as an
// error for the caller to log and degrade on.
func FindApp(fs afero.Fs, roots []string, appID string) (App, error) {
	for _, root := range roots {
		libraries, err := libraryFolders(fs, root)
		if err != nil {
			log.Debug().Err(err).Msgf("no steam libraries under %s", root)
			continue
		}
		for _, library := range libraries {
			app, err := readAppManifest(fs, library, appID)
			if err != nil {
				continue
			}
			return app, nil
		}
	}
	return App{}, fmt.Errorf("app %s not found in any steam library", appID)
}

// libraryFolders returns the steamapps directories of every library
// registered under a Steam root, the root's own library included.
func libraryFolders(fs afero.Fs, root string) ([]string, error) {
	path := filepath.Join(root, "steamapps", "libraryfolders.vdf")
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening libraryfolders.vdf: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing libraryfolders.vdf")
		}
	}()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		return nil, fmt.Errorf("error parsing libraryfolders.vdf: %w", err)
	}
	m = normalizeKeys(m)

	folders := []string{filepath.Join(root, "steamapps")}
	lfs, ok := m["libraryfolders"].(map[string]any)
	if !ok {
		return folders, nil
	}
	for id, v := range lfs {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		libraryPath, ok := entry["path"].(string)
		if !ok {
			log.Debug().Msgf("library %s has no path", id)
			continue
		}
		folders = append(folders, filepath.Join(libraryPath, "steamapps"))
	}
	return folders, nil
}

// readAppManifest reads appmanifest_<id>.acf from a steamapps directory.
func readAppManifest(fs afero.Fs, steamApps, appID string) (App, error) {
	path := filepath.Join(steamApps, "appmanifest_"+appID+".acf")
	f, err := fs.Open(path)
	if err != nil {
		return App{}, fmt.Errorf("error opening app manifest: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msgf("error closing %s", path)
		}
	}()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		return App{}, fmt.Errorf("error parsing app manifest: %w", err)
	}
	m = normalizeKeys(m)

	state, ok := m["appstate"].(map[string]any)
	if !ok {
		return App{}, fmt.Errorf("app manifest %s has no appstate", path)
	}
	name, _ := state["name"].(string)
	installDir, _ := state["installdir"].(string)
	if installDir == "" {
		return App{}, fmt.Errorf("app manifest %s has no installdir", path)
	}
	return App{
		Name:       name,
		InstallDir: filepath.Join(steamApps, "common", installDir),
	}, nil
}

// normalizeKeys lowercases top-level and nested map keys. Valve is not
// consistent about key casing across client versions.
func normalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeKeys(nested)
		}
		out[strings.ToLower(k)] = v
	}
	return out
}
