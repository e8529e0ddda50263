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

package runner

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// WritePIDFile records pid as the in-flight launch marker.
func WritePIDFile(fs afero.Fs, path string, pid int) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("error creating pid file directory: %w", err)
	}
	data := strconv.Itoa(pid) + "\n"
	if err := afero.WriteFile(fs, path, []byte(data), 0o600); err != nil {
		return fmt.Errorf("error writing pid file: %w", err)
	}
	return nil
}

// ReadPIDFile returns the recorded process id.
func ReadPIDFile(fs afero.Fs, path string) (int, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, fmt.Errorf("error reading pid file: %w", err)
	}
	first, _, _ := strings.Cut(string(data), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, fmt.Errorf("error parsing pid file: %w", err)
	}
	return pid, nil
}

// RemovePIDFile deletes the marker. A missing file is not an error; the
// other invocation may have cleaned up already.
func RemovePIDFile(fs afero.Fs, path string) error {
	err := fs.Remove(path)
	if err == nil {
		return nil
	}
	if exists, _ := afero.Exists(fs, path); !exists {
		return nil
	}
	return fmt.Errorf("error removing pid file: %w", err)
}
