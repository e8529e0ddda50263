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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/ZaparooProject/dosbridge/pkg/confgen"
	"github.com/ZaparooProject/dosbridge/pkg/winpath"
)

// WorkDirCheck is the outcome of CheckWorkDir.
type WorkDirCheck struct {
	// ChangeNeeded is set when the launch must chdir to Dir first.
	ChangeNeeded bool
	// Dir is the directory in which referenced conf files resolve.
	Dir string
	// OK is false when no directory containing the conf files could be
	// determined at all.
	OK bool
}

// CheckWorkDir tests whether cwd is the right place to launch from.
//
// Steam normally changes into a publisher-specified subdirectory of the
// install dir before invoking the command as an absolute path. When that
// chdir went wrong, conf files referenced by the command line are not
// found where expected; this walks the program path's ancestors looking
// for a directory where every referenced conf file resolves.
func CheckWorkDir(fs afero.Fs, cwd string, cmd []string) WorkDirCheck {
	if len(cmd) == 0 {
		return WorkDirCheck{OK: false}
	}
	prog, args := cmd[0], cmd[1:]
	progPath := filepath.ToSlash(strings.ReplaceAll(prog, `\`, "/"))
	if !strings.HasPrefix(progPath, "/") {
		return WorkDirCheck{OK: false}
	}

	confPaths := confgen.ParseArgs(args).Conf

	if confsResolveIn(fs, cwd, confPaths) {
		return WorkDirCheck{ChangeNeeded: false, Dir: cwd, OK: true}
	}

	home, _ := os.UserHomeDir()
	prefix := progPath
	for {
		prefix = filepath.Dir(prefix)
		if confsResolveIn(fs, prefix, confPaths) {
			return WorkDirCheck{ChangeNeeded: true, Dir: prefix, OK: true}
		}
		if prefix == "/" || prefix == home {
			break
		}
	}
	return WorkDirCheck{OK: false}
}

func confsResolveIn(fs afero.Fs, dir string, confPaths []string) bool {
	res := winpath.NewResolver(afero.NewBasePathFs(fs, dir))
	for _, p := range confPaths {
		if !res.Exists(p) {
			return false
		}
	}
	return true
}
