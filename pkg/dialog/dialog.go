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

// Package dialog surfaces fatal errors to the user. Steam swallows the
// compat tool's stderr, so a failed launch with log-only reporting looks
// like nothing happened at all.
package dialog

import (
	"os/exec"

	godialog "github.com/nixinwang/dialog"
	"github.com/rs/zerolog/log"
)

const title = "Dosbridge"

// Reporter shows user-visible errors.
type Reporter struct {
	// Bin is an external dialog binary invoked as "bin <message>";
	// empty falls back to the desktop dialog library.
	Bin string
}

// Error logs msg and shows it to the user. Dialog display failures
// degrade to log-only.
func (r *Reporter) Error(msg string) {
	log.Error().Msg(msg)
	if r.Bin != "" {
		if err := exec.Command(r.Bin, msg).Run(); err == nil { //nolint:gosec // binary is user-configured
			return
		}
		log.Warn().Msgf("error dialog binary failed: %s", r.Bin)
	}
	godialog.Message("%s", msg).Title(title).Error()
}
