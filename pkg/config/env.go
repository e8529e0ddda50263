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

import "os"

const (
	RunExeEnv    = "DOSBRIDGE_RUN_EXE"
	DialogEnv    = "DOSBRIDGE_DIALOG"
	PathExtraEnv = "DOSBRIDGE_PATH_EXTRA"
	LibExtraEnv  = "DOSBRIDGE_LIB_EXTRA"
	RegenConfEnv = "DOSBRIDGE_REGEN_CONF"
	QuietEnv     = "DOSBRIDGE_QUIET"

	// Steam sets both, depending on client version, for the running app.
	steamAppIDEnv    = "SteamAppId"
	steamAppIDAltEnv = "STEAM_APPID"
)

// Env is a one-shot snapshot of every environment variable the shim
// consumes. Classification never reads the environment directly, so a
// decision is a pure function of the snapshot and the command line.
type Env struct {
	RunExe    string
	AppID     string
	DialogBin string
	PathExtra string
	LibExtra  string
	RegenConf bool
	Quiet     bool
}

// SnapshotEnv captures the consumed environment variables exactly once.
func SnapshotEnv() Env {
	appID := os.Getenv(steamAppIDEnv)
	if appID == "" {
		appID = os.Getenv(steamAppIDAltEnv)
	}
	return Env{
		RunExe:    os.Getenv(RunExeEnv),
		AppID:     appID,
		DialogBin: os.Getenv(DialogEnv),
		PathExtra: os.Getenv(PathExtraEnv),
		LibExtra:  os.Getenv(LibExtraEnv),
		RegenConf: boolEnv(RegenConfEnv),
		Quiet:     boolEnv(QuietEnv),
	}
}

// boolEnv treats any value other than empty and "0" as true, matching
// how Steam compat tools conventionally read toggles.
func boolEnv(name string) bool {
	v := os.Getenv(name)
	return v != "" && v != "0"
}
