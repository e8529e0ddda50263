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

// Package tweaks carries per-title workarounds: command-line rewrites,
// configuration override fragments, MIDI policy and one-time setup flags,
// all keyed by the Steam application id.
package tweaks

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MidiPolicy controls how MIDI setup treats a title.
type MidiPolicy int

const (
	// MidiAuto enables MIDI when a synthesizer is available, degrading
	// gracefully otherwise.
	MidiAuto MidiPolicy = iota
	// MidiDisable forces the MIDI preference off for the title.
	MidiDisable
	// MidiForce keeps whatever the persisted preference says.
	MidiForce
)

// ErrNoCommandTweak is returned when a title is registered for command
// rewriting but no rule matches the incoming command line. This is a
// taxonomy gap and must abort the launch rather than fall through to the
// generic strategies.
var ErrNoCommandTweak = errors.New("no suitable command tweak found")

// CommandRule rewrites a matching command line into replacement DOSBox
// arguments.
type CommandRule struct {
	Match *regexp.Regexp
	Args  []string
}

// Tweak is everything the database knows about one title.
type Tweak struct {
	// Conf is a configuration fragment merged override-wins into the
	// generated static artifact.
	Conf map[string]map[string]string
	// Commands, when non-empty, replaces the incoming command line.
	Commands []CommandRule
	// Midi is the title's MIDI policy.
	Midi MidiPolicy
	// Install marks titles needing a one-time setup step before the
	// first launch.
	Install bool
	// FixWorkDir marks titles whose publisher-supplied working
	// directory is wrong and needs the ancestor walk in CheckWorkDir.
	FixWorkDir bool
}

// DB is a tweak lookup. The zero value is an empty database.
type DB struct {
	entries map[string]Tweak
}

// NewDB returns a database with the built-in entries.
func NewDB() *DB {
	return &DB{entries: builtin}
}

// Lookup returns the tweak for a title id.
func (db *DB) Lookup(appID string) (Tweak, bool) {
	t, ok := db.entries[appID]
	return t, ok
}

// CommandTweakNeeded reports whether the title's command line must be
// rewritten before classification can continue.
func (db *DB) CommandTweakNeeded(appID string) bool {
	t, ok := db.entries[appID]
	return ok && len(t.Commands) > 0
}

// TweakCommand rewrites cmd according to the title's command rules. The
// first rule matching the joined command line wins.
func (db *DB) TweakCommand(appID string, cmd []string) ([]string, error) {
	t, ok := db.entries[appID]
	if !ok || len(t.Commands) == 0 {
		return nil, fmt.Errorf("%w: title %s has no command rules", ErrNoCommandTweak, appID)
	}
	joined := strings.Join(cmd, " ")
	for _, rule := range t.Commands {
		if rule.Match.MatchString(joined) {
			return append([]string{}, rule.Args...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoCommandTweak, joined)
}

// ConfTweak returns the title's configuration fragment, nil when absent.
func (db *DB) ConfTweak(appID string) map[string]map[string]string {
	return db.entries[appID].Conf
}

// Midi returns the title's MIDI policy, MidiAuto when unlisted.
func (db *DB) Midi(appID string) MidiPolicy {
	return db.entries[appID].Midi
}

// builtin is the shipped database. Entries are deliberately sparse; the
// database's content is maintained out of tree and merged here per
// release.
var builtin = map[string]Tweak{
	// Ultimate Doom
	"2280": {
		Conf: map[string]map[string]string{
			"render": {"aspect": "true"},
		},
	},
	// King's Quest Collection
	"10100": {
		Conf: map[string]map[string]string{
			"render": {"aspect": "true"},
		},
	},
	// STAR WARS - Dark Forces
	"32400": {
		Conf: map[string]map[string]string{
			"render": {"aspect": "true"},
		},
	},
	// Tomb Raider I: upstream DOSBox has no GLide acceleration, start
	// the game without hardware acceleration.
	"224960": {
		Commands: []CommandRule{{
			Match: regexp.MustCompile(`.*`),
			Args: []string{
				"-conf", "dosboxtr.conf", "-noautoexec",
				"-c", "mount C .",
				"-c", "imgmount D GAME.DAT -t iso -fs iso",
				"-c", "C:",
				"-c", "cd TOMBRAID",
				"-c", "TOMBNO~1.EXE",
				"-c", "exit",
			},
		}},
	},
	// MegaRace 2
	"733760": {
		Commands: []CommandRule{{
			Match: regexp.MustCompile(`.*`),
			Args: []string{
				"-conf", "dosboxmegarace2.conf", "-noautoexec",
				"-c", "mount C .",
				"-c", "mount D . -t cdrom",
				"-c", "C:",
				"-c", "MEGARACE.EXE",
				"-c", "exit",
			},
		}},
	},
}
