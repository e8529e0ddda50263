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

// Package confgen builds the two DOSBox configuration layers the shim
// passes to the emulator: a cached static artifact derived from the launch
// arguments and a per-run auto artifact with machine-local settings.
package confgen

import (
	"crypto/sha1" //nolint:gosec // artifact naming, not security
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ZaparooProject/dosbridge/pkg/config"
	"github.com/ZaparooProject/dosbridge/pkg/winpath"
)

const staticHeader = `# Generated by dosbridge
# Based on args to Windows version of DOSBox:
# %s

`

const sdlSection = `[sdl]
fullscreen=true
fullresolution=desktop
output=opengl
autolock=false
waitonerror=true

`

const autoHeader = `# Generated by dosbridge
# This file is re-created on every run

`

// DOSBox Sound Blaster defaults.
const sblasterSection = `[sblaster]
sbtype=sb16
sbbase=220
irq=7
dma=1
hdma=5

`

const midiSection = `[midi]
mpu401=intelligent
mididevice=default
midiconfig=%s

`

// Fragment is a partial configuration override, section name to key to
// value, merged override-wins into the generated static artifact.
type Fragment map[string]map[string]string

// Synthesizer writes static and auto configuration artifacts into the
// game's working directory.
type Synthesizer struct {
	fs       afero.Fs
	resolver *winpath.Resolver
	// Regen forces static artifacts to be rewritten even when a cached
	// one exists under the computed name.
	Regen bool
}

// NewSynthesizer returns a Synthesizer operating on fs.
func NewSynthesizer(fs afero.Fs) *Synthesizer {
	return &Synthesizer{fs: fs, resolver: winpath.NewResolver(fs)}
}

// UniqueConfName returns the static artifact name for an installation and
// argument vector. The name is a pure function of its inputs: identical
// launches map to the same file across runs, differing argument vectors
// map to distinct files.
func UniqueConfName(installID string, args []string) string {
	sum := sha1.Sum([]byte(installID + strings.Join(args, ""))) //nolint:gosec // see import
	uid := hex.EncodeToString(sum[:])[:6]
	return fmt.Sprintf("%s%s_%s.conf", config.ConfPrefix, installID, uid)
}

// BuildStatic creates or reuses the static configuration artifact for the
// given installation and effective DOSBox arguments, with the tweak
// fragment merged over derived settings. Returns the artifact name.
//
// An existing artifact under the computed name is reused untouched unless
// regeneration is forced, preserving any local user edits.
func (s *Synthesizer) BuildStatic(installID string, args []string, fragment Fragment) (string, error) {
	name := UniqueConfName(installID, args)

	if !s.Regen {
		if exists, _ := afero.Exists(s.fs, name); exists {
			log.Debug().Msgf("reusing cached conf %s", name)
			return name, nil
		}
	}

	parsed := ParseArgs(args)
	conf, err := NewConfiguration(s.fs, s.resolver, parsed)
	if err != nil {
		return "", err
	}

	content := s.renderStatic(conf, args, fragment)
	if err := afero.WriteFile(s.fs, name, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("error writing static conf: %w", err)
	}
	log.Info().Msgf("generated static conf %s", name)
	return name, nil
}

// BuildAuto writes the per-run configuration artifact. midiAddr is the
// detected synthesizer port ("128:0") or empty when none was found.
func (s *Synthesizer) BuildAuto(midiAddr string) (string, error) {
	var b strings.Builder
	b.WriteString(autoHeader)
	b.WriteString(sblasterSection)
	if midiAddr != "" {
		fmt.Fprintf(&b, midiSection, midiAddr)
	}
	name := config.AutoConfName
	if err := afero.WriteFile(s.fs, name, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("error writing auto conf: %w", err)
	}
	return name, nil
}

// CleanupStale removes previously generated static artifacts for the
// installation that a new artifact under keep supersedes.
func (s *Synthesizer) CleanupStale(installID, keep string) {
	pattern := fmt.Sprintf("%s%s_*.conf", config.ConfPrefix, installID)
	matches, err := afero.Glob(s.fs, pattern)
	if err != nil {
		log.Warn().Err(err).Msg("error listing stale conf files")
		return
	}
	for _, match := range matches {
		if match == keep {
			continue
		}
		if err := s.fs.Remove(match); err != nil {
			log.Warn().Err(err).Msgf("error removing stale conf %s", match)
			continue
		}
		log.Info().Msgf("removed stale conf %s", match)
	}
}

// renderStatic produces the artifact bytes. Section keys are emitted
// sorted so the output is deterministic for identical inputs.
func (s *Synthesizer) renderStatic(conf *Configuration, args []string, fragment Fragment) string {
	var b strings.Builder
	fmt.Fprintf(&b, staticHeader, strings.Join(args, " "))

	sdl := fragment["sdl"]
	if len(sdl) == 0 {
		b.WriteString(sdlSection)
	} else {
		base := parseSectionDefaults(sdlSection)
		for k, v := range sdl {
			base[k] = v
		}
		writeSection(&b, "sdl", base)
	}

	emitted := map[string]bool{"sdl": true}
	for _, name := range conf.SectionNames() {
		if name != "mixer" && fragment[name] == nil {
			// Imported but not relevant to the generated file; DOSBox
			// defaults cover it.
			continue
		}
		section := map[string]string{}
		for k, v := range conf.Section(name) {
			section[k] = v
		}
		for k, v := range fragment[name] {
			section[k] = v
		}
		writeSection(&b, name, section)
		emitted[name] = true
	}
	fragNames := make([]string, 0, len(fragment))
	for name := range fragment {
		if !emitted[name] {
			fragNames = append(fragNames, name)
		}
	}
	sort.Strings(fragNames)
	for _, name := range fragNames {
		writeSection(&b, name, fragment[name])
	}

	if len(conf.Autoexec) > 0 {
		b.WriteString("[autoexec]\n")
		for _, line := range ToLinuxAutoexec(s.resolver, conf.Autoexec) {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func writeSection(b *strings.Builder, name string, values map[string]string) {
	fmt.Fprintf(b, "[%s]\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s=%s\n", k, values[k])
	}
	b.WriteString("\n")
}

func parseSectionDefaults(block string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			out[k] = v
		}
	}
	return out
}
