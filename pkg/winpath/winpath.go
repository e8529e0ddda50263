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

// Package winpath resolves case-insensitive Windows-style paths against a
// case-sensitive filesystem. Game publishers author launch arguments for
// Windows, where GAME.CONF and game.conf are the same file; on Linux the
// shim has to find whichever capitalization actually exists on disk.
package winpath

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Exhaustive case guessing is 2^len candidates; beyond this length fall
// back to a directory listing instead.
const maxSwitchCasesLen = 12

// Resolver finds existing files referenced by case-insensitive paths.
type Resolver struct {
	fs afero.Fs
}

// NewResolver returns a Resolver backed by fs.
func NewResolver(fs afero.Fs) *Resolver {
	return &Resolver{fs: fs}
}

// ToPosix converts a case-insensitive Windows path to the path of an
// existing file. Returns the resolved path and true, or "" and false when
// no capitalization of the path exists.
func (r *Resolver) ToPosix(winPath string) (string, bool) {
	if winPath == "." || winPath == "" {
		return winPath, winPath == "."
	}
	parts := splitWindowsPath(winPath)
	resolved, ok := r.resolveParts(parts)
	if !ok {
		return "", false
	}
	return filepath.Join(resolved...), true
}

// Exists reports whether any capitalization of winPath exists.
func (r *Resolver) Exists(winPath string) bool {
	_, ok := r.ToPosix(winPath)
	return ok
}

func (r *Resolver) resolveParts(parts []string) ([]string, bool) {
	if len(parts) == 0 {
		return nil, true
	}
	prefix, ok := r.resolveParts(parts[:len(parts)-1])
	if !ok {
		return nil, false
	}
	last := parts[len(parts)-1]
	for _, candidate := range r.guesses(prefix, last) {
		full := filepath.Join(append(append([]string{}, prefix...), candidate)...)
		if _, err := r.fs.Stat(full); err == nil {
			return append(prefix, candidate), true
		}
	}
	return nil, false
}

// guesses returns candidate capitalizations of part, most probable first:
// verbatim, upper, lower, capitalized, then every remaining combination.
// Long names skip the exhaustive fallback and match against the parent
// directory listing instead.
func (r *Resolver) guesses(prefix []string, part string) []string {
	title := ""
	if part != "" {
		title = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	candidates := []string{part, strings.ToUpper(part), strings.ToLower(part), title}

	if len(part) <= maxSwitchCasesLen {
		candidates = append(candidates, switchCases(part)...)
		return dedup(candidates)
	}

	dir := "."
	if len(prefix) > 0 {
		dir = filepath.Join(prefix...)
	}
	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return dedup(candidates)
	}
	for _, entry := range entries {
		if strings.EqualFold(entry.Name(), part) {
			candidates = append(candidates, entry.Name())
		}
	}
	return dedup(candidates)
}

// splitWindowsPath breaks a Windows-style path into components, dropping
// drive letters and normalizing both separator styles. A drive-letter path
// is rooted at the game's working directory, not the filesystem root, so
// the separator after the drive is dropped with it.
func splitWindowsPath(p string) []string {
	p = strings.ReplaceAll(p, `\`, "/")
	if len(p) >= 2 && p[1] == ':' {
		p = strings.TrimPrefix(p[2:], "/")
	}
	var parts []string
	if strings.HasPrefix(p, "/") {
		parts = append(parts, "/")
	}
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}

// switchCases generates every per-letter case combination of txt.
func switchCases(txt string) []string {
	if txt == "" {
		return []string{""}
	}
	rest := switchCases(txt[1:])
	upper := strings.ToUpper(txt[:1])
	lower := strings.ToLower(txt[:1])
	out := make([]string, 0, 2*len(rest))
	for _, suffix := range rest {
		out = append(out, upper+suffix)
	}
	for _, suffix := range rest {
		out = append(out, lower+suffix)
	}
	return out
}

func dedup(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
