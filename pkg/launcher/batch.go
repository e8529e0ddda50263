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
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotTrivialBatch rejects scripts with more than one effective
// command. A general batch interpreter is out of scope, and running just
// one line of a multi-line script would silently run the wrong thing.
var ErrNotTrivialBatch = errors.New("batch script is not a single-command launcher")

// TrivialBatch is a parsed single-statement launcher script.
type TrivialBatch struct {
	// Dir is an optional working directory change preceding the
	// command, empty when none.
	Dir string
	// Args are the emulator arguments the script invokes.
	Args []string
}

// Batch noise lines that carry no command.
func isBatchNoise(line string) bool {
	lower := strings.ToLower(line)
	switch {
	case line == "":
		return true
	case lower == "@echo off" || lower == "echo off":
		return true
	case strings.HasPrefix(lower, "rem ") || strings.HasPrefix(line, "::"):
		return true
	}
	return false
}

// ParseTrivialBatch interprets a minimal launcher script: blank lines and
// comments, at most one leading directory change, then exactly one
// command invoking the named emulator binary. Anything else is rejected.
func ParseTrivialBatch(fs afero.Fs, path, emulatorName string) (*TrivialBatch, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading batch script: %w", err)
	}

	batch := &TrivialBatch{}
	seenCommand := false
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if isBatchNoise(line) {
			continue
		}

		tokens := splitCommandLine(line)
		if len(tokens) == 0 {
			continue
		}

		if strings.EqualFold(tokens[0], "cd") && !seenCommand {
			if batch.Dir != "" || len(tokens) != 2 {
				return nil, fmt.Errorf("%w: %s", ErrNotTrivialBatch, path)
			}
			batch.Dir = tokens[1]
			continue
		}

		if seenCommand {
			return nil, fmt.Errorf("%w: %s", ErrNotTrivialBatch, path)
		}
		if !invokesEmulator(tokens[0], emulatorName) {
			return nil, fmt.Errorf("%w: %s does not invoke %s", ErrNotTrivialBatch, path, emulatorName)
		}
		batch.Args = tokens[1:]
		seenCommand = true
	}

	if !seenCommand {
		return nil, fmt.Errorf("%w: %s has no command", ErrNotTrivialBatch, path)
	}
	return batch, nil
}

// splitCommandLine tokenizes a batch command line, honoring double
// quotes.
func splitCommandLine(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}
