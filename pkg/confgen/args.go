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

package confgen

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Args is the subset of the DOSBox command line the shim understands.
// Publishers pass plenty of other flags; those are ignored rather than
// rejected, matching DOSBox's own tolerant parser.
type Args struct {
	File       string
	Conf       []string
	Commands   []string
	NoAutoexec bool
	NoConsole  bool
	Fullscreen bool
	Exit       bool
}

// ParseArgs parses DOSBox-style arguments. Flags may appear in any order
// and are single-dash, as DOSBox expects.
func ParseArgs(args []string) Args {
	var out Args
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch strings.ToLower(arg) {
		case "-conf":
			if i+1 < len(args) {
				i++
				out.Conf = append(out.Conf, args[i])
			}
		case "-c":
			// The command operand is optional; a following flag is not it.
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				if args[i] != "" {
					out.Commands = append(out.Commands, args[i])
				}
			}
		case "-noautoexec":
			out.NoAutoexec = true
		case "-noconsole":
			out.NoConsole = true
		case "-fullscreen":
			out.Fullscreen = true
		case "-exit":
			out.Exit = true
		default:
			if strings.HasPrefix(arg, "-") {
				log.Debug().Msgf("ignoring dosbox argument: %s", arg)
				continue
			}
			if out.File == "" {
				out.File = arg
			}
		}
	}
	return out
}
