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
	"fmt"
	"regexp"
	"strings"

	"github.com/ZaparooProject/dosbridge/pkg/winpath"
)

// Autoexec sections authored for Windows mount case-insensitive paths and
// switch drives with trailing backslashes. These rewrites make the lines
// work against the real filesystem.
var (
	mountQuotedRe = regexp.MustCompile(`(?i)^@? *(mount|imgmount) +([a-z]):? +"([^"]+)"( +(.*))?$`)
	mountBareRe   = regexp.MustCompile(`(?i)^@? *(mount|imgmount) +([a-z]):? +([^ ]+)( +(.*))?$`)
	changeDriveRe = regexp.MustCompile(`(?i)^@? *([a-z]:)\\? *$`)
)

// ToLinuxAutoexec rewrites mount targets and drive changes in autoexec
// lines so they reference existing files. Unrecognized lines pass through
// untouched.
func ToLinuxAutoexec(res *winpath.Resolver, autoexec []string) []string {
	out := make([]string, 0, len(autoexec))
	for _, line := range autoexec {
		out = append(out, translateLine(res, line))
	}
	return out
}

func translateLine(res *winpath.Resolver, line string) string {
	match := mountQuotedRe.FindStringSubmatch(line)
	if match == nil {
		match = mountBareRe.FindStringSubmatch(line)
	}
	if match != nil {
		cmd := strings.ToLower(match[1])
		drive := strings.ToUpper(match[2])
		rest := match[4]
		target := match[3]
		if posix, ok := res.ToPosix(target); ok {
			target = posix
		}
		return fmt.Sprintf(`%s %s "%s"%s`, cmd, drive, target, rest)
	}
	if match := changeDriveRe.FindStringSubmatch(line); match != nil {
		return strings.ToUpper(match[1])
	}
	return line
}
