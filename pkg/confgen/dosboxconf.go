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
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/charmap"
	ini "gopkg.in/ini.v1"

	"github.com/ZaparooProject/dosbridge/pkg/config"
	"github.com/ZaparooProject/dosbridge/pkg/winpath"
)

// ErrNotBuildable marks a launch for which no DOSBox configuration can be
// derived at all: no conf files, no injected commands and no executable.
// Callers must abort before anything is written to disk.
var ErrNotBuildable = errors.New("no emulator configuration can be derived")

const autoexecSection = "autoexec"

// Configuration is the merged DOSBox configuration for one launch:
// sections collected from referenced .conf files plus the autoexec
// commands in execution order.
type Configuration struct {
	sections map[string]map[string]string
	order    []string
	Autoexec []string
}

// NewConfiguration derives a Configuration from parsed DOSBox arguments,
// resolving referenced files through res. When args carry no conf files,
// the default dosbox.conf is imported if present.
func NewConfiguration(fs afero.Fs, res *winpath.Resolver, args Args) (*Configuration, error) {
	if len(args.Conf) == 0 && len(args.Commands) == 0 && args.File == "" {
		if !res.Exists(config.DefaultConfName) {
			return nil, ErrNotBuildable
		}
	}

	conf := &Configuration{sections: map[string]map[string]string{}}

	confFiles := args.Conf
	if len(confFiles) == 0 {
		if p, ok := res.ToPosix(config.DefaultConfName); ok {
			confFiles = []string{p}
		}
	}

	for _, winPath := range confFiles {
		p, ok := res.ToPosix(winPath)
		if !ok {
			log.Warn().Msgf("referenced conf file not found: %s", winPath)
			continue
		}
		file, err := parseConfFile(fs, p)
		if err != nil {
			return nil, fmt.Errorf("error parsing conf file %s: %w", p, err)
		}
		conf.importSections(file)
		if !args.NoAutoexec {
			conf.Autoexec = append(conf.Autoexec, autoexecLines(file)...)
		}
	}

	conf.Autoexec = append(conf.Autoexec, args.Commands...)

	if args.File != "" {
		conf.appendExeAutoexec(res, args.File, args.Exit)
	}

	return conf, nil
}

// appendExeAutoexec generates the mount-and-run commands for a direct
// executable operand, the way DOSBox itself does when handed a file.
func (c *Configuration) appendExeAutoexec(res *winpath.Resolver, exe string, exitAfter bool) {
	posix, ok := res.ToPosix(exe)
	if !ok {
		// Mount what the path claims; DOSBox will report the miss
		// inside the emulator window.
		posix = filepath.ToSlash(exe)
	}
	dir, file := path.Split(filepath.ToSlash(posix))
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		dir = "."
	}
	c.Autoexec = append(c.Autoexec, fmt.Sprintf("mount C %s", dir), "C:")
	if strings.HasSuffix(strings.ToLower(file), ".bat") {
		c.Autoexec = append(c.Autoexec, "call "+file)
	} else {
		c.Autoexec = append(c.Autoexec, file)
	}
	if exitAfter {
		c.Autoexec = append(c.Autoexec, "exit")
	}
}

// Section returns the named section's key/value pairs, or nil.
func (c *Configuration) Section(name string) map[string]string {
	return c.sections[name]
}

// Set stores a value, creating the section when needed. Later values win,
// matching DOSBox's own layering of multiple -conf files.
func (c *Configuration) Set(section, key, value string) {
	if _, ok := c.sections[section]; !ok {
		c.sections[section] = map[string]string{}
		c.order = append(c.order, section)
	}
	c.sections[section][key] = value
}

// SectionNames returns collected section names in first-seen order.
func (c *Configuration) SectionNames() []string {
	return append([]string{}, c.order...)
}

func (c *Configuration) importSections(file *ini.File) {
	for _, section := range file.Sections() {
		name := section.Name()
		if name == ini.DefaultSection || name == autoexecSection {
			continue
		}
		for _, key := range section.Keys() {
			c.Set(name, key.Name(), key.Value())
		}
	}
}

func autoexecLines(file *ini.File) []string {
	section, err := file.GetSection(autoexecSection)
	if err != nil {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(section.Body(), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseConfFile reads a DOSBox .conf file. Files are assumed UTF-8; on
// invalid encoding the read is retried as Windows-1250, which covers conf
// files shipped with older GOG releases.
func parseConfFile(fs afero.Fs, path string) (*ini.File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	if !utf8.Valid(data) {
		decoded, decErr := charmap.Windows1250.NewDecoder().Bytes(data)
		if decErr != nil {
			return nil, fmt.Errorf("error decoding file: %w", decErr)
		}
		data = decoded
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:         true,
		KeyValueDelimiters:       "=",
		UnparseableSections:      []string{autoexecSection},
		SkipUnrecognizableLines:  true,
		PreserveSurroundedQuote:  true,
		IgnoreInlineComment:      true,
		SpaceBeforeInlineComment: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("error parsing ini content: %w", err)
	}
	return file, nil
}
