//go:build linux

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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/ZaparooProject/dosbridge/pkg/confgen"
	"github.com/ZaparooProject/dosbridge/pkg/config"
	"github.com/ZaparooProject/dosbridge/pkg/dialog"
	"github.com/ZaparooProject/dosbridge/pkg/launcher"
	"github.com/ZaparooProject/dosbridge/pkg/midi"
	"github.com/ZaparooProject/dosbridge/pkg/runner"
	"github.com/ZaparooProject/dosbridge/pkg/steam"
	"github.com/ZaparooProject/dosbridge/pkg/tweaks"
	"github.com/ZaparooProject/dosbridge/pkg/winpath"
)

const usageText = `usage: dosbridge [flags] [--] <command>...

Translates a platform-supplied DOS game launch command into a DOSBox
invocation.

flags:
  --version          print version and exit
  --wait-before-run  wait for a previous launch of this title to finish
  --get-native-path  unsupported path query (exits 1)
  --get-compat-path  unsupported path query (exits 1)
`

func main() {
	os.Exit(run(os.Args[1:]))
}

//nolint:funlen // top-level dispatch mirrors the CLI surface
func run(args []string) int {
	flags := flag.NewFlagSet(config.AppName, flag.ExitOnError)
	flags.Usage = func() { fmt.Fprint(os.Stderr, usageText) }

	showVersion := flags.Bool("version", false, "print version and exit")
	waitBeforeRun := flags.Bool("wait-before-run", false, "wait for a previous launch to finish")
	getNativePath := flags.Bool("get-native-path", false, "unsupported path query")
	getCompatPath := flags.Bool("get-compat-path", false, "unsupported path query")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *showVersion {
		fmt.Printf("%s %s\n", config.AppName, config.AppVersion)
		return 0
	}
	if *getNativePath || *getCompatPath {
		fmt.Fprintln(os.Stderr, "dosbridge: path queries are not supported")
		return 1
	}

	cmd := flags.Args()
	if len(cmd) == 0 {
		flags.Usage()
		return 0
	}

	env := config.SnapshotEnv()
	fs := afero.NewOsFs()

	if err := initLogging(env.Quiet); err != nil {
		fmt.Fprintf(os.Stderr, "dosbridge: error initializing logging: %v\n", err)
	}
	extendSearchPaths(env)

	cfg, err := config.Load(fs, config.Dir(), config.BaseDefaults)
	if err != nil {
		log.Warn().Err(err).Msg("error loading config, using defaults")
		cfg = config.BaseDefaults
	}

	reporter := &dialog.Reporter{Bin: env.DialogBin}

	synth := confgen.NewSynthesizer(fs)
	synth.Regen = env.RegenConf

	r := runner.NewRunner(fs, filepath.Join(config.CacheDir(), "dosbridge.pid"))
	r.WaitGate = *waitBeforeRun
	r.Env = subprocessEnv(env)

	engine := &launcher.Engine{
		FS:       fs,
		Cfg:      cfg,
		Env:      env,
		DB:       tweaks.NewDB(),
		Synth:    synth,
		Midi:     midi.NewSetup(fs, filepath.Join(config.Dir(), midi.PrefFile), archivePath(fs)),
		Runner:   r,
		Resolver: winpath.NewResolver(fs),
		Chdir:    os.Chdir,
		InstallDirOf: func(appID string) (string, bool) {
			app, err := steam.FindApp(fs, steam.DefaultRoots(), appID)
			if err != nil {
				log.Warn().Err(err).Msg("install directory not resolved")
				return "", false
			}
			return app.InstallDir, true
		},
	}

	strategy, err := engine.Classify(context.Background(), cmd)
	if err != nil {
		log.Error().Err(err).Msgf("launch failed (strategy %s)", strategy)
		reporter.Error(err.Error())
		if errors.Is(err, launcher.ErrWorkDirUndeterminable) {
			return 2
		}
		return 1
	}
	return 0
}

// initLogging mirrors the service logging setup: rotated file log under
// the cache dir, plus stderr unless quiet mode is on.
func initLogging(quiet bool) error {
	if err := os.MkdirAll(config.CacheDir(), 0o750); err != nil {
		return fmt.Errorf("error creating cache directory: %w", err)
	}

	writers := []io.Writer{&lumberjack.Logger{
		Filename:   filepath.Join(config.CacheDir(), config.LogFile),
		MaxSize:    1,
		MaxBackups: 2,
	}}
	if !quiet {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = log.Output(io.MultiWriter(writers...)).
		With().Timestamp().Logger()
	return nil
}

// extendSearchPaths prepends the bundled-runtime locations so a shipped
// emulator build wins over whatever the system has.
func extendSearchPaths(env config.Env) {
	if env.PathExtra != "" {
		_ = os.Setenv("PATH", env.PathExtra+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
	if env.LibExtra != "" {
		_ = os.Setenv("LD_LIBRARY_PATH", env.LibExtra+string(os.PathListSeparator)+os.Getenv("LD_LIBRARY_PATH"))
	}
}

// subprocessEnv is the extra environment handed to the emulator.
func subprocessEnv(env config.Env) []string {
	var out []string
	if env.AppID != "" {
		out = append(out, "SteamAppId="+env.AppID)
	}
	return out
}

// archivePath returns the MIDI resource patch archive when shipped.
func archivePath(fs afero.Fs) string {
	path := filepath.Join(config.Dir(), "midi_patches.tar.gz")
	if exists, _ := afero.Exists(fs, path); exists {
		return path
	}
	return ""
}
