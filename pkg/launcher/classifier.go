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

// Package launcher classifies platform-supplied launch commands and
// drives them through configuration generation into an emulator
// invocation.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ZaparooProject/dosbridge/pkg/confgen"
	"github.com/ZaparooProject/dosbridge/pkg/config"
	"github.com/ZaparooProject/dosbridge/pkg/midi"
	"github.com/ZaparooProject/dosbridge/pkg/runner"
	"github.com/ZaparooProject/dosbridge/pkg/tweaks"
	"github.com/ZaparooProject/dosbridge/pkg/winpath"
)

// Strategy identifies which classifier branch handled a launch. Exactly
// one strategy is selected per invocation.
type Strategy int

const (
	RunExeOverride Strategy = iota
	TweakedCommand
	DirectEmulatorInvocation
	TrivialBatchStrategy
	ExistingStaticConfig
	ThirdPartyLauncher
	Unrecognized
)

func (s Strategy) String() string {
	switch s {
	case RunExeOverride:
		return "run-exe-override"
	case TweakedCommand:
		return "tweaked-command"
	case DirectEmulatorInvocation:
		return "direct-emulator-invocation"
	case TrivialBatchStrategy:
		return "trivial-batch"
	case ExistingStaticConfig:
		return "existing-static-config"
	case ThirdPartyLauncher:
		return "third-party-launcher"
	case Unrecognized:
		return "unrecognized"
	}
	return "unknown"
}

var (
	// ErrUnrecognized means no classifier branch accepted the command
	// line. Exit status 1.
	ErrUnrecognized = errors.New("command line not recognized")
	// ErrLauncherConfigMissing means a third-party launcher was named
	// but its adapter ini is absent. Exit status 1.
	ErrLauncherConfigMissing = errors.New("launcher configuration file missing")
	// ErrWorkDirUndeterminable means no directory containing the
	// referenced conf files could be found. Exit status 2.
	ErrWorkDirUndeterminable = errors.New("unable to determine working directory")
)

// Engine holds everything classification needs. Decisions are a pure
// function of the snapshotted environment and the command line; side
// effects happen in the strategy handlers.
type Engine struct {
	FS       afero.Fs
	Cfg      config.Values
	Env      config.Env
	DB       *tweaks.DB
	Synth    *confgen.Synthesizer
	Midi     *midi.Setup
	Runner   *runner.Runner
	Resolver *winpath.Resolver
	// Chdir applies working-directory changes; swappable for tests.
	Chdir func(string) error
	// InstallDirOf resolves the title's installation directory; a miss
	// is soft. Swappable for tests.
	InstallDirOf func(appID string) (string, bool)
}

// rule pairs a predicate with its handler. Rules are evaluated in order
// and the first match wins, so the priority order is data, not implicit
// code structure.
type rule struct {
	strategy Strategy
	match    func(e *Engine, cmd []string) bool
	run      func(ctx context.Context, e *Engine, cmd []string) error
}

var rules = []rule{
	{
		strategy: RunExeOverride,
		match: func(e *Engine, _ []string) bool {
			return e.Env.RunExe != ""
		},
		run: runExeOverride,
	},
	{
		strategy: TweakedCommand,
		match: func(e *Engine, _ []string) bool {
			return e.DB.CommandTweakNeeded(e.Env.AppID)
		},
		run: runTweakedCommand,
	},
	{
		strategy: DirectEmulatorInvocation,
		match: func(e *Engine, cmd []string) bool {
			return len(cmd) > 0 && invokesEmulator(cmd[0], e.Cfg.Emulator.Name)
		},
		run: runDirectInvocation,
	},
	{
		strategy: TrivialBatchStrategy,
		match: func(e *Engine, cmd []string) bool {
			return len(cmd) > 0 && isBatchPath(cmd[0]) && e.Resolver.Exists(cmd[0])
		},
		run: runTrivialBatch,
	},
	{
		strategy: ExistingStaticConfig,
		match: func(e *Engine, _ []string) bool {
			return e.Resolver.Exists(config.DefaultConfName)
		},
		run: runExistingConf,
	},
	{
		strategy: ThirdPartyLauncher,
		match: func(e *Engine, cmd []string) bool {
			return len(cmd) > 0 && strings.EqualFold(pathBase(cmd[0]), e.Cfg.Launcher.Exe)
		},
		run: runThirdPartyLauncher,
	},
	{
		strategy: Unrecognized,
		match: func(_ *Engine, _ []string) bool {
			return true
		},
		run: func(_ context.Context, _ *Engine, cmd []string) error {
			return fmt.Errorf("%w: %q", ErrUnrecognized, strings.Join(cmd, " "))
		},
	},
}

// Classify selects the launch strategy for cmd and executes it.
func (e *Engine) Classify(ctx context.Context, cmd []string) (Strategy, error) {
	for _, r := range rules {
		if !r.match(e, cmd) {
			continue
		}
		log.Info().Msgf("launch strategy: %s", r.strategy)
		if r.strategy != RunExeOverride && r.strategy != Unrecognized {
			if tweak, ok := e.DB.Lookup(e.Env.AppID); ok && tweak.FixWorkDir {
				if err := e.fixWorkDir(cmd); err != nil {
					return r.strategy, err
				}
			}
		}
		return r.strategy, r.run(ctx, e, cmd)
	}
	// The catch-all rule always matches.
	return Unrecognized, fmt.Errorf("%w: empty rule table", ErrUnrecognized)
}

// pathBase returns the last component of a path in either separator
// style. filepath.Base alone splits on the host separator only, which
// leaves backslash paths whole on Linux.
func pathBase(token string) string {
	return filepath.Base(strings.ReplaceAll(token, `\`, "/"))
}

// invokesEmulator reports whether token names the emulator binary,
// tolerating paths, case differences and a .exe suffix.
func invokesEmulator(token, emulatorName string) bool {
	base := strings.ToLower(pathBase(token))
	base = strings.TrimSuffix(base, ".exe")
	return base == strings.ToLower(emulatorName)
}

func isBatchPath(token string) bool {
	lower := strings.ToLower(token)
	return strings.HasSuffix(lower, ".bat") || strings.HasSuffix(lower, ".cmd")
}
