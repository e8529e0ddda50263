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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ZaparooProject/dosbridge/pkg/confgen"
	"github.com/ZaparooProject/dosbridge/pkg/config"
	"github.com/ZaparooProject/dosbridge/pkg/tweaks"
)

// runExeOverride handles an explicit override executable. It wins over
// everything else, title tweaks included: the user asked to run a
// specific target.
func runExeOverride(ctx context.Context, e *Engine, _ []string) error {
	override := e.Env.RunExe

	if isBatchPath(override) {
		path, ok := e.Resolver.ToPosix(override)
		if !ok {
			return e.launchDOSBox(ctx, missingFileArgs(override))
		}
		batch, err := ParseTrivialBatch(e.FS, path, e.Cfg.Emulator.Name)
		if err != nil {
			return err
		}
		if batch.Dir != "" {
			if err := e.chdir(batch.Dir); err != nil {
				return err
			}
		}
		return e.launchDOSBox(ctx, batch.Args)
	}

	if path, ok := e.Resolver.ToPosix(override); ok {
		return e.launchDOSBox(ctx, []string{path, "-exit"})
	}
	log.Warn().Msgf("override executable not found: %s", override)
	return e.launchDOSBox(ctx, missingFileArgs(override))
}

// missingFileArgs builds a configuration that reports the miss inside
// the emulator window, where the user will actually see it.
func missingFileArgs(path string) []string {
	return []string{"-c", "echo Dosbridge: file not found: " + path}
}

func runTweakedCommand(ctx context.Context, e *Engine, cmd []string) error {
	args, err := e.DB.TweakCommand(e.Env.AppID, cmd)
	if err != nil {
		return err
	}
	return e.launchDOSBox(ctx, args)
}

func runDirectInvocation(ctx context.Context, e *Engine, cmd []string) error {
	args := cmd[1:]
	if len(args) == 0 {
		args = []string{"-conf", config.DefaultConfName}
	}
	return e.launchDOSBox(ctx, args)
}

func runTrivialBatch(ctx context.Context, e *Engine, cmd []string) error {
	path, ok := e.Resolver.ToPosix(cmd[0])
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnrecognized, cmd[0])
	}
	batch, err := ParseTrivialBatch(e.FS, path, e.Cfg.Emulator.Name)
	if err != nil {
		return err
	}
	if batch.Dir != "" {
		if err := e.chdir(batch.Dir); err != nil {
			return err
		}
	}
	return e.launchDOSBox(ctx, batch.Args)
}

func runExistingConf(ctx context.Context, e *Engine, _ []string) error {
	path, _ := e.Resolver.ToPosix(config.DefaultConfName)
	return e.launchDOSBox(ctx, []string{"-conf", path})
}

func runThirdPartyLauncher(ctx context.Context, e *Engine, cmd []string) error {
	launcherDir := filepath.Dir(strings.ReplaceAll(cmd[0], `\`, "/"))
	iniWin := filepath.Join(launcherDir, e.Cfg.Launcher.Ini)
	iniPath, ok := e.Resolver.ToPosix(iniWin)
	if !ok {
		return fmt.Errorf("%w: %s", ErrLauncherConfigMissing, iniWin)
	}

	data, err := afero.ReadFile(e.FS, iniPath)
	if err != nil {
		return fmt.Errorf("error reading launcher ini: %w", err)
	}
	launcherCfg, err := ParseLauncherIni(data)
	if err != nil {
		return err
	}
	if launcherCfg.Name != "" {
		log.Info().Msgf("starting %s", launcherCfg.Name)
	}

	if launcherCfg.Dir != "" {
		if err := e.chdir(filepath.Join(filepath.Dir(iniPath), launcherCfg.Dir)); err != nil {
			return err
		}
	}
	return e.launchDOSBox(ctx, launcherCfg.Args)
}

// launchDOSBox is the convergent path every non-override strategy (and
// the override once its target is known) funnels into: stale artifact
// cleanup, static and auto configuration, the MIDI step, then the
// process run. Launch discovery differs per strategy; everything from
// here on is identical.
func (e *Engine) launchDOSBox(ctx context.Context, args []string) error {
	appID := e.Env.AppID
	installID := installIDFor(appID)
	tweak, _ := e.DB.Lookup(appID)

	if tweak.Install {
		if err := e.installStep(appID); err != nil {
			log.Warn().Err(err).Msg("install step failed, continuing")
		}
	}

	name := confgen.UniqueConfName(installID, args)
	e.Synth.CleanupStale(installID, name)

	static, err := e.Synth.BuildStatic(installID, args, tweak.Conf)
	if err != nil {
		return fmt.Errorf("error building static configuration: %w", err)
	}

	midiAddr := e.Midi.Apply(tweak.Midi, appID)

	auto, err := e.Synth.BuildAuto(midiAddr)
	if err != nil {
		return fmt.Errorf("error building auto configuration: %w", err)
	}

	if dir, ok := e.InstallDirOf(appID); ok {
		e.Runner.InstallDir = dir
	}

	// Auto is sourced after static so run-specific values win.
	return e.Runner.Run(ctx, e.Cfg.Emulator.Command, []string{"-conf", static, "-conf", auto})
}

// fixWorkDir applies the title's working-directory correction before any
// strategy dispatch. Steam sometimes fails to chdir into the directory
// the publisher intended, leaving conf files unreachable.
func (e *Engine) fixWorkDir(cmd []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("error reading working directory: %w", err)
	}
	check := tweaks.CheckWorkDir(e.FS, cwd, cmd)
	if !check.OK {
		return fmt.Errorf("%w for %q", ErrWorkDirUndeterminable, strings.Join(cmd, " "))
	}
	if !check.ChangeNeeded {
		return nil
	}
	log.Info().Msgf("correcting working directory to %s", check.Dir)
	return e.chdir(check.Dir)
}

func (e *Engine) chdir(dir string) error {
	resolved, ok := e.Resolver.ToPosix(dir)
	if !ok {
		resolved = dir
	}
	if err := e.Chdir(resolved); err != nil {
		return fmt.Errorf("error changing directory to %s: %w", resolved, err)
	}
	return nil
}

// installStep runs the one-time per-title setup. Asset retrieval itself
// belongs to the separate installer utility; this records completion so
// the step stays idempotent across launches.
func (e *Engine) installStep(appID string) error {
	marker := filepath.Join(config.Dir(), "install_"+appID+".done")
	if exists, _ := afero.Exists(e.FS, marker); exists {
		return nil
	}
	log.Info().Msgf("title %s needs a one-time install step", appID)
	if err := e.FS.MkdirAll(filepath.Dir(marker), 0o750); err != nil {
		return fmt.Errorf("error creating marker directory: %w", err)
	}
	if err := afero.WriteFile(e.FS, marker, []byte{}, 0o600); err != nil {
		return fmt.Errorf("error recording install step: %w", err)
	}
	return nil
}

// installIDFor narrows the global title id to this installation. A Steam
// app has one installation per library at most; the app id doubles as
// the install id until multi-library installs need distinguishing.
func installIDFor(appID string) string {
	if appID == "" {
		return "0"
	}
	return appID
}
