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

// Package runner executes the emulator subprocess under the advisory
// PID-file gate.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ZaparooProject/dosbridge/pkg/config"
)

// Wait gate bounds. Steam occasionally re-invokes the compat tool while
// the previous instance is still shutting down; waiting longer than this
// means something else is wrong.
const (
	waitGateTimeout  = 60 * time.Second
	waitGateInterval = 500 * time.Millisecond
)

// ErrExecutableNotFound is reported when the emulator binary cannot be
// located on PATH.
var ErrExecutableNotFound = errors.New("emulator executable not found")

// CommandExecutor abstracts subprocess execution for testability.
type CommandExecutor interface {
	// Run executes a command with extra environment entries appended
	// and waits for it to complete.
	Run(ctx context.Context, env []string, name string, args ...string) error
}

// RealCommandExecutor runs commands with stdio inherited, as the emulator
// expects a usable terminal and display.
type RealCommandExecutor struct{}

// Run executes a system command via exec.CommandContext.
func (*RealCommandExecutor) Run(ctx context.Context, env []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), env...)
	//nolint:wrapcheck // wrapping exec errors loses the exit status
	return cmd.Run()
}

// Runner invokes the emulator guarded by the PID file.
type Runner struct {
	fs    afero.Fs
	exec  CommandExecutor
	clock clockwork.Clock
	// PidPath is the advisory launch marker location.
	PidPath string
	// InstallDir replaces the install-dir token in template arguments;
	// empty leaves the template unresolved (soft failure).
	InstallDir string
	// WaitGate makes Run block while a previous launch is alive.
	WaitGate bool
	// Env is appended to the subprocess environment.
	Env []string
	// Alive is swappable for tests; defaults to IsProcessRunning.
	Alive func(pid int) bool
}

// NewRunner returns a Runner with production wiring.
func NewRunner(fs afero.Fs, pidPath string) *Runner {
	return &Runner{
		fs:      fs,
		exec:    &RealCommandExecutor{},
		clock:   clockwork.NewRealClock(),
		PidPath: pidPath,
		Alive:   IsProcessRunning,
	}
}

// NewRunnerWith returns a Runner with explicit collaborators for tests.
func NewRunnerWith(fs afero.Fs, pidPath string, execer CommandExecutor, clock clockwork.Clock) *Runner {
	return &Runner{
		fs:      fs,
		exec:    execer,
		clock:   clock,
		PidPath: pidPath,
		Alive:   IsProcessRunning,
	}
}

// Run composes the final argument vector from the command template and
// the arguments to append, then executes it under the PID gate. The gate
// is advisory: without WaitGate two invocations may overlap, which is an
// accepted risk for the wrapper re-invocation pattern this targets.
func (r *Runner) Run(ctx context.Context, template, args []string) error {
	if len(template) == 0 {
		return errors.New("empty command template")
	}

	cmd := r.substitute(template)
	cmd = append(cmd, args...)

	if r.WaitGate {
		r.waitForPrevious()
	}

	if err := WritePIDFile(r.fs, r.PidPath, os.Getpid()); err != nil {
		log.Warn().Err(err).Msg("error writing pid file")
	}
	defer func() {
		if err := RemovePIDFile(r.fs, r.PidPath); err != nil {
			log.Warn().Err(err).Msg("error removing pid file")
		}
	}()

	log.Info().Msgf("running: %s", strings.Join(cmd, " "))
	err := r.exec.Run(ctx, r.Env, cmd[0], cmd[1:]...)
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrExecutableNotFound, cmd[0])
		}
		return fmt.Errorf("error running emulator: %w", err)
	}
	return nil
}

// substitute performs one install-dir token substitution in every
// template token.
func (r *Runner) substitute(template []string) []string {
	out := make([]string, len(template))
	unresolved := false
	for i, token := range template {
		if strings.Contains(token, config.InstallDirToken) {
			if r.InstallDir == "" {
				unresolved = true
				out[i] = token
				continue
			}
			out[i] = strings.Replace(token, config.InstallDirToken, r.InstallDir, 1)
			continue
		}
		out[i] = token
	}
	if unresolved {
		log.Warn().Msg("install directory not found, leaving template unresolved")
	}
	return out
}

// waitForPrevious polls while the PID file names a live process, bounded
// by the gate timeout.
func (r *Runner) waitForPrevious() {
	deadline := r.clock.Now().Add(waitGateTimeout)
	for {
		pid, err := ReadPIDFile(r.fs, r.PidPath)
		if err != nil || !r.Alive(pid) {
			return
		}
		if r.clock.Now().After(deadline) {
			log.Warn().Msgf("gave up waiting for previous launch (pid %d)", pid)
			return
		}
		log.Debug().Msgf("waiting for previous launch (pid %d)", pid)
		r.clock.Sleep(waitGateInterval)
	}
}
