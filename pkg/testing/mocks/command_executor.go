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

// Package mocks holds testify mocks shared across package tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for runner.CommandExecutor,
// letting tests observe the final emulator invocation without spawning
// processes.
//
// Example:
//
//	m := &MockCommandExecutor{}
//	m.On("Run", mock.Anything, mock.Anything, "dosbox", mock.Anything).Return(nil)
type MockCommandExecutor struct {
	mock.Mock
}

// Run mocks the subprocess execution.
func (m *MockCommandExecutor) Run(ctx context.Context, env []string, name string, args ...string) error {
	called := m.Called(ctx, env, name, args)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return called.Error(0)
}
