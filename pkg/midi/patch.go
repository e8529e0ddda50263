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

package midi

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Titles whose resource files hardcode the music mode need a byte patch
// to flip General MIDI on or off. Patches ship in a gzipped tar archive:
// one directory per application id containing "target" (the relative path
// of the resource file to patch), "on.patch" and "off.patch". A patch
// file is an 8 byte big-endian offset followed by the replacement bytes.
// Splicing fixed bytes at a fixed offset is idempotent per state.

var (
	// ErrChecksumMismatch means the archive does not match its recorded
	// digest and must not be applied.
	ErrChecksumMismatch = errors.New("resource archive checksum mismatch")
	// ErrAppNotCovered means the archive has no patch for the title.
	ErrAppNotCovered = errors.New("resource archive does not cover this title")
)

// patchHeaderLen is the offset prefix of a patch member.
const patchHeaderLen = 8

type patchSet struct {
	target string
	on     []byte
	off    []byte
}

// ApplyResourcePatch patches the title's resource file to the wanted MIDI
// state. The archive digest is checked against the adjacent .sha256 file
// before anything is read out of it.
func ApplyResourcePatch(fs afero.Fs, archivePath, appID string, midiOn bool) error {
	if err := verifyChecksum(fs, archivePath); err != nil {
		return err
	}

	set, err := readPatchSet(fs, archivePath, appID)
	if err != nil {
		return err
	}

	patch := set.off
	if midiOn {
		patch = set.on
	}
	if len(patch) < patchHeaderLen {
		return fmt.Errorf("malformed patch for app %s", appID)
	}
	offset := binary.BigEndian.Uint64(patch[:patchHeaderLen])
	payload := patch[patchHeaderLen:]

	return splice(fs, set.target, int64(offset), payload) //nolint:gosec // offset bounded by file size check in splice
}

func verifyChecksum(fs afero.Fs, archivePath string) error {
	sumData, err := afero.ReadFile(fs, archivePath+".sha256")
	if err != nil {
		return fmt.Errorf("error reading archive checksum: %w", err)
	}
	want := strings.Fields(string(sumData))
	if len(want) == 0 {
		return fmt.Errorf("%w: empty checksum file", ErrChecksumMismatch)
	}

	data, err := afero.ReadFile(fs, archivePath)
	if err != nil {
		return fmt.Errorf("error reading resource archive: %w", err)
	}
	sum := sha256.Sum256(data)
	if !strings.EqualFold(hex.EncodeToString(sum[:]), want[0]) {
		return ErrChecksumMismatch
	}
	return nil
}

func readPatchSet(fs afero.Fs, archivePath, appID string) (*patchSet, error) {
	f, err := fs.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("error opening resource archive: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("error decompressing resource archive: %w", err)
	}
	defer gz.Close() //nolint:errcheck // read-only stream

	set := &patchSet{}
	prefix := appID + "/"
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading resource archive: %w", err)
		}
		name := strings.TrimPrefix(hdr.Name, "./")
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("error reading archive member %s: %w", name, err)
		}
		switch strings.TrimPrefix(name, prefix) {
		case "target":
			set.target = strings.TrimSpace(string(data))
		case "on.patch":
			set.on = data
		case "off.patch":
			set.off = data
		}
	}

	if set.target == "" || set.on == nil || set.off == nil {
		return nil, fmt.Errorf("%w: app %s", ErrAppNotCovered, appID)
	}
	return set, nil
}

// splice overwrites len(payload) bytes at offset in the named file.
func splice(fs afero.Fs, path string, offset int64, payload []byte) (err error) {
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("error locating resource file: %w", err)
	}
	if offset < 0 || offset+int64(len(payload)) > info.Size() {
		return fmt.Errorf("patch range out of bounds for %s", path)
	}

	f, err := fs.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("error opening resource file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing resource file: %w", closeErr)
		}
	}()

	if _, err = f.WriteAt(payload, offset); err != nil {
		return fmt.Errorf("error patching resource file: %w", err)
	}
	return err
}
