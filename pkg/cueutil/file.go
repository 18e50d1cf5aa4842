// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxConfigSize bounds ReadFile. Configuration files are a few hundred bytes.
const MaxConfigSize int64 = 1 << 20

// ErrFileTooLarge is wrapped by ReadFile when a file exceeds its limit.
var ErrFileTooLarge = errors.New("config file too large")

// ReadFile reads at most limit bytes from path and fails with ErrFileTooLarge
// if the file holds more.
func ReadFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", path, ErrFileTooLarge, limit)
	}
	return data, nil
}
