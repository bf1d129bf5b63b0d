// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package installer

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
)

// ChecksumFileName is the sha256sum-compatible digest list at the package root.
const ChecksumFileName = "checksums.txt"

// WriteChecksums hashes files concurrently and writes them to
// root/checksums.txt as "<sha256>  <path>" lines, paths relative to root
// with forward slashes, sorted by path.
func WriteChecksums(ctx context.Context, root string, files []string) (string, error) {
	sums := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(copyConcurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sum, err := hashFile(file)
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, file)
			if err != nil {
				rel = file
			}
			sums[i] = sum + "  " + filepath.ToSlash(rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to checksum package files", err)
	}

	sort.Slice(sums, func(i, j int) bool { return sums[i][66:] < sums[j][66:] })

	path := filepath.Join(root, ChecksumFileName)
	content := strings.Join(sums, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // package files are world-readable
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to write checksums", err)
	}

	slog.Debug("checksums generated", "file_count", len(sums), "path", path)
	return path, nil
}

// VerifyChecksums re-hashes every entry of root/checksums.txt and reports the
// first mismatch.
func VerifyChecksums(root string) error {
	f, err := os.Open(filepath.Join(root, ChecksumFileName))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, "checksums not found", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		want, rel, ok := strings.Cut(line, "  ")
		if !ok {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "malformed checksum line",
				map[string]any{"line": line})
		}
		got, err := hashFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeMissingArtifact, "checksummed file unreadable", err,
				map[string]any{"path": rel})
		}
		if got != want {
			return errors.NewWithContext(errors.ErrCodeInternal, "checksum mismatch",
				map[string]any{"path": rel, "want": want, "got": got})
		}
	}
	return sc.Err()
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s for checksum: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
