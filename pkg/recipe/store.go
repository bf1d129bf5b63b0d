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

package recipe

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
)

//go:embed data/*.yaml
var variantFS embed.FS

var (
	storeOnce   sync.Once
	cachedStore *Store
	cachedErr   error
)

// Store holds the variants known to the engine, indexed by name.
type Store struct {
	variants map[string]*Variant
}

// DefaultStore returns the store built from the embedded variant data. The
// data is parsed once per process.
func DefaultStore() (*Store, error) {
	storeOnce.Do(func() {
		variantCacheMisses.Inc()
		cachedStore, cachedErr = LoadStore(variantFS, "data")
	})
	if cachedErr != nil {
		return nil, cachedErr
	}
	variantCacheHits.Inc()
	return cachedStore, nil
}

// LoadStore parses every *.yaml variant document under dir in fsys.
func LoadStore(fsys fs.FS, dir string) (*Store, error) {
	store := &Store{variants: make(map[string]*Variant)}

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".yaml") {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		var v Variant
		if err := yaml.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}
		if err := v.init(); err != nil {
			return fmt.Errorf("invalid variant %s: %w", path.Base(p), err)
		}
		if _, dup := store.variants[v.Name()]; dup {
			return fmt.Errorf("variant %s defined twice", v.Name())
		}
		store.variants[v.Name()] = &v
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to load recipe variants", err)
	}
	if len(store.variants) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "no recipe variants found")
	}
	return store, nil
}

// Get returns the variant named name.
func (s *Store) Get(name string) (*Variant, error) {
	v, ok := s.variants[name]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, fmt.Sprintf("unknown variant %q", name),
			map[string]any{"variant": name, "available": s.Names()})
	}
	return v, nil
}

// Names returns the variant names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.variants))
	for name := range s.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants returns all variants sorted by name.
func (s *Store) Variants() []*Variant {
	out := make([]*Variant, 0, len(s.variants))
	for _, name := range s.Names() {
		out = append(out, s.variants[name])
	}
	return out
}
