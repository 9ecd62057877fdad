// Copyright 2024 Black Diamond Authors.
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

// Package cache memoizes compiled BDCL output in an embedded boltdb store,
// keyed by a content hash of the rule and the config/options it was compiled
// against. It is not the out-of-scope batch driver — it does not walk
// directories or apply an ignore-list — it is a narrow layer the driver (or
// the demo CLI in cmd/bdcompile) may optionally sit in front of to skip
// recompiling rules that have not changed across repeated runs.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/mitchellh/hashstructure"

	"github.com/futuredata/sigma/ast"
	"github.com/futuredata/sigma/config"
)

var bucketName = []byte("compiled_rules")

// Cache wraps a single boltdb file. The zero value is not usable; build one
// with Open.
type Cache struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the boltdb file at path and ensures the
// compiled_rules bucket exists.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init bucket: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying boltdb file.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key computes the content hash a rule/config/options triple is stored
// under: the rule's ID and condition count (a cheap proxy for "this rule's
// shape changed") folded together with a structural hash of the config and
// options that would affect compilation output.
func Key(rule *ast.ParsedRule, cfg *config.SigmaConfig, opts *config.Options) (string, error) {
	configHash, err := hashstructure.Hash(cfg, nil)
	if err != nil {
		return "", fmt.Errorf("cache: hash config: %w", err)
	}
	optsHash, err := hashstructure.Hash(opts, nil)
	if err != nil {
		return "", fmt.Errorf("cache: hash options: %w", err)
	}
	return fmt.Sprintf("%s:%d:%x:%x", rule.ID, len(rule.Conditions), configHash, optsHash), nil
}

// Get returns the cached compiled text for key, and whether it was present.
func (c *Cache) Get(key string) (string, bool, error) {
	var value string
	var found bool
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if v := b.Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

// Put stores the compiled text for key, overwriting any existing entry.
func (c *Cache) Put(key, value string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		return b.Put([]byte(key), []byte(value))
	})
}

// CompileFunc is the shape of compiler.Compile, accepted here rather than
// imported directly so this package does not force every cache user to link
// the compiler package.
type CompileFunc func(ctx context.Context, rule *ast.ParsedRule, cfg *config.SigmaConfig, opts *config.Options) (string, error)

// CompileCached compiles rule through compile, but only on a cache miss;
// a hit returns the previously stored text without invoking compile at all.
func (c *Cache) CompileCached(ctx context.Context, rule *ast.ParsedRule, cfg *config.SigmaConfig, opts *config.Options, compile CompileFunc) (string, error) {
	key, err := Key(rule, cfg, opts)
	if err != nil {
		return "", err
	}

	if value, ok, err := c.Get(key); err != nil {
		return "", err
	} else if ok {
		return value, nil
	}

	value, err := compile(ctx, rule, cfg, opts)
	if err != nil {
		return "", err
	}
	if err := c.Put(key, value); err != nil {
		return "", err
	}
	return value, nil
}
