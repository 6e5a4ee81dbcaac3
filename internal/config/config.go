// Package config loads and atomically persists the store-scoped
// config.toml. LoadLocal is the fast direct-parse path used by call
// sites that need configuration before a full command context (and its
// Viper instance) exists.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/types"
)

// LoadLocal parses config.toml directly from path.
func LoadLocal(path string) (*types.Config, error) {
	var cfg types.Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, beanerr.Wrapf(beanerr.ErrNotFound, "config at %s", path)
		}
		return nil, beanerr.Wrapf(beanerr.ErrIO, "decode config at %s: %v", path, err)
	}
	return &cfg, nil
}

// Save writes cfg atomically to path using the same temp-file-then-rename
// discipline as the bean store, so a process that crashes mid-write never
// leaves a truncated config.toml behind.
func Save(path string, cfg *types.Config) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".beans-config-tmp-*")
	if err != nil {
		return beanerr.WrapIO(dir, err)
	}
	tmpName := tmp.Name()
	enc := toml.NewEncoder(tmp)
	encErr := enc.Encode(cfg)
	closeErr := tmp.Close()
	if encErr != nil {
		os.Remove(tmpName)
		return beanerr.WrapIO(path, encErr)
	}
	if closeErr != nil {
		os.Remove(tmpName)
		return beanerr.WrapIO(path, closeErr)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return beanerr.WrapIO(path, err)
	}
	return nil
}

// AllocateNextID performs a read-modify-rename increment of next_id:
// read, increment, write back via atomic rename. The caller retries on a
// detected race (e.g. a filename collision when writing the new bean);
// the allocator itself does not retry.
func AllocateNextID(path string) (int64, error) {
	cfg, err := LoadLocal(path)
	if err != nil {
		return 0, err
	}
	id := cfg.NextID
	cfg.NextID++
	if err := Save(path, cfg); err != nil {
		return 0, err
	}
	return id, nil
}
