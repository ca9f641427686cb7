package config

import (
	"bytes"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/d-fournier/wrappy/errors"
)

const fileHeader = "# wrappy project configuration\n# Every key can be overridden with a WRAPPY_ environment variable,\n# e.g. WRAPPY_GENERATE_JOBS=4.\n\n"

// Marshal renders c as a commented TOML document.
func Marshal(c *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return buf.Bytes(), nil
}

// WriteFile writes c to path. An existing file is only replaced when force
// is set, after being copied to path.back1.
func WriteFile(fs afero.Fs, path string, c *Config, force bool) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", path)
	}
	if exists {
		if !force {
			return errors.WithHint(
				errors.Wrapf(errors.ErrConflict, "%s already exists", path),
				"pass --force to overwrite it")
		}
		if err := createBackup(fs, path); err != nil {
			return err
		}
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// createBackup copies the current file to .back1, replacing an older backup
func createBackup(fs afero.Fs, path string) error {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := afero.WriteFile(fs, path+".back1", content, 0o644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}
