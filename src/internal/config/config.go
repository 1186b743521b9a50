package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	apperrors "github.com/maksimkurb/dovado/src/internal/errors"
	"github.com/maksimkurb/dovado/src/internal/log"
)

// LoadConfig reads the credentials file at configPath on top of Default().
//
// A missing file is not an error: the defaults are returned so that everything can
// come from flags or the environment. The file is TOML; a file that is not valid
// TOML is read as legacy "key: value" lines.
func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, apperrors.NewConfigError("failed to get absolute path", err)
		} else {
			configFile = path
		}
	}

	config := Default()
	config._absConfigFilePath = configFile

	content, err := os.ReadFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		log.Debugf("Credentials file not found: %s", configFile)
		return config, nil
	}
	if err != nil {
		return nil, apperrors.NewConfigError("failed to read credentials file", err)
	}

	if err := toml.Unmarshal(content, config); err != nil {
		var derr *toml.DecodeError
		if !errors.As(err, &derr) {
			return nil, apperrors.NewConfigError("failed to parse credentials file", err)
		}

		legacy := Default()
		if lerr := parseLegacy(content, legacy); lerr != nil {
			row, col := derr.Position()
			log.Errorf("%s", derr.String())
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to parse credentials file %s", configFile), lerr)
		}
		log.Debugf("Read %s in legacy \"key: value\" format", configFile)
		legacy._absConfigFilePath = configFile
		config = legacy
	}

	log.Debugf("Configuration file path: %s", configFile)
	return config, nil
}

// parseLegacy reads "key: value" lines; lines starting with '#' are comments.
func parseLegacy(content []byte, c *Config) error {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return fmt.Errorf("line %d: expected \"key: value\"", lineNo)
		}
		if err := c.set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func (c *Config) set(key, value string) error {
	switch key {
	case "username":
		c.Username = value
	case "password":
		c.Password = value
	case "host":
		c.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port %q", value)
		}
		c.Port = port
	case "timeout":
		c.Timeout = value
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

// ApplyEnv overrides fields from DOVADO_* variables found by lookup (usually os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	vars := []struct {
		env string
		key string
	}{
		{EnvUsername, "username"},
		{EnvPassword, "password"},
		{EnvHost, "host"},
		{EnvPort, "port"},
		{EnvTimeout, "timeout"},
	}

	for _, v := range vars {
		value, ok := lookup(v.env)
		if !ok || value == "" {
			continue
		}
		if err := c.set(v.key, value); err != nil {
			return apperrors.NewConfigError(v.env, err)
		}
	}
	return nil
}

// SerializeConfig encodes the configuration as TOML.
func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

// WriteConfig stores the configuration at path, readable by the owner only.
func (c *Config) WriteConfig(path string) error {
	config, err := c.SerializeConfig()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, config.Bytes(), 0600); err != nil {
		return err
	}
	c._absConfigFilePath = path
	return nil
}
