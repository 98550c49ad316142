// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"testing"
)

func TestProvider_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `syslog: tag: "web-prod"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Syslog.Tag != "web-prod" {
		t.Errorf("Syslog.Tag = %q, want web-prod", cfg.Syslog.Tag)
	}
}

func TestProvider_LoadError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `log: bootstrap_level: "loud"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil || cfg != nil {
		t.Errorf("Load() = %v, %v; want error and nil config", cfg, err)
	}
}
