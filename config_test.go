package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "jellofin-server.yaml")
	if err := os.WriteFile(fn, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestConfigDefaults(t *testing.T) {
	fn := writeConfigFile(t, `
dbdir: /var/lib/jellofin
collections:
  - name: Movies
    type: movies
    directory: /data/movies
`)
	config, err := readConfig(fn)
	if err != nil {
		t.Fatalf("readConfig: %v", err)
	}
	if config.Listen.Address != "::" || config.Listen.Port != 8096 {
		t.Errorf("listen = %q:%d", config.Listen.Address, config.Listen.Port)
	}
	if config.Cachedir != "./cache" {
		t.Errorf("cachedir = %q", config.Cachedir)
	}
	if config.Jellyfin.ImageQualityPoster != 90 {
		t.Errorf("imagequalityposter = %d", config.Jellyfin.ImageQualityPoster)
	}
	if config.Database.Sqlite.Filename != "/var/lib/jellofin/tink-items.db" {
		t.Errorf("sqlite filename = %q", config.Database.Sqlite.Filename)
	}
}

func TestConfigDatabaseFilenameOverride(t *testing.T) {
	fn := writeConfigFile(t, `
dbdir: /var/lib/jellofin
database:
  sqlite:
    filename: /srv/media.db
collections:
  - name: Movies
    type: movies
    directory: /data/movies
`)
	config, err := readConfig(fn)
	if err != nil {
		t.Fatalf("readConfig: %v", err)
	}
	if config.Database.Sqlite.Filename != "/srv/media.db" {
		t.Errorf("sqlite filename = %q", config.Database.Sqlite.Filename)
	}
}

func TestConfigRequiresCollections(t *testing.T) {
	fn := writeConfigFile(t, `
dbdir: /var/lib/jellofin
`)
	if _, err := readConfig(fn); err == nil {
		t.Error("config without collections accepted")
	}
}
