package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	xdgBase := filepath.Join(homeDir, ".local", "share", "gallery")

	tests := []struct {
		name       string
		configEnv  string
		homeEnv    string
		wantConfig string
		wantBase   string
	}{
		{
			name:       "env vars override both paths",
			configEnv:  "/srv/gallery/gallery.toml",
			homeEnv:    "/srv/gallery",
			wantConfig: "/srv/gallery/gallery.toml",
			wantBase:   "/srv/gallery",
		},
		{
			name:       "only home overridden",
			homeEnv:    "/data/photos",
			wantConfig: filepath.Join(homeDir, ".config", "gallery.toml"),
			wantBase:   "/data/photos",
		},
		{
			name:       "xdg fallbacks",
			wantConfig: filepath.Join(homeDir, ".config", "gallery.toml"),
			wantBase:   xdgBase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GALLERY_CONFIG_PATH", tt.configEnv)
			t.Setenv("GALLERY_HOME", tt.homeEnv)

			defaults, err := GetDefaults()
			if err != nil {
				t.Fatalf("GetDefaults() error = %v", err)
			}
			if defaults["config_path"] != tt.wantConfig {
				t.Errorf("config_path = %q, want %q", defaults["config_path"], tt.wantConfig)
			}
			if defaults["base_dir"] != tt.wantBase {
				t.Errorf("base_dir = %q, want %q", defaults["base_dir"], tt.wantBase)
			}
			if want := filepath.Join(tt.wantBase, "log"); defaults["log_dir"] != want {
				t.Errorf("log_dir = %q, want %q", defaults["log_dir"], want)
			}
		})
	}
}
