package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	t.Run("explicit token and admin", func(t *testing.T) {
		cfg, err := Resolve("123:abc", 999, "/tmp/habitbot.db", true)
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if cfg.Token != "123:abc" || cfg.AdminID != 999 || !cfg.Debug {
			t.Errorf("Resolve() = %+v", cfg)
		}
	})

	t.Run("missing admin rejected", func(t *testing.T) {
		if _, err := Resolve("123:abc", 0, "/tmp/habitbot.db", false); err == nil {
			t.Error("Resolve() = nil error, want failure without admin ID")
		}
	})
}

func TestIsPostgres(t *testing.T) {
	cases := []struct {
		storage string
		want    bool
	}{
		{"postgres://db.example.com/habits", true},
		{"postgresql://db.example.com/habits", true},
		{"/home/bot/.config/habitbot/habitbot.db", false},
		{"habitbot.db", false},
	}
	for _, tc := range cases {
		cfg := Config{Storage: tc.storage}
		if got := cfg.IsPostgres(); got != tc.want {
			t.Errorf("IsPostgres(%q) = %v, want %v", tc.storage, got, tc.want)
		}
	}
}

func TestConfigDir(t *testing.T) {
	cfg := Config{Storage: "/data/habitbot/habitbot.db"}
	if got := cfg.ConfigDir(); got != "/data/habitbot" {
		t.Errorf("ConfigDir() = %q, want the database's directory", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	t.Run("tilde prefix", func(t *testing.T) {
		got := ExpandPath("~/.config/habitbot/habitbot.db")
		want := filepath.Join(home, ".config/habitbot/habitbot.db")
		if got != want {
			t.Errorf("ExpandPath() = %q, want %q", got, want)
		}
	})

	t.Run("bare tilde", func(t *testing.T) {
		if got := ExpandPath("~"); got != home {
			t.Errorf("ExpandPath(~) = %q, want %q", got, home)
		}
	})

	t.Run("absolute path untouched", func(t *testing.T) {
		if got := ExpandPath("/var/lib/habitbot.db"); got != "/var/lib/habitbot.db" {
			t.Errorf("ExpandPath() = %q, want input unchanged", got)
		}
	})
}
