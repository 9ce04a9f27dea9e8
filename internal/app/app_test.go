package app

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/babyregalo/internal/registry"
	"github.com/five82/babyregalo/internal/share"
	"github.com/five82/babyregalo/internal/state"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestOpen_PersistsAcrossRuns(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			dataDir := t.TempDir()
			cfgPath := writeConfig(t, "storage = \""+backend+"\"\ndata_dir = \""+filepath.ToSlash(dataDir)+"\"\n")

			env, err := Open(ctx, Options{ConfigPath: cfgPath})
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if env.Load.Source != state.SourceDefaults {
				t.Fatalf("first Source = %v, want defaults", env.Load.Source)
			}
			if _, err := env.Session.Apply(ctx, func(s registry.Snapshot) registry.Snapshot {
				return s.ReplaceList([]string{"Pañales", "Cuna"}, nil)
			}); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if err := env.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			again, err := Open(ctx, Options{ConfigPath: cfgPath})
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer func() { _ = again.Close() }()
			if again.Load.Source != state.SourceStorage {
				t.Fatalf("second Source = %v, want storage", again.Load.Source)
			}
			if got := again.Session.Snapshot().Names(); len(got) != 2 || got[0] != "Pañales" {
				t.Fatalf("names = %v, want [Pañales Cuna]", got)
			}
		})
	}
}

func TestOpen_LinkWinsOverStorage(t *testing.T) {
	ctx := context.Background()
	cfgPath := writeConfig(t, "data_dir = \""+filepath.ToSlash(t.TempDir())+"\"\n")

	env, err := Open(ctx, Options{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := env.Session.Apply(ctx, func(s registry.Snapshot) registry.Snapshot {
		return s.ReplaceList([]string{"Local"}, nil)
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	_ = env.Close()

	shared := registry.Empty().ReplaceList([]string{"Compartido"}, nil)
	link, err := share.Link("https://example.com/", shared)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}

	linked, err := Open(ctx, Options{ConfigPath: cfgPath, Link: link})
	if err != nil {
		t.Fatalf("Open with link: %v", err)
	}
	defer func() { _ = linked.Close() }()
	if linked.Load.Source != state.SourceLink {
		t.Fatalf("Source = %v, want link", linked.Load.Source)
	}
	if got := linked.Session.Snapshot().Names(); len(got) != 1 || got[0] != "Compartido" {
		t.Fatalf("names = %v, want [Compartido]", got)
	}
}

func TestOpen_BadLinkFallsBackToStorage(t *testing.T) {
	ctx := context.Background()
	cfgPath := writeConfig(t, "storage = \"memory\"\n")

	env, err := Open(ctx, Options{ConfigPath: cfgPath, Link: "https://example.com/?d=@@@@"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = env.Close() }()
	if env.Load.LinkErr == nil {
		t.Fatalf("LinkErr = nil, want decode error")
	}
	if env.Load.Source != state.SourceDefaults {
		t.Fatalf("Source = %v, want defaults", env.Load.Source)
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfgPath := writeConfig(t, "storage = \"tape\"\n")
	if _, err := Open(context.Background(), Options{ConfigPath: cfgPath}); err == nil {
		t.Fatalf("Open returned nil error for unknown backend")
	}
}

func TestStartLogging_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "babyregalo.log")
	f, err := startLogging(path)
	if err != nil {
		t.Fatalf("startLogging: %v", err)
	}
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	})
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}
