package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeCacheEntry(t *testing.T, dir, shard, name string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, shard), 0700); err != nil {
		t.Fatalf("mkdir shard: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, shard, name), make([]byte, size), 0600); err != nil {
		t.Fatalf("write entry: %v", err)
	}
}

func TestClearLayoutDir(t *testing.T) {
	dir := t.TempDir()
	writeCacheEntry(t, dir, "ab", "one.json", 10)
	writeCacheEntry(t, dir, "cd", "two.json", 30)

	entries, freed, err := clearLayoutDir(dir)
	if err != nil {
		t.Fatalf("clearLayoutDir: %v", err)
	}
	if entries != 2 || freed != 40 {
		t.Errorf("cleared %d entries / %d bytes, want 2 / 40", entries, freed)
	}

	left, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("%d entries remain after clear, want 0", len(left))
	}
}

func TestClearLayoutDirMissing(t *testing.T) {
	entries, freed, err := clearLayoutDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil || entries != 0 || freed != 0 {
		t.Errorf("missing dir = (%d, %d, %v), want (0, 0, nil)", entries, freed, err)
	}
}

func TestCacheClearCommandUsesConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	writeCacheEntry(t, dir, "ef", "entry.json", 5)

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	content := "[cache]\nbackend = \"file\"\ndir = " + quoteTOML(dir) + "\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := New(io.Discard, LogInfo)
	cmd := c.cacheClearCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", cfgPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "ef", "entry.json")); !os.IsNotExist(err) {
		t.Error("configured cache entry should have been removed")
	}
}

func TestLayoutCacheDirBackends(t *testing.T) {
	write := func(t *testing.T, backend string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "[cache]\nbackend = \"" + backend + "\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		return path
	}

	if dir, err := layoutCacheDir(write(t, "none")); err != nil || dir != "" {
		t.Errorf("none backend = (%q, %v), want empty dir", dir, err)
	}
	if _, err := layoutCacheDir(write(t, "redis")); err == nil {
		t.Error("redis backend should report it keeps no local files")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

// quoteTOML escapes a filesystem path for use as a TOML string value.
func quoteTOML(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(append(out, '"'))
}
