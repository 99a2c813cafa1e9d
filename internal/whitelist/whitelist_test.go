package whitelist

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []int64
	}{
		{
			name:    "Plain IDs",
			content: "123\n456\n",
			want:    []int64{123, 456},
		},
		{
			name:    "Trailing comments",
			content: "123 # alice\n456# bob\n",
			want:    []int64{123, 456},
		},
		{
			name:    "Comment and blank lines",
			content: "# header\n\n123\n\n# footer\n",
			want:    []int64{123},
		},
		{
			name:    "Malformed lines skipped",
			content: "123\nnot-a-number\n45.6\n789\n",
			want:    []int64{123, 789},
		},
		{
			name:    "Negative IDs accepted",
			content: "-1001234567890\n",
			want:    []int64{-1001234567890},
		},
		{
			name:    "Only comments",
			content: "# one ID per line\n# nothing yet\n",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".whitelist")
			writeFile(t, path, tt.content)

			l, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if got := l.Len(); got != len(tt.want) {
				t.Errorf("Len() = %d, want %d", got, len(tt.want))
			}
			for _, id := range tt.want {
				if len(tt.want) > 0 && !l.Allowed(id) {
					t.Errorf("Allowed(%d) = false, want true", id)
				}
			}
		})
	}
}

func TestOpenMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".whitelist")
	writeFile(t, path, "# placeholder only\n")

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if l.Enforced() {
		t.Error("Enforced() = true for empty list")
	}
	if !l.Allowed(42) {
		t.Error("Allowed() = false, want true: empty list admits everyone")
	}
}

func TestEnforced(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".whitelist")
	writeFile(t, path, "123\n")

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !l.Enforced() {
		t.Error("Enforced() = false, want true")
	}
	if !l.Allowed(123) {
		t.Error("Allowed(123) = false, want true")
	}
	if l.Allowed(999) {
		t.Error("Allowed(999) = true, want false")
	}
}

func TestMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".whitelist")

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v for missing file", err)
	}

	if !l.Allowed(42) {
		t.Error("Allowed() = false, want true: missing file admits everyone")
	}
}

func TestReloadOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".whitelist")
	writeFile(t, path, "123\n")

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if l.Allowed(456) {
		t.Fatal("Allowed(456) = true before edit")
	}

	writeFile(t, path, "123\n456\n")
	// Force a distinct mtime; some filesystems have coarse resolution.
	future := time.Now().Add(time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	if !l.Allowed(456) {
		t.Error("Allowed(456) = false after edit, want true")
	}
}
