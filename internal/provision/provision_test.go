package provision

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Dir:       t.TempDir(),
		User:      "pi",
		Service:   "gif-translate-bot",
		BinPath:   "/home/pi/gif-translate-bot/bot",
		UnitDir:   t.TempDir(),
		Systemctl: false,
		Out:       &bytes.Buffer{},
	}
}

func TestEnsureFileCreatesPlaceholder(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), ".env")

	created, err := EnsureFile(path, envPlaceholder, &out)
	if err != nil {
		t.Fatalf("EnsureFile() error = %v", err)
	}
	if !created {
		t.Error("EnsureFile() created = false, want true")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != envPlaceholder {
		t.Errorf("placeholder content = %q", data)
	}

	if !strings.Contains(out.String(), "WARNING") {
		t.Errorf("output %q missing visible warning", out.String())
	}
}

func TestEnsureFileNeverOverwrites(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), ".whitelist")

	want := "123456789 # operator\n"
	if err := os.WriteFile(path, []byte(want), 0600); err != nil {
		t.Fatal(err)
	}

	created, err := EnsureFile(path, whitelistPlaceholder, &out)
	if err != nil {
		t.Fatalf("EnsureFile() error = %v", err)
	}
	if created {
		t.Error("EnsureFile() created = true for existing file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != want {
		t.Errorf("existing file changed: %q, want %q", data, want)
	}
}

func TestRenderUnit(t *testing.T) {
	opts := testOptions(t)
	opts.Dir = "/home/pi/gif-translate-bot"

	unit, err := RenderUnit(opts)
	if err != nil {
		t.Fatalf("RenderUnit() error = %v", err)
	}

	for _, want := range []string{
		"User=pi",
		"WorkingDirectory=/home/pi/gif-translate-bot",
		"EnvironmentFile=/home/pi/gif-translate-bot/.env",
		"ExecStart=/home/pi/gif-translate-bot/bot",
		"Restart=always",
		"RestartSec=10",
		"WantedBy=multi-user.target",
	} {
		if !strings.Contains(string(unit), want) {
			t.Errorf("unit missing %q:\n%s", want, unit)
		}
	}
}

func TestRunWritesUnit(t *testing.T) {
	opts := testOptions(t)

	if err := Run(opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	unit, err := os.ReadFile(UnitPath(opts))
	if err != nil {
		t.Fatalf("unit file not written: %v", err)
	}
	if !strings.Contains(string(unit), "ExecStart="+opts.BinPath) {
		t.Errorf("unit does not reference binary:\n%s", unit)
	}

	for _, name := range []string{".env", ".whitelist"} {
		if _, err := os.Stat(filepath.Join(opts.Dir, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}
}

func TestRunIsIdempotentForConfigFiles(t *testing.T) {
	opts := testOptions(t)

	envPath := filepath.Join(opts.Dir, ".env")
	wlPath := filepath.Join(opts.Dir, ".whitelist")

	if err := os.WriteFile(envPath, []byte("BOT_TOKEN=secret\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(wlPath, []byte("42\n"), 0600); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := Run(opts); err != nil {
			t.Fatalf("Run() #%d error = %v", i+1, err)
		}
	}

	env, _ := os.ReadFile(envPath)
	if string(env) != "BOT_TOKEN=secret\n" {
		t.Errorf(".env changed: %q", env)
	}
	wl, _ := os.ReadFile(wlPath)
	if string(wl) != "42\n" {
		t.Errorf(".whitelist changed: %q", wl)
	}
}

func TestRunRegeneratesUnit(t *testing.T) {
	opts := testOptions(t)

	if err := Run(opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	opts.BinPath = "/usr/local/bin/bot-v2"
	if err := Run(opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	unit, err := os.ReadFile(UnitPath(opts))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(unit), "ExecStart=/usr/local/bin/bot-v2") {
		t.Errorf("unit not regenerated:\n%s", unit)
	}
}
