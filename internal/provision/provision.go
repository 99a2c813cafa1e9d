// Package provision sets up the bot as a systemd service: it seeds the two
// operator-owned configuration files when they are missing, renders the unit
// file, and registers the service to start on boot and restart on crash.
package provision

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"
)

type Options struct {
	// Dir is the install and working directory.
	Dir string
	// User is the account the service runs as.
	User string
	// Service is the systemd unit name, without the .service suffix.
	Service string
	// BinPath is the bot binary the unit executes.
	BinPath string
	// UnitDir is where the unit file is written.
	UnitDir string
	// Systemctl controls whether the systemctl steps run after the unit
	// file is written.
	Systemctl bool

	Out io.Writer
}

const envPlaceholder = `# Telegram bot token, from @BotFather.
BOT_TOKEN=
`

const whitelistPlaceholder = `# One Telegram user ID per line. Trailing comments are allowed:
#   123456789  # alice
# An empty whitelist admits everyone.
`

var unitTemplate = template.Must(template.New("unit").Parse(`[Unit]
Description=Translation GIF Telegram bot
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
User={{.User}}
WorkingDirectory={{.Dir}}
EnvironmentFile={{.Dir}}/.env
ExecStart={{.BinPath}}
Restart=always
RestartSec=10

[Install]
WantedBy=multi-user.target
`))

// Run executes the provisioning sequence. The first failing step aborts;
// there is no rollback.
func Run(opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	fmt.Fprintf(opts.Out, "==> Checking configuration files in %s\n", opts.Dir)
	if _, err := EnsureFile(filepath.Join(opts.Dir, ".env"), envPlaceholder, opts.Out); err != nil {
		return fmt.Errorf("ensuring .env: %w", err)
	}
	if _, err := EnsureFile(filepath.Join(opts.Dir, ".whitelist"), whitelistPlaceholder, opts.Out); err != nil {
		return fmt.Errorf("ensuring .whitelist: %w", err)
	}

	unitPath := UnitPath(opts)
	fmt.Fprintf(opts.Out, "==> Writing unit file %s\n", unitPath)
	unit, err := RenderUnit(opts)
	if err != nil {
		return fmt.Errorf("rendering unit: %w", err)
	}
	if err := os.WriteFile(unitPath, unit, 0644); err != nil {
		return fmt.Errorf("writing unit: %w", err)
	}

	if !opts.Systemctl {
		fmt.Fprintln(opts.Out, "==> Skipping systemctl steps")
		return nil
	}

	for _, args := range [][]string{
		{"daemon-reload"},
		{"enable", opts.Service},
		{"restart", opts.Service},
	} {
		fmt.Fprintf(opts.Out, "==> systemctl %s\n", args[0])
		if err := systemctl(opts.Out, args...); err != nil {
			return fmt.Errorf("systemctl %s: %w", args[0], err)
		}
	}

	fmt.Fprintf(opts.Out, "==> Service %s is enabled and running\n", opts.Service)
	return nil
}

// EnsureFile writes placeholder content to path unless the file already
// exists. Existing files are never touched.
func EnsureFile(path, placeholder string, out io.Writer) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "    %s already exists, leaving it alone\n", path)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if err := os.WriteFile(path, []byte(placeholder), 0600); err != nil {
		return false, err
	}

	fmt.Fprintf(out, "    WARNING: created placeholder %s, edit it before use\n", path)
	return true, nil
}

// RenderUnit produces the systemd unit file contents.
func RenderUnit(opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnitPath returns where the unit file is written.
func UnitPath(opts Options) string {
	return filepath.Join(opts.UnitDir, opts.Service+".service")
}

func systemctl(out io.Writer, args ...string) error {
	cmd := exec.Command("systemctl", args...)
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}
