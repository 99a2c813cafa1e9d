package systemd

import (
	"net"
	"path/filepath"
	"testing"
	"time"
)

func TestNotify(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "notify.sock")

	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{
		Net:  "unixgram",
		Name: socketPath,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	t.Setenv("NOTIFY_SOCKET", socketPath)

	Notify(Ready)

	buf := make([]byte, 64)
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(buf[:n]); got != string(Ready) {
		t.Errorf("received %q, want %q", got, Ready)
	}
}

func TestNotifyNoSocket(t *testing.T) {
	t.Setenv("NOTIFY_SOCKET", "")

	// Must be a silent no-op.
	Notify(Ready)
}

func TestWatchdogInterval(t *testing.T) {
	tests := []struct {
		name    string
		usec    string
		want    time.Duration
		wantErr bool
	}{
		{
			name: "Valid",
			usec: "30000000",
			want: 15 * time.Second,
		},
		{
			name:    "Not a number",
			usec:    "soon",
			wantErr: true,
		},
		{
			name:    "Zero",
			usec:    "0",
			wantErr: true,
		},
		{
			name:    "Negative",
			usec:    "-5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WATCHDOG_USEC", tt.usec)

			got, err := watchdogInterval()
			if (err != nil) != tt.wantErr {
				t.Fatalf("watchdogInterval() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("watchdogInterval() = %v, want %v", got, tt.want)
			}
		})
	}
}
