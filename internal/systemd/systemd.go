// Package systemd signals readiness and feeds the watchdog when the bot
// runs under systemd. Outside systemd (NOTIFY_SOCKET unset) every call is
// a no-op.
package systemd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"time"
)

// State is an sd_notify protocol state.
// See https://www.freedesktop.org/software/systemd/man/sd_notify.html.
type State string

const (
	// Ready tells the service manager that startup is finished.
	Ready State = "READY=1"

	// Watchdog tells the service manager to update the watchdog timestamp.
	Watchdog State = "WATCHDOG=1"
)

// Notify sends state to the service manager over the sd_notify socket.
// Errors are logged, not returned, since nothing actionable can be done.
func Notify(state State) {
	addr := &net.UnixAddr{
		Net:  "unixgram",
		Name: os.Getenv("NOTIFY_SOCKET"),
	}

	if addr.Name == "" {
		return
	}

	conn, err := net.DialUnix(addr.Net, nil, addr)
	if err != nil {
		log.Printf("systemd: failed when notifying: %v", err)
		return
	}
	defer conn.Close()

	if _, err = conn.Write([]byte(state)); err != nil {
		log.Printf("systemd: failed when notifying: %v", err)
	}
}

// WatchdogLoop periodically updates the systemd watchdog timestamp. Run it
// in its own goroutine; cancel ctx to stop it. It returns immediately when
// WATCHDOG_USEC is unset.
func WatchdogLoop(ctx context.Context) {
	if os.Getenv("WATCHDOG_USEC") == "" {
		return
	}

	interval, err := watchdogInterval()
	if err != nil {
		log.Printf("%v", err)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			Notify(Watchdog)
		case <-ctx.Done():
			return
		}
	}
}

func watchdogInterval() (time.Duration, error) {
	s, err := strconv.Atoi(os.Getenv("WATCHDOG_USEC"))
	if err != nil {
		return 0, fmt.Errorf("systemd: error converting WATCHDOG_USEC: %v", err)
	}

	if s <= 0 {
		return 0, errors.New("systemd: WATCHDOG_USEC must be a positive number")
	}

	// Notify at half the timeout so a single missed tick does not kill us.
	return time.Duration(s) * time.Microsecond / 2, nil
}
