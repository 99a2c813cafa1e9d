// Command install provisions the bot on the host: it seeds .env and
// .whitelist when missing, writes the systemd unit, and enables and starts
// the service. Re-running never touches existing configuration files.
package main

import (
	"flag"
	"log"
	"os"
	"os/user"
	"path/filepath"

	"gif-translate-bot/internal/provision"
)

func main() {
	log.SetFlags(0)

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("install: %v", err)
	}

	defaultUser := ""
	if u, err := user.Current(); err == nil {
		defaultUser = u.Username
	}

	var (
		dir         = flag.String("dir", cwd, "install and working directory")
		serviceUser = flag.String("user", defaultUser, "user the service runs as")
		service     = flag.String("service", "gif-translate-bot", "systemd unit name")
		bin         = flag.String("bin", "", "bot binary path (default <dir>/bot)")
		unitDir     = flag.String("unit-dir", "/etc/systemd/system", "directory for the unit file")
		noSystemctl = flag.Bool("no-systemctl", false, "write files only, skip systemctl")
	)
	flag.Parse()

	if *serviceUser == "" {
		log.Fatal("install: cannot determine invoking user, pass -user")
	}
	if *bin == "" {
		*bin = filepath.Join(*dir, "bot")
	}

	err = provision.Run(provision.Options{
		Dir:       *dir,
		User:      *serviceUser,
		Service:   *service,
		BinPath:   *bin,
		UnitDir:   *unitDir,
		Systemctl: !*noSystemctl,
		Out:       os.Stdout,
	})
	if err != nil {
		log.Fatalf("install: %v", err)
	}
}
