// Package config parses the flag/environment-driven process configuration
// for the euchre room server, following the teacher's cmd/pokersrv flag
// parsing idiom.
package config

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/cardtable/euchre-rooms/pkg/utils"
)

// Config holds every process-level setting the server needs at startup.
type Config struct {
	ListenAddr string
	DBPath     string
	DebugLevel string
	RoomTTL    int // minutes; not read by the server: rooms expire one hour after creation (euchre.Room.Expired)
}

// Parse reads flags into a Config; the EUCHRE_LISTEN_ADDR, EUCHRE_DB_PATH
// and EUCHRE_DEBUG_LEVEL environment variables, when set, override the
// corresponding flag values.
func Parse() Config {
	var cfg Config
	flag.StringVar(&cfg.ListenAddr, "listen", "127.0.0.1:8787", "address to listen on")
	flag.StringVar(&cfg.DBPath, "db", "", "path to sqlite database file (created if missing)")
	flag.StringVar(&cfg.DebugLevel, "debuglevel", "info", "logging level: trace, debug, info, warn, error, critical")
	flag.IntVar(&cfg.RoomTTL, "roomttlmins", 60, "room TTL in minutes (not applied: rooms expire one hour after creation)")
	flag.Parse()

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(os.TempDir(), "euchre-rooms.sqlite")
	}
	if env := os.Getenv("EUCHRE_LISTEN_ADDR"); env != "" {
		cfg.ListenAddr = env
	}
	if env := os.Getenv("EUCHRE_DB_PATH"); env != "" {
		cfg.DBPath = env
	}
	if env := os.Getenv("EUCHRE_DEBUG_LEVEL"); env != "" {
		cfg.DebugLevel = env
	}
	return cfg
}

// EnsureDataDir creates the directory holding the sqlite file.
func EnsureDataDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "" || dir == "." {
		return nil
	}
	return utils.EnsureDataDirExists(dir)
}
