package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stemsi/lms-backend/internal/config"
	"github.com/stemsi/lms-backend/internal/logger"
)

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

var errUsage = errors.New("usage")

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	var migrationDir string
	flag.StringVar(&migrationDir, "path", cfg.MigrationsPath, "Path to migration files (MIGRATIONS_PATH)")
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		return
	}
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://"+migrationDir, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("path", migrationDir).Msg("Migration failed to initialize")
	}
	defer m.Close()

	msg, err := run(m, flag.Args())
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, err)
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", flag.Arg(0)).Msg("Migration failed")
	}
	log.Info().Str("command", flag.Arg(0)).Msg(msg)
}

// run executes one command and returns a summary line. migrate.ErrNoChange
// is not an error.
func run(m migrator, args []string) (string, error) {
	switch args[0] {
	case "up":
		if err := noChange(m.Up()); err != nil {
			return "", fmt.Errorf("up: %w", err)
		}
		return "Migrated up successfully", nil

	case "down":
		// One step by default; dropping every table needs an explicit count.
		n := 1
		if len(args) > 1 {
			v, err := positive(args[1])
			if err != nil {
				return "", err
			}
			n = v
		}
		if err := noChange(m.Steps(-n)); err != nil {
			return "", fmt.Errorf("down %d: %w", n, err)
		}
		return fmt.Sprintf("Rolled back %d migration(s)", n), nil

	case "steps":
		if len(args) < 2 {
			return "", fmt.Errorf("%w: steps requires a signed count", errUsage)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n == 0 {
			return "", fmt.Errorf("%w: invalid step count %q", errUsage, args[1])
		}
		if err := noChange(m.Steps(n)); err != nil {
			return "", fmt.Errorf("steps %d: %w", n, err)
		}
		return fmt.Sprintf("Applied %d step(s)", n), nil

	case "goto":
		if len(args) < 2 {
			return "", fmt.Errorf("%w: goto requires a version", errUsage)
		}
		v, err := positive(args[1])
		if err != nil {
			return "", err
		}
		if err := noChange(m.Migrate(uint(v))); err != nil {
			return "", fmt.Errorf("goto %d: %w", v, err)
		}
		return fmt.Sprintf("Migrated to version %d", v), nil

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return "No migrations applied", nil
		}
		if err != nil {
			return "", fmt.Errorf("version: %w", err)
		}
		return fmt.Sprintf("Version: %d, Dirty: %t", version, dirty), nil

	case "force":
		if len(args) < 2 {
			return "", fmt.Errorf("%w: force requires a version", errUsage)
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("%w: invalid version %q", errUsage, args[1])
		}
		if err := m.Force(v); err != nil {
			return "", fmt.Errorf("force %d: %w", v, err)
		}
		return fmt.Sprintf("Forced version to %d", v), nil

	default:
		return "", fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func noChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func positive(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive integer", errUsage, raw)
	}
	return n, nil
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println("Commands: up, down [n], steps <+/-n>, goto <version>, version, force <version>")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
