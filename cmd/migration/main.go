package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/fantasy-points/internal/platform/dburl"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
)

var errUsage = errors.New("usage")

// migrator is the part of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

type command struct {
	usage string
	run   func(m migrator, args []string, out io.Writer, logger *logging.Logger) error
}

var commands = map[string]command{
	"up":      {usage: "up", run: cmdUp},
	"down":    {usage: "down [steps]", run: cmdDown},
	"version": {usage: "version", run: cmdVersion},
	"force":   {usage: "force <version>", run: cmdForce},
	"goto":    {usage: "goto <version>", run: cmdGoto},
}

func main() {
	level, err := logging.ParseLevel(os.Getenv("APP_LOG_LEVEL"))
	if err != nil {
		level = logging.LevelInfo
	}
	logger := logging.NewConsole(level, os.Stderr).Named("migration")
	defer func() { _ = logger.Sync() }()

	if err := run(os.Args[1:], os.Stdout, logger, openMigrator); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, logger *logging.Logger, open func(*logging.Logger) (migrator, func(), error)) error {
	if len(args) == 0 {
		return errUsage
	}
	name := strings.ToLower(strings.TrimSpace(args[0]))
	if name == "migrate" {
		name = "goto"
	}
	cmd, ok := commands[name]
	if !ok {
		return errUsage
	}

	m, closeFn, err := open(logger)
	if err != nil {
		return err
	}
	defer closeFn()

	return cmd.run(m, args[1:], out, logger)
}

func openMigrator(logger *logging.Logger) (migrator, func(), error) {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return nil, nil, errors.New("DB_URL is required")
	}
	dbURL = normalizeDBURL(dbURL)

	dir, err := resolveMigrationsDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve migrations dir: %w", err)
	}
	sourceURL := "file://" + filepath.ToSlash(dir)
	logger.Debug("migration target", "db", dburl.Redact(dbURL), "source", sourceURL)

	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("close migration source", "error", srcErr)
		}
		if dbErr != nil {
			logger.Warn("close migration db", "error", dbErr)
		}
	}, nil
}

func cmdUp(m migrator, _ []string, _ io.Writer, logger *logging.Logger) error {
	if err := applied(m.Up(), logger); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}

func cmdDown(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	if err := applied(m.Steps(-steps), logger); err != nil {
		return err
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func cmdVersion(m migrator, _ []string, out io.Writer, _ *logging.Logger) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		_, err = fmt.Fprintln(out, "version: none\ndirty: false")
		return err
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}
	_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
	return err
}

func cmdForce(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return errors.New("force requires a version argument")
	}
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("forced migration version", "version", version)
	return nil
}

func cmdGoto(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return errors.New("goto requires a target version argument")
	}
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	if err := applied(m.Migrate(target), logger); err != nil {
		return err
	}
	logger.Info("migrated", "version", target)
	return nil
}

// applied treats migrate.ErrNoChange as success.
func applied(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

var migrationDirs = []string{"./db/migrations", "/app/db/migrations"}

func resolveMigrationsDir() (string, error) {
	candidates := append([]string{strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))}, migrationDirs...)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, %s)", strings.Join(migrationDirs, ", "))
}

func normalizeDBURL(raw string) string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT"))) {
	case "1", "true", "t", "yes", "y", "on":
		return dburl.WithPreparedBinaryDisabled(raw)
	}
	return raw
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <command> [args]\ncommands:\n", name)
	for _, key := range []string{"up", "down", "version", "force", "goto"} {
		fmt.Fprintf(w, "  %s %s\n", name, commands[key].usage)
	}
}
