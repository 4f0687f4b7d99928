package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
)

var errUsage = errors.New("usage")

// migrator is the subset of *migrate.Migrate the commands drive.
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

var commandNames = []string{"up", "down", "version", "force", "goto"}

var commands = map[string]command{
	"up":      {usage: "up", run: runUp},
	"down":    {usage: "down [steps]", run: runDown},
	"version": {usage: "version", run: runVersion},
	"force":   {usage: "force <version>", run: runForce},
	"goto":    {usage: "goto <version>", run: runGoto},
}

func main() {
	logger := logging.New(logging.Options{
		Level:   logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")),
		Service: "smfc-manager-migration",
	})
	defer func() { _ = logger.Sync() }()

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, logger *logging.Logger) error {
	cmd, name, err := lookupCommand(args)
	if err != nil {
		return err
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}
	dbURL = normalizeDBURL(dbURL, envBool("DB_DISABLE_PREPARED_BINARY_RESULT"))

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("close migration source", "error", srcErr)
		}
		if dbErr != nil {
			logger.Warn("close migration db", "error", dbErr)
		}
	}()

	logger.Info("running migration command", "command", name, "source", sourceURL)
	return cmd.run(m, args[1:], out, logger)
}

// lookupCommand accepts "migrate" as an alias of goto.
func lookupCommand(args []string) (command, string, error) {
	if len(args) == 0 {
		return command{}, "", errUsage
	}
	name := strings.ToLower(strings.TrimSpace(args[0]))
	if name == "migrate" {
		name = "goto"
	}
	cmd, ok := commands[name]
	if !ok {
		return command{}, "", fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd, name, nil
}

func runUp(m migrator, _ []string, _ io.Writer, logger *logging.Logger) error {
	if err := ignoreNoChange(m.Up(), logger); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	logger.Info("migrations applied")
	return nil
}

func runDown(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
		return fmt.Errorf("roll back %d step(s): %w", steps, err)
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func runVersion(m migrator, _ []string, out io.Writer, _ *logging.Logger) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		_, _ = fmt.Fprintln(out, "version: none")
		_, _ = fmt.Fprintln(out, "dirty: false")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	_, _ = fmt.Fprintf(out, "version: %d\n", version)
	_, _ = fmt.Fprintf(out, "dirty: %t\n", dirty)
	return nil
}

func runForce(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
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
	logger.Info("migration version forced", "version", version)
	return nil
}

func runGoto(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return errors.New("goto requires a target version argument")
	}
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Migrate(target), logger); err != nil {
		return fmt.Errorf("migrate to version %d: %w", target, err)
	}
	logger.Info("migrated to version", "version", target)
	return nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
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
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}

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

	return "", errors.New("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

// normalizeDBURL matches the API's DSN handling: with binary_parameters=yes
// lib/pq skips the unnamed prepare round trip that transaction poolers reject.
func normalizeDBURL(raw string, binaryParameters bool) string {
	if !binaryParameters {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("binary_parameters") == "" {
		query.Set("binary_parameters", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func envBool(key string) bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv(key))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func printUsage(w io.Writer) {
	bin := filepath.Base(os.Args[0])
	_, _ = fmt.Fprintf(w, "usage: %s <%s> [args]\n", bin, strings.Join(commandNames, "|"))
	for _, name := range commandNames {
		_, _ = fmt.Fprintf(w, "  %s %s\n", bin, commands[name].usage)
	}
	_, _ = fmt.Fprintln(w, "env: DB_URL (required), MIGRATIONS_DIR, DB_DISABLE_PREPARED_BINARY_RESULT")
}
