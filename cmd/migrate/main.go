// Command migrate manages the postgres schema of the POD platform.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/podplatform/backend/internal/infrastructure/config"
	"github.com/podplatform/backend/internal/infrastructure/logger"
	"github.com/podplatform/backend/internal/infrastructure/migration"
	"github.com/podplatform/backend/migrations"
)

const defaultSourceDir = "migrations"

var errUsage = errors.New("invalid usage")

func main() {
	var (
		dir      string
		logLevel string
	)
	flag.StringVar(&dir, "dir", "", "Read migrations from this directory instead of the embedded copies")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(flag.Args(), dir, log); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
		}
		log.Error("Migration command failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(args []string, dir string, log *zap.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	command, rest := args[0], args[1:]

	switch command {
	case "create":
		if len(rest) == 0 {
			return fmt.Errorf("%w: create needs a name", errUsage)
		}
		target := dir
		if target == "" {
			target = defaultSourceDir
		}
		desc := ""
		if len(rest) > 1 {
			desc = rest[1]
		}
		mf, err := migration.CreateMigration(target, rest[0], desc)
		if err != nil {
			return err
		}
		log.Info("Migration created",
			zap.Uint("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return nil

	case "list":
		var entries []migration.Entry
		var err error
		if dir != "" {
			entries, err = migration.ListMigrations(os.DirFS(dir))
		} else {
			entries, err = migration.ListMigrations(migrations.FS)
		}
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%06d  %s\n", e.Version, e.Name)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("migrations target postgres, configured driver is %q", cfg.Database.Driver)
	}

	var opts []migration.Option
	if dir != "" {
		opts = append(opts, migration.WithDir(dir))
	}
	m, err := migration.New(cfg.Database.DSN(), log, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			log.Warn("Failed to close migrator", zap.Error(cerr))
		}
	}()

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(rest)
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		n, err := intArg(rest)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: version must not be negative", errUsage)
		}
		return m.GoTo(uint(n))
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Current schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	case "force":
		n, err := intArg(rest)
		if err != nil {
			return err
		}
		return m.Force(n)
	case "drop":
		if len(rest) == 0 || (rest[0] != "-confirm" && rest[0] != "--confirm") {
			return fmt.Errorf("%w: drop needs -confirm", errUsage)
		}
		return m.Drop()
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func intArg(rest []string) (int, error) {
	if len(rest) == 0 {
		return 0, fmt.Errorf("%w: missing number", errUsage)
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errUsage, rest[0])
	}
	return n, nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `POD platform schema migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative rolls back)
  goto <version>        Migrate to a specific version
  version               Show the applied version
  force <version>       Record a version without running it
  drop -confirm         Drop every table
  create <name> [desc]  Write a new numbered up/down pair
  list                  List known migrations

Flags:
  -dir string           Migrations directory (default: embedded copies; create uses ./migrations)
  -log-level string     debug, info, warn, error (default: info)

Connection settings come from POD_DATABASE_HOST, POD_DATABASE_PORT,
POD_DATABASE_USER, POD_DATABASE_PASSWORD, POD_DATABASE_DBNAME and
POD_DATABASE_SSLMODE.
`)
}
