package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"wikitree/internal/config"
	"wikitree/internal/db"
	"wikitree/internal/hierarchy"
	"wikitree/internal/render"
	"wikitree/internal/wiki"
)

const dbFileName = ".wikitree.db"

var (
	dbPath     string
	configPath string
	actorFlag  string
	scopeFlag  string
	verbose    bool

	cfg    = config.DefaultConfig()
	logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})

	// markdown is built on first use from cfg.Markdown and shared by every
	// command in the process.
	markdown *render.Markdown
)

var rootCmd = &cobra.Command{
	Use:           "wikitree",
	Short:         "Hierarchical wiki pages with comments and publish/private visibility",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to .wikitree.db database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/wikitree/config.toml)")
	rootCmd.PersistentFlags().StringVar(&actorFlag, "as", "", "Act as this user id")
	rootCmd.PersistentFlags().StringVar(&scopeFlag, "scope", "", "Scope id for private pages")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

// setup loads .env, the config file, environment overrides and flags, in
// increasing order of precedence.
func setup() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadOrDefault(config.DefaultPath())
	}
	if err != nil {
		return err
	}

	cfg.ApplyEnv(os.Getenv)
	if actorFlag != "" {
		cfg.Identity.UserID = actorFlag
	}
	if scopeFlag != "" {
		cfg.Identity.ScopeID = scopeFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if verbose {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)
	markdown = nil
	return nil
}

// Markdown returns the process-wide markdown renderer.
func Markdown() (*render.Markdown, error) {
	if markdown == nil {
		md, err := render.NewMarkdown(cfg.Markdown)
		if err != nil {
			return nil, err
		}
		markdown = md
	}
	return markdown, nil
}

// DiscoverDB finds the database path using priority: env > flag > walk-up > XDG fallback
func DiscoverDB() (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv("WIKITREE_DB"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	// 2. CLI flag
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
		return "", fmt.Errorf("database not found at --db path: %s", dbPath)
	}

	// 3. Walk up from CWD
	if dir, err := os.Getwd(); err == nil {
		if found := walkUp(dir, dbFileName); found != "" {
			return found, nil
		}
	}

	// 4. XDG fallback
	if xdgPath := xdgDataPath(); xdgPath != "" {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", fmt.Errorf("no %s found (set WIKITREE_DB, use --db, or run `wikitree init`)", dbFileName)
}

// walkUp returns the first dir/name found from dir towards the filesystem root.
func walkUp(dir, name string) string {
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func xdgDataPath() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "wikitree", "wikitree.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "wikitree", "wikitree.db")
}

// OpenDatabase discovers and opens the database
func OpenDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		return nil, err
	}
	logger.Debug("opening database", "path", path)
	return db.OpenDB(path)
}

// OpenService opens the database and returns a service acting as the
// configured user. Callers close the returned DB.
func OpenService() (*wiki.Service, *db.DB, error) {
	d, err := OpenDatabase()
	if err != nil {
		return nil, nil, err
	}
	return wiki.New(d, cfg.Identity.UserID, cfg.Identity.ScopeID, logger), d, nil
}

// parseMode returns the flag value as a mode, or the configured default.
func parseMode(flag string) (hierarchy.Visibility, error) {
	if flag == "" {
		return cfg.Mode(), nil
	}
	return hierarchy.ParseMode(flag)
}

// ResolvePage finds a readable page by full ID, ID prefix, or title search.
func ResolvePage(s *wiki.Service, d *db.DB, reference string) (hierarchy.Page, error) {
	// 1. Exact ID match
	if p, err := s.Page(reference); err == nil {
		return p, nil
	} else if !errors.Is(err, db.ErrNotFound) {
		return hierarchy.Page{}, err
	}

	// 2. ID prefix match (≥6 hex/dash chars)
	if len(reference) >= 6 && isHexDash(reference) {
		rows, err := d.SearchByIDPrefix(strings.ToLower(reference), 10)
		if err == nil {
			var matches []hierarchy.Page
			for _, r := range rows {
				if p, err := s.Page(r.ID); err == nil {
					matches = append(matches, p)
				}
			}
			switch len(matches) {
			case 1:
				return matches[0], nil
			case 0:
				// fall through to FTS
			default:
				return hierarchy.Page{}, ambiguous(reference, matches, "Use a full page ID instead.")
			}
		}
	}

	// 3. FTS search
	hits, err := s.Search(reference)
	if err == nil {
		switch len(hits) {
		case 1:
			return hits[0], nil
		case 0:
			// fall through to not found
		default:
			return hierarchy.Page{}, ambiguous(reference, hits, "Use a page ID instead.")
		}
	}

	return hierarchy.Page{}, fmt.Errorf("page not found: %s", reference)
}

func ambiguous(reference string, matches []hierarchy.Page, hint string) error {
	limit := 10
	if len(matches) < limit {
		limit = len(matches)
	}
	lines := make([]string, limit)
	for i := 0; i < limit; i++ {
		lines[i] = fmt.Sprintf("  %s %s", truncID(matches[i].ID), matches[i].Title)
	}
	return fmt.Errorf("ambiguous reference '%s'. %d matches:\n%s\n%s",
		reference, len(matches), strings.Join(lines, "\n"), hint)
}

func isHexDash(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') || c == '-') {
			return false
		}
	}
	return true
}

func truncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
