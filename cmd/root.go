package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ammar880121/facemorph-web/internal/store"
	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Options holds shared configuration for the convert, detect, and index commands.
type Options struct {
	SrcDir        string
	DstDir        string
	CascadeDir    string
	MinConfidence float64
	Perturbs      int
}

var (
	// dbURL is the connection string for the landmark catalog
	dbURL string
	// verbose raises the log level for the internal packages
	verbose bool
)

// Version is the application version.
const Version = "0.0.1"

var rootCmd = &cobra.Command{
	Use:     "facemorph",
	Short:   "Facial landmark tooling for the facemorph web front-end",
	Version: Version, // This enables the --version flag
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; flags and real env vars win either way
		_ = godotenv.Load()

		logrus.SetFormatter(&formatter.Formatter{
			HideKeys:        true,
			TimestampFormat: "15:04:05",
		})
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
}

// openStore connects to the landmark catalog database. Only the index, list,
// and reset commands need a database; convert and detect never connect.
func openStore(ctx context.Context) (*store.Store, error) {
	url := dbURL
	if url == "" {
		if host := os.Getenv("POSTGRES_HOST"); host != "" {
			user := os.Getenv("POSTGRES_USER")
			pass := os.Getenv("POSTGRES_PASSWORD")
			name := os.Getenv("POSTGRES_DB")
			port := os.Getenv("POSTGRES_PORT")
			if port == "" {
				port = "5432"
			}
			url = fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, pass, host, port, name)
		} else {
			// Fallback to local default if no env vars are present
			url = "postgres://localhost:5432/facemorph"
		}
	}

	db, err := store.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// This tells Cobra not to print the version in the help text, which is cleaner.
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "PostgreSQL connection string (default: postgres://localhost:5432/facemorph)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
