package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ammar880121/facemorph-web/internal/landmarks"
	"github.com/Ammar880121/facemorph-web/internal/store"
	"github.com/Ammar880121/facemorph-web/internal/utils"
	"github.com/spf13/cobra"
)

var indexOpts Options

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Record converted landmark sets in the catalog database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runIndex(cmd.Context(), indexOpts)
	},
}

func init() {
	root := utils.ProjectRoot()
	indexCmd.Flags().StringVarP(&indexOpts.DstDir, "dst", "d", filepath.Join(root, "web", "assets", "landmarks"), "Converted landmark directory to index")
	rootCmd.AddCommand(indexCmd)
}

// runIndex walks the converted JSON tree and upserts one catalog row per
// landmark set. Unreadable sets are reported and skipped, like convert.
func runIndex(ctx context.Context, opts Options) error {
	plan, err := landmarks.PlanJSON(opts.DstDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Landmark directory not found: %s (run convert first)\n", opts.DstDir)
			return nil
		}
		utils.ShowError("Failed to scan landmark directory", err)
		return err
	}

	if len(plan) == 0 {
		fmt.Fprintln(os.Stderr, "No landmark sets to index.")
		return nil
	}

	db, err := openStore(ctx)
	if err != nil {
		utils.ShowError("Catalog database unavailable", err)
		return err
	}
	defer db.Close(context.Background())

	indexed := 0
	for _, m := range plan {
		set, err := landmarks.ReadJSON(m.Src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Skipping %s: %v\n", m.Src, err)
			continue
		}

		hash, err := utils.SourceHash(m.Src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Skipping %s: %v\n", m.Src, err)
			continue
		}

		rec := store.SetRecord{
			Category:   m.Category,
			Name:       m.Name,
			Path:       m.Src,
			PointCount: len(set),
			SourceHash: hash,
		}
		if err := db.UpsertSet(ctx, rec); err != nil {
			utils.ShowError(fmt.Sprintf("Failed to index %s/%s", m.Category, m.Name), err)
			return err
		}
		indexed++
	}

	fmt.Fprintf(os.Stderr, "🏁 Indexed %d of %d landmark sets\n", indexed, len(plan))
	return nil
}
