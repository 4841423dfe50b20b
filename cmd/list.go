package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Ammar880121/facemorph-web/internal/utils"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all indexed landmark sets in the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		runList(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(ctx context.Context) {
	db, err := openStore(ctx)
	if err != nil {
		utils.Die("Catalog database unavailable", err)
	}
	defer db.Close(context.Background())

	sets, err := db.ListSets(ctx)
	if err != nil {
		utils.Die("Failed to list landmark sets", err)
	}

	if len(sets) == 0 {
		fmt.Println("No landmark sets found in catalog.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tNAME\tPOINTS\tINDEXED")
	fmt.Fprintln(w, "--\t--------\t----\t------\t-------")

	for _, s := range sets {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", s.ID, s.Category, s.Name, s.PointCount, s.IndexedAt.Local().Format("2006-01-02 15:04"))
	}
	w.Flush()
}
