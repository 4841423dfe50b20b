package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Ammar880121/facemorph-web/internal/utils"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the landmark catalog tables",
	Run: func(cmd *cobra.Command, args []string) {
		if !resetYes && !confirm(bufio.NewReader(os.Stdin), "⚠️  Are you sure you want to DROP the landmark catalog?") {
			fmt.Println("Aborted.")
			return
		}

		db, err := openStore(cmd.Context())
		if err != nil {
			utils.Die("Catalog database unavailable", err)
		}
		defer db.Close(context.Background())

		fmt.Println("🗑️  Clearing catalog...")
		if err := db.Reset(cmd.Context()); err != nil {
			utils.Die("Failed to reset catalog", err)
		}
		fmt.Println("✨ Catalog reset complete.")
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func confirm(r *bufio.Reader, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	res, _ := r.ReadString('\n')
	res = strings.TrimSpace(strings.ToLower(res))
	return res == "y" || res == "yes"
}
