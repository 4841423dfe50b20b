package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ammar880121/facemorph-web/internal/landmarks"
	"github.com/Ammar880121/facemorph-web/internal/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var convertOpts Options

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert .npy landmark files to .json for web use",
	Long:  "Walks every category directory under the source root and writes a mirrored tree of JSON landmark files to the destination root. Existing files are overwritten.",
	Run: func(cmd *cobra.Command, args []string) {
		runConvert(convertOpts)
	},
}

func init() {
	root := utils.ProjectRoot()
	convertCmd.Flags().StringVarP(&convertOpts.SrcDir, "src", "s", filepath.Join(root, "assets", "landmarks"), "Source directory with .npy landmark files")
	convertCmd.Flags().StringVarP(&convertOpts.DstDir, "dst", "d", filepath.Join(root, "web", "assets", "landmarks"), "Destination directory for .json files")
	rootCmd.AddCommand(convertCmd)
}

// runConvert performs the batch conversion. Per-file failures are reported
// and skipped; only a missing source root stops the run, and even then the
// process exits 0 so shell pipelines around asset regeneration keep working.
func runConvert(opts Options) {
	plan, err := landmarks.Plan(opts.SrcDir, opts.DstDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Source directory not found: %s\n", opts.SrcDir)
			return
		}
		utils.Die("Failed to scan source directory", err)
	}

	if len(plan) == 0 {
		fmt.Fprintln(os.Stderr, "No .npy landmark files found.")
		return
	}

	bar := progressbar.NewOptions(len(plan),
		progressbar.OptionSetDescription("🔄 Converting landmarks"),
		progressbar.OptionSetWriter(os.Stderr), // Write bar to Stderr
		progressbar.OptionShowCount(),
	)

	converted := 0
	for _, m := range plan {
		bar.Add(1)

		n, err := landmarks.Convert(m)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\n⚠️  Error converting %s: %v\n", m.Src, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "\nConverted: %s/%s%s -> %s (%d points)\n",
			m.Category, m.Name, landmarks.NpyExt, filepath.Base(m.Dst), n)
		converted++
	}
	bar.Finish()

	fmt.Fprintf(os.Stderr, "\n🏁 Total converted: %d of %d files\n", converted, len(plan))
}
