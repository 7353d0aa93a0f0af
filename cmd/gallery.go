package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hxj7031gino/my-cv/internal/gallery"
	"github.com/hxj7031gino/my-cv/internal/projects"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Inspects the page gallery and project gallery files",
}

var galleryListCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints the gallery in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := gallery.LoadManifest(manifestPath())
		if err != nil {
			return err
		}
		prefix := galleryPrefix(manifest)

		entries := gallery.Sort(manifest.Images)
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "KEY", "SOURCE")
		for i, e := range entries {
			key := "-"
			if e.Key.Valid() {
				key = e.Key.String()
			}
			t.Row(strconv.Itoa(i+1), key, gallery.Source(prefix, e.Filename))
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		for _, f := range gallery.Keyless(entries) {
			logger.Warn("gallery file has no digits; placed after numbered images", zap.String("file", f))
		}
		return nil
	},
}

var galleryNormalizeCmd = &cobra.Command{
	Use:   "normalize [slug...]",
	Short: "Renames two-digit project gallery files to three digits",
	Long: `The normalize command renames img/NN.ext files in each named project (or the
projects listed under projects.normalize in the config) to img/NNN.ext with a
lower-case extension and updates the references in the project's index.html.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		slugs := args
		if len(slugs) == 0 {
			slugs = appConfig.Projects.Normalize
		}
		if len(slugs) == 0 {
			return fmt.Errorf("no project slugs given and none configured under projects.normalize")
		}

		out := cmd.OutOrStdout()
		tree := projects.Tree{Root: projectRoot}
		for _, slug := range slugs {
			res, err := projects.NormalizeGallery(tree, slug, time.Now())
			if err != nil {
				return err
			}
			for _, r := range res.Renamed {
				fmt.Fprintf(out, "%s: %s -> %s\n", slug, r.From, r.To)
			}
			switch {
			case res.PageUpdated:
				fmt.Fprintf(out, "%s: updated index.html (backup: %s)\n", slug, res.PageBackup)
			case res.Skipped != "":
				fmt.Fprintf(out, "%s: %s\n", slug, res.Skipped)
			}
		}
		return nil
	},
}

func init() {
	galleryCmd.AddCommand(galleryListCmd, galleryNormalizeCmd)
	rootCmd.AddCommand(galleryCmd)
}
