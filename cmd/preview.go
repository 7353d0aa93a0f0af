package cmd

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hxj7031gino/my-cv/internal/gallery"
	"github.com/hxj7031gino/my-cv/internal/preview"
	"github.com/hxj7031gino/my-cv/internal/projects"
	"github.com/hxj7031gino/my-cv/internal/site"
)

var previewStyle string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Previews the page in the terminal",
	Long: `The preview command shows the portfolio page in the terminal. Switch panels
with w, s and b (or tab), browse the gallery with the arrow keys, open an image
with enter and close it with esc or x.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		panels, err := site.LoadPanels(filepath.Join(projectRoot, site.ContentDir), site.NewMarkdown(), logger)
		if err != nil {
			return err
		}
		manifest, err := gallery.LoadManifest(manifestPath())
		if err != nil {
			return err
		}
		prefix := galleryPrefix(manifest)
		ps, err := projects.ReadCSV(filepath.Join(projectRoot, projects.CSVName))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		return preview.Run(preview.Options{
			SiteTitle: appConfig.SiteTitle,
			Panels:    panels,
			Projects:  ps,
			Images:    manifest.Images,
			Prefix:    prefix,
			Style:     previewStyle,
		})
	},
}

func manifestPath() string {
	p := appConfig.Gallery.Manifest
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectRoot, p)
}

// galleryPrefix prefers the configured prefix over the manifest's.
func galleryPrefix(m gallery.Manifest) string {
	if appConfig.Gallery.Prefix != "" {
		return appConfig.Gallery.Prefix
	}
	return m.Prefix
}

func init() {
	previewCmd.Flags().StringVar(&previewStyle, "style", preview.DefaultStyle, "glamour style for statement and biography (dark, light, notty or a JSON path)")
	rootCmd.AddCommand(previewCmd)
}
