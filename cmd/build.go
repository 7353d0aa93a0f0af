package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hxj7031gino/my-cv/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the portfolio page into the output directory",
	Long: `The build command renders the page layout ('./layouts/index.html' or the
built-in one), inserts the statement and biography from './content/*.md',
fills the work grid from './projects.csv', lays out the gallery in numeric
order, copies './static/', './images/' and './works/' and writes the result to
the configured output directory (default './public/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuild()
		return err
	},
}

func runBuild() (*site.Result, error) {
	b := &site.Builder{
		Root:   projectRoot,
		Config: appConfig,
		Site:   siteData,
		Logger: logger,
	}
	return b.Build()
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
