package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hxj7031gino/my-cv/internal/config"
	"github.com/hxj7031gino/my-cv/internal/logging"
	"github.com/hxj7031gino/my-cv/internal/model"
)

// projectRoot is where the conventional directories and projects.csv live.
const projectRoot = "."

var (
	cfgFile   string
	verbose   bool
	appConfig config.Config
	siteData  *model.SiteData
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "my-cv",
	Short: "Builds and maintains a single-page artist portfolio",
	Long: `my-cv renders the portfolio page (work, statement and biography panels plus
the image gallery) into a static site, serves it with live rebuilds, previews it
in the terminal and carries the maintenance tools for project folders and
image assets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l
		return initializeConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the command tree. site receives the raw values of the config
// file in use, handed to templates as .Params.
func Execute(site *model.SiteData) {
	siteData = site
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initializeConfig() error {
	cfg, used, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if used != "" {
		logger.Debug("using config file", zap.String("path", used))
	} else {
		logger.Debug("no config file found, using defaults and environment")
	}
	appConfig = cfg
	if siteData == nil {
		siteData = &model.SiteData{}
	}
	params, err := config.LoadParams(used)
	if err != nil {
		return err
	}
	siteData.Config = params
	return nil
}
