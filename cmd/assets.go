package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hxj7031gino/my-cv/internal/assets"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manages the image inbox",
}

var assetsSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Creates the folder layout and unpacks the image archive",
	Long: `The setup command creates 'images/site' and 'works/projects', unpacks the
configured archive (default 'images.zip') into the inbox, removes macOS
artifacts, writes 'inbox/image_inventory.csv', seeds 'projects.csv' when it is
missing and gives every listed project an img/ and assets/ folder.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := assets.Setup(assets.Options{
			Root:     projectRoot,
			Archive:  appConfig.Projects.Archive,
			Inbox:    appConfig.Projects.Inbox,
			Progress: cmd.ErrOrStderr(),
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res.ImagesDir != "" {
			fmt.Fprintf(out, "Images unpacked to: %s\n", res.ImagesDir)
			fmt.Fprintf(out, "Inventory: %s (%d images)\n", res.Inventory, res.InventoryRows)
		}
		if res.CreatedCSV {
			fmt.Fprintln(out, "Created projects.csv template")
		}
		fmt.Fprintf(out, "Project folders ready: %d\n", res.ProjectFolders)
		return nil
	},
}

func init() {
	assetsCmd.AddCommand(assetsSetupCmd)
	rootCmd.AddCommand(assetsCmd)
}
