package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hxj7031gino/my-cv/internal/projects"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Checks and repairs the works/projects folders",
}

var projectsAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Reports problems in projects.csv and the project folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree := projects.Tree{Root: projectRoot}
		rep, err := projects.Audit(tree, time.Now())
		if err != nil {
			return err
		}
		if err := rep.Write(cmd.OutOrStdout()); err != nil {
			return err
		}
		path, err := rep.Save(tree)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nSaved report: %s\n", path)
		return nil
	},
}

var projectsFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Trashes invalid folders, adds missing pages and rewrites projects.csv",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := projects.Fix(projects.Tree{Root: projectRoot}, appConfig.SiteTitle, time.Now())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, m := range res.Moved {
			fmt.Fprintf(out, "Moved invalid folder: %s -> %s/\n", m, res.TrashDir)
		}
		for _, c := range res.Created {
			fmt.Fprintf(out, "Created index.html: %s\n", c)
		}
		if res.CSVBackup != "" {
			fmt.Fprintf(out, "Backed up projects.csv: %s\n", res.CSVBackup)
		}
		fmt.Fprintf(out, "projects.csv rewritten with %d rows (%d existing pages kept)\n", res.Rows, res.Skipped)
		return nil
	},
}

var projectsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Regenerates the project cards in index.html and work.html",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := projects.SyncCards(projects.Tree{Root: projectRoot}, appConfig.Projects.Recent, time.Now())
		if err != nil {
			return err
		}
		for _, s := range res.MissingRecent {
			logger.Warn("recent slug not in projects.csv", zap.String("slug", s))
		}
		printPageUpdates(cmd, res.Pages)
		return nil
	},
}

var projectsRelinkCmd = &cobra.Command{
	Use:   "relink",
	Short: "Applies the configured link rewrites to the site pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		rewrites := make([]projects.Rewrite, 0, len(appConfig.Projects.Relink))
		for _, r := range appConfig.Projects.Relink {
			rewrites = append(rewrites, projects.Rewrite{From: r.From, To: r.To})
		}
		if len(rewrites) == 0 {
			logger.Warn("no link rewrites configured under projects.relink")
			return nil
		}

		res, err := projects.Relink(projects.Tree{Root: projectRoot}, appConfig.Projects.RelinkFiles, rewrites, time.Now())
		if err != nil {
			return err
		}
		updates := make([]projects.PageUpdate, 0, len(res))
		for _, r := range res {
			logger.Debug("relinked page", zap.String("page", r.Page), zap.Int("hits", r.Hits))
			updates = append(updates, r.PageUpdate)
		}
		printPageUpdates(cmd, updates)
		return nil
	},
}

func printPageUpdates(cmd *cobra.Command, updates []projects.PageUpdate) {
	out := cmd.OutOrStdout()
	for _, u := range updates {
		switch {
		case u.Changed:
			fmt.Fprintf(out, "Updated %s (backup: %s)\n", u.Page, u.Backup)
		default:
			fmt.Fprintf(out, "Skipped %s: %s\n", u.Page, u.Note)
		}
	}
}

func init() {
	projectsCmd.AddCommand(projectsAuditCmd, projectsFixCmd, projectsSyncCmd, projectsRelinkCmd)
	rootCmd.AddCommand(projectsCmd)
}
