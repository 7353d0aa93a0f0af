package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hxj7031gino/my-cv/internal/server"
	"github.com/hxj7031gino/my-cv/internal/site"
	"github.com/hxj7031gino/my-cv/internal/watch"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds it on changes",
	Long: `The serve command performs an initial build, then serves the output
directory over HTTP. It watches content, layouts, static, images and works
and rebuilds the site once changes settle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("performing initial build")
		if _, err := runBuild(); err != nil {
			return fmt.Errorf("initial build failed, fix the issues and try again: %w", err)
		}

		port := appConfig.Port
		if cmd.Flags().Changed("port") {
			port = serverPort
		}

		w, err := watch.New(watchRoots(), watch.DefaultDebounce, func() {
			logger.Info("rebuilding site due to changes")
			if _, err := runBuild(); err != nil {
				logger.Error("rebuild failed", zap.Error(err))
				return
			}
			logger.Info("site rebuilt")
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer w.Close()

		srv := server.New(server.Config{Port: port, Dir: outputDir()}, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("server shutdown", zap.Error(err))
			}
		}()

		logger.Info("press Ctrl+C to stop the server")
		return srv.Start()
	},
}

func outputDir() string {
	if filepath.IsAbs(appConfig.OutputDir) {
		return appConfig.OutputDir
	}
	return filepath.Join(projectRoot, appConfig.OutputDir)
}

func watchRoots() []string {
	var roots []string
	for _, dir := range []string{site.ContentDir, site.LayoutsDir, site.StaticDir, site.ImagesDir, site.WorksDir} {
		roots = append(roots, filepath.Join(projectRoot, dir))
	}
	return roots
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
