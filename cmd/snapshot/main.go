package main

import (
	"context"
	"os"
	"time"

	"github.com/gogotex/usergateway/internal/app"
	"github.com/gogotex/usergateway/internal/config"
	"github.com/gogotex/usergateway/internal/models"
	"github.com/gogotex/usergateway/internal/storage"
	"github.com/gogotex/usergateway/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var key string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export the users collection to MinIO as a JSON array",
		Long: `snapshot lists every document of the users collection and uploads it
as one JSON object to the configured MinIO bucket. Passwords are never exported.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			a := app.New(ctx, cfg)
			defer a.Close(context.Background())

			st, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
			if err != nil {
				return err
			}
			if key == "" {
				key = storage.SnapshotKey(models.UsersCollection, time.Now())
			}
			n, err := storage.WriteSnapshot[models.User](ctx, a.Users, st, key)
			if err != nil {
				return err
			}
			logger.Infof("wrote %d users to s3://%s/%s", n, st.Bucket(), key)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "object key (default snapshots/users/<timestamp>.json)")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall deadline for the export")
	return cmd
}
