package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stencil-dev/stencil/internal/config"
	"github.com/stencil-dev/stencil/internal/deploy"
)

func deployCmd() *cobra.Command {
	var (
		bucket string
		prefix string
		prune  bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the build output to S3",
		Long: `Upload the production build output to an S3 bucket.

Credentials come from the standard AWS sources (environment,
~/.aws/credentials, instance role). The bucket and key prefix are
read from ` + config.ConfigFileName + ` and can be overridden with flags.

Examples:
  stencil deploy
  stencil deploy --bucket=my-site --prefix=www
  stencil deploy --prune`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(bucket, prefix, prune)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default from "+config.ConfigFileName+")")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from "+config.ConfigFileName+")")
	cmd.Flags().BoolVar(&prune, "prune", false, "Delete remote objects not present in the build output")

	return cmd
}

func runDeploy(bucket, prefix string, prune bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if bucket != "" {
		cfg.Deploy.Bucket = bucket
	}
	if prefix != "" {
		cfg.Deploy.Prefix = prefix
	}

	fmt.Println("  Deploying...")
	fmt.Println()

	ctx, cancel := signalContext()
	defer cancel()

	syncer, err := deploy.NewFromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	syncer.OnProgress = func(key string, size int64) {
		info("%s (%s)", key, formatBytes(size))
	}

	result, err := syncer.Sync(ctx, cfg.OutputPath())
	if err != nil {
		return err
	}

	pruned := 0
	if prune {
		fmt.Println()
		info("Pruning stale objects...")
		pruned, err = syncer.Prune(ctx, result.Keys)
		if err != nil {
			return err
		}
	}

	fmt.Println()
	success("Deployed %d files (%s) to s3://%s", result.Uploaded, formatBytes(result.Bytes), cfg.Deploy.Bucket)
	if pruned > 0 {
		info("Removed %d stale objects", pruned)
	}
	fmt.Println()

	return nil
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
