package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/PowerPress/npk/internal/awsapi"
	"github.com/PowerPress/npk/internal/deploy"
	s3store "github.com/PowerPress/npk/internal/platform/s3"
	"github.com/PowerPress/npk/internal/preflight"
)

// DeployOptions carries the deploy command's flags.
type DeployOptions struct {
	SettingsPath string
	Tool         string
	ToolArgs     []string
	WorkDir      string
	S3Bucket     string
	NoCache      bool
	CachePath    string
	Plain        bool
}

// Deploy runs the full preflight pipeline and, on success, archives the
// snapshot if requested and hands it to the IaC tool. A failed preflight
// aborts before any infrastructure is touched.
func Deploy(ctx context.Context, opts DeployOptions) error {
	snapshot, err := Preflight(ctx, PreflightOptions{
		SettingsPath: opts.SettingsPath,
		NoCache:      opts.NoCache,
		CachePath:    opts.CachePath,
		Plain:        opts.Plain,
	})
	if err != nil {
		return err
	}

	if opts.S3Bucket != "" {
		if err := archiveSnapshot(ctx, opts.S3Bucket, snapshot); err != nil {
			return err
		}
	}

	sink := &deploy.ExecSink{
		Command: opts.Tool,
		Args:    opts.ToolArgs,
		WorkDir: opts.WorkDir,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	if err := sink.Deploy(ctx, snapshot); err != nil {
		return err
	}

	fmt.Println("Deployment complete.")
	return nil
}

// archiveSnapshot uploads the gating snapshot for audit.
func archiveSnapshot(ctx context.Context, bucket string, snapshot *preflight.Snapshot) error {
	cfg, err := awsapi.LoadConfig(ctx, snapshot.Settings.AWSProfile, snapshot.Settings.PrimaryRegion)
	if err != nil {
		return err
	}

	store := s3store.NewStoreFromConfig(cfg, bucket)
	if err := store.EnsureBucket(ctx); err != nil {
		return err
	}
	key, err := store.PutSnapshot(ctx, snapshot)
	if err != nil {
		return err
	}
	fmt.Printf("Archived snapshot to s3://%s/%s\n", bucket, key)
	return nil
}
