package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dex-api/internal/redis"
	"github.com/KirkDiggler/dex-api/internal/repositories/payload"
)

var dryRun bool

var payloadCmd = &cobra.Command{
	Use:   "payload",
	Short: "Maintain the stored offline payloads",
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete stored snapshots that no longer decode",
	Long:  `Scan every snapshot under the configured key prefix in Redis and delete the ones that fail to decode.`,
	Args:  cobra.NoArgs,
	RunE:  runPrune,
}

func init() {
	pruneCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report corrupt snapshots without deleting them")
	payloadCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Payload.RedisEndpoint == "" {
		return fmt.Errorf("payload.redis_endpoint is not configured")
	}

	client, err := redis.Connect(cmd.Context(), cfg.Payload.RedisEndpoint, redisConnectTimeout, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer client.Close()

	out, err := payload.Prune(cmd.Context(), payload.PruneInput{
		Client:    client,
		KeyPrefix: cfg.Payload.KeyPrefix,
		DryRun:    dryRun,
	})
	if err != nil {
		return fmt.Errorf("failed to prune payloads: %w", err)
	}

	log.Info("payload scan complete",
		"checked", out.Checked,
		"corrupt", len(out.Corrupt),
		"deleted", out.Deleted)

	w := cmd.OutOrStdout()
	for _, key := range out.Corrupt {
		fmt.Fprintf(w, "corrupt: %s\n", key)
	}
	fmt.Fprintf(w, "checked %d, corrupt %d, deleted %d\n", out.Checked, len(out.Corrupt), out.Deleted)
	return nil
}
