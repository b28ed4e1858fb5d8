package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/infrastructure/pubsub"
	"github.com/assetdesk/assetdesk/internal/interfaces/cli/bootstrap"
)

var (
	flags     bootstrap.Flags
	eventType string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail asset lifecycle events",
		Long:  `Subscribe to the Redis asset event channel and print each event as a JSON line until interrupted.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&flags.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&eventType, "type", "t", "", "Only print events of this type (attached, detached, retire_requested, retired, retire_rejected)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Load(flags)
	if err != nil {
		return err
	}
	if !cfg.Redis.Enabled {
		return errors.New("redis is disabled; events are only written to the server log")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	pingCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := pubsub.NewRedisAssetEventBus(client, cfg.Events.Channel, log.Named("events"))
	err = bus.Subscribe(ctx, printer(cmd.OutOrStdout(), asset.EventType(eventType)))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// printer writes matching events as JSON lines.
func printer(w io.Writer, only asset.EventType) func(asset.Event) {
	enc := json.NewEncoder(w)
	return func(event asset.Event) {
		if only != "" && event.Type != only {
			return
		}
		if err := enc.Encode(event); err != nil {
			fmt.Fprintln(os.Stderr, "failed to write event:", err)
		}
	}
}
