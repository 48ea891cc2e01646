package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matt-g-everett/ledtx/stream"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Stream the profile until interrupted",
	Long: `Run renders the configured profile at the configured frame rate and
publishes every frame to the stream topic. JSON objects published to the data
topic update the data model that data bound properties read from. The
profile is saved when the streamer stops.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runStream(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

type app struct {
	workspace  *workspace
	client     mqtt.Client
	streamer   *stream.Streamer
	controller *stream.Controller
}

func (a *app) handleOnConnect(_ mqtt.Client) {
	slog.Info("connected", "broker", a.workspace.config.Mqtt.URL)
	if err := a.streamer.Subscribe(); err != nil {
		slog.Error("failed to subscribe", "error", err)
	}
}

func runStream(ctx context.Context) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.profile.Dispose()

	a := &app{workspace: w}
	a.client = mqtt.NewClient(stream.ClientOptions(w.config, a.handleOnConnect))
	a.streamer = stream.NewStreamer(w.config, a.client, w.model, slog.Default())
	a.controller = stream.NewController(w.profile, w.brushes, w.config.Pixels, w.config.FrameInterval(), slog.Default())

	if token := a.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to %s: %w", w.config.Mqtt.URL, token.Error())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.controller.Run(gctx, a.streamer)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.client.Disconnect(250)
		slog.Info("disconnected")
		return nil
	})

	runErr := g.Wait()
	if err := w.save(); err != nil {
		slog.Error("failed to save profile", "error", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}
