package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/discochess/dataservice"
)

var demoCmd = &cobra.Command{
	Use:   "demo [payload]",
	Short: "Save a payload, read it back and toggle the feature gate",
	Long: `Run the reference scenario against the configured stack:

  1. save the payload and retrieve it
  2. show the raw value held by the base store
  3. disable the gate and attempt another save
  4. re-enable the gate and retrieve again
  5. print cache statistics, if the stack has a cache`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	payload := "hello"
	if len(args) == 1 {
		payload = args[0]
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	client, err := newClient(log, nil)
	if err != nil {
		return err
	}
	defer client.Close()

	return demo(cmd.Context(), cmd.OutOrStdout(), client, payload)
}

func demo(ctx context.Context, w io.Writer, client *dataservice.Client, payload string) error {
	fmt.Fprintf(w, "Layers:    %v\n", client.Layers())

	id, err := client.Save(ctx, payload)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	fmt.Fprintf(w, "Saved:     %s\n", id)

	got, ok, err := client.Retrieve(ctx, id)
	if err != nil {
		return fmt.Errorf("retrieve: %w", err)
	}
	fmt.Fprintf(w, "Retrieved: %q (found=%v)\n", got, ok)

	raw, _ := client.Base().Raw(id)
	fmt.Fprintf(w, "Raw:       %q\n", raw)

	if gate := client.Gate(); gate != nil {
		gate.Disable()
		_, err := client.Save(ctx, payload)
		switch {
		case errors.Is(err, dataservice.ErrFeatureDisabled):
			fmt.Fprintf(w, "Gated:     %v\n", err)
		case err != nil:
			return fmt.Errorf("save while disabled: %w", err)
		default:
			return errors.New("save succeeded while the gate was disabled")
		}
		gate.Enable()

		got, ok, err = client.Retrieve(ctx, id)
		if err != nil {
			return fmt.Errorf("retrieve after enable: %w", err)
		}
		fmt.Fprintf(w, "Reopened:  %q (found=%v)\n", got, ok)
	}

	if cache := client.Cache(); cache != nil {
		st := cache.Stats()
		fmt.Fprintf(w, "Cache:     %d entries, %d hits, %d misses, %.2f hit rate\n",
			st.Size, st.Hits, st.Misses, st.HitRate())
	}
	return nil
}
