package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-harvest/internal/harvest"
	"github.com/pdiddy/arxiv-harvest/internal/vocab"
	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest [category]",
	Short: "Harvest metadata records for a category",
	Long: `Harvest retrieves every record in an arXiv category (optionally bounded
by submission dates), following resumption tokens until the stream ends.
The category code is validated against the set vocabulary first.

Filters narrow the result client-side. Each --filter takes the form
field=substring[,substring...]; a record is kept when any substring of
any filter matches the field's value.`,
	Args: cobra.ExactArgs(1),
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().String("from", "", "inclusive start date (YYYY-MM-DD)")
	harvestCmd.Flags().String("until", "", "inclusive end date (YYYY-MM-DD)")
	harvestCmd.Flags().StringArray("filter", nil, "field filter, field=substring[,substring...] (repeatable)")
	harvestCmd.Flags().Duration("timeout", -1, "soft deadline on harvest loop time; partial results are returned")
	harvestCmd.Flags().Duration("wait", 0, "throttle delay when the server sends no Retry-After (default 30s)")
	harvestCmd.Flags().Duration("progress-every", 0, "interval between progress lines (default 90s)")
	harvestCmd.Flags().Bool("json", false, "output records as JSON")
	harvestCmd.Flags().String("output", "", "write records to a YAML harvest file")
	harvestCmd.Flags().Bool("skip-validate", false, "skip category validation against the set vocabulary")

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	category := args[0]

	filterFlags, _ := cmd.Flags().GetStringArray("filter")
	filter, err := parseFilterFlags(filterFlags)
	if err != nil {
		return err
	}

	applyEndpoint()

	client := &http.Client{
		Timeout: viper.GetDuration("http_timeout"),
	}

	skipValidate, _ := cmd.Flags().GetBool("skip-validate")
	if !skipValidate {
		if err := validateCategory(cmd.Context(), client, category); err != nil {
			return err
		}
	}

	opts := harvest.Options{
		Category: category,
		Filter:   filter,
	}
	opts.From, _ = cmd.Flags().GetString("from")
	opts.Until, _ = cmd.Flags().GetString("until")

	opts.Wait, _ = cmd.Flags().GetDuration("wait")
	if opts.Wait == 0 {
		opts.Wait = viper.GetDuration("wait")
	}
	opts.ProgressEvery, _ = cmd.Flags().GetDuration("progress-every")
	if opts.ProgressEvery == 0 {
		opts.ProgressEvery = viper.GetDuration("progress_every")
	}
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout >= 0 {
		opts.Timeout = &timeout
	}

	h := &harvest.Harvester{
		Client:    client,
		UserAgent: viper.GetString("user_agent"),
	}

	records, err := h.Harvest(cmd.Context(), opts, os.Stderr)
	if err != nil {
		return err
	}

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		if err := harvest.WriteHarvestFile(outPath, opts, records); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d records to %s\n", len(records), outPath)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return harvest.FormatJSON(records, os.Stdout)
	}
	harvest.FormatTable(records, os.Stdout)
	return nil
}

// applyEndpoint points the protocol packages at a non-default endpoint
// from config or environment.
func applyEndpoint() {
	if endpoint := viper.GetString("endpoint"); endpoint != "" {
		harvest.APIBase = endpoint
		vocab.APIBase = endpoint
	}
}

// validateCategory checks the code against the remote set vocabulary,
// falling back to the built-in table when the listing is unreachable.
func validateCategory(ctx context.Context, client *http.Client, category string) error {
	cfg := types.VocabConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http_timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
	}
	known, err := vocab.Categories(ctx, client, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: category listing unavailable (%v), using built-in table\n", err)
		known = vocab.Builtin()
	}
	return vocab.Validate(category, known)
}

// parseFilterFlags converts repeated field=sub1,sub2 flags into a Filter.
func parseFilterFlags(flags []string) (harvest.Filter, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	filter := make(harvest.Filter, len(flags))
	for _, f := range flags {
		field, subs, ok := strings.Cut(f, "=")
		if !ok || field == "" || subs == "" {
			return nil, fmt.Errorf("malformed filter %q: want field=substring[,substring...]", f)
		}
		for _, sub := range strings.Split(subs, ",") {
			if sub = strings.TrimSpace(sub); sub != "" {
				filter[field] = append(filter[field], sub)
			}
		}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return filter, nil
}
