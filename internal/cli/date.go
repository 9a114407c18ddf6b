package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"foundation/internal/app"
	"foundation/internal/core"
)

type dateOptions struct {
	AdditionalDigits int
	Timezone         string
	Timestamp        bool
}

func newDateCommand() *cobra.Command {
	opts := &dateOptions{}
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Parse and format dates",
	}
	cmd.PersistentFlags().IntVar(&opts.AdditionalDigits, "additional-digits", core.DefaultAdditionalDigits, "Extra digits allowed in signed extended years (0-2)")
	cmd.PersistentFlags().StringVar(&opts.Timezone, "timezone", "", "Zone for values without a designator (default host zone)")
	cmd.PersistentFlags().BoolVar(&opts.Timestamp, "timestamp", false, "Treat the value as milliseconds since the epoch")
	_ = viper.BindPFlag("additional_digits", cmd.PersistentFlags().Lookup("additional-digits"))
	_ = viper.BindPFlag("timezone", cmd.PersistentFlags().Lookup("timezone"))

	cmd.AddCommand(newDateParseCommand(opts))
	cmd.AddCommand(newDateISOCommand(opts))
	return cmd
}

func newDateParseCommand(opts *dateOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <value>",
		Short: "Convert a value to an absolute instant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDateParse(cmd.Context(), cmd, *opts, args[0])
		},
	}
}

func newDateISOCommand(opts *dateOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "iso [value]",
		Short: "Format a value, or the current time, as an ISO-8601 string",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 1 {
				value = args[0]
			}
			return runDateISO(cmd.Context(), cmd, *opts, value)
		},
	}
}

func runDateParse(ctx context.Context, cmd *cobra.Command, opts dateOptions, value string) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := service.ParseDate(ctx, app.DateRequest{
		Value:       value,
		AsTimestamp: resolveBool(cmd, opts.Timestamp, "timestamp", "timestamp"),
	})
	if err != nil {
		return err
	}
	if !result.Instant.Valid {
		fmt.Println("Invalid Date")
		return nil
	}
	fmt.Printf("%s %d\n", result.ISO, result.Instant.Millis)
	return nil
}

func runDateISO(ctx context.Context, cmd *cobra.Command, opts dateOptions, value string) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	iso, err := service.FormatDate(ctx, app.DateRequest{
		Value:       value,
		AsTimestamp: resolveBool(cmd, opts.Timestamp, "timestamp", "timestamp"),
	})
	if err != nil {
		return err
	}
	fmt.Println(iso)
	return nil
}
