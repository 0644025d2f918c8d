package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/antinvestor/bkash-api"
	"github.com/antinvestor/bkash-api/config"
	"github.com/antinvestor/bkash-api/service/models"
	"github.com/pitabwire/frame"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type clientFactory func() (*bkash.Client, error)

func newRootCmd() *cobra.Command {
	var verbose bool
	var timeout time.Duration

	rootCmd := &cobra.Command{
		Use:           "bkashctl",
		Short:         "Operator tool for the bKash tokenized checkout API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log retries and gateway errors")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall deadline for the command")

	factory := func() (*bkash.Client, error) {
		return clientFromEnv(verbose)
	}

	rootCmd.AddCommand(tokenCmd(factory, &timeout))
	rootCmd.AddCommand(queryCmd(factory, &timeout))
	rootCmd.AddCommand(searchCmd(factory, &timeout))
	rootCmd.AddCommand(refundStatusCmd(factory, &timeout))

	return rootCmd
}

// clientFromEnv reads the same BKASH_* variables as the service.
func clientFromEnv(verbose bool) (*bkash.Client, error) {
	bkashConfig, err := frame.ConfigFromEnv[config.BkashConfig]()
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return bkash.New(bkashConfig.ClientConfig(), bkash.WithLogger(logrus.NewEntry(logger)))
}

func tokenCmd(factory clientFactory, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Grant a fresh access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, factory, *timeout, func(ctx context.Context, client *bkash.Client) (any, error) {
				return client.GrantToken(ctx)
			})
		},
	}
}

func queryCmd(factory clientFactory, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "query [paymentID]",
		Short: "Query the status of a checkout payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, factory, *timeout, func(ctx context.Context, client *bkash.Client) (any, error) {
				return client.QueryPayment(ctx, args[0])
			})
		},
	}
}

func searchCmd(factory clientFactory, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "search [trxID]",
		Short: "Search a completed transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, factory, *timeout, func(ctx context.Context, client *bkash.Client) (any, error) {
				return client.SearchTransactionLegacy(ctx, args[0])
			})
		},
	}
}

func refundStatusCmd(factory clientFactory, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "refund-status [paymentID] [trxID]",
		Short: "Show the refunds issued against a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, factory, *timeout, func(ctx context.Context, client *bkash.Client) (any, error) {
				return client.CheckRefundStatus(ctx, models.RefundStatusRequest{PaymentID: args[0], TrxID: args[1]})
			})
		},
	}
}

func withClient(
	cmd *cobra.Command,
	factory clientFactory,
	timeout time.Duration,
	run func(ctx context.Context, client *bkash.Client) (any, error),
) error {
	client, err := factory()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result, err := run(ctx, client)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
