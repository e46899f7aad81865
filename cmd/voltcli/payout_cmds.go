package main

import (
	"github.com/spf13/cobra"

	"github.com/rmarin/voltcli/internal/payout"
	"github.com/rmarin/voltcli/pkg/msats"
)

func payoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payout",
		Short: "Manage on-chain Bitcoin payouts",
	}

	var quoteAmount, quoteAddress, quoteNetwork string
	quote := &cobra.Command{
		Use:   "quote",
		Short: "Fetch a fee quote for an on-chain payout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amountSats, err := msats.ParseSats(quoteAmount)
			if err != nil {
				return err
			}
			engine, err := a.payoutEngine()
			if err != nil {
				return err
			}
			result, err := engine.Quote(cmd.Context(), payout.QuoteInput{
				AmountSats: amountSats,
				Address:    quoteAddress,
				Network:    quoteNetwork,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	quote.Flags().StringVar(&quoteAmount, "amount", "", "amount in sats")
	quote.Flags().StringVar(&quoteAddress, "address", "", "destination bitcoin address")
	quote.Flags().StringVar(&quoteNetwork, "network", "bitcoin", "target network")
	_ = quote.MarkFlagRequired("amount")
	_ = quote.MarkFlagRequired("address")

	var createAmount, createAddress, createNetwork, createQuoteID string
	var acceptTerms bool
	create := &cobra.Command{
		Use:   "create",
		Short: "Enqueue an on-chain payout (requires --i-accept-terms)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amountSats, err := msats.ParseSats(createAmount)
			if err != nil {
				return err
			}
			engine, err := a.payoutEngine()
			if err != nil {
				return err
			}
			projection, err := engine.Create(cmd.Context(), payout.CreateInput{
				AmountSats:  amountSats,
				Address:     createAddress,
				Network:     createNetwork,
				QuoteID:     createQuoteID,
				AcceptTerms: acceptTerms,
			})
			if err != nil {
				return err
			}
			return printJSON(projection)
		},
	}
	create.Flags().StringVar(&createAmount, "amount", "", "amount in sats")
	create.Flags().StringVar(&createAddress, "address", "", "destination bitcoin address")
	create.Flags().StringVar(&createNetwork, "network", "bitcoin", "target network")
	create.Flags().StringVar(&createQuoteID, "quote-id", "", "previously fetched quote id")
	create.Flags().BoolVar(&acceptTerms, "i-accept-terms", false, "accept the on-chain payout terms")
	_ = create.MarkFlagRequired("amount")
	_ = create.MarkFlagRequired("address")

	status := &cobra.Command{
		Use:   "status <payout-id>",
		Short: "Fetch the state of a payout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.payoutEngine()
			if err != nil {
				return err
			}
			projection, err := engine.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(projection)
		},
	}

	retry := &cobra.Command{
		Use:   "retry <payout-id>",
		Short: "Ask the upstream to retry the claim for a payout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.payoutEngine()
			if err != nil {
				return err
			}
			projection, err := engine.RetryClaim(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(projection)
		},
	}

	cmd.AddCommand(quote, create, status, retry)
	return cmd
}
