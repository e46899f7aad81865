package main

import (
	"github.com/spf13/cobra"

	"github.com/rmarin/voltcli/internal/ledger"
)

func registerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Provision a wallet identity and print its lightning address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.walletService()
			if err != nil {
				return err
			}
			address, err := svc.Register(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(map[string]string{"address": address})
		},
	}
}

func balanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the wallet balance in sats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.walletService()
			if err != nil {
				return err
			}
			balance, err := svc.Balance(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(map[string]int64{"balance_sats": balance})
		},
	}
}

func sendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send <destination> [amount-sats]",
		Short: "Pay a bolt11 invoice, lnurl, @gamertag, or lightning address",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.walletService()
			if err != nil {
				return err
			}
			amount := ""
			if len(args) == 2 {
				amount = args[1]
			}
			record, err := svc.Send(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}
			return printJSON(record)
		},
	}
}

func receiveCmd(a *app) *cobra.Command {
	var amount, description string
	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Create an invoice to receive sats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.walletService()
			if err != nil {
				return err
			}
			result, err := svc.Receive(cmd.Context(), amount, description)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "amount in sats")
	cmd.Flags().StringVar(&description, "desc", "", "invoice description")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func chargeCmd(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "charge",
		Short: "Create a reusable static charge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.walletService()
			if err != nil {
				return err
			}
			charge, err := svc.CreateStaticCharge(cmd.Context(), description)
			if err != nil {
				return err
			}
			return printJSON(charge)
		},
	}
	cmd.Flags().StringVar(&description, "desc", "", "charge description")
	return cmd
}

func historyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the local payment ledger in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.ledgerStore()
			if err != nil {
				return err
			}
			records := store.ReadAll(cmd.Context())
			if records == nil {
				records = []ledger.Record{}
			}
			return printJSON(records)
		},
	}
}

func detailCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <payment-id>",
		Short: "Look up a payment, local ledger first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.walletService()
			if err != nil {
				return err
			}
			record, err := svc.Detail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(record)
		},
	}
}

func withdrawCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Create and inspect withdraw links",
	}

	var amount, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a withdraw link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.walletService()
			if err != nil {
				return err
			}
			link, err := svc.CreateWithdraw(cmd.Context(), amount, description)
			if err != nil {
				return err
			}
			return printJSON(link)
		},
	}
	create.Flags().StringVar(&amount, "amount", "", "amount in sats")
	create.Flags().StringVar(&description, "desc", "", "withdraw description")
	_ = create.MarkFlagRequired("amount")

	status := &cobra.Command{
		Use:   "status <withdraw-id>",
		Short: "Fetch the state of a withdraw link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.walletService()
			if err != nil {
				return err
			}
			link, err := svc.WithdrawStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(link)
		},
	}

	cmd.AddCommand(create, status)
	return cmd
}
