package main

import (
	"github.com/spf13/cobra"

	"github.com/rmarin/voltcli/internal/paylink"
	"github.com/rmarin/voltcli/pkg/msats"
)

func paylinkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paylink",
		Short: "Manage hosted checkout pages",
	}

	var amount, description, internalID string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a paylink (omit --amount for a variable-amount link)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var amountSats int64
			if amount != "" {
				var err error
				amountSats, err = msats.ParseSats(amount)
				if err != nil {
					return err
				}
			}
			engine, err := a.paylinkEngine()
			if err != nil {
				return err
			}
			projection, err := engine.Create(cmd.Context(), paylink.CreateInput{
				AmountSats:  amountSats,
				Description: description,
				InternalID:  internalID,
			})
			if err != nil {
				return err
			}
			return printJSON(projection)
		},
	}
	create.Flags().StringVar(&amount, "amount", "", "amount in sats, empty for variable")
	create.Flags().StringVar(&description, "desc", "", "checkout page description")
	create.Flags().StringVar(&internalID, "internal-id", "", "caller-side correlation id")

	get := &cobra.Command{
		Use:   "get <paylink-id>",
		Short: "Fetch one paylink and reconcile its settlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.paylinkEngine()
			if err != nil {
				return err
			}
			projection, err := engine.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(projection)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every paylink",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.paylinkEngine()
			if err != nil {
				return err
			}
			projections, err := engine.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(projections)
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel <paylink-id>",
		Short: "Cancel a paylink",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.paylinkEngine()
			if err != nil {
				return err
			}
			projection, err := engine.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(projection)
		},
	}

	cmd.AddCommand(create, get, list, cancel)
	return cmd
}
