package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/condo-console/internal/form"
	"github.com/beesaferoot/condo-console/internal/model"
	"github.com/beesaferoot/condo-console/internal/view"
)

func AccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"contas"},
		Short:   "Manage recurring accounts",
	}
	cmd.AddCommand(
		accountsListCmd(),
		accountsAddCmd(),
		accountsToggleCmd(),
		accountsRemoveCmd(),
	)
	return cmd
}

func accountsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("status")
			status, err := view.ParseAccountStatus(raw)
			if err != nil {
				return err
			}
			apartment, _ := cmd.Flags().GetString("apartment")

			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Accounts.Load(cmd.Context()); err != nil {
				return err
			}

			accounts := view.FilterAccounts(c.Accounts.Items(), status)
			if apartment != "" {
				accounts = view.AccountsOfApartment(accounts, model.ApartmentNumber(apartment))
			}

			out := cmd.OutOrStdout()
			if len(accounts) == 0 {
				fmt.Fprintln(out, "No accounts found.")
				return nil
			}
			fmt.Fprintf(out, "%-6s  %12s  %-8s  %-8s  %s\n", "ID", "Amount", "Status", "Resident", "Apartment")
			for _, a := range accounts {
				fmt.Fprintf(out, "%-6d  %12s  %-8s  %-8d  %s\n", a.ID, a.Amount.StringFixed(2), a.Status(), a.ResidentID, a.ApartmentNumber)
			}
			fmt.Fprintf(out, "Pending total: %s\n", view.PendingTotal(accounts).StringFixed(2))
			return nil
		},
	}
	cmd.Flags().String("status", string(view.AccountsAll), "Show only all, pending or settled accounts")
	cmd.Flags().String("apartment", "", "Show only accounts of this apartment")
	return cmd
}

func accountsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			f := c.AccountForm()
			d := f.Draft()
			for flag, field := range map[string]string{
				"amount":    form.AccountAmount,
				"resident":  form.AccountResident,
				"apartment": form.AccountApartment,
			} {
				v, _ := cmd.Flags().GetString(flag)
				if err := d.Set(field, v); err != nil {
					return err
				}
			}
			pending, _ := cmd.Flags().GetBool("pending")
			if err := d.SetBool(form.AccountPending, pending); err != nil {
				return err
			}

			if err := f.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added account (%d accounts)\n", c.Accounts.Len())
			return nil
		},
	}
	cmd.Flags().String("amount", "", "Amount, e.g. 150.00")
	cmd.Flags().Bool("pending", true, "Whether the account is still pending")
	cmd.Flags().String("resident", "", "Resident id")
	cmd.Flags().String("apartment", "", "Apartment number")
	return cmd
}

func accountsToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id]",
		Short: "Flip an account between pending and settled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parseID("account", args[0]); err != nil {
				return err
			}
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			if err := c.Accounts.Load(ctx); err != nil {
				return err
			}
			acc, ok := c.Accounts.Get(args[0])
			if !ok {
				return notFound("account", args[0])
			}
			if err := c.Accounts.Toggle(ctx, acc, model.FieldPending); err != nil {
				return err
			}

			acc, _ = c.Accounts.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Account %d is now %s\n", acc.ID, acc.Status())
			return nil
		},
	}
}

func accountsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parseID("account", args[0]); err != nil {
				return err
			}
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			removed, err := c.Accounts.Remove(cmd.Context(), args[0])
			return reportRemoval(cmd.OutOrStdout(), "account", args[0], removed, err)
		},
	}
}
