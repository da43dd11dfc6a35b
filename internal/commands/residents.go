package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/condo-console/internal/form"
	"github.com/beesaferoot/condo-console/internal/model"
	"github.com/beesaferoot/condo-console/internal/view"
)

func ResidentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "residents",
		Aliases: []string{"moradores"},
		Short:   "Manage residents",
	}
	cmd.AddCommand(
		residentsListCmd(),
		residentsShowCmd(),
		residentsAddCmd(),
		residentsRemoveCmd(),
	)
	return cmd
}

func refsString(refs model.ApartmentRefs) string {
	parts := make([]string, 0, len(refs))
	for _, n := range refs {
		parts = append(parts, n.String())
	}
	return strings.Join(parts, ", ")
}

func residentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List residents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Residents.Load(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			residents := c.Residents.Items()
			if len(residents) == 0 {
				fmt.Fprintln(out, "No residents found.")
				return nil
			}
			fmt.Fprintf(out, "%-6s  %-30s  %-4s  %s\n", "ID", "Name", "Age", "Apartments")
			for _, r := range residents {
				fmt.Fprintf(out, "%-6d  %-30s  %-4d  %s\n", r.ID, r.Name, r.Age, refsString(r.ApartmentNumbers))
			}
			return nil
		},
	}
}

func residentsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a resident with their apartments and accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parseID("resident", args[0]); err != nil {
				return err
			}
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Refresh(cmd.Context(), c.Apartments.Entity(), c.Residents.Entity(), c.Accounts.Entity()); err != nil {
				return err
			}
			r, ok := c.Residents.Get(args[0])
			if !ok {
				return notFound("resident", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Resident %d: %s, %d years\n", r.ID, r.Name, r.Age)

			apts := view.ApartmentsOfResident(r, c.Apartments.Items())
			fmt.Fprintf(out, "Apartments (%d):\n", len(apts))
			for _, a := range apts {
				fmt.Fprintf(out, "  %-10s  occupied=%s rented=%s\n", a.Number, yesNo(a.Occupied), yesNo(a.Rented))
			}

			accounts := view.AccountsOfResident(c.Accounts.Items(), r.ID)
			fmt.Fprintf(out, "Accounts (%d), pending total %s:\n", len(accounts), view.PendingTotal(accounts).StringFixed(2))
			for _, a := range accounts {
				fmt.Fprintf(out, "  %-6d  %12s  %-8s  %s\n", a.ID, a.Amount.StringFixed(2), a.Status(), a.ApartmentNumber)
			}
			return nil
		},
	}
}

func residentsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a resident",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			f := c.ResidentForm()
			for flag, field := range map[string]string{
				"name":       form.ResidentName,
				"age":        form.ResidentAge,
				"apartments": form.ResidentApartments,
			} {
				v, _ := cmd.Flags().GetString(flag)
				if err := f.Draft().Set(field, v); err != nil {
					return err
				}
			}

			if err := f.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added resident (%d residents)\n", c.Residents.Len())
			return nil
		},
	}
	cmd.Flags().String("name", "", "Resident name")
	cmd.Flags().String("age", "", "Resident age")
	cmd.Flags().String("apartments", "", `Comma-separated apartment numbers, e.g. "101, 102"`)
	return cmd
}

func residentsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a resident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parseID("resident", args[0]); err != nil {
				return err
			}
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			removed, err := c.Residents.Remove(cmd.Context(), args[0])
			return reportRemoval(cmd.OutOrStdout(), "resident", args[0], removed, err)
		},
	}
}
