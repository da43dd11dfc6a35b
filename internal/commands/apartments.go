package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/condo-console/internal/form"
	"github.com/beesaferoot/condo-console/internal/view"
)

func ApartmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apartments",
		Aliases: []string{"apartamentos"},
		Short:   "Manage apartments",
	}
	cmd.AddCommand(
		apartmentsListCmd(),
		apartmentsAddCmd(),
		apartmentsToggleCmd(),
		apartmentsRemoveCmd(),
	)
	return cmd
}

func apartmentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List apartments with their residents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("filter")
			filter, err := view.ParseFilter(raw)
			if err != nil {
				return err
			}

			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			cards, err := c.ApartmentBoard(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			counts := view.CountByFilter(c.Apartments.Items())
			parts := make([]string, 0, len(view.Filters))
			for _, f := range view.Filters {
				parts = append(parts, fmt.Sprintf("%s: %d", f, counts[f]))
			}
			fmt.Fprintln(out, strings.Join(parts, "  "))

			if len(cards) == 0 {
				fmt.Fprintln(out, "No apartments found.")
				return nil
			}

			fmt.Fprintf(out, "%-10s  %-8s  %-8s  %-8s  %s\n", "Number", "Occupied", "Rented", "For sale", "Residents")
			for _, card := range cards {
				names := make([]string, 0, len(card.Residents))
				for _, r := range card.Residents {
					names = append(names, r.Name)
				}
				fmt.Fprintf(out, "%-10s  %-8s  %-8s  %-8s  %s\n",
					card.Apartment.Number,
					yesNo(card.Apartment.Occupied),
					yesNo(card.Apartment.Rented),
					yesNo(card.Apartment.ForSale),
					strings.Join(names, ", "),
				)
			}
			return nil
		},
	}
	cmd.Flags().String("filter", string(view.FilterAll), "Show only all, occupied, rented or forSale apartments")
	return cmd
}

func apartmentsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [number]",
		Short: "Add an apartment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			f := c.ApartmentForm()
			d := f.Draft()
			if err := d.Set(form.ApartmentNumber, args[0]); err != nil {
				return err
			}
			for flag, field := range map[string]string{
				"occupied": form.ApartmentOccupied,
				"rented":   form.ApartmentRented,
				"for-sale": form.ApartmentForSale,
			} {
				v, _ := cmd.Flags().GetBool(flag)
				if err := d.SetBool(field, v); err != nil {
					return err
				}
			}

			if err := f.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added apartment %s (%d apartments)\n", args[0], c.Apartments.Len())
			return nil
		},
	}
	cmd.Flags().Bool("occupied", false, "Mark the apartment as occupied")
	cmd.Flags().Bool("rented", false, "Mark the apartment as rented")
	cmd.Flags().Bool("for-sale", false, "Mark the apartment as for sale")
	return cmd
}

func apartmentsToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [number] [occupied|rented|forSale]",
		Short: "Flip one status flag of an apartment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			if err := c.Apartments.Load(ctx); err != nil {
				return err
			}
			apt, ok := c.Apartments.Get(args[0])
			if !ok {
				return notFound("apartment", args[0])
			}
			if err := c.Apartments.Toggle(ctx, apt, args[1]); err != nil {
				return err
			}

			apt, _ = c.Apartments.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Apartment %s: occupied=%s rented=%s for sale=%s\n",
				apt.Number, yesNo(apt.Occupied), yesNo(apt.Rented), yesNo(apt.ForSale))
			return nil
		},
	}
}

func apartmentsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [number]",
		Short: "Remove an apartment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			removed, err := c.Apartments.Remove(cmd.Context(), args[0])
			return reportRemoval(cmd.OutOrStdout(), "apartment", args[0], removed, err)
		},
	}
}

// parseID checks that key is a server-assigned id.
func parseID(noun, key string) error {
	if _, err := strconv.ParseInt(key, 10, 64); err != nil {
		return fmt.Errorf("invalid %s id %q", noun, key)
	}
	return nil
}
