package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func RelationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relations",
		Short: "Report apartments and residents whose links disagree",
		Long:  `Compares the residents listed on each apartment with the apartments listed on each resident. The service maintains both lists; this command only reports where they differ and never changes either side.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			drift, err := c.Drift(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(drift) == 0 {
				fmt.Fprintln(out, "Apartments and residents agree.")
				return nil
			}
			fmt.Fprintf(out, "%-10s  %-8s  %s\n", "Apartment", "Resident", "Listed only by")
			for _, d := range drift {
				side := "resident"
				if d.ListedByApartment {
					side = "apartment"
				}
				fmt.Fprintf(out, "%-10s  %-8d  %s\n", d.Apartment, d.ResidentID, side)
			}
			return nil
		},
	}
}
