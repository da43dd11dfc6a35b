package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/condo-console/internal/config"
	"github.com/beesaferoot/condo-console/internal/snapshot"
)

func SnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and inspect offline copies of every collection",
	}
	cmd.AddCommand(
		snapshotSaveCmd(),
		snapshotHistoryCmd(),
		snapshotShowCmd(),
		snapshotStatusCmd(),
	)
	return cmd
}

func snapshotSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Load every collection and store a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			snaps, err := getSnapshotStore(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := c.Refresh(ctx); err != nil {
				return err
			}
			record, err := snaps.Save(ctx, snapshot.Snapshot{
				Source:     cfg.APIURL,
				Apartments: c.Apartments.Items(),
				Residents:  c.Residents.Items(),
				Accounts:   c.Accounts.Items(),
				Employees:  c.Employees.Items(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %s: %d apartments, %d residents, %d accounts, %d employees\n",
				record.ID, record.Apartments, record.Residents, record.Accounts, record.Employees)
			return nil
		},
	}
}

func snapshotHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			snaps, err := getSnapshotStore(config.LoadSnapshot())
			if err != nil {
				return err
			}
			records, err := snaps.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No snapshots have been saved yet.")
				return nil
			}
			fmt.Fprintf(out, "%-36s  %-24s  %5s  %5s  %5s  %5s\n", "ID", "Taken At", "Apts", "Res", "Accts", "Emps")
			for _, r := range records {
				fmt.Fprintf(out, "%-36s  %-24s  %5d  %5d  %5d  %5d\n",
					r.ID, r.TakenAt.Format(time.RFC3339), r.Apartments, r.Residents, r.Accounts, r.Employees)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of snapshots to show, 0 for all")
	return cmd
}

func snapshotShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print the content of a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := getSnapshotStore(config.LoadSnapshot())
			if err != nil {
				return err
			}
			snap, err := snaps.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Snapshot %s taken %s from %s\n", args[0], snap.TakenAt.Format(time.RFC3339), snap.Source)
			fmt.Fprintf(out, "Apartments (%d):\n", len(snap.Apartments))
			for _, a := range snap.Apartments {
				fmt.Fprintf(out, "  %-10s  occupied=%s rented=%s for sale=%s\n", a.Number, yesNo(a.Occupied), yesNo(a.Rented), yesNo(a.ForSale))
			}
			fmt.Fprintf(out, "Residents (%d):\n", len(snap.Residents))
			for _, r := range snap.Residents {
				fmt.Fprintf(out, "  %-6d  %-30s  %s\n", r.ID, r.Name, refsString(r.ApartmentNumbers))
			}
			fmt.Fprintf(out, "Accounts (%d):\n", len(snap.Accounts))
			for _, a := range snap.Accounts {
				fmt.Fprintf(out, "  %-6d  %12s  %-8s  %s\n", a.ID, a.Amount.StringFixed(2), a.Status(), a.ApartmentNumber)
			}
			fmt.Fprintf(out, "Employees (%d):\n", len(snap.Employees))
			for _, e := range snap.Employees {
				fmt.Fprintf(out, "  %-6d  %-24s  %s\n", e.ID, e.Name, e.Role)
			}
			return nil
		},
	}
}

func snapshotStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied snapshot schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := getSnapshotStore(config.LoadSnapshot())
			if err != nil {
				return err
			}
			records, err := snapshot.Applied(snaps.DB())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-16s  %-30s  %-24s\n", "Version", "Name", "Applied At")
			for _, record := range records {
				fmt.Fprintf(out, "%-16s  %-30s  %-24s\n", record.Version, record.Name, record.AppliedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}
