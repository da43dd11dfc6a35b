package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/condo-console/internal/form"
)

// employeeFlags maps flag names to draft fields.
var employeeFlags = []struct{ flag, field, usage string }{
	{"name", form.EmployeeName, "Employee name"},
	{"age", form.EmployeeAge, "Employee age"},
	{"role", form.EmployeeRole, "Role, e.g. PORTEIRO"},
	{"salary", form.EmployeeSalary, "Monthly salary, e.g. 2100.50"},
	{"schedule", form.EmployeeSchedule, "Working hours, e.g. 07:00-19:00"},
}

func EmployeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"funcionarios"},
		Short:   "Manage employees",
	}
	cmd.AddCommand(
		employeesListCmd(),
		employeesAddCmd(),
		employeesEditCmd(),
		employeesRemoveCmd(),
	)
	return cmd
}

func employeesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Employees.Load(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			employees := c.Employees.Items()
			if len(employees) == 0 {
				fmt.Fprintln(out, "No employees found.")
				return nil
			}
			fmt.Fprintf(out, "%-6s  %-24s  %-4s  %-16s  %10s  %s\n", "ID", "Name", "Age", "Role", "Salary", "Schedule")
			for _, e := range employees {
				fmt.Fprintf(out, "%-6d  %-24s  %-4d  %-16s  %10s  %s\n", e.ID, e.Name, e.Age, e.Role, e.Salary.StringFixed(2), e.Schedule)
			}
			return nil
		},
	}
}

func employeesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			f := c.EmployeeForm()
			for _, ef := range employeeFlags {
				v, _ := cmd.Flags().GetString(ef.flag)
				if err := f.Draft().Set(ef.field, v); err != nil {
					return err
				}
			}

			if err := f.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added employee (%d employees)\n", c.Employees.Len())
			return nil
		},
	}
	for _, ef := range employeeFlags {
		cmd.Flags().String(ef.flag, "", ef.usage)
	}
	return cmd
}

func employeesEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change fields of an existing employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parseID("employee", args[0]); err != nil {
				return err
			}
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			if err := c.Employees.Load(ctx); err != nil {
				return err
			}
			emp, ok := c.Employees.Get(args[0])
			if !ok {
				return notFound("employee", args[0])
			}

			f := c.EmployeeForm()
			if err := f.Edit(emp); err != nil {
				return err
			}
			changed := 0
			for _, ef := range employeeFlags {
				if !cmd.Flags().Changed(ef.flag) {
					continue
				}
				v, _ := cmd.Flags().GetString(ef.flag)
				if err := f.Draft().Set(ef.field, v); err != nil {
					return err
				}
				changed++
			}
			if changed == 0 {
				f.Cancel()
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to change.")
				return nil
			}

			if err := f.Submit(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated employee %s\n", args[0])
			return nil
		},
	}
	for _, ef := range employeeFlags {
		cmd.Flags().String(ef.flag, "", ef.usage)
	}
	return cmd
}

func employeesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parseID("employee", args[0]); err != nil {
				return err
			}
			c, _, err := getConsole(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			removed, err := c.Employees.Remove(cmd.Context(), args[0])
			return reportRemoval(cmd.OutOrStdout(), "employee", args[0], removed, err)
		},
	}
}
