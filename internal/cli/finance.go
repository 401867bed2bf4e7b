package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"finlearn/internal/calculator"
	"finlearn/internal/models"
	"finlearn/internal/progression"
)

// entryCmd builds the expense and income commands, which differ only in kind.
func (a *app) entryCmd(kind models.EntryKind) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   string(kind) + " <amount> <description...>",
		Short: "Record a budget " + string(kind),
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}
			before := a.engine.Profile()
			entry, err := a.engine.AddBudgetEntry(models.BudgetEntryInput{
				Category:    models.BudgetCategory(category),
				Amount:      amount,
				Description: strings.Join(args[1:], " "),
				Kind:        kind,
			})
			if err = a.settle(cmd, err); err != nil {
				return err
			}
			_, err = a.engine.CheckBudgetMaster(a.engine.Today())
			if err = a.settle(cmd, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s · %s (%s) %s\n",
				entry.Kind, RenderMoney(a.money.Format(entry.Amount)), entry.Description, entry.Category,
				RenderXP(progression.BudgetEntryXP))
			a.printLevelChange(cmd, before)
			return a.touch(cmd)
		},
	}
	names := make([]string, len(models.BudgetCategories))
	for i, c := range models.BudgetCategories {
		names[i] = string(c)
	}
	cmd.Flags().StringVar(&category, "category", string(models.BudgetCategoryOther),
		"Budget category ("+strings.Join(names, ", ")+")")
	return cmd
}

func (a *app) goalCmd() *cobra.Command {
	goalCmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage savings goals",
	}
	goalCmd.AddCommand(a.goalListCmd(), a.goalAddCmd(), a.goalDepositCmd())
	return goalCmd
}

func (a *app) goalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List savings goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			goals := a.engine.SavingsGoals()
			if len(goals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No savings goals yet"))
				return nil
			}
			rows := make([][]string, 0, len(goals))
			for _, g := range goals {
				deadline := "-"
				if g.Deadline != nil {
					deadline = g.Deadline.String()
				}
				rows = append(rows, []string{
					g.ID,
					g.Name,
					a.money.Format(g.CurrentAmount),
					a.money.Format(g.TargetAmount),
					fmt.Sprintf("%.0f%%", g.ProgressPercent()),
					deadline,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderTable(Table{
				Title:   "Savings goals",
				Headers: []string{"ID", "Goal", "Saved", "Target", "Done", "Deadline"},
				Rows:    rows,
			}))
			return nil
		},
	}
}

func (a *app) goalAddCmd() *cobra.Command {
	var current, deadline string
	cmd := &cobra.Command{
		Use:   "add <name> <target>",
		Short: "Create a savings goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseAmount("target", args[1])
			if err != nil {
				return err
			}
			in := models.SavingsGoalInput{Name: args[0], TargetAmount: target}
			if current != "" {
				if in.CurrentAmount, err = parseAmount("current", current); err != nil {
					return err
				}
			}
			if deadline != "" {
				d, err := civil.ParseDate(deadline)
				if err != nil {
					return fmt.Errorf("invalid deadline %q, expected YYYY-MM-DD", deadline)
				}
				in.Deadline = &d
			}

			before := a.engine.Profile()
			goal, err := a.engine.AddSavingsGoal(in)
			if err = a.settle(cmd, err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created goal %s (%s) target %s %s\n",
				goal.Name, goal.ID, RenderMoney(a.money.Format(goal.TargetAmount)), RenderXP(progression.SavingsGoalXP))
			a.printLevelChange(cmd, before)
			return a.touch(cmd)
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "Amount already saved")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Target date (YYYY-MM-DD)")
	return cmd
}

func (a *app) goalDepositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <id> <amount>",
		Short: "Add money to a savings goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[1])
			if err != nil {
				return err
			}
			before := a.engine.Profile()
			goal, err := a.engine.UpdateSavingsGoalProgress(args[0], amount)
			if err = a.settle(cmd, err); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deposited %s into %s %s\n",
				RenderMoney(a.money.Format(amount)), goal.Name, RenderXP(progression.DepositXP))
			fmt.Fprintf(out, "%s of %s %s\n", a.money.Format(goal.CurrentAmount), a.money.Format(goal.TargetAmount),
				RenderProgressBar(goal.ProgressPercent(), 20))
			a.printLevelChange(cmd, before)
			return a.touch(cmd)
		},
	}
}

func (a *app) investCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invest <monthly> <years> <annual-return-%>",
		Short: "Save a SIP plan and its projected maturity value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseInvestment(args)
			if err != nil {
				return err
			}
			before := a.engine.Profile()
			inv, err := a.engine.AddInvestment(in)
			if err = a.settle(cmd, err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved SIP of %s for %d months, maturity %s %s\n",
				a.money.Format(inv.MonthlyAmount), inv.Months, RenderMoney(a.money.Format(inv.MaturityValue)),
				RenderXP(progression.InvestmentXP))
			a.printLevelChange(cmd, before)
			return a.touch(cmd)
		},
	}
}

func (a *app) sipCmd() *cobra.Command {
	var breakdown int
	cmd := &cobra.Command{
		Use:   "sip <monthly> <years> <annual-return-%>",
		Short: "Project a SIP without saving it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseInvestment(args)
			if err != nil {
				return err
			}
			if err := calculator.CheckYears(in.Years); err != nil {
				return err
			}
			months := calculator.MonthsFromYears(in.Years)
			if months < 1 {
				return errors.New("years must cover at least one month")
			}
			rate := calculator.MonthlyRate(in.AnnualReturnPercent)
			proj, err := calculator.ProjectSIP(in.MonthlyAmount, months, rate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, RenderTable(Table{
				Title: fmt.Sprintf("SIP over %d months", months),
				Rows: [][]string{
					{"Invested", a.money.Format(proj.TotalInvested)},
					{"Gains", a.money.Format(proj.EstimatedGains)},
					{"Maturity", a.money.Format(proj.MaturityValue)},
				},
			}))
			if breakdown <= 0 {
				return nil
			}

			points, err := calculator.SIPBreakdown(in.MonthlyAmount, months, rate, breakdown)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(points))
			for _, pt := range points {
				rows = append(rows, []string{
					strconv.Itoa(pt.Month),
					a.money.Format(pt.Invested),
					a.money.Format(pt.Value),
					a.money.Format(pt.Gains),
				})
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, RenderTable(Table{
				Headers: []string{"Month", "Invested", "Value", "Gains"},
				Rows:    rows,
			}))
			return nil
		},
	}
	cmd.Flags().IntVar(&breakdown, "breakdown", 0, "Show the first N months")
	return cmd
}

// parseInvestment reads <monthly> <years> <annual-return-%>. Range checks are
// left to the calculator and the engine.
func parseInvestment(args []string) (models.InvestmentInput, error) {
	var in models.InvestmentInput
	var err error
	if in.MonthlyAmount, err = parseAmount("monthly amount", args[0]); err != nil {
		return in, err
	}
	if in.Years, err = parseAmount("years", args[1]); err != nil {
		return in, err
	}
	if in.AnnualReturnPercent, err = parseAmount("annual return", args[2]); err != nil {
		return in, err
	}
	return in, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", field, raw)
	}
	return d, nil
}
