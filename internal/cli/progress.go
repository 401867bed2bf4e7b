package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"finlearn/internal/progression"
)

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, streak and finance totals",
		Args:  cobra.NoArgs,
		RunE:  a.runStatus,
	}
}

func (a *app) runStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	p := a.engine.Profile()
	s := a.engine.Summary()

	fmt.Fprintln(out, RenderTitle(fmt.Sprintf("Level %d · %s", p.Level, p.LevelName)))
	fmt.Fprintln(out)

	next := "max level"
	if p.NextLevelName != "" {
		next = fmt.Sprintf("%d XP to %s", p.ExperienceToNextLevel, p.NextLevelName)
	}
	lastActive := "never"
	if p.LastActiveDate != nil {
		lastActive = p.LastActiveDate.String()
	}

	fmt.Fprint(out, RenderTable(Table{
		Title: "Progress",
		Rows: [][]string{
			{"Experience", strconv.Itoa(p.Experience)},
			{"Next level", next},
			{"Level progress", RenderProgressBar(p.LevelProgressPercent, 20)},
			{"Streak", fmt.Sprintf("%d days", p.StreakDays)},
			{"Last active", lastActive},
			{"Achievements", fmt.Sprintf("%d/%d", p.AchievementsUnlocked, p.AchievementsTotal)},
			{"Challenges", fmt.Sprintf("%d/%d", p.ChallengesCompleted, p.ChallengesTotal)},
		},
	}))
	fmt.Fprintln(out)

	fmt.Fprint(out, RenderTable(Table{
		Title: "Finances",
		Rows: [][]string{
			{"Income", a.money.Format(s.TotalIncome)},
			{"Expenses", a.money.Format(s.TotalExpenses)},
			{"Balance", a.money.Format(s.Balance)},
			{"Saved", fmt.Sprintf("%s of %s", a.money.Format(s.TotalSaved), a.money.Format(s.TotalTarget))},
			{"Goals reached", fmt.Sprintf("%d/%d", s.CompletedGoals, s.GoalCount)},
			{"SIP invested", a.money.Format(s.TotalInvested)},
			{"SIP maturity", a.money.Format(s.TotalMaturityValue)},
		},
	}))
	return nil
}

func (a *app) achievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and their unlock state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := make([][]string, 0)
			for _, st := range a.engine.Achievements() {
				rows = append(rows, []string{
					st.Icon + " " + st.Name,
					st.Description,
					strconv.Itoa(st.XPReward),
					check(st.Unlocked),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderTable(Table{
				Title:   "Achievements",
				Headers: []string{"Achievement", "Goal", "XP", "Unlocked"},
				Rows:    rows,
			}))
			return nil
		},
	}
}

func (a *app) challengesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenges",
		Short: "List daily, weekly and special challenges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := make([][]string, 0)
			for _, st := range a.engine.Challenges() {
				rows = append(rows, []string{
					st.ID,
					st.Icon + " " + st.Title,
					string(st.Group),
					strconv.Itoa(st.Reward),
					check(st.Completed),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderTable(Table{
				Title:   "Challenges",
				Headers: []string{"ID", "Challenge", "Group", "XP", "Done"},
				Rows:    rows,
			}))
			return nil
		},
	}
}

func (a *app) challengeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge <id>",
		Short: "Mark a challenge complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			before := a.engine.Profile()
			completed, err := a.engine.CompleteChallenge(args[0])
			if err = a.settle(cmd, err); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !completed {
				fmt.Fprintln(out, mutedStyle.Render("Challenge "+args[0]+" was already completed"))
				return nil
			}
			def, _ := progression.LookupChallenge(args[0])
			fmt.Fprintf(out, "Completed %s %s\n", def.Title, RenderXP(progression.ChallengeXP))
			a.printLevelChange(cmd, before)
			return a.touch(cmd)
		},
	}
}

func (a *app) xpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xp <amount>",
		Short: "Grant experience points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			before := a.engine.Profile()
			_, err = a.engine.GrantExperience(amount)
			if err = a.settle(cmd, err); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), RenderXP(amount))
			a.printLevelChange(cmd, before)
			return nil
		},
	}
}

func (a *app) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset erases all progress in %s, rerun with --yes", a.statePath)
			}
			if err := a.settle(cmd, a.engine.Reset()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Progress reset")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}

// printLevelChange announces a level up and any achievements unlocked since
// before was taken.
func (a *app) printLevelChange(cmd *cobra.Command, before progression.Profile) {
	out := cmd.OutOrStdout()
	after := a.engine.Profile()
	if after.Level > before.Level {
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Level up! %d · %s", after.Level, after.LevelName)))
	}
	if after.AchievementsUnlocked == before.AchievementsUnlocked {
		return
	}
	rec := a.engine.Record()
	for _, id := range rec.UnlockedAchievementIDs[before.AchievementsUnlocked:] {
		if def, ok := progression.LookupAchievement(id); ok {
			fmt.Fprintf(out, "Achievement unlocked: %s %s %s\n", def.Icon, def.Name, RenderXP(def.XPReward))
		}
	}
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return "·"
}
