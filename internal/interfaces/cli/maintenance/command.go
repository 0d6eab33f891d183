// Package maintenance holds operator commands meant for cron or manual runs.
package maintenance

import (
	"fmt"

	"github.com/spf13/cobra"

	ticketUsecases "github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/bootstrap"
)

var (
	opts          bootstrap.Options
	olderThanDays int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Operator maintenance tasks",
	}

	opts.BindFlags(cmd)
	cmd.AddCommand(newPurgeCommentsCommand())

	return cmd
}

func newPurgeCommentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge-comments",
		Short: "Hard-delete comments soft-deleted more than N days ago",
		Long: `Remove comments that were soft-deleted longer ago than the retention window.
Defaults to tickets.comment_retention_days; a value of zero keeps everything.`,
		RunE: runPurgeComments,
	}

	cmd.Flags().IntVar(&olderThanDays, "older-than-days", -1, "Retention window in days (default: tickets.comment_retention_days)")

	return cmd
}

func runPurgeComments(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Init(opts, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	days := olderThanDays
	if !cmd.Flags().Changed("older-than-days") {
		days = rt.Config.Tickets.CommentRetentionDays
	}
	if days < 0 {
		return fmt.Errorf("--older-than-days must not be negative")
	}
	if days == 0 {
		rt.Log.Infow("comment retention disabled, nothing to purge")
		return nil
	}

	uc := ticketUsecases.NewPurgeDeletedCommentsUseCase(repository.NewCommentRepository(rt.DB), days, rt.Log)
	n, err := uc.Execute(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to purge comments: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Purged %d comment(s) deleted more than %d day(s) ago\n", n, days)
	return nil
}
