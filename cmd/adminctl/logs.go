package main

import (
	"strings"

	"github.com/spf13/cobra"

	"console/internal/domain"
	"console/internal/export"
	"console/internal/listing"
	"console/internal/present"
)

type logsFlags struct {
	page   int
	limit  int
	typ    string
	search string
}

func (f *logsFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 0, "zero-based page number")
	cmd.Flags().IntVar(&f.limit, "limit", listing.DefaultLimit, "rows per page")
	cmd.Flags().StringVar(&f.typ, "type", "all", "activity type (all, LOGIN, CREATE, UPDATE, DELETE)")
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "filter by description, type or ip")
}

func (e *cliEnv) fetchLogs(cmd *cobra.Command, f logsFlags) ([]domain.ActivityLog, error) {
	page := listing.NewPage(f.page, f.limit)
	typ := strings.ToUpper(strings.TrimSpace(f.typ))
	if typ == "ALL" {
		typ = ""
	}
	logs, err := e.api.RecentActivities(cmd.Context(), domain.ActivityQuery{
		Skip:         ptr(page.Skip()),
		Limit:        ptr(page.Limit),
		ActivityType: typ,
	})
	if err != nil {
		return nil, err
	}
	return listing.Filter(logs, f.search,
		func(l domain.ActivityLog) string { return l.Description },
		func(l domain.ActivityLog) string { return l.ActivityType },
		func(l domain.ActivityLog) string { return l.IPAddress },
	), nil
}

func newLogsCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{Use: "logs", Short: "Read the activity log"}
	cmd.AddCommand(newLogsListCmd(env), newLogsExportCmd(env))
	return cmd
}

func newLogsListCmd(env *cliEnv) *cobra.Command {
	var f logsFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logs, err := env.fetchLogs(cmd, f)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(logs))
			for _, l := range logs {
				rows = append(rows, []string{
					present.RelativeTimestamp(l.CreatedAt, env.now()),
					present.ActivityBadge(l.ActivityType).Label, l.Description, l.IPAddress,
				})
			}
			return table(cmd.OutOrStdout(), []string{"when", "type", "description", "ip"}, rows)
		},
	}
	f.bind(cmd)
	return cmd
}

func newLogsExportCmd(env *cliEnv) *cobra.Command {
	var f logsFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one page of activity as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logs, err := env.fetchLogs(cmd, f)
			if err != nil {
				return err
			}
			return env.writeExport(cmd.Context(), cmd, "activity-logs", func() ([]byte, error) { return export.Activities(logs) })
		},
	}
	f.bind(cmd)
	return cmd
}
