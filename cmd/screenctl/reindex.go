package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/bootstrap"
	"github.com/PathSynch-CEO/careers-page-v2/internal/logger"
	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the candidate index from completed screenings",
	RunE:  runReindex,
}

var reindexLimit int

func init() {
	reindexCmd.Flags().IntVarP(&reindexLimit, "limit", "n", 0, "Maximum applications to index (0 for all)")

	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	return withContainer(ctx, func(c *bootstrap.Container, log *zap.Logger) error {
		if c.Index == nil {
			return fmt.Errorf("candidate index disabled: set QDRANT_URL")
		}

		apps, err := c.Apps.FindByScreeningStatus(ctx, models.ScreeningCompleted, reindexLimit)
		if err != nil {
			return err
		}

		titles := map[string]string{}
		var indexed, failed int
		for i := range apps {
			app := &apps[i]
			if app.AIAnalysis == nil {
				continue
			}

			title, ok := titles[app.JobID.String()]
			if !ok {
				title = app.JobTitle
				if job, err := c.Jobs.FindByID(ctx, app.JobID); err == nil {
					title = job.Title
				}
				titles[app.JobID.String()] = title
			}

			if err := c.Index.IndexCandidate(ctx, app.ID, app.JobID, title, app.AIAnalysis); err != nil {
				failed++
				log.Warn("failed to index candidate", logger.ApplicationID(app.ID), zap.Error(err))
				continue
			}
			indexed++
		}

		log.Info("reindex finished", zap.Int("indexed", indexed), zap.Int("failed", failed))
		fmt.Fprintf(cmd.OutOrStdout(), "indexed %d of %d completed applications\n", indexed, len(apps))
		return nil
	})
}
