package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/bootstrap"
	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
	"github.com/PathSynch-CEO/careers-page-v2/internal/services"
)

var screenCmd = &cobra.Command{
	Use:   "screen <application-id>",
	Short: "Screen one application and print the analysis",
	Long:  "Runs the resume and cover letter analysis for an application, stores the weighted result and prints it as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScreen,
}

var screenForce bool

func init() {
	screenCmd.Flags().BoolVarP(&screenForce, "force", "f", false, "Screen again even if the application is already completed")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid application id %q: %w", args[0], err)
	}

	return withContainer(cmd.Context(), func(c *bootstrap.Container, log *zap.Logger) error {
		app, err := c.Apps.FindByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		if app.ScreeningStatus == models.ScreeningCompleted && !screenForce {
			return fmt.Errorf("application %s already screened, use --force to screen again", id)
		}

		analysis, err := c.Screening.ScreenApplication(cmd.Context(), id)
		if err != nil {
			return err
		}

		if degraded := services.DegradedFields(analysis); len(degraded) > 0 {
			log.Warn("screening completed with placeholder criteria", zap.Strings("fields", degraded))
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	})
}
