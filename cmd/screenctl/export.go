package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/bootstrap"
)

var exportCmd = &cobra.Command{
	Use:   "export <job-id>",
	Short: "Write a job's applications and scores to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output path (defaults to <job-title>-applications.xlsx)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	jobID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid job id %q: %w", args[0], err)
	}

	return withContainer(cmd.Context(), func(c *bootstrap.Container, log *zap.Logger) error {
		buf, filename, err := c.Export.ExportJobApplications(cmd.Context(), jobID)
		if err != nil {
			return err
		}

		path := exportOutput
		if path == "" {
			path = filename
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		log.Info("export written", zap.String("path", path), zap.Int("bytes", buf.Len()))
		return nil
	})
}
