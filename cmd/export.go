package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/subtrack/internal/adapters/export"
	"github.com/bnema/subtrack/internal/domain"
	"github.com/spf13/cobra"
)

func newExportCmd(app *app) *cobra.Command {
	var (
		formatFlag string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export subscriptions to JSON, YAML or XLSX",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := exportFormat(formatFlag, output)
			if err != nil {
				return err
			}
			if format == export.FormatXLSX && output == "" {
				return errors.New("xlsx export needs --output")
			}

			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}

			subs, err := app.service.List(cmd.Context(), session, domain.FilterAll)
			if err != nil {
				return err
			}

			if output == "" {
				return export.Write(cmd.OutOrStdout(), format, session.UserID, subs, app.now())
			}

			if err := export.WriteFile(cmd.Context(), output, format, session.UserID, subs, app.now()); err != nil {
				return fmt.Errorf("export subscriptions: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d subscriptions to %s\n", len(subs), output)
			return err
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "json, yaml or xlsx (default from --output extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")

	return cmd
}

func exportFormat(flag, output string) (export.Format, error) {
	switch {
	case flag != "":
		return export.ParseFormat(flag)
	case output != "":
		return export.FormatFromPath(output)
	default:
		return export.FormatJSON, nil
	}
}
