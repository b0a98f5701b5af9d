package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tbeaumont/crfstudio/internal/save"
	"github.com/tbeaumont/crfstudio/internal/wire"
)

// newExportCmd dumps a study's forms in the flat transmission format,
// exactly as the save transaction would submit them.
func newExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <study>",
		Short: "Export a study's forms as flat JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveStudyID(ctx, app, args[0])
			if err != nil {
				return err
			}

			visits, err := app.Forms.LoadStudy(ctx, id)
			if err != nil {
				return err
			}

			forms := make([]wire.Form, len(visits))
			for i, v := range visits {
				forms[i] = save.Encode(v)
			}

			data, err := json.MarshalIndent(forms, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}
