package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tbeaumont/crfstudio/internal/cli/formatter"
)

// resolveStudyID accepts a protocol code (case-insensitive), a full
// study id, or a unique id prefix.
func resolveStudyID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("study is required")
	}

	studies, err := app.Studies.List(ctx)
	if err != nil {
		return "", err
	}

	for _, s := range studies {
		if strings.EqualFold(s.ProtocolCode, input) {
			return s.ID, nil
		}
	}
	for _, s := range studies {
		if s.ID == input {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range studies {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("study not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("study %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newStudiesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studies",
		Short: "Manage studies",
	}

	cmd.AddCommand(
		newStudiesListCmd(app),
		newStudiesAddCmd(app),
		newStudiesRenameCmd(app),
		newStudiesRemoveCmd(app),
	)

	return cmd
}

func newStudiesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all studies",
		RunE: func(cmd *cobra.Command, args []string) error {
			studies, err := app.Studies.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(studies) == 0 {
				fmt.Println(formatter.Dim("No studies."))
				return nil
			}

			rows := make([][]string, 0, len(studies))
			for _, s := range studies {
				rows = append(rows, []string{
					formatter.StyleGreen.Render(s.ProtocolCode),
					s.Name,
					formatter.Dim(s.ID[:8]),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"PROTOCOL", "NAME", "ID"}, rows))
			return nil
		},
	}
}

func newStudiesAddCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add <protocol-code>",
		Short: "Create a new study",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			study, err := app.Studies.Create(cmd.Context(), args[0], name)
			if err != nil {
				return err
			}
			fmt.Println(formatter.Success(fmt.Sprintf("Created study %s (%s)", study.ProtocolCode, study.ID[:8])))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "study display name")
	return cmd
}

func newStudiesRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <study> <name>",
		Short: "Rename a study",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveStudyID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Studies.Rename(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Println(formatter.Success("Study renamed"))
			return nil
		},
	}
}

func newStudiesRemoveCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "rm <study>",
		Short: "Delete a study and all its forms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("deleting a study removes all of its forms; pass --force to confirm")
			}
			id, err := resolveStudyID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Studies.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(formatter.Success("Study deleted"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "confirm deletion")
	return cmd
}
