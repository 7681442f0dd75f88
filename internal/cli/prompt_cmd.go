package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/report_scribe/internal/biz"
)

func newPromptCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt that would be sent to the model",
	}

	cmd.AddCommand(
		newPromptGenerateCmd(),
		newPromptRefineCmd(),
	)
	return cmd
}

func newPromptGenerateCmd() *cobra.Command {
	var f subjectFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the generation prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := f.subject()
			if err := biz.ValidateSubject(s); err != nil {
				return err
			}
			prompt, err := biz.BuildGenerationPrompt(s)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newPromptRefineCmd() *cobra.Command {
	var f refineFlags
	cmd := &cobra.Command{
		Use:   "refine",
		Short: "Render the refinement prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := f.request()
			if err != nil {
				return err
			}
			prompt, err := biz.BuildRefinementPrompt(r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}
