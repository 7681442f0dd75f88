package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/report_scribe/internal/biz"
)

// subjectFlags 学生信息相关的命令行参数
type subjectFlags struct {
	name         string
	gender       string
	positive     []string
	negative     []string
	instructions string
}

func (f *subjectFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "student name")
	cmd.Flags().StringVar(&f.gender, "gender", "", "Male or Female")
	cmd.Flags().StringSliceVar(&f.positive, "positive", nil, "positive attributes, comma separated")
	cmd.Flags().StringSliceVar(&f.negative, "negative", nil, "negative attributes, comma separated")
	cmd.Flags().StringVar(&f.instructions, "instructions", "", "additional instructions")
}

func (f *subjectFlags) subject() biz.ReportSubject {
	return biz.ReportSubject{
		Name:               f.name,
		Gender:             biz.Gender(f.gender),
		PositiveAttributes: f.positive,
		NegativeAttributes: f.negative,
		Instructions:       f.instructions,
	}
}

// refineFlags 润色相关的命令行参数
type refineFlags struct {
	report       string
	reportFile   string
	instructions string
}

func (f *refineFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.report, "report", "", "current report text")
	cmd.Flags().StringVar(&f.reportFile, "report-file", "", "read current report from file, - for stdin")
	cmd.Flags().StringVar(&f.instructions, "instructions", "", "refinement instructions")
}

func (f *refineFlags) request() (biz.RefinementRequest, error) {
	report, err := readReport(f.report, f.reportFile)
	if err != nil {
		return biz.RefinementRequest{}, fmt.Errorf("read report: %w", err)
	}
	r := biz.RefinementRequest{CurrentReport: report, RefinementInstructions: f.instructions}
	return r, biz.ValidateRefinement(r)
}

func newMockCmd(app *App) *cobra.Command {
	var f subjectFlags
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Assemble a report locally without calling a model",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := f.subject()
			if err := biz.ValidateMockSubject(s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), biz.AssembleReport(s))
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newGenerateCmd(app *App) *cobra.Command {
	var f subjectFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report with the configured model",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := f.subject()
			if err := biz.ValidateSubject(s); err != nil {
				return err
			}
			uc, cleanup, err := app.useCase(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := uc.Generate(cmd.Context(), s)
			if err != nil {
				return fmt.Errorf("generate report (%s): %w", biz.ModelErrorKindOf(err), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(report))
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newRefineCmd(app *App) *cobra.Command {
	var f refineFlags
	cmd := &cobra.Command{
		Use:   "refine",
		Short: "Refine an existing report with the configured model",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := f.request()
			if err != nil {
				return err
			}
			uc, cleanup, err := app.useCase(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := uc.Refine(cmd.Context(), r)
			if err != nil {
				return fmt.Errorf("refine report (%s): %w", biz.ModelErrorKindOf(err), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(report))
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}
