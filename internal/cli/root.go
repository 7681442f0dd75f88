package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/report_scribe/internal/biz"
	"github.com/iWorld-y/report_scribe/internal/conf"
	"github.com/iWorld-y/report_scribe/internal/data"
	"github.com/iWorld-y/report_scribe/internal/logger"
)

// GeneratorFactory 根据模型配置创建模型网关
type GeneratorFactory func(c *conf.Model, logger log.Logger) (biz.ContentGenerator, func(), error)

// App 命令行依赖
type App struct {
	NewGenerator GeneratorFactory

	confPath string
}

// NewApp 创建使用真实模型网关的命令行依赖
func NewApp() *App {
	return &App{NewGenerator: data.NewContentGenerator}
}

// NewRootCmd creates the top-level "scribe" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "scribe",
		Short:         "Generate and refine student reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.confPath, "conf", "configs/config.yaml", "config path")

	root.AddCommand(
		newMockCmd(app),
		newPromptCmd(app),
		newGenerateCmd(app),
		newRefineCmd(app),
	)
	return root
}

// loadConfig 配置文件不存在时退回默认值，环境变量仍然生效
func (a *App) loadConfig() (*conf.Bootstrap, error) {
	bc, err := conf.Load(a.confPath)
	if errors.Is(err, fs.ErrNotExist) {
		return conf.Parse(nil)
	}
	return bc, err
}

// useCase 组装报告用例，日志输出到 stderr 以免污染报告正文
func (a *App) useCase(stderr io.Writer) (*biz.ReportUseCase, func(), error) {
	bc, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	l, err := logger.InitLogger(bc.Log.Level, "")
	if err != nil {
		return nil, nil, err
	}
	l.SetOutput(stderr)
	kl := logger.NewKratosLogger(l)

	gen, cleanup, err := a.NewGenerator(bc.Model, kl)
	if err != nil {
		return nil, nil, err
	}
	return biz.NewReportUseCase(gen, bc.Report, kl), cleanup, nil
}

func readReport(text, file string) (string, error) {
	if file == "" {
		return text, nil
	}
	if file == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(file)
	return string(b), err
}
