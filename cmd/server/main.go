package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/report_scribe/internal/conf"
	"github.com/iWorld-y/report_scribe/internal/logger"
	"github.com/iWorld-y/report_scribe/internal/pkg/requestid"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "report_scribe"
	// Version 是服务的版本号，为空时使用配置中的版本
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func newApp(app *conf.App, logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(app.Version),
		kratos.Metadata(map[string]string{"env": app.Env}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}

func main() {
	flag.Parse()

	bc, err := conf.Load(flagconf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config %s: %v\n", flagconf, err)
		os.Exit(1)
	}
	if Version != "" {
		bc.App.Version = Version
	}

	l, err := logger.InitLogger(bc.Log.Level, bc.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志记录器，包含调用者信息、服务ID、请求ID等上下文
	kl := log.With(logger.NewKratosLogger(l),
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", bc.App.Version,
		"request_id", requestid.Valuer(),
	)

	app, cleanup, err := initApp(bc.App, bc.Server, bc.Model, bc.Report, kl)
	if err != nil {
		l.Fatalf("init app: %v", err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		l.Errorf("app exited: %v", err)
	}
}
