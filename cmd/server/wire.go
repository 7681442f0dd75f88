//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final binary.

package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/iWorld-y/report_scribe/internal/biz"
	"github.com/iWorld-y/report_scribe/internal/conf"
	"github.com/iWorld-y/report_scribe/internal/data"
	"github.com/iWorld-y/report_scribe/internal/server"
	"github.com/iWorld-y/report_scribe/internal/service"
)

// initApp init kratos application.
func initApp(*conf.App, *conf.Server, *conf.Model, *conf.Report, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		server.ProviderSet,
		data.ProviderSet,
		biz.ProviderSet,
		service.ProviderSet,
		newApp,
	))
}
