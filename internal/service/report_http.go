package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewReportService)

const (
	OperationReportGenerate = "/report.v1.Report/GenerateReport"
	OperationReportRefine   = "/report.v1.Report/RefineReport"
	OperationReportAssemble = "/report.v1.Report/AssembleReport"
	OperationReportHealth   = "/report.v1.Report/Health"
	OperationReportIndex    = "/report.v1.Report/Index"
)

// RegisterReportHTTPServer 注册报告相关路由
func RegisterReportHTTPServer(s *http.Server, srv *ReportService) {
	r := s.Route("/")
	r.POST("/report/generate", _Report_GenerateReport_HTTP_Handler(srv))
	r.POST("/report/refine", _Report_RefineReport_HTTP_Handler(srv))
	r.POST("/api/report", _Report_AssembleReport_HTTP_Handler(srv))
	r.GET("/health", _Report_Health_HTTP_Handler(srv))
	r.GET("/", _Report_Index_HTTP_Handler(srv))
}

func _Report_GenerateReport_HTTP_Handler(srv *ReportService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GenerateReportRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationReportGenerate)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GenerateReport(ctx, req.(*GenerateReportRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _Report_RefineReport_HTTP_Handler(srv *ReportService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in RefineReportRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationReportRefine)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.RefineReport(ctx, req.(*RefineReportRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _Report_AssembleReport_HTTP_Handler(srv *ReportService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GenerateReportRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationReportAssemble)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.AssembleReport(ctx, req.(*GenerateReportRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _Report_Health_HTTP_Handler(srv *ReportService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationReportHealth)
		return ctx.Result(200, srv.Health(ctx))
	}
}

func _Report_Index_HTTP_Handler(srv *ReportService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationReportIndex)
		return ctx.Result(200, srv.Index(ctx))
	}
}
