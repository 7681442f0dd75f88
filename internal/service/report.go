package service

import (
	"context"
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/report_scribe/internal/biz"
	"github.com/iWorld-y/report_scribe/internal/conf"
)

const (
	reasonInvalidArgument  = "INVALID_ARGUMENT"
	reasonGenerationFailed = "REPORT_GENERATION_FAILED"
	reasonRefinementFailed = "REPORT_REFINEMENT_FAILED"
)

// GenerateReportRequest 报告生成请求
type GenerateReportRequest struct {
	Name               string   `json:"name"`
	Gender             string   `json:"gender"`
	PositiveAttributes []string `json:"positive_attributes"`
	NegativeAttributes []string `json:"negative_attributes"`
	Instructions       string   `json:"instructions"`
}

func (r *GenerateReportRequest) subject() biz.ReportSubject {
	return biz.ReportSubject{
		Name:               r.Name,
		Gender:             biz.Gender(r.Gender),
		PositiveAttributes: r.PositiveAttributes,
		NegativeAttributes: r.NegativeAttributes,
		Instructions:       r.Instructions,
	}
}

// RefineReportRequest 报告润色请求
type RefineReportRequest struct {
	CurrentReport          string `json:"current_report"`
	RefinementInstructions string `json:"refinement_instructions"`
}

// ReportReply 报告接口统一响应
type ReportReply struct {
	Success bool   `json:"success"`
	Report  string `json:"report"`
	Message string `json:"message"`
}

// HealthReply 健康检查响应
type HealthReply struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// IndexReply 根路径响应
type IndexReply struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Health  string `json:"health"`
}

// ReportService 报告接口服务
type ReportService struct {
	uc  *biz.ReportUseCase
	app *conf.App
	log *log.Helper
}

// NewReportService 创建报告接口服务
func NewReportService(uc *biz.ReportUseCase, app *conf.App, logger log.Logger) *ReportService {
	if app == nil {
		app = &conf.App{Name: "Report Scribe API", Version: "1.0.0"}
	}
	return &ReportService{
		uc:  uc,
		app: app,
		log: log.NewHelper(log.With(logger, "module", "service/report")),
	}
}

// GenerateReport 根据学生信息生成报告
func (s *ReportService) GenerateReport(ctx context.Context, req *GenerateReportRequest) (*ReportReply, error) {
	subject := req.subject()
	if err := biz.ValidateSubject(subject); err != nil {
		return nil, invalidArgument(err)
	}

	s.log.WithContext(ctx).Infof("Generating report for student: %s", subject.Name)
	report, err := s.uc.Generate(ctx, subject)
	if err != nil {
		s.log.WithContext(ctx).Errorw(
			log.DefaultMessageKey, "Error generating report",
			"student", subject.Name,
			"kind", biz.ModelErrorKindOf(err).String(),
			"error", err,
		)
		return nil, kerrors.InternalServer(reasonGenerationFailed, "Internal server error occurred while generating report")
	}

	s.log.WithContext(ctx).Infof("Successfully generated report for %s", subject.Name)
	return &ReportReply{Success: true, Report: report, Message: "Report generated successfully"}, nil
}

// RefineReport 根据润色说明修改已有报告
func (s *ReportService) RefineReport(ctx context.Context, req *RefineReportRequest) (*ReportReply, error) {
	r := biz.RefinementRequest{
		CurrentReport:          req.CurrentReport,
		RefinementInstructions: req.RefinementInstructions,
	}
	if err := biz.ValidateRefinement(r); err != nil {
		return nil, invalidArgument(err)
	}

	s.log.WithContext(ctx).Infof("Refining report with instructions: %s...", truncate(r.RefinementInstructions, 50))
	report, err := s.uc.Refine(ctx, r)
	if err != nil {
		s.log.WithContext(ctx).Errorw(
			log.DefaultMessageKey, "Error refining report",
			"operation", "refine",
			"kind", biz.ModelErrorKindOf(err).String(),
			"error", err,
		)
		return nil, kerrors.InternalServer(reasonRefinementFailed, "Internal server error occurred while refining report")
	}

	s.log.WithContext(ctx).Info("Successfully refined report")
	return &ReportReply{Success: true, Report: report, Message: "Report refined successfully"}, nil
}

// AssembleReport 旧版 /api/report 接口，只走模板拼装
func (s *ReportService) AssembleReport(ctx context.Context, req *GenerateReportRequest) (*ReportReply, error) {
	subject := req.subject()
	if err := biz.ValidateMockSubject(subject); err != nil {
		return nil, invalidArgument(err)
	}

	s.log.WithContext(ctx).Infof("Assembling report for student: %s", subject.Name)
	return &ReportReply{Success: true, Report: s.uc.Assemble(subject), Message: "Report generated successfully"}, nil
}

// Health 健康检查
func (s *ReportService) Health(ctx context.Context) *HealthReply {
	return &HealthReply{Status: "healthy", Service: s.app.Name}
}

// Index 接口信息
func (s *ReportService) Index(ctx context.Context) *IndexReply {
	return &IndexReply{
		Message: "Welcome to " + s.app.Name,
		Version: s.app.Version,
		Health:  "/health",
	}
}

func invalidArgument(err error) error {
	var ve *biz.ValidationError
	if errors.As(err, &ve) {
		return kerrors.BadRequest(reasonInvalidArgument, ve.Error()).WithMetadata(map[string]string{
			"field":  ve.Field,
			"reason": string(ve.Reason),
		})
	}
	return kerrors.BadRequest(reasonInvalidArgument, err.Error())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
