package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/report_scribe/internal/conf"
)

// ContentGenerator 大模型文本生成接口，由 data 层实现
type ContentGenerator interface {
	// GenerateContent 发送渲染好的提示词，返回去掉首尾空白的文本
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ReportUseCase 报告生成业务逻辑
type ReportUseCase struct {
	gen  ContentGenerator
	mode string
	log  *log.Helper
}

// NewReportUseCase 创建报告业务逻辑实例
func NewReportUseCase(gen ContentGenerator, c *conf.Report, logger log.Logger) *ReportUseCase {
	mode := conf.ModeModel
	if c != nil && c.Mode != "" {
		mode = c.Mode
	}
	return &ReportUseCase{gen: gen, mode: mode, log: log.NewHelper(logger)}
}

// Generate 生成报告。调用方需先通过 ValidateSubject 校验。
func (uc *ReportUseCase) Generate(ctx context.Context, s ReportSubject) (string, error) {
	if uc.mode == conf.ModeMock {
		uc.log.WithContext(ctx).Debugf("mock mode, assembling report for %s", s.Name)
		return AssembleReport(s), nil
	}

	prompt, err := BuildGenerationPrompt(s)
	if err != nil {
		return "", fmt.Errorf("build generation prompt: %w", err)
	}
	uc.log.WithContext(ctx).Debugf("generation prompt for %s rendered (%d bytes)", s.Name, len(prompt))

	return uc.gen.GenerateContent(ctx, prompt)
}

// Refine 按润色说明修改已有报告。调用方需先通过 ValidateRefinement 校验。
func (uc *ReportUseCase) Refine(ctx context.Context, r RefinementRequest) (string, error) {
	prompt, err := BuildRefinementPrompt(r)
	if err != nil {
		return "", fmt.Errorf("build refinement prompt: %w", err)
	}
	return uc.gen.GenerateContent(ctx, prompt)
}

// Assemble 不经过模型，直接拼装报告
func (uc *ReportUseCase) Assemble(s ReportSubject) string {
	return AssembleReport(s)
}
