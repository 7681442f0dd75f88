package biz

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// 模板措辞是和模型之间的约定，修改前需要重新评估生成效果
var (
	generationTemplate = template.Must(template.ParseFS(templateFS, "templates/generation.tmpl"))
	refinementTemplate = template.Must(template.ParseFS(templateFS, "templates/refinement.tmpl"))
)

type generationData struct {
	Name       string
	Gender     Gender
	Pronoun    string
	Possessive string
	Attributes string
}

type refinementData struct {
	CurrentReport          string
	RefinementInstructions string
}

// BuildGenerationPrompt 渲染报告生成提示词
func BuildGenerationPrompt(s ReportSubject) (string, error) {
	p := Pronouns(s.Gender)
	return render(generationTemplate, generationData{
		Name:       s.Name,
		Gender:     s.Gender,
		Pronoun:    p.Subject,
		Possessive: p.Possessive,
		Attributes: attributesText(s),
	})
}

// BuildRefinementPrompt 渲染报告润色提示词
func BuildRefinementPrompt(r RefinementRequest) (string, error) {
	return render(refinementTemplate, refinementData{
		CurrentReport:          r.CurrentReport,
		RefinementInstructions: r.RefinementInstructions,
	})
}

// attributesText 空列表和空白说明整行省略。属性行自带换行，说明行不带
func attributesText(s ReportSubject) string {
	var sb strings.Builder
	if len(s.PositiveAttributes) > 0 {
		sb.WriteString("Positive attributes observed: " + strings.Join(s.PositiveAttributes, ", ") + "\n")
	}
	if len(s.NegativeAttributes) > 0 {
		sb.WriteString("Areas for improvement: " + strings.Join(s.NegativeAttributes, ", ") + "\n")
	}
	if instructions := strings.TrimSpace(s.Instructions); instructions != "" {
		sb.WriteString("Additional instructions: " + instructions)
	}
	return sb.String()
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
