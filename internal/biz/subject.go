package biz

import (
	"fmt"
	"strings"
)

// Gender 学生性别，决定报告中使用的代词
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid 是否为支持的性别取值
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// PronounSet 代词组合
type PronounSet struct {
	Subject    string
	Possessive string
}

// Pronouns 根据性别计算代词。
// 目前只区分 Male 与其他取值，需要更多代词时只改这里。
func Pronouns(g Gender) PronounSet {
	if g == GenderMale {
		return PronounSet{Subject: "he", Possessive: "his"}
	}
	return PronounSet{Subject: "she", Possessive: "her"}
}

// ReportSubject 报告对象（学生）信息
type ReportSubject struct {
	Name               string
	Gender             Gender
	PositiveAttributes []string
	NegativeAttributes []string
	Instructions       string
}

// RefinementRequest 报告润色请求
type RefinementRequest struct {
	CurrentReport          string
	RefinementInstructions string
}

// ValidationReason 校验失败原因
type ValidationReason string

const (
	ReasonNameRequired         ValidationReason = "name_required"
	ReasonGenderInvalid        ValidationReason = "gender_invalid"
	ReasonAttributesRequired   ValidationReason = "attributes_required"
	ReasonReportRequired       ValidationReason = "report_required"
	ReasonInstructionsRequired ValidationReason = "instructions_required"
)

// ValidationError 请求参数校验失败
type ValidationError struct {
	Field  string
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonNameRequired:
		return "Student name is required"
	case ReasonGenderInvalid:
		return "Gender must be 'Male' or 'Female'"
	case ReasonAttributesRequired:
		return fmt.Sprintf("At least one attribute is required in %s", e.Field)
	case ReasonReportRequired:
		return "Current report is required"
	case ReasonInstructionsRequired:
		return "Refinement instructions are required"
	default:
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
}

// ValidateSubject 校验报告生成请求，至少需要一条正面或待改进描述
func ValidateSubject(s ReportSubject) error {
	if err := validateIdentity(s); err != nil {
		return err
	}
	if len(nonBlank(s.PositiveAttributes)) == 0 && len(nonBlank(s.NegativeAttributes)) == 0 {
		return &ValidationError{Field: "positive_attributes or negative_attributes", Reason: ReasonAttributesRequired}
	}
	return nil
}

// ValidateMockSubject 校验模板拼装请求，模板只使用正面描述
func ValidateMockSubject(s ReportSubject) error {
	if err := validateIdentity(s); err != nil {
		return err
	}
	if len(nonBlank(s.PositiveAttributes)) == 0 {
		return &ValidationError{Field: "positive_attributes", Reason: ReasonAttributesRequired}
	}
	return nil
}

// ValidateRefinement 校验润色请求
func ValidateRefinement(r RefinementRequest) error {
	if strings.TrimSpace(r.CurrentReport) == "" {
		return &ValidationError{Field: "current_report", Reason: ReasonReportRequired}
	}
	if strings.TrimSpace(r.RefinementInstructions) == "" {
		return &ValidationError{Field: "refinement_instructions", Reason: ReasonInstructionsRequired}
	}
	return nil
}

func validateIdentity(s ReportSubject) error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Reason: ReasonNameRequired}
	}
	if !s.Gender.Valid() {
		return &ValidationError{Field: "gender", Reason: ReasonGenderInvalid}
	}
	return nil
}

func nonBlank(items []string) []string {
	var out []string
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	return out
}
