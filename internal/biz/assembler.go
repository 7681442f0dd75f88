package biz

import (
	"fmt"
	"strings"
)

// AssembleReport 只用字符串拼接生成报告，不依赖外部模型。
// 用于 mock 模式以及 /api/report 旧接口。
func AssembleReport(s ReportSubject) string {
	p := Pronouns(s.Gender)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Student Report for %s\n\n", s.Name)

	if attrs := s.PositiveAttributes; len(attrs) > 0 {
		fmt.Fprintf(&sb, "%s has demonstrated several commendable qualities this term. ", s.Name)

		// 前三条放在同一句里，其余的另起一句
		var lead string
		switch {
		case len(attrs) >= 3:
			lead = strings.Join(attrs[:3], ", ")
		case len(attrs) == 2:
			lead = strings.Join(attrs, " and ")
		default:
			lead = attrs[0]
		}
		fmt.Fprintf(&sb, "Particularly noteworthy is how %s %s. ", p.Subject, strings.ToLower(lead))

		if len(attrs) > 3 {
			fmt.Fprintf(&sb, "Additionally, %s %s. ", s.Name, strings.ToLower(strings.Join(attrs[3:], ", ")))
		}
	}

	fmt.Fprintf(&sb, "\n\nOverall, %s is a valued member of our classroom community. ", s.Name)
	fmt.Fprintf(&sb, "With continued effort and focus, %s will achieve even greater success in %s academic journey.", p.Subject, p.Possessive)

	return sb.String()
}
