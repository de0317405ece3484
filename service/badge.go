package service

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/bincheck/domain"
)

// badge colors follow the shields.io palette
var badgeColors = map[domain.AggregateStatus]string{
	domain.AggregatePass:     "#4c1",
	domain.AggregateWarnings: "#fe7d37",
	domain.AggregateFail:     "#e05d44",
	domain.AggregateError:    "#e05d44",
}

const badgeUnknownColor = "#9f9f9f"

// BadgeGenerator renders SVG status badges from run history
type BadgeGenerator struct{}

// NewBadgeGenerator creates a badge generator
func NewBadgeGenerator() *BadgeGenerator {
	return &BadgeGenerator{}
}

// GenerateFromReport renders a badge for the latest run report. A nil
// report yields the "no reports" badge.
func (g *BadgeGenerator) GenerateFromReport(report *domain.RunReport) string {
	if report == nil {
		return g.render(domain.AggregateStatus("UNKNOWN"), "no reports")
	}

	if report.TotalTests == 0 {
		return g.render(domain.AggregateStatus("UNKNOWN"), "unknown")
	}
	passRate := float64(report.Passed) / float64(report.TotalTests)
	status := badgeStatus(report, passRate)

	var text string
	switch status {
	case domain.AggregatePass:
		text = fmt.Sprintf("passing (%.0f%%)", passRate*100)
	case domain.AggregateWarnings:
		text = fmt.Sprintf("warnings (%.0f%%)", passRate*100)
	case domain.AggregateFail:
		text = fmt.Sprintf("failing (%.0f%%)", passRate*100)
	case domain.AggregateError:
		text = "error"
	default:
		text = "unknown"
	}
	return g.render(status, text)
}

// badgeStatus applies the aggregate precedence to a single report
func badgeStatus(report *domain.RunReport, passRate float64) domain.AggregateStatus {
	switch {
	case report.Errors > 0:
		return domain.AggregateError
	case report.Failed > 0 && passRate >= 0.8:
		return domain.AggregateWarnings
	case report.Failed > 0:
		return domain.AggregateFail
	default:
		return domain.AggregatePass
	}
}

// render produces the flat badge SVG. Text width is approximated the way
// shields.io does for the default font.
func (g *BadgeGenerator) render(status domain.AggregateStatus, text string) string {
	color, ok := badgeColors[status]
	if !ok {
		color = badgeUnknownColor
	}

	labelWidth := len("QA")*7 + 10
	messageWidth := len(text)*7 + 10
	totalWidth := labelWidth + messageWidth

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="20" role="img" aria-label="QA: %s">`, totalWidth, text))
	sb.WriteString(fmt.Sprintf(`<title>QA: %s</title>`, text))
	sb.WriteString(`<linearGradient id="s" x2="0" y2="100%"><stop offset="0" stop-color="#bbb" stop-opacity=".1"/><stop offset="1" stop-opacity=".1"/></linearGradient>`)
	sb.WriteString(fmt.Sprintf(`<clipPath id="r"><rect width="%d" height="20" rx="3" fill="#fff"/></clipPath>`, totalWidth))
	sb.WriteString(`<g clip-path="url(#r)">`)
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="20" fill="#555"/>`, labelWidth))
	sb.WriteString(fmt.Sprintf(`<rect x="%d" width="%d" height="20" fill="%s"/>`, labelWidth, messageWidth, color))
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="20" fill="url(#s)"/>`, totalWidth))
	sb.WriteString(`</g>`)
	sb.WriteString(`<g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" text-rendering="geometricPrecision" font-size="110">`)
	sb.WriteString(fmt.Sprintf(`<text aria-hidden="true" x="%d" y="15" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="20">QA</text>`, labelWidth/2+5))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="14" transform="scale(.1)" fill="#fff" textLength="20">QA</text>`, labelWidth/2+5))
	sb.WriteString(fmt.Sprintf(`<text aria-hidden="true" x="%d" y="15" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="%d">%s</text>`, labelWidth+messageWidth/2, (messageWidth-10)*10, text))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="14" transform="scale(.1)" fill="#fff" textLength="%d">%s</text>`, labelWidth+messageWidth/2, (messageWidth-10)*10, text))
	sb.WriteString(`</g></svg>`)
	return sb.String()
}
