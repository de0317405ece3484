package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/sirupsen/logrus"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/config"
	"github.com/ludo-technologies/bincheck/internal/runner"
)

const securityFindingLimit = 5

// SecurityCheckerImpl scans the target project for vulnerable dependencies,
// leaked secrets, forbidden code patterns and permission problems
type SecurityCheckerImpl struct {
	cfg    *config.Config
	runner *runner.Runner
	log    *logrus.Logger
}

// NewSecurityChecker creates a security checker for the configured target
func NewSecurityChecker(cfg *config.Config, log *logrus.Logger) *SecurityCheckerImpl {
	return &SecurityCheckerImpl{
		cfg:    cfg,
		runner: runner.New(time.Duration(cfg.Suite.TimeoutSeconds) * time.Second),
		log:    log,
	}
}

// RunAll executes every security check and reduces their statuses
func (c *SecurityCheckerImpl) RunAll(ctx context.Context) (*domain.SecurityReport, error) {
	checks := map[string]domain.SecurityCheckResult{
		"dependency_audit": c.checkDependencyAudit(ctx),
		"dependencies":     c.checkManifestHygiene(),
		"secrets":          c.checkSecrets(),
		"forbidden_code":   c.checkForbiddenCode(),
		"file_permissions": c.checkFilePermissions(),
	}

	statuses := make([]domain.Status, 0, len(checks))
	totalIssues, criticalIssues := 0, 0
	for _, check := range checks {
		statuses = append(statuses, check.Status)
		switch check.Status {
		case domain.StatusFail:
			criticalIssues++
			totalIssues++
		case domain.StatusWarn:
			totalIssues++
		}
	}

	return &domain.SecurityReport{
		Timestamp:      time.Now().Format(time.RFC3339),
		OverallStatus:  domain.SecurityOverallStatus(statuses),
		TotalChecks:    len(checks),
		TotalIssues:    totalIssues,
		CriticalIssues: criticalIssues,
		Checks:         checks,
		Summary: domain.SecuritySummary{
			Vulnerabilities:  detailInt(checks["dependency_audit"], "vulnerabilities_found"),
			Secrets:          detailInt(checks["secrets"], "secrets_found"),
			ForbiddenBlocks:  detailInt(checks["forbidden_code"], "forbidden_blocks_found"),
			DependencyIssues: detailInt(checks["dependencies"], "issues_found"),
			PermissionIssues: detailInt(checks["file_permissions"], "suspicious_files_found"),
		},
	}, nil
}

// checkDependencyAudit runs the configured audit command and parses its
// JSON vulnerability listing
func (c *SecurityCheckerImpl) checkDependencyAudit(ctx context.Context) domain.SecurityCheckResult {
	cmd := c.cfg.Target.AuditCommand
	if len(cmd) == 0 {
		return domain.SecurityCheckResult{Status: domain.StatusSkip,
			Message: "No audit command configured"}
	}

	res := c.runner.Run(ctx, runner.Command{Path: cmd[0], Args: cmd[1:], Dir: c.cfg.Target.WorkingDir})
	if !res.Success() {
		return domain.SecurityCheckResult{
			Status:  domain.StatusError,
			Message: fmt.Sprintf("Audit command failed with exit code %d", res.ExitCode),
			Details: domain.Details{"error": truncate(res.Stderr, 500)},
		}
	}

	var audit struct {
		Vulnerabilities struct {
			List []map[string]any `json:"list"`
		} `json:"vulnerabilities"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &audit); err != nil {
		return domain.SecurityCheckResult{
			Status:  domain.StatusError,
			Message: "Could not parse audit output",
			Details: domain.Details{"raw_output": truncate(res.Stdout, 500)},
		}
	}

	vulns := audit.Vulnerabilities.List
	status := domain.StatusPass
	if len(vulns) > 0 {
		status = domain.StatusFail
	}
	shown := vulns
	if len(shown) > securityFindingLimit {
		shown = shown[:securityFindingLimit]
	}
	return domain.SecurityCheckResult{
		Status:  status,
		Message: fmt.Sprintf("Found %d known vulnerabilities", len(vulns)),
		Details: domain.Details{"vulnerabilities_found": len(vulns), "vulnerabilities": shown},
	}
}

// checkManifestHygiene looks for risky dependency declarations in the
// project manifest
func (c *SecurityCheckerImpl) checkManifestHygiene() domain.SecurityCheckResult {
	manifest := c.cfg.Target.ManifestPath
	if manifest == "" {
		return domain.SecurityCheckResult{Status: domain.StatusSkip,
			Message: "No manifest path configured"}
	}
	path := manifest
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.cfg.Target.WorkingDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SecurityCheckResult{Status: domain.StatusError,
			Message: fmt.Sprintf("%s not found", manifest)}
	}
	content := string(data)

	var issues []string
	for pattern, desc := range c.cfg.Security.ManifestRiskPatterns {
		matched, err := regexp.MatchString(pattern, content)
		if err != nil {
			c.log.WithField("pattern", pattern).WithError(err).Warn("Skipping invalid manifest pattern")
			continue
		}
		if matched {
			issues = append(issues, desc)
		}
	}
	sort.Strings(issues)

	status := domain.StatusPass
	if len(issues) > 0 {
		status = domain.StatusWarn
	}
	return domain.SecurityCheckResult{
		Status:  status,
		Message: fmt.Sprintf("Found %d dependency issues", len(issues)),
		Details: domain.Details{"issues_found": len(issues), "issues": issues},
	}
}

type secretFinding struct {
	File    string `json:"file"`
	Pattern string `json:"pattern"`
	Match   string `json:"match"`
}

// checkSecrets scans source files for credential-looking patterns
func (c *SecurityCheckerImpl) checkSecrets() domain.SecurityCheckResult {
	patterns := make([]*regexp.Regexp, 0, len(c.cfg.Security.SecretPatterns))
	for _, p := range c.cfg.Security.SecretPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			c.log.WithField("pattern", p).WithError(err).Warn("Skipping invalid secret pattern")
			continue
		}
		patterns = append(patterns, re)
	}

	var findings []secretFinding
	c.walkSources(func(relPath, content string) {
		for _, re := range patterns {
			for _, match := range re.FindAllString(content, -1) {
				if len(match) > 50 {
					match = match[:50] + "..."
				}
				findings = append(findings, secretFinding{
					File:    relPath,
					Pattern: re.String(),
					Match:   match,
				})
			}
		}
	})

	status := domain.StatusPass
	if len(findings) > 0 {
		status = domain.StatusFail
	}
	shown := findings
	if len(shown) > securityFindingLimit {
		shown = shown[:securityFindingLimit]
	}
	return domain.SecurityCheckResult{
		Status:  status,
		Message: fmt.Sprintf("Found %d potential secrets", len(findings)),
		Details: domain.Details{"secrets_found": len(findings), "secrets": shown},
	}
}

type codeFinding struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Code string `json:"code"`
}

// checkForbiddenCode flags source lines matching the configured forbidden
// patterns. These are warnings: the patterns mark code that deserves review,
// not code that is necessarily wrong.
func (c *SecurityCheckerImpl) checkForbiddenCode() domain.SecurityCheckResult {
	if len(c.cfg.Security.ForbiddenPatterns) == 0 {
		return domain.SecurityCheckResult{Status: domain.StatusSkip,
			Message: "No forbidden code patterns configured"}
	}

	patterns := make([]*regexp.Regexp, 0, len(c.cfg.Security.ForbiddenPatterns))
	for _, p := range c.cfg.Security.ForbiddenPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			c.log.WithField("pattern", p).WithError(err).Warn("Skipping invalid forbidden pattern")
			continue
		}
		patterns = append(patterns, re)
	}

	var findings []codeFinding
	c.walkSources(func(relPath, content string) {
		for i, line := range strings.Split(content, "\n") {
			for _, re := range patterns {
				if re.MatchString(line) {
					findings = append(findings, codeFinding{
						File: relPath,
						Line: i + 1,
						Code: strings.TrimSpace(line),
					})
					break
				}
			}
		}
	})

	status := domain.StatusPass
	if len(findings) > 0 {
		status = domain.StatusWarn
	}
	shown := findings
	if len(shown) > securityFindingLimit {
		shown = shown[:securityFindingLimit]
	}
	return domain.SecurityCheckResult{
		Status:  status,
		Message: fmt.Sprintf("Found %d forbidden code blocks", len(findings)),
		Details: domain.Details{"forbidden_blocks_found": len(findings), "forbidden_blocks": shown},
	}
}

type permissionFinding struct {
	File        string `json:"file"`
	Permissions string `json:"permissions"`
	Issue       string `json:"issue"`
}

// checkFilePermissions flags world-writable files in the project tree
func (c *SecurityCheckerImpl) checkFilePermissions() domain.SecurityCheckResult {
	if runtime.GOOS == "windows" {
		return domain.SecurityCheckResult{Status: domain.StatusSkip,
			Message: "File permission check skipped on Windows"}
	}

	root := c.projectRoot()
	matcher := c.ignoreMatcher(root)

	var findings []permissionFinding
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || (matcher != nil && matcher.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		if info.Mode().Perm()&0o002 != 0 {
			findings = append(findings, permissionFinding{
				File:        rel,
				Permissions: fmt.Sprintf("%03o", info.Mode().Perm()),
				Issue:       "World-writable file",
			})
		}
		return nil
	})

	status := domain.StatusPass
	if len(findings) > 0 {
		status = domain.StatusWarn
	}
	shown := findings
	if len(shown) > securityFindingLimit {
		shown = shown[:securityFindingLimit]
	}
	return domain.SecurityCheckResult{
		Status:  status,
		Message: fmt.Sprintf("Found %d files with suspicious permissions", len(findings)),
		Details: domain.Details{"suspicious_files_found": len(findings), "suspicious_files": shown},
	}
}

// walkSources visits every non-ignored source file with a configured
// extension and hands its content to visit
func (c *SecurityCheckerImpl) walkSources(visit func(relPath, content string)) {
	root := c.projectRoot()
	matcher := c.ignoreMatcher(root)
	extensions := c.cfg.Target.SourceExtensions

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || (matcher != nil && matcher.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		if !hasExtension(path, extensions) {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		visit(rel, string(data))
		return nil
	})
}

func (c *SecurityCheckerImpl) projectRoot() string {
	root := c.cfg.Target.WorkingDir
	if root == "" {
		root = "."
	}
	return root
}

// ignoreMatcher loads the project's .gitignore when present
func (c *SecurityCheckerImpl) ignoreMatcher(root string) *gitignore.GitIgnore {
	matcher, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return matcher
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// detailInt extracts an integer detail from a security check result
func detailInt(r domain.SecurityCheckResult, key string) int {
	v, ok := r.Details[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
