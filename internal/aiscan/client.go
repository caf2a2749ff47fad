// Package aiscan asks a Gemini model to flag known vulnerabilities in the
// software inventory. Findings are advisory; they land in the vulnerability
// register with source "ai_scan" and a human triages them like manual entries.
package aiscan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/pkg/metrics"
)

// Finding is one vulnerability reported by the model.
type Finding struct {
	CVEID            string `json:"cve_id"`
	Severity         string `json:"severity"`
	Description      string `json:"description"`
	AffectedSoftware string `json:"affected_software"`
	Remediation      string `json:"remediation"`
}

// Scanner wraps the Gemini client and model used for inventory scans.
type Scanner struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

const systemPrompt = `You are a vulnerability analyst reviewing an IT software inventory.
Given a list of installed software products with vendor and version, identify publicly known vulnerabilities (CVEs) that plausibly affect them.

RULES:
1. Only report vulnerabilities you are confident apply to the listed software. An empty list is a valid answer.
2. Severity must be exactly one of: Critical, High, Medium, Low.
3. Respond ONLY with a single, minified JSON array. No markdown ticks, no "json" label, no commentary.
4. Each element MUST have the shape: {"cve_id":"CVE-XXXX-NNNN","severity":"High","description":"...","affected_software":"...","remediation":"..."}
`

// NewScanner initializes the Gemini client. An empty API key returns a nil
// Scanner and no error so callers can treat the feature as disabled.
func NewScanner(ctx context.Context, apiKey, modelName string) (*Scanner, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	return &Scanner{client: client, model: model}, nil
}

// Close releases the underlying client.
func (s *Scanner) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Enabled reports whether the scanner has a configured model.
func (s *Scanner) Enabled() bool {
	return s != nil && s.model != nil
}

// ScanLicenses analyzes the license inventory and returns the model's
// findings. Licenses without a vendor are still listed by name.
func (s *Scanner) ScanLicenses(ctx context.Context, licenses []models.License) ([]Finding, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("ai scanner is not configured")
	}
	if len(licenses) == 0 {
		return []Finding{}, nil
	}

	lines := make([]string, 0, len(licenses))
	for i := range licenses {
		lines = append(lines, fmt.Sprintf("- %s (vendor: %s, seats: %d)",
			licenses[i].Name, licenses[i].Vendor, licenses[i].Seats))
	}
	prompt := "Software inventory:\n" + strings.Join(lines, "\n")

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		metrics.AIScanRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	findings, err := parseFindings(resp)
	if err != nil {
		metrics.AIScanRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.AIScanRequestsTotal.WithLabelValues("ok").Inc()
	return findings, nil
}

func parseFindings(resp *genai.GenerateContentResponse) ([]Finding, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil ||
		resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from model")
	}
	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response type from model: %T", part)
	}
	return ParseFindings(string(text))
}

// ParseFindings decodes the model's JSON array, tolerating the markdown code
// fences some models wrap around structured output despite instructions.
func ParseFindings(text string) ([]Finding, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var findings []Finding
	if err := json.Unmarshal([]byte(cleaned), &findings); err != nil {
		return nil, fmt.Errorf("failed to parse scan response: %w (response was: %s)", err, text)
	}
	out := findings[:0]
	for _, f := range findings {
		if f.CVEID == "" {
			continue
		}
		if !validSeverity(f.Severity) {
			f.Severity = models.SeverityMedium
		}
		out = append(out, f)
	}
	return out, nil
}

func validSeverity(s string) bool {
	switch s {
	case models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow:
		return true
	}
	return false
}

// ToVulnerability converts a finding into a register entry with ai_scan
// provenance.
func (f Finding) ToVulnerability() models.Vulnerability {
	return models.Vulnerability{
		CVEID:            f.CVEID,
		Severity:         f.Severity,
		Status:           models.VulnOpen,
		Description:      f.Description,
		AffectedSoftware: f.AffectedSoftware,
		Remediation:      f.Remediation,
		Source:           "ai_scan",
	}
}
