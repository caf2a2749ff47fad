package aiscan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/models"
)

func TestNewScannerWithoutKeyIsDisabled(t *testing.T) {
	s, err := NewScanner(context.Background(), "", "gemini-2.5-flash-preview-09-2025")
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.False(t, s.Enabled())
	assert.NoError(t, s.Close())
}

func TestParseFindings(t *testing.T) {
	raw := `[{"cve_id":"CVE-2024-1234","severity":"High","description":"RCE in parser","affected_software":"Acme Office 3.1","remediation":"Upgrade to 3.2"}]`
	findings, err := ParseFindings(raw)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "CVE-2024-1234", findings[0].CVEID)
	assert.Equal(t, models.SeverityHigh, findings[0].Severity)
}

func TestParseFindingsStripsCodeFence(t *testing.T) {
	raw := "```json\n[{\"cve_id\":\"CVE-2023-9\",\"severity\":\"Low\",\"description\":\"d\",\"affected_software\":\"x\",\"remediation\":\"r\"}]\n```"
	findings, err := ParseFindings(raw)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "CVE-2023-9", findings[0].CVEID)
}

func TestParseFindingsEmptyArray(t *testing.T) {
	findings, err := ParseFindings("[]")
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestParseFindingsNormalizesBadSeverity(t *testing.T) {
	raw := `[{"cve_id":"CVE-2024-2","severity":"CRITICAL!!","description":"d","affected_software":"x","remediation":"r"}]`
	findings, err := ParseFindings(raw)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, models.SeverityMedium, findings[0].Severity)
}

func TestParseFindingsDropsEntriesWithoutCVE(t *testing.T) {
	raw := `[{"severity":"High","description":"no id"},{"cve_id":"CVE-2024-3","severity":"High"}]`
	findings, err := ParseFindings(raw)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "CVE-2024-3", findings[0].CVEID)
}

func TestParseFindingsRejectsProse(t *testing.T) {
	_, err := ParseFindings("I found no vulnerabilities.")
	assert.Error(t, err)
}

func TestToVulnerability(t *testing.T) {
	f := Finding{CVEID: "CVE-2024-7", Severity: models.SeverityCritical, AffectedSoftware: "LibZip 1.0"}
	v := f.ToVulnerability()
	assert.Equal(t, models.VulnOpen, v.Status)
	assert.Equal(t, "ai_scan", v.Source)
	assert.Equal(t, "CVE-2024-7", v.CVEID)
}
