package mutator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// toggleScript sets DisableRealtimeMonitoring, waits and verifies the result.
// Every message also goes to the log file, since an elevated child started
// through RunAs has no stdout the agent can read.
//
//nolint:gochecknoglobals // Parsed once, read-only afterwards.
var toggleScript = template.Must(template.New("toggle").Parse(`$ErrorActionPreference = 'Stop'
$logPath = '{{ .LogPath }}'
function Write-Log([string]$Message) {
    Write-Output $Message
    Add-Content -LiteralPath $logPath -Value $Message -ErrorAction SilentlyContinue
}
try {
    Write-Log 'Attempting to {{ .Verb }} real-time protection...'
    Set-MpPreference -DisableRealtimeMonitoring {{ .Disable }}
    Start-Sleep -Milliseconds {{ .SettleMillis }}
    $disabled = (Get-MpPreference).DisableRealtimeMonitoring
    if ($disabled -ne {{ .Disable }}) {
        Write-Log 'Failed to {{ .Verb }} real-time protection: preference did not change'
        exit 1
    }
    Write-Log 'Successfully {{ .Verb }}d real-time protection'
    exit 0
} catch {
    Write-Log "Error: $($_.Exception.Message)"
    exit 1
}
`))

// scriptParams are the values substituted into toggleScript.
type scriptParams struct {
	// Verb is "enable" or "disable".
	Verb string
	// Disable is the PowerShell literal for DisableRealtimeMonitoring.
	Disable string
	// SettleMillis is the wait before verification.
	SettleMillis int64
	// LogPath is the output log, escaped for a single-quoted string.
	LogPath string
}

// renderScript produces the script that drives protection to enable and
// mirrors its output into logPath.
func renderScript(enable bool, settle time.Duration, logPath string) ([]byte, error) {
	params := scriptParams{
		Verb:         "disable",
		Disable:      "$true",
		SettleMillis: settle.Milliseconds(),
		LogPath:      quotePowerShell(logPath),
	}

	if enable {
		params.Verb = "enable"
		params.Disable = "$false"
	}

	var buf bytes.Buffer
	if err := toggleScript.Execute(&buf, params); err != nil {
		return nil, fmt.Errorf("render toggle script: %w", err)
	}

	return buf.Bytes(), nil
}

// quotePowerShell escapes s for use inside a single-quoted PowerShell string.
func quotePowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
