package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
)

const (
	maxEmailRecipients = 5

	// LINE Notify personal access tokens are alphanumeric; the backend
	// accepts 40-64 characters.
	lineTokenMinLen = 40
	lineTokenMaxLen = 64

	// Only Slack incoming-webhook URLs are accepted as webhook targets.
	slackWebhookPrefix = "https://hooks.slack.com/"
)

var lineTokenPattern = regexp.MustCompile(fmt.Sprintf(`^[A-Za-z0-9]{%d,%d}$`, lineTokenMinLen, lineTokenMaxLen))

// SplitRecipients turns the comma-separated recipients field into trimmed
// entries, dropping empties. It does not deduplicate; duplicates are a
// validation error, not something to fix silently.
func SplitRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NotificationSettings checks a draft against the server's rules: at least
// one channel enabled; 1-5 unique (case-insensitive) email recipients when
// email is on; a well-formed LINE token; a trusted Slack webhook URL.
func NotificationSettings(s dtos.NotificationSettings) *FieldErrors {
	if !s.EmailEnabled && !s.LineEnabled && !s.SlackEnabled {
		return &FieldErrors{Message: "enable at least one notification channel"}
	}

	fields := map[string]string{}

	if s.EmailEnabled {
		if msg := checkRecipients(s.EmailRecipients); msg != "" {
			fields["email_recipients"] = msg
		}
	}

	if s.LineEnabled && !lineTokenPattern.MatchString(s.LineToken) {
		fields["line_notify_token"] = fmt.Sprintf("token must be %d-%d alphanumeric characters", lineTokenMinLen, lineTokenMaxLen)
	}

	if s.SlackEnabled && !strings.HasPrefix(s.SlackWebhookURL, slackWebhookPrefix) {
		fields["slack_webhook_url"] = "webhook URL must start with " + slackWebhookPrefix
	}

	if len(fields) > 0 {
		return &FieldErrors{Message: "notification settings are invalid", Fields: fields}
	}
	return nil
}

func checkRecipients(recipients []string) string {
	trimmed := make([]string, 0, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r != "" {
			trimmed = append(trimmed, r)
		}
	}

	if len(trimmed) == 0 {
		return "at least one recipient is required"
	}
	if len(trimmed) > maxEmailRecipients {
		return fmt.Sprintf("at most %d recipients are allowed", maxEmailRecipients)
	}

	seen := make(map[string]bool, len(trimmed))
	for _, r := range trimmed {
		if err := validate.Var(r, "required,email"); err != nil {
			return fmt.Sprintf("%q is not a valid email address", r)
		}
		lower := strings.ToLower(r)
		if seen[lower] {
			return fmt.Sprintf("duplicate recipient %q", r)
		}
		seen[lower] = true
	}
	return ""
}
