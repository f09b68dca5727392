package email

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/yigit/sharesuki/internal/app/models"
)

// MatchNotificationSubject is the subject line of every match announcement.
const MatchNotificationSubject = "[ShareSuki] Your skill match is confirmed"

const matchNotificationBody = `{{.Recipient.FullName}},

Thank you for using ShareSuki.

Your skill match is confirmed!

The skill you want to learn, "{{text .Recipient.WantedSkill}}", matches the skill
{{.Partner.FullName}} can teach, "{{text .Partner.OfferedSkill}}".

Your match
------------------------------------------------------------
Name:               {{.Partner.FullName}}
Student ID:         {{.Partner.StudentID}}
Class:              {{text .Partner.ClassName}}
Attendance number:  {{number .Partner.AttendanceNumber}}
Email:              {{text .Partner.Email}}

Can teach:          {{text .Partner.OfferedSkill}}
Details:            {{text .Partner.OfferedSkillNote}}
Available:          {{text .Partner.AvailabilityWindow}}

Wants to learn:     {{text .Partner.WantedSkill}}
Details:            {{text .Partner.WantedSkillNote}}
------------------------------------------------------------

Next steps
1. Contact your match at the email address above.
2. Agree on a schedule that works for both of you.
3. Decide where and how you will exchange skills.

When you first get in touch, mention that you matched on ShareSuki.

Happy learning!

--
ShareSuki team
`

var matchTemplate = template.Must(template.New("match").Funcs(template.FuncMap{
	"text": func(s *string) string {
		if s == nil || *s == "" {
			return "-"
		}
		return *s
	},
	"number": func(i *int) string {
		if i == nil {
			return "-"
		}
		return strconv.Itoa(*i)
	},
}).Parse(matchNotificationBody))

// ComposeMatchNotification renders the message telling recipient about partner.
func ComposeMatchNotification(recipient, partner *models.SkillRecord) (subject, body string, err error) {
	if recipient == nil || partner == nil {
		return "", "", fmt.Errorf("recipient and partner are required")
	}

	var buf bytes.Buffer
	data := struct {
		Recipient *models.SkillRecord
		Partner   *models.SkillRecord
	}{recipient, partner}

	if err := matchTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render match notification: %w", err)
	}
	return MatchNotificationSubject, buf.String(), nil
}
