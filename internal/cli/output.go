package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yigit/sharesuki/internal/app/models"
	"github.com/yigit/sharesuki/internal/app/models/dto"
	"github.com/yigit/sharesuki/internal/bootstrap"
)

// closeTimeout bounds how long a command waits for queued work on exit
const closeTimeout = 30 * time.Second

// closeApp releases deps and folds any failure into *errp.
func closeApp(cmd *cobra.Command, deps *bootstrap.Dependencies, errp *error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), closeTimeout)
	defer cancel()

	if err := deps.Close(ctx); err != nil {
		*errp = errors.Join(*errp, err)
	}
}

// printer renders command results as text tables or JSON.
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(opts *RootOptions, cmd *cobra.Command) *printer {
	return &printer{format: opts.Format, w: cmd.OutOrStdout()}
}

func (p *printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) records(records []*models.SkillRecord) error {
	if p.format == "json" {
		return p.writeJSON(records)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTUDENT\tNAME\tCLASS\tWANTS\tOFFERS\tEMAIL")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.StudentID, r.FullName, cell(r.ClassName), cell(r.WantedSkill), cell(r.OfferedSkill), cell(r.Email))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.w, "%d record(s)\n", len(records))
	return err
}

func (p *printer) notified(subjectID int64, notified []*models.SkillRecord) error {
	if p.format == "json" {
		return p.writeJSON(dto.NotifyResultResponse{
			SubjectID:     subjectID,
			NotifiedCount: len(notified),
			Notified:      notified,
		})
	}

	names := make([]string, 0, len(notified))
	for _, r := range notified {
		names = append(names, fmt.Sprintf("%s (#%d)", r.FullName, r.ID))
	}
	if len(names) == 0 {
		_, err := fmt.Fprintf(p.w, "record %d: no matches notified\n", subjectID)
		return err
	}
	_, err := fmt.Fprintf(p.w, "record %d: notified %d match(es): %s\n", subjectID, len(names), strings.Join(names, ", "))
	return err
}

func (p *printer) total(total int) error {
	if p.format == "json" {
		return p.writeJSON(map[string]int{"notifiedCount": total})
	}
	_, err := fmt.Fprintf(p.w, "notified %d match(es)\n", total)
	return err
}

func (p *printer) migrate(result MigrateResult) error {
	if p.format == "json" {
		return p.writeJSON(result)
	}
	if len(result.Pending) == 0 {
		_, err := fmt.Fprintln(p.w, "database is up to date")
		return err
	}
	if result.DryRun {
		_, err := fmt.Fprintf(p.w, "pending: %s\n", strings.Join(result.Pending, ", "))
		return err
	}
	_, err := fmt.Fprintf(p.w, "applied %d migration(s): %s\n", result.Applied, strings.Join(result.Pending, ", "))
	return err
}

func cell(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
