package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/yigit/sharesuki/internal/app/models"
)

const skillTable = "skill_records"

var skillColumns = []string{
	"id",
	"student_id",
	"class_name",
	"attendance_number",
	"gender",
	"full_name",
	"email",
	"wanted_skill",
	"wanted_skill_note",
	"offered_skill",
	"offered_skill_note",
	"availability_window",
	"registered_at",
}

// Columns a search query looks into.
var searchableColumns = []string{"full_name", "wanted_skill", "offered_skill", "class_name"}

// skillQueries builds the SQL shared by both drivers. Only the placeholder
// format and the substring function differ between dialects.
type skillQueries struct {
	sb squirrel.StatementBuilderType
	// containsExpr must be true when its second argument occurs in column %s.
	containsExpr func(column string) string
}

func newPostgresSkillQueries() skillQueries {
	return skillQueries{
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		containsExpr: func(column string) string {
			return "strpos(" + column + ", ?) > 0"
		},
	}
}

func newSQLiteSkillQueries() skillQueries {
	return skillQueries{
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		containsExpr: func(column string) string {
			return "instr(" + column + ", ?) > 0"
		},
	}
}

func (q skillQueries) insert(rec *models.SkillRecord) squirrel.InsertBuilder {
	return q.sb.Insert(skillTable).
		Columns(skillColumns[1:]...).
		Values(
			rec.StudentID,
			rec.ClassName,
			rec.AttendanceNumber,
			rec.Gender,
			rec.FullName,
			rec.Email,
			rec.WantedSkill,
			rec.WantedSkillNote,
			rec.OfferedSkill,
			rec.OfferedSkillNote,
			rec.AvailabilityWindow,
			rec.RegisteredAt,
		)
}

func (q skillQueries) update(rec *models.SkillRecord) (string, []interface{}, error) {
	return q.sb.Update(skillTable).
		Set("student_id", rec.StudentID).
		Set("class_name", rec.ClassName).
		Set("attendance_number", rec.AttendanceNumber).
		Set("gender", rec.Gender).
		Set("full_name", rec.FullName).
		Set("email", rec.Email).
		Set("wanted_skill", rec.WantedSkill).
		Set("wanted_skill_note", rec.WantedSkillNote).
		Set("offered_skill", rec.OfferedSkill).
		Set("offered_skill_note", rec.OfferedSkillNote).
		Set("availability_window", rec.AvailabilityWindow).
		Where(squirrel.Eq{"id": rec.ID}).
		ToSql()
}

func (q skillQueries) delete(id int64) (string, []interface{}, error) {
	return q.sb.Delete(skillTable).Where(squirrel.Eq{"id": id}).ToSql()
}

func (q skillQueries) selectAll() squirrel.SelectBuilder {
	return q.sb.Select(skillColumns...).
		From(skillTable).
		OrderBy("registered_at DESC", "id DESC")
}

func (q skillQueries) byID(id int64) (string, []interface{}, error) {
	return q.sb.Select(skillColumns...).
		From(skillTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func (q skillQueries) search(filter SkillFilter) (string, []interface{}, error) {
	query := q.selectAll()
	if filter.Query != "" {
		or := squirrel.Or{}
		for _, column := range searchableColumns {
			or = append(or, squirrel.Expr(q.containsExpr(column), filter.Query))
		}
		query = query.Where(or)
	}
	return query.ToSql()
}

func (q skillQueries) count() (string, []interface{}, error) {
	return q.sb.Select("COUNT(*)").From(skillTable).ToSql()
}

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSkillRecord(row rowScanner) (*models.SkillRecord, error) {
	var rec models.SkillRecord
	err := row.Scan(
		&rec.ID,
		&rec.StudentID,
		&rec.ClassName,
		&rec.AttendanceNumber,
		&rec.Gender,
		&rec.FullName,
		&rec.Email,
		&rec.WantedSkill,
		&rec.WantedSkillNote,
		&rec.OfferedSkill,
		&rec.OfferedSkillNote,
		&rec.AvailabilityWindow,
		&rec.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
