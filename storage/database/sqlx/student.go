package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/student"
)

const studentColumns = "id, name, age, email, gpa, major, year, skills"

type (
	studentRepository struct {
		db *sqlx.DB
	}

	// studentRow is a student as stored: skills are a JSON array, a missing email is NULL.
	studentRow struct {
		ID     int            `db:"id"`
		Name   string         `db:"name"`
		Age    int            `db:"age"`
		Email  sql.NullString `db:"email"`
		GPA    float64        `db:"gpa"`
		Major  string         `db:"major"`
		Year   string         `db:"year"`
		Skills string         `db:"skills"`
	}
)

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func newStudentRow(std student.Student) (studentRow, error) {
	skills := std.Skills
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return studentRow{}, errors.Wrap(err, "encoding skills")
	}
	return studentRow{
		ID:     std.ID,
		Name:   std.Name,
		Age:    std.Age,
		Email:  sql.NullString{String: std.Email, Valid: std.Email != ""},
		GPA:    std.GPA,
		Major:  std.Major,
		Year:   std.Year,
		Skills: string(b),
	}, nil
}

func (row studentRow) student() (student.Student, error) {
	std := student.Student{
		ID:    row.ID,
		Name:  row.Name,
		Age:   row.Age,
		Email: row.Email.String,
		GPA:   row.GPA,
		Major: row.Major,
		Year:  row.Year,
	}
	if row.Skills != "" {
		if err := json.Unmarshal([]byte(row.Skills), &std.Skills); err != nil {
			return student.Student{}, errors.Wrapf(err, "decoding skills of student %d", row.ID)
		}
	}
	return std, nil
}

func (repo *studentRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedIDs ...int) error {
	q := "SELECT COUNT(*) FROM student WHERE email = ?"
	args := []interface{}{email}
	if len(excludedIDs) > 0 {
		var err error
		q, args, err = sqlx.In(q+" AND id NOT IN (?)", email, excludedIDs)
		if err != nil {
			return errors.Wrap(err, "building query")
		}
	}

	var n int
	if err := repo.db.GetContext(ctx, &n, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if n > 0 {
		return student.ErrEmailExists
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	row, err := newStudentRow(std)
	if err != nil {
		return student.Student{}, err
	}

	q := repo.db.Rebind(`INSERT INTO student (name, age, email, gpa, major, year, skills)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	err = repo.db.GetContext(ctx, &std.ID, q, row.Name, row.Age, row.Email, row.GPA, row.Major, row.Year, row.Skills)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo *studentRepository) QueryStudents(ctx context.Context, filter student.QueryFilter, orderings ...core.DBOrdering) ([]student.Student, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.OlderThan > 0 {
		where = append(where, "age > ?")
		args = append(args, filter.OlderThan)
	}
	if filter.Year != "" {
		where = append(where, "year = ?")
		args = append(args, filter.Year)
	}

	q := "SELECT " + studentColumns + " FROM student"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += orderBy(orderings)

	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	var stds []student.Student
	for _, row := range rows {
		std, err := row.student()
		if err != nil {
			return nil, err
		}
		stds = append(stds, std)
	}
	return stds, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	var row studentRow
	q := repo.db.Rebind("SELECT " + studentColumns + " FROM student WHERE id = ?")
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return row.student()
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	row, err := newStudentRow(std)
	if err != nil {
		return student.Student{}, err
	}

	q := `UPDATE student SET name = :name, age = :age, email = :email, gpa = :gpa, major = :major,
		year = :year, skills = :skills WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In("DELETE FROM student WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}

func (repo *studentRepository) CountStudents(ctx context.Context) (int, error) {
	var n int
	if err := repo.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM student"); err != nil {
		return 0, errors.Wrap(err, "counting students")
	}
	return n, nil
}

// orderBy renders orderings as an ORDER BY clause, defaulting to id. Fields must already be whitelisted.
func orderBy(orderings []core.DBOrdering) string {
	if len(orderings) == 0 {
		return " ORDER BY id ASC"
	}
	clauses := make([]string, 0, len(orderings))
	for _, ord := range orderings {
		clauses = append(clauses, ord.String())
	}
	return " ORDER BY " + strings.Join(clauses, ", ")
}
