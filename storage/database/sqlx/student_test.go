package sqlxrepos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/student"
	"github.com/trezcool/campus/tests"
)

func ids(stds []student.Student) []int {
	var res []int
	for _, s := range stds {
		res = append(res, s.ID)
	}
	return res
}

func Test_studentRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(testutil.PrepareDB(t))

	alice := testutil.CreateStudent(t, repo, "Alice Johnson", 20, "alice@test.cd", student.YearJunior, 3.8, "React", "Go")
	bob := testutil.CreateStudent(t, repo, "Bob", 17, "", student.YearFreshman, 3.1)
	assert.Equal(t, 1, alice.ID)
	assert.Equal(t, 2, bob.ID)

	got, err := repo.GetStudentByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	got, err = repo.GetStudentByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.Email)
	assert.Empty(t, got.Skills)

	_, err = repo.GetStudentByID(ctx, 404)
	assert.Equal(t, student.ErrNotFound, err)

	bob.Age = 19
	bob.Skills = []string{"SQL"}
	_, err = repo.UpdateStudent(ctx, bob)
	require.NoError(t, err)
	got, err = repo.GetStudentByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 19, got.Age)
	assert.Equal(t, []string{"SQL"}, got.Skills)

	_, err = repo.UpdateStudent(ctx, student.Student{ID: 404, Name: "Ghost", Age: 20})
	assert.Equal(t, student.ErrNotFound, err)

	n, err := repo.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, repo.DeleteStudentsByID(ctx, alice.ID, 404))
	n, err = repo.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func Test_studentRepository_CheckEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(testutil.PrepareDB(t))
	alice := testutil.CreateStudent(t, repo, "Alice", 20, "alice@test.cd", student.YearJunior, 3.8)
	testutil.CreateStudent(t, repo, "Bob", 21, "", student.YearJunior, 3.1)
	testutil.CreateStudent(t, repo, "Carol", 22, "", student.YearJunior, 3.3) // several NULL emails are allowed

	tests := []struct {
		name    string
		email   string
		exclIDs []int
		wantErr error
	}{
		{name: "taken", email: "alice@test.cd", wantErr: student.ErrEmailExists},
		{name: "taken by excluded", email: "alice@test.cd", exclIDs: []int{alice.ID}},
		{name: "free", email: "bob@test.cd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, repo.CheckEmailUniqueness(ctx, tt.email, tt.exclIDs...))
		})
	}
}

func Test_studentRepository_QueryStudents(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(testutil.PrepareDB(t))
	s1 := testutil.CreateStudent(t, repo, "Carol", 18, "", student.YearFreshman, 3.0)
	s2 := testutil.CreateStudent(t, repo, "Alice", 21, "", student.YearJunior, 3.9)
	s3 := testutil.CreateStudent(t, repo, "Bob", 25, "", student.YearJunior, 3.2)

	tests := []struct {
		name      string
		filter    student.QueryFilter
		orderings []core.DBOrdering
		want      []int
	}{
		{name: "all", want: []int{s1.ID, s2.ID, s3.ID}},
		{name: "older than 18", filter: student.QueryFilter{OlderThan: 18}, want: []int{s2.ID, s3.ID}},
		{name: "year", filter: student.QueryFilter{Year: student.YearJunior}, want: []int{s2.ID, s3.ID}},
		{name: "no match", filter: student.QueryFilter{Year: student.YearSenior}},
		{name: "older than 21 & junior", filter: student.QueryFilter{OlderThan: 21, Year: student.YearJunior}, want: []int{s3.ID}},
		{name: "order by name", orderings: core.ParseOrdering("name"), want: []int{s2.ID, s3.ID, s1.ID}},
		{name: "order by -gpa", orderings: core.ParseOrdering("-gpa"), want: []int{s2.ID, s3.ID, s1.ID}},
		{name: "order by year,-age", orderings: core.ParseOrdering("year,-age"), want: []int{s1.ID, s3.ID, s2.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryStudents(ctx, tt.filter, tt.orderings...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}
