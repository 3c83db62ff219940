package student_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/catalog"
	"github.com/trezcool/campus/core/student"
	appfs "github.com/trezcool/campus/fs"
	"github.com/trezcool/campus/storage/database/inmem"
	"github.com/trezcool/campus/storage/static"
)

func newValidator() (*validator.Validate, func(error) (map[string]string, bool)) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)
	return validate, func(err error) (map[string]string, bool) { return core.FieldErrors(err, translator) }
}

func seededService(t *testing.T) student.Service {
	t.Helper()
	stds, err := static.LoadStudents(appfs.FS)
	require.NoError(t, err)

	svc := student.NewService(inmemdb.NewStudentRepository(inmemdb.Open()))
	n, err := svc.Seed(context.Background(), stds)
	require.NoError(t, err)
	require.Equal(t, len(stds), n)
	return svc
}

func Test_NewStudent_Validate(t *testing.T) {
	validate, fieldErrors := newValidator()
	svc := seededService(t)

	tests := []struct {
		name    string
		ns      student.NewStudent
		wantErr map[string]string
	}{
		{
			name: "valid",
			ns:   student.NewStudent{Name: "  Sara  ", Age: 20, Email: "SARA@university.edu", GPA: 3.1, Year: student.YearFreshman},
		},
		{
			name: "valid without optional fields",
			ns:   student.NewStudent{Name: "Sara", Age: 20},
		},
		{
			name:    "blank name",
			ns:      student.NewStudent{Name: "   ", Age: 20},
			wantErr: map[string]string{"name": "this field is required"},
		},
		{
			name: "out of range",
			ns:   student.NewStudent{Name: "Sara", Age: 151, GPA: 4.5},
			wantErr: map[string]string{
				"age": "age must be 150 or less",
				"gpa": "gpa must be 4 or less",
			},
		},
		{
			name: "invalid email and year",
			ns:   student.NewStudent{Name: "Sara", Age: 20, Email: "sara", Year: "Alumni"},
			wantErr: map[string]string{
				"email": "email must be a valid email address",
				"year":  "must be one of Freshman, Sophomore, Junior, Senior",
			},
		},
		{
			name:    "blank skill",
			ns:      student.NewStudent{Name: "Sara", Age: 20, Skills: []string{"Go", " "}},
			wantErr: map[string]string{"skills[1]": "this field cannot be blank"},
		},
		{
			name:    "email taken",
			ns:      student.NewStudent{Name: "Sara", Age: 20, Email: "Ayesha@University.edu"},
			wantErr: map[string]string{"email": "a student with this email already exists"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ns.Validate(context.Background(), validate, svc)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			fldErrs, ok := fieldErrors(err)
			require.True(t, ok, "unexpected error: %v", err)
			assert.Equal(t, tt.wantErr, fldErrs)
		})
	}
}

func Test_UpdateStudent_Validate(t *testing.T) {
	validate, fieldErrors := newValidator()
	svc := seededService(t)
	ctx := context.Background()

	ayesha, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)

	us := student.UpdateStudent{Name: ayesha.Name, Age: ayesha.Age, Email: ayesha.Email}
	assert.NoError(t, us.Validate(ctx, ayesha, validate, svc), "own email is not a conflict")

	us.Email = "zainab@university.edu"
	fldErrs, ok := fieldErrors(us.Validate(ctx, ayesha, validate, svc))
	require.True(t, ok)
	assert.Equal(t, map[string]string{"email": student.ErrEmailExists.Error()}, fldErrs)
}

func Test_service(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t)

	t.Run("seed only once", func(t *testing.T) {
		n, err := svc.Seed(ctx, []student.Student{{Name: "Sara", Age: 20}})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("adults", func(t *testing.T) {
		stds, err := svc.QueryAdults(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(stds))

		std, err := svc.Create(ctx, student.NewStudent{Name: "Sara", Age: 18})
		require.NoError(t, err)
		assert.False(t, std.IsAdult())

		stds, err = svc.QueryAdults(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids(stds), std.ID)
	})

	t.Run("ordering", func(t *testing.T) {
		stds, err := svc.Filter(ctx, student.QueryFilter{Year: " Junior "}, core.DBOrdering{Field: "gpa"}, core.DBOrdering{Field: "password"})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 5}, ids(stds))
	})

	t.Run("update & delete", func(t *testing.T) {
		std, err := svc.Update(ctx, 3, student.UpdateStudent{Name: "Hassan Ali", Age: 20, Year: student.YearJunior})
		require.NoError(t, err)
		assert.Equal(t, student.YearJunior, std.Year)

		_, err = svc.Update(ctx, 99, student.UpdateStudent{Name: "Nobody", Age: 20})
		assert.Equal(t, student.ErrNotFound, err)

		require.NoError(t, svc.Delete(ctx, 3))
		_, err = svc.GetByID(ctx, 3)
		assert.Equal(t, student.ErrNotFound, err)
	})
}

func Test_catalog(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t)

	b, err := student.NewCatalogSource(svc).Open(ctx)
	require.NoError(t, err)

	view := b.View()
	assert.Equal(t, "Student Information System", view.Title)
	require.Len(t, view.Filters, 1)
	assert.Equal(t, []string{"All", "Senior", "Junior", "Sophomore"}, view.Filters[0].Options)
	assert.Equal(t, 6, view.Summary.VisibleCount)

	require.NoError(t, b.SetCriteria(catalog.Criteria{"year": "Junior"}))
	view = b.View()
	assert.Equal(t, []int{2, 4, 5}, itemIDs(view))
	assert.Equal(t, 6, view.Summary.TotalCount)
	assert.Equal(t, 3, view.Summary.VisibleCount)
	gpa, ok := view.Summary.Average("gpa")
	require.True(t, ok)
	assert.Equal(t, "3.77", gpa.Display(), "average over every student, not the visible ones")

	b.Toggle(4)
	view = b.View()
	require.True(t, view.Items[1].Expanded)
	assert.Equal(t, []catalog.Section{{
		Title: "Skills & Technologies",
		Items: []string{"UI/UX Design", "Figma", "Adobe XD", "Prototyping"},
	}}, view.Items[1].Details)
	assert.Contains(t, view.Items[1].Fields, catalog.Field{Label: "Age", Value: "22 years"})

	require.NoError(t, b.SetCriteria(catalog.Criteria{"year": "junior"}))
	view = b.View()
	assert.True(t, view.Empty, "values are case sensitive")
	assert.Equal(t, "No students found matching your filters.", view.EmptyMessage)
}

func ids(stds []student.Student) []int {
	res := make([]int, 0, len(stds))
	for _, s := range stds {
		res = append(res, s.ID)
	}
	return res
}

func itemIDs(view catalog.View) []int {
	res := make([]int, 0, len(view.Items))
	for _, item := range view.Items {
		res = append(res, item.ID)
	}
	return res
}
