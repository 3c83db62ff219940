package tests

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campus/core/student"
	"github.com/trezcool/campus/tests"
)

func studentForm(name, age, email, year, skills string) url.Values {
	v := make(url.Values)
	v.Set("name", name)
	v.Set("age", age)
	v.Set("email", email)
	v.Set("gpa", "3.5")
	v.Set("major", "Computer Science")
	v.Set("year", year)
	v.Set("skills", skills)
	return v
}

func Test_studentMVC_lists(t *testing.T) {
	app := setup(t)
	testutil.CreateStudent(t, stdRepo, "Adult Ann", 19, "ann@test.cd", student.YearSophomore, 3.2)
	testutil.CreateStudent(t, stdRepo, "Kid Kim", 17, "", student.YearFreshman, 3.9)
	testutil.CreateStudent(t, stdRepo, "Eighteen Ed", 18, "", student.YearFreshman, 2.9)

	tests := []struct {
		name        string
		path        string
		contains    []string
		notContains []string
	}{
		{name: "index", path: "/students", contains: []string{"All Students", "Adult Ann", "Kid Kim", "Eighteen Ed"}},
		{
			name: "adults", path: "/students/adults",
			contains: []string{"Students older than 18", "Adult Ann"}, notContains: []string{"Kid Kim", "Eighteen Ed"},
		},
		{name: "trailing slash", path: "/students/", contains: []string{"Adult Ann"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, rec.Body.String(), s)
			}
		})
	}
}

func Test_studentMVC_create(t *testing.T) {
	app := setup(t)
	testutil.CreateStudent(t, stdRepo, "Adult Ann", 19, "ann@test.cd", student.YearSophomore, 3.2)

	tests := []struct {
		name     string
		form     url.Values
		wantCode int
		contains []string
	}{
		{
			name: "invalid", form: studentForm(" ", "0", "nope", "Alumni", "Go"), wantCode: http.StatusBadRequest,
			contains: []string{
				"this field is required",
				"email must be a valid email address",
				"must be one of Freshman, Sophomore, Junior, Senior",
			},
		},
		{
			name: "email taken", form: studentForm("Bob", "20", "ANN@test.cd", student.YearJunior, ""),
			wantCode: http.StatusBadRequest, contains: []string{"a student with this email already exists", `value="Bob"`},
		},
		{name: "valid", form: studentForm("Bob", "20", "bob@test.cd", student.YearJunior, "Go, SQL,"), wantCode: http.StatusSeeOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newFormRequest(http.MethodPost, "/students/create", tt.form)
			app.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}

	stds, err := stdRepo.QueryStudents(context.Background(), student.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, stds, 2)
	assert.Equal(t, "bob@test.cd", stds[1].Email)
	assert.Equal(t, []string{"Go", "SQL"}, stds[1].Skills)
}

func Test_studentMVC_editAndDelete(t *testing.T) {
	ctx := context.Background()
	app := setup(t)
	ann := testutil.CreateStudent(t, stdRepo, "Adult Ann", 19, "ann@test.cd", student.YearSophomore, 3.2, "Go")
	bob := testutil.CreateStudent(t, stdRepo, "Bob", 20, "bob@test.cd", student.YearJunior, 3.0)

	t.Run("edit form", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/students/1/edit")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `value="Adult Ann"`)

		req, rec = newRequest(http.MethodGet, "/students/999/edit")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("edit (keeps own email)", func(t *testing.T) {
		req, rec := newFormRequest(http.MethodPost, "/students/1/edit", studentForm("Ann", "20", "ann@test.cd", student.YearJunior, "Go, Rust"))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/students", rec.Header().Get("Location"))

		got, err := stdRepo.GetStudentByID(ctx, ann.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ann", got.Name)
		assert.Equal(t, []string{"Go", "Rust"}, got.Skills)
	})

	t.Run("edit (email of another student)", func(t *testing.T) {
		req, rec := newFormRequest(http.MethodPost, "/students/1/edit", studentForm("Ann", "20", "bob@test.cd", student.YearJunior, ""))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/students/2/delete")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Are you sure you want to delete <strong>Bob</strong>")

		req, rec = newFormRequest(http.MethodPost, "/students/2/delete", nil)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		_, err := stdRepo.GetStudentByID(ctx, bob.ID)
		assert.Equal(t, student.ErrNotFound, err)

		// deleting a missing student still goes back to the list
		req, rec = newFormRequest(http.MethodPost, "/students/2/delete", nil)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})
}

func Test_studentMVC_csrf(t *testing.T) {
	app := setup(t, true /* csrf */)

	req, rec := newRequest(http.MethodGet, "/students/create")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var csrf *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			csrf = c
		}
	}
	require.NotNil(t, csrf)
	assert.Contains(t, rec.Body.String(), `name="_csrf" value="`+csrf.Value+`"`)

	form := studentForm("Bob", "20", "bob@test.cd", student.YearJunior, "")
	req, rec = newFormRequest(http.MethodPost, "/students/create", form, csrf)
	app.ServeHTTP(rec, req)
	assert.Contains(t, []int{http.StatusBadRequest, http.StatusForbidden}, rec.Code)

	form.Set("_csrf", csrf.Value)
	req, rec = newFormRequest(http.MethodPost, "/students/create", form, csrf)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
