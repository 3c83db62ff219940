package echoapi

import (
	"net/http"
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/student"
)

type (
	studentMVC struct {
		svc        student.Service
		validate   *validator.Validate
		translator ut.Translator
	}

	// studentForm is the HTML form of a student; skills are comma separated.
	studentForm struct {
		Name   string  `form:"name"`
		Age    int     `form:"age"`
		Email  string  `form:"email"`
		GPA    float64 `form:"gpa"`
		Major  string  `form:"major"`
		Year   string  `form:"year"`
		Skills string  `form:"skills"`
	}

	studentFormView struct {
		Action  string
		Heading string
		Form    studentForm
		Errors  map[string]string
		Years   []string
	}

	studentListView struct {
		Heading  string
		Students []student.Student
		Adults   bool
	}
)

func registerStudentMVC(g *echo.Group, svc student.Service, validate *validator.Validate, translator ut.Translator) {
	mvc := studentMVC{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	g.GET("", mvc.index)
	g.GET("/adults", mvc.adults)
	g.GET("/create", mvc.createForm)
	g.POST("/create", mvc.create)
	g.GET("/:id/edit", mvc.editForm)
	g.POST("/:id/edit", mvc.edit)
	g.GET("/:id/delete", mvc.deleteForm)
	g.POST("/:id/delete", mvc.destroy)
}

func newStudentForm(std student.Student) studentForm {
	return studentForm{
		Name:   std.Name,
		Age:    std.Age,
		Email:  std.Email,
		GPA:    std.GPA,
		Major:  std.Major,
		Year:   std.Year,
		Skills: strings.Join(std.Skills, ", "),
	}
}

func (f studentForm) newStudent() student.NewStudent {
	return student.NewStudent{
		Name:   f.Name,
		Age:    f.Age,
		Email:  f.Email,
		GPA:    f.GPA,
		Major:  f.Major,
		Year:   f.Year,
		Skills: core.SplitList(f.Skills),
	}
}

func redirectToIndex(ctx echo.Context) error {
	return ctx.Redirect(http.StatusSeeOther, "/students")
}

// renderForm re-renders the form with the field errors of err, or returns err when it is not a validation error.
func (mvc *studentMVC) renderForm(ctx echo.Context, view studentFormView, err error) error {
	code := http.StatusOK
	if err != nil {
		fldErrs, ok := core.FieldErrors(err, mvc.translator)
		if !ok {
			return err
		}
		code = http.StatusBadRequest
		view.Errors = fldErrs
	}
	view.Years = student.Years
	return ctx.Render(code, tplStudentForm, newPage(ctx, view.Heading, view))
}

func (mvc *studentMVC) getStudent(ctx echo.Context) (student.Student, error) {
	id, err := bindID(ctx)
	if err != nil {
		return student.Student{}, err
	}
	std, err := mvc.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return std, nil
}

// Handlers

func (mvc *studentMVC) index(ctx echo.Context) error {
	var ord Ordering
	ord.Bind(ctx)

	stds, err := mvc.svc.QueryAll(ctx.Request().Context(), ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	view := studentListView{Heading: "All Students", Students: stds}
	return ctx.Render(http.StatusOK, tplStudentIndex, newPage(ctx, view.Heading, view))
}

func (mvc *studentMVC) adults(ctx echo.Context) error {
	var ord Ordering
	ord.Bind(ctx)

	stds, err := mvc.svc.QueryAdults(ctx.Request().Context(), ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying adult students")
	}
	view := studentListView{Heading: "Students older than " + strconv.Itoa(student.AdultAge), Students: stds, Adults: true}
	return ctx.Render(http.StatusOK, tplStudentIndex, newPage(ctx, view.Heading, view))
}

func (mvc *studentMVC) createForm(ctx echo.Context) error {
	return mvc.renderForm(ctx, studentFormView{Action: "/students/create", Heading: "Add Student"}, nil)
}

func (mvc *studentMVC) create(ctx echo.Context) error {
	var form studentForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to studentForm")
	}
	view := studentFormView{Action: "/students/create", Heading: "Add Student", Form: form}

	data := form.newStudent()
	if err := data.Validate(ctx.Request().Context(), mvc.validate, mvc.svc); err != nil {
		return mvc.renderForm(ctx, view, err)
	}
	if _, err := mvc.svc.Create(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating student")
	}
	return redirectToIndex(ctx)
}

func (mvc *studentMVC) editForm(ctx echo.Context) error {
	std, err := mvc.getStudent(ctx)
	if err != nil {
		return err
	}
	view := studentFormView{
		Action:  "/students/" + strconv.Itoa(std.ID) + "/edit",
		Heading: "Edit Student",
		Form:    newStudentForm(std),
	}
	return mvc.renderForm(ctx, view, nil)
}

func (mvc *studentMVC) edit(ctx echo.Context) error {
	std, err := mvc.getStudent(ctx)
	if err != nil {
		return err
	}
	var form studentForm
	if err = (&echo.DefaultBinder{}).BindBody(ctx, &form); err != nil {
		return errors.Wrap(err, "binding to studentForm")
	}
	view := studentFormView{Action: "/students/" + strconv.Itoa(std.ID) + "/edit", Heading: "Edit Student", Form: form}

	data := student.UpdateStudent(form.newStudent())
	if err = data.Validate(ctx.Request().Context(), std, mvc.validate, mvc.svc); err != nil {
		return mvc.renderForm(ctx, view, err)
	}
	if _, err = mvc.svc.Update(ctx.Request().Context(), std.ID, data); err != nil {
		return errors.Wrap(err, "updating student")
	}
	return redirectToIndex(ctx)
}

func (mvc *studentMVC) deleteForm(ctx echo.Context) error {
	std, err := mvc.getStudent(ctx)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, tplStudentDelete, newPage(ctx, "Delete Student", std))
}

// destroy deletes the student if it still exists and always goes back to the index.
func (mvc *studentMVC) destroy(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	if err = mvc.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return redirectToIndex(ctx)
}
