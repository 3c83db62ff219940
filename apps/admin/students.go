package main

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/student"
	appfs "github.com/trezcool/campus/fs"
	"github.com/trezcool/campus/storage/static"
)

var errInvalidStudent = errors.New("invalid student")

func (cli *commandLine) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample students into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stds, err := static.LoadStudents(appfs.FS)
			if err != nil {
				return err
			}
			n, err := cli.stdSvc.Seed(cmd.Context(), stds)
			if err != nil {
				return errors.Wrap(err, "seeding students")
			}
			if n == 0 {
				fmt.Fprintln(cli.out, "students already present, nothing to seed")
				return nil
			}
			fmt.Fprintf(cli.out, "%d students seeded\n", n)
			return nil
		},
	}
}

func (cli *commandLine) addStudentCommand() *cobra.Command {
	var (
		data   student.NewStudent
		skills string
	)
	cmd := &cobra.Command{
		Use:   "addstudent",
		Short: "Create a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data.Skills = core.SplitList(skills)
			if err := data.Validate(cmd.Context(), cli.validate, cli.stdSvc); err != nil {
				fldErrs, ok := core.FieldErrors(err, cli.translator)
				if !ok {
					return err
				}
				cli.printFieldErrors(fldErrs)
				return errInvalidStudent
			}
			std, err := cli.stdSvc.Create(cmd.Context(), data)
			if err != nil {
				return errors.Wrap(err, "creating student")
			}
			fmt.Fprintf(cli.out, "student #%d created\n", std.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&data.Name, "name", "", "full name (required)")
	f.IntVar(&data.Age, "age", 0, "age in years (required)")
	f.StringVar(&data.Email, "email", "", "unique email address")
	f.Float64Var(&data.GPA, "gpa", 0, "grade point average, 0 to 4")
	f.StringVar(&data.Major, "major", "", "major")
	f.StringVar(&data.Year, "year", "", "one of Freshman, Sophomore, Junior, Senior")
	f.StringVar(&skills, "skills", "", "comma separated skills")
	return cmd
}

func (cli *commandLine) printFieldErrors(fldErrs map[string]string) {
	fields := make([]string, 0, len(fldErrs))
	for fld := range fldErrs {
		fields = append(fields, fld)
	}
	sort.Strings(fields)
	for _, fld := range fields {
		fmt.Fprintf(cli.out, "  %s: %s\n", fld, fldErrs[fld])
	}
}
