package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	stds := make([]student.Student, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		stds = append(stds, copyStudent(*s))
	}
	sort.Slice(stds, func(i, j int) bool { return stds[i].ID < stds[j].ID })
	return stds
}

func (repo *studentRepository) CheckEmailUniqueness(_ context.Context, email string, excludedIDs ...int) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, std := range repo.db.table {
		if std.Email == email && !isExcluded(std.ID, excludedIDs) {
			return student.ErrEmailExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(_ context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	std.ID = repo.db.pkCount
	std = copyStudent(std)
	repo.db.table[std.ID] = &std
	return copyStudent(std), nil
}

func (repo *studentRepository) QueryStudents(_ context.Context, filter student.QueryFilter, orderings ...core.DBOrdering) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	stds := repo.query()

	if filter.OlderThan > 0 {
		var filtered []student.Student
		for _, s := range stds {
			if s.Age > filter.OlderThan {
				filtered = append(filtered, s)
			}
		}
		stds = filtered
	}
	if stds != nil && filter.Year != "" {
		var filtered []student.Student
		for _, s := range stds {
			if s.Year == filter.Year {
				filtered = append(filtered, s)
			}
		}
		stds = filtered
	}

	if len(orderings) > 0 {
		sort.SliceStable(stds, func(i, j int) bool { return lessStudent(stds[i], stds[j], orderings) })
	}
	return stds, nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id int) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if std, ok := repo.db.table[id]; ok {
		return copyStudent(*std), nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(_ context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[std.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	std = copyStudent(std)
	repo.db.table[std.ID] = &std
	return copyStudent(std), nil
}

func (repo *studentRepository) DeleteStudentsByID(_ context.Context, ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func (repo *studentRepository) CountStudents(_ context.Context) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return len(repo.db.table), nil
}

func copyStudent(s student.Student) student.Student {
	s.Skills = append([]string(nil), s.Skills...)
	return s
}

func isExcluded(id int, excludedIDs []int) bool {
	for _, exclID := range excludedIDs {
		if exclID == id {
			return true
		}
	}
	return false
}

// lessStudent compares a and b field by field, following orderings.
func lessStudent(a, b student.Student, orderings []core.DBOrdering) bool {
	for _, ord := range orderings {
		var cmp int
		switch ord.Field {
		case "id":
			cmp = compareNum(float64(a.ID), float64(b.ID))
		case "name":
			cmp = strings.Compare(a.Name, b.Name)
		case "age":
			cmp = compareNum(float64(a.Age), float64(b.Age))
		case "gpa":
			cmp = compareNum(a.GPA, b.GPA)
		case "year":
			cmp = strings.Compare(a.Year, b.Year)
		}
		if cmp == 0 {
			continue
		}
		if ord.Ascending {
			return cmp < 0
		}
		return cmp > 0
	}
	return false
}

func compareNum(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
