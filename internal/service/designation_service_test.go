package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hr-payroll/internal/event"
	"hr-payroll/internal/model"
	"hr-payroll/internal/repository"
)

type designationFixture struct {
	svc          *DesignationService
	designations *repository.MockDesignationRepository
	departments  *repository.MockDepartmentRepository
}

func newDesignationFixture() designationFixture {
	designations := new(repository.MockDesignationRepository)
	departments := new(repository.MockDepartmentRepository)
	svc := NewDesignationService(designations, departments, testValidator(), event.NewBus())
	fixDeps(&svc.deps, "g-1")
	return designationFixture{svc: svc, designations: designations, departments: departments}
}

func TestDesignationService_Create(t *testing.T) {
	eng := model.Department{ID: "d1", Name: "Engineering", Status: model.StatusActive}

	t.Run("creates under an active department", func(t *testing.T) {
		f := newDesignationFixture()
		f.departments.On("FindByID", mock.Anything, "t1", "d1").Return(eng, nil)
		f.designations.On("ExistsActiveByTitle", mock.Anything, "t1", "d1", "Engineer", "").Return(false, nil)
		f.designations.On("Create", mock.Anything, mock.Anything).Return(nil)

		g, err := f.svc.Create(ctx, actor, model.DesignationRequest{Title: " Engineer ", DepartmentID: "d1"})
		require.NoError(t, err)
		assert.Equal(t, "g-1", g.ID)
		assert.Equal(t, "Engineer", g.Title)
		require.NotNil(t, g.Department)
		assert.Equal(t, "Engineering", g.Department.Name)
	})

	t.Run("requires title and department", func(t *testing.T) {
		f := newDesignationFixture()
		_, err := f.svc.Create(ctx, actor, model.DesignationRequest{Title: "Engineer"})
		assert.EqualError(t, err, "BAD_REQUEST: Title and department are required")
	})

	t.Run("inactive department reads as missing", func(t *testing.T) {
		f := newDesignationFixture()
		closed := eng
		closed.Status = model.StatusInactive
		f.departments.On("FindByID", mock.Anything, "t1", "d1").Return(closed, nil)

		_, err := f.svc.Create(ctx, actor, model.DesignationRequest{Title: "Engineer", DepartmentID: "d1"})
		assert.ErrorIs(t, err, model.ErrDepartmentNotFound)
	})

	t.Run("title unique per department", func(t *testing.T) {
		f := newDesignationFixture()
		f.departments.On("FindByID", mock.Anything, "t1", "d1").Return(eng, nil)
		f.designations.On("ExistsActiveByTitle", mock.Anything, "t1", "d1", "Engineer", "").Return(true, nil)

		_, err := f.svc.Create(ctx, actor, model.DesignationRequest{Title: "Engineer", DepartmentID: "d1"})
		assert.EqualError(t, err, "BAD_REQUEST: Designation title already exists in this department (title)")
	})

	t.Run("duplicate on insert", func(t *testing.T) {
		f := newDesignationFixture()
		f.departments.On("FindByID", mock.Anything, "t1", "d1").Return(eng, nil)
		f.designations.On("ExistsActiveByTitle", mock.Anything, "t1", "d1", "Engineer", "").Return(false, nil)
		f.designations.On("Create", mock.Anything, mock.Anything).Return(model.ErrDuplicate)

		_, err := f.svc.Create(ctx, actor, model.DesignationRequest{Title: "Engineer", DepartmentID: "d1"})
		assert.EqualError(t, err, "BAD_REQUEST: Designation title already exists in this department (title)")
	})
}

func TestDesignationService_UpdateMovesDepartment(t *testing.T) {
	f := newDesignationFixture()
	f.designations.On("FindByID", mock.Anything, "t1", "g1").
		Return(model.Designation{ID: "g1", DepartmentID: "d1", Title: "Engineer", Status: model.StatusActive}, nil)
	f.departments.On("FindByID", mock.Anything, "t1", "d2").
		Return(model.Department{ID: "d2", Name: "Research", Status: model.StatusActive}, nil)
	f.designations.On("ExistsActiveByTitle", mock.Anything, "t1", "d2", "Scientist", "g1").Return(false, nil)
	f.designations.On("Update", mock.Anything, mock.MatchedBy(func(g model.Designation) bool {
		return g.DepartmentID == "d2" && g.Title == "Scientist"
	})).Return(nil)

	g, err := f.svc.Update(ctx, actor, "g1", model.DesignationRequest{Title: "Scientist", DepartmentID: "d2"})
	require.NoError(t, err)
	assert.Equal(t, "Research", g.Department.Name)
	f.designations.AssertExpectations(t)
}

func TestDesignationService_Delete(t *testing.T) {
	f := newDesignationFixture()
	f.designations.On("FindByID", mock.Anything, "t1", "g1").Return(model.Designation{ID: "g1", Title: "Engineer"}, nil)
	f.designations.On("Delete", mock.Anything, "t1", "g1").Return(nil)
	f.designations.On("FindByID", mock.Anything, "t1", "nope").Return(model.Designation{}, model.ErrDesignationNotFound)

	require.NoError(t, f.svc.Delete(ctx, actor, "g1"))
	assert.ErrorIs(t, f.svc.Delete(ctx, actor, "nope"), model.ErrDesignationNotFound)
	f.designations.AssertNumberOfCalls(t, "Delete", 1)
}
