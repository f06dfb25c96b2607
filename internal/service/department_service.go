package service

import (
	"context"
	"errors"
	"strings"

	"hr-payroll/internal/event"
	"hr-payroll/internal/model"
	"hr-payroll/pkg/apierror"
)

type DepartmentService struct {
	deps
	departments DepartmentStore
}

func NewDepartmentService(departments DepartmentStore, validator StructValidator, bus event.Bus) *DepartmentService {
	return &DepartmentService{deps: newDeps(validator, bus), departments: departments}
}

func (s *DepartmentService) List(ctx context.Context, tenantID string) ([]model.Department, error) {
	return s.departments.ListActive(ctx, tenantID)
}

func (s *DepartmentService) Get(ctx context.Context, tenantID string, id string) (model.Department, error) {
	return s.departments.FindByID(ctx, tenantID, id)
}

func (s *DepartmentService) Create(ctx context.Context, actor event.Actor, req model.DepartmentRequest) (model.Department, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.Department{}, apierror.BadRequest("Department name is required", "name")
	}
	if err := s.validate(req); err != nil {
		return model.Department{}, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureUniqueName(ctx, actor.TenantID, name, ""); err != nil {
		return model.Department{}, err
	}

	now := s.now()
	dept := model.Department{
		ID:           s.newID(),
		TenantID:     actor.TenantID,
		Name:         name,
		Status:       model.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
		Designations: []model.DesignationRef{},
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return model.Department{}, apierror.BadRequest("Department name already exists", "name")
		}
		return model.Department{}, err
	}

	s.publish(event.TypeDepartmentCreated, actor, "department", dept.ID, "Created department "+dept.Name)
	return dept, nil
}

// Update renames a department or changes its status.
func (s *DepartmentService) Update(ctx context.Context, actor event.Actor, id string, req model.DepartmentRequest) (model.Department, error) {
	if err := s.validate(req); err != nil {
		return model.Department{}, err
	}

	dept, err := s.departments.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return model.Department{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" && name != dept.Name {
		if err := s.ensureUniqueName(ctx, actor.TenantID, name, id); err != nil {
			return model.Department{}, err
		}
		dept.Name = name
	}
	if req.Status != "" {
		dept.Status = req.Status
	}
	dept.UpdatedAt = s.now()

	if err := s.departments.Update(ctx, dept); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return model.Department{}, apierror.BadRequest("Department name already exists", "name")
		}
		return model.Department{}, err
	}

	s.publish(event.TypeDepartmentUpdated, actor, "department", dept.ID, "Updated department "+dept.Name)
	return dept, nil
}

// Delete deactivates a department that no active employee belongs to.
func (s *DepartmentService) Delete(ctx context.Context, actor event.Actor, id string) error {
	dept, err := s.departments.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}

	count, err := s.departments.CountActiveEmployees(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apierror.BadRequest("Cannot delete department with active employees. Please reassign employees first.", "")
	}

	dept.Status = model.StatusInactive
	dept.UpdatedAt = s.now()
	if err := s.departments.Update(ctx, dept); err != nil {
		return err
	}

	s.publish(event.TypeDepartmentDeleted, actor, "department", dept.ID, "Deleted department "+dept.Name)
	return nil
}

func (s *DepartmentService) ensureUniqueName(ctx context.Context, tenantID string, name string, excludeID string) error {
	exists, err := s.departments.ExistsActiveByName(ctx, tenantID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apierror.BadRequest("Department name already exists", "name")
	}
	return nil
}
