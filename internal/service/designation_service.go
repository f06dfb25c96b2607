package service

import (
	"context"
	"errors"
	"strings"

	"hr-payroll/internal/event"
	"hr-payroll/internal/model"
	"hr-payroll/pkg/apierror"
)

type DesignationService struct {
	deps
	designations DesignationStore
	departments  DepartmentStore
}

func NewDesignationService(designations DesignationStore, departments DepartmentStore, validator StructValidator, bus event.Bus) *DesignationService {
	return &DesignationService{deps: newDeps(validator, bus), designations: designations, departments: departments}
}

func (s *DesignationService) List(ctx context.Context, tenantID string) ([]model.Designation, error) {
	return s.designations.ListActive(ctx, tenantID)
}

func (s *DesignationService) Get(ctx context.Context, tenantID string, id string) (model.Designation, error) {
	return s.designations.FindByID(ctx, tenantID, id)
}

func (s *DesignationService) Create(ctx context.Context, actor event.Actor, req model.DesignationRequest) (model.Designation, error) {
	title, err := s.checkRequest(req)
	if err != nil {
		return model.Designation{}, err
	}

	dept, err := s.activeDepartment(ctx, actor.TenantID, req.DepartmentID)
	if err != nil {
		return model.Designation{}, err
	}
	if err := s.ensureUniqueTitle(ctx, actor.TenantID, dept.ID, title, ""); err != nil {
		return model.Designation{}, err
	}

	now := s.now()
	g := model.Designation{
		ID:           s.newID(),
		TenantID:     actor.TenantID,
		DepartmentID: dept.ID,
		Title:        title,
		Status:       model.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
		Department:   &model.DepartmentRef{ID: dept.ID, Name: dept.Name},
	}
	if err := s.designations.Create(ctx, g); err != nil {
		return model.Designation{}, s.mapWrite(err)
	}

	s.publish(event.TypeDesignationCreated, actor, "designation", g.ID, "Created designation "+g.Title)
	return g, nil
}

// Update replaces title and department; both are required.
func (s *DesignationService) Update(ctx context.Context, actor event.Actor, id string, req model.DesignationRequest) (model.Designation, error) {
	title, err := s.checkRequest(req)
	if err != nil {
		return model.Designation{}, err
	}

	g, err := s.designations.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return model.Designation{}, err
	}

	if req.DepartmentID != g.DepartmentID {
		dept, err := s.activeDepartment(ctx, actor.TenantID, req.DepartmentID)
		if err != nil {
			return model.Designation{}, err
		}
		g.DepartmentID = dept.ID
		g.Department = &model.DepartmentRef{ID: dept.ID, Name: dept.Name}
	}
	if err := s.ensureUniqueTitle(ctx, actor.TenantID, g.DepartmentID, title, g.ID); err != nil {
		return model.Designation{}, err
	}

	g.Title = title
	if req.Status != "" {
		g.Status = req.Status
	}
	g.UpdatedAt = s.now()

	if err := s.designations.Update(ctx, g); err != nil {
		return model.Designation{}, s.mapWrite(err)
	}

	s.publish(event.TypeDesignationUpdated, actor, "designation", g.ID, "Updated designation "+g.Title)
	return g, nil
}

func (s *DesignationService) Delete(ctx context.Context, actor event.Actor, id string) error {
	g, err := s.designations.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	if err := s.designations.Delete(ctx, actor.TenantID, id); err != nil {
		return err
	}

	s.publish(event.TypeDesignationDeleted, actor, "designation", g.ID, "Deleted designation "+g.Title)
	return nil
}

func (s *DesignationService) checkRequest(req model.DesignationRequest) (string, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.DepartmentID) == "" {
		return "", apierror.BadRequest("Title and department are required", "")
	}
	return title, s.validate(req)
}

func (s *DesignationService) activeDepartment(ctx context.Context, tenantID string, id string) (model.Department, error) {
	dept, err := s.departments.FindByID(ctx, tenantID, strings.TrimSpace(id))
	if err != nil {
		return model.Department{}, err
	}
	if dept.Status != model.StatusActive {
		return model.Department{}, model.ErrDepartmentNotFound
	}
	return dept, nil
}

func (s *DesignationService) ensureUniqueTitle(ctx context.Context, tenantID string, departmentID string, title string, excludeID string) error {
	exists, err := s.designations.ExistsActiveByTitle(ctx, tenantID, departmentID, title, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apierror.BadRequest("Designation title already exists in this department", "title")
	}
	return nil
}

func (s *DesignationService) mapWrite(err error) error {
	if errors.Is(err, model.ErrDuplicate) {
		return apierror.BadRequest("Designation title already exists in this department", "title")
	}
	return err
}
