package controller

import (
	"certihub_backend/internals/features/catalog/companies/dto"
	"certihub_backend/internals/features/catalog/companies/repository"
	relService "certihub_backend/internals/features/relations/service"
	helper "certihub_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CompanyController struct {
	Repo      *repository.CompanyRepository
	Relations *relService.RelationManager
}

func NewCompanyController(db *gorm.DB) *CompanyController {
	return &CompanyController{
		Repo:      repository.NewCompanyRepository(db),
		Relations: relService.NewRelationManager(db),
	}
}

// GET /api/companies?name=&type=&active=&page=&limit=
func (ctl *CompanyController) List(c *fiber.Ctx) error {
	active, err := helper.QueryBool(c, "active")
	if err != nil {
		return helper.JsonError(c, err)
	}
	f := repository.CompanyFilter{
		Name:   helper.QueryString(c, "name"),
		Type:   helper.QueryString(c, "type"),
		Active: active,
	}
	p := helper.ResolvePaging(c)

	total, err := ctl.Repo.Count(c.UserContext(), f)
	if err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Repo.List(c.UserContext(), f, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonList(c, "Companies retrieved", rows, helper.BuildPagination(total, p))
}

// GET /api/companies/:id
func (ctl *CompanyController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	row, err := ctl.Repo.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Company retrieved", row)
}

// GET /api/companies/:id/clients
func (ctl *CompanyController) Clients(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	if _, err := ctl.Repo.GetByID(c.UserContext(), id); err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Relations.ClientsForCompany(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Clients retrieved", rows)
}

// POST /api/companies
func (ctl *CompanyController) Create(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, helper.NewValidationError("Invalid request body"))
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonError(c, err)
	}

	m := req.ToModel()
	if err := ctl.Repo.Create(c.UserContext(), &m); err != nil {
		return helper.JsonError(c, err)
	}
	log.Info().Msgf("[COMPANIES][CREATE] id=%d name=%s", m.ID, m.Name)
	return helper.JsonCreated(c, "Company created", m)
}

// PUT /api/companies/:id
func (ctl *CompanyController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	var req dto.UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, helper.NewValidationError("Invalid request body"))
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonError(c, err)
	}

	m, err := ctl.Repo.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	req.ApplyToModel(m)
	if err := ctl.Repo.Update(c.UserContext(), m); err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonUpdated(c, "Company updated", m)
}

// DELETE /api/companies/:id and PATCH /api/companies/:id/toggle-active.
// Companies are never removed; both flip the active flag.
func (ctl *CompanyController) ToggleActive(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	m, err := ctl.Repo.ToggleActive(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	log.Info().Msgf("[COMPANIES][TOGGLE] id=%d active=%v", m.ID, m.IsActive)
	return helper.JsonUpdated(c, "Company "+m.Status().String(), m)
}
