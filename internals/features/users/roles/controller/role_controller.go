package controller

import (
	"certihub_backend/internals/features/users/roles/dto"
	"certihub_backend/internals/features/users/roles/repository"
	helper "certihub_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RoleController struct {
	Repo *repository.RoleRepository
}

func NewRoleController(db *gorm.DB) *RoleController {
	return &RoleController{Repo: repository.NewRoleRepository(db)}
}

// GET /api/roles
func (ctl *RoleController) List(c *fiber.Ctx) error {
	rows, err := ctl.Repo.List(c.UserContext())
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Roles retrieved", rows)
}

// GET /api/roles/:id
func (ctl *RoleController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	row, err := ctl.Repo.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Role retrieved", row)
}

// POST /api/roles
func (ctl *RoleController) Create(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
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
	log.Info().Msgf("[ROLES][CREATE] id=%d name=%s kind=%s", m.ID, m.Name, m.Kind)
	return helper.JsonCreated(c, "Role created", m)
}

// PUT /api/roles/:id
func (ctl *RoleController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	var req dto.UpdateRoleRequest
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
	return helper.JsonUpdated(c, "Role updated", m)
}

// DELETE /api/roles/:id
func (ctl *RoleController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	if err := ctl.Repo.Delete(c.UserContext(), id); err != nil {
		return helper.JsonError(c, err)
	}
	log.Info().Msgf("[ROLES][DELETE] id=%d", id)
	return helper.JsonDeleted(c, "Role deleted", fiber.Map{"id": id})
}
