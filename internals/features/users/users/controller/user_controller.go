package controller

import (
	"certihub_backend/internals/features/users/users/dto"
	"certihub_backend/internals/features/users/users/repository"
	helper "certihub_backend/internals/helpers"
	helperAuth "certihub_backend/internals/helpers/auth"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserController struct {
	Repo *repository.UserRepository
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{Repo: repository.NewUserRepository(db)}
}

// GET /api/users?full_name=&email=&role_id=&page=&limit=
func (ctl *UserController) List(c *fiber.Ctx) error {
	roleID, err := helper.QueryUint(c, "role_id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	f := repository.UserFilter{
		FullName: helper.QueryString(c, "full_name"),
		Email:    helper.QueryString(c, "email"),
		RoleID:   roleID,
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
	return helper.JsonList(c, "Users retrieved", rows, helper.BuildPagination(total, p))
}

// GET /api/users/:id
func (ctl *UserController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	row, err := ctl.Repo.GetView(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "User retrieved", row)
}

// POST /api/users
func (ctl *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, helper.NewValidationError("Invalid request body"))
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonError(c, err)
	}

	hash, err := helperAuth.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, helper.NewInternalError(err))
	}
	m := req.ToModel(hash)
	if err := ctl.Repo.Create(c.UserContext(), &m); err != nil {
		return helper.JsonError(c, err)
	}
	log.Info().Msgf("[USERS][CREATE] id=%d email=%s role_id=%d", m.ID, m.Email, m.RoleID)

	view, err := ctl.Repo.GetView(c.UserContext(), m.ID)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonCreated(c, "User created", view)
}

// PUT /api/users/:id
func (ctl *UserController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	var req dto.UpdateUserRequest
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
	hash := ""
	if req.Password != nil {
		if hash, err = helperAuth.HashPassword(*req.Password); err != nil {
			return helper.JsonError(c, helper.NewInternalError(err))
		}
	}
	req.ApplyToModel(m, hash)
	if err := ctl.Repo.Update(c.UserContext(), m); err != nil {
		return helper.JsonError(c, err)
	}

	view, err := ctl.Repo.GetView(c.UserContext(), m.ID)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonUpdated(c, "User updated", view)
}

// DELETE /api/users/:id
func (ctl *UserController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	if p, ok := authMiddleware.PrincipalFrom(c); ok && p.IsStaff() && p.ID == id {
		return helper.JsonError(c, helper.NewValidationError("You cannot delete your own account"))
	}
	if err := ctl.Repo.Delete(c.UserContext(), id); err != nil {
		return helper.JsonError(c, err)
	}
	log.Info().Msgf("[USERS][DELETE] id=%d", id)
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"id": id})
}
