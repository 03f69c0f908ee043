package controller

import (
	"certihub_backend/internals/constants"
	"certihub_backend/internals/features/clients/clients/dto"
	"certihub_backend/internals/features/clients/clients/repository"
	relService "certihub_backend/internals/features/relations/service"
	helper "certihub_backend/internals/helpers"
	helperAuth "certihub_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ClientController is the staff-side management of client accounts.
type ClientController struct {
	Repo      *repository.ClientRepository
	Relations *relService.RelationManager
}

func NewClientController(db *gorm.DB) *ClientController {
	return &ClientController{
		Repo:      repository.NewClientRepository(db),
		Relations: relService.NewRelationManager(db),
	}
}

// GET /api/admin/clients?full_name=&email=&status=
func (ctl *ClientController) List(c *fiber.Ctx) error {
	f := repository.ClientFilter{
		FullName: helper.QueryString(c, "full_name"),
		Email:    helper.QueryString(c, "email"),
	}
	if s := helper.QueryString(c, "status"); s != nil {
		st := constants.ClientStatus(*s)
		if !st.Valid() {
			return helper.JsonError(c, helper.NewValidationError("status must be active or inactive"))
		}
		f.Status = &st
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
	return helper.JsonList(c, "Clients retrieved", rows, helper.BuildPagination(total, p))
}

// GET /api/admin/clients/:id
func (ctl *ClientController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	row, err := ctl.Repo.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Client retrieved", row)
}

// POST /api/admin/clients
func (ctl *ClientController) Create(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
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
	log.Info().Msgf("[CLIENTS][CREATE] id=%d email=%s", m.ID, m.Email)
	return helper.JsonCreated(c, "Client created", m)
}

// PUT /api/admin/clients/:id
func (ctl *ClientController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	var req dto.UpdateClientRequest
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
	return helper.JsonUpdated(c, "Client updated", m)
}

// DELETE /api/admin/clients/:id flips the account status.
func (ctl *ClientController) ToggleStatus(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	m, err := ctl.Repo.ToggleStatus(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	log.Info().Msgf("[CLIENTS][TOGGLE] id=%d status=%s", m.ID, m.Status)
	return helper.JsonUpdated(c, "Client "+string(m.Status), m)
}

/* ===============================
   Associations
=================================*/

// GET /api/admin/clients/:id/companies
func (ctl *ClientController) Companies(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	if _, err := ctl.Repo.GetByID(c.UserContext(), id); err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Relations.CompaniesForClient(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Companies retrieved", rows)
}

// GET /api/admin/clients/:id/certifications
func (ctl *ClientController) Certifications(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	if _, err := ctl.Repo.GetByID(c.UserContext(), id); err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Relations.CertificationHistoryForClient(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Certifications retrieved", rows)
}

// POST /api/admin/clients/:id/companies {company_id}
func (ctl *ClientController) LinkCompany(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	var req dto.LinkCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, helper.NewValidationError("Invalid request body"))
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonError(c, err)
	}

	created, err := ctl.Relations.LinkClientCompany(c.UserContext(), id, req.CompanyID)
	if err != nil {
		return helper.JsonError(c, err)
	}
	data := fiber.Map{"client_id": id, "company_id": req.CompanyID}
	if !created {
		return helper.JsonOK(c, "Company already linked to client", data)
	}
	return helper.JsonCreated(c, "Company linked to client", data)
}

// DELETE /api/admin/clients/:clientId/companies/:companyId
func (ctl *ClientController) UnlinkCompany(c *fiber.Ctx) error {
	clientID, err := helper.ParamID(c, "clientId")
	if err != nil {
		return helper.JsonError(c, err)
	}
	companyID, err := helper.ParamID(c, "companyId")
	if err != nil {
		return helper.JsonError(c, err)
	}
	removed, err := ctl.Relations.UnlinkClientCompany(c.UserContext(), clientID, companyID)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if !removed {
		return helper.JsonError(c, helper.NewNotFoundError("Relationship not found"))
	}
	return helper.JsonDeleted(c, "Company unlinked from client", fiber.Map{"client_id": clientID, "company_id": companyID})
}
