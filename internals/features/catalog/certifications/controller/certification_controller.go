package controller

import (
	"certihub_backend/internals/constants"
	"certihub_backend/internals/features/catalog/certifications/dto"
	"certihub_backend/internals/features/catalog/certifications/repository"
	videoRepo "certihub_backend/internals/features/catalog/videos/repository"
	relService "certihub_backend/internals/features/relations/service"
	helper "certihub_backend/internals/helpers"
	"certihub_backend/internals/helpers/blob"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CertificationController struct {
	Repo      *repository.CertificationRepository
	Videos    *videoRepo.VideoRepository
	Relations *relService.RelationManager
	Blob      *blob.Gateway
}

func NewCertificationController(db *gorm.DB, gw *blob.Gateway) *CertificationController {
	return &CertificationController{
		Repo:      repository.NewCertificationRepository(db),
		Videos:    videoRepo.NewVideoRepository(db),
		Relations: relService.NewRelationManager(db),
		Blob:      gw,
	}
}

func parseFilter(c *fiber.Ctx) (repository.CertificationFilter, error) {
	companyID, err := helper.QueryUint(c, "company_id")
	if err != nil {
		return repository.CertificationFilter{}, err
	}
	active, err := helper.QueryBool(c, "active")
	if err != nil {
		return repository.CertificationFilter{}, err
	}
	return repository.CertificationFilter{
		Name:        helper.QueryString(c, "name"),
		CompanyID:   companyID,
		CompanyName: helper.QueryString(c, "company_name"),
		Active:      active,
	}, nil
}

func (ctl *CertificationController) list(c *fiber.Ctx, f repository.CertificationFilter) error {
	p := helper.ResolvePaging(c)
	total, err := ctl.Repo.Count(c.UserContext(), f)
	if err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Repo.List(c.UserContext(), f, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonList(c, "Certifications retrieved", rows, helper.BuildPagination(total, p))
}

// GET /api/certifications?name=&company_id=&company_name=&active=
func (ctl *CertificationController) List(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return ctl.list(c, f)
}

// GET /api/certifications/company/:companyId
func (ctl *CertificationController) ListByCompany(c *fiber.Ctx) error {
	companyID, err := helper.ParamID(c, "companyId")
	if err != nil {
		return helper.JsonError(c, err)
	}
	f, err := parseFilter(c)
	if err != nil {
		return helper.JsonError(c, err)
	}
	f.CompanyID = &companyID
	return ctl.list(c, f)
}

// GET /api/certifications/:id
func (ctl *CertificationController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	row, err := ctl.Repo.GetView(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Certification retrieved", row)
}

// POST /api/certifications (multipart, optional certification_photo)
func (ctl *CertificationController) Create(c *fiber.Ctx) error {
	var req dto.CreateCertificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, helper.NewValidationError("Invalid request body"))
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonError(c, err)
	}
	photo, err := blob.FormFileFrom(c, dto.PhotoField, constants.AssetImage, false)
	if err != nil {
		return helper.JsonError(c, err)
	}

	ctx := c.UserContext()
	m := req.ToModel()
	if err := ctl.Repo.RequireCompany(ctx, m.CompanyID); err != nil {
		return helper.JsonError(c, err)
	}

	// Upload under a temporary suffix, insert, then rename to the new id.
	var put *blob.PutResult
	if photo != nil {
		res, err := ctl.Blob.PutFormFile(ctx, photo, constants.AssetImage, m.Name, 0, "")
		if err != nil {
			return helper.JsonError(c, err)
		}
		put = &res
		m.PhotoURL = res.URL
	}

	if err := ctl.Repo.Create(ctx, &m); err != nil {
		if put != nil {
			ctl.Blob.DeleteQuietly(ctx, put.URL, "certification-create-failed")
		}
		return helper.JsonError(c, err)
	}

	if put != nil {
		if url := ctl.Blob.Finalize(ctx, *put, m.ID); url != m.PhotoURL {
			if err := ctl.Repo.UpdatePhotoURL(ctx, m.ID, url); err != nil {
				log.Warn().Err(err).Uint("id", m.ID).Msg("[CERTIFICATIONS][CREATE] failed to store final photo url")
			}
		}
	}
	log.Info().Msgf("[CERTIFICATIONS][CREATE] id=%d name=%s company_id=%d", m.ID, m.Name, m.CompanyID)

	view, err := ctl.Repo.GetView(ctx, m.ID)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonCreated(c, "Certification created", view)
}

// PUT /api/certifications/:id (multipart, optional certification_photo)
func (ctl *CertificationController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	var req dto.UpdateCertificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, helper.NewValidationError("Invalid request body"))
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonError(c, err)
	}
	photo, err := blob.FormFileFrom(c, dto.PhotoField, constants.AssetImage, false)
	if err != nil {
		return helper.JsonError(c, err)
	}

	ctx := c.UserContext()
	m, err := ctl.Repo.GetByID(ctx, id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	oldURL := m.PhotoURL
	req.ApplyToModel(m)
	if err := ctl.Repo.RequireCompany(ctx, m.CompanyID); err != nil {
		return helper.JsonError(c, err)
	}

	if photo != nil {
		res, err := ctl.Blob.PutFormFile(ctx, photo, constants.AssetImage, m.Name, m.ID, "")
		if err != nil {
			return helper.JsonError(c, err)
		}
		m.PhotoURL = res.URL
	}

	if err := ctl.Repo.Update(ctx, m); err != nil {
		if m.PhotoURL != oldURL {
			ctl.Blob.DeleteQuietly(ctx, m.PhotoURL, "certification-update-failed")
		}
		return helper.JsonError(c, err)
	}
	if photo != nil {
		ctl.Blob.Replace(ctx, oldURL, m.PhotoURL, "certification-photo-replaced")
	}

	view, err := ctl.Repo.GetView(ctx, id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonUpdated(c, "Certification updated", view)
}

// DELETE /api/certifications/:id
func (ctl *CertificationController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	ctx := c.UserContext()
	deleted, err := ctl.Repo.Delete(ctx, id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	ctl.Blob.DeleteQuietly(ctx, deleted.PhotoURL, "certification-deleted")
	log.Info().Msgf("[CERTIFICATIONS][DELETE] id=%d", id)
	return helper.JsonDeleted(c, "Certification deleted", fiber.Map{"id": id})
}

// PATCH /api/certifications/:id/toggle-active
func (ctl *CertificationController) ToggleActive(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	m, err := ctl.Repo.ToggleActive(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonUpdated(c, "Certification "+m.Status().String(), m)
}

// GET /api/certifications/:id/videos
func (ctl *CertificationController) ListVideos(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	if _, err := ctl.Repo.GetByID(c.UserContext(), id); err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Videos.ListByCertification(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Videos retrieved", rows)
}

/* ===============================
   Client assignments
=================================*/

// GET /api/certifications/:id/clients
func (ctl *CertificationController) Clients(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	if _, err := ctl.Repo.GetByID(c.UserContext(), id); err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Relations.ClientsForCertification(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Clients retrieved", rows)
}

// POST /api/certifications/:id/clients {client_id}
func (ctl *CertificationController) AssignClient(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	var req dto.AssignClientRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, helper.NewValidationError("Invalid request body"))
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonError(c, err)
	}

	created, err := ctl.Relations.LinkClientCertification(c.UserContext(), req.ClientID, id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	data := fiber.Map{"client_id": req.ClientID, "certification_id": id}
	if !created {
		return helper.JsonOK(c, "Client already assigned to certification", data)
	}
	return helper.JsonCreated(c, "Client assigned to certification", data)
}

// DELETE /api/certifications/:id/clients/:clientId
func (ctl *CertificationController) UnassignClient(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	clientID, err := helper.ParamID(c, "clientId")
	if err != nil {
		return helper.JsonError(c, err)
	}
	removed, err := ctl.Relations.UnlinkClientCertification(c.UserContext(), clientID, id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if !removed {
		return helper.JsonError(c, helper.NewNotFoundError("Relationship not found"))
	}
	return helper.JsonDeleted(c, "Client removed from certification", fiber.Map{"client_id": clientID, "certification_id": id})
}

// PATCH /api/certifications/:id/clients/:clientId/toggle-active
func (ctl *CertificationController) ToggleClientActive(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	clientID, err := helper.ParamID(c, "clientId")
	if err != nil {
		return helper.JsonError(c, err)
	}
	row, err := ctl.Relations.ToggleClientCertificationActive(c.UserContext(), clientID, id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonUpdated(c, "Assignment "+constants.ActiveStatus(row.IsActive).String(), row)
}
