package controller

import (
	"certihub_backend/internals/constants"
	docRepo "certihub_backend/internals/features/catalog/documents/repository"
	"certihub_backend/internals/features/catalog/videos/dto"
	"certihub_backend/internals/features/catalog/videos/repository"
	relService "certihub_backend/internals/features/relations/service"
	helper "certihub_backend/internals/helpers"
	"certihub_backend/internals/helpers/blob"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type VideoController struct {
	Repo      *repository.VideoRepository
	Documents *docRepo.DocumentRepository
	Relations *relService.RelationManager
	Blob      *blob.Gateway
}

func NewVideoController(db *gorm.DB, gw *blob.Gateway) *VideoController {
	return &VideoController{
		Repo:      repository.NewVideoRepository(db),
		Documents: docRepo.NewDocumentRepository(db),
		Relations: relService.NewRelationManager(db),
		Blob:      gw,
	}
}

func (ctl *VideoController) list(c *fiber.Ctx, f repository.VideoFilter) error {
	p := helper.ResolvePaging(c)
	total, err := ctl.Repo.Count(c.UserContext(), f)
	if err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Repo.List(c.UserContext(), f, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonList(c, "Videos retrieved", rows, helper.BuildPagination(total, p))
}

// GET /api/videos?name=&certification_id=
func (ctl *VideoController) List(c *fiber.Ctx) error {
	certID, err := helper.QueryUint(c, "certification_id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	return ctl.list(c, repository.VideoFilter{
		Name:            helper.QueryString(c, "name"),
		CertificationID: certID,
	})
}

// GET /api/videos/certification/:certificationId
func (ctl *VideoController) ListByCertification(c *fiber.Ctx) error {
	certID, err := helper.ParamID(c, "certificationId")
	if err != nil {
		return helper.JsonError(c, err)
	}
	return ctl.list(c, repository.VideoFilter{
		Name:            helper.QueryString(c, "name"),
		CertificationID: &certID,
	})
}

// GET /api/videos/active-certification/:certificationId
//
// Client feed: only served when the certification and the caller's
// assignment are both active.
func (ctl *VideoController) ListForClient(c *fiber.Ctx) error {
	certID, err := helper.ParamID(c, "certificationId")
	if err != nil {
		return helper.JsonError(c, err)
	}
	p, _ := authMiddleware.PrincipalFrom(c)
	if err := ctl.Relations.ClientCanViewCertification(c.UserContext(), p.ID, certID); err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Repo.ListByCertification(c.UserContext(), certID)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Videos retrieved", rows)
}

// GET /api/videos/:id
func (ctl *VideoController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	row, err := ctl.Repo.GetView(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Video retrieved", row)
}

// GET /api/videos/:id/documents
func (ctl *VideoController) ListDocuments(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	if _, err := ctl.Repo.GetByID(c.UserContext(), id); err != nil {
		return helper.JsonError(c, err)
	}
	p := helper.ResolvePaging(c)
	f := docRepo.DocumentFilter{VideoID: &id}
	total, err := ctl.Documents.Count(c.UserContext(), f)
	if err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Documents.List(c.UserContext(), f, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonList(c, "Documents retrieved", rows, helper.BuildPagination(total, p))
}

// POST /api/videos (multipart video_file, or video_path)
func (ctl *VideoController) Create(c *fiber.Ctx) error {
	var req dto.CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, helper.NewValidationError("Invalid request body"))
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonError(c, err)
	}
	file, err := blob.FormFileFrom(c, dto.FileField, constants.AssetVideo, false)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if file == nil && req.VideoPath == "" {
		return helper.JsonError(c, helper.NewValidationError("A video file or video_path is required"))
	}

	ctx := c.UserContext()
	m := req.ToModel()
	if err := ctl.Repo.RequireCertification(ctx, m.CertificationID); err != nil {
		return helper.JsonError(c, err)
	}

	var put *blob.PutResult
	if file != nil {
		res, err := ctl.Blob.PutFormFile(ctx, file, constants.AssetVideo, m.Name, 0, "")
		if err != nil {
			return helper.JsonError(c, err)
		}
		put = &res
		m.URL = res.URL
	}

	if err := ctl.Repo.Create(ctx, &m); err != nil {
		if put != nil {
			ctl.Blob.DeleteQuietly(ctx, put.URL, "video-create-failed")
		}
		return helper.JsonError(c, err)
	}

	if put != nil {
		if url := ctl.Blob.Finalize(ctx, *put, m.ID); url != m.URL {
			if err := ctl.Repo.UpdateURL(ctx, m.ID, url); err != nil {
				log.Warn().Err(err).Uint("id", m.ID).Msg("[VIDEOS][CREATE] failed to store final url")
			}
		}
	}
	log.Info().Msgf("[VIDEOS][CREATE] id=%d name=%s certification_id=%d", m.ID, m.Name, m.CertificationID)

	view, err := ctl.Repo.GetView(ctx, m.ID)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonCreated(c, "Video created", view)
}

// PUT /api/videos/:id (multipart video_file, or video_path)
func (ctl *VideoController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	var req dto.UpdateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, helper.NewValidationError("Invalid request body"))
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonError(c, err)
	}
	file, err := blob.FormFileFrom(c, dto.FileField, constants.AssetVideo, false)
	if err != nil {
		return helper.JsonError(c, err)
	}

	ctx := c.UserContext()
	m, err := ctl.Repo.GetByID(ctx, id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	oldURL := m.URL
	req.ApplyToModel(m)
	if err := ctl.Repo.RequireCertification(ctx, m.CertificationID); err != nil {
		return helper.JsonError(c, err)
	}

	if file != nil {
		res, err := ctl.Blob.PutFormFile(ctx, file, constants.AssetVideo, m.Name, m.ID, "")
		if err != nil {
			return helper.JsonError(c, err)
		}
		m.URL = res.URL
	}

	if err := ctl.Repo.Update(ctx, m); err != nil {
		if file != nil && m.URL != oldURL {
			ctl.Blob.DeleteQuietly(ctx, m.URL, "video-update-failed")
		}
		return helper.JsonError(c, err)
	}
	// A video_path outside the store is only a link; the stored file stays.
	if file != nil || ctl.Blob.Owns(m.URL) {
		ctl.Blob.Replace(ctx, oldURL, m.URL, "video-replaced")
	}

	view, err := ctl.Repo.GetView(ctx, id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonUpdated(c, "Video updated", view)
}

// DELETE /api/videos/:id removes the video, its documents and their files.
func (ctl *VideoController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	ctx := c.UserContext()
	deleted, docURLs, err := ctl.Repo.Delete(ctx, id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	for _, u := range docURLs {
		ctl.Blob.DeleteQuietly(ctx, u, "video-deleted")
	}
	ctl.Blob.DeleteQuietly(ctx, deleted.URL, "video-deleted")

	log.Info().Msgf("[VIDEOS][DELETE] id=%d documents=%d", id, len(docURLs))
	return helper.JsonDeleted(c, "Video deleted", fiber.Map{"id": id, "documents_deleted": len(docURLs)})
}
