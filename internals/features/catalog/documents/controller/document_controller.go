package controller

import (
	"certihub_backend/internals/constants"
	"certihub_backend/internals/features/catalog/documents/dto"
	"certihub_backend/internals/features/catalog/documents/repository"
	helper "certihub_backend/internals/helpers"
	"certihub_backend/internals/helpers/blob"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type DocumentController struct {
	Repo *repository.DocumentRepository
	Blob *blob.Gateway
}

func NewDocumentController(db *gorm.DB, gw *blob.Gateway) *DocumentController {
	return &DocumentController{Repo: repository.NewDocumentRepository(db), Blob: gw}
}

func (ctl *DocumentController) list(c *fiber.Ctx, f repository.DocumentFilter) error {
	p := helper.ResolvePaging(c)
	total, err := ctl.Repo.Count(c.UserContext(), f)
	if err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Repo.List(c.UserContext(), f, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonList(c, "Documents retrieved", rows, helper.BuildPagination(total, p))
}

// GET /api/documents?name=&video_id=
func (ctl *DocumentController) List(c *fiber.Ctx) error {
	videoID, err := helper.QueryUint(c, "video_id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	return ctl.list(c, repository.DocumentFilter{
		Name:    helper.QueryString(c, "name"),
		VideoID: videoID,
	})
}

// GET /api/documents/video/:videoId
func (ctl *DocumentController) ListByVideo(c *fiber.Ctx) error {
	videoID, err := helper.ParamID(c, "videoId")
	if err != nil {
		return helper.JsonError(c, err)
	}
	return ctl.list(c, repository.DocumentFilter{
		Name:    helper.QueryString(c, "name"),
		VideoID: &videoID,
	})
}

// GET /api/documents/:id
func (ctl *DocumentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	row, err := ctl.Repo.GetView(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Document retrieved", row)
}

// POST /api/documents (multipart, document required)
func (ctl *DocumentController) Create(c *fiber.Ctx) error {
	var req dto.CreateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, helper.NewValidationError("Invalid request body"))
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonError(c, err)
	}
	file, err := blob.FormFileFrom(c, dto.FileField, constants.AssetDocument, true)
	if err != nil {
		return helper.JsonError(c, err)
	}

	ctx := c.UserContext()
	video, err := ctl.Repo.Video(ctx, req.VideoID)
	if err != nil {
		return helper.JsonError(c, err)
	}

	m := req.ToModel()
	res, err := ctl.Blob.PutFormFile(ctx, file, constants.AssetDocument, m.Name, 0, blob.DocumentSubdir(video.Name, video.ID))
	if err != nil {
		return helper.JsonError(c, err)
	}
	m.URL = res.URL

	if err := ctl.Repo.Create(ctx, &m); err != nil {
		ctl.Blob.DeleteQuietly(ctx, res.URL, "document-create-failed")
		return helper.JsonError(c, err)
	}
	if url := ctl.Blob.Finalize(ctx, res, m.ID); url != m.URL {
		if err := ctl.Repo.UpdateURL(ctx, m.ID, url); err != nil {
			log.Warn().Err(err).Uint("id", m.ID).Msg("[DOCUMENTS][CREATE] failed to store final url")
		}
	}
	log.Info().Msgf("[DOCUMENTS][CREATE] id=%d name=%s video_id=%d", m.ID, m.Name, m.VideoID)

	view, err := ctl.Repo.GetView(ctx, m.ID)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonCreated(c, "Document created", view)
}

// PUT /api/documents/:id (multipart, document optional)
func (ctl *DocumentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	var req dto.UpdateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, helper.NewValidationError("Invalid request body"))
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonError(c, err)
	}
	file, err := blob.FormFileFrom(c, dto.FileField, constants.AssetDocument, false)
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

	if file != nil {
		video, err := ctl.Repo.Video(ctx, m.VideoID)
		if err != nil {
			return helper.JsonError(c, err)
		}
		res, err := ctl.Blob.PutFormFile(ctx, file, constants.AssetDocument, m.Name, m.ID, blob.DocumentSubdir(video.Name, video.ID))
		if err != nil {
			return helper.JsonError(c, err)
		}
		m.URL = res.URL
	}

	if err := ctl.Repo.Update(ctx, m); err != nil {
		if m.URL != oldURL {
			ctl.Blob.DeleteQuietly(ctx, m.URL, "document-update-failed")
		}
		return helper.JsonError(c, err)
	}
	ctl.Blob.Replace(ctx, oldURL, m.URL, "document-replaced")

	view, err := ctl.Repo.GetView(ctx, id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonUpdated(c, "Document updated", view)
}

// DELETE /api/documents/:id
func (ctl *DocumentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.JsonError(c, err)
	}
	ctx := c.UserContext()
	deleted, err := ctl.Repo.Delete(ctx, id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	ctl.Blob.DeleteQuietly(ctx, deleted.URL, "document-deleted")
	log.Info().Msgf("[DOCUMENTS][DELETE] id=%d", id)
	return helper.JsonDeleted(c, "Document deleted", fiber.Map{"id": id})
}
