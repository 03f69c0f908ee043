package controller

import (
	docModel "certihub_backend/internals/features/catalog/documents/model"
	docRepo "certihub_backend/internals/features/catalog/documents/repository"
	videoModel "certihub_backend/internals/features/catalog/videos/model"
	videoRepo "certihub_backend/internals/features/catalog/videos/repository"
	clientRepo "certihub_backend/internals/features/clients/clients/repository"
	relService "certihub_backend/internals/features/relations/service"
	helper "certihub_backend/internals/helpers"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SelfController serves the authenticated client's own data.
type SelfController struct {
	Clients   *clientRepo.ClientRepository
	Relations *relService.RelationManager
	Videos    *videoRepo.VideoRepository
	Documents *docRepo.DocumentRepository
}

func NewSelfController(db *gorm.DB) *SelfController {
	return &SelfController{
		Clients:   clientRepo.NewClientRepository(db),
		Relations: relService.NewRelationManager(db),
		Videos:    videoRepo.NewVideoRepository(db),
		Documents: docRepo.NewDocumentRepository(db),
	}
}

// VideoWithDocuments is one entry of the client media feed.
type VideoWithDocuments struct {
	videoModel.VideoView
	Documents []docModel.DocumentView `json:"documents"`
}

func callerID(c *fiber.Ctx) uint {
	p, _ := authMiddleware.PrincipalFrom(c)
	return p.ID
}

// GET /api/clients/my-profile
func (ctl *SelfController) Profile(c *fiber.Ctx) error {
	m, err := ctl.Clients.GetByID(c.UserContext(), callerID(c))
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Profile retrieved", m)
}

// GET /api/clients/my-companies
func (ctl *SelfController) Companies(c *fiber.Ctx) error {
	id := callerID(c)
	if _, err := ctl.Clients.GetByID(c.UserContext(), id); err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Relations.CompaniesForClient(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Companies retrieved", fiber.Map{"companies": rows, "total": len(rows)})
}

// GET /api/clients/my-certifications lists only what the client may open.
func (ctl *SelfController) Certifications(c *fiber.Ctx) error {
	id := callerID(c)
	if _, err := ctl.Clients.GetByID(c.UserContext(), id); err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Relations.CertificationsVisibleToClient(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Certifications retrieved", fiber.Map{"certifications": rows, "total": len(rows)})
}

// GET /api/clients/my-certification-history lists every assignment.
func (ctl *SelfController) CertificationHistory(c *fiber.Ctx) error {
	id := callerID(c)
	if _, err := ctl.Clients.GetByID(c.UserContext(), id); err != nil {
		return helper.JsonError(c, err)
	}
	rows, err := ctl.Relations.CertificationHistoryForClient(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Certification history retrieved", fiber.Map{"certifications": rows, "total": len(rows)})
}

// GET /api/clients/my-certification/:certificationId/videos-documents
func (ctl *SelfController) VideosAndDocuments(c *fiber.Ctx) error {
	certID, err := helper.ParamID(c, "certificationId")
	if err != nil {
		return helper.JsonError(c, err)
	}
	ctx := c.UserContext()
	if err := ctl.Relations.ClientCanViewCertification(ctx, callerID(c), certID); err != nil {
		return helper.JsonError(c, err)
	}

	videos, err := ctl.Videos.ListByCertification(ctx, certID)
	if err != nil {
		return helper.JsonError(c, err)
	}
	ids := make([]uint, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	docs, err := ctl.Documents.ListByVideos(ctx, ids)
	if err != nil {
		return helper.JsonError(c, err)
	}

	items := make([]VideoWithDocuments, 0, len(videos))
	for _, v := range videos {
		d := docs[v.ID]
		if d == nil {
			d = []docModel.DocumentView{}
		}
		items = append(items, VideoWithDocuments{VideoView: v, Documents: d})
	}
	return helper.JsonOK(c, "Videos and documents retrieved", fiber.Map{
		"certification_id": certID,
		"videos":           items,
		"total":            len(items),
	})
}
