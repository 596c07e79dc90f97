package controller

import (
	"knowledge-assistant-be/internal/apperr"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/pkg/serverutils"
	"knowledge-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	SetActive(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService  service.IDocumentService
	retrievalService service.IRetrievalService
	askService       service.IAskService
}

func NewDocumentController(
	documentService service.IDocumentService,
	retrievalService service.IRetrievalService,
	askService service.IAskService,
) IDocumentController {
	return &documentController{
		documentService:  documentService,
		retrievalService: retrievalService,
		askService:       askService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/upload", c.Upload)
	h.Get("/", c.List)
	h.Patch("/:id/active", c.SetActive)
	h.Post("/search", c.Search)
	h.Post("/ask", c.Ask)
}

func callerIdentity(ctx *fiber.Ctx) (uuid.UUID, bool) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	role, _ := ctx.Locals("role").(string)
	return userId, role == "admin"
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	userId, _ := callerIdentity(ctx)

	var req dto.UploadDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Upload(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Document uploaded successfully", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	userId, isAdmin := callerIdentity(ctx)

	res, err := c.documentService.List(ctx.Context(), userId, isAdmin)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) SetActive(ctx *fiber.Ctx) error {
	userId, _ := callerIdentity(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperr.Validation("invalid document id")
	}

	var req dto.SetDocumentActiveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.documentService.SetActive(ctx.Context(), userId, id, *req.IsActive); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update document", nil))
}

func (c *documentController) Search(ctx *fiber.Ctx) error {
	userId, isAdmin := callerIdentity(ctx)

	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	results, err := c.retrievalService.Retrieve(ctx.Context(), userId, isAdmin, req.Query, req.TopK)
	if err != nil {
		return err
	}

	items := make([]dto.RetrievedChunkResponse, len(results))
	for i, r := range results {
		items[i] = *r
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search documents", dto.SearchResponse{Results: items}))
}

func (c *documentController) Ask(ctx *fiber.Ctx) error {
	userId, isAdmin := callerIdentity(ctx)

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.askService.Ask(ctx.Context(), userId, isAdmin, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer query", res))
}
