package handler

import (
	"github.com/gin-gonic/gin"

	"foligo-api/internal/application/assistant"
	appcontent "foligo-api/internal/application/content"
	"foligo-api/internal/application/project"
	"foligo-api/internal/domain/entity"
	"foligo-api/internal/interfaces/http/dto"
	"foligo-api/internal/interfaces/http/middleware"
	wfmodel "foligo-api/internal/workflow/model"
)

// AssistantHandler 内容助手处理器
type AssistantHandler struct {
	contextBuilder *assistant.ContextBuilder
	classifier     *assistant.Classifier
	turns          *assistant.TurnHandler
	generator      *assistant.Generator
	contents       *appcontent.Service
	projects       *project.Service
}

// NewAssistantHandler 创建内容助手处理器
func NewAssistantHandler(
	contextBuilder *assistant.ContextBuilder,
	classifier *assistant.Classifier,
	turns *assistant.TurnHandler,
	generator *assistant.Generator,
	contents *appcontent.Service,
	projects *project.Service,
) *AssistantHandler {
	return &AssistantHandler{
		contextBuilder: contextBuilder,
		classifier:     classifier,
		turns:          turns,
		generator:      generator,
		contents:       contents,
		projects:       projects,
	}
}

// Turn 处理一轮助手对话
// @Summary 对话轮次
// @Description 调用方重传完整历史；返回助手消息，或在对话完成时返回摘要和修正后的类型
// @Tags Assistant
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.TurnRequest true "对话历史"
// @Success 200 {object} dto.Response[dto.TurnResponse]
// @Router /v1/projects/{pid}/assistant/turn [post]
func (h *AssistantHandler) Turn(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	projectID := c.Param("pid")

	if _, err := h.projects.RequireOwnership(ctx, projectID, userID); err != nil {
		dto.Fail(c, err)
		return
	}

	var req dto.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	history := req.ToTurns()
	kind, declared := wfmodel.ParseContentKind(req.Kind)
	if !declared {
		kind = h.classifier.Classify(ctx, assistant.FormatHistoryBlock(history), req.InitialInfo)
	}

	result, err := h.turns.HandleTurn(ctx, &assistant.TurnInput{
		ProjectID:    projectID,
		History:      history,
		Kind:         kind,
		InitialInfo:  req.InitialInfo,
		ContextBlock: h.contextBuilder.Build(ctx, userID, projectID),
	})
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewTurnResponse(result))
}

// Generate 执行最终生成并持久化
// @Summary 最终内容生成
// @Description create 模式按类型模板生成新内容；edit 模式整体改写既有正文
// @Tags Assistant
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.GenerateRequest true "生成参数"
// @Success 201 {object} dto.Response[dto.GenerateResponse]
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/assistant/generate [post]
func (h *AssistantHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	projectID := c.Param("pid")

	if _, err := h.projects.RequireOwnership(ctx, projectID, userID); err != nil {
		dto.Fail(c, err)
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	contextBlock := h.contextBuilder.Build(ctx, userID, projectID)

	if req.Mode == string(wfmodel.ModeEdit) {
		h.generateEdit(c, projectID, contextBlock, &req)
		return
	}
	h.generateCreate(c, projectID, contextBlock, &req)
}

func (h *AssistantHandler) generateCreate(c *gin.Context, projectID, contextBlock string, req *dto.GenerateRequest) {
	ctx := c.Request.Context()

	history := req.ToWorkflowTurns()
	kind, declared := wfmodel.ParseContentKind(req.Kind)
	if !declared {
		kind = h.classifier.Classify(ctx, assistant.FormatHistoryBlock(history), req.Summary)
	}

	gen, err := h.generator.Generate(ctx, &assistant.GenerateRequest{
		Mode:         wfmodel.ModeCreate,
		Kind:         kind,
		History:      history,
		Summary:      req.Summary,
		ContextBlock: contextBlock,
	})
	if err != nil {
		dto.Fail(c, err)
		return
	}

	created, err := h.contents.CreateFromGenerated(ctx, projectID, entity.ContentKind(kind), gen)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Created(c, &dto.GenerateResponse{Content: dto.NewContentResponse(created)})
}

func (h *AssistantHandler) generateEdit(c *gin.Context, projectID, contextBlock string, req *dto.GenerateRequest) {
	ctx := c.Request.Context()

	if req.ContentID == "" || req.ChangeRequest == "" {
		dto.BadRequest(c, "content_id and change_request are required for edit mode")
		return
	}

	current, err := h.contents.Get(ctx, req.ContentID)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	if current.ProjectID != projectID {
		dto.BadRequest(c, "content does not belong to project")
		return
	}

	gen, err := h.generator.Generate(ctx, &assistant.GenerateRequest{
		Mode:          wfmodel.ModeEdit,
		Kind:          wfmodel.ContentKind(current.Kind),
		CurrentBody:   current.Body,
		ChangeRequest: req.ChangeRequest,
		ContextBlock:  contextBlock,
	})
	if err != nil {
		dto.Fail(c, err)
		return
	}

	updated, err := h.contents.UpdateFromGenerated(ctx, current.ID, gen)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, &dto.GenerateResponse{Content: dto.NewContentResponse(updated)})
}
