package handler

import (
	"github.com/gin-gonic/gin"

	"foligo-api/internal/application/assistant"
	appcontent "foligo-api/internal/application/content"
	"foligo-api/internal/application/project"
	"foligo-api/internal/config"
	"foligo-api/internal/domain/entity"
	"foligo-api/internal/interfaces/http/dto"
	wfmodel "foligo-api/internal/workflow/model"
	"foligo-api/pkg/logger"
)

// WebhookHandler 外部回调处理器
type WebhookHandler struct {
	contextBuilder *assistant.ContextBuilder
	generator      *assistant.Generator
	contents       *appcontent.Service
	projects       *project.Service
	features       config.FeaturesConfig
}

// NewWebhookHandler 创建回调处理器
func NewWebhookHandler(
	contextBuilder *assistant.ContextBuilder,
	generator *assistant.Generator,
	contents *appcontent.Service,
	projects *project.Service,
	cfg *config.Config,
) *WebhookHandler {
	return &WebhookHandler{
		contextBuilder: contextBuilder,
		generator:      generator,
		contents:       contents,
		projects:       projects,
		features:       cfg.Features,
	}
}

// Voice 语音会话完成回调
// @Summary 语音回调（不走认证）
// @Description 语音服务送来的完成摘要直接进入最终生成；未指定类型时默认 BLOG
// @Tags Webhook
// @Accept json
// @Produce json
// @Param body body dto.VoiceWebhookRequest true "回调负载"
// @Success 201 {object} dto.Response[dto.GenerateResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/webhooks/voice [post]
func (h *WebhookHandler) Voice(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.features.VoiceWebhook.Enabled {
		dto.BadRequest(c, "voice webhook is disabled")
		return
	}

	var req dto.VoiceWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, err := h.projects.Get(ctx, req.ProjectID)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	kind, ok := wfmodel.ParseContentKind(req.ContentType)
	if !ok {
		kind = wfmodel.KindBlog
	}

	gen, err := h.generator.Generate(ctx, &assistant.GenerateRequest{
		Mode:         wfmodel.ModeCreate,
		Kind:         kind,
		Summary:      req.Summary,
		ContextBlock: h.contextBuilder.Build(ctx, p.OwnerID, p.ID),
	})
	if err != nil {
		dto.Fail(c, err)
		return
	}

	created, err := h.contents.CreateFromGenerated(ctx, p.ID, entity.ContentKind(kind), gen)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	logger.Info(ctx, "voice webhook content created",
		"project_id", p.ID, "content_id", created.ID, "kind", string(kind))
	dto.Created(c, &dto.GenerateResponse{Content: dto.NewContentResponse(created)})
}
