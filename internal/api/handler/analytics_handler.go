package handler

import (
	"Linkstone/internal/api/dto"
	"Linkstone/internal/model"
	"Linkstone/internal/pkg/consts"
	"Linkstone/internal/pkg/response"
	"Linkstone/internal/pkg/util"
	"Linkstone/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
	}
}

// GetAnalytics 查看已有分析数据，纯读路径，不消耗配额
func (s *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	platform, ok := platformParam(c)
	if !ok {
		return
	}

	userID := c.GetUint64("user_id")
	record, err := s.analyticsSvc.View(c.Request.Context(), userID, platform)
	if err != nil {
		response.Error(c, err)
		return
	}
	// 未绑定不是错误，返回空数据由前端展示绑定引导
	if record == nil {
		response.Success(c, nil)
		return
	}
	response.Success(c, toAnalyticsDTO(c, record))
}

// SaveHandle 首次绑定账号并抓取分析数据
func (s *AnalyticsHandler) SaveHandle(c *gin.Context) {
	platform, ok := platformParam(c)
	if !ok {
		return
	}

	var req dto.SaveHandleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	userID := c.GetUint64("user_id")
	record, err := s.analyticsSvc.SaveHandle(c.Request.Context(), userID, platform, req.Handle)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toAnalyticsDTO(c, record))
}

// Refresh 对已绑定账号重新抓取
func (s *AnalyticsHandler) Refresh(c *gin.Context) {
	platform, ok := platformParam(c)
	if !ok {
		return
	}

	userID := c.GetUint64("user_id")
	record, err := s.analyticsSvc.Refresh(c.Request.Context(), userID, platform)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toAnalyticsDTO(c, record))
}

// DeleteHandle 解绑账号并删除分析数据
func (s *AnalyticsHandler) DeleteHandle(c *gin.Context) {
	platform, ok := platformParam(c)
	if !ok {
		return
	}

	userID := c.GetUint64("user_id")
	if err := s.analyticsSvc.DeleteHandle(c.Request.Context(), userID, platform); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetQuota 查询今日刷新配额用量
func (s *AnalyticsHandler) GetQuota(c *gin.Context) {
	platform, ok := platformParam(c)
	if !ok {
		return
	}

	userID := c.GetUint64("user_id")
	used, limit, err := s.analyticsSvc.QuotaStatus(c.Request.Context(), userID, platform)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.QuotaStatusDTO{
		Platform: platform,
		Used:     used,
		Limit:    limit,
	})
}

func platformParam(c *gin.Context) (string, bool) {
	platform := c.Param("platform")
	if !consts.IsSupportedPlatform(platform) {
		response.Error(c, service.ErrPlatformInvalid)
		return "", false
	}
	return platform, true
}

func toAnalyticsDTO(c *gin.Context, record *model.PlatformAnalytics) *dto.PlatformAnalyticsDTO {
	result := &dto.PlatformAnalyticsDTO{}
	if err := copier.Copy(result, record); err != nil {
		log.ErrorContext(c.Request.Context(), "copy analytics dto error", "err", err)
	}

	// JSON 列不走 copier，手动反序列化
	result.RecentItems = nil
	if len(record.RecentItems) > 0 {
		if err := json.Unmarshal(record.RecentItems, &result.RecentItems); err != nil {
			log.WarnContext(c.Request.Context(), "unmarshal recent items error", "err", err)
		}
	}

	result.AnalyticsLimited = record.IsPrivate
	return result
}
