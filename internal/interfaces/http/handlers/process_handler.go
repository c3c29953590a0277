package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"

	"github.com/easayliu/upscayl-service/internal/application/contracts"
	"github.com/easayliu/upscayl-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ProcessHandler 图片处理接口
type ProcessHandler struct{}

// NewProcessHandler 创建图片处理接口
func NewProcessHandler() *ProcessHandler {
	return &ProcessHandler{}
}

// ProcessImage 处理图片
// @Summary 处理图片
// @Description 上传图片并执行放大(upscale)或背景去除(remove_bg)，返回处理后的PNG
// @Tags 图片处理
// @Accept multipart/form-data
// @Produce png
// @Param image formData file true "待处理的图片"
// @Param action formData string false "处理动作: upscale(默认) 或 remove_bg"
// @Param scale formData int false "放大倍数(默认4,仅upscale有效)"
// @Success 200 {file} binary "处理后的图片"
// @Failure 400 {object} map[string]interface{} "缺少图片/非法action/非法scale"
// @Failure 500 {object} map[string]interface{} "外部工具处理失败"
// @Failure 503 {object} map[string]interface{} "背景去除能力不可用"
// @Router /process [post]
func (h *ProcessHandler) ProcessImage(c *gin.Context) {
	fileHeader, ok := requireUpload(c, "image")
	if !ok {
		return
	}

	// 未指定action时默认upscale
	action := contracts.ProcessAction(c.DefaultPostForm("action", string(contracts.ActionUpscale)))

	scale, ok := parseScale(c)
	if !ok {
		return
	}

	h.dispatch(c, fileHeader, action, scale)
}

// UpscaleImage 放大图片(旧版接口)
// @Summary 放大图片(旧版接口)
// @Description 兼容旧客户端的放大接口,表单字段为file,仅支持upscale
// @Tags 图片处理
// @Accept multipart/form-data
// @Produce png
// @Param file formData file true "待放大的图片"
// @Param scale formData int false "放大倍数(默认4)"
// @Success 200 {file} binary "放大后的图片"
// @Failure 400 {object} map[string]interface{} "缺少图片/非法scale"
// @Failure 500 {object} map[string]interface{} "外部工具处理失败"
// @Router /upscale [post]
func (h *ProcessHandler) UpscaleImage(c *gin.Context) {
	fileHeader, ok := requireUpload(c, "file")
	if !ok {
		return
	}

	scale, ok := parseScale(c)
	if !ok {
		return
	}

	h.dispatch(c, fileHeader, contracts.ActionUpscale, scale)
}

// dispatch 调用处理服务并把输出文件作为附件回传
// 输出文件在传输完成后删除,即使传输或更早的步骤出错
func (h *ProcessHandler) dispatch(c *gin.Context, fileHeader *multipart.FileHeader, action contracts.ProcessAction, scale int) {
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(contracts.NewServiceErrorWithCause(contracts.ErrorCodeInternalError,
			"failed to read uploaded file", err))
		return
	}
	defer file.Close()

	svc := GetContainer(c).GetProcessService()
	resp, err := svc.ProcessImage(c.Request.Context(), contracts.ProcessRequest{
		Action:   action,
		Scale:    scale,
		Filename: fileHeader.Filename,
		Data:     file,
	})
	if err != nil {
		c.Error(err)
		return
	}
	defer func() {
		if err := os.Remove(resp.OutputPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove output file", "path", resp.OutputPath, "error", err)
		}
	}()

	c.FileAttachment(resp.OutputPath, resp.DownloadName)
}

// requireUpload 取出上传文件,缺失、超限或文件名为空时返回400
func requireUpload(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.Error(contracts.NewServiceError(contracts.ErrorCodeInvalidRequest,
				"uploaded file exceeds the size limit"))
			return nil, false
		}
		c.Error(contracts.NewServiceError(contracts.ErrorCodeInvalidRequest,
			"no "+field+" provided"))
		return nil, false
	}
	if fileHeader.Filename == "" {
		c.Error(contracts.NewServiceError(contracts.ErrorCodeInvalidRequest,
			"no file selected"))
		return nil, false
	}
	return fileHeader, true
}

// parseScale 解析scale表单字段,未提供时返回0由服务层取默认值
// 显式传入的scale必须为正整数,0不等同于未提供
func parseScale(c *gin.Context) (int, bool) {
	raw := c.PostForm("scale")
	if raw == "" {
		return 0, true
	}
	scale, err := strconv.Atoi(raw)
	if err != nil || scale <= 0 {
		c.Error(contracts.NewServiceError(contracts.ErrorCodeInvalidRequest,
			"scale must be a positive integer"))
		return 0, false
	}
	return scale, true
}
