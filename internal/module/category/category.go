package category

import (
	"activity-partner/internal/global/database"
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListCategories 启用中的分类，按 sort_order 升序
func ListCategories(c *gin.Context) {
	categories := []model.Category{}
	err := database.DB.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Order("sort_order ASC").Order("id ASC").
		Find(&categories).Error
	if err != nil {
		log.Error("获取分类列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, categories)
}

// CheckActive 创建活动时校验分类存在且启用，id 为 0 表示不分类
func CheckActive(db *gorm.DB, id uint) error {
	if id == 0 {
		return nil
	}
	var category model.Category
	err := db.Select("id").Where("id = ? AND is_active = ?", id, true).Take(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.ErrNotFound.WithTips("分类不存在或已停用")
	}
	if err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}
