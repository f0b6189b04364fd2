package category

import (
	"github.com/gin-gonic/gin"
)

func (p *ModuleCategory) InitRouter(r *gin.RouterGroup) {
	categoryGroup := r.Group("/category")
	{
		categoryGroup.GET("/list", ListCategories)
	}
}
