package company

import (
	"bitwise74/company-api/internal"
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/internal/query"
	"bitwise74/company-api/pkg/hateoas"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CompanyList returns a page of companies with only their basic fields
func CompanyList(c *gin.Context, d *internal.Deps) {
	companies := []model.CompanySummary{}
	list(c, d, &companies)
}

// CompanyListDetailed returns a page of companies with every field
func CompanyListDetailed(c *gin.Context, d *internal.Deps) {
	companies := []model.Company{}
	list(c, d, &companies)
}

func list(c *gin.Context, d *internal.Deps, dest any) {
	requestID := c.MustGet("requestID").(string)

	p, err := query.Parse(c, viper.GetInt("pagination.companies_page_size"), sorting)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	base := d.DB.
		WithContext(c.Request.Context()).
		Model(model.Company{}).
		Scopes(query.Search(p.Search, "normalized_name"))

	total, err := query.List(base, sorting, p, dest)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list companies", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":       p.Page,
		"pageSize":   p.PageSize,
		"totalCount": total,
		"companies":  dest,
		"links":      hateoas.Build(c.Request.URL.Path, p.Page, p.PageSize, total, p.Values()),
	})
}
