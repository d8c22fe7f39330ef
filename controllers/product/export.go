package productControllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/emma-ortiz/OlivosVerdes-3/models"
)

type productLister interface {
	ListAll(ctx context.Context) ([]models.Product, error)
}

// GET /products/export
func ExportProducts(cat productLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := cat.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"ID", "Name", "Description", "Category", "BasePrice",
			"DiscountedPrice", "PromotionStart", "PromotionEnd", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, p := range products {
			row := sheet.AddRow()

			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Category.Name)
			row.AddCell().SetValue(p.BasePrice.StringFixed(2))

			if p.Promotion != nil {
				row.AddCell().SetValue(p.Promotion.DiscountedPrice.StringFixed(2))
				row.AddCell().SetValue(p.Promotion.StartDate.Format("2006-01-02"))
				row.AddCell().SetValue(p.Promotion.EndDate.Format("2006-01-02"))
			} else {
				row.AddCell().SetValue("")
				row.AddCell().SetValue("")
				row.AddCell().SetValue("")
			}

			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		// Write file to response
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
