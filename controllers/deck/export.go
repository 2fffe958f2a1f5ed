package deckController

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rodrigo-toledo-alt/proxydeck-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ExportDecksToExcel streams the full catalog as an xlsx download for the
// back-office.
// URL: GET /admin/decks/export-excel
func ExportDecksToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var decks []models.Deck
		if err := db.Preload("Games").Preload("Cards").Find(&decks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch decks"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Decks")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Description", "Price", "Image",
			"Games", "CardCount", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, d := range decks {
			row := sheet.AddRow()

			row.AddCell().SetValue(d.ID)
			row.AddCell().SetValue(d.Name)
			row.AddCell().SetValue(d.Description)
			row.AddCell().SetValue(d.Price.StringFixed(2))
			row.AddCell().SetValue(d.Image)

			var gameNames []string
			for _, g := range d.Games {
				gameNames = append(gameNames, g.Name)
			}
			row.AddCell().SetValue(strings.Join(gameNames, ","))

			row.AddCell().SetValue(strconv.Itoa(len(d.Cards)))
			row.AddCell().SetValue(d.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(d.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=decks.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
