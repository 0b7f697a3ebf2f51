package controllers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"frontline-inventory/mailer"
	"frontline-inventory/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ExportController struct {
	DB    *gorm.DB
	Items *repositories.ItemRepository
	Stock *repositories.StockRepository
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{
		DB:    db,
		Items: repositories.NewItemRepository(db),
		Stock: repositories.NewStockRepository(db),
	}
}

// ExportItemsExcel writes the catalog as an xlsx download.
func (c *ExportController) ExportItemsExcel(ctx *fiber.Ctx) error {
	items, err := c.Items.ListItems(repositories.ItemQuery{})
	if err != nil {
		return respondRepoError(ctx, err)
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "SKU")
	f.SetCellValue(sheet, "B1", "Name")
	f.SetCellValue(sheet, "C1", "Qty")
	f.SetCellValue(sheet, "D1", "Min Qty")
	f.SetCellValue(sheet, "E1", "Price")
	f.SetCellValue(sheet, "F1", "Currency")
	f.SetCellValue(sheet, "G1", "Notes")

	for i, item := range items {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.SKU)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Qty)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.MinQty)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.Price.String())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Currency)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.Notes)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="items.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return respondRepoError(ctx, err)
	}
	return nil
}

// ExportTransactionsExcel writes the ledger as an xlsx download.
func (c *ExportController) ExportTransactionsExcel(ctx *fiber.Ctx) error {
	entries, err := c.Stock.ListTx(repositories.TxQuery{})
	if err != nil {
		return respondRepoError(ctx, err)
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Ts")
	f.SetCellValue(sheet, "B1", "SKU")
	f.SetCellValue(sheet, "C1", "Name")
	f.SetCellValue(sheet, "D1", "Delta")
	f.SetCellValue(sheet, "E1", "Note")
	f.SetCellValue(sheet, "F1", "User")

	for i, entry := range entries {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.Ts.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.SKU)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.Name)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), entry.Delta)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), entry.Note)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), entry.UserName)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="transactions.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return respondRepoError(ctx, err)
	}
	return nil
}

// ExportItemsCSV writes the catalog as a csv download.
func (c *ExportController) ExportItemsCSV(ctx *fiber.Ctx) error {
	items, err := c.Items.ListItems(repositories.ItemQuery{})
	if err != nil {
		return respondRepoError(ctx, err)
	}

	ctx.Set("Content-Type", "text/csv")
	ctx.Set("Content-Disposition", `attachment; filename="items.csv"`)

	w := csv.NewWriter(ctx.Response().BodyWriter())
	if err := w.Write([]string{"sku", "name", "qty", "min_qty", "price", "currency", "notes"}); err != nil {
		return respondRepoError(ctx, err)
	}
	for _, item := range items {
		record := []string{
			item.SKU,
			item.Name,
			strconv.Itoa(item.Qty),
			strconv.Itoa(item.MinQty),
			item.Price.String(),
			item.Currency,
			item.Notes,
		}
		if err := w.Write(record); err != nil {
			return respondRepoError(ctx, err)
		}
	}
	w.Flush()
	return w.Error()
}

// ExportItemsJSON writes the catalog as a json download.
func (c *ExportController) ExportItemsJSON(ctx *fiber.Ctx) error {
	items, err := c.Items.ListItems(repositories.ItemQuery{})
	if err != nil {
		return respondRepoError(ctx, err)
	}
	ctx.Set("Content-Disposition", `attachment; filename="items.json"`)
	return ctx.Status(fiber.StatusOK).JSON(items)
}

// ImportItems loads a catalog snapshot from an uploaded csv or json file.
// mode=merge upserts by sku; mode=replace wipes the catalog and ledger first.
func (c *ExportController) ImportItems(ctx *fiber.Ctx) error {
	mode := ctx.Query("mode", repositories.ImportModeMerge)
	file, err := ctx.FormFile("file")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}

	src, err := file.Open()
	if err != nil {
		return respondRepoError(ctx, err)
	}
	defer src.Close()

	var rows []repositories.ImportRow
	switch {
	case strings.HasSuffix(file.Filename, ".json"):
		if err := json.NewDecoder(src).Decode(&rows); err != nil {
			return respondRepoError(ctx, repositories.ErrInvalidArgument)
		}
	case strings.HasSuffix(file.Filename, ".csv"):
		rows, err = parseImportCSV(src)
		if err != nil {
			return respondRepoError(ctx, repositories.ErrInvalidArgument)
		}
	default:
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}

	for _, row := range rows {
		if err := validate.Struct(row); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
	}

	actor := currentUser(ctx, c.DB)
	count, err := c.Stock.ImportItems(rows, mode, actor)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Imported %d items (%s)", count, mode),
		"count":   count,
	})
}

func parseImportCSV(src io.Reader) ([]repositories.ImportRow, error) {
	reader := csv.NewReader(src)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	get := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []repositories.ImportRow
	for _, record := range records[1:] {
		row := repositories.ImportRow{
			SKU:      get(record, "sku"),
			Name:     get(record, "name"),
			Currency: get(record, "currency"),
			Notes:    get(record, "notes"),
		}
		row.Qty, _ = strconv.Atoi(get(record, "qty"))
		row.MinQty, _ = strconv.Atoi(get(record, "min_qty"))
		if price := get(record, "price"); price != "" {
			if d, err := decimal.NewFromString(price); err == nil {
				row.Price = d
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SendLowStockAlert mails the low stock report to the configured recipients.
func (c *ExportController) SendLowStockAlert(ctx *fiber.Ctx) error {
	items, err := c.Items.LowStockItems()
	if err != nil {
		return respondRepoError(ctx, err)
	}
	if err := mailer.SendLowStockAlert(items); err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Alert sent for %d items", len(items)),
		"count":   len(items),
	})
}
