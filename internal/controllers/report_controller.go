package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/services"
	"hospital-meals/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetReports(ctx echo.Context) error {
	params, err := parseReportParams(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	summary, err := c.reportService.Summary(ctx.Request().Context(), params)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, summary, "Отчёты сформированы", http.StatusOK)
}

func parseReportParams(ctx echo.Context) (dto.ReportParamsDTO, error) {
	var params dto.ReportParamsDTO
	var err error
	if params.Days, err = utils.QueryInt(ctx, "days"); err != nil {
		return params, err
	}
	if params.Weeks, err = utils.QueryInt(ctx, "weeks"); err != nil {
		return params, err
	}
	if params.Limit, err = utils.QueryInt(ctx, "limit"); err != nil {
		return params, err
	}
	return params, nil
}

// ExportXLSX выгружает все отчёты в одну книгу, по листу на отчёт.
func (c *ReportController) ExportXLSX(ctx echo.Context) error {
	summary, err := c.reportService.ExportSummary(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f := excelize.NewFile()
	defer f.Close()

	header, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	first := true
	for _, table := range reportTables(summary) {
		if first {
			f.SetSheetName("Sheet1", table.title)
			first = false
		} else if _, err := f.NewSheet(table.title); err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}

		headers := table.headers
		_ = f.SetSheetRow(table.title, "A1", &headers)
		lastCol, _ := excelize.ColumnNumberToName(len(headers))
		_ = f.SetCellStyle(table.title, "A1", lastCol+"1", header)
		_ = f.SetColWidth(table.title, "A", lastCol, 22)

		for i, row := range table.rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			values := make([]interface{}, len(row))
			for j := range row {
				values[j] = row[j]
			}
			_ = f.SetSheetRow(table.title, cell, &values)
		}
	}

	fileName := fmt.Sprintf("meal_reports_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

// ExportCSV пишет те же таблицы подряд, разделяя их пустой строкой.
func (c *ReportController) ExportCSV(ctx echo.Context) error {
	summary, err := c.reportService.ExportSummary(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileName := fmt.Sprintf("meal_reports_%s.csv", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(ctx.Response().Writer)
	for i, table := range reportTables(summary) {
		if i > 0 {
			_ = w.Write([]string{})
		}
		_ = w.Write([]string{table.title})
		_ = w.Write(table.headers)
		_ = w.WriteAll(table.rows)
	}
	w.Flush()
	return w.Error()
}

type reportTable struct {
	title   string
	headers []string
	rows    [][]string
}

func reportTables(s *dto.ReportSummaryDTO) []reportTable {
	daily := reportTable{title: "Заказы по дням", headers: []string{"День", "Заказов"}}
	for _, r := range s.Daily {
		daily.rows = append(daily.rows, []string{r.Day, strconv.FormatInt(r.Count, 10)})
	}

	weekly := reportTable{title: "Заказы по неделям", headers: []string{"Неделя", "Заказов"}}
	for _, r := range s.Weekly {
		weekly.rows = append(weekly.rows, []string{r.Week, strconv.FormatInt(r.Count, 10)})
	}

	top := reportTable{title: "Популярные блюда", headers: []string{"ID блюда", "Блюдо", "Заказов"}}
	for _, r := range s.TopDishes {
		top.rows = append(top.rows, []string{strconv.FormatUint(r.ItemID, 10), r.ItemName, strconv.FormatInt(r.Count, 10)})
	}

	diet := reportTable{title: "По диетам", headers: []string{"Ограничение", "Заказов"}}
	for _, r := range s.ByDiet {
		diet.rows = append(diet.rows, []string{r.Restriction, strconv.FormatInt(r.Count, 10)})
	}

	waste := reportTable{title: "Отходы по палатам", headers: []string{"День", "Палата", "Средний процент отходов"}}
	for _, r := range s.WasteByWardDaily {
		waste.rows = append(waste.rows, []string{r.Day, r.Ward, strconv.FormatFloat(r.WastePercent, 'f', 2, 64)})
	}

	return []reportTable{daily, weekly, top, diet, waste}
}
