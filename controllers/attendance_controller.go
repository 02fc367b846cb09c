package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/attendly/attendance-api/models"
	"github.com/attendly/attendance-api/repos"
	"github.com/attendly/attendance-api/utils"
)

// datePattern enforces the 4-2-2 digit-dash lexical form before any calendar
// validation happens.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AttendanceController manages CRUD operations for attendance records.
type AttendanceController struct {
	repo repos.AttendanceRepo
}

// NewAttendanceController creates a new AttendanceController instance.
func NewAttendanceController(repo repos.AttendanceRepo) *AttendanceController {
	return &AttendanceController{repo: repo}
}

// CreateRecord validates and stores one attendance entry.
func (a *AttendanceController) CreateRecord(ctx *gin.Context) {
	if a.repo == nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Database connection not established")
		return
	}

	var req struct {
		EmployeeName string `json:"employeeName"`
		EmployeeID   string `json:"employeeID"`
		Date         string `json:"date"`
		Status       string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req.EmployeeName = strings.TrimSpace(req.EmployeeName)
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	if req.EmployeeName == "" || req.EmployeeID == "" || req.Date == "" || req.Status == "" {
		utils.Fail(ctx, http.StatusBadRequest, "employeeName, employeeID, date and status are required")
		return
	}

	if req.Status != models.StatusPresent && req.Status != models.StatusAbsent {
		utils.Fail(ctx, http.StatusBadRequest, "status must be exactly 'Present' or 'Absent'")
		return
	}

	if !datePattern.MatchString(req.Date) {
		utils.Fail(ctx, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "date is not a valid calendar date")
		return
	}

	record := models.Attendance{
		EmployeeName: req.EmployeeName,
		EmployeeID:   req.EmployeeID,
		Date:         date,
		Status:       req.Status,
	}

	if err := a.repo.Create(&record); err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			utils.Fail(ctx, http.StatusBadRequest, "Duplicate entry found")
			return
		}
		utils.FailWithDetails(ctx, http.StatusInternalServerError, "Failed to create attendance record", err.Error())
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Attendance recorded successfully",
		"id":      record.ID,
		"data":    record,
	})
}

// ListRecords returns every attendance entry, most recent date first.
func (a *AttendanceController) ListRecords(ctx *gin.Context) {
	if a.repo == nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Database connection not established")
		return
	}

	records, err := a.repo.List()
	if err != nil {
		utils.FailWithDetails(ctx, http.StatusInternalServerError, "Failed to fetch attendance records", err.Error())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

// DeleteRecord removes one attendance entry by numeric id.
func (a *AttendanceController) DeleteRecord(ctx *gin.Context) {
	if a.repo == nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Database connection not established")
		return
	}

	idParam := ctx.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "id must be a numeric value")
		return
	}

	if err := a.repo.Delete(uint(id)); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			utils.Fail(ctx, http.StatusNotFound, "Record not found")
			return
		}
		utils.FailWithDetails(ctx, http.StatusInternalServerError, "Failed to delete attendance record", err.Error())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Attendance record deleted",
	})
}
