package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/taskdash/apigateway/internal/domain"
)

const dateFormat = "2006-01-02"

// TaskExporter renders task lists as .xlsx downloads.
type TaskExporter struct {
	layout Layout
}

func NewTaskExporter(layout Layout) *TaskExporter {
	return &TaskExporter{layout: layout}
}

// Write renders the tasks to w: a title row, a header row, then one row per
// task in the order given.
func (e *TaskExporter) Write(tasks []domain.Task, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := e.layout.Sheet
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", e.layout.Title); err != nil {
		return err
	}

	for i, col := range e.layout.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if col.Width > 0 {
			if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
				return err
			}
		}
		cell := fmt.Sprintf("%s2", name)
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return err
		}
	}

	for row, task := range tasks {
		for i, col := range e.layout.Columns {
			name, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return err
			}
			cell := fmt.Sprintf("%s%d", name, row+3)
			if err := f.SetCellValue(sheet, cell, fieldValue(&task, col.Field)); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func fieldValue(task *domain.Task, field string) interface{} {
	switch field {
	case FieldTitle:
		return task.Title
	case FieldDescription:
		return task.Description
	case FieldDueDate:
		return task.DueDate.Format(dateFormat)
	case FieldCompletedDate:
		return formatOptional(task.CompletedDate)
	case FieldPriority:
		return string(task.Priority)
	case FieldAssignee:
		return task.Assignee
	case FieldStatus:
		return string(task.Status)
	case FieldCreatedAt:
		return task.CreatedAt.Format(dateFormat)
	default:
		return ""
	}
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}
