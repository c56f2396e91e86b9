// Package export turns a finished report dialogue into an Excel
// workbook that teachers hand over to parents.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/logoscenter/logos-bot/internal/repository"
)

const sheetName = "Отчет преподавателя"

// Words that signal the user is telling the bot who the student is.
var nameKeywords = []string{"зовут", "имя", "ученик", "ученица"}

var (
	boldMarkup   = regexp.MustCompile(`\*\*`)
	pointStart   = regexp.MustCompile(`(?m)^\d+\.`)
	pointPattern = regexp.MustCompile(`(?s)^(\d+)\.\s*([^:\n]+):?\s*(.*)`)
)

// Point is one numbered section of the final report.
type Point struct {
	Number string
	Title  string
	Body   string
}

// StudentName digs the student's name out of the dialogue. A user
// message mentioning one of the name keywords contributes its first
// capitalized word, later mentions win over earlier ones.
func StudentName(history []repository.Message) string {
	var name string
	for _, msg := range history {
		if msg.Role != "user" {
			continue
		}
		lower := strings.ToLower(msg.Content)
		mentioned := false
		for _, keyword := range nameKeywords {
			if strings.Contains(lower, keyword) {
				mentioned = true
				break
			}
		}
		if !mentioned {
			continue
		}
		for _, word := range strings.Fields(msg.Content) {
			if isCapitalizedName(word) {
				name = word
				break
			}
		}
	}
	return name
}

func isCapitalizedName(word string) bool {
	if utf8.RuneCountInString(word) <= 2 {
		return false
	}
	for i, r := range word {
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// FinalReport returns the newest assistant message that looks like a
// complete eight point report, or empty when none exists yet.
func FinalReport(history []repository.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Role != "assistant" {
			continue
		}
		if strings.Contains(msg.Content, "1.") && strings.Contains(msg.Content, "8.") {
			return msg.Content
		}
	}
	return ""
}

// ParsePoints splits the report into its numbered sections. Bold
// markdown markup is stripped, text before the first numbered line is
// dropped.
func ParsePoints(report string) []Point {
	clean := boldMarkup.ReplaceAllString(report, "")

	starts := pointStart.FindAllStringIndex(clean, -1)
	var points []Point
	for i, start := range starts {
		end := len(clean)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		segment := strings.TrimSpace(clean[start[0]:end])
		match := pointPattern.FindStringSubmatch(segment)
		if match == nil {
			continue
		}
		points = append(points, Point{
			Number: match[1],
			Title:  strings.TrimSpace(match[2]),
			Body:   strings.TrimSpace(match[3]),
		})
	}
	return points
}

// Filename builds the workbook name, ОТЧЕТ_<NAME>.xlsx when the
// student is known, otherwise the chat id and a timestamp stand in.
func Filename(studentName, chatID string, now time.Time) string {
	if studentName != "" {
		return fmt.Sprintf("ОТЧЕТ_%s.xlsx", strings.ToUpper(studentName))
	}
	return fmt.Sprintf("ОТЧЕТ_%s_%s.xlsx", chatID, now.Format("20060102_150405"))
}

// BuildWorkbook writes the report points into a styled workbook at path.
func BuildWorkbook(points []Point, studentName, path string, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.MergeCell(sheetName, "A1", "B1"); err != nil {
		return fmt.Errorf("failed to merge title cells: %w", err)
	}

	title := "Отчет преподавателя"
	if studentName != "" {
		title += " - " + studentName
	}
	title += " - " + now.Format("02.01.2006 15:04")

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	pointTitleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return fmt.Errorf("failed to create point style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return fmt.Errorf("failed to create body style: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheetName, 1, 25); err != nil {
		return err
	}

	if err := f.SetCellValue(sheetName, "A2", "Пункт отчёта"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, "B2", "Комментарий"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A2", "B2", headerStyle); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheetName, 2, 30); err != nil {
		return err
	}

	if err := f.SetColWidth(sheetName, "A", "A", 45); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "B", "B", 80); err != nil {
		return err
	}

	for i, point := range points {
		row := 3 + i
		titleCell := fmt.Sprintf("A%d", row)
		bodyCell := fmt.Sprintf("B%d", row)

		if err := f.SetCellValue(sheetName, titleCell, fmt.Sprintf("%s. %s", point.Number, point.Title)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, titleCell, titleCell, pointTitleStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, bodyCell, point.Body); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, bodyCell, bodyCell, bodyStyle); err != nil {
			return err
		}

		height := float64(utf8.RuneCountInString(point.Body) / 4)
		if height < 60 {
			height = 60
		}
		if err := f.SetRowHeight(sheetName, row, height); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		borders = append(borders, excelize.Border{Type: side, Style: 1, Color: "000000"})
	}
	return borders
}
