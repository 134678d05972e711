package service

import (
	"fmt"
	"io"

	"pfolio_backend/internal/model"
	"pfolio_backend/internal/repository"
	"pfolio_backend/internal/util"
	"pfolio_backend/pkg/logger"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// TeacherSummary 教师列表中的一行
type TeacherSummary struct {
	Teacher       model.User `json:"teacher"`
	PracticeCount int        `json:"practiceCount"`
	SeminarCount  int        `json:"seminarCount"`
}

type Overview struct {
	ActiveTeachers  int `json:"activeTeachers"`
	GlobalPractices int `json:"globalPractices"`
	GlobalSeminars  int `json:"globalSeminars"`
}

// Portfolio is one teacher's drill-down: the teacher plus their own records.
type Portfolio struct {
	Teacher   model.User       `json:"teacher"`
	Practices []model.Practice `json:"practices"`
	Seminars  []model.Seminar  `json:"seminars"`
}

// AdminService serves the administrator's unscoped aggregates and the
// per-teacher drill-down.
type AdminService struct {
	store *repository.Store
}

func NewAdminService(store *repository.Store) *AdminService {
	return &AdminService{store: store}
}

func (s *AdminService) Overview() Overview {
	c := s.store.Counts()
	return Overview{
		ActiveTeachers:  c.Teachers,
		GlobalPractices: c.Practices,
		GlobalSeminars:  c.Seminars,
	}
}

func (s *AdminService) ListTeachers() []TeacherSummary {
	teachers := s.store.Teachers()
	practices := s.store.Practices()
	seminars := s.store.Seminars()

	practiceCounts := make(map[string]int, len(teachers))
	for _, p := range practices {
		practiceCounts[p.TeacherID]++
	}
	seminarCounts := make(map[string]int, len(teachers))
	for _, sem := range seminars {
		seminarCounts[sem.TeacherID]++
	}

	rows := make([]TeacherSummary, 0, len(teachers))
	for _, t := range teachers {
		rows = append(rows, TeacherSummary{
			Teacher:       t,
			PracticeCount: practiceCounts[t.ID],
			SeminarCount:  seminarCounts[t.ID],
		})
	}
	return rows
}

func (s *AdminService) Portfolio(teacherID string) (*Portfolio, error) {
	teacher, ok := s.store.FindUser(teacherID)
	if !ok || !teacher.IsTeacher() {
		return nil, util.ErrUserNotFound
	}

	return &Portfolio{
		Teacher:   teacher,
		Practices: s.store.PracticesByTeacher(teacherID),
		Seminars:  s.store.SeminarsByTeacher(teacherID),
	}, nil
}

const (
	sheetPractices = "Practices"
	sheetSeminars  = "Seminars"
)

// ExportPortfolio 导出教师档案为xlsx
func (s *AdminService) ExportPortfolio(teacherID string, w io.Writer) error {
	portfolio, err := s.Portfolio(teacherID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Log.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	// 新建文件自带 Sheet1
	if err := f.SetSheetName("Sheet1", sheetPractices); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetSeminars); err != nil {
		return err
	}

	practiceRows := [][]interface{}{{"ID", "Title", "Description", "Date", "Proof", "Summary"}}
	for _, p := range portfolio.Practices {
		practiceRows = append(practiceRows, []interface{}{p.ID, p.Title, p.Description, p.Date, p.ProofURL, p.ExtractedContent})
	}
	if err := writeRows(f, sheetPractices, practiceRows); err != nil {
		return err
	}

	seminarRows := [][]interface{}{{"ID", "Title", "From", "To", "Proof", "Summary"}}
	for _, sem := range portfolio.Seminars {
		seminarRows = append(seminarRows, []interface{}{sem.ID, sem.Title, sem.FromDate, sem.ToDate, sem.ProofURL, sem.ExtractedContent})
	}
	if err := writeRows(f, sheetSeminars, seminarRows); err != nil {
		return err
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Portfolio: " + portfolio.Teacher.Name,
		Creator: "pfolio",
	}); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
