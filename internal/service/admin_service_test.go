package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pfolio_backend/internal/model"
	"pfolio_backend/internal/repository"
	"pfolio_backend/internal/util"
)

func newSeededAdmin() (*AdminService, *repository.Store) {
	store := repository.NewStore()
	repository.SeedDemoData(store)
	store.AddUser(model.User{ID: "a1", Email: "admin@edu.com", Name: "Admin", Role: model.Admin})
	return NewAdminService(store), store
}

func TestAdminService_Overview(t *testing.T) {
	svc, _ := newSeededAdmin()

	assert.Equal(t, Overview{ActiveTeachers: 2, GlobalPractices: 2, GlobalSeminars: 1}, svc.Overview())
}

func TestAdminService_ListTeachers(t *testing.T) {
	svc, _ := newSeededAdmin()

	rows := svc.ListTeachers()

	require.Len(t, rows, 2)
	assert.Equal(t, "t1", rows[0].Teacher.ID)
	assert.Equal(t, 1, rows[0].PracticeCount)
	assert.Equal(t, 1, rows[0].SeminarCount)
	assert.Equal(t, "t2", rows[1].Teacher.ID)
	assert.Equal(t, 1, rows[1].PracticeCount)
	assert.Equal(t, 0, rows[1].SeminarCount)
}

func TestAdminService_Portfolio(t *testing.T) {
	svc, _ := newSeededAdmin()

	p, err := svc.Portfolio("t1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Teacher.Name)
	require.Len(t, p.Practices, 1)
	assert.Equal(t, "p1", p.Practices[0].ID)
	require.Len(t, p.Seminars, 1)
	assert.Equal(t, "s1", p.Seminars[0].ID)

	for _, id := range []string{"missing", "a1"} {
		_, err := svc.Portfolio(id)
		assert.ErrorIs(t, err, util.ErrUserNotFound, id)
	}
}

func TestAdminService_ExportPortfolio(t *testing.T) {
	svc, store := newSeededAdmin()
	store.AddPractice(model.Practice{ID: "p9", TeacherID: "t1", Title: "Peer Review", Date: "2024-05-01", ProofURL: "Simulated_URL_PDF", ExtractedContent: "Reviewed peers."})

	var buf bytes.Buffer
	require.NoError(t, svc.ExportPortfolio("t1", &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Practices", "Seminars"}, f.GetSheetList())

	practices, err := f.GetRows("Practices")
	require.NoError(t, err)
	require.Len(t, practices, 3)
	assert.Equal(t, []string{"ID", "Title", "Description", "Date", "Proof", "Summary"}, practices[0])
	assert.Equal(t, "p1", practices[1][0])
	assert.Equal(t, []string{"p9", "Peer Review", "", "2024-05-01", "Simulated_URL_PDF", "Reviewed peers."}, practices[2])

	seminars, err := f.GetRows("Seminars")
	require.NoError(t, err)
	require.Len(t, seminars, 2)
	assert.Equal(t, "Global Pedagogy Summit", seminars[1][1])
	assert.Equal(t, "2023-09-05", seminars[1][3])
}

func TestAdminService_ExportUnknownTeacher(t *testing.T) {
	svc, _ := newSeededAdmin()

	var buf bytes.Buffer
	assert.ErrorIs(t, svc.ExportPortfolio("nobody", &buf), util.ErrUserNotFound)
	assert.Zero(t, buf.Len())
}
