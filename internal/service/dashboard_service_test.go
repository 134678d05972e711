package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfolio_backend/internal/model"
	"pfolio_backend/internal/repository"
	"pfolio_backend/internal/util"
)

func newDashboardFixture() (*DashboardService, *repository.Store) {
	store := repository.NewStore()
	repository.SeedDemoData(store)
	store.AddUser(*adminUser)
	activities := NewActivityService(store, &countingAnalyzer{}, &memoryProofStore{}, 0)
	return NewDashboardService(store, activities, NewAdminService(store)), store
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		in      string
		want    Tab
		wantErr bool
	}{
		{in: "", want: TabHome},
		{in: "home", want: TabHome},
		{in: "profile", want: TabProfile},
		{in: "activities", want: TabActivities},
		{in: "management", want: TabManagement},
		{in: "Home", wantErr: true},
		{in: "settings", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTab(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, util.ErrUnknownTab)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailableTabs(t *testing.T) {
	assert.Equal(t, []Tab{TabHome, TabProfile, TabActivities}, AvailableTabs(model.Teacher))
	assert.Equal(t, []Tab{TabHome, TabProfile, TabActivities, TabManagement}, AvailableTabs(model.Admin))
}

func TestDashboardService_TeacherHome(t *testing.T) {
	svc, store := newDashboardFixture()
	store.AddPractice(model.Practice{ID: "p3", TeacherID: "t1", Title: "Flipped Classroom", Date: "2023-10-30", ProofURL: "Simulated_URL_PDF"})
	store.AddPractice(model.Practice{ID: "p4", TeacherID: "t1", Title: "Peer Tutoring", Date: "2024-01-10"})
	store.AddPractice(model.Practice{ID: "p5", TeacherID: "t1", Title: "Undated", Date: "soon"})

	view, err := svc.Compose(teacherOne, TabHome)
	require.NoError(t, err)

	home, ok := view.(TeacherHomeView)
	require.True(t, ok)
	assert.Equal(t, TabHome, home.Tab())
	assert.Equal(t, TeacherStats{TotalPractices: 4, TotalSeminars: 1, ProofsUploaded: 1}, home.Stats)

	require.Len(t, home.RecentPractices, 3)
	assert.Equal(t, "p1", home.RecentPractices[0].ID)
	assert.Equal(t, "p4", home.RecentPractices[2].ID)

	assert.Equal(t, []MonthlyActivity{
		{Month: "2023-09", Seminars: 1},
		{Month: "2023-10", Practices: 2},
		{Month: "2024-01", Practices: 1},
	}, home.Trend)
}

func TestDashboardService_AdminHome(t *testing.T) {
	svc, _ := newDashboardFixture()

	view, err := svc.Compose(adminUser, TabHome)
	require.NoError(t, err)

	home, ok := view.(AdminHomeView)
	require.True(t, ok)
	assert.Equal(t, Overview{ActiveTeachers: 2, GlobalPractices: 2, GlobalSeminars: 1}, home.Overview)
	assert.Len(t, home.Teachers, 2)
}

func TestDashboardService_ActivitiesAreScoped(t *testing.T) {
	svc, _ := newDashboardFixture()

	view, err := svc.Compose(teacherTwo, TabActivities)
	require.NoError(t, err)

	acts := view.(ActivitiesView)
	require.Len(t, acts.Practices, 1)
	assert.Equal(t, "p2", acts.Practices[0].ID)
	assert.Empty(t, acts.Seminars)
}

func TestDashboardService_Profile(t *testing.T) {
	svc, _ := newDashboardFixture()

	view, err := svc.Compose(teacherOne, TabProfile)
	require.NoError(t, err)
	assert.Equal(t, ProfileView{User: *teacherOne}, view)
}

func TestDashboardService_Management(t *testing.T) {
	svc, _ := newDashboardFixture()

	_, err := svc.Compose(teacherOne, TabManagement)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	view, err := svc.Compose(adminUser, TabManagement)
	require.NoError(t, err)
	mgmt := view.(ManagementView)
	assert.Len(t, mgmt.Teachers, 2)
}

func TestDashboardService_Rejects(t *testing.T) {
	svc, _ := newDashboardFixture()

	_, err := svc.Compose(teacherOne, Tab("settings"))
	assert.ErrorIs(t, err, util.ErrUnknownTab)

	_, err = svc.Compose(nil, TabHome)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}
