package service

import (
	"fmt"
	"slices"
	"time"

	"pfolio_backend/internal/model"
	"pfolio_backend/internal/repository"
	"pfolio_backend/internal/util"
)

// Tab is a dashboard section. The set is closed.
type Tab string

const (
	TabHome       Tab = "home"
	TabProfile    Tab = "profile"
	TabActivities Tab = "activities"
	TabManagement Tab = "management"
)

// ParseTab maps a query value onto a Tab. An empty value means home.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case "":
		return TabHome, nil
	case TabHome, TabProfile, TabActivities, TabManagement:
		return Tab(s), nil
	}
	return "", fmt.Errorf("%w: %q", util.ErrUnknownTab, s)
}

// AvailableTabs lists the sections a role may open, in navigation order.
func AvailableTabs(role model.UserRole) []Tab {
	tabs := []Tab{TabHome, TabProfile, TabActivities}
	if role == model.Admin {
		tabs = append(tabs, TabManagement)
	}
	return tabs
}

// View is one composed dashboard section.
type View interface {
	Tab() Tab
}

type TeacherStats struct {
	TotalPractices int `json:"totalPractices"`
	TotalSeminars  int `json:"totalSeminars"`
	ProofsUploaded int `json:"proofsUploaded"`
}

// MonthlyActivity counts records per calendar month. Seminars are counted
// in the month they start.
type MonthlyActivity struct {
	Month     string `json:"month"`
	Practices int    `json:"practices"`
	Seminars  int    `json:"seminars"`
}

type TeacherHomeView struct {
	Stats           TeacherStats      `json:"stats"`
	RecentPractices []model.Practice  `json:"recentPractices"`
	Trend           []MonthlyActivity `json:"trend"`
}

type AdminHomeView struct {
	Overview
	Teachers []TeacherSummary `json:"teachers"`
}

type ProfileView struct {
	User model.User `json:"user"`
}

type ActivitiesView struct {
	Activities
}

type ManagementView struct {
	Teachers []TeacherSummary `json:"teachers"`
}

func (TeacherHomeView) Tab() Tab { return TabHome }
func (AdminHomeView) Tab() Tab   { return TabHome }
func (ProfileView) Tab() Tab     { return TabProfile }
func (ActivitiesView) Tab() Tab  { return TabActivities }
func (ManagementView) Tab() Tab  { return TabManagement }

const recentPracticeLimit = 3

// DashboardService composes the view for a user and a tab.
type DashboardService struct {
	store      *repository.Store
	activities *ActivityService
	admin      *AdminService
}

func NewDashboardService(store *repository.Store, activities *ActivityService, admin *AdminService) *DashboardService {
	return &DashboardService{store: store, activities: activities, admin: admin}
}

func (s *DashboardService) Compose(user *model.User, tab Tab) (View, error) {
	if user == nil {
		return nil, util.ErrSessionNotFound
	}

	switch tab {
	case TabHome:
		if user.IsAdmin() {
			return AdminHomeView{Overview: s.admin.Overview(), Teachers: s.admin.ListTeachers()}, nil
		}
		return s.teacherHome(user), nil
	case TabProfile:
		return ProfileView{User: *user}, nil
	case TabActivities:
		return ActivitiesView{Activities: s.activities.ListOwn(user)}, nil
	case TabManagement:
		if !user.IsAdmin() {
			return nil, util.ErrPermissionDenied
		}
		return ManagementView{Teachers: s.admin.ListTeachers()}, nil
	}
	return nil, fmt.Errorf("%w: %q", util.ErrUnknownTab, tab)
}

func (s *DashboardService) teacherHome(user *model.User) TeacherHomeView {
	practices := s.store.PracticesByTeacher(user.ID)
	seminars := s.store.SeminarsByTeacher(user.ID)

	stats := TeacherStats{TotalPractices: len(practices), TotalSeminars: len(seminars)}
	for _, p := range practices {
		if p.HasProof() {
			stats.ProofsUploaded++
		}
	}
	for _, sem := range seminars {
		if sem.HasProof() {
			stats.ProofsUploaded++
		}
	}

	return TeacherHomeView{
		Stats:           stats,
		RecentPractices: practices[:min(len(practices), recentPracticeLimit)],
		Trend:           monthlyTrend(practices, seminars),
	}
}

func monthlyTrend(practices []model.Practice, seminars []model.Seminar) []MonthlyActivity {
	byMonth := make(map[string]*MonthlyActivity)
	bucket := func(date string) *MonthlyActivity {
		t, err := time.Parse(model.DateFormat, date)
		if err != nil {
			// 日期不做校验，无法解析的不计入
			return nil
		}
		month := t.Format("2006-01")
		if byMonth[month] == nil {
			byMonth[month] = &MonthlyActivity{Month: month}
		}
		return byMonth[month]
	}

	for _, p := range practices {
		if m := bucket(p.Date); m != nil {
			m.Practices++
		}
	}
	for _, sem := range seminars {
		if m := bucket(sem.FromDate); m != nil {
			m.Seminars++
		}
	}

	trend := make([]MonthlyActivity, 0, len(byMonth))
	for _, m := range byMonth {
		trend = append(trend, *m)
	}
	slices.SortFunc(trend, func(a, b MonthlyActivity) int {
		switch {
		case a.Month < b.Month:
			return -1
		case a.Month > b.Month:
			return 1
		}
		return 0
	})
	return trend
}
