package repository

import "pfolio_backend/internal/model"

// SeedDemoData loads the demo teachers and activities into an empty store.
// It does nothing when the store already holds users.
func SeedDemoData(s *Store) bool {
	if s.Counts().Users > 0 {
		return false
	}

	teachers := []model.User{
		{ID: "t1", Email: "jane@edu.com", Name: "Jane Doe", Role: model.Teacher, Contact: "+123456789", Qualifications: "PhD Education"},
		{ID: "t2", Email: "john@edu.com", Name: "John Smith", Role: model.Teacher, Contact: "+987654321", Qualifications: "Masters in STEM"},
	}
	for _, t := range teachers {
		s.AddUser(t)
	}

	s.AddPractice(model.Practice{ID: "p1", TeacherID: "t1", Title: "Interactive Math Workshop", Description: "Used digital tablets for geometry.", Date: "2023-10-15"})
	s.AddPractice(model.Practice{ID: "p2", TeacherID: "t2", Title: "Robotics Lab", Description: "Hands-on assembly session.", Date: "2023-11-20"})

	s.AddSeminar(model.Seminar{ID: "s1", TeacherID: "t1", Title: "Global Pedagogy Summit", FromDate: "2023-09-01", ToDate: "2023-09-05"})

	return true
}
