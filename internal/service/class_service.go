package service

import (
	"github.com/myclassroom/assessment-api/internal/scoring"
)

// ClassInfo describes one class of the fixed enumeration.
type ClassInfo struct {
	Name            string `json:"name"`
	MeetingsPerWeek int    `json:"meetingsPerWeek"`
}

// ClassService serves the static class enumeration and its per-level meeting
// schedule.
type ClassService struct{}

// NewClassService constructs a ClassService.
func NewClassService() *ClassService {
	return &ClassService{}
}

// Names returns the six class names in their canonical order.
func (s *ClassService) Names() []string {
	names := make([]string, len(scoring.ClassNames))
	copy(names, scoring.ClassNames)
	return names
}

// Details returns each class with how many meetings it holds per week
// (grade-5 classes meet twice).
func (s *ClassService) Details() []ClassInfo {
	infos := make([]ClassInfo, 0, len(scoring.ClassNames))
	for _, name := range scoring.ClassNames {
		infos = append(infos, ClassInfo{Name: name, MeetingsPerWeek: scoring.MeetingsPerWeek(name)})
	}
	return infos
}
