package application

import (
	"context"
	"time"
)

type DashboardStats struct {
	ProjectsCount  int       `json:"projectsCount"`
	BlogPostsCount int       `json:"blogPostsCount"`
	HasCVFile      bool      `json:"hasCVFile"`
	LastLoginDate  time.Time `json:"lastLoginDate"`
}

type DashboardService struct {
	Projects *ProjectService
	Blog     *BlogService
	Uploads  *UploadService
}

func NewDashboardService(p *ProjectService, b *BlogService, u *UploadService) *DashboardService {
	return &DashboardService{Projects: p, Blog: b, Uploads: u}
}

// Stats counts every project and post, including hidden ones. loginAt is the
// issue time of the caller's token.
func (s *DashboardService) Stats(ctx context.Context, loginAt time.Time) (*DashboardStats, error) {
	projects, err := s.Projects.Count()
	if err != nil {
		return nil, err
	}
	posts, err := s.Blog.Count()
	if err != nil {
		return nil, err
	}
	hasCV, err := s.Uploads.HasCV(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		ProjectsCount:  projects,
		BlogPostsCount: posts,
		HasCVFile:      hasCV,
		LastLoginDate:  loginAt.UTC(),
	}, nil
}
