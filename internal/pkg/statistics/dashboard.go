package statistics

import (
	"fmt"
	"sync"
	"time"

	"github.com/cleanstreetapp/cleanstreet/app/models"
)

const (
	recentIssueLimit = 5
	mapMarkerLimit   = 50
	trailingWindow   = 7 * 24 * time.Hour
)

// Dashboard is the fixed envelope rendered by the admin frontend.
type Dashboard struct {
	Header         DashboardHeader `json:"header"`
	Cards          []DashboardCard `json:"cards"`
	ReportedIssues []ReportedIssue `json:"reportedIssues"`
	MapView        MapView         `json:"mapView"`
}

type DashboardHeader struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type DashboardCard struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
	Delta string `json:"delta,omitempty"`
}

type ReportedIssue struct {
	Rank      string    `json:"rank"`
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	IssueType string    `json:"issueType"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	Reporter  string    `json:"reporter"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type MapMarker struct {
	ID        uint    `json:"id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Status    string  `json:"status"`
	Priority  string  `json:"priority"`
	Title     string  `json:"title"`
	IssueType string  `json:"issueType"`
}

type MapLegendEntry struct {
	Status string `json:"status"`
	Color  string `json:"color"`
}

type MapView struct {
	Legend  []MapLegendEntry `json:"legend"`
	Markers []MapMarker      `json:"markers"`
}

// AdminDashboard composes the admin overview from seven independent reads
// issued concurrently. The reads share no transaction, so a write racing
// them can yield a mildly skewed snapshot (a complaint counted in the total
// but not in the trailing week, or vice versa). That skew is accepted for a
// monitoring view; the call fails as a whole if any single read fails.
func (s *Service) AdminDashboard() (*Dashboard, error) {
	weekStart := time.Now().Add(-trailingWindow)

	var (
		total, received, resolved, lastWeek, citizens int64
		recent, located                               []models.Complaint
	)

	errs := make([]error, 7)
	var wg sync.WaitGroup
	wg.Add(7)
	go func() { defer wg.Done(); total, errs[0] = s.repos.Complaint.Count() }()
	go func() { defer wg.Done(); received, errs[1] = s.repos.Complaint.CountByStatus(models.StatusReceived) }()
	go func() { defer wg.Done(); resolved, errs[2] = s.repos.Complaint.CountByStatus(models.StatusResolved) }()
	go func() { defer wg.Done(); lastWeek, errs[3] = s.repos.Complaint.CountCreatedSince(weekStart) }()
	go func() { defer wg.Done(); citizens, errs[4] = s.repos.User.CountCitizens() }()
	go func() { defer wg.Done(); recent, errs[5] = s.repos.Complaint.Recent(recentIssueLimit) }()
	go func() { defer wg.Done(); located, errs[6] = s.repos.Complaint.RecentWithCoordinates(mapMarkerLimit) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	issues := make([]ReportedIssue, len(recent))
	for i, c := range recent {
		issues[i] = ReportedIssue{
			// Presentation-only rank in retrieval order, newest first.
			Rank:      fmt.Sprintf("#%d", i+1),
			ID:        c.ID,
			Title:     c.Title,
			IssueType: c.IssueType,
			Priority:  models.PriorityLabel(c.Priority),
			Status:    models.StatusLabel(c.Status),
			Reporter:  c.User.DisplayName(),
			Address:   c.Address,
			CreatedAt: c.CreatedAt,
		}
	}

	markers := make([]MapMarker, 0, len(located))
	for _, c := range located {
		if !c.HasCoordinates() {
			continue
		}
		markers = append(markers, MapMarker{
			ID:        c.ID,
			Lat:       *c.Latitude,
			Lng:       *c.Longitude,
			Status:    models.StatusLabel(c.Status),
			Priority:  models.PriorityLabel(c.Priority),
			Title:     c.Title,
			IssueType: c.IssueType,
		})
	}

	return &Dashboard{
		Header: DashboardHeader{
			Title:    "Admin Dashboard",
			Subtitle: "Civic issue reports overview",
		},
		Cards: []DashboardCard{
			{Label: "Total Complaints", Value: total, Delta: fmt.Sprintf("+%d this week", lastWeek)},
			{Label: "Pending", Value: received},
			{Label: "Resolved", Value: resolved},
			{Label: "Active Citizens", Value: citizens},
		},
		ReportedIssues: issues,
		MapView: MapView{
			Legend: []MapLegendEntry{
				{Status: "Pending", Color: "red"},
				{Status: "In Progress", Color: "orange"},
				{Status: "Resolved", Color: "green"},
			},
			Markers: markers,
		},
	}, nil
}
