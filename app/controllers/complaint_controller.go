package controllers

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"github.com/cleanstreetapp/cleanstreet/app/repository"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/statistics"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/upload"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/usercontext"
)

const uploadDir = "./uploads/complaints"

// complaintRequest is the canonical submission shape. Alternate field names
// that accumulated in older clients ("type", "comment") are not probed.
type complaintRequest struct {
	Title       string   `json:"title"`
	IssueType   string   `json:"issueType"`
	Priority    string   `json:"priority"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Landmark    string   `json:"landmark"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (r *complaintRequest) missingFields() []string {
	var missing []string
	if strings.TrimSpace(r.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(r.IssueType) == "" {
		missing = append(missing, "issueType")
	}
	if strings.TrimSpace(r.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(r.Address) == "" {
		missing = append(missing, "address")
	}
	return missing
}

// apply copies the owner-mutable fields onto the complaint. Status,
// assignee and ownership are out of reach of this path.
func (r *complaintRequest) apply(complaint *models.Complaint) {
	complaint.Title = r.Title
	complaint.IssueType = r.IssueType
	complaint.Priority = models.NormalizePriority(r.Priority)
	complaint.Description = r.Description
	complaint.Address = r.Address
	complaint.Landmark = r.Landmark
	// A coordinate pair is stored only when both sides are present.
	if r.Latitude != nil && r.Longitude != nil {
		complaint.Latitude = r.Latitude
		complaint.Longitude = r.Longitude
	} else {
		complaint.Latitude = nil
		complaint.Longitude = nil
	}
}

// HandleCreateComplaint submits a new complaint (JSON body)
func HandleCreateComplaint(c *fiber.Ctx) error {
	var req complaintRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, "Malformed request body")
	}
	return createComplaint(c, &req, "")
}

// HandleSubmitComplaintForm submits a new complaint as a multipart form with
// an optional photo attachment
func HandleSubmitComplaintForm(c *fiber.Ctx) error {
	req := complaintRequest{
		Title:       c.FormValue("title"),
		IssueType:   c.FormValue("issueType"),
		Priority:    c.FormValue("priority"),
		Description: c.FormValue("description"),
		Address:     c.FormValue("address"),
		Landmark:    c.FormValue("landmark"),
	}
	if lat, err := strconv.ParseFloat(c.FormValue("latitude"), 64); err == nil {
		if lng, err := strconv.ParseFloat(c.FormValue("longitude"), 64); err == nil {
			req.Latitude = &lat
			req.Longitude = &lng
		}
	}

	photo, err := savePhoto(c)
	if err != nil {
		return validationError(c, err.Error())
	}

	return createComplaint(c, &req, photo)
}

func createComplaint(c *fiber.Ctx, req *complaintRequest, photo string) error {
	if missing := req.missingFields(); len(missing) > 0 {
		return validationError(c, "Missing required fields: "+strings.Join(missing, ", "))
	}

	uctx := usercontext.GetUserContext(c)
	complaint := &models.Complaint{
		UserID:     uctx.UserID,
		Photo:      photo,
		AssignedTo: models.DefaultAssignee,
		Status:     models.StatusReceived,
	}
	req.apply(complaint)

	if err := complaint.Validate(); err != nil {
		return validationError(c, "Invalid complaint data")
	}

	if err := repository.GetGlobalFactory().GetComplaintRepository().Create(complaint); err != nil {
		log.Printf("complaint: failed to create: %v", err)
		return serverError(c, "Failed to submit complaint")
	}
	statistics.InvalidateCounts()

	return c.Status(fiber.StatusCreated).JSON(complaint)
}

// savePhoto stores an optional multipart photo under the uploads directory
// and returns its public path. Returns "" when no photo was attached.
func savePhoto(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return "", nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", errors.New("could not read the uploaded photo")
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := f.Read(head)
	if _, err := upload.ValidatePhotoBySniff(fileHeader.Filename, head[:n]); err != nil {
		return "", err
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, filepath.Join(uploadDir, name)); err != nil {
		return "", errors.New("could not store the uploaded photo")
	}

	return "/uploads/complaints/" + name, nil
}

// HandleListComplaints lists complaints, newest first, with optional
// status/priority/issueType/user_id filters
func HandleListComplaints(c *fiber.Ctx) error {
	filter := repository.ComplaintFilter{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		IssueType: c.Query("issueType"),
	}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.UserID = uint(id)
		}
	}

	complaints, err := repository.GetGlobalFactory().GetComplaintRepository().List(filter)
	if err != nil {
		log.Printf("complaint: failed to list: %v", err)
		return serverError(c, "Failed to fetch complaints")
	}

	return c.JSON(complaints)
}

// HandleGetComplaint returns one complaint with its reporter's display
// fields joined
func HandleGetComplaint(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundError(c, "Complaint not found")
	}

	repos := repository.GetGlobalRepositories()
	complaint, err := repos.Complaint.GetByIDWithUser(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(c, "Complaint not found")
		}
		log.Printf("complaint: failed to get %d: %v", id, err)
		return serverError(c, "Failed to fetch complaint")
	}

	upvotes, err := repos.Vote.CountByComplaint(id, models.VoteUp)
	if err != nil {
		log.Printf("complaint: failed to count upvotes for %d: %v", id, err)
		return serverError(c, "Failed to fetch complaint")
	}
	downvotes, err := repos.Vote.CountByComplaint(id, models.VoteDown)
	if err != nil {
		log.Printf("complaint: failed to count downvotes for %d: %v", id, err)
		return serverError(c, "Failed to fetch complaint")
	}
	comments, err := repos.Comment.CountByComplaint(id)
	if err != nil {
		log.Printf("complaint: failed to count comments for %d: %v", id, err)
		return serverError(c, "Failed to fetch complaint")
	}

	return c.JSON(fiber.Map{
		"id":          complaint.ID,
		"title":       complaint.Title,
		"issueType":   complaint.IssueType,
		"priority":    complaint.Priority,
		"description": complaint.Description,
		"address":     complaint.Address,
		"landmark":    complaint.Landmark,
		"photo":       complaint.Photo,
		"latitude":    complaint.Latitude,
		"longitude":   complaint.Longitude,
		"assigned_to": complaint.AssignedTo,
		"status":      complaint.Status,
		"upvotes":     upvotes,
		"downvotes":   downvotes,
		"comments":    comments,
		"created_at":  complaint.CreatedAt,
		"updated_at":  complaint.UpdatedAt,
		"user": fiber.Map{
			"id":    complaint.User.ID,
			"name":  complaint.User.DisplayName(),
			"email": complaint.User.Email,
		},
	})
}

// HandleUpdateComplaint replaces the owner-mutable fields of a complaint.
// Only the owner may call it; status and assignee belong to the admin path.
func HandleUpdateComplaint(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundError(c, "Complaint not found")
	}

	var req complaintRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, "Malformed request body")
	}
	if missing := req.missingFields(); len(missing) > 0 {
		return validationError(c, "Missing required fields: "+strings.Join(missing, ", "))
	}

	repo := repository.GetGlobalFactory().GetComplaintRepository()
	complaint, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(c, "Complaint not found")
		}
		log.Printf("complaint: failed to get %d: %v", id, err)
		return serverError(c, "Failed to fetch complaint")
	}

	uctx := usercontext.GetUserContext(c)
	if complaint.UserID != uctx.UserID {
		return forbiddenError(c, "Only the reporter may update this complaint")
	}

	req.apply(complaint)
	if err := complaint.Validate(); err != nil {
		return validationError(c, "Invalid complaint data")
	}

	if err := repo.Update(complaint); err != nil {
		log.Printf("complaint: failed to update %d: %v", id, err)
		return serverError(c, "Failed to update complaint")
	}
	statistics.InvalidateCounts()

	return c.JSON(complaint)
}

// HandleDeleteComplaint removes a complaint and its votes and comments.
// Only the owner may call it.
func HandleDeleteComplaint(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundError(c, "Complaint not found")
	}

	repo := repository.GetGlobalFactory().GetComplaintRepository()
	complaint, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(c, "Complaint not found")
		}
		log.Printf("complaint: failed to get %d: %v", id, err)
		return serverError(c, "Failed to fetch complaint")
	}

	uctx := usercontext.GetUserContext(c)
	if complaint.UserID != uctx.UserID {
		return forbiddenError(c, "Only the reporter may delete this complaint")
	}

	if err := repo.Delete(id); err != nil {
		log.Printf("complaint: failed to delete %d: %v", id, err)
		return serverError(c, "Failed to delete complaint")
	}
	statistics.InvalidateCounts()

	return c.JSON(fiber.Map{"message": fmt.Sprintf("Complaint %d deleted", id)})
}
