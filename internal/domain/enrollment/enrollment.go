package enrollment

import (
	"errors"
	"time"

	"github.com/geocoder89/enrollhub/internal/domain/flex"
)

// ErrCourseRequired is returned by every store when an enrollment names no course.
var ErrCourseRequired = errors.New("enrolled course is required")

type Enrollment struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	EnrolledCourse string    `json:"enrolledCourse"`
	TotalPrice     float64   `json:"totalPrice"`
	EnrolledOn     time.Time `json:"enrolledOn"`
}

// Validate holds the schema rules every backend enforces before writing.
func (e Enrollment) Validate() error {
	if e.EnrolledCourse == "" {
		return ErrCourseRequired
	}
	return nil
}

type CreateEnrollmentRequest struct {
	// always taken from the authenticated requester, never from the body
	UserID         string      `json:"-"`
	EnrolledCourse flex.String `json:"enrolledCourse"`
	TotalPrice     flex.Number `json:"totalPrice"`
}

// A factory to build an Enrollment from the incoming DTO. The ID is left to the store.
func NewFromCreateRequest(req CreateEnrollmentRequest) Enrollment {
	return Enrollment{
		UserID:         req.UserID,
		EnrolledCourse: string(req.EnrolledCourse),
		TotalPrice:     float64(req.TotalPrice),
		EnrolledOn:     time.Now().UTC(),
	}
}
