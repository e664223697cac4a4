package request

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/eventpal-api/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var errDateInPast = errors.New("event date cannot be in the past")

type EventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date" format:"YYYY-MM-DD"`
	Time        string   `json:"time" format:"HH:MM"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
}

func (req *EventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Description, validation.Required, validation.Length(50, 5000)),
		validation.Field(&req.Date, validation.Required, validation.Date(dateLayout), validation.By(notInPast)),
		validation.Field(&req.Time, validation.Required, validation.Date(timeLayout)),
		validation.Field(&req.Location, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Category, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.Image, is.URL),
		validation.Field(&req.Tags, validation.Length(0, 20)),
	)
}

func notInPast(value interface{}) error {
	s, _ := value.(string)
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return errDateInPast
	}

	return nil
}

// Input trims the request into store input. Blank tags are dropped.
func (req *EventRequest) Input() domain.EventInput {
	tags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return domain.EventInput{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Date:        req.Date,
		Time:        req.Time,
		Location:    strings.TrimSpace(req.Location),
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
		Tags:        tags,
	}
}

// Apply overlays the request on an existing event.
func (req *EventRequest) Apply(event domain.Event) domain.Event {
	in := req.Input()

	event.Title = in.Title
	event.Description = in.Description
	event.Date = in.Date
	event.Time = in.Time
	event.Location = in.Location
	event.Category = in.Category
	event.Price = in.Price
	event.Image = in.Image
	event.Image = event.ImageOrPlaceholder()
	event.Tags = in.Tags

	return event
}
