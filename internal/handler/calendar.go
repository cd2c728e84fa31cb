package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emersion/go-ical"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// calendarProductID identifies this service in exported calendars.
const calendarProductID = "-//trip-planner//EN"

// GetCalendar handles GET /trips/{id}/calendar.ics.
// The trip becomes an all-window VEVENT carrying participants as attendees
// and links in its description; each activity becomes its own VEVENT.
func (s *Server) GetCalendar(ctx context.Context, req gen.GetCalendarRequestObject) (gen.GetCalendarResponseObject, error) {
	it, err := s.export.Itinerary(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetCalendar404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(s.itineraryToCalendar(it)); err != nil {
		return nil, fmt.Errorf("handler.GetCalendar: encode: %w", err)
	}

	return gen.GetCalendar200TextcalendarResponse{
		Body: &buf,
		Headers: gen.GetCalendar200ResponseHeaders{
			ContentDisposition: fmt.Sprintf(`attachment; filename="trip-%s.ics"`, it.Trip.ID),
		},
		ContentLength: int64(buf.Len()),
	}, nil
}

// itineraryToCalendar converts an itinerary to a VCALENDAR.
func (s *Server) itineraryToCalendar(it domain.Itinerary) *ical.Calendar {
	stamp := s.now().UTC()

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, calendarProductID)

	trip := ical.NewComponent(ical.CompEvent)
	trip.Props.SetText(ical.PropUID, fmt.Sprintf("trip-%s", it.Trip.ID))
	trip.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	trip.Props.SetDateTime(ical.PropDateTimeStart, it.Trip.StartsAt.UTC())
	trip.Props.SetDateTime(ical.PropDateTimeEnd, it.Trip.EndsAt.UTC())
	trip.Props.SetText(ical.PropSummary, fmt.Sprintf("Trip to %s", it.Trip.Destination))
	trip.Props.SetText(ical.PropLocation, it.Trip.Destination)
	if it.Trip.IsConfirmed {
		trip.Props.SetText(ical.PropStatus, "CONFIRMED")
	} else {
		trip.Props.SetText(ical.PropStatus, "TENTATIVE")
	}
	if len(it.Links) > 0 {
		lines := make([]string, len(it.Links))
		for i, l := range it.Links {
			lines[i] = fmt.Sprintf("%s: %s", l.Title, l.URL)
		}
		trip.Props.SetText(ical.PropDescription, strings.Join(lines, "\n"))
	}
	for _, p := range it.Participants {
		prop := ical.NewProp(ical.PropAttendee)
		prop.SetText(fmt.Sprintf("mailto:%s", p.Email))
		if p.Name != "" {
			prop.Params.Set(ical.ParamCommonName, p.Name)
		}
		trip.Props.Add(prop)
	}
	cal.Children = append(cal.Children, trip)

	for _, a := range it.Activities {
		ev := ical.NewComponent(ical.CompEvent)
		ev.Props.SetText(ical.PropUID, fmt.Sprintf("activity-%s", a.ID))
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		ev.Props.SetDateTime(ical.PropDateTimeStart, a.OccursAt.UTC())
		ev.Props.SetText(ical.PropSummary, a.Title)
		ev.Props.SetText(ical.PropLocation, it.Trip.Destination)
		cal.Children = append(cal.Children, ev)
	}
	return cal
}
