package services

import (
	"math"
	"slices"
	"strings"
	"time"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
)

// ETAMinutes is the whole minutes from now until eta, rounded to nearest and
// clamped at zero for timestamps already in the past.
func ETAMinutes(eta, now time.Time) int {
	m := int(math.Round(float64(eta.Sub(now)) / float64(time.Minute)))
	if m < 0 {
		return 0
	}
	return m
}

func assignmentIDs(o dto.OrderDto) map[dto.ID]struct{} {
	ids := make(map[dto.ID]struct{})
	for _, item := range o.Items {
		for _, a := range item.Assignments {
			if a.ID != "" {
				ids[a.ID] = struct{}{}
			}
		}
	}
	return ids
}

func servesAny(s dto.StopDto, ids map[dto.ID]struct{}) bool {
	for _, ref := range s.References() {
		if _, ok := ids[ref]; ok {
			return true
		}
	}
	return false
}

// FindDeliveryForOrder returns the first delivery with a stop referencing
// one of the order's assignments.
func FindDeliveryForOrder(o dto.OrderDto, deliveries []dto.DeliveryDto) (dto.DeliveryDto, bool) {
	ids := assignmentIDs(o)
	if len(ids) == 0 {
		return dto.DeliveryDto{}, false
	}

	for _, d := range deliveries {
		for _, s := range d.Stops {
			if servesAny(s, ids) {
				return d, true
			}
		}
	}
	return dto.DeliveryDto{}, false
}

func toStopView(s dto.StopDto) domain.StopView {
	v := domain.StopView{
		Sequence:    s.Sequence,
		Type:        s.Type(),
		Address:     strings.TrimSpace(deref(s.Address)),
		ETA:         s.ETA,
		CompletedAt: s.CompletedAt,
	}
	if s.Latitude != nil && s.Longitude != nil {
		v.Location = &domain.GeoPoint{Lat: *s.Latitude, Lng: *s.Longitude}
	}
	return v
}

// sortedStops orders stops by sequence, keeping backend order on ties.
func sortedStops(stops []dto.StopDto) []dto.StopDto {
	out := slices.Clone(stops)
	slices.SortStableFunc(out, func(a, b dto.StopDto) int { return a.Sequence - b.Sequence })
	return out
}

// pickStop prefers a stop of type t that serves the order; otherwise any
// stop of that type.
func pickStop(stops []dto.StopDto, t domain.StopType, ids map[dto.ID]struct{}) (dto.StopDto, bool) {
	var fallback *dto.StopDto
	for i := range stops {
		if stops[i].Type() != t {
			continue
		}
		if servesAny(stops[i], ids) {
			return stops[i], true
		}
		if fallback == nil {
			fallback = &stops[i]
		}
	}
	if fallback == nil {
		return dto.StopDto{}, false
	}
	return *fallback, true
}

// ToRouteView derives the route of an order from the delivery list. It
// returns nil, meaning "route not yet available", when no delivery serves
// the order or the matched delivery lacks a pickup or a dropoff stop.
func ToRouteView(o dto.OrderDto, deliveries []dto.DeliveryDto, now time.Time) *domain.RouteView {
	d, ok := FindDeliveryForOrder(o, deliveries)
	if !ok {
		return nil
	}

	ids := assignmentIDs(o)
	stops := sortedStops(d.Stops)

	pickup, ok := pickStop(stops, domain.StopPickup, ids)
	if !ok {
		return nil
	}
	dropoff, ok := pickStop(stops, domain.StopDropoff, ids)
	if !ok {
		return nil
	}

	rv := &domain.RouteView{
		DeliveryID: d.ID.String(),
		OrderID:    o.ID.String(),
		Status:     deliveryStatus(d),
		Pickup:     toStopView(pickup),
		Dropoff:    toStopView(dropoff),
		Stops:      make([]domain.StopView, 0, len(stops)),
		DriverName: strings.TrimSpace(deref(d.DriverName)),
	}
	for _, s := range stops {
		rv.Stops = append(rv.Stops, toStopView(s))
	}

	eta := dropoff.ETA
	if eta == nil {
		eta = d.ETA
	}
	if eta != nil {
		minutes := ETAMinutes(*eta, now)
		rv.ETA = eta
		rv.ETAMinutes = &minutes
	}

	return rv
}
