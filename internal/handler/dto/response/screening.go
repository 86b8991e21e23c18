package response

import (
	"time"

	"cinema-seat-hold/internal/domain/screening"

	"github.com/jinzhu/copier"
)

type ScreeningResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	RoomNumber int       `json:"room_number"`
	RoomName   string    `json:"room_name"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	PriceCents int64     `json:"price_cents"`
}

func FromScreening(s screening.Screening) (*ScreeningResponse, error) {
	var out ScreeningResponse
	if err := copier.Copy(&out, &s); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromScreenings(list []screening.Screening) ([]*ScreeningResponse, error) {
	out := make([]*ScreeningResponse, len(list))
	for i, s := range list {
		r, err := FromScreening(s)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

type SeatResponse struct {
	Seat   string `json:"seat"`
	Row    string `json:"row"`
	Number int    `json:"number"`
	Status string `json:"status"`
}

type SeatSummary struct {
	Available int `json:"available"`
	Held      int `json:"held"`
	Sold      int `json:"sold"`
}

type SeatMapResponse struct {
	Screening *ScreeningResponse `json:"screening"`
	Seats     []SeatResponse     `json:"seats"`
	Summary   SeatSummary        `json:"summary"`
}

func FromSeatMap(m screening.SeatMap) (*SeatMapResponse, error) {
	sc, err := FromScreening(m.Screening)
	if err != nil {
		return nil, err
	}
	seats := make([]SeatResponse, len(m.Seats))
	for i, st := range m.Seats {
		seats[i] = SeatResponse{
			Seat:   st.Seat.String(),
			Row:    st.Seat.Row(),
			Number: st.Seat.Number(),
			Status: st.Availability.String(),
		}
	}
	return &SeatMapResponse{
		Screening: sc,
		Seats:     seats,
		Summary: SeatSummary{
			Available: m.CountBy(screening.AvailabilityFree),
			Held:      m.CountBy(screening.AvailabilityHeld),
			Sold:      m.CountBy(screening.AvailabilitySold),
		},
	}, nil
}
