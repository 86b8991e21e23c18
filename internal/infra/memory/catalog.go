package memory

import (
	"context"
	"sort"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/domain/screening"
	"cinema-seat-hold/internal/infra"
	"cinema-seat-hold/internal/pkg/errs"
	"cinema-seat-hold/internal/usecase/queries"
)

type Room struct {
	Number int
	Name   string
	Rows   int
	PerRow int
}

// Catalog is a fixed set of screenings kept in memory.
type Catalog struct {
	screenings map[int64]screening.Screening
	rooms      map[int64]Room
}

func NewCatalog() *Catalog {
	return &Catalog{
		screenings: make(map[int64]screening.Screening),
		rooms:      make(map[int64]Room),
	}
}

func (c *Catalog) Add(s screening.Screening, room Room) {
	c.screenings[s.ID] = s
	c.rooms[s.ID] = room
}

// NewDemoCatalog seeds a few evening screenings starting after now.
func NewDemoCatalog(now time.Time) *Catalog {
	c := NewCatalog()
	base := now.Truncate(time.Hour).Add(2 * time.Hour)

	sala1 := Room{Number: 1, Name: "Sala Lumière", Rows: 8, PerRow: 12}
	sala2 := Room{Number: 2, Name: "Sala Méliès", Rows: 6, PerRow: 10}

	c.Add(screening.Screening{ID: 1, Title: "Metropolis", RoomNumber: 1, RoomName: sala1.Name,
		StartsAt: base, EndsAt: base.Add(153 * time.Minute), PriceCents: 850}, sala1)
	c.Add(screening.Screening{ID: 2, Title: "Nuovo Cinema Paradiso", RoomNumber: 2, RoomName: sala2.Name,
		StartsAt: base.Add(30 * time.Minute), EndsAt: base.Add(185 * time.Minute), PriceCents: 750}, sala2)
	c.Add(screening.Screening{ID: 7, Title: "La dolce vita", RoomNumber: 1, RoomName: sala1.Name,
		StartsAt: base.Add(3 * time.Hour), EndsAt: base.Add(6 * time.Hour), PriceCents: 900}, sala1)
	return c
}

type Entry struct {
	Screening screening.Screening
	Room      Room
}

// Entries lists every screening with its room, ordered by screening ID.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.screenings))
	for id, s := range c.screenings {
		out = append(out, Entry{Screening: s, Room: c.rooms[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Screening.ID < out[j].Screening.ID })
	return out
}

func (c *Catalog) Upcoming(_ context.Context, now time.Time) ([]screening.Screening, error) {
	out := make([]screening.Screening, 0, len(c.screenings))
	for _, s := range c.screenings {
		if s.IsUpcoming(now) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (c *Catalog) ScreeningByID(_ context.Context, id int64) (screening.Screening, error) {
	s, ok := c.screenings[id]
	if !ok {
		return screening.Screening{}, errs.Mark(infra.WrapRepoErr("screening not found", nil, infra.KindNotFound), queries.ErrScreeningNotFound)
	}
	return s, nil
}

func (c *Catalog) SeatLayout(_ context.Context, screeningID int64) ([]reservation.Seat, error) {
	room, ok := c.rooms[screeningID]
	if !ok {
		return nil, errs.Mark(infra.WrapRepoErr("screening not found", nil, infra.KindNotFound), queries.ErrScreeningNotFound)
	}
	seats := make([]reservation.Seat, 0, room.Rows*room.PerRow)
	for r := 0; r < room.Rows; r++ {
		for n := 1; n <= room.PerRow; n++ {
			seat, err := reservation.NewSeat(string(rune('A'+r)), n)
			if err != nil {
				return nil, err
			}
			seats = append(seats, seat)
		}
	}
	return seats, nil
}

func (c *Catalog) CheckSeat(_ context.Context, screeningID int64, seat reservation.Seat) (infra.SeatCheck, error) {
	room, ok := c.rooms[screeningID]
	if !ok {
		return infra.SeatNoScreening, nil
	}
	if seat.IsZero() {
		return infra.SeatNoSuchSeat, nil
	}
	row := int(seat.Row()[0] - 'A')
	if row < 0 || row >= room.Rows || seat.Number() > room.PerRow {
		return infra.SeatNoSuchSeat, nil
	}
	return infra.SeatExists, nil
}
