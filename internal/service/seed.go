package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pkordes/tourdesk/internal/domain"
)

// SeedCustomerEmail is the demo customer account created by Seed.
const SeedCustomerEmail = "traveller@adventure.com"

// SeedAccounts names the demo accounts Seed creates. Password is shared by
// the operator and the demo customer.
type SeedAccounts struct {
	OperatorEmail string
	Password      string
}

type seedTour struct {
	title, description, location string
	price                        float64
	capacity, hours, weeks       int
}

var seedTours = []seedTour{
	{"Misty Mountain Hike", "Start your morning above the clouds with a gentle hike to a hidden alpine lake.", "Aspen, USA", 129, 14, 5, 1},
	{"Rainforest River Kayak", "Glide through lush mangroves while spotting parrots, sloths and river dolphins.", "Leticia, Colombia", 189, 10, 4, 2},
	{"Volcanic Sunset Jeep Ride", "Bounce across black-sand trails before sharing a picnic on the caldera rim.", "Santorini, Greece", 159, 12, 3, 3},
	{"Nordic Fjord Cycling", "Cycle quiet coastal roads, hop ferries between islands and taste local smoked salmon.", "Ålesund, Norway", 210, 8, 6, 4},
	{"Red Desert Stars", "An overnight camel caravan with astronomer-led stargazing in the quiet dunes.", "Merzouga, Morocco", 275, 6, 12, 5},
}

// Seed creates the demo operator with five tours and a demo customer.
// Accounts that already exist are left alone and their tours are not
// duplicated, so Seed may run on every start.
func Seed(ctx context.Context, auth *AuthService, tours *TourService, accounts SeedAccounts, now time.Time) error {
	operator, created, err := ensureUser(ctx, auth, Registration{
		Name:     "Mountain Guide",
		Email:    accounts.OperatorEmail,
		Password: accounts.Password,
		Role:     domain.RoleOperator,
	})
	if err != nil {
		return fmt.Errorf("service.Seed: operator: %w", err)
	}
	if created {
		for _, st := range seedTours {
			desc := st.description
			req := domain.TourRequest{
				Title:         st.title,
				Description:   &desc,
				Price:         st.price,
				Location:      st.location,
				MaxCapacity:   st.capacity,
				DurationHour:  st.hours,
				AvailableFrom: domain.NewLocalTime(now.AddDate(0, 0, 7*st.weeks).Truncate(time.Second)),
			}
			if _, err := tours.Create(ctx, operator, req); err != nil {
				return fmt.Errorf("service.Seed: tour %q: %w", st.title, err)
			}
		}
	}

	if _, _, err := ensureUser(ctx, auth, Registration{
		Name:     "Avery Traveller",
		Email:    SeedCustomerEmail,
		Password: accounts.Password,
		Role:     domain.RoleCustomer,
	}); err != nil {
		return fmt.Errorf("service.Seed: customer: %w", err)
	}
	return nil
}

func ensureUser(ctx context.Context, auth *AuthService, reg Registration) (domain.User, bool, error) {
	u, err := auth.Register(ctx, reg)
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return domain.User{}, false, err
	}
	existing, err := auth.users.GetByEmail(ctx, reg.Email)
	if err != nil {
		return domain.User{}, false, err
	}
	return existing, false, nil
}
