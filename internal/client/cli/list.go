package cli

import (
	"context"
	"fmt"
)

func (a *App) ListUsers(ctx context.Context) error {
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	for _, u := range users {
		printlnFn(fmt.Sprintf("%s  %s %s <%s>  role=%s active=%t",
			u.ID, u.FirstName, u.LastName, u.Email, u.Role, u.IsActive))
	}
	printlnFn(fmt.Sprintf("%d user(s)", len(users)))
	return nil
}

func (a *App) ListCompanies(ctx context.Context) error {
	companies, err := a.client.ListCompanies(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	for _, c := range companies {
		printlnFn(fmt.Sprintf("%s  %s <%s>  active=%t", c.ID, c.Name, c.ContactEmail, c.IsActive))
	}
	printlnFn(fmt.Sprintf("%d company(ies)", len(companies)))
	return nil
}

func (a *App) ListChildren(ctx context.Context) error {
	children, err := a.client.ListChildren(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	for _, c := range children {
		printlnFn(fmt.Sprintf("%s  %s %s  school=%s grade=%s",
			c.ID, c.FirstName, c.LastName, c.School, c.Grade))
	}
	printlnFn(fmt.Sprintf("%d child(ren)", len(children)))
	return nil
}

func (a *App) ListRelationships(ctx context.Context) error {
	rels, err := a.client.ListRelationships(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	for _, r := range rels {
		escort := "-"
		if r.EscortID != nil {
			escort = *r.EscortID
		}
		printlnFn(fmt.Sprintf("%s  parent=%s child=%s escort=%s type=%s",
			r.ID, r.ParentID, r.ChildID, escort, r.Type))
	}
	printlnFn(fmt.Sprintf("%d relationship(s)", len(rels)))
	return nil
}

// ListRides shows the current user's rides.
func (a *App) ListRides(ctx context.Context) error {
	user := a.session.User()
	if user == nil {
		printlnFn("Not logged in")
		return nil
	}

	rides, err := a.client.RidesByUser(ctx, user.ID)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	for _, r := range rides {
		printlnFn(fmt.Sprintf("%s  %s -> %s  status=%s dist=%.1fkm fare=%.2f",
			r.ID, r.OriginAddress, r.DestinationAddress, r.Status,
			r.EstimatedDistance, r.EstimatedFare))
	}
	printlnFn(fmt.Sprintf("%d ride(s)", len(rides)))
	return nil
}
