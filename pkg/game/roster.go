package game

import (
	"context"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/catalog"
	"github.com/mpapenbr/pitwall-go/pkg/model"
	"github.com/mpapenbr/pitwall-go/pkg/roster"
	"github.com/mpapenbr/pitwall-go/pkg/session"
)

// mutate applies fn to the local participant's team and commits the result.
// Team changes are shared with the remote participant when the turn ends.
func (c *Client) mutate(ctx context.Context, op string, fn func(t *model.Team) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	next, err := session.UpdateMyTeam(c.state, fn)
	if err != nil {
		c.log.Debug("team change rejected", log.String("op", op), log.ErrorField(err))
		return err
	}
	c.commit(ctx, next, EventStateChanged)
	return nil
}

func (c *Client) HireDriver(ctx context.Context, id string) error {
	d, ok := c.cfg.catalog.Driver(id)
	if !ok {
		return ErrNotInMarket
	}
	return c.mutate(ctx, "hire-driver", func(t *model.Team) error {
		return roster.HireDriver(t, &d)
	})
}

func (c *Client) SellDriver(ctx context.Context, id string) error {
	return c.mutate(ctx, "sell-driver", func(t *model.Team) error {
		return roster.SellDriver(t, id)
	})
}

func (c *Client) ToggleActiveDriver(ctx context.Context, id string) error {
	return c.mutate(ctx, "toggle-driver", func(t *model.Team) error {
		return roster.ToggleActiveDriver(t, id)
	})
}

func (c *Client) HireEngineer(ctx context.Context, id string) error {
	e, ok := c.cfg.catalog.Engineer(id)
	if !ok {
		return ErrNotInMarket
	}
	return c.mutate(ctx, "hire-engineer", func(t *model.Team) error {
		return roster.HireEngineer(t, &e)
	})
}

func (c *Client) FireEngineer(ctx context.Context, id string) error {
	return c.mutate(ctx, "fire-engineer", func(t *model.Team) error {
		return roster.FireEngineer(t, id)
	})
}

// UpgradeCar raises the part by one level at the price of its current level
func (c *Client) UpgradeCar(ctx context.Context, part model.CarPart) error {
	return c.mutate(ctx, "upgrade", func(t *model.Team) error {
		level, ok := t.Car.Level(part)
		if !ok {
			return roster.ErrUnknownPart
		}
		return roster.UpgradeCar(t, part, catalog.UpgradeCost(level))
	})
}

func (c *Client) AcceptSponsor(ctx context.Context, id string) error {
	return c.mutate(ctx, "accept-sponsor", func(t *model.Team) error {
		return roster.AcceptSponsor(t, id)
	})
}

func (c *Client) RejectSponsor(ctx context.Context, id string) error {
	return c.mutate(ctx, "reject-sponsor", func(t *model.Team) error {
		return roster.RejectSponsor(t, id)
	})
}

func (c *Client) CancelSponsor(ctx context.Context, id string) error {
	return c.mutate(ctx, "cancel-sponsor", func(t *model.Team) error {
		return roster.CancelSponsor(t, id)
	})
}

func (c *Client) RenameTeam(ctx context.Context, name string) error {
	return c.mutate(ctx, "rename", func(t *model.Team) error {
		return roster.Rename(t, name)
	})
}

// RefreshOffers puts every catalog sponsor that is neither active nor
// pending back on the offer list.
func (c *Client) RefreshOffers(ctx context.Context) (int, error) {
	added := 0
	err := c.mutate(ctx, "refresh-offers", func(t *model.Team) error {
		added = roster.RefreshOffers(t, c.cfg.catalog.Sponsors)
		return nil
	})
	return added, err
}
