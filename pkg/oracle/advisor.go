package oracle

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/mpapenbr/pitwall-go/pkg/catalog"
	"github.com/mpapenbr/pitwall-go/pkg/model"
	"github.com/mpapenbr/pitwall-go/pkg/roster"
)

// Advisor gives rule based advice. The first matching rule wins.
type Advisor struct{}

var _ AdviceOracle = Advisor{}

func (Advisor) Advice(ctx context.Context, team *model.Team) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch {
	case len(team.ActiveDriverIDs) < roster.MaxActiveDrivers:
		return "We need two active drivers on the grid. Check the driver market.", nil
	case len(team.Engineers) == 0:
		return "Hire an engineer, the car will not develop itself.", nil
	case len(team.ActiveSponsorIDs) == 0 && len(team.SponsorOffers) > 0:
		return "Sign a sponsor, we cannot live on prize money alone.", nil
	}
	part := weakestPart(team.Car)
	level, _ := team.Car.Level(part)
	cost := catalog.UpgradeCost(level)
	if team.Funds >= cost {
		return fmt.Sprintf("Upgrade the %s to level %d, it is our weakest area.", part, level+1), nil
	}
	return fmt.Sprintf("Funds are tight at $%.1fM. Keep the budget and score points.",
		float64(team.Funds)/1_000_000), nil
}

func weakestPart(c model.CarLevels) model.CarPart {
	return lo.MinBy(model.CarParts, func(a, b model.CarPart) bool {
		la, _ := c.Level(a)
		lb, _ := c.Level(b)
		return la < lb
	})
}
