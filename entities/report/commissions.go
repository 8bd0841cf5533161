package report

import (
	"context"
	"crm/database"
	"crm/schemas"
	"crm/utils"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCommissionPeriod is returned for windows other than one calendar month:
// salary, variable target and revenue goals are all monthly figures.
var ErrCommissionPeriod = errors.New("O período de comissão deve ser um mês completo")

type Sales struct {
	Count       int64
	Value       float64
	LegacyValue float64
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// CalculateCommission pays commission_rate over every sale plus the variable
// target scaled by the bonus tier the goal attainment falls in.
func CalculateCommission(member schemas.TeamMember, sales Sales, target float64, tiers []utils.BonusTier) schemas.Commission {
	attainment := 0.0
	if target > 0 {
		attainment = sales.Value / target
	}

	tier, _ := utils.CalculateBonusTier(attainment, tiers)
	commission := sales.Value * member.CommissionRate
	bonus := member.VariableTarget * tier.Multiplier

	return schemas.Commission{
		MemberID:       member.ID,
		MemberName:     member.Name,
		Role:           member.Role,
		SalesCount:     sales.Count,
		SalesValue:     round2(sales.Value),
		LegacyValue:    round2(sales.LegacyValue),
		TargetValue:    round2(target),
		Attainment:     math.Round(attainment*10000) / 10000,
		Tier:           tier.Label,
		Multiplier:     tier.Multiplier,
		BaseSalary:     round2(member.BaseSalary),
		CommissionPaid: round2(commission),
		Bonus:          round2(bonus),
		OTE:            round2(member.OTE()),
		Total:          round2(member.BaseSalary + commission + bonus),
	}
}

// Commissions computes the payout of every active member for the calendar
// month [from, until). Legacy MySQL sales are added for members carrying a
// legacy_id; when the legacy database is unreachable the report is built
// without them.
func (rp *Reports) Commissions(ctx context.Context, from, until time.Time) ([]schemas.Commission, error) {
	if !IsCalendarMonth(from, until, rp.loc) {
		return nil, ErrCommissionPeriod
	}

	members, err := rp.store.TeamMembers.List(ctx, database.Filter{"active": true})
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	totals, err := rp.Collect(ctx, from, until)
	if err != nil {
		return nil, err
	}

	legacyIDs := []uint64{}
	for _, member := range members {
		if member.LegacyID != 0 {
			legacyIDs = append(legacyIDs, member.LegacyID)
		}
	}
	legacy, err := database.LegacySalesBySeller(ctx, rp.legacy, legacyIDs, from, until)
	if err != nil {
		log.Warn().Err(err).Msg("legacy sales unavailable, commissions computed without them")
		legacy = map[uint64]database.LegacySale{}
	}

	targets, err := rp.revenueTargets(ctx)
	if err != nil {
		return nil, err
	}

	commissions := make([]schemas.Commission, 0, len(members))
	for _, member := range members {
		sales := Sales{}
		if total := totals[member.ID]; total != nil {
			sales.Count = total.ProposalsWon
			sales.Value = total.WonValue
		}
		if sale, ok := legacy[member.LegacyID]; ok && member.LegacyID != 0 {
			sales.Count += sale.Count
			sales.Value += sale.Total
			sales.LegacyValue = sale.Total
		}
		commissions = append(commissions, CalculateCommission(member, sales, targets[member.ID.Hex()], rp.tiers))
	}

	return commissions, nil
}

// revenueTargets maps member id to the target of their monthly revenue goal.
func (rp *Reports) revenueTargets(ctx context.Context) (map[string]float64, error) {
	goals, err := rp.store.Goals.List(ctx, database.Filter{
		"metric":    schemas.GOAL_METRIC_REVENUE,
		"period":    schemas.GOAL_PERIOD_MONTHLY,
		"member_id": database.Filter{"$exists": true},
	})
	if err != nil {
		return nil, fmt.Errorf("list revenue goals: %w", err)
	}

	targets := map[string]float64{}
	for _, goal := range goals {
		if goal.MemberID == nil {
			continue
		}
		if _, seen := targets[goal.MemberID.Hex()]; !seen {
			targets[goal.MemberID.Hex()] = goal.TargetValue
		}
	}
	return targets, nil
}
