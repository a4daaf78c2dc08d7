package main

import (
	"context"

	"github.com/aasthachits/chitfund/modules/plans"
	"github.com/aasthachits/chitfund/modules/transactions"
	"github.com/aasthachits/chitfund/modules/users"
)

// The modules talk to each other through consumer-side interfaces; these
// adapters close the loop without introducing import cycles.

// planDirectory serves both the users dashboard and transaction emails.
type planDirectory struct {
	plans *plans.Service
}

func (d planDirectory) Summaries(ctx context.Context, ids []string) ([]users.PlanSummary, error) {
	out := make([]users.PlanSummary, 0, len(ids))
	for _, id := range ids {
		plan, err := d.plans.Get(ctx, id)
		if err != nil {
			// A stale enrollment must not break the dashboard.
			continue
		}
		out = append(out, users.PlanSummary{
			ID:                  plan.ID,
			PlanName:            plan.Name,
			MonthlySubscription: plan.MonthlySubscription,
			TotalAmount:         plan.TotalAmount,
			DurationMonths:      plan.DurationMonths,
		})
	}
	return out, nil
}

func (d planDirectory) PlanName(ctx context.Context, planID string) (string, error) {
	plan, err := d.plans.Get(ctx, planID)
	if err != nil {
		return "", err
	}
	return plan.Name, nil
}

// transactionLog exposes a member's transactions to the users dashboard.
type transactionLog struct {
	txs   *transactions.Service
	plans *plans.Service
}

func (l transactionLog) ForUser(ctx context.Context, userID string) ([]users.TransactionRecord, error) {
	list, err := l.txs.ForUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return l.records(ctx, list), nil
}

func (l transactionLog) PendingForUser(ctx context.Context, userID string) ([]users.TransactionRecord, error) {
	list, err := l.txs.ForUser(ctx, userID, transactions.StatusPending)
	if err != nil {
		return nil, err
	}
	return l.records(ctx, list), nil
}

func (l transactionLog) records(ctx context.Context, list []transactions.Transaction) []users.TransactionRecord {
	out := make([]users.TransactionRecord, 0, len(list))
	for _, tx := range list {
		name := tx.PlanID
		if plan, err := l.plans.Get(ctx, tx.PlanID); err == nil {
			name = plan.Name
		}
		out = append(out, users.TransactionRecord{
			ID:       tx.ID,
			PlanID:   tx.PlanID,
			PlanName: name,
			Amount:   tx.Amount,
			Status:   string(tx.Status),
			Date:     tx.Date,
		})
	}
	return out
}

// userDirectory resolves transaction recipients.
type userDirectory struct {
	users *users.Service
}

func (d userDirectory) Member(ctx context.Context, userID string) (transactions.Member, error) {
	user, err := d.users.Get(ctx, userID)
	if err != nil {
		return transactions.Member{}, err
	}
	return transactions.Member{Name: user.Name, Email: user.Email, Phone: user.Phone}, nil
}

// memberDirectory lists a plan's enrolled members.
type memberDirectory struct {
	users *users.Service
}

func (d memberDirectory) EnrolledIn(ctx context.Context, planID string) ([]plans.Member, error) {
	list, err := d.users.EnrolledIn(ctx, planID)
	if err != nil {
		return nil, err
	}
	out := make([]plans.Member, 0, len(list))
	for _, u := range list {
		out = append(out, plans.Member{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out, nil
}
