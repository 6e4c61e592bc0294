package usecase_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/watermelon/decision-engine/internal/domain/model"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockSupplierLog struct {
	appended   []*model.SupplierRecord
	appendFunc func(ctx context.Context, r *model.SupplierRecord) (int, error)
	listFunc   func(ctx context.Context, limit int) ([]*model.SupplierRecord, error)
}

func (m *mockSupplierLog) Append(ctx context.Context, r *model.SupplierRecord) (int, error) {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, r)
	}
	m.appended = append(m.appended, r)
	return len(m.appended) - 1, nil
}

func (m *mockSupplierLog) List(ctx context.Context, limit int) ([]*model.SupplierRecord, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit)
	}
	return m.appended, nil
}

type mockBuyerLog struct {
	appended   []*model.BuyerRecord
	appendFunc func(ctx context.Context, r *model.BuyerRecord) (int, error)
}

func (m *mockBuyerLog) Append(ctx context.Context, r *model.BuyerRecord) (int, error) {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, r)
	}
	m.appended = append(m.appended, r)
	return len(m.appended) - 1, nil
}

func (m *mockBuyerLog) List(_ context.Context, _ int) ([]*model.BuyerRecord, error) {
	return m.appended, nil
}

type mockForecastLog struct {
	appended   []*model.ProductForecast
	appendFunc func(ctx context.Context, f *model.ProductForecast) (int, error)
}

func (m *mockForecastLog) Append(ctx context.Context, f *model.ProductForecast) (int, error) {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, f)
	}
	m.appended = append(m.appended, f)
	return len(m.appended) - 1, nil
}

func (m *mockForecastLog) List(_ context.Context, _ int) ([]*model.ProductForecast, error) {
	return m.appended, nil
}

type notification struct {
	ctxErr  error
	subject string
	detail  string
	extra   string
}

type mockNotifier struct {
	mu    sync.Mutex
	calls []notification
	err   error
}

func (m *mockNotifier) record(ctx context.Context, n notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ctxErr = ctx.Err()
	m.calls = append(m.calls, n)
	return m.err
}

func (m *mockNotifier) NotifyCRMUpdate(ctx context.Context, name string, status valueobject.DecisionStatus) error {
	return m.record(ctx, notification{subject: name, detail: status.String()})
}

func (m *mockNotifier) NotifyMarketingTrigger(ctx context.Context, id, name string, tier valueobject.ChurnTier, c valueobject.CampaignKind) error {
	return m.record(ctx, notification{subject: id + "/" + name, detail: tier.String(), extra: c.String()})
}

func (m *mockNotifier) NotifyInventoryAlert(ctx context.Context, productID string, risk valueobject.InventoryRisk) error {
	return m.record(ctx, notification{subject: productID, detail: risk.String()})
}

var errCRMUnreachable = fmt.Errorf("crm unreachable")
