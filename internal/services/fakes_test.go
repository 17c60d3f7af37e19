package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/utils"
)

/*
   In-memory repository fakes for service tests. They mirror the SQL
   semantics the real repositories implement: FIFO ordering, the period
   identity upsert, derived prepayment balances.
*/

var okTag = pgconn.CommandTag("UPDATE 1")

/* ---------- buildings ---------- */

type fakeBuildingRepo struct {
	rows map[uuid.UUID]*models.Building
}

func newFakeBuildingRepo() *fakeBuildingRepo {
	return &fakeBuildingRepo{rows: map[uuid.UUID]*models.Building{}}
}

func (f *fakeBuildingRepo) Create(_ context.Context, b *models.Building) error {
	cp := *b
	f.rows[b.ID] = &cp
	return nil
}

func (f *fakeBuildingRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Building, error) {
	b, ok := f.rows[id]
	if !ok || b.DeletedAt != nil {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBuildingRepo) ListAll(_ context.Context) ([]*models.Building, error) {
	var out []*models.Building
	for _, b := range f.rows {
		if b.DeletedAt == nil {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeBuildingRepo) Update(_ context.Context, b *models.Building) error {
	cp := *b
	f.rows[b.ID] = &cp
	return nil
}

func (f *fakeBuildingRepo) UpdateIfVersion(ctx context.Context, b *models.Building, _ int64) (pgconn.CommandTag, error) {
	return okTag, f.Update(ctx, b)
}

func (f *fakeBuildingRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Building) error) error {
	b, _ := f.GetByID(ctx, id)
	if b == nil {
		return utils.ErrNotFound
	}
	if err := mutate(b); err != nil {
		return err
	}
	return f.Update(ctx, b)
}

func (f *fakeBuildingRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if b, ok := f.rows[id]; ok {
		now := time.Now()
		b.DeletedAt = &now
	}
	return nil
}

/* ---------- units ---------- */

type fakeUnitRepo struct {
	rows map[uuid.UUID]*models.Unit
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{rows: map[uuid.UUID]*models.Unit{}}
}

func (f *fakeUnitRepo) Create(_ context.Context, u *models.Unit) error {
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUnitRepo) CreateMany(ctx context.Context, list []models.Unit) error {
	for i := range list {
		if err := f.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeUnitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Unit, error) {
	u, ok := f.rows[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUnitRepo) ListByBuildingID(_ context.Context, bldgID uuid.UUID) ([]*models.Unit, error) {
	var out []*models.Unit
	for _, u := range f.rows {
		if u.BuildingID == bldgID && u.DeletedAt == nil {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitNumber < out[j].UnitNumber })
	return out, nil
}

func (f *fakeUnitRepo) Update(_ context.Context, u *models.Unit) error {
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUnitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, _ int64) (pgconn.CommandTag, error) {
	return okTag, f.Update(ctx, u)
}

func (f *fakeUnitRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error {
	u, _ := f.GetByID(ctx, id)
	if u == nil {
		return utils.ErrNotFound
	}
	if err := mutate(u); err != nil {
		return err
	}
	return f.Update(ctx, u)
}

func (f *fakeUnitRepo) SetTenant(_ context.Context, id uuid.UUID, tenantID *uuid.UUID) error {
	if u, ok := f.rows[id]; ok {
		u.TenantID = tenantID
	}
	return nil
}

func (f *fakeUnitRepo) SetEffectiveOwner(_ context.Context, id uuid.UUID, ownerID *uuid.UUID) error {
	if u, ok := f.rows[id]; ok {
		u.EffectiveOwnerID = ownerID
	}
	return nil
}

func (f *fakeUnitRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeUnitRepo) DeleteByBuildingID(_ context.Context, bldgID uuid.UUID) error {
	for id, u := range f.rows {
		if u.BuildingID == bldgID {
			delete(f.rows, id)
		}
	}
	return nil
}

/* ---------- contracts ---------- */

type fakeContractRepo struct {
	rows map[uuid.UUID]*models.Contract
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{rows: map[uuid.UUID]*models.Contract{}}
}

func (f *fakeContractRepo) Create(_ context.Context, c *models.Contract) error {
	for _, other := range f.rows {
		if other.UnitID == c.UnitID && other.State == c.State {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeContractRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Contract, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContractRepo) ListByBuildingID(_ context.Context, bldgID uuid.UUID) ([]*models.Contract, error) {
	var out []*models.Contract
	for _, c := range f.rows {
		if c.BuildingID == bldgID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeContractRepo) ListByUnitID(_ context.Context, unitID uuid.UUID) ([]*models.Contract, error) {
	var out []*models.Contract
	for _, c := range f.rows {
		if c.UnitID == unitID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeContractRepo) ListDueForBuilding(_ context.Context, bldgID uuid.UUID, day time.Time) ([]*models.Contract, error) {
	var out []*models.Contract
	for _, c := range f.rows {
		if c.BuildingID != bldgID || c.State != models.ContractStateActive {
			continue
		}
		if !c.InWindow(day) || c.RentDueDay != day.Day() {
			continue
		}
		if c.LastDueActivityDate != nil && !c.LastDueActivityDate.Before(day) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeContractRepo) Update(_ context.Context, c *models.Contract) error {
	for _, other := range f.rows {
		if other.ID != c.ID && other.UnitID == c.UnitID && other.State == c.State {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeContractRepo) UpdateIfVersion(ctx context.Context, c *models.Contract, _ int64) (pgconn.CommandTag, error) {
	return okTag, f.Update(ctx, c)
}

func (f *fakeContractRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Contract) error) error {
	c, _ := f.GetByID(ctx, id)
	if c == nil {
		return utils.ErrNotFound
	}
	if err := mutate(c); err != nil {
		return err
	}
	return f.Update(ctx, c)
}

func (f *fakeContractRepo) StampDueActivityDate(ctx context.Context, id uuid.UUID, day time.Time) error {
	return f.UpdateWithRetry(ctx, id, func(c *models.Contract) error {
		d := day
		c.LastDueActivityDate = &d
		return nil
	})
}

func (f *fakeContractRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

/* ---------- prepayments & consumption ---------- */

type fakeConsumptionRepo struct {
	links []*models.ConsumptionLink
}

func newFakeConsumptionRepo() *fakeConsumptionRepo {
	return &fakeConsumptionRepo{}
}

func (f *fakeConsumptionRepo) Create(_ context.Context, l *models.ConsumptionLink) error {
	cp := *l
	cp.CreatedAt = time.Now()
	f.links = append(f.links, &cp)
	return nil
}

func (f *fakeConsumptionRepo) ListByContract(_ context.Context, contractID uuid.UUID) ([]*models.ConsumptionLink, error) {
	var out []*models.ConsumptionLink
	for _, l := range f.links {
		if l.ContractID == contractID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeConsumptionRepo) ListByInvoice(_ context.Context, invoiceID uuid.UUID) ([]*models.ConsumptionLink, error) {
	var out []*models.ConsumptionLink
	for _, l := range f.links {
		if l.InvoiceID == invoiceID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeConsumptionRepo) ExistsForInvoice(_ context.Context, invoiceID uuid.UUID) (bool, error) {
	for _, l := range f.links {
		if l.InvoiceID == invoiceID {
			return true, nil
		}
	}
	return false, nil
}

type fakePrepaymentRepo struct {
	rows         map[uuid.UUID]*models.Prepayment
	consumptions *fakeConsumptionRepo
}

func newFakePrepaymentRepo(consumptions *fakeConsumptionRepo) *fakePrepaymentRepo {
	return &fakePrepaymentRepo{rows: map[uuid.UUID]*models.Prepayment{}, consumptions: consumptions}
}

func (f *fakePrepaymentRepo) Create(_ context.Context, p *models.Prepayment) error {
	cp := *p
	cp.CreatedAt = time.Now()
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePrepaymentRepo) consumedFor(prepaymentID uuid.UUID) int64 {
	var sum int64
	for _, l := range f.consumptions.links {
		if l.PrepaymentID == prepaymentID {
			sum += l.AmountCents
		}
	}
	return sum
}

func (f *fakePrepaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Prepayment, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.AmountConsumedCents = f.consumedFor(id)
	cp.BalanceCents = cp.AmountCents - cp.AmountConsumedCents
	return &cp, nil
}

func (f *fakePrepaymentRepo) ListByContractFIFO(ctx context.Context, contractID uuid.UUID) ([]*models.Prepayment, error) {
	var out []*models.Prepayment
	for id, p := range f.rows {
		if p.ContractID == contractID {
			cp, _ := f.GetByID(ctx, id)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (f *fakePrepaymentRepo) BalanceCents(ctx context.Context, contractID uuid.UUID) (int64, error) {
	list, _ := f.ListByContractFIFO(ctx, contractID)
	var sum int64
	for _, p := range list {
		sum += p.BalanceCents
	}
	return sum, nil
}

func (f *fakePrepaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

/* ---------- invoices ---------- */

type fakeInvoiceRepo struct {
	rows  map[uuid.UUID]*models.Invoice
	lines map[uuid.UUID][]*models.InvoiceLine
	seq   int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		rows:  map[uuid.UUID]*models.Invoice{},
		lines: map[uuid.UUID][]*models.InvoiceLine{},
	}
}

func (f *fakeInvoiceRepo) CreateIfNotExists(_ context.Context, inv *models.Invoice) error {
	for _, other := range f.rows {
		if other.MoveType == models.MoveTypeOutInvoice &&
			other.TenantID == inv.TenantID &&
			other.BuildingID == inv.BuildingID &&
			other.UnitID == inv.UnitID &&
			other.PeriodMonth.Equal(inv.PeriodMonth) {
			return nil
		}
	}
	cp := *inv
	f.seq++
	cp.CreatedAt = time.Unix(int64(f.seq), 0)
	f.rows[inv.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Invoice, error) {
	inv, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) FindMonthInvoice(_ context.Context, tenantID, bldgID, unitID uuid.UUID, first, last time.Time) (*models.Invoice, error) {
	var best *models.Invoice
	for _, inv := range f.rows {
		if inv.MoveType != models.MoveTypeOutInvoice {
			continue
		}
		if inv.TenantID != tenantID || inv.BuildingID != bldgID || inv.UnitID != unitID {
			continue
		}
		if inv.InvoiceDate.Before(first) || inv.InvoiceDate.After(last) {
			continue
		}
		if best == nil || inv.CreatedAt.After(best.CreatedAt) {
			best = inv
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakeInvoiceRepo) ListByTags(_ context.Context, tenantID, bldgID, unitID uuid.UUID) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range f.rows {
		if inv.MoveType == models.MoveTypeOutInvoice &&
			inv.TenantID == tenantID && inv.BuildingID == bldgID && inv.UnitID == unitID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) AddLine(_ context.Context, line *models.InvoiceLine) error {
	cp := *line
	cp.CreatedAt = time.Now()
	f.lines[line.InvoiceID] = append(f.lines[line.InvoiceID], &cp)
	return nil
}

func (f *fakeInvoiceRepo) ListLines(_ context.Context, invoiceID uuid.UUID) ([]*models.InvoiceLine, error) {
	return f.lines[invoiceID], nil
}

func (f *fakeInvoiceRepo) RecomputeTotals(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	inv, ok := f.rows[invoiceID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	var total int64
	for _, l := range f.lines[invoiceID] {
		total += l.TotalCents()
	}
	inv.AmountTotalCents = total
	if inv.State == models.InvoiceStateDraft {
		inv.AmountResidualCents = total
	}
	return f.GetByID(ctx, invoiceID)
}

func (f *fakeInvoiceRepo) Post(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	inv, ok := f.rows[invoiceID]
	if !ok || inv.State != models.InvoiceStateDraft {
		return nil, utils.ErrInvoiceNotDraft
	}
	now := time.Now()
	inv.State = models.InvoiceStatePosted
	inv.PostedAt = &now
	inv.AmountResidualCents = inv.AmountTotalCents
	return f.GetByID(ctx, invoiceID)
}

/* ---------- activities ---------- */

type fakeActivityRepo struct {
	rows []*models.Activity
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (f *fakeActivityRepo) Create(_ context.Context, a *models.Activity) error {
	cp := *a
	cp.CreatedAt = time.Now()
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeActivityRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*models.Activity, error) {
	var out []*models.Activity
	for _, a := range f.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) ListByContractID(_ context.Context, contractID uuid.UUID) ([]*models.Activity, error) {
	var out []*models.Activity
	for _, a := range f.rows {
		if a.ContractID == contractID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) ExistsForContractOn(_ context.Context, contractID uuid.UUID, deadline time.Time) (bool, error) {
	for _, a := range f.rows {
		if a.ContractID == contractID && a.Deadline.Equal(deadline) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeActivityRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, a := range f.rows {
		if a.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

/* ---------- users & partners ---------- */

type fakeUserRepo struct {
	rows map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakePartnerRepo struct {
	rows map[uuid.UUID]*models.Partner
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{rows: map[uuid.UUID]*models.Partner{}}
}

func (f *fakePartnerRepo) Create(_ context.Context, p *models.Partner) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePartnerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Partner, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePartnerRepo) ListOwners(_ context.Context) ([]*models.Partner, error) {
	var out []*models.Partner
	for _, p := range f.rows {
		if p.IsPropertyOwner {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePartnerRepo) SetResidence(_ context.Context, id uuid.UUID, bldgID, unitID *uuid.UUID) error {
	if p, ok := f.rows[id]; ok {
		p.BuildingID = bldgID
		p.UnitID = unitID
	}
	return nil
}

func (f *fakePartnerRepo) Update(_ context.Context, p *models.Partner) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePartnerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

/* ---------- utilities ---------- */

type fakeUtilityRepo struct {
	types    map[uuid.UUID]*models.UtilityType
	expenses map[uuid.UUID]*models.UtilityExpense
}

func newFakeUtilityRepo() *fakeUtilityRepo {
	return &fakeUtilityRepo{
		types:    map[uuid.UUID]*models.UtilityType{},
		expenses: map[uuid.UUID]*models.UtilityExpense{},
	}
}

func (f *fakeUtilityRepo) CreateType(_ context.Context, t *models.UtilityType) error {
	cp := *t
	f.types[t.ID] = &cp
	return nil
}

func (f *fakeUtilityRepo) GetType(_ context.Context, id uuid.UUID) (*models.UtilityType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeUtilityRepo) ListTypes(_ context.Context) ([]*models.UtilityType, error) {
	var out []*models.UtilityType
	for _, t := range f.types {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUtilityRepo) CreateExpense(_ context.Context, e *models.UtilityExpense) error {
	cp := *e
	f.expenses[e.ID] = &cp
	return nil
}

func (f *fakeUtilityRepo) GetExpense(_ context.Context, id uuid.UUID) (*models.UtilityExpense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeUtilityRepo) ListExpensesByContract(_ context.Context, contractID uuid.UUID) ([]*models.UtilityExpense, error) {
	var out []*models.UtilityExpense
	for _, e := range f.expenses {
		if e.ContractID == contractID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUtilityRepo) MarkBilled(_ context.Context, id, invoiceID uuid.UUID) (bool, error) {
	e, ok := f.expenses[id]
	if !ok || e.State != models.UtilityExpenseDraft {
		return false, nil
	}
	iid := invoiceID
	e.State = models.UtilityExpenseBilled
	e.InvoiceID = &iid
	return true, nil
}
