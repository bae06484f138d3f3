package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	"github.com/tomdro61/shop-pilot-sub001/pkg/apperror"
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
	"go.uber.org/zap"
)

type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
	payments []*entity.Payment
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	f.invoices = append(f.invoices, invoice)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) GetByJobID(ctx context.Context, jobID uuid.UUID) (*entity.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.JobID == jobID {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	for i, inv := range f.invoices {
		if inv.ID == invoice.ID {
			f.invoices[i] = invoice
			return nil
		}
	}
	return nil
}

func (f *fakeInvoiceRepo) List(ctx context.Context, params *pagination.PaginationParams, status *enum.InvoiceStatus) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range f.invoices {
		if status != nil && inv.Status != *status {
			continue
		}
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInvoiceRepo) NextNumber(ctx context.Context) (int64, error) {
	return int64(len(f.invoices)) + 1, nil
}

func (f *fakeInvoiceRepo) AddPayment(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeInvoiceRepo) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeJobRepo struct {
	jobs []*entity.Job
}

func (f *fakeJobRepo) Create(ctx context.Context, job *entity.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, nil
}

func (f *fakeJobRepo) Update(ctx context.Context, job *entity.Job) error {
	for i, j := range f.jobs {
		if j.ID == job.ID {
			f.jobs[i] = job
			return nil
		}
	}
	return nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, j := range f.jobs {
		if j.ID == id {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeJobRepo) List(ctx context.Context, params *repository.JobFilterParams) ([]entity.Job, int64, error) {
	var out []entity.Job
	for _, j := range f.jobs {
		out = append(out, *j)
	}
	return out, int64(len(out)), nil
}

func (f *fakeJobRepo) NextNumber(ctx context.Context) (int64, error) {
	return int64(len(f.jobs)) + 1, nil
}

func (f *fakeJobRepo) AddItem(ctx context.Context, item *entity.JobItem) error { return nil }

func (f *fakeJobRepo) GetItem(ctx context.Context, id uuid.UUID) (*entity.JobItem, error) {
	return nil, nil
}

func (f *fakeJobRepo) UpdateItem(ctx context.Context, item *entity.JobItem) error { return nil }

func (f *fakeJobRepo) DeleteItem(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeJobRepo) ListItems(ctx context.Context, jobID uuid.UUID) ([]entity.JobItem, error) {
	return nil, nil
}

func newInvoiceFixture(t *testing.T, shopID uuid.UUID, jobStatus enum.JobStatus) (*InvoiceService, *fakeInvoiceRepo, *fakeJobRepo, *entity.Job) {
	t.Helper()

	jobRepo := &fakeJobRepo{}
	job := &entity.Job{
		ID:       uuid.New(),
		ShopID:   shopID,
		Number:   "RO-00001",
		Status:   jobStatus,
		Subtotal: 20000,
		Total:    21200,
	}
	job.TaxAmount = 1200
	require.NoError(t, jobRepo.Create(context.Background(), job))

	invoiceRepo := &fakeInvoiceRepo{}
	svc := NewInvoiceService(invoiceRepo, jobRepo, zap.NewNop())
	return svc, invoiceRepo, jobRepo, job
}

func TestCreateInvoiceSnapshotsJobTotals(t *testing.T) {
	shopID := uuid.New()
	svc, _, jobRepo, job := newInvoiceFixture(t, shopID, enum.JobStatusCompleted)

	invoice, err := svc.CreateInvoice(shopCtx(shopID), job.ID, nil)

	require.NoError(t, err)
	assert.Equal(t, "INV-00001", invoice.Number)
	assert.Equal(t, enum.InvoiceDraft, invoice.Status)
	assert.Equal(t, int64(20000), invoice.Subtotal)
	assert.Equal(t, int64(1200), invoice.TaxAmount)
	assert.Equal(t, int64(21200), invoice.Total)

	stored, _ := jobRepo.GetByID(context.Background(), job.ID)
	assert.Equal(t, enum.JobStatusInvoiced, stored.Status)
}

func TestCreateInvoiceRequiresCompletedJob(t *testing.T) {
	shopID := uuid.New()
	svc, _, _, job := newInvoiceFixture(t, shopID, enum.JobStatusInProgress)

	_, err := svc.CreateInvoice(shopCtx(shopID), job.ID, nil)

	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreateInvoiceRejectsSecondInvoiceForJob(t *testing.T) {
	shopID := uuid.New()
	svc, _, _, job := newInvoiceFixture(t, shopID, enum.JobStatusCompleted)

	_, err := svc.CreateInvoice(shopCtx(shopID), job.ID, nil)
	require.NoError(t, err)

	_, err = svc.CreateInvoice(shopCtx(shopID), job.ID, nil)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestRecordPaymentMarksInvoiceAndJobPaidWhenCovered(t *testing.T) {
	shopID := uuid.New()
	svc, _, jobRepo, job := newInvoiceFixture(t, shopID, enum.JobStatusCompleted)

	invoice, err := svc.CreateInvoice(shopCtx(shopID), job.ID, nil)
	require.NoError(t, err)

	invoice, err = svc.RecordPayment(shopCtx(shopID), &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    100.00,
		Method:    enum.PaymentCard,
	})
	require.NoError(t, err)
	assert.NotEqual(t, enum.InvoicePaid, invoice.Status)

	invoice, err = svc.RecordPayment(shopCtx(shopID), &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    112.00,
		Method:    enum.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoicePaid, invoice.Status)
	assert.Equal(t, int64(21200), invoice.AmountPaid())

	stored, _ := jobRepo.GetByID(context.Background(), job.ID)
	assert.Equal(t, enum.JobStatusPaid, stored.Status)
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	shopID := uuid.New()
	svc, _, _, job := newInvoiceFixture(t, shopID, enum.JobStatusCompleted)

	invoice, err := svc.CreateInvoice(shopCtx(shopID), job.ID, nil)
	require.NoError(t, err)

	_, err = svc.RecordPayment(shopCtx(shopID), &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    250.00,
		Method:    enum.PaymentCard,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestRecordPaymentRejectsInvalidMethod(t *testing.T) {
	shopID := uuid.New()
	svc, _, _, job := newInvoiceFixture(t, shopID, enum.JobStatusCompleted)

	invoice, err := svc.CreateInvoice(shopCtx(shopID), job.ID, nil)
	require.NoError(t, err)

	_, err = svc.RecordPayment(shopCtx(shopID), &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    10.00,
		Method:    enum.PaymentMethod("barter"),
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestVoidReopensJobAndRefusesPaidInvoices(t *testing.T) {
	shopID := uuid.New()
	svc, _, jobRepo, job := newInvoiceFixture(t, shopID, enum.JobStatusCompleted)

	invoice, err := svc.CreateInvoice(shopCtx(shopID), job.ID, nil)
	require.NoError(t, err)

	voided, err := svc.Void(shopCtx(shopID), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceVoid, voided.Status)

	stored, _ := jobRepo.GetByID(context.Background(), job.ID)
	assert.Equal(t, enum.JobStatusCompleted, stored.Status)
}

func TestVoidRefusesInvoiceWithPayments(t *testing.T) {
	shopID := uuid.New()
	svc, _, _, job := newInvoiceFixture(t, shopID, enum.JobStatusCompleted)

	invoice, err := svc.CreateInvoice(shopCtx(shopID), job.ID, nil)
	require.NoError(t, err)

	_, err = svc.RecordPayment(shopCtx(shopID), &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    50.00,
		Method:    enum.PaymentCheck,
	})
	require.NoError(t, err)

	_, err = svc.Void(shopCtx(shopID), invoice.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestRecordPaymentReceivedAtDefaultsToNow(t *testing.T) {
	shopID := uuid.New()
	svc, invoiceRepo, _, job := newInvoiceFixture(t, shopID, enum.JobStatusCompleted)

	invoice, err := svc.CreateInvoice(shopCtx(shopID), job.ID, nil)
	require.NoError(t, err)

	before := time.Now()
	_, err = svc.RecordPayment(shopCtx(shopID), &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    25.00,
		Method:    enum.PaymentTerminal,
	})
	require.NoError(t, err)

	payments, err := invoiceRepo.ListPayments(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.False(t, payments[0].ReceivedAt.Before(before))
}
