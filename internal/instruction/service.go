package instruction

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	acctentity "github.com/finbolt/payment-initiation-api/internal/account/entity"
	"github.com/finbolt/payment-initiation-api/internal/instruction/entity"
	"github.com/finbolt/payment-initiation-api/pkg/notify"
	"github.com/finbolt/payment-initiation-api/pkg/utilities"
)

// Fixed success messages per instruction type.
const (
	MsgDebitInitiated  = "Direct debit has been initiated successfully!"
	MsgCreditInitiated = "Credit has been initiated successfully!"
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, inst *entity.Instruction) error
}

// Service persists validated, defaulted instruction drafts. It performs
// exactly one create per call; tenant checks happened upstream and are
// trusted here.
type Service struct {
	store     Store
	publisher notify.Publisher
	logger    *zap.SugaredLogger
}

func NewService(store Store, publisher notify.Publisher, logger *zap.SugaredLogger) *Service {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &Service{store: store, publisher: publisher, logger: logger}
}

// Initiate creates the instruction for the resolved account. A storage fault
// propagates untouched; there is no retry and no partial write to undo. The
// settlement handoff is best-effort and never fails the request.
func (s *Service) Initiate(ctx context.Context, acct *acctentity.Account, d *Draft, typ entity.Type) (*entity.Instruction, error) {
	inst := &entity.Instruction{
		ID:            utilities.NewRecordID(),
		AccountID:     acct.ID,
		Type:          typ,
		Name:          d.Name,
		Amount:        d.Amount,
		BIC:           d.BIC,
		IBAN:          d.IBAN,
		ERef:          d.ERef,
		RequestedDate: *d.RequestedDate,
		Status:        entity.StatusInitiated,
	}
	switch typ {
	case entity.TypeDebit:
		mandateID := d.MandateID
		inst.MandateID = &mandateID
		inst.MandateSignatureDate = d.MandateSignatureDate
	case entity.TypeCredit:
		remittance := d.RemittanceInformation
		inst.RemittanceInformation = &remittance
	}

	if err := s.store.Create(ctx, inst); err != nil {
		return nil, fmt.Errorf("create instruction: %w", err)
	}

	if err := s.publisher.InstructionInitiated(ctx, inst); err != nil {
		s.logger.Warnw("settlement handoff failed",
			"instruction_id", inst.ID, "eref", inst.ERef, "err", err)
	}
	return inst, nil
}
