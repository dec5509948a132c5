package notify

import (
	"context"

	"github.com/finbolt/payment-initiation-api/internal/instruction/entity"
)

// Publisher hands an initiated instruction off to the settlement pipeline.
// Implementations must not mutate the instruction.
type Publisher interface {
	InstructionInitiated(ctx context.Context, inst *entity.Instruction) error
}

// Nop discards every notification. Used when no broker is configured.
type Nop struct{}

func (Nop) InstructionInitiated(context.Context, *entity.Instruction) error { return nil }
