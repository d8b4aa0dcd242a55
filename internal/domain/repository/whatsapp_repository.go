package repository

import (
	"context"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
)

// WhatsappRepository sends approved template messages through the
// messaging provider. A provider rejection is returned as
// *entity.ProviderError; anything else is a local failure.
type WhatsappRepository interface {
	SendTemplate(ctx context.Context, phone, templateName, language string, variables entity.VariableSet) error
}
