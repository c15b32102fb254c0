package snap

import (
	"net/http"
	"time"

	"github.com/rhandyus/senjagames-sub001/pkg/models"
	"github.com/rhandyus/senjagames-sub001/pkg/settlement"
)

// ToSettlementRequest converts a verified callback payload and its headers
// into the settlement engine's request model.
func ToSettlementRequest(p *CallbackPayload, header http.Header) settlement.Request {
	paidAt, err := time.Parse(time.RFC3339, p.TrxDateTime)
	if err != nil {
		// The processor's timestamp is informational; settlement time is an
		// acceptable substitute when it is absent or malformed.
		paidAt = time.Now()
	}

	channel := p.AdditionalInfo.Channel
	if channel == "" {
		channel = header.Get(HeaderChannelID)
	}

	return settlement.Request{
		TrxID:      p.TrxID,
		PaidAmount: p.PaidAmount,
		Payment: models.PaymentDetails{
			PaymentRequestID: p.PaymentRequestID,
			ReferenceNo:      p.ReferenceNo,
			ExternalID:       header.Get(HeaderExternalID),
			Channel:          channel,
			VirtualAccountNo: p.VirtualAccountNo,
			PaidAt:           paidAt,
		},
	}
}
