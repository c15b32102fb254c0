package snap

import (
	"github.com/rhandyus/senjagames-sub001/pkg/models"
)

// Mandatory callback headers. Lookup is case-insensitive via http.Header.
const (
	HeaderTimestamp  = "X-TIMESTAMP"
	HeaderPartnerID  = "X-PARTNER-ID"
	HeaderSignature  = "X-SIGNATURE"
	HeaderExternalID = "X-EXTERNAL-ID"
	HeaderChannelID  = "CHANNEL-ID"
)

// CallbackPath is the fixed path the processor posts payment notifications
// to. It is part of the signed canonical string, so the route and this
// constant must never diverge.
const CallbackPath = "/v1/transfer-va/payment"

// AdditionalInfo carries channel metadata the processor attaches to a
// payment notification.
type AdditionalInfo struct {
	Channel    string `json:"channel,omitempty"`
	ContractID string `json:"contractId,omitempty"`
}

// CallbackPayload is the inbound payment notification body. Field names
// follow the processor's JSON contract.
type CallbackPayload struct {
	PartnerServiceID   string         `json:"partnerServiceId"`
	CustomerNo         string         `json:"customerNo"`
	VirtualAccountNo   string         `json:"virtualAccountNo"`
	VirtualAccountName string         `json:"virtualAccountName"`
	TrxID              string         `json:"trxId" validate:"required"`
	PaymentRequestID   string         `json:"paymentRequestId" validate:"required"`
	PaidAmount         models.Money   `json:"paidAmount" validate:"required"`
	TrxDateTime        string         `json:"trxDateTime"`
	ReferenceNo        string         `json:"referenceNo"`
	AdditionalInfo     AdditionalInfo `json:"additionalInfo"`
}
