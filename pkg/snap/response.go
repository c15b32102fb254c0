package snap

import (
	"encoding/json"
	"net/http"

	"github.com/rhandyus/senjagames-sub001/pkg/settlement"
)

// Response is the body every callback answer carries, successful or not.
type Response struct {
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
}

// MapOutcome translates a settlement outcome into the processor's documented
// status-code and response-code vocabulary. It is a total, side-effect-free
// function; unknown outcomes map to the internal-error answer so the
// processor retries rather than silently dropping the notification.
func MapOutcome(outcome settlement.Outcome) (int, Response) {
	switch outcome {
	case settlement.OutcomeSettled:
		return http.StatusOK, Response{ResponseCode: "2002500", ResponseMessage: "Successful"}
	case settlement.OutcomeMissingHeaders:
		return http.StatusBadRequest, Response{ResponseCode: "4000000", ResponseMessage: "Bad Request"}
	case settlement.OutcomeInvalidSignature:
		return http.StatusUnauthorized, Response{ResponseCode: "4010000", ResponseMessage: "Unauthorized Signature"}
	case settlement.OutcomeTransactionNotFound:
		return http.StatusNotFound, Response{ResponseCode: "4040000", ResponseMessage: "Transaction Not Found"}
	case settlement.OutcomeAmountMismatch:
		return http.StatusBadRequest, Response{ResponseCode: "4000001", ResponseMessage: "Invalid Amount"}
	default:
		return http.StatusInternalServerError, Response{ResponseCode: "5000000", ResponseMessage: "Internal Server Error"}
	}
}

// WriteOutcome maps the outcome and writes the JSON answer.
func WriteOutcome(w http.ResponseWriter, outcome settlement.Outcome) {
	status, body := MapOutcome(outcome)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
